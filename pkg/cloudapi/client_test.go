package cloudapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidecloud/tidebridge/pkg/domain"
)

var testCreds = domain.Credentials{KeyID: "key-id", KeySecret: "key-secret"}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(
		WithBaseURL(server.URL),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
}

func TestCall_JSONSuccess(t *testing.T) {
	var gotAccept, gotKeyID, gotSecret string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotKeyID, gotSecret, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": [{"id": "org-1"}]}`))
	})

	value, err := client.Call(context.Background(), http.MethodGet, "/v1/organizations", testCreds, nil, nil)
	require.NoError(t, err)

	// Request defaults
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "key-id", gotKeyID)
	assert.Equal(t, "key-secret", gotSecret)

	// Response decodes untyped
	obj, ok := value.(map[string]any)
	require.True(t, ok, "expected decoded object, got %T", value)
	assert.NotNil(t, obj["result"])
}

func TestCall_BodyOnlyForPostAndPatch(t *testing.T) {
	var gotBodies = map[string]string{}
	var gotContentTypes = map[string]string{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBodies[r.Method] = string(raw)
		gotContentTypes[r.Method] = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	body := map[string]any{"command": "start"}
	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodPost, http.MethodPatch} {
		_, err := client.Call(context.Background(), method, "/v1/x", testCreds, body, nil)
		require.NoError(t, err, method)
	}

	// GET and DELETE drop the body even when one is supplied.
	assert.Empty(t, gotBodies[http.MethodGet])
	assert.Empty(t, gotBodies[http.MethodDelete])
	assert.Empty(t, gotContentTypes[http.MethodGet])

	assert.JSONEq(t, `{"command":"start"}`, gotBodies[http.MethodPost])
	assert.JSONEq(t, `{"command":"start"}`, gotBodies[http.MethodPatch])
	assert.Equal(t, "application/json", gotContentTypes[http.MethodPost])
}

func TestCall_AuthRecomputedPerCall(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id, _, _ := r.BasicAuth()
		seen = append(seen, id)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Call(context.Background(), http.MethodGet, "/v1/x", domain.Credentials{KeyID: "first", KeySecret: "s"}, nil, nil)
	require.NoError(t, err)
	_, err = client.Call(context.Background(), http.MethodGet, "/v1/x", domain.Credentials{KeyID: "second", KeySecret: "s"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestCall_HeaderOverride(t *testing.T) {
	var gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("metric_total 42\n"))
	})

	header := http.Header{}
	header.Set("Accept", "text/plain")
	value, err := client.Call(context.Background(), http.MethodGet, "/v1/metrics", testCreds, nil, header)
	require.NoError(t, err)

	// Override replaces the default rather than appending to it.
	assert.Equal(t, "text/plain", gotAccept)

	text, ok := value.(PlainText)
	require.True(t, ok, "expected PlainText, got %T", value)
	assert.Equal(t, "metric_total 42\n", text.PlainTextResponse)
}

func TestCall_PlainTextWithCharset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	value, err := client.Call(context.Background(), http.MethodGet, "/v1/x", testCreds, nil, nil)
	require.NoError(t, err)

	text, ok := value.(PlainText)
	require.True(t, ok)
	assert.Equal(t, "ok", text.PlainTextResponse)
}

func TestCall_PlainTextError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("backend exploded"))
	})

	_, err := client.Call(context.Background(), http.MethodGet, "/v1/x", testCreds, nil, nil)
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Equal(t, "backend exploded", upErr.Message)
}

func TestCall_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	value, err := client.Call(context.Background(), http.MethodDelete, "/v1/x", testCreds, nil, nil)
	require.NoError(t, err)

	nc, ok := value.(NoContent)
	require.True(t, ok, "expected NoContent, got %T", value)
	assert.Equal(t, http.StatusNoContent, nc.Status)
	assert.Equal(t, "Operation successful (No Content)", nc.Message)
}

func TestCall_EmptyBodyKeepsStatus(t *testing.T) {
	// The bodyless rule is checked before the status check, so an empty
	// error response still yields the synthesized value.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	value, err := client.Call(context.Background(), http.MethodGet, "/v1/x", testCreds, nil, nil)
	require.NoError(t, err)

	nc, ok := value.(NoContent)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, nc.Status)
}

func TestCall_ErrorField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "not found"}`))
	})

	_, err := client.Call(context.Background(), http.MethodGet, "/v1/x", testCreds, nil, nil)
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusNotFound, upErr.StatusCode)
	assert.Contains(t, upErr.Message, "not found")
	assert.Contains(t, err.Error(), "404")
}

func TestCall_MessageField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "replica count out of range"}`))
	})

	_, err := client.Call(context.Background(), http.MethodPost, "/v1/x", testCreds, map[string]any{}, nil)
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "replica count out of range", upErr.Message)
}

func TestCall_ErrorWithoutKnownField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code": 403}`))
	})

	_, err := client.Call(context.Background(), http.MethodGet, "/v1/x", testCreds, nil, nil)
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	// Falls back to the raw body when no error/message field exists.
	assert.Contains(t, upErr.Message, `"code"`)
}

func TestCall_UnparsableJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Call(context.Background(), http.MethodGet, "/v1/x", testCreds, nil, nil)
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Contains(t, upErr.Message, "unparsable response")
	assert.Contains(t, upErr.Message, "<html>not json</html>")
	assert.NotNil(t, errors.Unwrap(upErr))
}

func TestCall_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(
		WithBaseURL(server.URL),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	server.Close()

	_, err := client.Call(context.Background(), http.MethodGet, "/v1/x", testCreds, nil, nil)
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Zero(t, upErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(upErr))
	assert.Contains(t, err.Error(), "upstream call failed")
}

func TestUpstreamError_Format(t *testing.T) {
	withStatus := &UpstreamError{StatusCode: 404, Message: "not found"}
	assert.Equal(t, "upstream returned status 404: not found", withStatus.Error())

	withoutStatus := &UpstreamError{Message: "connection refused"}
	assert.Equal(t, "upstream call failed: connection refused", withoutStatus.Error())
}
