package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidecloud/tidebridge/internal/logging"
	"github.com/tidecloud/tidebridge/pkg/domain"
	"github.com/tidecloud/tidebridge/pkg/ports"
)

type fakeService struct {
	tools []ports.ToolInfo
	value any
	err   error
	calls []domain.Invocation
}

func (f *fakeService) Tools() []ports.ToolInfo { return f.tools }

func (f *fakeService) Dispatch(ctx context.Context, inv domain.Invocation) (any, error) {
	f.calls = append(f.calls, inv)
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}

func testTools() []ports.ToolInfo {
	return []ports.ToolInfo{
		{
			Name:        "listOrganizations",
			Description: "List available organizations",
			InputSchema: json.RawMessage(`{"type":"object","additionalProperties":false}`),
		},
	}
}

func newTestServer(t *testing.T, svc ports.ToolService, opts ...Option) *Server {
	t.Helper()
	opts = append(opts, WithLogger(logging.NewNop()))
	return NewServer(svc, opts...)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func TestToolHandler_Success(t *testing.T) {
	svc := &fakeService{
		tools: testTools(),
		value: map[string]any{"organizations": []any{"acme"}},
	}
	srv := newTestServer(t, svc)

	args := map[string]any{"organizationId": "3f0c9a1e-7b2d-4a4e-9c1f-0a6b5d8e2f13"}
	result, err := srv.toolHandler("listOrganizations")(context.Background(), callRequest("listOrganizations", args))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"organizations":["acme"]}`, text.Text)
	assert.Contains(t, text.Text, "\n  ", "response should be pretty-printed")

	require.Len(t, svc.calls, 1)
	assert.Equal(t, "listOrganizations", svc.calls[0].Name)
	assert.Equal(t, args, svc.calls[0].Arguments)
}

func TestToolHandler_FailureNamesTool(t *testing.T) {
	svc := &fakeService{
		tools: testTools(),
		err:   errors.New("upstream returned status 404: not found"),
	}
	srv := newTestServer(t, svc)

	result, err := srv.toolHandler("listOrganizations")(context.Background(), callRequest("listOrganizations", nil))
	require.NoError(t, err, "dispatch failures surface as tool results, not protocol errors")
	require.True(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Tool listOrganizations failed: upstream returned status 404: not found", text.Text)
}

func TestHandleCatalogResource(t *testing.T) {
	svc := &fakeService{tools: testTools()}
	srv := newTestServer(t, svc)

	contents, err := srv.handleCatalogResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, CatalogURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var catalog []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &catalog))
	require.Len(t, catalog, 1)
	assert.Equal(t, "listOrganizations", catalog[0]["name"])
	schemaDoc, ok := catalog[0]["inputSchema"].(map[string]any)
	require.True(t, ok, "inputSchema should inline as a JSON object")
	assert.Equal(t, "object", schemaDoc["type"])
}

func newRouterServer(t *testing.T, srv *Server) *httptest.Server {
	t.Helper()
	sse := server.NewSSEServer(srv.mcpServer)
	ts := httptest.NewServer(srv.router(sse))
	t.Cleanup(ts.Close)
	return ts
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t, &fakeService{tools: testTools()})
	ts := newRouterServer(t, srv)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, &fakeService{tools: testTools()})
	ts := newRouterServer(t, srv)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/message", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouter_MetricsMount(t *testing.T) {
	stub := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "tool_calls_total 0")
	})
	srv := newTestServer(t, &fakeService{tools: testTools()}, WithMetricsHandler(stub))
	ts := newRouterServer(t, srv)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tool_calls_total")

	// Without the option the route does not exist.
	bare := newTestServer(t, &fakeService{tools: testTools()})
	bareTS := newRouterServer(t, bare)
	missing, err := http.Get(bareTS.URL + "/metrics")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRouter_SingleSSEConnection(t *testing.T) {
	srv := newTestServer(t, &fakeService{tools: testTools()})
	ts := newRouterServer(t, srv)

	first, err := http.Get(ts.URL + "/sse")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(ts.URL + "/sse")
	require.NoError(t, err)
	defer second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
	rejection, err := io.ReadAll(second.Body)
	require.NoError(t, err)
	assert.Contains(t, string(rejection), "already connected")

	// Dropping the first client frees the slot for the next one.
	first.Body.Close()
	require.Eventually(t, func() bool {
		resp, err := http.Get(ts.URL + "/sse")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
}
