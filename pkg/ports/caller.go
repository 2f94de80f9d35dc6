package ports

import (
	"context"
	"net/http"

	"github.com/tidecloud/tidebridge/pkg/domain"
)

// Caller executes one authenticated request against the control-plane API.
// Implementations own the transport concerns: base URL, authentication,
// response decoding and redaction.
type Caller interface {
	// Call performs method on path. A non-nil body is sent as JSON. Extra
	// header values are merged into the request before it is sent.
	Call(ctx context.Context, method, path string, creds domain.Credentials, body any, header http.Header) (any, error)
}
