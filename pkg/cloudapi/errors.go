package cloudapi

import "fmt"

// UpstreamError reports a failed control-plane call: a non-2xx status, an
// unparsable body, or a transport failure. StatusCode is zero when the
// request never produced a response.
type UpstreamError struct {
	StatusCode int    `json:"status,omitempty"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream call failed: %s", e.Message)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HTTPStatus reports the upstream status code to observers that do not
// import this package.
func (e *UpstreamError) HTTPStatus() int {
	return e.StatusCode
}
