package cloudapi

// PlainText wraps an upstream response delivered with a text/plain content
// type, e.g. a Prometheus metrics scrape.
type PlainText struct {
	PlainTextResponse string `json:"plainTextResponse"`
}

// NoContent is synthesized for responses that legitimately carry no body.
type NoContent struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
