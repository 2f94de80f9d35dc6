package domain

// Invocation represents a single tool call received from a client.
type Invocation struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}
