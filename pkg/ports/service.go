package ports

import (
	"context"
	"encoding/json"

	"github.com/tidecloud/tidebridge/pkg/domain"
)

// ToolInfo describes a registered tool for transport-level registration.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ToolService is the surface protocol adapters consume: introspection of the
// registered tools plus dispatch of incoming invocations.
type ToolService interface {
	// Tools returns a descriptor for every registered tool, in registration order.
	Tools() []ToolInfo

	// Dispatch validates and executes one tool invocation.
	Dispatch(ctx context.Context, inv domain.Invocation) (any, error)
}
