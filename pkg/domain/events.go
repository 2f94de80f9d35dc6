package domain

import (
	"context"
	"time"
)

// CallEvent describes one dispatched tool call. Status and Duration are only
// populated once the upstream request has finished.
type CallEvent struct {
	Tool     string        `json:"tool"`
	Method   string        `json:"method"`
	Path     string        `json:"path"`
	Status   int           `json:"status,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// CallHooks defines callbacks for dispatch observability.
type CallHooks struct {
	OnCall   func(context.Context, *CallEvent)
	OnResult func(context.Context, *CallEvent)
}
