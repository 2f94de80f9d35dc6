package mcp

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrConnectionBusy indicates a streaming client already holds the single
// connection slot.
var ErrConnectionBusy = errors.New("a streaming client is already connected")

// connectionGate admits at most one streaming client at a time. A second
// connection attempt while one is active is rejected rather than queued. An
// empty handle means the slot is free.
type connectionGate struct {
	mu     sync.Mutex
	active string
}

func newConnectionGate() *connectionGate {
	return &connectionGate{}
}

// Acquire claims the slot and returns a fresh session handle, or
// ErrConnectionBusy when a session is already active.
func (g *connectionGate) Acquire() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active != "" {
		return "", ErrConnectionBusy
	}
	g.active = uuid.NewString()
	return g.active, nil
}

// Release frees the slot. Stale handles are ignored so a late release cannot
// evict a newer session.
func (g *connectionGate) Release(handle string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active == handle {
		g.active = ""
	}
}
