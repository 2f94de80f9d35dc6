package registry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tidecloud/tidebridge/pkg/domain"
	"github.com/tidecloud/tidebridge/pkg/ports"
	"github.com/tidecloud/tidebridge/pkg/schema"
)

// Dispatcher executes tool invocations against the registry. Each dispatch
// is a single best-effort pass: credentials gate, lookup, validation, path
// resolution, body extraction, upstream call. There are no retries and no
// partial progress; the first failure is surfaced and nothing else runs.
type Dispatcher struct {
	registry *Registry
	caller   ports.Caller
	creds    ports.CredentialSource
	hooks    domain.CallHooks
	logger   *slog.Logger
}

var _ ports.ToolService = (*Dispatcher)(nil)

type DispatcherOption func(*Dispatcher)

// WithHooks installs call lifecycle callbacks.
func WithHooks(hooks domain.CallHooks) DispatcherOption {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithLogger sets the dispatch logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher wires a registry to an upstream caller and credential source.
func NewDispatcher(reg *Registry, caller ports.Caller, creds ports.CredentialSource, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		caller:   caller,
		creds:    creds,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Tools returns the registered tool descriptors in registration order.
func (d *Dispatcher) Tools() []ports.ToolInfo {
	return d.registry.Tools()
}

// Dispatch validates and executes one invocation.
//
// Credentials are resolved on every call rather than cached, so keys rotated
// in the environment take effect without a restart. Validation aggregates
// every violation before failing; the upstream is never contacted with
// arguments that did not fully pass.
func (d *Dispatcher) Dispatch(ctx context.Context, inv domain.Invocation) (any, error) {
	creds, err := d.creds.Credentials()
	if err != nil {
		return nil, err
	}

	ent, err := d.registry.lookup(inv.Name)
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(ent.def.Schema, inv.Arguments); err != nil {
		d.logger.Debug("invocation rejected", "tool", inv.Name, "error", err)
		return nil, err
	}

	path, err := ent.buildPath(inv.Arguments)
	if err != nil {
		return nil, err
	}
	body, err := ent.body(inv.Arguments)
	if err != nil {
		return nil, err
	}

	event := &domain.CallEvent{Tool: inv.Name, Method: ent.def.Method, Path: path}
	if d.hooks.OnCall != nil {
		d.hooks.OnCall(ctx, event)
	}

	d.logger.Debug("dispatching tool", "tool", inv.Name, "method", ent.def.Method, "path", path)

	start := time.Now()
	value, err := d.caller.Call(ctx, ent.def.Method, path, creds, body, ent.def.Header)
	event.Duration = time.Since(start)
	event.Err = err
	event.Status = statusOf(err)
	if d.hooks.OnResult != nil {
		d.hooks.OnResult(ctx, event)
	}

	if err != nil {
		return nil, err
	}
	return value, nil
}

// statusOf recovers the upstream HTTP status from a call error, when the
// error carries one.
func statusOf(err error) int {
	if err == nil {
		return 0
	}
	var carrier interface{ HTTPStatus() int }
	if errors.As(err, &carrier) {
		return carrier.HTTPStatus()
	}
	return 0
}
