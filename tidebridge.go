package tidebridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tidecloud/tidebridge/internal/config"
	"github.com/tidecloud/tidebridge/pkg/catalog"
	"github.com/tidecloud/tidebridge/pkg/cloudapi"
	"github.com/tidecloud/tidebridge/pkg/domain"
	"github.com/tidecloud/tidebridge/pkg/ports"
	"github.com/tidecloud/tidebridge/pkg/registry"
	"github.com/tidecloud/tidebridge/pkg/schema"
)

// Bridge is the high-level entry point for the library. It wires the tool
// catalog, schema validation, and the upstream HTTP client into a single
// dispatching service that protocol adapters can expose.
type Bridge struct {
	registry   *registry.Registry
	dispatcher *registry.Dispatcher
	caller     ports.Caller
	creds      ports.CredentialSource
	hooks      domain.CallHooks
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
	extraDefs  []registry.Definition
}

var _ ports.ToolService = (*Bridge)(nil)

// Option defines a functional option for configuring the Bridge.
type Option func(*Bridge)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithBaseURL overrides the upstream base URL, e.g. for a staging control plane.
func WithBaseURL(baseURL string) Option {
	return func(b *Bridge) {
		b.baseURL = baseURL
	}
}

// WithHTTPClient injects the *http.Client used for upstream calls.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bridge) {
		b.httpClient = client
	}
}

// WithCaller injects a custom upstream caller, bypassing the default HTTP
// client entirely. Useful for tests and alternative transports.
func WithCaller(caller ports.Caller) Option {
	return func(b *Bridge) {
		b.caller = caller
	}
}

// WithCredentialSource injects a custom credential source. The default reads
// API_KEY_ID and API_SECRET from the environment on every call.
func WithCredentialSource(src ports.CredentialSource) Option {
	return func(b *Bridge) {
		b.creds = src
	}
}

// WithCredentials pins a fixed key pair instead of reading the environment.
func WithCredentials(creds domain.Credentials) Option {
	return func(b *Bridge) {
		b.creds = staticCredentials{creds: creds}
	}
}

// WithHooks registers observability hooks fired around each upstream call.
func WithHooks(hooks domain.CallHooks) Option {
	return func(b *Bridge) {
		b.hooks = hooks
	}
}

// WithTools registers additional tool definitions after the standard catalog.
func WithTools(defs ...registry.Definition) Option {
	return func(b *Bridge) {
		b.extraDefs = append(b.extraDefs, defs...)
	}
}

// New initializes a Bridge with the full Tidecloud tool catalog registered.
func New(opts ...Option) (*Bridge, error) {
	b := &Bridge{}

	for _, opt := range opts {
		opt(b)
	}

	// Quiet by default; hosts pass a real logger when they want diagnostics.
	if b.logger == nil {
		b.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if b.creds == nil {
		b.creds = config.EnvCredentials{}
	}
	if b.caller == nil {
		clientOpts := []cloudapi.Option{cloudapi.WithLogger(b.logger)}
		if b.baseURL != "" {
			clientOpts = append(clientOpts, cloudapi.WithBaseURL(b.baseURL))
		}
		if b.httpClient != nil {
			clientOpts = append(clientOpts, cloudapi.WithHTTPClient(b.httpClient))
		}
		b.caller = cloudapi.New(clientOpts...)
	}

	b.registry = registry.NewRegistry()
	if err := catalog.Register(b.registry); err != nil {
		return nil, fmt.Errorf("failed to register tool catalog: %w", err)
	}
	for _, def := range b.extraDefs {
		if err := b.registry.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register custom tool: %w", err)
		}
	}

	b.dispatcher = registry.NewDispatcher(b.registry, b.caller, b.creds,
		registry.WithHooks(b.hooks),
		registry.WithLogger(b.logger),
	)
	return b, nil
}

// Tools returns a descriptor for every registered tool, in catalog order.
func (b *Bridge) Tools() []ports.ToolInfo {
	return b.dispatcher.Tools()
}

// Dispatch validates and executes one tool invocation against the upstream.
func (b *Bridge) Dispatch(ctx context.Context, inv domain.Invocation) (any, error) {
	return b.dispatcher.Dispatch(ctx, inv)
}

// Describe returns the input schema for a registered tool.
func (b *Bridge) Describe(name string) (*schema.Node, error) {
	return b.registry.Describe(name)
}

// staticCredentials serves a fixed key pair.
type staticCredentials struct {
	creds domain.Credentials
}

func (s staticCredentials) Credentials() (domain.Credentials, error) {
	if !s.creds.Valid() {
		return domain.Credentials{}, domain.ErrMissingCredentials
	}
	return s.creds, nil
}
