// Package mcp exposes the tool catalog over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tidecloud/tidebridge"
	"github.com/tidecloud/tidebridge/pkg/domain"
	"github.com/tidecloud/tidebridge/pkg/ports"
)

// CatalogURI is the resource URI under which the tool catalog is published.
const CatalogURI = "tidecloud://catalog"

// Server wraps a ToolService and exposes it as an MCP Server.
type Server struct {
	service   ports.ToolService
	mcpServer *server.MCPServer
	logger    *slog.Logger
	gate      *connectionGate
	metrics   http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for transport-level events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts the given handler at /metrics on the SSE router.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a new MCP Server instance exposing every tool the service
// reports. Tool results and failures travel as MCP content; the server itself
// never turns an upstream failure into a protocol error.
func NewServer(service ports.ToolService, opts ...Option) *Server {
	s := &Server{
		service:   service,
		mcpServer: server.NewMCPServer("tidebridge-mcp", strings.TrimSpace(tidebridge.Version)),
		logger:    slog.Default(),
		gate:      newConnectionGate(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE. It blocks until the
// listener fails or ctx is cancelled, then shuts the listener down gracefully.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.router(sseServer),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping SSE server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// router assembles the SSE transport routes. Only /sse passes through the
// connection gate; /message carries requests for the already-admitted session.
func (s *Server) router(sse *server.SSEServer) http.Handler {
	r := chi.NewRouter()

	r.Handle("/sse", corsMiddleware(s.gated(sse.SSEHandler())))
	r.Handle("/message", corsMiddleware(sse.MessageHandler()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]string{"status": "ok"}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return r
}

// gated admits one streaming client at a time. The handler blocks for the
// lifetime of the connection, so releasing on return frees the slot exactly
// when the client disconnects.
func (s *Server) gated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle, err := s.gate.Acquire()
		if err != nil {
			s.logger.Warn("rejecting concurrent SSE connection", "remote", r.RemoteAddr)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		defer s.gate.Release(handle)

		s.logger.Info("SSE client connected", "session", handle, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
		s.logger.Info("SSE client disconnected", "session", handle)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	for _, info := range s.service.Tools() {
		tool := mcp.NewToolWithRawSchema(info.Name, info.Description, info.InputSchema)
		s.mcpServer.AddTool(tool, s.toolHandler(info.Name))
	}
}

// toolHandler adapts one registered tool to the MCP calling convention. Every
// failure surfaces as a tool result naming the tool, never as a silent drop.
func (s *Server) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := s.service.Dispatch(ctx, domain.Invocation{
			Name:      name,
			Arguments: request.GetArguments(),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Tool %s failed: %v", name, err)), nil
		}

		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Tool %s failed: %v", name, err)), nil
		}
		return mcp.NewToolResultText(string(pretty)), nil
	}
}

func (s *Server) registerResources() {
	// EXPOSE: tidecloud://catalog
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Tool Catalog",
		mcp.WithMIMEType("application/json"),
	), s.handleCatalogResource)
}

func (s *Server) handleCatalogResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.MarshalIndent(s.service.Tools(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tool catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
