package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tidecloud/tidebridge"
	"github.com/tidecloud/tidebridge/internal/config"
	"github.com/tidecloud/tidebridge/internal/logging"
	"github.com/tidecloud/tidebridge/internal/metrics"
	"github.com/tidecloud/tidebridge/pkg/adapters/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Tidebridge as an MCP server.
This allows AI agents (like Claude Desktop) to manage Tidecloud resources as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}

		// Flags win over the config file.
		if !cmd.Flags().Changed("port") && cfg.Port != 0 {
			port = cfg.Port
		}
		level, _ := cmd.Flags().GetString("log-level")
		if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
			level = cfg.LogLevel
		}

		// Configure logger
		logger := logging.New(logging.Level(level))
		slog.SetDefault(logger)

		collector := metrics.NewCollector()

		// 1. Initialize the bridge
		opts := []tidebridge.Option{
			tidebridge.WithLogger(logger),
			tidebridge.WithHooks(collector.Hooks()),
		}
		if baseURL := cfg.ResolvedBaseURL(); baseURL != "" {
			opts = append(opts, tidebridge.WithBaseURL(baseURL))
		}
		bridge, err := tidebridge.New(opts...)
		if err != nil {
			log.Fatalf("Error initializing tidebridge: %v", err)
		}

		// 2. Initialize the MCP server adapter
		srv := mcp.NewServer(bridge,
			mcp.WithLogger(logger),
			mcp.WithMetricsHandler(collector.Handler()),
		)

		// 3. Start the server based on transport
		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting Tidebridge MCP server (stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Tidebridge MCP server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					slog.Error("MCP server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	serveCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
