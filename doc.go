/*
Package tidebridge exposes the Tidecloud control-plane REST API (organizations,
services, API keys) as a set of schema-validated tools for Model Context
Protocol hosts.

Every tool is declared once in a read-only catalog: its input schema, HTTP
method, path template, and body mapping. Invocations are validated against the
schema before any network traffic happens, so malformed arguments never reach
the upstream, and every violation is reported in a single pass rather than one
at a time.

# Concept

The package follows a Hexagonal Architecture: the dispatch pipeline
(validate, build path, extract body, call) is pure wiring around two ports, an
upstream Caller and a CredentialSource. Adapters plug in at the edges: the
bundled HTTP client on one side, the MCP stdio/SSE transports on the other.
Hosts that want neither can embed the Bridge directly and drive Dispatch
themselves.

# Key Features

  - Declarative tool catalog: adding a tool is one registry entry, not a new
    switch branch.
  - All-or-nothing validation: every schema violation is collected and
    reported together; the upstream is never contacted on failure.
  - Untyped upstream responses: JSON is passed through as-is, plain text and
    empty bodies are wrapped in small stable envelopes.
  - Per-call credentials: rotated API keys take effect without a restart.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/tidecloud/tidebridge"
		"github.com/tidecloud/tidebridge/pkg/domain"
	)

	func main() {
		bridge, err := tidebridge.New()
		if err != nil {
			log.Fatal(err)
		}

		// Discover the available tools.
		for _, tool := range bridge.Tools() {
			fmt.Println(tool.Name)
		}

		// Invoke one. Arguments are validated before any HTTP call.
		value, err := bridge.Dispatch(context.Background(), domain.Invocation{
			Name: "listOrganizations",
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(value)
	}

The bundled MCP server in pkg/adapters/mcp serves the same Bridge over stdio
or SSE; the tidebridge binary in cmd/tidebridge wraps both behind a CLI.
*/
package tidebridge
