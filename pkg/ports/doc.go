/*
Package ports defines the driven ports (interfaces) for the tidebridge core.

These interfaces decouple the dispatch pipeline from external implementations,
allowing the core to work with different transports, credential stores, and
upstream HTTP clients.

# Key Interfaces

  - Caller: Executes authenticated requests against the control-plane API.
  - CredentialSource: Resolves the API key pair, re-read on every call.
  - ToolService: Introspection plus dispatch, consumed by protocol adapters.
*/
package ports
