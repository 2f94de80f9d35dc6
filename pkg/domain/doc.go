/*
Package domain contains the core models shared across the tidebridge packages.

It defines the entities the dispatch pipeline passes around: tool invocations,
API credentials and call lifecycle events. This package is kept pure and free
of external dependencies like I/O or transport, following Hexagonal
Architecture principles.

# Key Entities

  - Invocation: A single tool call received from a client.
  - Credentials: The key pair used to authenticate against the control plane.
  - CallEvent / CallHooks: Lifecycle callbacks for observing dispatched calls.
*/
package domain
