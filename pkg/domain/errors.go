package domain

import "errors"

// ErrUnknownTool is returned when a call names a tool that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ErrMissingCredentials is returned when the API key pair is absent or incomplete.
var ErrMissingCredentials = errors.New("missing credentials")
