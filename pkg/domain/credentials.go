package domain

import "fmt"

// MaskedSecret replaces credential material anywhere it could be printed.
const MaskedSecret = "**********"

// Credentials carries the key pair used to authenticate against the
// control-plane API.
type Credentials struct {
	KeyID     string
	KeySecret string
}

// Valid reports whether both halves of the key pair are present.
func (c Credentials) Valid() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// Masked returns a copy safe for logging and diagnostics.
func (c Credentials) Masked() Credentials {
	if c.KeySecret != "" {
		c.KeySecret = MaskedSecret
	}
	return c
}

// String keeps the secret out of accidental %v and %s prints.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{KeyID: %s, KeySecret: %s}", c.KeyID, MaskedSecret)
}
