package ports

import "github.com/tidecloud/tidebridge/pkg/domain"

// CredentialSource resolves the API key pair for the current call.
// Implementations should re-read their backing store on every call so that
// rotated keys take effect without a restart.
type CredentialSource interface {
	// Credentials returns the key pair, or an error wrapping
	// domain.ErrMissingCredentials when either half is absent.
	Credentials() (domain.Credentials, error)
}
