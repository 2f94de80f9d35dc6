package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidecloud/tidebridge/pkg/domain"
	"github.com/tidecloud/tidebridge/pkg/ports"
)

// EnvCredentials reads API credentials from the environment on every call, so
// rotated values take effect without a restart. The process starts without
// them; only invocations fail while they are absent.
type EnvCredentials struct{}

var _ ports.CredentialSource = EnvCredentials{}

// Credentials returns the current key pair or an error naming the missing
// variable.
func (EnvCredentials) Credentials() (domain.Credentials, error) {
	creds := domain.Credentials{
		KeyID:     strings.TrimSpace(os.Getenv(EnvKeyID)),
		KeySecret: strings.TrimSpace(os.Getenv(EnvSecret)),
	}
	if creds.KeyID == "" {
		return domain.Credentials{}, fmt.Errorf("%w: %s is not set", domain.ErrMissingCredentials, EnvKeyID)
	}
	if creds.KeySecret == "" {
		return domain.Credentials{}, fmt.Errorf("%w: %s is not set", domain.ErrMissingCredentials, EnvSecret)
	}
	return creds, nil
}
