// Package config resolves process-level settings from the environment and an
// optional YAML file. Environment values win over file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables understood by the process.
const (
	EnvKeyID   = "API_KEY_ID"
	EnvSecret  = "API_SECRET"
	EnvBaseURL = "API_URL"
)

// File is the optional YAML startup configuration. String values run through
// os.ExpandEnv, so entries like "${STAGING_URL}" resolve at load time.
type File struct {
	BaseURL  string `yaml:"baseUrl"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"logLevel"`
}

// Load reads the YAML file at path. An empty path yields a zero File; a named
// path that cannot be read is an error.
func Load(path string) (File, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return File{}, nil
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return File{}, fmt.Errorf("reading config %q: %w", clean, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing config %q: %w", clean, err)
	}
	f.BaseURL = strings.TrimSpace(os.ExpandEnv(f.BaseURL))
	f.LogLevel = strings.TrimSpace(os.ExpandEnv(f.LogLevel))
	return f, nil
}

// ResolvedBaseURL returns the upstream base URL, with API_URL overriding the
// file value. Empty means the client's built-in default.
func (f File) ResolvedBaseURL() string {
	if env := strings.TrimSpace(os.Getenv(EnvBaseURL)); env != "" {
		return env
	}
	return f.BaseURL
}
