package tidebridge

import _ "embed"

// Version is the tidebridge release version, sourced from the VERSION file.
//
//go:embed VERSION
var Version string
