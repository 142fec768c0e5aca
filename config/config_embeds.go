package config

import _ "embed"

// DefaultBuildConfig is the commented record written by init
//
//go:embed buildconfig.yaml
var DefaultBuildConfig []byte
