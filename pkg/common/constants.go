package common

const (
	// AppName is used for the global config directory and telemetry namespace
	AppName = "vyperkit"

	// GlobalConfigFile is the name of the global YAML used to store user-level settings
	GlobalConfigFile = "config.yaml"

	// ConfigEnvVar overrides build config discovery
	ConfigEnvVar = "VYPERKIT_CONFIG"

	// EnvFile is loaded from the working directory before every command
	EnvFile = ".env"

	// Maximum rows tracked by progress trackers
	MaxProgressRows = 32
)
