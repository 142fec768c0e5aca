package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig holds user-level settings shared by every project
type GlobalConfig struct {
	// FirstRun is true until the telemetry preference has been recorded
	FirstRun bool `yaml:"first_run"`
	// TelemetryEnabled is nil until the user decides
	TelemetryEnabled *bool  `yaml:"telemetry_enabled,omitempty"`
	UserUUID         string `yaml:"user_uuid"`
}

// GetGlobalConfigDir returns the XDG-compliant directory for global settings
func GetGlobalConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")

	var baseDir string
	if configHome != "" && filepath.IsAbs(configHome) {
		baseDir = configHome
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(baseDir, AppName), nil
}

func GetGlobalConfigPath() (string, error) {
	configDir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, GlobalConfigFile), nil
}

// LoadGlobalConfig loads the global configuration, returning first-run
// defaults when nothing has been saved yet
func LoadGlobalConfig() (*GlobalConfig, error) {
	configPath, err := GetGlobalConfigPath()
	if err != nil {
		return &GlobalConfig{FirstRun: true}, nil
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &GlobalConfig{FirstRun: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read global config: %w", err)
	}

	var config GlobalConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse global config: %w", err)
	}
	return &config, nil
}

func SaveGlobalConfig(config *GlobalConfig) error {
	configPath, err := GetGlobalConfigPath()
	if err != nil {
		return fmt.Errorf("cannot save global config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal global config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write global config: %w", err)
	}
	return nil
}

// GetGlobalTelemetryPreference returns nil when the user never decided
func GetGlobalTelemetryPreference() (*bool, error) {
	config, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	return config.TelemetryEnabled, nil
}

func SetGlobalTelemetryPreference(enabled bool) error {
	config, err := LoadGlobalConfig()
	if err != nil {
		return err
	}
	config.TelemetryEnabled = &enabled
	config.FirstRun = false
	return SaveGlobalConfig(config)
}

func MarkFirstRunComplete() error {
	config, err := LoadGlobalConfig()
	if err != nil {
		return err
	}
	config.FirstRun = false
	return SaveGlobalConfig(config)
}

func IsFirstRun() (bool, error) {
	config, err := LoadGlobalConfig()
	if err != nil {
		return false, err
	}
	return config.FirstRun, nil
}

// TelemetryEnabled resolves the effective preference, defaulting to off
func TelemetryEnabled() bool {
	pref, err := GetGlobalTelemetryPreference()
	if err != nil || pref == nil {
		return false
	}
	return *pref
}
