package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.reqview)
	ConfigDir string

	// ConfigFile is the yaml settings file
	ConfigFile string

	// KeybindsFile is the yaml keybinding overrides file
	KeybindsFile string
)

// Settings holds the user-tunable defaults
type Settings struct {
	DefaultMethod      string            `yaml:"defaultMethod"`
	TimeoutSeconds     int               `yaml:"timeoutSeconds"`
	FollowRedirects    bool              `yaml:"followRedirects"`
	InsecureSkipVerify bool              `yaml:"insecureSkipVerify"`
	Theme              string            `yaml:"theme"` // chroma style for body highlighting
	DefaultHeaders     map[string]string `yaml:"defaultHeaders,omitempty"`
}

// DefaultSettings returns the settings written on first run
func DefaultSettings() *Settings {
	return &Settings{
		DefaultMethod:   "GET",
		TimeoutSeconds:  30,
		FollowRedirects: true,
		Theme:           "monokai",
	}
}

// Timeout returns the configured timeout as a duration
func (s *Settings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Initialize sets up the configuration directory and files.
// It creates ~/.reqview/ and a default config.yaml if they don't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".reqview")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		if err := Save(DefaultSettings(), ConfigFile); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	return nil
}

// Load reads settings from a yaml file. Unknown fields are rejected so a
// typo in config.yaml surfaces instead of being silently ignored.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if settings.DefaultMethod == "" {
		settings.DefaultMethod = "GET"
	}
	return settings, nil
}

// LoadOrDefault loads the global settings file, falling back to defaults
// when it does not exist yet.
func LoadOrDefault() (*Settings, error) {
	if ConfigFile == "" {
		return DefaultSettings(), nil
	}
	settings, err := Load(ConfigFile)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a yaml file
func Save(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}
