package keybinds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the user's keybinding overrides, one yaml map per context
type Config struct {
	Version  string            `yaml:"version,omitempty"`
	Global   map[string]string `yaml:"global,omitempty"`
	Form     map[string]string `yaml:"form,omitempty"`
	Response map[string]string `yaml:"response,omitempty"`
	Search   map[string]string `yaml:"search,omitempty"`
	Filter   map[string]string `yaml:"filter,omitempty"`
	Picker   map[string]string `yaml:"picker,omitempty"`
	Help     map[string]string `yaml:"help,omitempty"`
}

// contextSections maps config sections to their contexts
func (c *Config) contextSections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:   c.Global,
		ContextForm:     c.Form,
		ContextResponse: c.Response,
		ContextSearch:   c.Search,
		ContextFilter:   c.Filter,
		ContextPicker:   c.Picker,
		ContextHelp:     c.Help,
	}
}

// LoadConfig loads keybinding configuration from a yaml file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.yaml format: %w", err)
	}

	return &config, nil
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings.
func ApplyConfig(registry *Registry, config *Config) {
	for context, bindings := range config.contextSections() {
		for key, actionStr := range bindings {
			registry.Register(context, key, Action(actionStr))
		}
	}
}

// LoadOrDefault loads user overrides if the file exists, otherwise returns
// the default registry. An invalid file is an error; silently falling back
// would hide the user's typo.
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err != nil {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.yaml: %w", err)
	}

	if result := Validate(config); result.HasErrors() {
		return nil, fmt.Errorf("keybinds.yaml has errors:\n%s", result.String())
	}

	ApplyConfig(registry, config)
	return registry, nil
}
