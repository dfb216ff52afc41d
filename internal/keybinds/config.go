package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studiowebux/keycap/internal/config"
)

// ConfigVersion is written into generated keybinds.json files
const ConfigVersion = "1.0"

// ActionNone removes a default binding when used as an action
const ActionNone = "none"

// Config represents the user's keybinding configuration.
// Each section maps a key (as reported by the terminal, e.g. "ctrl+s") to an action.
type Config struct {
	Version   string                       `json:"version"`
	Global    map[string]string            `json:"global,omitempty"`
	Normal    map[string]string            `json:"normal,omitempty"`
	Capture   map[string]string            `json:"capture,omitempty"`
	TextInput map[string]string            `json:"text_input,omitempty"`
	Picker    map[string]string            `json:"picker,omitempty"`
	Custom    map[string]map[string]string `json:"custom,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DirPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, data, config.FilePermissions)
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	sections := map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextNormal:    c.Normal,
		ContextCapture:   c.Capture,
		ContextTextInput: c.TextInput,
		ContextPicker:    c.Picker,
	}
	for name, bindings := range c.Custom {
		sections[Context(name)] = bindings
	}
	return sections
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings
func ApplyConfig(registry *Registry, cfg *Config) error {
	for context, bindings := range cfg.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			if actionStr == ActionNone {
				registry.Unregister(context, key)
				continue
			}
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s/%s: %w", context, key, err)
			}
			registry.Register(context, key, Action(actionStr))
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, cfg); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportRegistry converts a registry back into a config
func ExportRegistry(registry *Registry) *Config {
	cfg := &Config{Version: ConfigVersion}
	for _, context := range registry.Contexts() {
		section := make(map[string]string)
		for key, action := range registry.bindings[context] {
			section[key] = string(action)
		}
		switch context {
		case ContextGlobal:
			cfg.Global = section
		case ContextNormal:
			cfg.Normal = section
		case ContextCapture:
			cfg.Capture = section
		case ContextTextInput:
			cfg.TextInput = section
		case ContextPicker:
			cfg.Picker = section
		default:
			if cfg.Custom == nil {
				cfg.Custom = make(map[string]map[string]string)
			}
			cfg.Custom[string(context)] = section
		}
	}
	return cfg
}

// CreateExampleConfig writes the default bindings so users can see what can be customized
func CreateExampleConfig(path string) error {
	return SaveConfig(ExportRegistry(NewDefaultRegistry()), path)
}
