package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/studiowebux/keycap/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultBlurRecheck is the delay before the window focus is checked a second time
	DefaultBlurRecheck = 100 * time.Millisecond

	// HomeEnv overrides the configuration directory
	HomeEnv = "KEYCAP_HOME"
)

var (
	// ConfigDir is the global configuration directory (~/.keycap)
	ConfigDir string

	// DatabasePath is the SQLite database holding shortcuts and their history
	DatabasePath string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// KeybindsFile is the control keymap override file
	KeybindsFile string

	// LocalesDir holds translation catalogs (<tag>.yaml)
	LocalesDir string

	// LogDir holds rotated log files
	LogDir string
)

// Settings are user preferences read from settings.yaml
type Settings struct {
	Locale      string            `yaml:"locale,omitempty"`
	DefaultMode types.CaptureMode `yaml:"defaultMode,omitempty"`
	BlurRecheck time.Duration     `yaml:"blurRecheck,omitempty"`
	LogLevel    string            `yaml:"logLevel,omitempty"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		Locale:      "en",
		DefaultMode: types.ModeContent,
		BlurRecheck: DefaultBlurRecheck,
		LogLevel:    "info",
	}
}

// Initialize sets up the configuration directories and files
// It creates ~/.keycap/ if it doesn't exist
func Initialize() error {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".keycap")
	}

	SetPaths(dir)

	// Create directories if they don't exist
	for _, d := range []string{ConfigDir, LocalesDir, LogDir} {
		if err := os.MkdirAll(d, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// SetPaths points every path variable inside dir
func SetPaths(dir string) {
	ConfigDir = dir
	DatabasePath = filepath.Join(dir, "keycap.db")
	SettingsFile = filepath.Join(dir, "settings.yaml")
	KeybindsFile = filepath.Join(dir, "keybinds.json")
	LocalesDir = filepath.Join(dir, "locales")
	LogDir = filepath.Join(dir, "logs")
}

// LoadSettings reads settings.yaml, filling unset fields with defaults
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return settings, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if loaded.Locale != "" {
		settings.Locale = loaded.Locale
	}
	if loaded.DefaultMode != "" {
		settings.DefaultMode = loaded.DefaultMode
	}
	if loaded.BlurRecheck > 0 {
		settings.BlurRecheck = loaded.BlurRecheck
	}
	if loaded.LogLevel != "" {
		settings.LogLevel = strings.ToLower(loaded.LogLevel)
	}

	return settings, nil
}

// SaveSettings writes settings.yaml
func SaveSettings(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(SettingsFile, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
