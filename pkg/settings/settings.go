// Package settings handles loading the respdto configuration from
// ~/.respdto/settings.json and layering environment overrides on top.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ai8future/chassis-go/v5/config"

	"respdto/pkg/codec"
)

const (
	ConfigDirName  = ".respdto"
	ConfigFileName = "settings.json"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	// ErrInvalidColor is returned for a color mode other than auto, always or never.
	ErrInvalidColor = errors.New("invalid color mode")
	// ErrNotFound is returned by Load when the settings file does not exist.
	ErrNotFound = errors.New("settings file not found")
)

// Settings holds output configuration for the respdto tools
type Settings struct {
	Format   string `json:"format"`              // json, yaml, toml or table
	Indent   string `json:"indent,omitempty"`    // Indent unit for json/yaml/toml, empty for compact
	Color    string `json:"color,omitempty"`     // auto, always or never
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
}

// EnvOverrides allows environment variables to override settings.json values.
// Only non-empty values apply.
// Merge order: defaults < settings.json < env vars < CLI flags.
type EnvOverrides struct {
	Format   string `env:"RESPDTO_FORMAT" required:"false"`
	Indent   string `env:"RESPDTO_INDENT" required:"false"`
	Color    string `env:"RESPDTO_COLOR" required:"false"`
	LogLevel string `env:"RESPDTO_LOG_LEVEL" required:"false"`
}

// applyEnvOverrides loads environment variable overrides and merges them into settings.
func applyEnvOverrides(s *Settings) {
	env := config.MustLoad[EnvOverrides]()

	if env.Format != "" {
		s.Format = env.Format
	}
	if env.Indent != "" {
		s.Indent = unescapeIndent(env.Indent)
	}
	if env.Color != "" {
		s.Color = env.Color
	}
	if env.LogLevel != "" {
		s.LogLevel = env.LogLevel
	}
}

// unescapeIndent lets shells pass a tab as the two characters \t.
func unescapeIndent(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}

// GetConfigDir returns the path to the config directory (~/.respdto)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ConfigDirName)
}

// GetConfigPath returns the full path to settings.json
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// GetDefaultSettings returns compact JSON with automatic color and info logging.
func GetDefaultSettings() *Settings {
	return &Settings{
		Format:   string(codec.FormatJSON),
		Indent:   "",
		Color:    ColorAuto,
		LogLevel: "info",
	}
}

// Load reads settings from path. Missing fields keep their defaults.
func Load(path string) (*Settings, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat settings file: %w", err)
	}

	mode := info.Mode().Perm()
	if mode&0002 != 0 { // world-writable
		fmt.Fprintf(os.Stderr, "Warning: settings file %s is world-writable (mode %o). Run: chmod 600 %s\n", path, mode, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s := GetDefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return s, nil
}

// LoadFile loads settings from path and applies RESPDTO_* env overrides.
// Any problem with the file, including its absence, is returned.
func LoadFile(path string) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(s)
	return s, nil
}

// LoadWithFallback loads settings from path, falling back to defaults when the
// file is missing or unusable, then applies RESPDTO_* env overrides. Settings
// are always returned; the error is non-nil only when the file exists but
// could not be loaded.
func LoadWithFallback(path string) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		s = GetDefaultSettings()
		if errors.Is(err, ErrNotFound) {
			err = nil
		}
	}
	applyEnvOverrides(s)
	return s, err
}

// Validate checks the format and color fields.
func (s *Settings) Validate() error {
	if _, err := codec.ParseFormat(s.Format); err != nil {
		return err
	}
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidColor, s.Color)
}

// Save writes settings to path with 0600 permissions, creating the directory.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
