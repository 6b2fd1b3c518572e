// Package config loads the optional qpreview configuration file.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
	"github.com/kk-code-lab/qpreview/internal/keys"
)

// Input modes.
const (
	InputAuto     = "auto"
	InputGlobal   = "global"
	InputTerminal = "terminal"
)

// Config mirrors config.toml.
type Config struct {
	Fullscreen bool     `toml:"fullscreen"`
	Input      string   `toml:"input"`
	Watch      bool     `toml:"watch"`
	Hidden     bool     `toml:"hidden"`
	Include    []string `toml:"include"`
	LogLevel   string   `toml:"log_level"`
	LogFile    string   `toml:"log_file"`

	Previewer PreviewerConfig `toml:"previewer"`
	Keys      keys.Bindings   `toml:"keys"`
}

// PreviewerConfig overrides the platform previewer.
type PreviewerConfig struct {
	Command        string `toml:"command"`
	FullscreenArgs string `toml:"fullscreen_args"`
	// WindowsMode is "auto", "pipe" or "shell".
	WindowsMode string `toml:"windows_mode"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:    InputAuto,
		LogLevel: "info",
		Previewer: PreviewerConfig{
			WindowsMode: "auto",
		},
	}
}

// DefaultPath returns <UserConfigDir>/qpreview/config.toml.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "qpreview", "config.toml")
}

// Load reads path. A missing file yields the defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, apperr.WithPath(apperr.InvalidConfig, "read config", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, apperr.WithPath(apperr.InvalidConfig, "parse config", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperr.WithPath(apperr.InvalidConfig, "config", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and key bindings.
func (c *Config) Validate() error {
	c.Input = strings.ToLower(strings.TrimSpace(c.Input))
	switch c.Input {
	case "":
		c.Input = InputAuto
	case InputAuto, InputGlobal, InputTerminal:
	default:
		return errors.New(`input must be "auto", "global" or "terminal"`)
	}

	c.Previewer.WindowsMode = strings.ToLower(strings.TrimSpace(c.Previewer.WindowsMode))
	switch c.Previewer.WindowsMode {
	case "":
		c.Previewer.WindowsMode = "auto"
	case "auto", "pipe", "shell":
	default:
		return errors.New(`previewer.windows_mode must be "auto", "pipe" or "shell"`)
	}

	if _, err := keys.NewKeymap(c.Keys); err != nil {
		return err
	}
	return nil
}

// Keymap builds the key bindings described by the config.
func (c *Config) Keymap() (*keys.Keymap, error) {
	return keys.NewKeymap(c.Keys)
}
