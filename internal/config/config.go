// Package config provides configuration for chessboard.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Game   GameConfig   `toml:"game"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`

	// Output stream for rendered boards and command replies
	OutputFile io.Writer `toml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Log:        *NewLogConfig(),
		Game:       *NewGameConfig(),
		Render:     *NewRenderConfig(),
		Server:     *NewServerConfig(),
		OutputFile: os.Stdout,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
// Keys that match no setting are rejected.
func Parse(data string) (*Config, error) {
	cfg := NewConfig()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w: %w", errors.ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}
