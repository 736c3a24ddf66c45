package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// NewConfigBuilderFrom starts from an existing Config, for example one
// loaded from a file that command-line flags then override.
func NewConfigBuilderFrom(cfg *Config) *ConfigBuilder {
	c := *cfg
	return &ConfigBuilder{cfg: &c}
}

// Build validates and returns the built Config.
func (b *ConfigBuilder) Build() (*Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithLogFormat sets the log format.
func (b *ConfigBuilder) WithLogFormat(format string) *ConfigBuilder {
	b.cfg.Log.Format = format
	return b
}

// WithLogFile sends log records to a file instead of stderr.
func (b *ConfigBuilder) WithLogFile(path string) *ConfigBuilder {
	b.cfg.Log.File = path
	return b
}

// WithRenderStyle sets the board style.
func (b *ConfigBuilder) WithRenderStyle(style RenderStyle) *ConfigBuilder {
	b.cfg.Render.Style = style
	return b
}

// WithTurnEnforcement controls whether turn order is enforced.
func (b *ConfigBuilder) WithTurnEnforcement(enabled bool) *ConfigBuilder {
	b.cfg.Game.EnforceTurns = enabled
	return b
}

// WithDefaultPromotion sets the default promotion letter.
func (b *ConfigBuilder) WithDefaultPromotion(letter string) *ConfigBuilder {
	b.cfg.Game.DefaultPromotion = letter
	return b
}

// WithStartFEN sets the start position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Game.StartFEN = fen
	return b
}

// WithServerAddr sets the listen address.
func (b *ConfigBuilder) WithServerAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithPerftWorkers sets the perft worker pool size.
func (b *ConfigBuilder) WithPerftWorkers(n int) *ConfigBuilder {
	b.cfg.Server.PerftWorkers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}
