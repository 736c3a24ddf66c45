package config

import "github.com/lgbarn/chessboard-go/internal/errors"

// RenderStyle selects how boards are drawn.
type RenderStyle string

const (
	GridStyle    RenderStyle = "grid"    // Bordered grid with coordinates
	CompactStyle RenderStyle = "compact" // Eight lines of eight characters
	JSONStyle    RenderStyle = "json"    // Snapshot document
)

// RenderConfig holds settings related to board rendering.
type RenderConfig struct {
	// Style is grid, compact or json
	Style RenderStyle `toml:"style"`

	// MaxLineLength wraps the move history listing
	MaxLineLength int `toml:"max_line_length"`
}

// NewRenderConfig creates a RenderConfig with default values.
func NewRenderConfig() *RenderConfig {
	return &RenderConfig{
		Style:         GridStyle,
		MaxLineLength: 80,
	}
}

// Validate checks the style name and line length.
func (r *RenderConfig) Validate() error {
	switch r.Style {
	case GridStyle, CompactStyle, JSONStyle:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "render style %q (want grid, compact or json)", r.Style)
	}
	if r.MaxLineLength < 20 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max line length %d is below 20", r.MaxLineLength)
	}
	return nil
}
