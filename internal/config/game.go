package config

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// GameConfig holds settings for new games.
type GameConfig struct {
	// EnforceTurns rejects moves by the side not on move
	EnforceTurns bool `toml:"enforce_turns"`

	// DefaultPromotion is the figure letter (q, r, b, n) used when a move
	// reaching the last rank names none
	DefaultPromotion string `toml:"default_promotion"`

	// StartFEN is the position new games and resets start from; empty
	// means the standard starting position
	StartFEN string `toml:"start_fen"`
}

// NewGameConfig creates a GameConfig with default values.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		EnforceTurns:     true,
		DefaultPromotion: "q",
	}
}

// Validate checks the promotion letter and the start position.
func (g *GameConfig) Validate() error {
	if g.DefaultPromotion == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "default promotion is empty")
	}
	if _, err := engine.ParsePromotion(g.DefaultPromotion); err != nil {
		return fmt.Errorf("default promotion: %w: %w", errors.ErrInvalidConfig, err)
	}
	if g.StartFEN != "" {
		if _, err := engine.NewGameFromFEN(g.StartFEN); err != nil {
			return fmt.Errorf("start position: %w: %w", errors.ErrInvalidConfig, err)
		}
	}
	return nil
}

// Options converts the settings into engine options.
func (g *GameConfig) Options() []engine.Option {
	opts := []engine.Option{engine.WithTurnEnforcement(g.EnforceTurns)}
	if figure, err := engine.ParsePromotion(g.DefaultPromotion); err == nil && figure != engine.NoPromotion {
		opts = append(opts, engine.WithDefaultPromotion(figure))
	}
	return opts
}

// NewGame starts a game from StartFEN, or the standard position when it is
// empty, with the configured options.
func (g *GameConfig) NewGame() (*engine.Game, error) {
	if g.StartFEN == "" {
		return engine.NewGame(g.Options()...), nil
	}
	return engine.NewGameFromFEN(g.StartFEN, g.Options()...)
}
