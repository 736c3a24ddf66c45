package config

import (
	"time"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// ServerConfig holds settings for the HTTP front end.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// PerftMaxDepth caps the depth accepted by the perft endpoint
	PerftMaxDepth int `toml:"perft_max_depth"`

	// PerftWorkers is the worker pool size for perft; 0 means one per CPU
	PerftWorkers int `toml:"perft_workers"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            "127.0.0.1:8080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		PerftMaxDepth:   4,
	}
}

// Validate checks timeouts and limits.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "server address is empty")
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "server timeouts must be positive")
	}
	if s.PerftMaxDepth < 1 || s.PerftMaxDepth > 6 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft max depth %d (want 1-6)", s.PerftMaxDepth)
	}
	if s.PerftWorkers < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft workers %d is negative", s.PerftWorkers)
	}
	return nil
}
