package server

import (
	"context"
	"sync"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/output"
)

// Session owns one game shared by all HTTP clients. Reads take the read
// lock and mutations the write lock. The publish hook runs under the write
// lock, so subscribers see states in the order they were made.
type Session struct {
	mu      sync.RWMutex
	game    *engine.Game
	cfg     config.GameConfig
	publish func(*output.Snapshot)
}

// NewSession starts a session from the game settings.
func NewSession(cfg config.GameConfig) (*Session, error) {
	g, err := cfg.NewGame()
	if err != nil {
		return nil, err
	}
	return &Session{game: g, cfg: cfg}, nil
}

// OnChange sets the hook called with the new state after every accepted
// move or reset.
func (s *Session) OnChange(fn func(*output.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish = fn
}

// View calls fn with the current state while holding the read lock. No
// change is published while fn runs.
func (s *Session) View(fn func(*output.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(output.NewSnapshot(s.game))
}

// Snapshot returns the current state.
func (s *Session) Snapshot() *output.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return output.NewSnapshot(s.game)
}

// PossibleMoves returns the piece on origin and its destinations. ok is
// false when origin is empty.
func (s *Session) PossibleMoves(origin chess.Field) (piece chess.Piece, moves []chess.Field, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	piece, ok = s.game.Board().PieceAt(origin)
	if !ok {
		return piece, nil, false
	}
	return piece, s.game.PossibleMoves(origin), true
}

// Moves returns the side on move and all of its moves.
func (s *Session) Moves() (chess.Colour, []chess.Move) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.ToMove(), s.game.Moves()
}

// Play applies a move and returns the resulting state.
func (s *Session) Play(from, to chess.Field, promotion chess.Figure) (*output.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.Play(from, to, promotion); err != nil {
		return nil, err
	}
	return s.changed(), nil
}

// Reset starts a new game from fen, or from the configured start position
// when fen is empty. The current game is kept on error.
func (s *Session) Reset(fen string) (*output.Snapshot, error) {
	var (
		g   *engine.Game
		err error
	)
	if fen == "" {
		g, err = s.cfg.NewGame()
	} else {
		g, err = engine.NewGameFromFEN(fen, s.cfg.Options()...)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = g
	return s.changed(), nil
}

// changed publishes the current state. Callers hold the write lock.
func (s *Session) changed() *output.Snapshot {
	snap := output.NewSnapshot(s.game)
	if s.publish != nil {
		s.publish(snap)
	}
	return snap
}

// Perft counts nodes from the current position on a private copy, so the
// session stays available while it runs.
func (s *Session) Perft(ctx context.Context, depth, workers int) (engine.PerftResult, error) {
	s.mu.RLock()
	g := s.game.Copy()
	s.mu.RUnlock()
	return engine.Perft(ctx, g, depth, workers)
}
