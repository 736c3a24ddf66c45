// Package engine layers game rules on top of the chess board: turn order,
// promotion, move clocks, FEN import and export, and perft node counting.
package engine

import (
	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/hashing"
)

// NoPromotion asks Play to use the game's default promotion figure.
const NoPromotion = chess.Pawn

// Game is a board plus the bookkeeping the board itself does not track.
type Game struct {
	board            *chess.Board
	toMove           chess.Colour
	moveNumber       int
	halfmoveClock    int
	enforceTurns     bool
	defaultPromotion chess.Figure

	// Side and move number the history starts from
	startColour     chess.Colour
	startMoveNumber int
}

// Option configures a Game.
type Option func(*Game)

// WithTurnEnforcement controls whether Play rejects moves by the side not
// on move.
func WithTurnEnforcement(enforce bool) Option {
	return func(g *Game) {
		g.enforceTurns = enforce
	}
}

// WithDefaultPromotion sets the figure a pawn becomes when Play is given
// NoPromotion. Figures other than knight, bishop, rook or queen are ignored.
func WithDefaultPromotion(figure chess.Figure) Option {
	return func(g *Game) {
		if IsPromotionFigure(figure) {
			g.defaultPromotion = figure
		}
	}
}

// NewGame creates a game in the standard starting position.
func NewGame(opts ...Option) *Game {
	g := newGame(opts...)
	g.board.SetupInitialPosition()
	return g
}

func newGame(opts ...Option) *Game {
	g := &Game{
		board:            chess.NewBoard(),
		toMove:           chess.White,
		moveNumber:       1,
		enforceTurns:     true,
		defaultPromotion: chess.Queen,
		startColour:      chess.White,
		startMoveNumber:  1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Board returns the underlying board. Changes made through it bypass turn
// and clock bookkeeping.
func (g *Game) Board() *chess.Board {
	return g.board
}

// ToMove returns the side on move.
func (g *Game) ToMove() chess.Colour {
	return g.toMove
}

// MoveNumber returns the full move number, starting at 1 and incremented
// after each Black move.
func (g *Game) MoveNumber() int {
	return g.moveNumber
}

// HalfmoveClock returns the number of plies since the last capture or
// pawn move.
func (g *Game) HalfmoveClock() int {
	return g.halfmoveClock
}

// Ply returns the number of moves in the board history.
func (g *Game) Ply() int {
	return len(g.board.History())
}

// Hash returns the Zobrist key of the current position.
func (g *Game) Hash() uint64 {
	return hashing.PositionHash(g.board, g.toMove)
}

// Reset returns the game to the starting position, keeping its options.
func (g *Game) Reset() {
	g.board.SetupInitialPosition()
	g.toMove = chess.White
	g.moveNumber = 1
	g.halfmoveClock = 0
	g.startColour = chess.White
	g.startMoveNumber = 1
}

// Start returns the side on move and the move number of the position the
// history starts from.
func (g *Game) Start() (chess.Colour, int) {
	return g.startColour, g.startMoveNumber
}

// PossibleMoves returns the destinations for the piece on origin.
func (g *Game) PossibleMoves(origin chess.Field) []chess.Field {
	return g.board.PossibleMoves(origin)
}

// Moves returns every move available to the side on move.
func (g *Game) Moves() []chess.Move {
	return AllPossibleMoves(g.board, g.toMove)
}

// Copy returns an independent copy of the game.
func (g *Game) Copy() *Game {
	c := *g
	c.board = g.board.Copy()
	return &c
}

// IsPromotionFigure reports whether a pawn may become figure.
func IsPromotionFigure(figure chess.Figure) bool {
	switch figure {
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		return true
	}
	return false
}

// ParsePromotion converts a promotion letter such as "q" or "N" into a
// figure. The empty string yields NoPromotion.
func ParsePromotion(s string) (chess.Figure, error) {
	if s == "" {
		return NoPromotion, nil
	}
	r := []rune(s)
	if len(r) == 1 {
		if figure, ok := chess.FigureFromCode(r[0]); ok && IsPromotionFigure(figure) {
			return figure, nil
		}
	}
	return NoPromotion, &errors.ParseError{
		Err:      errors.ErrInvalidPromotion,
		Input:    s,
		Expected: "one of q, r, b, n",
		Got:      s,
	}
}
