package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

// Snapshot is a read-only view of a game in JSON form.
type Snapshot struct {
	FEN           string            `json:"fen"`
	Key           string            `json:"key"` // Zobrist key, 16 hex digits
	ToMove        string            `json:"toMove"` // "white" or "black"
	MoveNumber    int               `json:"moveNumber"`
	HalfmoveClock int               `json:"halfmoveClock"`
	Squares       map[string]string `json:"squares"` // "E2": "P"
	Ranks         []string          `json:"ranks"`   // Compact dump, rank 8 first
	Castling      JSONCastling      `json:"castling"`
	EnPassant     []string          `json:"enPassant,omitempty"`
	History       []JSONMove        `json:"history,omitempty"`
}

// JSONCastling mirrors chess.CastlingRights.
type JSONCastling struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

// JSONMove is one history entry.
type JSONMove struct {
	Ply  int    `json:"ply"`
	From string `json:"from"`
	To   string `json:"to"`
	UCI  string `json:"uci"`
}

// NewSnapshot captures the current state of g.
func NewSnapshot(g *engine.Game) *Snapshot {
	board := g.Board()
	s := &Snapshot{
		FEN:           g.FEN(),
		Key:           fmt.Sprintf("%016x", g.Hash()),
		ToMove:        strings.ToLower(g.ToMove().String()),
		MoveNumber:    g.MoveNumber(),
		HalfmoveClock: g.HalfmoveClock(),
		Squares:       make(map[string]string, board.Count()),
		Ranks:         Ranks(board),
		Castling:      castlingToJSON(board.CastlingRights()),
	}

	for _, f := range chess.AllFields() {
		if p, ok := board.PieceAt(f); ok {
			s.Squares[f.String()] = string(p.Code())
		}
	}
	for _, f := range board.EnPassantTargets() {
		s.EnPassant = append(s.EnPassant, f.String())
	}
	if history := board.History(); len(history) > 0 {
		s.History = MovesToJSON(history)
	}
	return s
}

// MoveToJSON converts a move made at the given ply.
func MoveToJSON(ply int, m chess.Move) JSONMove {
	return JSONMove{
		Ply:  ply,
		From: m.From.String(),
		To:   m.To.String(),
		UCI:  strings.ToLower(m.From.String() + m.To.String()),
	}
}

// MovesToJSON converts a move list, numbering plies from 1.
func MovesToJSON(moves []chess.Move) []JSONMove {
	out := make([]JSONMove, len(moves))
	for i, m := range moves {
		out[i] = MoveToJSON(i+1, m)
	}
	return out
}

func castlingToJSON(c chess.CastlingRights) JSONCastling {
	return JSONCastling{
		WhiteKingside:  c.WhiteKingside,
		WhiteQueenside: c.WhiteQueenside,
		BlackKingside:  c.BlackKingside,
		BlackQueenside: c.BlackQueenside,
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
