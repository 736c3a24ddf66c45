package testutil

import (
	"strings"
	"testing"
	"unicode"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// MustField parses a square such as "e4". It calls t.Fatal on bad input.
func MustField(t *testing.T, square string) chess.Field {
	t.Helper()
	f, err := chess.ParseField(square)
	if err != nil {
		t.Fatalf("MustField(%q): %v", square, err)
	}
	return f
}

// BoardWith returns a board holding exactly the given pieces. Keys are
// squares ("d4"), values piece letters: upper case White, lower case Black.
// Castling rights are the defaults of a new board.
func BoardWith(t *testing.T, pieces map[string]rune) *chess.Board {
	t.Helper()
	b := chess.NewBoard()
	for square, code := range pieces {
		p, ok := chess.NewPiece(unicode.IsUpper(code), code)
		if !ok {
			t.Fatalf("BoardWith: invalid piece %q on %s", code, square)
		}
		b.AddPiece(MustField(t, square), p)
	}
	return b
}

// FieldStrings renders fields as upper case squares, preserving order.
func FieldStrings(fields []chess.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}

func normalizeSquares(squares []string) []string {
	out := make([]string, len(squares))
	for i, s := range squares {
		out[i] = strings.ToUpper(s)
	}
	return out
}
