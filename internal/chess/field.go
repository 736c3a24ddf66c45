package chess

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Field is a single board coordinate. The zero value is not a valid field;
// fields are only obtained through NewField and its helpers, which keeps
// both components in range. Fields compare by value and work as map keys.
type Field struct {
	file byte // 'A'..'H'
	rank int  // 1..8
}

// NewField returns the field at the given file letter (either case) and rank.
// It reports false when the file is outside A-H or the rank outside 1-8.
func NewField(file rune, rank int) (Field, bool) {
	file = unicode.ToUpper(file)
	if file < FirstFile || file > LastFile {
		return Field{}, false
	}
	if rank < FirstRank || rank > LastRank {
		return Field{}, false
	}
	return Field{file: byte(file), rank: rank}, true
}

// MustField is like NewField but panics on invalid input. It is intended
// for fixed coordinates in tables and tests.
func MustField(file rune, rank int) Field {
	f, ok := NewField(file, rank)
	if !ok {
		panic(fmt.Sprintf("chess: invalid field %c%d", file, rank))
	}
	return f
}

// ParseField parses a coordinate such as "e4" or "E4".
func ParseField(s string) (Field, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Field{}, &errors.ParseError{
			Err:      errors.ErrInvalidField,
			Input:    s,
			Expected: "file letter and rank digit",
		}
	}
	f, ok := NewField(rune(s[0]), int(s[1])-'0')
	if !ok {
		return Field{}, &errors.ParseError{
			Err:      errors.ErrInvalidField,
			Input:    s,
			Expected: "square between a1 and h8",
		}
	}
	return f, nil
}

// File returns the file letter, 'A' to 'H'.
func (f Field) File() rune {
	return rune(f.file)
}

// Rank returns the rank number, 1 to 8.
func (f Field) Rank() int {
	return f.rank
}

// IsValid reports whether f was built from an in-range coordinate.
func (f Field) IsValid() bool {
	return f.file >= FirstFile && f.file <= LastFile && f.rank >= FirstRank && f.rank <= LastRank
}

// String returns the coordinate in upper case, e.g. "E4".
func (f Field) String() string {
	if !f.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", f.file, f.rank)
}

// Offset returns the field df files and dr ranks away, or false if that
// lands off the board.
func (f Field) Offset(df, dr int) (Field, bool) {
	if !f.IsValid() {
		return Field{}, false
	}
	return NewField(rune(int(f.file)+df), f.rank+dr)
}

// Top returns the neighbour one rank up.
func (f Field) Top() (Field, bool) {
	return f.Offset(0, 1)
}

// Bottom returns the neighbour one rank down.
func (f Field) Bottom() (Field, bool) {
	return f.Offset(0, -1)
}

// Left returns the neighbour one file toward A.
func (f Field) Left() (Field, bool) {
	return f.Offset(-1, 0)
}

// Right returns the neighbour one file toward H.
func (f Field) Right() (Field, bool) {
	return f.Offset(1, 0)
}

// AllFields returns the 64 fields ordered rank 8 down to rank 1, files A to H.
func AllFields() []Field {
	fields := make([]Field, 0, BoardSize*BoardSize)
	for rank := LastRank; rank >= FirstRank; rank-- {
		for file := rune(FirstFile); file <= LastFile; file++ {
			fields = append(fields, Field{file: byte(file), rank: rank})
		}
	}
	return fields
}
