// Package chess provides the board, pieces and move generation.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Figure represents the kind of a chess piece.
type Figure int

const (
	Pawn Figure = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a figure.
func (f Figure) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if f >= 0 && int(f) < len(names) {
		return names[f]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a figure (uppercase).
func (f Figure) Letter() rune {
	letters := []rune{'P', 'N', 'B', 'R', 'Q', 'K'}
	if f >= 0 && int(f) < len(letters) {
		return letters[f]
	}
	return '?'
}

// FigureFromCode converts a piece letter (either case) to a figure.
func FigureFromCode(code rune) (Figure, bool) {
	switch code {
	case 'K', 'k':
		return King, true
	case 'Q', 'q':
		return Queen, true
	case 'R', 'r':
		return Rook, true
	case 'B', 'b':
		return Bishop, true
	case 'N', 'n':
		return Knight, true
	case 'P', 'p':
		return Pawn, true
	default:
		return 0, false
	}
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	FirstFile = 'A'
	LastFile  = FirstFile + BoardSize - 1
	FirstRank = 1
	LastRank  = BoardSize
)

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the rank holding the colour's king and rooks.
func HomeRank(colour Colour) int {
	if colour == White {
		return FirstRank
	}
	return LastRank
}

// PawnStartRank returns the rank pawns of the colour start on.
func PawnStartRank(colour Colour) int {
	if colour == White {
		return FirstRank + 1
	}
	return LastRank - 1
}

// PromotionRank returns the farthest rank for pawns of the colour.
func PromotionRank(colour Colour) int {
	return HomeRank(colour.Opposite())
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
