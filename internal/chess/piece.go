package chess

import "unicode"

// Piece is a coloured figure.
type Piece struct {
	Colour Colour
	Figure Figure
}

// NewPiece builds a piece from a colour flag and a figure letter
// (k, q, r, b, n or p in either case). It reports false for any other letter.
func NewPiece(white bool, code rune) (Piece, bool) {
	figure, ok := FigureFromCode(code)
	if !ok {
		return Piece{}, false
	}
	colour := Black
	if white {
		colour = White
	}
	return Piece{Colour: colour, Figure: figure}, true
}

// W creates a white piece.
func W(figure Figure) Piece {
	return Piece{Colour: White, Figure: figure}
}

// B creates a black piece.
func B(figure Figure) Piece {
	return Piece{Colour: Black, Figure: figure}
}

// Code returns the display letter: upper case for White, lower case for Black.
func (p Piece) Code() rune {
	letter := p.Figure.Letter()
	if p.Colour == Black {
		return unicode.ToLower(letter)
	}
	return letter
}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	return p.Colour.String() + " " + p.Figure.String()
}
