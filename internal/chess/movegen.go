package chess

// Offsets are (file, rank) pairs. Their order fixes the order of the
// generated destinations.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// PossibleMoves returns the destinations the piece on origin may move to.
// Moves that leave the own king attacked are not filtered out. The result
// is empty when origin holds no piece.
func (b *Board) PossibleMoves(origin Field) []Field {
	piece, ok := b.occupancy[origin]
	if !ok {
		return nil
	}

	switch piece.Figure {
	case Pawn:
		return b.pawnMoves(origin, piece.Colour)
	case Knight:
		return b.stepMoves(origin, piece.Colour, knightOffsets[:])
	case Bishop:
		return b.slidingMoves(origin, piece.Colour, true, false)
	case Rook:
		return b.slidingMoves(origin, piece.Colour, false, true)
	case Queen:
		return b.slidingMoves(origin, piece.Colour, true, true)
	case King:
		moves := b.stepMoves(origin, piece.Colour, kingOffsets[:])
		return append(moves, b.castlingMoves(origin, piece.Colour)...)
	}
	return nil
}

// PossibleMovesAt is PossibleMoves for a human coordinate such as ('b', 2).
// An invalid coordinate yields no moves.
func (b *Board) PossibleMovesAt(file rune, rank int) []Field {
	f, ok := NewField(file, rank)
	if !ok {
		return nil
	}
	return b.PossibleMoves(f)
}

// canLandOn reports whether a piece of the colour may end its move on f:
// the square is empty or holds an opponent piece.
func (b *Board) canLandOn(f Field, colour Colour) bool {
	occupant, ok := b.occupancy[f]
	return !ok || occupant.Colour != colour
}

// pawnMoves generates pushes first, then captures toward the A side and
// the H side.
func (b *Board) pawnMoves(origin Field, colour Colour) []Field {
	var moves []Field
	dir := ColourOffset(colour)

	if one, ok := origin.Offset(0, dir); ok && b.IsEmpty(one) {
		moves = append(moves, one)
		if origin.rank == PawnStartRank(colour) {
			if two, ok := origin.Offset(0, 2*dir); ok && b.IsEmpty(two) {
				moves = append(moves, two)
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		target, ok := origin.Offset(df, dir)
		if !ok {
			continue
		}
		if occupant, occupied := b.occupancy[target]; occupied {
			if occupant.Colour != colour {
				moves = append(moves, target)
			}
		} else if _, ok := b.enPassantCapture(target, colour); ok {
			moves = append(moves, target)
		}
	}
	return moves
}

// enPassantCapture returns the square of the pawn a colour pawn takes by
// moving onto target. ok is false unless target is an empty en passant
// square with an opponent pawn behind it.
func (b *Board) enPassantCapture(target Field, colour Colour) (Field, bool) {
	if !b.IsEmpty(target) || !b.IsEnPassantTarget(target) {
		return Field{}, false
	}
	behind, ok := target.Offset(0, -ColourOffset(colour))
	if !ok {
		return Field{}, false
	}
	victim, ok := b.occupancy[behind]
	if !ok || victim.Figure != Pawn || victim.Colour == colour {
		return Field{}, false
	}
	return behind, true
}

// stepMoves handles the knight and the king's ordinary moves.
func (b *Board) stepMoves(origin Field, colour Colour, offsets [][2]int) []Field {
	var moves []Field
	for _, offset := range offsets {
		target, ok := origin.Offset(offset[0], offset[1])
		if ok && b.canLandOn(target, colour) {
			moves = append(moves, target)
		}
	}
	return moves
}

// slidingMoves walks each ray until the board edge or the first occupant,
// which is included only when it belongs to the opponent.
func (b *Board) slidingMoves(origin Field, colour Colour, diagonal, straight bool) []Field {
	var dirs [][2]int
	if diagonal {
		dirs = append(dirs, diagonalDirs[:]...)
	}
	if straight {
		dirs = append(dirs, straightDirs[:]...)
	}

	var moves []Field
	for _, dir := range dirs {
		target, ok := origin.Offset(dir[0], dir[1])
		for ok {
			if occupant, occupied := b.occupancy[target]; occupied {
				if occupant.Colour != colour {
					moves = append(moves, target)
				}
				break // Blocked
			}
			moves = append(moves, target)
			target, ok = target.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// castlingMoves returns the king's two-square destinations. Castling needs
// the right, the king on E of its home rank, the rook on its corner and
// empty squares in between. Attacked squares are not considered.
func (b *Board) castlingMoves(origin Field, colour Colour) []Field {
	home := HomeRank(colour)
	if origin != MustField('E', home) {
		return nil
	}
	rook := Piece{Colour: colour, Figure: Rook}

	var moves []Field
	if b.castling.Kingside(colour) && b.holds(MustField('H', home), rook) &&
		b.allEmpty(home, 'F', 'G') {
		moves = append(moves, MustField('G', home))
	}
	if b.castling.Queenside(colour) && b.holds(MustField('A', home), rook) &&
		b.allEmpty(home, 'B', 'C', 'D') {
		moves = append(moves, MustField('C', home))
	}
	return moves
}

func (b *Board) holds(f Field, p Piece) bool {
	occupant, ok := b.occupancy[f]
	return ok && occupant == p
}

func (b *Board) allEmpty(rank int, files ...rune) bool {
	for _, file := range files {
		if !b.IsEmpty(MustField(file, rank)) {
			return false
		}
	}
	return true
}
