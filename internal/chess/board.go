package chess

// Move is one entry of the move history: the origin and destination of an
// applied move.
type Move struct {
	From Field
	To   Field
}

// String returns the move in long form, e.g. "E2-E4".
func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// CastlingRights holds the four independent castling flags.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights returns rights with every flag set.
func AllCastlingRights() CastlingRights {
	return CastlingRights{
		WhiteKingside:  true,
		WhiteQueenside: true,
		BlackKingside:  true,
		BlackQueenside: true,
	}
}

// Kingside reports whether the colour may still castle on the king side.
func (c CastlingRights) Kingside(colour Colour) bool {
	if colour == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports whether the colour may still castle on the queen side.
func (c CastlingRights) Queenside(colour Colour) bool {
	if colour == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

func (c *CastlingRights) revokeKingside(colour Colour) {
	if colour == White {
		c.WhiteKingside = false
	} else {
		c.BlackKingside = false
	}
}

func (c *CastlingRights) revokeQueenside(colour Colour) {
	if colour == White {
		c.WhiteQueenside = false
	} else {
		c.BlackQueenside = false
	}
}

// Occupancy is the read-only view renderers consume.
type Occupancy interface {
	PieceAt(f Field) (Piece, bool)
}

// Board holds the pieces, the move history and the special-rule state
// that move generation consults. A Board is not safe for concurrent use:
// reads may run in parallel, but every mutation must be serialized by the
// owner.
type Board struct {
	// Pieces keyed by field. Empty squares have no entry.
	occupancy map[Field]Piece

	// Every accepted move, oldest first.
	history []Move

	// Squares that may be captured onto en passant on the next move only.
	enPassant []Field

	castling CastlingRights
}

// NewBoard creates a new empty board with all castling rights set.
func NewBoard() *Board {
	return &Board{
		occupancy: make(map[Field]Piece),
		castling:  AllCastlingRights(),
	}
}

// AddPiece places a piece on a field, replacing any occupant.
func (b *Board) AddPiece(f Field, p Piece) {
	if !f.IsValid() {
		return
	}
	b.occupancy[f] = p
}

// ClearField removes any piece from the field.
func (b *Board) ClearField(f Field) {
	delete(b.occupancy, f)
}

// Reset removes every piece. History and rule state are left alone.
func (b *Board) Reset() {
	clear(b.occupancy)
}

// backRank lists the figures on ranks 1 and 8, files A to H.
var backRank = [BoardSize]Figure{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// SetupInitialPosition sets up the standard chess starting position and
// restores the rule state to that of a new game.
func (b *Board) SetupInitialPosition() {
	b.Reset()

	for i, figure := range backRank {
		file := rune(FirstFile + i)
		b.occupancy[MustField(file, 1)] = W(figure)
		b.occupancy[MustField(file, 2)] = W(Pawn)
		b.occupancy[MustField(file, 7)] = B(Pawn)
		b.occupancy[MustField(file, 8)] = B(figure)
	}

	b.history = nil
	b.enPassant = nil
	b.castling = AllCastlingRights()
}

// PieceAt returns the piece on the field, if any.
func (b *Board) PieceAt(f Field) (Piece, bool) {
	p, ok := b.occupancy[f]
	return p, ok
}

// PieceAtCoords returns the piece at a human coordinate such as ('b', 2).
// The file letter is case-insensitive.
func (b *Board) PieceAtCoords(file rune, rank int) (Piece, bool) {
	f, ok := NewField(file, rank)
	if !ok {
		return Piece{}, false
	}
	return b.PieceAt(f)
}

// IsEmpty reports whether no piece occupies the field.
func (b *Board) IsEmpty(f Field) bool {
	_, ok := b.occupancy[f]
	return !ok
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	return len(b.occupancy)
}

// History returns a copy of the move history, oldest first.
func (b *Board) History() []Move {
	if len(b.history) == 0 {
		return nil
	}
	return append([]Move(nil), b.history...)
}

// LastMove returns the most recent move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

// EnPassantTargets returns a copy of the squares currently capturable en passant.
func (b *Board) EnPassantTargets() []Field {
	if len(b.enPassant) == 0 {
		return nil
	}
	return append([]Field(nil), b.enPassant...)
}

// IsEnPassantTarget reports whether f may be captured onto en passant.
func (b *Board) IsEnPassantTarget(f Field) bool {
	for _, target := range b.enPassant {
		if target == f {
			return true
		}
	}
	return false
}

// CastlingRights returns the current castling flags.
func (b *Board) CastlingRights() CastlingRights {
	return b.castling
}

// MovePiece moves the piece on origin to destination, capturing whatever
// stands there, and updates history, castling rights and en-passant state.
// It reports false, leaving the board untouched, when origin is empty.
// Legality is not checked; callers that need it pick destination from
// PossibleMoves.
func (b *Board) MovePiece(origin, destination Field) bool {
	piece, ok := b.occupancy[origin]
	if !ok || !destination.IsValid() {
		return false
	}

	if piece.Figure == Pawn && origin.file != destination.file {
		if captured, ok := b.enPassantCapture(destination, piece.Colour); ok {
			delete(b.occupancy, captured)
		}
	}

	delete(b.occupancy, origin)
	b.occupancy[destination] = piece

	if piece.Figure == King && origin == MustField('E', HomeRank(piece.Colour)) &&
		origin.rank == destination.rank && abs(int(destination.file)-int(origin.file)) == 2 {
		b.relocateCastlingRook(piece.Colour, origin, destination)
	}

	b.history = append(b.history, Move{From: origin, To: destination})
	b.updateCastlingRights(piece, origin, destination)
	b.updateEnPassant(piece, origin, destination)

	return true
}

// relocateCastlingRook completes a castling move by moving the rook next
// to the king on the inner side.
func (b *Board) relocateCastlingRook(colour Colour, kingFrom, kingTo Field) {
	rank := kingFrom.rank
	rookFrom, rookTo := MustField('H', rank), MustField('F', rank)
	if kingTo.file < kingFrom.file {
		rookFrom, rookTo = MustField('A', rank), MustField('D', rank)
	}
	if rook, ok := b.occupancy[rookFrom]; ok && rook == (Piece{Colour: colour, Figure: Rook}) {
		delete(b.occupancy, rookFrom)
		b.occupancy[rookTo] = rook
	}
}

// updateCastlingRights removes rights when a king moves or when a rook
// leaves, or is captured on, its corner.
func (b *Board) updateCastlingRights(piece Piece, origin, destination Field) {
	if piece.Figure == King {
		b.castling.revokeKingside(piece.Colour)
		b.castling.revokeQueenside(piece.Colour)
	}
	for _, f := range [2]Field{origin, destination} {
		switch f {
		case MustField('A', 1):
			b.castling.revokeQueenside(White)
		case MustField('H', 1):
			b.castling.revokeKingside(White)
		case MustField('A', 8):
			b.castling.revokeQueenside(Black)
		case MustField('H', 8):
			b.castling.revokeKingside(Black)
		}
	}
}

// updateEnPassant replaces the en-passant targets: only a two-square pawn
// advance from the start rank creates one, the square passed over.
func (b *Board) updateEnPassant(piece Piece, origin, destination Field) {
	b.enPassant = nil
	if piece.Figure != Pawn || origin.file != destination.file {
		return
	}
	dir := ColourOffset(piece.Colour)
	if origin.rank == PawnStartRank(piece.Colour) && destination.rank-origin.rank == 2*dir {
		if passed, ok := origin.Offset(0, dir); ok {
			b.enPassant = []Field{passed}
		}
	}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	return NewBoardFromState(b.State())
}

// BoardState captures all board state for save/restore and for building
// positions that were not reached by play, such as FEN imports.
type BoardState struct {
	Pieces    map[Field]Piece
	History   []Move
	EnPassant []Field
	Castling  CastlingRights
}

// State captures the current board state. The returned value shares no
// memory with the board.
func (b *Board) State() BoardState {
	pieces := make(map[Field]Piece, len(b.occupancy))
	for f, p := range b.occupancy {
		pieces[f] = p
	}
	return BoardState{
		Pieces:    pieces,
		History:   b.History(),
		EnPassant: b.EnPassantTargets(),
		Castling:  b.castling,
	}
}

// NewBoardFromState builds a board from a captured state. Invalid fields
// in the state are ignored.
func NewBoardFromState(s BoardState) *Board {
	b := &Board{
		occupancy: make(map[Field]Piece, len(s.Pieces)),
		castling:  s.Castling,
	}
	for f, p := range s.Pieces {
		b.AddPiece(f, p)
	}
	b.history = append(b.history, s.History...)
	for _, f := range s.EnPassant {
		if f.IsValid() {
			b.enPassant = append(b.enPassant, f)
		}
	}
	return b
}

// RestoreState restores the board to a previously captured state.
func (b *Board) RestoreState(s BoardState) {
	*b = *NewBoardFromState(s)
}
