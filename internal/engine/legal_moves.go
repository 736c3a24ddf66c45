package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// AllPossibleMoves returns every move available to colour, scanning files
// A to H and, within a file, ranks 1 to 8. Moves are pseudo-legal: a move
// that leaves the own king attacked is still listed.
func AllPossibleMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	forEachPiece(board, colour, func(from chess.Field) bool {
		for _, to := range board.PossibleMoves(from) {
			moves = append(moves, chess.Move{From: from, To: to})
		}
		return true
	})
	return moves
}

// HasPossibleMoves reports whether colour has at least one move.
func HasPossibleMoves(board *chess.Board, colour chess.Colour) bool {
	found := false
	forEachPiece(board, colour, func(from chess.Field) bool {
		found = len(board.PossibleMoves(from)) > 0
		return !found
	})
	return found
}

// forEachPiece calls fn for every field holding a piece of colour until fn
// returns false.
func forEachPiece(board *chess.Board, colour chess.Colour, fn func(chess.Field) bool) {
	for file := chess.FirstFile; file <= chess.LastFile; file++ {
		for rank := chess.FirstRank; rank <= chess.LastRank; rank++ {
			f := chess.MustField(file, rank)
			piece, ok := board.PieceAt(f)
			if !ok || piece.Colour != colour {
				continue
			}
			if !fn(f) {
				return
			}
		}
	}
}
