package engine

import (
	"slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Play validates and applies a move for the game.
//
// The piece on from must exist, belong to the side on move when turns are
// enforced, and list to among its possible moves. A pawn reaching the last
// rank becomes promotion, or the game's default figure for NoPromotion;
// promotion is ignored for every other move.
// Failures are returned as *errors.MoveError wrapping a sentinel; the game
// is unchanged on error.
func (g *Game) Play(from, to chess.Field, promotion chess.Figure) error {
	moveErr := func(err error, piece string) error {
		return &errors.MoveError{
			Err:   err,
			Ply:   g.Ply() + 1,
			From:  from.String(),
			To:    to.String(),
			Piece: piece,
		}
	}

	piece, ok := g.board.PieceAt(from)
	if !ok {
		return moveErr(errors.ErrEmptyOrigin, "")
	}
	if g.enforceTurns && piece.Colour != g.toMove {
		return moveErr(errors.ErrWrongTurn, piece.String())
	}
	if !slices.Contains(g.board.PossibleMoves(from), to) {
		return moveErr(errors.ErrIllegalMove, piece.String())
	}
	if promotion == NoPromotion {
		promotion = g.defaultPromotion
	}
	if isPromotion(piece, to) && !IsPromotionFigure(promotion) {
		return moveErr(errors.ErrInvalidPromotion, piece.String())
	}

	capture := !g.board.IsEmpty(to) || (piece.Figure == chess.Pawn && from.File() != to.File())
	applyMove(g.board, from, to, promotion)

	if capture || piece.Figure == chess.Pawn {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}
	if piece.Colour == chess.Black {
		g.moveNumber++
	}
	g.toMove = piece.Colour.Opposite()
	return nil
}

// applyMove moves the piece on from and promotes a pawn that reaches its
// last rank.
func applyMove(board *chess.Board, from, to chess.Field, promotion chess.Figure) {
	piece, _ := board.PieceAt(from)
	if !board.MovePiece(from, to) {
		return
	}
	if isPromotion(piece, to) {
		board.AddPiece(to, chess.Piece{Colour: piece.Colour, Figure: promotion})
	}
}

func isPromotion(piece chess.Piece, to chess.Field) bool {
	return piece.Figure == chess.Pawn && to.Rank() == chess.PromotionRank(piece.Colour)
}
