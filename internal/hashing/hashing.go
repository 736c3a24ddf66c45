// Package hashing provides Zobrist position keys and a node count cache
// keyed by them.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Zobrist keys. The seed is fixed so keys are stable across runs.
var (
	pieceKeys     [2][6][64]uint64
	whiteToMove   uint64
	castlingKeys  [4]uint64
	enPassantKeys [64]uint64
)

func init() {
	r := rand.New(rand.NewPCG(0x5a0b1257, 0x6f1c7e3d))
	for c := range pieceKeys {
		for f := range pieceKeys[c] {
			for sq := range pieceKeys[c][f] {
				pieceKeys[c][f][sq] = r.Uint64()
			}
		}
	}
	whiteToMove = r.Uint64()
	for i := range castlingKeys {
		castlingKeys[i] = r.Uint64()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = r.Uint64()
	}
}

// squareIndex maps A1..H8 to 0..63, file major.
func squareIndex(f chess.Field) int {
	return int(f.File()-chess.FirstFile)*chess.BoardSize + f.Rank() - chess.FirstRank
}

// PositionHash returns the Zobrist key of board with toMove on move. Two
// positions with equal keys have the same pieces, side to move, castling
// rights and en passant targets, barring collisions. Move history and
// clocks do not contribute.
func PositionHash(board *chess.Board, toMove chess.Colour) uint64 {
	var hash uint64
	for _, f := range chess.AllFields() {
		if p, ok := board.PieceAt(f); ok {
			hash ^= pieceKeys[p.Colour][p.Figure][squareIndex(f)]
		}
	}

	if toMove == chess.White {
		hash ^= whiteToMove
	}

	rights := board.CastlingRights()
	for i, ok := range []bool{rights.WhiteKingside, rights.WhiteQueenside, rights.BlackKingside, rights.BlackQueenside} {
		if ok {
			hash ^= castlingKeys[i]
		}
	}

	for _, f := range board.EnPassantTargets() {
		hash ^= enPassantKeys[squareIndex(f)]
	}
	return hash
}
