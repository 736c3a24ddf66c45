package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewGameFromFEN creates a game from a FEN string. Only the placement field
// is required; missing trailing fields default to "w - - 0 1". The move
// history of the resulting board is empty.
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, fenError(fen, 0, "piece placement", "empty string")
	}
	if len(parts) > 6 {
		return nil, fenError(fen, 0, "at most 6 fields", strconv.Itoa(len(parts)))
	}

	g := newGame(opts...)
	state := chess.BoardState{Pieces: make(map[chess.Field]chess.Piece)}

	if err := parsePiecePositions(state.Pieces, fen, parts[0]); err != nil {
		return nil, err
	}
	if len(parts) > 1 {
		if err := parseSideToMove(g, fen, parts[1]); err != nil {
			return nil, err
		}
	}
	if len(parts) > 2 {
		castling, err := parseCastlingRights(fen, parts[2])
		if err != nil {
			return nil, err
		}
		state.Castling = castling
	}
	if len(parts) > 3 {
		ep, err := parseEnPassant(fen, parts[3])
		if err != nil {
			return nil, err
		}
		state.EnPassant = ep
	}
	if len(parts) > 4 {
		if err := parseClocks(g, fen, parts[4:]); err != nil {
			return nil, err
		}
	}

	g.board = chess.NewBoardFromState(state)
	g.startColour, g.startMoveNumber = g.toMove, g.moveNumber
	return g, nil
}

// fenError builds a *errors.ParseError wrapping ErrInvalidFEN.
func fenError(fen string, column int, expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidFEN,
		Input:    fen,
		Column:   column,
		Expected: expected,
		Got:      got,
	}
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(pieces map[chess.Field]chess.Piece, fen, positions string) error {
	column := strings.Index(fen, positions) + 1
	rank := chess.LastRank
	file := chess.FirstFile

	endRank := func(i int) error {
		if file != chess.LastFile+1 {
			return fenError(fen, column+i, "8 files in rank "+strconv.Itoa(rank), strconv.Itoa(int(file-chess.FirstFile)))
		}
		return nil
	}

	for i, c := range positions {
		switch {
		case c == '/':
			if err := endRank(i); err != nil {
				return err
			}
			if rank == chess.FirstRank {
				return fenError(fen, column+i, "8 ranks", "more")
			}
			rank--
			file = chess.FirstFile
		case c >= '1' && c <= '8':
			file += c - '0'
			if file > chess.LastFile+1 {
				return fenError(fen, column+i, "at most 8 files", string(c))
			}
		default:
			piece, ok := chess.NewPiece(unicode.IsUpper(c), c)
			if !ok {
				return fenError(fen, column+i, "piece letter or digit 1-8", string(c))
			}
			f, ok := chess.NewField(file, rank)
			if !ok {
				return fenError(fen, column+i, "at most 8 files", string(c))
			}
			pieces[f] = piece
			file++
		}
	}

	if err := endRank(len(positions)); err != nil {
		return err
	}
	if rank != chess.FirstRank {
		return fenError(fen, column+len(positions), "8 ranks", strconv.Itoa(chess.LastRank-rank+1))
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(g *Game, fen, side string) error {
	switch side {
	case "w":
		g.toMove = chess.White
	case "b":
		g.toMove = chess.Black
	default:
		return fenError(fen, strings.Index(fen, " "+side)+2, "w or b", side)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(fen, field string) (chess.CastlingRights, error) {
	var rights chess.CastlingRights
	if field == "-" {
		return rights, nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			rights.WhiteKingside = true
		case 'Q':
			rights.WhiteQueenside = true
		case 'k':
			rights.BlackKingside = true
		case 'q':
			rights.BlackQueenside = true
		default:
			return rights, fenError(fen, 0, "castling rights KQkq or -", field)
		}
	}
	return rights, nil
}

// parseEnPassant parses the en passant target square field. The target
// must lie on rank 3 or rank 6.
func parseEnPassant(fen, field string) ([]chess.Field, error) {
	if field == "-" {
		return nil, nil
	}
	f, err := chess.ParseField(field)
	if err != nil || (f.Rank() != 3 && f.Rank() != 6) {
		return nil, fenError(fen, 0, "en passant square on rank 3 or 6", field)
	}
	return []chess.Field{f}, nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(g *Game, fen string, fields []string) error {
	halfmove, err := strconv.Atoi(fields[0])
	if err != nil || halfmove < 0 {
		return fenError(fen, 0, "halfmove clock >= 0", fields[0])
	}
	g.halfmoveClock = halfmove

	if len(fields) > 1 {
		fullmove, err := strconv.Atoi(fields[1])
		if err != nil || fullmove < 1 {
			return fenError(fen, 0, "fullmove number >= 1", fields[1])
		}
		g.moveNumber = fullmove
	}
	return nil
}

// FEN returns the FEN string of the current position.
func (g *Game) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, g.board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, g.toMove)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, g.board.CastlingRights())
	sb.WriteByte(' ')
	writeEnPassant(&sb, g.board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", g.halfmoveClock, g.moveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		emptyCount := 0
		for file := chess.FirstFile; file <= chess.LastFile; file++ {
			piece, ok := board.PieceAtCoords(file, rank)
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(piece.Code())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.FirstRank {
			sb.WriteByte('/')
		}
	}
}

func writeSideToMove(sb *strings.Builder, colour chess.Colour) {
	if colour == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

func writeCastlingRights(sb *strings.Builder, rights chess.CastlingRights) {
	start := sb.Len()
	if rights.WhiteKingside {
		sb.WriteByte('K')
	}
	if rights.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if rights.BlackKingside {
		sb.WriteByte('k')
	}
	if rights.BlackQueenside {
		sb.WriteByte('q')
	}
	if sb.Len() == start {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the first en passant target, lowercased, or "-".
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	targets := board.EnPassantTargets()
	if len(targets) == 0 {
		sb.WriteByte('-')
		return
	}
	sb.WriteString(strings.ToLower(targets[0].String()))
}
