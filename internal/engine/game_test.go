package engine

import (
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

// play applies a sequence of "e2e4" style moves, failing the test on error.
func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		from := testutil.MustField(t, m[:2])
		to := testutil.MustField(t, m[2:4])
		promotion := NoPromotion
		if len(m) == 5 {
			var err error
			promotion, err = ParsePromotion(m[4:])
			testutil.AssertNoError(t, err, "promotion in %s", m)
		}
		if err := g.Play(from, to, promotion); err != nil {
			t.Fatalf("Play(%s) error = %v", m, err)
		}
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	testutil.AssertEqual(t, g.FEN(), InitialFEN)
	testutil.AssertEqual(t, g.ToMove(), chess.White)
	testutil.AssertEqual(t, g.MoveNumber(), 1)
	testutil.AssertEqual(t, g.HalfmoveClock(), 0)
	testutil.AssertEqual(t, g.Ply(), 0)
	testutil.AssertEqual(t, len(g.Moves()), 20)
}

func TestPlay_Errors(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		from, to  string
		promotion chess.Figure
		wantErr   error
	}{
		{"empty origin", InitialFEN, "e4", "e5", NoPromotion, errors.ErrEmptyOrigin},
		{"wrong turn", InitialFEN, "e7", "e5", NoPromotion, errors.ErrWrongTurn},
		{"pawn three squares", InitialFEN, "e2", "e5", NoPromotion, errors.ErrIllegalMove},
		{"onto own piece", InitialFEN, "a1", "a2", NoPromotion, errors.ErrIllegalMove},
		{"bishop blocked", InitialFEN, "c1", "e3", NoPromotion, errors.ErrIllegalMove},
		{"promote to king", "8/P7/8/8/8/8/8/4K2k w - - 0 1", "a7", "a8", chess.King, errors.ErrInvalidPromotion},
		{"black on move", "4k3/8/8/8/8/8/4P3/4K3 b - - 0 1", "e2", "e3", NoPromotion, errors.ErrWrongTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGameFromFEN(tt.fen)
			testutil.AssertNoError(t, err)
			before := g.FEN()

			err = g.Play(testutil.MustField(t, tt.from), testutil.MustField(t, tt.to), tt.promotion)
			testutil.AssertErrorIs(t, err, tt.wantErr)

			var moveErr *errors.MoveError
			if !errors.As(err, &moveErr) {
				t.Fatalf("Play() error %T is not a *MoveError", err)
			}
			testutil.AssertEqual(t, moveErr.From, testutil.MustField(t, tt.from).String())
			testutil.AssertEqual(t, moveErr.Ply, 1)
			testutil.AssertEqual(t, g.FEN(), before, "game changed after rejected move")
		})
	}
}

func TestPlay_KingMayNotBePromotionForQuietMove(t *testing.T) {
	g := NewGame()
	err := g.Play(chess.MustField('e', 2), chess.MustField('e', 4), chess.King)
	testutil.AssertNoError(t, err, "promotion is ignored for non-promoting moves")
}

func TestPlay_TurnsAndClocks(t *testing.T) {
	g := NewGame()

	play(t, g, "g1f3")
	testutil.AssertEqual(t, g.ToMove(), chess.Black)
	testutil.AssertEqual(t, g.HalfmoveClock(), 1)
	testutil.AssertEqual(t, g.MoveNumber(), 1)

	play(t, g, "g8f6")
	testutil.AssertEqual(t, g.ToMove(), chess.White)
	testutil.AssertEqual(t, g.HalfmoveClock(), 2)
	testutil.AssertEqual(t, g.MoveNumber(), 2)

	play(t, g, "e2e4")
	testutil.AssertEqual(t, g.HalfmoveClock(), 0, "pawn move resets the clock")

	play(t, g, "f6e4")
	testutil.AssertEqual(t, g.HalfmoveClock(), 0, "capture resets the clock")
	testutil.AssertEqual(t, g.Ply(), 4)
	testutil.AssertEqual(t, g.FEN(), "rnbqkb1r/pppppppp/8/8/4n3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3")
}

func TestPlay_WithoutTurnEnforcement(t *testing.T) {
	g := NewGame(WithTurnEnforcement(false))

	play(t, g, "e7e5", "d7d5")
	testutil.AssertEqual(t, g.ToMove(), chess.White)
	testutil.AssertEqual(t, g.MoveNumber(), 3)
}

func TestPlay_EnPassant(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5")

	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")

	play(t, g, "e5d6")
	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/1pp1pppp/p2P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3")
}

func TestPlay_Castling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{
			name: "white kingside",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move: "e1g1",
			want: "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
		},
		{
			name: "white queenside",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move: "e1c1",
			want: "r3k2r/8/8/8/8/8/8/2KR3R b kq - 1 1",
		},
		{
			name: "black kingside",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 9",
			move: "e8g8",
			want: "r4rk1/8/8/8/8/8/8/R3K2R w KQ - 4 10",
		},
		{
			name: "black queenside",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			move: "e8c8",
			want: "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGameFromFEN(tt.fen)
			testutil.AssertNoError(t, err)
			play(t, g, tt.move)
			testutil.AssertEqual(t, g.FEN(), tt.want)
		})
	}
}

func TestPlay_Promotion(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		opts []Option
		move string
		at   string
		want chess.Piece
	}{
		{"default queen", "8/P7/8/8/8/8/8/4K2k w - - 0 1", nil, "a7a8", "a8", chess.W(chess.Queen)},
		{"explicit knight", "8/P7/8/8/8/8/8/4K2k w - - 0 1", nil, "a7a8n", "a8", chess.W(chess.Knight)},
		{"capture promotion", "1r6/P7/8/8/8/8/8/4K2k w - - 0 1", nil, "a7b8r", "b8", chess.W(chess.Rook)},
		{"configured default", "8/P7/8/8/8/8/8/4K2k w - - 0 1", []Option{WithDefaultPromotion(chess.Bishop)}, "a7a8", "a8", chess.W(chess.Bishop)},
		{"invalid default ignored", "8/P7/8/8/8/8/8/4K2k w - - 0 1", []Option{WithDefaultPromotion(chess.King)}, "a7a8", "a8", chess.W(chess.Queen)},
		{"black pawn", "4k3/8/8/8/8/8/p7/4K3 b - - 0 1", nil, "a2a1", "a1", chess.B(chess.Queen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGameFromFEN(tt.fen, tt.opts...)
			testutil.AssertNoError(t, err)
			play(t, g, tt.move)

			got, ok := g.Board().PieceAt(testutil.MustField(t, tt.at))
			testutil.AssertTrue(t, ok, "no piece on %s", tt.at)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestGame_ResetAndCopy(t *testing.T) {
	g := NewGame(WithTurnEnforcement(false))
	play(t, g, "e2e4", "e7e5")

	c := g.Copy()
	play(t, c, "g1f3")
	testutil.AssertEqual(t, g.Ply(), 2, "copy shares state with original")

	g.Reset()
	testutil.AssertEqual(t, g.FEN(), InitialFEN)
	testutil.AssertEqual(t, g.Ply(), 0)
	play(t, g, "e7e5")
}

func TestParsePromotion(t *testing.T) {
	tests := []struct {
		in      string
		want    chess.Figure
		wantErr bool
	}{
		{"", NoPromotion, false},
		{"q", chess.Queen, false},
		{"R", chess.Rook, false},
		{"b", chess.Bishop, false},
		{"n", chess.Knight, false},
		{"k", NoPromotion, true},
		{"p", NoPromotion, true},
		{"qq", NoPromotion, true},
		{"x", NoPromotion, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePromotion(tt.in)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidPromotion)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestAllPossibleMoves(t *testing.T) {
	b := testutil.BoardWith(t, map[string]rune{"a1": 'K', "b2": 'P', "h8": 'k'})

	got := AllPossibleMoves(b, chess.White)
	want := []chess.Move{
		{From: chess.MustField('a', 1), To: chess.MustField('a', 2)},
		{From: chess.MustField('a', 1), To: chess.MustField('b', 1)},
		{From: chess.MustField('b', 2), To: chess.MustField('b', 3)},
		{From: chess.MustField('b', 2), To: chess.MustField('b', 4)},
	}
	testutil.AssertEqual(t, got, want)

	testutil.AssertTrue(t, HasPossibleMoves(b, chess.Black))
	testutil.AssertFalse(t, HasPossibleMoves(chess.NewBoard(), chess.White), "empty board")

	blocked := testutil.BoardWith(t, map[string]rune{"e4": 'P', "e5": 'p'})
	testutil.AssertFalse(t, HasPossibleMoves(blocked, chess.White), "blocked pawn")
	if moves := AllPossibleMoves(blocked, chess.White); moves != nil {
		t.Errorf("AllPossibleMoves() = %v; want nil", moves)
	}
}
