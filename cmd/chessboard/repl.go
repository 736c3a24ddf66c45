// repl.go - Interactive command loop
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/output"
)

const helpText = `  move <from> <to> [q|r|b|n]  play a move; "move" may be left out, "e2e4" works too
  moves [square]              destinations from a square, or every move
  board                       draw the board
  fen                         print the position as FEN
  load <fen>                  start from a FEN position
  history                     list the moves played
  reset                       start a new game
  perft <depth>               count move sequences of the given length
  divide <depth>              perft split by first move
  help                        show this text
  quit                        leave
`

// REPL reads commands and applies them to a game.
type REPL struct {
	cfg    *config.Config
	game   *engine.Game
	out    io.Writer
	board  output.GameWriter
	logger *slog.Logger

	// Prompt is written before each command; empty disables it.
	Prompt string
}

// NewREPL creates a REPL writing to cfg.OutputFile.
func NewREPL(cfg *config.Config, logger *slog.Logger) (*REPL, error) {
	g, err := cfg.Game.NewGame()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &REPL{
		cfg:    cfg,
		game:   g,
		out:    cfg.OutputFile,
		board:  output.NewGameWriter(cfg.OutputFile, cfg.Render),
		logger: logger,
		Prompt: "> ",
	}, nil
}

// Game returns the current game.
func (r *REPL) Game() *engine.Game {
	return r.game
}

// Run executes commands from in until quit, end of input or ctx is done.
// Command errors are reported and the loop continues.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	if err := r.board.WriteGame(r.game); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		r.prompt()
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return nil
		}

		quit, err := r.Execute(ctx, scanner.Text())
		if err != nil {
			r.logger.Debug("command failed", "line", scanner.Text(), "err", err)
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (r *REPL) prompt() {
	if r.Prompt != "" {
		fmt.Fprint(r.out, r.Prompt)
	}
}

// Execute runs one command line. quit reports a quit command.
func (r *REPL) Execute(ctx context.Context, line string) (quit bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err = fmt.Fprint(r.out, helpText)
	case "move", "m":
		err = r.move(args[1:])
	case "moves":
		err = r.moves(args[1:])
	case "board", "b":
		err = r.board.WriteGame(r.game)
	case "fen":
		_, err = fmt.Fprintln(r.out, r.game.FEN())
	case "load":
		err = r.load(args[1:])
	case "history":
		err = r.history()
	case "reset":
		err = r.reset()
	case "perft":
		err = r.perft(ctx, args[1:], false)
	case "divide":
		err = r.perft(ctx, args[1:], true)
	default:
		if looksLikeMove(args[0]) {
			err = r.move(args)
		} else {
			err = &errors.ParseError{Err: errors.ErrUnknownCommand, Input: args[0]}
		}
	}
	return false, err
}

// looksLikeMove reports whether s starts with a square, as in "e2" or "e2e4".
func looksLikeMove(s string) bool {
	if len(s) < 2 {
		return false
	}
	_, err := chess.ParseField(s[:2])
	return err == nil
}

// parseMove accepts "e2 e4 [q]", "e2e4 [q]" and "e7e8q".
func parseMove(args []string) (from, to chess.Field, promotion chess.Figure, err error) {
	if len(args) == 1 && (len(args[0]) == 4 || len(args[0]) == 5) {
		s := args[0]
		args = []string{s[:2], s[2:4]}
		if len(s) == 5 {
			args = append(args, s[4:])
		}
	} else if len(args) == 2 && len(args[0]) == 4 {
		args = []string{args[0][:2], args[0][2:], args[1]}
	}

	if len(args) < 2 || len(args) > 3 {
		return from, to, engine.NoPromotion, &errors.ParseError{
			Err:      errors.ErrInvalidArgument,
			Input:    strings.Join(args, " "),
			Expected: "<from> <to> [promotion]",
		}
	}
	if from, err = chess.ParseField(args[0]); err != nil {
		return from, to, engine.NoPromotion, err
	}
	if to, err = chess.ParseField(args[1]); err != nil {
		return from, to, engine.NoPromotion, err
	}
	promotion = engine.NoPromotion
	if len(args) == 3 {
		if promotion, err = engine.ParsePromotion(args[2]); err != nil {
			return from, to, engine.NoPromotion, err
		}
	}
	return from, to, promotion, nil
}

func (r *REPL) move(args []string) error {
	from, to, promotion, err := parseMove(args)
	if err != nil {
		return err
	}
	if err := r.game.Play(from, to, promotion); err != nil {
		return err
	}
	r.logger.Info("move played", "from", from.String(), "to", to.String(), "ply", r.game.Ply())
	if err := r.board.WriteGame(r.game); err != nil {
		return err
	}
	if !engine.HasPossibleMoves(r.game.Board(), r.game.ToMove()) {
		_, err := fmt.Fprintf(r.out, "%s has no moves\n", r.game.ToMove())
		return err
	}
	return nil
}

func (r *REPL) moves(args []string) error {
	switch len(args) {
	case 0:
		moves := r.game.Moves()
		parts := make([]string, len(moves))
		for i, m := range moves {
			parts[i] = m.String()
		}
		_, err := fmt.Fprintf(r.out, "%s has %d moves: %s\n", r.game.ToMove(), len(moves), strings.Join(parts, " "))
		return err
	case 1:
		origin, err := chess.ParseField(args[0])
		if err != nil {
			return err
		}
		piece, ok := r.game.Board().PieceAt(origin)
		if !ok {
			return errors.Wrap(errors.ErrEmptyOrigin, origin.String())
		}
		targets := r.game.PossibleMoves(origin)
		parts := make([]string, len(targets))
		for i, f := range targets {
			parts[i] = f.String()
		}
		if len(parts) == 0 {
			parts = []string{"none"}
		}
		_, err = fmt.Fprintf(r.out, "%s %c: %s\n", origin, piece.Code(), strings.Join(parts, " "))
		return err
	default:
		return &errors.ParseError{Err: errors.ErrInvalidArgument, Input: strings.Join(args, " "), Expected: "at most one square"}
	}
}

func (r *REPL) load(args []string) error {
	if len(args) == 0 {
		return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: "load", Expected: "a FEN string"}
	}
	g, err := engine.NewGameFromFEN(strings.Join(args, " "), r.cfg.Game.Options()...)
	if err != nil {
		return err
	}
	r.game = g
	r.logger.Info("position loaded", "fen", g.FEN())
	return r.board.WriteGame(r.game)
}

func (r *REPL) history() error {
	if r.game.Ply() == 0 {
		_, err := fmt.Fprintln(r.out, "no moves played")
		return err
	}
	return output.WriteHistory(r.out, r.game, r.cfg.Render.MaxLineLength)
}

func (r *REPL) reset() error {
	g, err := r.cfg.Game.NewGame()
	if err != nil {
		return err
	}
	r.game = g
	return r.board.WriteGame(r.game)
}

func (r *REPL) perft(ctx context.Context, args []string, divide bool) error {
	if len(args) != 1 {
		return &errors.ParseError{Err: errors.ErrInvalidArgument, Input: strings.Join(args, " "), Expected: "a depth"}
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return &errors.ParseError{Err: errors.ErrInvalidArgument, Input: args[0], Expected: "a depth >= 0"}
	}

	res, err := engine.Perft(ctx, r.game, depth, r.cfg.Server.PerftWorkers)
	if err != nil {
		return err
	}
	r.logger.Debug("perft", "depth", depth, "nodes", res.Nodes, "workers", res.Workers,
		"cache_hits", res.CacheHits, "cache_misses", res.CacheMisses, "cache_entries", res.CacheEntries)
	if divide {
		for _, d := range res.SortDivide() {
			fmt.Fprintf(r.out, "%s: %d\n", output.MoveToJSON(0, d.Move).UCI, d.Nodes)
		}
	}
	_, err = fmt.Fprintf(r.out, "perft(%d) = %d\n", res.Depth, res.Nodes)
	return err
}
