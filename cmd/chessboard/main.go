// chessboard is an interactive chess board with an optional HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/server"
)

const programVersion = "0.1.0"

func main() {
	opts := newOptions(flag.CommandLine)
	flag.Usage = usage
	flag.Parse()

	if *opts.help {
		usage()
		os.Exit(0)
	}

	if *opts.version {
		fmt.Printf("chessboard version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, closer, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second interrupt kills the process.
	context.AfterFunc(ctx, stop)

	if *opts.serve {
		err = serve(ctx, cfg, logger)
	} else {
		err = interactive(ctx, cfg, os.Stdin, logger)
	}
	if err != nil {
		logger.Error("exiting", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

// serve runs the HTTP API until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	session, err := server.NewSession(cfg.Game)
	if err != nil {
		return err
	}
	return server.New(cfg.Server, session, logger).ListenAndServe(ctx)
}

// interactive runs the command prompt on in until quit or end of input.
func interactive(ctx context.Context, cfg *config.Config, in io.Reader, logger *slog.Logger) error {
	repl, err := NewREPL(cfg, logger)
	if err != nil {
		return err
	}
	return repl.Run(ctx, in)
}

// usage prints usage information.
func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessboard [options]\n\n")
	fmt.Fprintf(os.Stderr, "An interactive chess board. Reads commands from stdin,\n")
	fmt.Fprintf(os.Stderr, "or serves them over HTTP with -serve.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprint(os.Stderr, helpText)
}
