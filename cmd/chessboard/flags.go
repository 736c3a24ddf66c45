// flags.go - Command-line flag definitions and configuration overrides
package main

import (
	"flag"

	"github.com/lgbarn/chessboard-go/internal/config"
)

// options holds the parsed command line.
type options struct {
	fs *flag.FlagSet

	// General
	configFile *string
	help       *bool
	version    *bool

	// Mode
	serve *bool
	addr  *string

	// Game
	fen       *string
	freePlay  *bool
	promotion *string
	workers   *int

	// Output and logging
	style     *string
	logLevel  *string
	logFormat *string
	logFile   *string
}

// newOptions registers every flag on fs.
func newOptions(fs *flag.FlagSet) *options {
	return &options{
		fs: fs,

		configFile: fs.String("config", "", "TOML configuration file"),
		help:       fs.Bool("h", false, "Show help"),
		version:    fs.Bool("version", false, "Show version"),

		serve: fs.Bool("serve", false, "Serve the HTTP API instead of the interactive prompt"),
		addr:  fs.String("addr", "", "Listen address for -serve (default from config: 127.0.0.1:8080)"),

		fen:       fs.String("fen", "", "Start position as FEN"),
		freePlay:  fs.Bool("free", false, "Let either side move at any time"),
		promotion: fs.String("promote", "", "Default promotion piece: q, r, b or n"),
		workers:   fs.Int("workers", -1, "Perft worker count (0 = one per CPU)"),

		style:     fs.String("style", "", "Board style: grid, compact or json"),
		logLevel:  fs.String("log-level", "", "Log level: debug, info, warn or error"),
		logFormat: fs.String("log-format", "", "Log format: text or json"),
		logFile:   fs.String("log-file", "", "Write logs to this file instead of stderr"),
	}
}

// loadConfig reads the configuration file, if any, and applies the flags
// given on the command line on top of it.
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *o.configFile != "" {
		loaded, err := config.Load(*o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return o.apply(cfg)
}

// apply overrides cfg with the flags that were set explicitly, so file
// values survive unset flags.
func (o *options) apply(cfg *config.Config) (*config.Config, error) {
	b := config.NewConfigBuilderFrom(cfg)
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			b.WithServerAddr(*o.addr)
		case "fen":
			b.WithStartFEN(*o.fen)
		case "free":
			b.WithTurnEnforcement(!*o.freePlay)
		case "promote":
			b.WithDefaultPromotion(*o.promotion)
		case "workers":
			b.WithPerftWorkers(*o.workers)
		case "style":
			b.WithRenderStyle(config.RenderStyle(*o.style))
		case "log-level":
			b.WithLogLevel(*o.logLevel)
		case "log-format":
			b.WithLogFormat(*o.logFormat)
		case "log-file":
			b.WithLogFile(*o.logFile)
		}
	})
	return b.Build()
}
