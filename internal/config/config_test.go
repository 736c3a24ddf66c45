package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

// TestNewConfig_Defaults verifies the defaults are valid and sensible
func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	testutil.AssertNoError(t, cfg.Validate())
	testutil.AssertEqual(t, cfg.Log.Level, "info")
	testutil.AssertEqual(t, cfg.Log.Format, "text")
	testutil.AssertTrue(t, cfg.Game.EnforceTurns, "EnforceTurns should be true by default")
	testutil.AssertEqual(t, cfg.Game.DefaultPromotion, "q")
	testutil.AssertEqual(t, cfg.Render.Style, GridStyle)
	testutil.AssertEqual(t, cfg.Server.PerftMaxDepth, 4)
	testutil.AssertEqual(t, cfg.Server.ReadTimeout, 5*time.Second)
}

// TestParse verifies TOML decoding over the defaults
func TestParse(t *testing.T) {
	cfg, err := Parse(`
[log]
level = "debug"
format = "json"

[game]
enforce_turns = false
default_promotion = "n"
start_fen = "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"

[render]
style = "compact"

[server]
addr = ":9000"
read_timeout = "2s"
perft_max_depth = 3
`)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.Log.Level, "debug")
	testutil.AssertEqual(t, cfg.Log.Format, "json")
	testutil.AssertFalse(t, cfg.Game.EnforceTurns)
	testutil.AssertEqual(t, cfg.Game.DefaultPromotion, "n")
	testutil.AssertEqual(t, cfg.Render.Style, CompactStyle)
	testutil.AssertEqual(t, cfg.Server.Addr, ":9000")
	testutil.AssertEqual(t, cfg.Server.ReadTimeout, 2*time.Second)
	testutil.AssertEqual(t, cfg.Server.PerftMaxDepth, 3)

	// Untouched keys keep their defaults.
	testutil.AssertEqual(t, cfg.Server.WriteTimeout, 30*time.Second)
	testutil.AssertEqual(t, cfg.Render.MaxLineLength, 80)
}

// TestParse_Invalid verifies that bad settings wrap ErrInvalidConfig
func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax error", `[log`},
		{"unknown key", "[log]\ncolour = true\n"},
		{"unknown section", "[engine]\nthreads = 4\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad format", "[log]\nformat = \"xml\"\n"},
		{"bad promotion", "[game]\ndefault_promotion = \"k\"\n"},
		{"empty promotion", "[game]\ndefault_promotion = \"\"\n"},
		{"bad start fen", "[game]\nstart_fen = \"8/8/8\"\n"},
		{"bad style", "[render]\nstyle = \"svg\"\n"},
		{"short lines", "[render]\nmax_line_length = 5\n"},
		{"empty addr", "[server]\naddr = \"\"\n"},
		{"zero timeout", "[server]\nread_timeout = \"0s\"\n"},
		{"perft too deep", "[server]\nperft_max_depth = 9\n"},
		{"negative workers", "[server]\nperft_workers = -1\n"},
		{"wrong type", "[server]\nperft_max_depth = \"deep\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.toml)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
			if cfg != nil {
				t.Errorf("Parse() returned a config with an error")
			}
		})
	}
}

func TestParse_UnknownKeysListed(t *testing.T) {
	_, err := Parse("[log]\nzeta = 1\nalpha = 2\n")
	testutil.AssertContains(t, err.Error(), "log.alpha, log.zeta")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chessboard.toml")
	if err := os.WriteFile(path, []byte("[render]\nstyle = \"json\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Render.Style, JSONStyle)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	testutil.AssertErrorIs(t, err, os.ErrNotExist)
	testutil.AssertContains(t, err.Error(), "read config: ")

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[render]\nstyle = \"svg\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	testutil.AssertContains(t, err.Error(), bad+": validate config: render style")
}

func TestGameConfig_NewGame(t *testing.T) {
	t.Run("standard start", func(t *testing.T) {
		g, err := NewGameConfig().NewGame()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, g.FEN(), engine.InitialFEN)
	})

	t.Run("start fen and options", func(t *testing.T) {
		cfg := GameConfig{
			EnforceTurns:     false,
			DefaultPromotion: "r",
			StartFEN:         "4k3/P7/8/8/8/8/8/4K3 b - - 0 1",
		}
		g, err := cfg.NewGame()
		testutil.AssertNoError(t, err)

		// White may move although Black is on move, and promotes to a rook.
		testutil.AssertNoError(t, g.Play(chess.MustField('a', 7), chess.MustField('a', 8), engine.NoPromotion))
		got, _ := g.Board().PieceAtCoords('a', 8)
		testutil.AssertEqual(t, got, chess.W(chess.Rook))
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerTo(&buf, LogConfig{Level: "warn", Format: "json"})
	testutil.AssertNoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "from", "E2")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	testutil.AssertContains(t, out, `"msg":"shown"`)
	testutil.AssertContains(t, out, `"from":"E2"`)

	_, err = NewLoggerTo(&buf, LogConfig{Level: "verbose", Format: "text"})
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chessboard.log")
	logger, closer, err := NewLogger(LogConfig{Level: "info", Format: "text", File: path})
	testutil.AssertNoError(t, err)

	logger.Info("started", "mode", "repl")
	testutil.AssertNoError(t, closer.Close())

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, string(data), "mode=repl")
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	cfg, err := NewConfigBuilder().
		WithRenderStyle(CompactStyle).
		WithTurnEnforcement(false).
		WithDefaultPromotion("b").
		WithServerAddr(":7000").
		WithLogLevel("error").
		WithLogFormat("json").
		Build()
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.Render.Style, CompactStyle)
	testutil.AssertFalse(t, cfg.Game.EnforceTurns)
	testutil.AssertEqual(t, cfg.Game.DefaultPromotion, "b")
	testutil.AssertEqual(t, cfg.Server.Addr, ":7000")
	testutil.AssertEqual(t, cfg.Log.Level, "error")

	_, err = NewConfigBuilder().WithStartFEN("not a fen").Build()
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestConfigBuilderFrom_LeavesOriginal(t *testing.T) {
	base := NewConfig()
	cfg, err := NewConfigBuilderFrom(base).WithRenderStyle(JSONStyle).Build()
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.Render.Style, JSONStyle)
	testutil.AssertEqual(t, base.Render.Style, GridStyle)
}
