package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

// GameWriter is the interface for writing game positions to output.
// Different implementations handle different output formats.
type GameWriter interface {
	// WriteGame writes the current position of a game.
	WriteGame(g *engine.Game) error
}

// TextWriter draws the board with a Renderer followed by a status line.
type TextWriter struct {
	w        io.Writer
	renderer Renderer
}

// NewTextWriter creates a text writer using renderer.
func NewTextWriter(w io.Writer, renderer Renderer) *TextWriter {
	return &TextWriter{w: w, renderer: renderer}
}

// WriteGame draws the board and names the side on move.
func (tw *TextWriter) WriteGame(g *engine.Game) error {
	if err := tw.renderer.Render(tw.w, g.Board()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(tw.w, "%s to move, move %d\n", g.ToMove(), g.MoveNumber())
	return err
}

// JSONWriter writes one Snapshot document per game.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteGame writes the snapshot of g.
func (jw *JSONWriter) WriteGame(g *engine.Game) error {
	return WriteJSON(jw.w, NewSnapshot(g))
}

// NewGameWriter returns the writer for the configured render style.
func NewGameWriter(w io.Writer, cfg config.RenderConfig) GameWriter {
	switch cfg.Style {
	case config.JSONStyle:
		return NewJSONWriter(w)
	case config.CompactStyle:
		return NewTextWriter(w, Compact)
	default:
		return NewTextWriter(w, Grid)
	}
}
