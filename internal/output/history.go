package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a word, preceded by a space or, when the line would grow
// past the limit, a line break.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.print("\n")
			o.lineLength = 0
			o.needsSpace = false
		} else {
			o.print(" ")
			o.lineLength++
		}
	}

	o.print(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.print("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

func (o *OutputWriter) print(s string) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprint(o.w, s)
}

// WriteHistory lists the moves of g with move numbers, "1. E2-E4 E7-E5",
// wrapped at maxLineLength. A history starting with Black begins "1...".
func WriteHistory(w io.Writer, g *engine.Game, maxLineLength int) error {
	history := g.Board().History()
	if len(history) == 0 {
		return nil
	}

	ow := NewOutputWriter(w, maxLineLength)
	colour, number := g.Start()
	for i, m := range history {
		switch {
		case colour == chess.White:
			ow.Write(strconv.Itoa(number) + ".")
		case i == 0:
			ow.Write(strconv.Itoa(number) + "...")
		}
		ow.Write(m.String())
		if colour == chess.Black {
			number++
		}
		colour = colour.Opposite()
	}
	ow.NewLine()
	return ow.Err()
}
