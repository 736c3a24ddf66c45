// Package output renders boards and games as text and JSON.
package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// Renderer draws the occupancy of a board.
type Renderer interface {
	Render(w io.Writer, pos chess.Occupancy) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, pos chess.Occupancy) error

// Render calls f(w, pos).
func (f RendererFunc) Render(w io.Writer, pos chess.Occupancy) error {
	return f(w, pos)
}

var (
	// Grid draws a bordered grid with rank labels and a file footer.
	Grid Renderer = RendererFunc(renderGrid)

	// Compact draws eight lines of eight characters, rank 8 first, with a
	// space for every empty square.
	Compact Renderer = RendererFunc(renderCompact)
)

const gridBorder = "  ---------------------------------\n"

func renderGrid(w io.Writer, pos chess.Occupancy) error {
	var sb strings.Builder
	sb.WriteString(gridBorder)
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		sb.WriteString(strconv.Itoa(rank))
		sb.WriteString(" |")
		for file := chess.FirstFile; file <= chess.LastFile; file++ {
			sb.WriteByte(' ')
			sb.WriteRune(squareCode(pos, file, rank))
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
		sb.WriteString(gridBorder)
	}
	sb.WriteString("   ")
	for file := chess.FirstFile; file <= chess.LastFile; file++ {
		sb.WriteByte(' ')
		sb.WriteRune(file)
		sb.WriteString("  ")
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, strings.TrimRight(sb.String(), " \n")+"\n")
	return err
}

func renderCompact(w io.Writer, pos chess.Occupancy) error {
	_, err := io.WriteString(w, CompactText(pos))
	return err
}

// CompactText returns the compact dump of pos: ranks 8 to 1, files A to H,
// one piece code per square and a space for an empty one.
func CompactText(pos chess.Occupancy) string {
	var sb strings.Builder
	for _, line := range Ranks(pos) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Ranks returns the eight rank lines of the compact dump without newlines.
func Ranks(pos chess.Occupancy) []string {
	lines := make([]string, 0, chess.BoardSize)
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		var sb strings.Builder
		for file := chess.FirstFile; file <= chess.LastFile; file++ {
			sb.WriteRune(squareCode(pos, file, rank))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func squareCode(pos chess.Occupancy, file rune, rank int) rune {
	if p, ok := pos.PieceAt(chess.MustField(file, rank)); ok {
		return p.Code()
	}
	return ' '
}
