// Package termview draws a game as text for terminals.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"go_engine/internal/engine/board"
	engine "go_engine/internal/engine/game"
)

var (
	blackStone = color.New(color.FgHiBlack, color.Bold)
	whiteStone = color.New(color.FgHiWhite, color.Bold)
	koPoint    = color.New(color.FgRed)
	dim        = color.New(color.Faint)
)

// Render writes the current position of g followed by its status. Set
// color.NoColor to get plain text.
func Render(w io.Writer, g *engine.Game) error {
	var sb strings.Builder
	size := g.Size()
	pos := g.Position()
	ko := g.Ko()

	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(dim.Sprint(columnLabel(col, size)))
	}
	sb.WriteByte('\n')

	for row := 0; row < size; row++ {
		sb.WriteString(dim.Sprintf("%2d", size-row))
		sb.WriteByte(' ')
		for col := 0; col < size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			c := board.Coord{Row: row, Col: col}
			switch pos.At(c) {
			case board.CellBlack:
				sb.WriteString(blackStone.Sprint("X"))
			case board.CellWhite:
				sb.WriteString(whiteStone.Sprint("O"))
			default:
				if ko != nil && *ko == c {
					sb.WriteString(koPoint.Sprint("*"))
				} else {
					sb.WriteByte('.')
				}
			}
		}
		sb.WriteByte('\n')
	}

	writeStatus(&sb, g)
	_, err := io.WriteString(w, sb.String())
	return err
}

func columnLabel(col, size int) string {
	vertex, err := board.FormatVertex(board.Coord{Row: 0, Col: col}, size)
	if err != nil {
		return "?"
	}
	return vertex[:1]
}

func writeStatus(sb *strings.Builder, g *engine.Game) {
	if out, err := g.Outcome(); err == nil {
		fmt.Fprintf(sb, "Game over (%s): %s\n", g.Cause(), out)
	} else {
		fmt.Fprintf(sb, "Move %d, %s to play\n", g.MoveNumber(), g.Turn())
	}
	if ko := g.Ko(); ko != nil {
		vertex, err := board.FormatVertex(*ko, g.Size())
		if err != nil {
			vertex = ko.String()
		}
		fmt.Fprintf(sb, "Ko: %s\n", vertex)
	}
	captures := g.Captures()
	fmt.Fprintf(sb, "Captures: Black %d, White %d\n", captures.Black, captures.White)

	scores := g.Scores()
	fmt.Fprintf(sb, "Score: Black %g, White %g", scores.Black, scores.White)
	if !g.IsOver() {
		sb.WriteString(" (provisional)")
	}
	sb.WriteByte('\n')
}
