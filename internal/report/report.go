// Package report renders a printable record of a game: a diagram of the
// current position followed by the move list.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"go_engine/internal/engine/board"
)

type Record struct {
	Title    string
	Size     int
	Komi     float64
	Cells    []board.Cell
	Captures [2]int // black, white
	Result   string
	Moves    []string
}

const (
	pageWidth   = 210.0
	margin      = 20.0
	diagramSide = pageWidth - 2*margin
)

func Render(w io.Writer, rec Record) error {
	if rec.Size < 1 || len(rec.Cells) != rec.Size*rec.Size {
		return fmt.Errorf("record holds %d cells for size %d", len(rec.Cells), rec.Size)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(rec.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, rec.Title)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	summary := fmt.Sprintf("%dx%d, komi %.1f, captures B %d / W %d", rec.Size, rec.Size, rec.Komi, rec.Captures[0], rec.Captures[1])
	if rec.Result != "" {
		summary += ", result " + rec.Result
	}
	pdf.Cell(0, 6, summary)
	pdf.Ln(8)

	top := pdf.GetY() + 4
	drawBoard(pdf, rec, margin, top)
	pdf.SetY(top + diagramSide + 6)

	if len(rec.Moves) > 0 {
		pdf.SetFont("Courier", "", 9)
		var lines []string
		for i := 0; i < len(rec.Moves); i += 8 {
			end := min(i+8, len(rec.Moves))
			lines = append(lines, fmt.Sprintf("%4d. %s", i+1, strings.Join(rec.Moves[i:end], "  ")))
		}
		for _, line := range lines {
			pdf.MultiCell(0, 4.5, line, "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawBoard(pdf *gofpdf.Fpdf, rec Record, left, top float64) {
	step := diagramSide / float64(rec.Size)
	origin := step / 2

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i := 0; i < rec.Size; i++ {
		offset := origin + float64(i)*step
		pdf.Line(left+origin, top+offset, left+diagramSide-origin, top+offset)
		pdf.Line(left+offset, top+origin, left+offset, top+diagramSide-origin)
	}

	radius := step * 0.45
	for i, cell := range rec.Cells {
		color, ok := cell.Color()
		if !ok {
			continue
		}
		x := left + origin + float64(i%rec.Size)*step
		y := top + origin + float64(i/rec.Size)*step
		if color == board.Black {
			pdf.SetFillColor(0, 0, 0)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.Circle(x, y, radius, "FD")
	}
}
