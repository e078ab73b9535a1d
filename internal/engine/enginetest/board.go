// Package enginetest builds positions from text diagrams for tests.
package enginetest

import (
	"strings"
	"testing"

	"go_engine/internal/engine/board"
)

// Board parses a square diagram where X is black, O is white and any of
// ".+" is empty. Spaces are ignored, so rows may be written "X . O".
func Board(t testing.TB, rows ...string) *board.Board {
	t.Helper()
	b, err := board.New(len(rows))
	if err != nil {
		t.Fatalf("diagram: %v", err)
	}
	for r, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != len(rows) {
			t.Fatalf("diagram row %d has %d cells, want %d", r, len(line), len(rows))
		}
		for c, ch := range line {
			cell := board.CellEmpty
			switch ch {
			case 'X':
				cell = board.CellBlack
			case 'O':
				cell = board.CellWhite
			case '.', '+':
			default:
				t.Fatalf("diagram row %d: unknown symbol %q", r, ch)
			}
			if err := b.Set(board.Coord{Row: r, Col: c}, cell); err != nil {
				t.Fatalf("diagram: %v", err)
			}
		}
	}
	return b
}
