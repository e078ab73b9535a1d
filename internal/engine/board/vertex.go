package board

import (
	"fmt"
	"strconv"
	"strings"

	errs "go_engine/internal/errors"
)

// GTP vertex notation: columns A-Z skipping I, rows counted from the
// bottom edge. On a 19x19 board Coord{Row: 15, Col: 3} is "D4".
const vertexColumns = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// FormatVertex renders c in GTP notation.
func FormatVertex(c Coord, size int) (string, error) {
	if c.Row < 0 || c.Row >= size || c.Col < 0 || c.Col >= size {
		return "", fmt.Errorf("%w: %s on %dx%d", errs.ErrOutOfBounds, c, size, size)
	}
	if c.Col >= len(vertexColumns) {
		return "", fmt.Errorf("column %d has no vertex letter", c.Col)
	}
	return fmt.Sprintf("%c%d", vertexColumns[c.Col], size-c.Row), nil
}

// ParseVertex reads a GTP vertex such as "D4" or "q16". Any vertex that
// names no intersection of the board wraps ErrOutOfBounds.
func ParseVertex(vertex string, size int) (Coord, error) {
	vertex = strings.ToUpper(strings.TrimSpace(vertex))
	if len(vertex) < 2 {
		return Coord{}, fmt.Errorf("%w: invalid vertex %q", errs.ErrOutOfBounds, vertex)
	}
	col := strings.IndexByte(vertexColumns, vertex[0])
	if col < 0 {
		return Coord{}, fmt.Errorf("%w: invalid column in vertex %q", errs.ErrOutOfBounds, vertex)
	}
	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: invalid row in vertex %q", errs.ErrOutOfBounds, vertex)
	}
	c := Coord{Row: size - row, Col: col}
	if c.Row < 0 || c.Row >= size || c.Col >= size {
		return Coord{}, fmt.Errorf("%w: vertex %q on %dx%d", errs.ErrOutOfBounds, vertex, size, size)
	}
	return c, nil
}
