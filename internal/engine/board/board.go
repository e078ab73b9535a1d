// Package board holds the Go grid and nothing else: no rules, no history.
package board

import (
	"fmt"
	"math"

	errs "go_engine/internal/errors"
)

// Color is the color of a player.
type Color uint8

const (
	Black Color = iota
	White
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Cell returns the cell state holding a stone of this color.
func (c Color) Cell() Cell {
	if c == Black {
		return CellBlack
	}
	return CellWhite
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

func (c Color) MarshalText() ([]byte, error) {
	if c != Black && c != White {
		return nil, fmt.Errorf("invalid color %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "Black"/"White" and the SGF letters "B"/"W".
func ParseColor(s string) (Color, error) {
	switch s {
	case "Black", "black", "B", "b":
		return Black, nil
	case "White", "white", "W", "w":
		return White, nil
	}
	return Black, fmt.Errorf("unknown color %q", s)
}

// Cell is the state of one intersection. The numeric values are the
// board encoding shared with presentation layers.
type Cell uint8

const (
	CellBlack Cell = 0
	CellWhite Cell = 1
	CellEmpty Cell = 2
)

// Valid reports whether c is one of the three cell states.
func (c Cell) Valid() bool {
	return c <= CellEmpty
}

// Color returns the color of the stone on the cell, false for an empty cell.
func (c Cell) Color() (Color, bool) {
	switch c {
	case CellBlack:
		return Black, true
	case CellWhite:
		return White, true
	}
	return Black, false
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	case CellEmpty:
		return "Empty"
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}

// Coord addresses an intersection; row 0 is the top edge.
type Coord struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a square grid of cells. Its size never changes after New.
type Board struct {
	size  int
	cells []Cell
}

// CellCount returns size*size, or ErrInvalidSize when size is not positive
// or the product does not fit in an int.
func CellCount(size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("%w: got %d", errs.ErrInvalidSize, size)
	}
	if size > math.MaxInt/size {
		return 0, fmt.Errorf("%w: %d lines overflow the grid", errs.ErrInvalidSize, size)
	}
	return size * size, nil
}

// New returns an empty board of side size.
func New(size int) (*Board, error) {
	n, err := CellCount(size)
	if err != nil {
		return nil, err
	}
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = CellEmpty
	}
	return &Board{size: size, cells: cells}, nil
}

// FromCells builds a board from size*size row-major cells.
func FromCells(size int, cells []Cell) (*Board, error) {
	n, err := CellCount(size)
	if err != nil {
		return nil, err
	}
	if len(cells) != n {
		return nil, fmt.Errorf("board of size %d needs %d cells, got %d", size, n, len(cells))
	}
	for i, c := range cells {
		if !c.Valid() {
			return nil, fmt.Errorf("cell %d holds invalid value %d", i, uint8(c))
		}
	}
	return &Board{size: size, cells: append([]Cell(nil), cells...)}, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

func (b *Board) index(c Coord) int {
	return c.Row*b.size + c.Col
}

func (b *Board) Get(c Coord) (Cell, error) {
	if !b.InBounds(c) {
		return CellEmpty, fmt.Errorf("%w: %s on %dx%d", errs.ErrOutOfBounds, c, b.size, b.size)
	}
	return b.cells[b.index(c)], nil
}

// At is Get for coordinates already known to be in bounds.
func (b *Board) At(c Coord) Cell {
	return b.cells[b.index(c)]
}

// Put is Set for coordinates already known to be in bounds and cells
// known to be valid.
func (b *Board) Put(c Coord, cell Cell) {
	b.cells[b.index(c)] = cell
}

// Set overwrites one cell. It does not check any rule.
func (b *Board) Set(c Coord, cell Cell) error {
	if !b.InBounds(c) {
		return fmt.Errorf("%w: %s on %dx%d", errs.ErrOutOfBounds, c, b.size, b.size)
	}
	if !cell.Valid() {
		return fmt.Errorf("invalid cell value %d", uint8(cell))
	}
	b.cells[b.index(c)] = cell
	return nil
}

// Neighbors returns the in-bounds orthogonal neighbors of c.
func (b *Board) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		n := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: append([]Cell(nil), b.cells...)}
}

// Cells returns a row-major copy of the grid.
func (b *Board) Cells() []Cell {
	return append([]Cell(nil), b.cells...)
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Count returns how many cells hold the given state.
func (b *Board) Count(cell Cell) int {
	n := 0
	for _, c := range b.cells {
		if c == cell {
			n++
		}
	}
	return n
}

func (b *Board) String() string {
	out := make([]byte, 0, b.size*(b.size+1))
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			switch b.cells[r*b.size+c] {
			case CellBlack:
				out = append(out, 'X')
			case CellWhite:
				out = append(out, 'O')
			default:
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
