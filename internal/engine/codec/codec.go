// Package codec exports a game with its full history as a versioned JSON
// document and imports it back.
package codec

import (
	"encoding/json"
	"fmt"
	"slices"

	"go_engine/internal/engine/board"
	"go_engine/internal/engine/game"
	"go_engine/internal/engine/rules"
	errs "go_engine/internal/errors"
)

// Version is bumped whenever the document layout changes meaning.
const Version = 1

type Document struct {
	Version int     `json:"version"`
	Size    int     `json:"size"`
	Komi    float64 `json:"komi"`
	Cursor  int     `json:"cursor"`
	History []Entry `json:"history"`
}

// Entry is one state. Board holds size*size cells in row-major order,
// 0 for black, 1 for white and 2 for empty.
type Entry struct {
	Board      []int         `json:"board"`
	Turn       board.Color   `json:"turn"`
	Captures   game.Captures `json:"captures"`
	Passes     int           `json:"passes"`
	Ko         *board.Coord  `json:"ko"`
	Over       bool          `json:"over"`
	Cause      game.Cause    `json:"cause"`
	Resigned   *board.Color  `json:"resigned,omitempty"`
	MoveNumber int           `json:"move_number"`
	Move       *rules.Move   `json:"move,omitempty"`
}

func Export(g *game.Game) Document {
	states, cursor := g.History()
	doc := Document{
		Version: Version,
		Size:    g.Size(),
		Komi:    g.Komi(),
		Cursor:  cursor,
		History: make([]Entry, 0, len(states)),
	}
	for _, s := range states {
		doc.History = append(doc.History, entryOf(s))
	}
	return doc
}

func Encode(g *game.Game) ([]byte, error) {
	return json.Marshal(Export(g))
}

type importOptions struct {
	maxSize int
}

type Option func(*importOptions)

// WithMaxSize rejects documents for boards wider than size lines.
func WithMaxSize(size int) Option {
	return func(o *importOptions) {
		o.maxSize = size
	}
}

func Decode(data []byte, opts ...Option) (*game.Game, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrImport, err)
	}
	return Import(doc, opts...)
}

// Import validates doc and builds a new game from it. Every recorded move
// is replayed and must reproduce the recorded state that follows it.
func Import(doc Document, opts ...Option) (*game.Game, error) {
	var o importOptions
	for _, opt := range opts {
		opt(&o)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrImport, doc.Version)
	}
	if len(doc.History) == 0 {
		return nil, fmt.Errorf("%w: history is empty", errs.ErrImport)
	}
	if err := checkSize(doc, o.maxSize); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrImport, err)
	}
	replay, err := game.New(doc.Size, game.WithKomi(doc.Komi))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrImport, err)
	}

	states := make([]game.State, 0, len(doc.History))
	for i, e := range doc.History {
		s, err := stateOf(doc.Size, e)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", errs.ErrImport, i, err)
		}
		if i > 0 {
			if err := step(replay, e.Move); err != nil {
				return nil, fmt.Errorf("%w: entry %d: %v", errs.ErrImport, i, err)
			}
		} else if e.Move != nil {
			return nil, fmt.Errorf("%w: initial entry carries a move", errs.ErrImport)
		}
		if err := matches(replay.View(), s); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", errs.ErrImport, i, err)
		}
		states = append(states, s)
	}
	return game.Restore(doc.Size, doc.Komi, states, doc.Cursor)
}

// checkSize runs before anything is allocated for the board, so a size
// field the document cannot back with cells is rejected cheaply.
func checkSize(doc Document, maxSize int) error {
	n, err := board.CellCount(doc.Size)
	if err != nil {
		return err
	}
	if maxSize > 0 && doc.Size > maxSize {
		return fmt.Errorf("%w: %d lines, at most %d allowed", errs.ErrInvalidSize, doc.Size, maxSize)
	}
	if len(doc.History[0].Board) != n {
		return fmt.Errorf("initial board has %d cells, want %d", len(doc.History[0].Board), n)
	}
	return nil
}

func entryOf(s game.State) Entry {
	cells := s.Board.Cells()
	e := Entry{
		Board:      make([]int, len(cells)),
		Turn:       s.Turn,
		Captures:   s.Captures,
		Passes:     s.Passes,
		Ko:         s.Ko,
		Over:       s.Over,
		Cause:      s.Cause,
		Resigned:   s.Resigned,
		MoveNumber: s.MoveNumber,
		Move:       s.Move,
	}
	for i, c := range cells {
		e.Board[i] = int(c)
	}
	return e
}

func stateOf(size int, e Entry) (game.State, error) {
	if len(e.Board) != size*size {
		return game.State{}, fmt.Errorf("board has %d cells, want %d", len(e.Board), size*size)
	}
	cells := make([]board.Cell, len(e.Board))
	for i, v := range e.Board {
		if v < 0 || v > int(board.CellEmpty) {
			return game.State{}, fmt.Errorf("cell %d has value %d", i, v)
		}
		cells[i] = board.Cell(v)
	}
	b, err := board.FromCells(size, cells)
	if err != nil {
		return game.State{}, err
	}
	if e.Ko != nil && !b.InBounds(*e.Ko) {
		return game.State{}, fmt.Errorf("ko point %s is off the board", *e.Ko)
	}
	return game.State{
		Board:      b,
		Turn:       e.Turn,
		Captures:   e.Captures,
		Passes:     e.Passes,
		Ko:         e.Ko,
		Over:       e.Over,
		Cause:      e.Cause,
		Resigned:   e.Resigned,
		MoveNumber: e.MoveNumber,
		Move:       e.Move,
	}, nil
}

func step(g *game.Game, m *rules.Move) error {
	if m == nil {
		return fmt.Errorf("missing move")
	}
	if m.Color != g.Turn() {
		return fmt.Errorf("%s moved while %s was to play", m.Color, g.Turn())
	}
	var err error
	switch m.Kind {
	case rules.KindPlay:
		_, err = g.Play(m.At.Row, m.At.Col)
	case rules.KindPass:
		_, err = g.Pass()
	case rules.KindResign:
		_, err = g.Resign()
	default:
		err = fmt.Errorf("unknown move kind %d", m.Kind)
	}
	if err != nil {
		return fmt.Errorf("replaying %s: %w", m, err)
	}
	return nil
}

func matches(v game.View, s game.State) error {
	switch {
	case !slices.Equal(s.Board.Cells(), v.Board):
		return fmt.Errorf("board does not follow from the moves")
	case v.Turn != s.Turn:
		return fmt.Errorf("turn is %s, want %s", s.Turn, v.Turn)
	case v.Captures != s.Captures:
		return fmt.Errorf("captures are %+v, want %+v", s.Captures, v.Captures)
	case v.Passes != s.Passes:
		return fmt.Errorf("pass count is %d, want %d", s.Passes, v.Passes)
	case v.MoveNumber != s.MoveNumber:
		return fmt.Errorf("move number is %d, want %d", s.MoveNumber, v.MoveNumber)
	case v.Over != s.Over || v.Cause != s.Cause:
		return fmt.Errorf("termination is %v/%s, want %v/%s", s.Over, s.Cause, v.Over, v.Cause)
	case !sameCoord(v.Ko, s.Ko):
		return fmt.Errorf("ko point does not follow from the moves")
	case !sameColor(v.Resigned, s.Resigned):
		return fmt.Errorf("resigning color does not follow from the moves")
	}
	return nil
}

func sameCoord(a, b *board.Coord) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameColor(a, b *board.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
