// Package rules validates a single move against a position and resolves
// its captures. It never mutates the board it is given; the caller commits
// the returned Result.
package rules

import (
	"fmt"

	"go_engine/internal/engine/board"
	"go_engine/internal/engine/group"
	errs "go_engine/internal/errors"
)

type Kind uint8

const (
	KindPlay Kind = iota
	KindPass
	KindResign
)

func (k Kind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindResign:
		return "resign"
	}
	return "play"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "play":
		*k = KindPlay
	case "pass":
		*k = KindPass
	case "resign":
		*k = KindResign
	default:
		return fmt.Errorf("unknown move kind %q", text)
	}
	return nil
}

// Move is a stone placement, a pass or a resignation by Color.
type Move struct {
	Kind  Kind        `json:"kind"`
	Color board.Color `json:"color"`
	At    board.Coord `json:"at"`
}

func Play(color board.Color, row, col int) Move {
	return Move{Kind: KindPlay, Color: color, At: board.Coord{Row: row, Col: col}}
}

func Pass(color board.Color) Move {
	return Move{Kind: KindPass, Color: color}
}

func Resign(color board.Color) Move {
	return Move{Kind: KindResign, Color: color}
}

func (m Move) String() string {
	if m.Kind != KindPlay {
		return fmt.Sprintf("%s %s", m.Color, m.Kind)
	}
	return fmt.Sprintf("%s %s", m.Color, m.At)
}

// Result is the position after a legal move.
type Result struct {
	Board *board.Board
	// Captured is the number of opponent stones the move removed.
	Captured int
	// Ko is the point the opponent may not play on the next move.
	Ko *board.Coord
}

// Apply plays move for its color on b. ko is the currently forbidden
// point, or nil. Pass and resign leave the position as is and clear ko.
func Apply(b *board.Board, ko *board.Coord, move Move) (Result, error) {
	if move.Kind != KindPlay {
		return Result{Board: b.Clone()}, nil
	}

	at := move.At
	cell, err := b.Get(at)
	if err != nil {
		return Result{}, err
	}
	if cell != board.CellEmpty {
		return Result{}, fmt.Errorf("%w: %s holds %s", errs.ErrOccupied, at, cell)
	}
	if ko != nil && *ko == at {
		return Result{}, fmt.Errorf("%w: %s", errs.ErrKoViolation, at)
	}

	next := b.Clone()
	next.Put(at, move.Color.Cell())

	opponent := move.Color.Opponent().Cell()
	captured := 0
	var lastCaptured board.Coord
	for _, n := range next.Neighbors(at) {
		if next.At(n) != opponent {
			continue
		}
		g, _ := group.Analyze(next, n)
		if len(g.Liberties) > 0 {
			continue
		}
		for _, s := range g.Stones {
			next.Put(s, board.CellEmpty)
			lastCaptured = s
		}
		captured += len(g.Stones)
	}

	own, _ := group.Analyze(next, at)
	if len(own.Liberties) == 0 {
		return Result{}, fmt.Errorf("%w: %s", errs.ErrSuicide, at)
	}

	res := Result{Board: next, Captured: captured}
	if captured == 1 && len(own.Stones) == 1 && len(own.Liberties) == 1 {
		point := lastCaptured
		res.Ko = &point
	}
	return res, nil
}

// Legal reports whether move could be played on b.
func Legal(b *board.Board, ko *board.Coord, move Move) bool {
	_, err := Apply(b, ko, move)
	return err == nil
}
