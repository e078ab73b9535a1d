// Package game is the state machine of a single Go game. Every command
// either commits one new state to the history or leaves the game untouched
// and reports why.
package game

import (
	"fmt"

	"go_engine/internal/engine/board"
	"go_engine/internal/engine/group"
	"go_engine/internal/engine/history"
	"go_engine/internal/engine/rules"
	"go_engine/internal/engine/score"
	errs "go_engine/internal/errors"
)

// Cause tells why a game ended.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseTwoPasses
	CauseResignation
)

func (c Cause) String() string {
	switch c {
	case CauseTwoPasses:
		return "TwoPasses"
	case CauseResignation:
		return "Resignation"
	}
	return "None"
}

func (c Cause) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cause) UnmarshalText(text []byte) error {
	switch string(text) {
	case "None", "":
		*c = CauseNone
	case "TwoPasses":
		*c = CauseTwoPasses
	case "Resignation":
		*c = CauseResignation
	default:
		return fmt.Errorf("unknown cause %q", text)
	}
	return nil
}

// Captures counts the stones each color has taken from the other.
type Captures struct {
	Black int `json:"black" bson:"black"`
	White int `json:"white" bson:"white"`
}

func (c Captures) add(color board.Color, n int) Captures {
	if color == board.Black {
		c.Black += n
	} else {
		c.White += n
	}
	return c
}

// State is one history entry. States are never modified after commit.
type State struct {
	Board      *board.Board
	Turn       board.Color
	Captures   Captures
	Passes     int
	Ko         *board.Coord
	Over       bool
	Cause      Cause
	Resigned   *board.Color
	MoveNumber int
	// Move produced this state; nil for the initial one.
	Move *rules.Move
}

func initialState(b *board.Board) State {
	return State{Board: b, Turn: board.Black}
}

// View is what every command reports back: the position after it ran.
type View struct {
	Size       int
	Board      []board.Cell
	Turn       board.Color
	Captures   Captures
	Passes     int
	Ko         *board.Coord
	Over       bool
	Cause      Cause
	Resigned   *board.Color
	MoveNumber int
	CanUndo    bool
	CanRedo    bool
}

type options struct {
	komi float64
}

type Option func(*options)

func WithKomi(komi float64) Option {
	return func(o *options) {
		o.komi = komi
	}
}

type Game struct {
	size    int
	scorer  score.Scorer
	history *history.History[State]
}

// New starts a game on an empty board of the given side length.
func New(size int, opts ...Option) (*Game, error) {
	o := options{komi: score.DefaultKomi}
	for _, opt := range opts {
		opt(&o)
	}
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}
	scorer, err := score.New(o.komi)
	if err != nil {
		return nil, err
	}
	return &Game{
		size:    size,
		scorer:  scorer,
		history: history.New(initialState(b)),
	}, nil
}

// Restore rebuilds a game from a complete history. The caller is
// responsible for the consistency of states; Restore only checks that
// every board matches size.
func Restore(size int, komi float64, states []State, cursor int) (*Game, error) {
	scorer, err := score.New(komi)
	if err != nil {
		return nil, err
	}
	for i, s := range states {
		if s.Board == nil || s.Board.Size() != size {
			return nil, fmt.Errorf("%w: entry %d does not hold a %dx%d board", errs.ErrImport, i, size, size)
		}
	}
	h, err := history.Restore(states, cursor)
	if err != nil {
		return nil, err
	}
	return &Game{size: size, scorer: scorer, history: h}, nil
}

func (g *Game) current() State {
	return g.history.Current()
}

// Play puts a stone for the side to move at (row, col).
func (g *Game) Play(row, col int) (View, error) {
	cur := g.current()
	if cur.Over {
		return g.View(), errs.ErrGameOver
	}
	move := rules.Play(cur.Turn, row, col)
	res, err := rules.Apply(cur.Board, cur.Ko, move)
	if err != nil {
		return g.View(), err
	}
	g.history.Commit(State{
		Board:      res.Board,
		Turn:       cur.Turn.Opponent(),
		Captures:   cur.Captures.add(cur.Turn, res.Captured),
		Ko:         res.Ko,
		MoveNumber: cur.MoveNumber + 1,
		Move:       &move,
	})
	return g.View(), nil
}

// Pass gives up the turn. The second pass in a row ends the game.
func (g *Game) Pass() (View, error) {
	cur := g.current()
	if cur.Over {
		return g.View(), errs.ErrGameOver
	}
	move := rules.Pass(cur.Turn)
	next := State{
		Board:      cur.Board,
		Turn:       cur.Turn.Opponent(),
		Captures:   cur.Captures,
		Passes:     cur.Passes + 1,
		MoveNumber: cur.MoveNumber + 1,
		Move:       &move,
	}
	if next.Passes >= 2 {
		next.Over = true
		next.Cause = CauseTwoPasses
		next.Turn = cur.Turn
	}
	g.history.Commit(next)
	return g.View(), nil
}

// Resign ends the game in favor of the side not to move.
func (g *Game) Resign() (View, error) {
	cur := g.current()
	if cur.Over {
		return g.View(), errs.ErrGameOver
	}
	move := rules.Resign(cur.Turn)
	resigned := cur.Turn
	g.history.Commit(State{
		Board:      cur.Board,
		Turn:       cur.Turn,
		Captures:   cur.Captures,
		Passes:     cur.Passes,
		Over:       true,
		Cause:      CauseResignation,
		Resigned:   &resigned,
		MoveNumber: cur.MoveNumber + 1,
		Move:       &move,
	})
	return g.View(), nil
}

func (g *Game) Undo() (View, error) {
	if _, err := g.history.Undo(); err != nil {
		return g.View(), err
	}
	return g.View(), nil
}

func (g *Game) Redo() (View, error) {
	if _, err := g.history.Redo(); err != nil {
		return g.View(), err
	}
	return g.View(), nil
}

func (g *Game) View() View {
	cur := g.current()
	return View{
		Size:       g.size,
		Board:      cur.Board.Cells(),
		Turn:       cur.Turn,
		Captures:   cur.Captures,
		Passes:     cur.Passes,
		Ko:         copyCoord(cur.Ko),
		Over:       cur.Over,
		Cause:      cur.Cause,
		Resigned:   copyColor(cur.Resigned),
		MoveNumber: cur.MoveNumber,
		CanUndo:    g.history.CanUndo(),
		CanRedo:    g.history.CanRedo(),
	}
}

func (g *Game) Size() int { return g.size }

// Board returns the current cells in row-major order.
func (g *Game) Board() []board.Cell { return g.current().Board.Cells() }

// Position returns a copy of the current board.
func (g *Game) Position() *board.Board { return g.current().Board.Clone() }

func (g *Game) Turn() board.Color { return g.current().Turn }

func (g *Game) Captures() Captures { return g.current().Captures }

func (g *Game) Ko() *board.Coord { return copyCoord(g.current().Ko) }

func (g *Game) IsOver() bool { return g.current().Over }

func (g *Game) Cause() Cause { return g.current().Cause }

// Resigned is the color that resigned, nil unless the game ended that way.
func (g *Game) Resigned() *board.Color { return copyColor(g.current().Resigned) }

func (g *Game) MoveNumber() int { return g.current().MoveNumber }

func (g *Game) CanUndo() bool { return g.history.CanUndo() }

func (g *Game) CanRedo() bool { return g.history.CanRedo() }

func (g *Game) Komi() float64 { return g.scorer.Komi() }

// Group returns the group through (row, col) on the current board.
func (g *Game) Group(row, col int) (group.Group, error) {
	return group.Analyze(g.current().Board, board.Coord{Row: row, Col: col})
}

// HasLegalPlay reports whether color could place a stone anywhere on the
// current board. The ko point binds only the side to move, and nobody can
// play once the game is over.
func (g *Game) HasLegalPlay(color board.Color) bool {
	cur := g.current()
	if cur.Over {
		return false
	}
	ko := cur.Ko
	if color != cur.Turn {
		ko = nil
	}
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if cur.Board.At(board.Coord{Row: row, Col: col}) != board.CellEmpty {
				continue
			}
			if rules.Legal(cur.Board, ko, rules.Play(color, row, col)) {
				return true
			}
		}
	}
	return false
}

// Scores counts the current board. Before the game is over this is a
// provisional count.
func (g *Game) Scores() score.Scores {
	return g.scorer.Score(g.current().Board)
}

// Outcome fails with ErrGameNotOver while the game is in progress.
func (g *Game) Outcome() (score.Outcome, error) {
	cur := g.current()
	if !cur.Over {
		return score.Outcome{}, errs.ErrGameNotOver
	}
	if cur.Cause == CauseResignation && cur.Resigned != nil {
		return score.Resignation(*cur.Resigned), nil
	}
	return g.scorer.Decide(cur.Board), nil
}

// Moves lists the moves leading to the current state, oldest first.
func (g *Game) Moves() []rules.Move {
	past := g.history.Past()
	moves := make([]rules.Move, 0, len(past)-1)
	for _, s := range past[1:] {
		if s.Move != nil {
			moves = append(moves, *s.Move)
		}
	}
	return moves
}

// History returns every state, including undone ones, and the index of
// the current state.
func (g *Game) History() ([]State, int) {
	return g.history.Entries(), g.history.Cursor()
}

func copyCoord(c *board.Coord) *board.Coord {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func copyColor(c *board.Color) *board.Color {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
