// Package score implements area scoring: a color's total is its stones on
// the board plus the empty regions bordered only by that color. Komi is
// added to White.
package score

import (
	"fmt"
	"math"

	"go_engine/internal/engine/board"
	"go_engine/internal/engine/group"
	errs "go_engine/internal/errors"
)

// DefaultKomi is used when a game is created without one.
const DefaultKomi = 0.0

type Scores struct {
	Black float64 `json:"black" bson:"black"`
	White float64 `json:"white" bson:"white"`
}

// Outcome is the result of a finished game. Margin is zero on a draw and
// on resignation.
type Outcome struct {
	Winner        board.Color `json:"winner"`
	Draw          bool        `json:"draw"`
	Margin        float64     `json:"margin"`
	ByResignation bool        `json:"by_resignation"`
	Scores        *Scores     `json:"scores,omitempty"`
}

func (o Outcome) String() string {
	switch {
	case o.Draw:
		return "Draw"
	case o.ByResignation:
		return fmt.Sprintf("%s+R", o.Winner.String()[:1])
	}
	return fmt.Sprintf("%s+%g", o.Winner.String()[:1], o.Margin)
}

type Scorer struct {
	komi float64
}

// New fails with ErrInvalidKomi unless komi is a whole or half point.
func New(komi float64) (Scorer, error) {
	if err := ValidateKomi(komi); err != nil {
		return Scorer{}, err
	}
	return Scorer{komi: komi}, nil
}

func ValidateKomi(komi float64) error {
	if math.IsNaN(komi) || math.IsInf(komi, 0) {
		return fmt.Errorf("%w: %v", errs.ErrInvalidKomi, komi)
	}
	if doubled := komi * 2; doubled != math.Trunc(doubled) {
		return fmt.Errorf("%w: %v is not a multiple of 0.5", errs.ErrInvalidKomi, komi)
	}
	return nil
}

func (s Scorer) Komi() float64 { return s.komi }

func (s Scorer) Score(b *board.Board) Scores {
	sc := Scores{
		Black: float64(b.Count(board.CellBlack)),
		White: float64(b.Count(board.CellWhite)) + s.komi,
	}
	for _, r := range group.Regions(b) {
		owner, ok := r.Owner()
		if !ok {
			continue
		}
		if owner == board.Black {
			sc.Black += float64(len(r.Points))
		} else {
			sc.White += float64(len(r.Points))
		}
	}
	return sc
}

// Decide scores b after two consecutive passes.
func (s Scorer) Decide(b *board.Board) Outcome {
	sc := s.Score(b)
	out := Outcome{Scores: &sc}
	switch {
	case sc.Black > sc.White:
		out.Winner = board.Black
		out.Margin = sc.Black - sc.White
	case sc.White > sc.Black:
		out.Winner = board.White
		out.Margin = sc.White - sc.Black
	default:
		out.Draw = true
	}
	return out
}

// Resignation awards the game to the opponent of resigned without
// counting the board.
func Resignation(resigned board.Color) Outcome {
	return Outcome{Winner: resigned.Opponent(), ByResignation: true}
}
