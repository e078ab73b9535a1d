package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"go_engine/internal/engine/board"
	"go_engine/internal/engine/rules"
	"go_engine/internal/engine/score"
	errs "go_engine/internal/errors"
)

func newGame(t *testing.T, size int, opts ...Option) *Game {
	t.Helper()
	g, err := New(size, opts...)
	require.NoError(t, err)
	return g
}

func play(t *testing.T, g *Game, moves ...[2]int) {
	t.Helper()
	for _, m := range moves {
		_, err := g.Play(m[0], m[1])
		require.NoError(t, err, "play %v", m)
	}
}

func TestNew(t *testing.T) {
	g := newGame(t, 9)
	require.Equal(t, 9, g.Size())
	require.Equal(t, board.Black, g.Turn())
	require.Equal(t, Captures{}, g.Captures())
	require.Nil(t, g.Ko())
	require.False(t, g.IsOver())
	require.Equal(t, CauseNone, g.Cause())
	require.Zero(t, g.MoveNumber())
	require.Zero(t, g.Komi())
	require.False(t, g.CanUndo())
	require.False(t, g.CanRedo())
	for _, c := range g.Board() {
		require.Equal(t, board.CellEmpty, c)
	}

	_, err := New(0)
	require.ErrorIs(t, err, errs.ErrInvalidSize)

	_, err = New(9, WithKomi(0.3))
	require.ErrorIs(t, err, errs.ErrInvalidKomi)
}

func TestPlayAdvancesTurn(t *testing.T) {
	g := newGame(t, 5)
	v, err := g.Play(2, 2)
	require.NoError(t, err)
	require.Equal(t, board.White, v.Turn)
	require.Equal(t, 1, v.MoveNumber)
	require.Equal(t, board.CellBlack, v.Board[2*5+2])
	require.True(t, v.CanUndo)
}

func TestRejectedMoveLeavesStateUnchanged(t *testing.T) {
	g := newGame(t, 5)
	play(t, g, [2]int{2, 2})
	before := g.View()

	tests := []struct {
		name     string
		row, col int
		want     error
	}{
		{"occupied", 2, 2, errs.ErrOccupied},
		{"out of bounds", 5, 0, errs.ErrOutOfBounds},
		{"negative", 0, -1, errs.ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := g.Play(tt.row, tt.col)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, before, v)
			require.Equal(t, before, g.View())
		})
	}
}

func TestSuicideLeavesBoardUnchanged(t *testing.T) {
	g := newGame(t, 5)
	// White surrounds the corner; black then tries to fill it.
	play(t, g, [2]int{4, 4}, [2]int{0, 1}, [2]int{4, 3}, [2]int{1, 0})
	before := g.Board()

	_, err := g.Play(0, 0)
	require.ErrorIs(t, err, errs.ErrSuicide)
	require.Equal(t, before, g.Board())
	require.Equal(t, board.Black, g.Turn())
	require.Equal(t, 4, g.MoveNumber())
}

func TestEveryCommittedGroupBreathes(t *testing.T) {
	g := newGame(t, 5)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 400; i++ {
		before := g.Board()
		_, err := g.Play(rng.Intn(5), rng.Intn(5))
		if err != nil {
			require.True(t, errs.IsRuleViolation(err), "unexpected %v", err)
			require.Equal(t, before, g.Board())
			continue
		}
		for row := 0; row < 5; row++ {
			for col := 0; col < 5; col++ {
				grp, err := g.Group(row, col)
				require.NoError(t, err)
				if !grp.Empty() {
					require.NotEmpty(t, grp.Liberties)
				}
			}
		}
	}
}

func TestCaptureScenario(t *testing.T) {
	g := newGame(t, 5)
	play(t, g,
		[2]int{2, 2}, [2]int{1, 2},
		[2]int{2, 1}, [2]int{2, 3},
		[2]int{3, 2},
	)
	require.Equal(t, board.CellWhite, g.Board()[1*5+2])
	require.Zero(t, g.Captures().Black)

	play(t, g,
		[2]int{4, 4}, [2]int{1, 1},
		[2]int{4, 0}, [2]int{0, 2},
		[2]int{0, 4},
	)
	require.Equal(t, board.CellWhite, g.Board()[1*5+2])
	grp, err := g.Group(1, 2)
	require.NoError(t, err)
	require.Len(t, grp.Liberties, 1)
	require.Zero(t, g.Captures().Black)

	v, err := g.Play(1, 3)
	require.NoError(t, err)
	require.Equal(t, board.CellEmpty, v.Board[1*5+2])
	require.Equal(t, Captures{Black: 1}, v.Captures)
}

func TestKo(t *testing.T) {
	g := newGame(t, 5)
	play(t, g,
		[2]int{0, 1}, [2]int{0, 2},
		[2]int{1, 0}, [2]int{2, 2},
		[2]int{2, 1}, [2]int{1, 3},
		[2]int{1, 2}, [2]int{1, 1},
	)
	require.Equal(t, Captures{White: 1}, g.Captures())
	require.Equal(t, &board.Coord{Row: 1, Col: 2}, g.Ko())

	_, err := g.Play(1, 2)
	require.ErrorIs(t, err, errs.ErrKoViolation)
	require.Equal(t, board.Black, g.Turn())

	play(t, g, [2]int{4, 4})
	require.Nil(t, g.Ko())
	play(t, g, [2]int{4, 0})

	v, err := g.Play(1, 2)
	require.NoError(t, err)
	require.Equal(t, Captures{Black: 1, White: 1}, v.Captures)
	require.Equal(t, &board.Coord{Row: 1, Col: 1}, v.Ko)
}

func TestPasses(t *testing.T) {
	t.Run("play resets the pass count", func(t *testing.T) {
		g := newGame(t, 5)
		_, err := g.Pass()
		require.NoError(t, err)
		require.Equal(t, board.White, g.Turn())
		play(t, g, [2]int{0, 0})
		_, err = g.Pass()
		require.NoError(t, err)
		require.False(t, g.IsOver())
	})

	t.Run("two passes end the game", func(t *testing.T) {
		g := newGame(t, 5)
		_, err := g.Pass()
		require.NoError(t, err)
		v, err := g.Pass()
		require.NoError(t, err)
		require.True(t, v.Over)
		require.Equal(t, CauseTwoPasses, v.Cause)
		require.Equal(t, board.White, v.Turn)

		_, err = g.Play(0, 0)
		require.ErrorIs(t, err, errs.ErrGameOver)
		_, err = g.Pass()
		require.ErrorIs(t, err, errs.ErrGameOver)
		_, err = g.Resign()
		require.ErrorIs(t, err, errs.ErrGameOver)
		require.Equal(t, 2, g.MoveNumber())
	})

	t.Run("pass clears ko", func(t *testing.T) {
		g := newGame(t, 5)
		play(t, g,
			[2]int{0, 1}, [2]int{0, 2},
			[2]int{1, 0}, [2]int{2, 2},
			[2]int{2, 1}, [2]int{1, 3},
			[2]int{1, 2}, [2]int{1, 1},
		)
		require.NotNil(t, g.Ko())
		_, err := g.Pass()
		require.NoError(t, err)
		require.Nil(t, g.Ko())
	})
}

func TestResign(t *testing.T) {
	g := newGame(t, 5)
	play(t, g, [2]int{2, 2})
	v, err := g.Resign()
	require.NoError(t, err)
	require.True(t, v.Over)
	require.Equal(t, CauseResignation, v.Cause)
	require.Equal(t, board.White, *v.Resigned)
	require.Equal(t, board.White, v.Turn)

	out, err := g.Outcome()
	require.NoError(t, err)
	require.Equal(t, board.Black, out.Winner)
	require.True(t, out.ByResignation)

	_, err = g.Undo()
	require.NoError(t, err)
	require.False(t, g.IsOver())
	require.Nil(t, g.Resigned())
	_, err = g.Outcome()
	require.ErrorIs(t, err, errs.ErrGameNotOver)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	g := newGame(t, 5)
	play(t, g,
		[2]int{2, 2}, [2]int{1, 2},
		[2]int{2, 1}, [2]int{2, 3},
		[2]int{3, 2},
	)
	_, err := g.Pass()
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	final := g.View()
	require.True(t, final.Over)

	const n = 7
	for i := 0; i < n; i++ {
		_, err := g.Undo()
		require.NoError(t, err)
	}
	require.Equal(t, board.Black, g.Turn())
	require.Equal(t, Captures{}, g.Captures())
	require.Zero(t, g.MoveNumber())
	for _, c := range g.Board() {
		require.Equal(t, board.CellEmpty, c)
	}
	v, err := g.Undo()
	require.ErrorIs(t, err, errs.ErrNoHistory)
	require.Zero(t, v.MoveNumber)

	for i := 0; i < n; i++ {
		_, err := g.Redo()
		require.NoError(t, err)
	}
	require.Equal(t, final, g.View())
	_, err = g.Redo()
	require.ErrorIs(t, err, errs.ErrNoFuture)
}

func TestNewMoveDropsRedo(t *testing.T) {
	g := newGame(t, 5)
	play(t, g, [2]int{0, 0}, [2]int{1, 1})
	_, err := g.Undo()
	require.NoError(t, err)
	require.True(t, g.CanRedo())

	play(t, g, [2]int{3, 3})
	require.False(t, g.CanRedo())
	_, err = g.Redo()
	require.ErrorIs(t, err, errs.ErrNoFuture)
	require.Equal(t, board.CellEmpty, g.Board()[1*5+1])
	require.Equal(t, board.CellWhite, g.Board()[3*5+3])
}

func TestScoringEmptyBoard(t *testing.T) {
	g := newGame(t, 5, WithKomi(6.5))
	_, err := g.Outcome()
	require.ErrorIs(t, err, errs.ErrGameNotOver)

	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)

	require.Equal(t, score.Scores{Black: 0, White: 6.5}, g.Scores())
	out, err := g.Outcome()
	require.NoError(t, err)
	require.Equal(t, board.White, out.Winner)
	require.Equal(t, 6.5, out.Margin)

	even := newGame(t, 5)
	_, err = even.Pass()
	require.NoError(t, err)
	_, err = even.Pass()
	require.NoError(t, err)
	out, err = even.Outcome()
	require.NoError(t, err)
	require.True(t, out.Draw)
}

func TestGroupQuery(t *testing.T) {
	g := newGame(t, 5)
	play(t, g, [2]int{0, 0}, [2]int{4, 4}, [2]int{0, 1})

	grp, err := g.Group(0, 1)
	require.NoError(t, err)
	require.Equal(t, board.Black, grp.Color)
	require.Len(t, grp.Stones, 2)
	require.Len(t, grp.Liberties, 3)

	grp, err = g.Group(2, 2)
	require.NoError(t, err)
	require.True(t, grp.Empty())

	_, err = g.Group(9, 9)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestMoves(t *testing.T) {
	g := newGame(t, 5)
	play(t, g, [2]int{0, 0}, [2]int{1, 1})
	_, err := g.Pass()
	require.NoError(t, err)
	_, err = g.Undo()
	require.NoError(t, err)

	require.Equal(t, []rules.Move{
		rules.Play(board.Black, 0, 0),
		rules.Play(board.White, 1, 1),
	}, g.Moves())
}

func TestRestore(t *testing.T) {
	g := newGame(t, 5, WithKomi(7))
	play(t, g, [2]int{0, 0}, [2]int{1, 1})
	_, err := g.Undo()
	require.NoError(t, err)

	states, cursor := g.History()
	restored, err := Restore(5, 7, states, cursor)
	require.NoError(t, err)
	require.Equal(t, g.View(), restored.View())
	require.Equal(t, 7.0, restored.Komi())

	_, err = Restore(4, 7, states, cursor)
	require.ErrorIs(t, err, errs.ErrImport)
	_, err = Restore(5, 7, states, len(states))
	require.ErrorIs(t, err, errs.ErrImport)
}

func TestHasLegalPlay(t *testing.T) {
	g := newGame(t, 1)
	require.False(t, g.HasLegalPlay(board.Black), "the only point is suicide")
	require.False(t, g.HasLegalPlay(board.White))

	g = newGame(t, 2)
	require.True(t, g.HasLegalPlay(board.White))
	play(t, g, [2]int{0, 0})
	_, err := g.Pass()
	require.NoError(t, err)
	play(t, g, [2]int{1, 1})
	// X .
	// . X
	require.False(t, g.HasLegalPlay(board.White))
	require.True(t, g.HasLegalPlay(board.Black))

	_, err = g.Resign()
	require.NoError(t, err)
	require.False(t, g.HasLegalPlay(board.Black))
}
