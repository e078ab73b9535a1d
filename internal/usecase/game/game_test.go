package game

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go_engine/internal/domain/game"
	"go_engine/internal/domain/sgf"
	engine "go_engine/internal/engine/game"
	errs "go_engine/internal/errors"
	"go_engine/internal/usecase/game/gametest"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(store GameStore) *GameUseCase {
	uc := NewGameUseCase(store, zap.NewNop().Sugar(), Defaults{BoardSize: 9, Komi: 6.5})
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func intPtr(v int) *int { return &v }

func at(row, col int) game.MoveRequest {
	return game.MoveRequest{Row: intPtr(row), Col: intPtr(col)}
}

func TestCreateGame(t *testing.T) {
	ctx := context.Background()
	store := gametest.NewMemStore()
	uc := newUseCase(store)

	resp, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.GameID)
	require.Equal(t, 9, resp.State.Size)
	require.Equal(t, 6.5, resp.State.Komi)
	require.Equal(t, "Black", resp.State.Turn)
	require.Equal(t, "None", resp.State.Cause)
	require.Len(t, resp.State.Board, 81)
	require.True(t, store.HasSnapshot(resp.GameID))

	komi := 0.0
	resp, err = uc.CreateGame(ctx, game.CreateGameRequest{BoardSize: 5, Komi: &komi})
	require.NoError(t, err)
	require.Equal(t, 5, resp.State.Size)
	require.Zero(t, resp.State.Komi)

	_, err = uc.CreateGame(ctx, game.CreateGameRequest{BoardSize: -1})
	require.ErrorIs(t, err, errs.ErrInvalidSize)

	bad := 0.25
	_, err = uc.CreateGame(ctx, game.CreateGameRequest{Komi: &bad})
	require.ErrorIs(t, err, errs.ErrInvalidKomi)
}

func TestBoardSizeCap(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop().Sugar()

	uncapped := NewGameUseCase(gametest.NewMemStore(), log, Defaults{BoardSize: 9})
	require.Equal(t, sgf.MaxSize, uncapped.defaults.MaxBoardSize)
	for _, size := range []int{sgf.MaxSize + 1, 100000, 1 << 32} {
		_, err := uncapped.CreateGame(ctx, game.CreateGameRequest{BoardSize: size})
		require.ErrorIs(t, err, errs.ErrInvalidSize)
	}

	wide, err := uncapped.CreateGame(ctx, game.CreateGameRequest{BoardSize: 21})
	require.NoError(t, err)
	doc, err := uncapped.Export(ctx, wide.GameID)
	require.NoError(t, err)

	capped := NewGameUseCase(gametest.NewMemStore(), log, Defaults{BoardSize: 9, MaxBoardSize: 19})
	_, err = capped.CreateGame(ctx, game.CreateGameRequest{BoardSize: 21})
	require.ErrorIs(t, err, errs.ErrInvalidSize)
	_, err = capped.ImportGame(ctx, doc)
	require.ErrorIs(t, err, errs.ErrImport)
	_, err = capped.ImportGame(ctx, []byte(`{"version":1,"size":4294967296,"history":[{"board":[]}]}`))
	require.ErrorIs(t, err, errs.ErrImport)

	resp, err := capped.CreateGame(ctx, game.CreateGameRequest{BoardSize: 19})
	require.NoError(t, err)
	require.Equal(t, 19, resp.State.Size)
}

func TestSGFPastAddressableBoard(t *testing.T) {
	uc := newUseCase(gametest.NewMemStore())
	play, err := engine.New(sgf.MaxSize + 1)
	require.NoError(t, err)

	_, err = uc.sgfOf(play)
	require.ErrorIs(t, err, errs.ErrInvalidSize)
	require.Equal(t, errs.ReasonInvalidSize, errs.ReasonOf(err))
}

func TestPlay(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(gametest.NewMemStore())
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)
	id := created.GameID

	state, err := uc.Play(ctx, id, game.MoveRequest{Vertex: "C7"})
	require.NoError(t, err)
	require.Equal(t, 0, state.Board[2*9+2])
	require.Equal(t, "White", state.Turn)
	require.Equal(t, "B C7", state.LastMove)

	state, err = uc.Play(ctx, id, at(4, 4))
	require.NoError(t, err)
	require.Equal(t, 1, state.Board[4*9+4])
	require.Equal(t, "W E5", state.LastMove)

	t.Run("occupied", func(t *testing.T) {
		state, err := uc.Play(ctx, id, at(4, 4))
		require.ErrorIs(t, err, errs.ErrOccupied)
		require.Equal(t, 2, state.MoveNumber)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		_, err := uc.Play(ctx, id, game.MoveRequest{Row: intPtr(1)})
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
	})

	t.Run("bad vertex", func(t *testing.T) {
		_, err := uc.Play(ctx, id, game.MoveRequest{Vertex: "Z99"})
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := uc.Play(ctx, "nope", at(0, 0))
		require.ErrorIs(t, err, errs.ErrGameNotFound)
	})
}

func TestGameSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := gametest.NewMemStore()
	uc := newUseCase(store)
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)
	id := created.GameID

	_, err = uc.Play(ctx, id, at(0, 0))
	require.NoError(t, err)
	_, err = uc.Play(ctx, id, at(1, 1))
	require.NoError(t, err)
	before, err := uc.Undo(ctx, id)
	require.NoError(t, err)
	require.True(t, before.CanRedo)

	restarted := newUseCase(store)
	after, err := restarted.GetState(ctx, id)
	require.NoError(t, err)
	require.Equal(t, before, after)

	redone, err := restarted.Redo(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, redone.Board[1*9+1])
}

func TestStoreFailureKeepsGameInMemory(t *testing.T) {
	ctx := context.Background()
	store := gametest.NewMemStore()
	uc := newUseCase(store)
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)

	store.FailSaves(errors.New("redis down"))
	state, err := uc.Play(ctx, created.GameID, at(0, 0))
	require.NoError(t, err)
	require.Equal(t, 1, state.MoveNumber)

	_, err = uc.CreateGame(ctx, game.CreateGameRequest{})
	require.Error(t, err)
}

func TestTwoPassesArchive(t *testing.T) {
	ctx := context.Background()
	store := gametest.NewMemStore()
	uc := newUseCase(store)
	komi := 0.5
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{BoardSize: 5, Komi: &komi})
	require.NoError(t, err)
	id := created.GameID

	_, err = uc.GetOutcome(ctx, id)
	require.ErrorIs(t, err, errs.ErrGameNotOver)
	scores, err := uc.GetScores(ctx, id)
	require.NoError(t, err)
	require.True(t, scores.Provisional)

	_, err = uc.Play(ctx, id, at(2, 2))
	require.NoError(t, err)
	_, err = uc.Pass(ctx, id)
	require.NoError(t, err)
	state, err := uc.Pass(ctx, id)
	require.NoError(t, err)
	require.True(t, state.IsOver)
	require.Equal(t, "TwoPasses", state.Cause)

	_, err = uc.Play(ctx, id, at(0, 0))
	require.ErrorIs(t, err, errs.ErrGameOver)

	out, err := uc.GetOutcome(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Black", out.Winner)
	require.Equal(t, 24.5, out.Margin)
	require.Equal(t, "B+24.5", out.Result)

	archived, err := uc.GetArchivedGame(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Black", archived.Winner)
	require.Equal(t, 3, archived.MoveCount)
	require.Equal(t, fixedNow, archived.FinishedAt)
	require.Equal(t, "(;FF[4]GM[1]SZ[5]DT[2024-05-01]RE[B+24.5]KM[0.5]RU[Chinese];B[cc];W[];B[])", archived.SGF)
}

func TestResignAndUndo(t *testing.T) {
	ctx := context.Background()
	store := gametest.NewMemStore()
	uc := newUseCase(store)
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{BoardSize: 5})
	require.NoError(t, err)
	id := created.GameID

	state, err := uc.Resign(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Black", state.Resigned)
	require.Equal(t, "B resign", state.LastMove)

	out, err := uc.GetOutcome(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "W+R", out.Result)
	archived, err := store.GetArchivedGame(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "W+R", archived.Result)

	state, err = uc.Undo(ctx, id)
	require.NoError(t, err)
	require.False(t, state.IsOver)

	_, err = uc.Undo(ctx, id)
	require.ErrorIs(t, err, errs.ErrNoHistory)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(gametest.NewMemStore())
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{BoardSize: 5})
	require.NoError(t, err)
	id := created.GameID

	for _, m := range []game.MoveRequest{at(0, 0), at(4, 4), at(0, 1)} {
		_, err := uc.Play(ctx, id, m)
		require.NoError(t, err)
	}

	grp, err := uc.GetGroup(ctx, id, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "Black", grp.Color)
	require.Len(t, grp.Stones, 2)
	require.Equal(t, "A5", grp.Stones[0].Vertex)
	require.Len(t, grp.Liberties, 3)

	grp, err = uc.GetGroup(ctx, id, 2, 2)
	require.NoError(t, err)
	require.Empty(t, grp.Color)
	require.Empty(t, grp.Stones)

	_, err = uc.GetGroup(ctx, id, 7, 7)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)

	moves, err := uc.GetMoves(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []game.Move{
		{Color: "Black", Kind: "play", Vertex: "A5"},
		{Color: "White", Kind: "play", Vertex: "E1"},
		{Color: "Black", Kind: "play", Vertex: "B5"},
	}, moves.Moves)

	record, err := uc.GetSGF(ctx, id)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(record, ";B[aa];W[ee];B[ba])"))

	var pdf bytes.Buffer
	require.NoError(t, uc.WriteRecord(ctx, id, &pdf))
	require.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF")))
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(gametest.NewMemStore())
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{BoardSize: 5})
	require.NoError(t, err)
	_, err = uc.Play(ctx, created.GameID, at(2, 2))
	require.NoError(t, err)

	doc, err := uc.Export(ctx, created.GameID)
	require.NoError(t, err)

	imported, err := uc.ImportGame(ctx, doc)
	require.NoError(t, err)
	require.NotEqual(t, created.GameID, imported.GameID)
	original, err := uc.GetState(ctx, created.GameID)
	require.NoError(t, err)
	require.Equal(t, original.Board, imported.State.Board)
	require.Equal(t, original.Turn, imported.State.Turn)

	_, err = uc.ImportGame(ctx, []byte(`{"version":1}`))
	require.ErrorIs(t, err, errs.ErrImport)
}

func TestDeleteGame(t *testing.T) {
	ctx := context.Background()
	store := gametest.NewMemStore()
	uc := newUseCase(store)
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteGame(ctx, created.GameID))
	require.False(t, store.HasSnapshot(created.GameID))
	_, err = uc.GetState(ctx, created.GameID)
	require.ErrorIs(t, err, errs.ErrGameNotFound)
	require.ErrorIs(t, uc.DeleteGame(ctx, created.GameID), errs.ErrGameNotFound)
}

func TestDeleteGameClosesStreams(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(gametest.NewMemStore())
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)

	events, cancel, err := uc.Subscribe(ctx, created.GameID)
	require.NoError(t, err)
	<-events

	require.NoError(t, uc.DeleteGame(ctx, created.GameID))
	_, open := <-events
	require.False(t, open)
	require.Zero(t, uc.broker.count(created.GameID))
	cancel()
}

func TestDeleteGameWaitsForRunningCommand(t *testing.T) {
	ctx := context.Background()
	store := gametest.NewMemStore()
	uc := newUseCase(store)
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)
	id := created.GameID

	s, err := uc.session(ctx, id)
	require.NoError(t, err)
	s.mu.Lock()

	played := make(chan error, 1)
	go func() {
		_, err := uc.Play(ctx, id, at(0, 0))
		played <- err
	}()
	deleted := make(chan error, 1)
	go func() {
		deleted <- uc.DeleteGame(ctx, id)
	}()
	time.Sleep(20 * time.Millisecond)
	s.mu.Unlock()

	require.NoError(t, <-deleted)
	if err := <-played; err != nil {
		require.ErrorIs(t, err, errs.ErrGameNotFound)
	}
	require.False(t, store.HasSnapshot(id), "a queued command must not bring the snapshot back")
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(gametest.NewMemStore())
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{})
	require.NoError(t, err)
	id := created.GameID

	events, cancel, err := uc.Subscribe(ctx, id)
	require.NoError(t, err)

	first := <-events
	require.Equal(t, game.EventState, first.Type)
	require.Zero(t, first.State.MoveNumber)

	_, err = uc.Play(ctx, id, at(0, 0))
	require.NoError(t, err)
	_, err = uc.Play(ctx, id, at(0, 0))
	require.ErrorIs(t, err, errs.ErrOccupied)

	next := <-events
	require.Equal(t, 1, next.State.MoveNumber)
	require.Empty(t, events, "rejected moves are not pushed")

	cancel()
	_, open := <-events
	require.False(t, open)
	require.Zero(t, uc.broker.count(id))
	cancel()

	_, _, err = uc.Subscribe(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrGameNotFound)
}

func TestConcurrentCommands(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(gametest.NewMemStore())
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{BoardSize: 19})
	require.NoError(t, err)
	id := created.GameID

	const n = 10
	var wg sync.WaitGroup
	failures := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			if _, err := uc.Play(ctx, id, at(0, col*2)); err != nil {
				failures <- err
			}
		}(i)
	}
	wg.Wait()
	close(failures)
	for err := range failures {
		require.NoError(t, err)
	}

	state, err := uc.GetState(ctx, id)
	require.NoError(t, err)
	require.Equal(t, n, state.MoveNumber)
}
