package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go_engine/internal/domain/game"
	"go_engine/internal/domain/sgf"
	"go_engine/internal/engine/board"
	"go_engine/internal/engine/codec"
	engine "go_engine/internal/engine/game"
	errs "go_engine/internal/errors"
	"go_engine/internal/report"
)

type GameStore interface {
	SaveSnapshot(ctx context.Context, gameID string, doc []byte) error
	LoadSnapshot(ctx context.Context, gameID string) ([]byte, error)
	DeleteSnapshot(ctx context.Context, gameID string) error
	ArchiveGame(ctx context.Context, archived game.ArchivedGame) error
	GetArchivedGame(ctx context.Context, gameID string) (game.ArchivedGame, error)
}

// Defaults apply to games created without an explicit size or komi.
// MaxBoardSize caps created and imported games; zero or anything past
// what SGF can address means sgf.MaxSize.
type Defaults struct {
	BoardSize    int
	Komi         float64
	MaxBoardSize int
}

// session serializes every command on one game. A deleted session
// rejects whatever was still queued on its lock.
type session struct {
	mu      sync.Mutex
	game    *engine.Game
	deleted bool
}

type GameUseCase struct {
	store    GameStore
	log      *zap.SugaredLogger
	defaults Defaults
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session

	broker *broker
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger, defaults Defaults) *GameUseCase {
	if defaults.MaxBoardSize <= 0 || defaults.MaxBoardSize > sgf.MaxSize {
		defaults.MaxBoardSize = sgf.MaxSize
	}
	return &GameUseCase{
		store:    store,
		log:      log,
		defaults: defaults,
		now:      time.Now,
		sessions: make(map[string]*session),
		broker:   newBroker(),
	}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.GameCreateResponse, error) {
	size := req.BoardSize
	if size == 0 {
		size = g.defaults.BoardSize
	}
	komi := g.defaults.Komi
	if req.Komi != nil {
		komi = *req.Komi
	}

	if size > g.defaults.MaxBoardSize {
		return game.GameCreateResponse{}, fmt.Errorf("%w: %d lines, at most %d allowed", errs.ErrInvalidSize, size, g.defaults.MaxBoardSize)
	}

	play, err := engine.New(size, engine.WithKomi(komi))
	if err != nil {
		return game.GameCreateResponse{}, err
	}
	return g.register(ctx, play)
}

// ImportGame starts a new session from an exported document.
func (g *GameUseCase) ImportGame(ctx context.Context, doc []byte) (game.GameCreateResponse, error) {
	play, err := codec.Decode(doc, codec.WithMaxSize(g.defaults.MaxBoardSize))
	if err != nil {
		g.log.Debugw("import rejected", "reason", errs.ReasonOf(err), "error", err)
		return game.GameCreateResponse{}, err
	}
	return g.register(ctx, play)
}

func (g *GameUseCase) register(ctx context.Context, play *engine.Game) (game.GameCreateResponse, error) {
	gameID := uuid.NewString()
	s := &session{game: play}

	if err := g.persist(ctx, gameID, play); err != nil {
		return game.GameCreateResponse{}, err
	}

	g.mu.Lock()
	g.sessions[gameID] = s
	g.mu.Unlock()

	g.log.Infow("game created", "game_id", gameID, "size", play.Size(), "komi", play.Komi())
	return game.GameCreateResponse{GameID: gameID, State: toState(gameID, play)}, nil
}

// session returns the live game, loading it from the snapshot store when
// this process has not seen it yet.
func (g *GameUseCase) session(ctx context.Context, gameID string) (*session, error) {
	g.mu.RLock()
	s, ok := g.sessions[gameID]
	g.mu.RUnlock()
	if ok {
		return s, nil
	}

	doc, err := g.store.LoadSnapshot(ctx, gameID)
	if err != nil {
		return nil, err
	}
	play, err := codec.Decode(doc)
	if err != nil {
		g.log.Errorw("stored snapshot is unreadable", "game_id", gameID, "error", err)
		return nil, fmt.Errorf("%w: snapshot of %s: %v", errs.ErrInternal, gameID, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if existing, ok := g.sessions[gameID]; ok {
		return existing, nil
	}
	s = &session{game: play}
	g.sessions[gameID] = s
	return s, nil
}

// command runs fn under the game's lock. A successful command is saved,
// archived if it ended the game, and pushed to stream subscribers.
func (g *GameUseCase) command(ctx context.Context, gameID, name string, fn func(*engine.Game) (engine.View, error)) (game.GameState, error) {
	s, err := g.session(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted {
		return game.GameState{}, fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameID)
	}

	wasOver := s.game.IsOver()
	if _, err := fn(s.game); err != nil {
		g.log.Debugw("command rejected", "game_id", gameID, "command", name, "reason", errs.ReasonOf(err))
		return toState(gameID, s.game), err
	}

	state := toState(gameID, s.game)
	g.log.Infow("command applied", "game_id", gameID, "command", name, "move", state.LastMove, "move_number", state.MoveNumber)

	if err := g.persist(ctx, gameID, s.game); err != nil {
		g.log.Errorw("game kept in memory only", "game_id", gameID, "error", err)
	}
	if !wasOver && s.game.IsOver() {
		g.archive(ctx, gameID, s.game)
	}

	g.broker.publish(gameID, game.StreamEvent{Type: game.EventState, State: state})
	return state, nil
}

func (g *GameUseCase) persist(ctx context.Context, gameID string, play *engine.Game) error {
	doc, err := codec.Encode(play)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", errs.ErrInternal, gameID, err)
	}
	return g.store.SaveSnapshot(ctx, gameID, doc)
}

func (g *GameUseCase) archive(ctx context.Context, gameID string, play *engine.Game) {
	archived, err := g.toArchive(gameID, play)
	if err != nil {
		g.log.Errorw("cannot build archive record", "game_id", gameID, "error", err)
		return
	}
	if err := g.store.ArchiveGame(ctx, archived); err != nil {
		g.log.Errorw("failed to archive game", "game_id", gameID, "error", err)
	}
}

// Play places a stone for the side to move. A vertex takes precedence
// over row and col.
func (g *GameUseCase) Play(ctx context.Context, gameID string, req game.MoveRequest) (game.GameState, error) {
	return g.command(ctx, gameID, "play", func(play *engine.Game) (engine.View, error) {
		at, err := resolveMove(req, play.Size())
		if err != nil {
			return engine.View{}, err
		}
		return play.Play(at.Row, at.Col)
	})
}

func resolveMove(req game.MoveRequest, size int) (board.Coord, error) {
	if req.Vertex != "" {
		return board.ParseVertex(req.Vertex, size)
	}
	if req.Row == nil || req.Col == nil {
		return board.Coord{}, fmt.Errorf("%w: a move needs row and col or a vertex", errs.ErrOutOfBounds)
	}
	return board.Coord{Row: *req.Row, Col: *req.Col}, nil
}

func (g *GameUseCase) Pass(ctx context.Context, gameID string) (game.GameState, error) {
	return g.command(ctx, gameID, "pass", (*engine.Game).Pass)
}

func (g *GameUseCase) Resign(ctx context.Context, gameID string) (game.GameState, error) {
	return g.command(ctx, gameID, "resign", (*engine.Game).Resign)
}

func (g *GameUseCase) Undo(ctx context.Context, gameID string) (game.GameState, error) {
	return g.command(ctx, gameID, "undo", (*engine.Game).Undo)
}

func (g *GameUseCase) Redo(ctx context.Context, gameID string) (game.GameState, error) {
	return g.command(ctx, gameID, "redo", (*engine.Game).Redo)
}

// query runs fn under the game's lock without saving anything.
func query[T any](ctx context.Context, g *GameUseCase, gameID string, fn func(*engine.Game) (T, error)) (T, error) {
	s, err := g.session(ctx, gameID)
	if err != nil {
		var zero T
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted {
		var zero T
		return zero, fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameID)
	}
	return fn(s.game)
}

func (g *GameUseCase) GetState(ctx context.Context, gameID string) (game.GameState, error) {
	return query(ctx, g, gameID, func(play *engine.Game) (game.GameState, error) {
		return toState(gameID, play), nil
	})
}

func (g *GameUseCase) GetGroup(ctx context.Context, gameID string, row, col int) (game.GroupView, error) {
	return query(ctx, g, gameID, func(play *engine.Game) (game.GroupView, error) {
		grp, err := play.Group(row, col)
		if err != nil {
			return game.GroupView{}, err
		}
		return toGroupView(grp, play.Size()), nil
	})
}

func (g *GameUseCase) GetScores(ctx context.Context, gameID string) (game.ScoresView, error) {
	return query(ctx, g, gameID, func(play *engine.Game) (game.ScoresView, error) {
		return toScoresView(play.Scores(), play.Komi(), !play.IsOver()), nil
	})
}

func (g *GameUseCase) GetOutcome(ctx context.Context, gameID string) (game.OutcomeView, error) {
	return query(ctx, g, gameID, func(play *engine.Game) (game.OutcomeView, error) {
		out, err := play.Outcome()
		if err != nil {
			return game.OutcomeView{}, err
		}
		return toOutcomeView(out, play.Komi()), nil
	})
}

func (g *GameUseCase) GetMoves(ctx context.Context, gameID string) (game.Moves, error) {
	return query(ctx, g, gameID, func(play *engine.Game) (game.Moves, error) {
		return toMoves(play), nil
	})
}

func (g *GameUseCase) Export(ctx context.Context, gameID string) ([]byte, error) {
	return query(ctx, g, gameID, func(play *engine.Game) ([]byte, error) {
		return codec.Encode(play)
	})
}

// GetSGF renders the moves leading to the current position as SGF.
func (g *GameUseCase) GetSGF(ctx context.Context, gameID string) (string, error) {
	return query(ctx, g, gameID, func(play *engine.Game) (string, error) {
		return g.sgfOf(play)
	})
}

func (g *GameUseCase) sgfOf(play *engine.Game) (string, error) {
	if play.Size() > sgf.MaxSize {
		return "", fmt.Errorf("%w: SGF addresses at most %d lines", errs.ErrInvalidSize, sgf.MaxSize)
	}
	record, err := sgf.NewRecord(sgf.GameInfo{
		Size:   play.Size(),
		Komi:   play.Komi(),
		Result: sgfResult(play),
		Date:   g.now().Format("2006-01-02"),
	}, toSGFMoves(play.Moves()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
	return sgf.Serialize(record), nil
}

// WriteRecord renders the printable PDF record of a game into w.
func (g *GameUseCase) WriteRecord(ctx context.Context, gameID string, w io.Writer) error {
	rec, err := query(ctx, g, gameID, func(play *engine.Game) (report.Record, error) {
		return toRecord(gameID, play), nil
	})
	if err != nil {
		return err
	}
	return report.Render(w, rec)
}

// DeleteGame drops a live game from memory and from the snapshot store
// and disconnects its viewers. Archived records are kept.
func (g *GameUseCase) DeleteGame(ctx context.Context, gameID string) error {
	s, err := g.session(ctx, gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted {
		return fmt.Errorf("%w: %s", errs.ErrGameNotFound, gameID)
	}
	s.deleted = true

	g.mu.Lock()
	delete(g.sessions, gameID)
	g.mu.Unlock()
	g.broker.closeGame(gameID)

	if err := g.store.DeleteSnapshot(ctx, gameID); err != nil {
		g.log.Errorw("failed to delete snapshot", "game_id", gameID, "error", err)
		return err
	}
	g.log.Infow("game deleted", "game_id", gameID)
	return nil
}

func (g *GameUseCase) GetArchivedGame(ctx context.Context, gameID string) (game.ArchivedGame, error) {
	return g.store.GetArchivedGame(ctx, gameID)
}

// Subscribe streams every state committed to the game, starting with the
// current one. cancel must be called once the caller stops reading.
func (g *GameUseCase) Subscribe(ctx context.Context, gameID string) (<-chan game.StreamEvent, func(), error) {
	var (
		events chan game.StreamEvent
		cancel func()
	)
	_, err := query(ctx, g, gameID, func(play *engine.Game) (struct{}, error) {
		events, cancel = g.broker.subscribe(gameID)
		deliver(events, game.StreamEvent{Type: game.EventState, State: toState(gameID, play)})
		return struct{}{}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return events, cancel, nil
}
