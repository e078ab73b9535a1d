package game

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"go_engine/internal/domain/game"
	errs "go_engine/internal/errors"
	"go_engine/internal/httpresponse"
	gameuc "go_engine/internal/usecase/game"
	"go_engine/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
	}
}

// Routes mounts the game API on r.
func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", g.HandleNewGame)
		r.Post("/import", g.HandleImport)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", g.HandleGetState)
			r.Delete("/", g.HandleDelete)
			r.Post("/play", g.HandlePlay)
			r.Post("/pass", g.HandlePass)
			r.Post("/resign", g.HandleResign)
			r.Post("/undo", g.HandleUndo)
			r.Post("/redo", g.HandleRedo)
			r.Get("/group", g.HandleGroup)
			r.Get("/scores", g.HandleScores)
			r.Get("/outcome", g.HandleOutcome)
			r.Get("/moves", g.HandleMoves)
			r.Get("/export", g.HandleExport)
			r.Get("/sgf", g.HandleSGF)
			r.Get("/record.pdf", g.HandleRecord)
			r.Get("/stream", g.HandleStream)
		})
	})
	r.Get("/archive/{id}", g.HandleArchived)
}

func (g *GameHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if httpresponse.StatusOf(err) == http.StatusInternalServerError {
		g.log.Errorw("request failed", "path", r.URL.Path, "error", err)
	} else {
		g.log.Debugw("request rejected", "path", r.URL.Path, "reason", errs.ReasonOf(err))
	}
	httpresponse.WriteError(w, err)
}

func writeMalformed(w http.ResponseWriter, err error) {
	httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{
		ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc + ": " + err.Error(),
	})
}

// HandleNewGame godoc
// @Summary Create a game
// @Description Starts a game on an empty board. Size and komi fall back to the server defaults.
// @Tags game
// @Accept json
// @Produce json
// @Param game body game.CreateGameRequest false "Board size and komi"
// @Success 200 {object} game.GameCreateResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /games [post]
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		writeMalformed(w, err)
		return
	}

	resp, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleGetState godoc
// @Summary Current state of a game
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.GameState
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /games/{id} [get]
func (g *GameHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleDelete godoc
// @Summary Drop a live game
// @Tags game
// @Param id path string true "Game id"
// @Success 200 {string} string "OK"
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /games/{id} [delete]
func (g *GameHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := g.gameUC.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// HandlePlay godoc
// @Summary Place a stone for the side to move
// @Tags game
// @Accept json
// @Produce json
// @Param id path string true "Game id"
// @Param move body game.MoveRequest true "Row and col, or a GTP vertex"
// @Success 200 {object} game.GameState
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /games/{id}/play [post]
func (g *GameHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		writeMalformed(w, err)
		return
	}
	state, err := g.gameUC.Play(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandlePass godoc
// @Summary Pass
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.GameState
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /games/{id}/pass [post]
func (g *GameHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	g.handleCommand(w, r, g.gameUC.Pass)
}

// HandleResign godoc
// @Summary Resign for the side to move
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.GameState
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /games/{id}/resign [post]
func (g *GameHandler) HandleResign(w http.ResponseWriter, r *http.Request) {
	g.handleCommand(w, r, g.gameUC.Resign)
}

// HandleUndo godoc
// @Summary Step back one move
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.GameState
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /games/{id}/undo [post]
func (g *GameHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	g.handleCommand(w, r, g.gameUC.Undo)
}

// HandleRedo godoc
// @Summary Replay an undone move
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.GameState
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /games/{id}/redo [post]
func (g *GameHandler) HandleRedo(w http.ResponseWriter, r *http.Request) {
	g.handleCommand(w, r, g.gameUC.Redo)
}

func (g *GameHandler) handleCommand(w http.ResponseWriter, r *http.Request, cmd func(ctx context.Context, gameID string) (game.GameState, error)) {
	state, err := cmd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleGroup godoc
// @Summary Group and liberties through an intersection
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Param row query int true "Row from the top"
// @Param col query int true "Column from the left"
// @Success 200 {object} game.GroupView
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /games/{id}/group [get]
func (g *GameHandler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	row, errRow := strconv.Atoi(r.URL.Query().Get("row"))
	col, errCol := strconv.Atoi(r.URL.Query().Get("col"))
	if errRow != nil || errCol != nil {
		g.writeError(w, r, fmt.Errorf("%w: row and col must be integers", errs.ErrOutOfBounds))
		return
	}
	view, err := g.gameUC.GetGroup(r.Context(), chi.URLParam(r, "id"), row, col)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

// HandleScores godoc
// @Summary Area score of the current board
// @Description Provisional while the game is in progress.
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.ScoresView
// @Router /games/{id}/scores [get]
func (g *GameHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	view, err := g.gameUC.GetScores(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

// HandleOutcome godoc
// @Summary Result of a finished game
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.OutcomeView
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /games/{id}/outcome [get]
func (g *GameHandler) HandleOutcome(w http.ResponseWriter, r *http.Request) {
	view, err := g.gameUC.GetOutcome(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

// HandleMoves godoc
// @Summary Moves leading to the current position
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.Moves
// @Router /games/{id}/moves [get]
func (g *GameHandler) HandleMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := g.gameUC.GetMoves(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, moves)
}

// HandleExport godoc
// @Summary Export the full game state
// @Description The body is the versioned state document accepted by /games/import.
// @Tags game
// @Produce json
// @Param id path string true "Game id"
// @Router /games/{id}/export [get]
func (g *GameHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := g.gameUC.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, json.RawMessage(doc))
}

// HandleImport godoc
// @Summary Start a game from an exported state document
// @Tags game
// @Accept json
// @Produce json
// @Success 200 {object} game.GameCreateResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /games/import [post]
func (g *GameHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := utils.ReadRequestBody(r)
	if err != nil {
		writeMalformed(w, err)
		return
	}
	resp, err := g.gameUC.ImportGame(r.Context(), body)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleSGF godoc
// @Summary SGF record of the current line
// @Tags game
// @Produce plain
// @Param id path string true "Game id"
// @Router /games/{id}/sgf [get]
func (g *GameHandler) HandleSGF(w http.ResponseWriter, r *http.Request) {
	record, err := g.gameUC.GetSGF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(record))
}

// HandleRecord godoc
// @Summary Printable PDF record
// @Tags game
// @Produce application/pdf
// @Param id path string true "Game id"
// @Router /games/{id}/record.pdf [get]
func (g *GameHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := g.gameUC.WriteRecord(r.Context(), chi.URLParam(r, "id"), &buf); err != nil {
		g.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleArchived godoc
// @Summary Archived record of a finished game
// @Tags archive
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} game.ArchivedGame
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /archive/{id} [get]
func (g *GameHandler) HandleArchived(w http.ResponseWriter, r *http.Request) {
	archived, err := g.gameUC.GetArchivedGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, archived)
}
