package game

import (
	"fmt"

	"go_engine/internal/domain/game"
	"go_engine/internal/domain/sgf"
	"go_engine/internal/engine/board"
	engine "go_engine/internal/engine/game"
	"go_engine/internal/engine/group"
	"go_engine/internal/engine/rules"
	"go_engine/internal/engine/score"
	"go_engine/internal/report"
)

func toState(gameID string, play *engine.Game) game.GameState {
	v := play.View()
	state := game.GameState{
		GameID:     gameID,
		Size:       v.Size,
		Komi:       play.Komi(),
		Board:      make([]int, len(v.Board)),
		Turn:       v.Turn.String(),
		Captures:   game.Captures{Black: v.Captures.Black, White: v.Captures.White},
		Passes:     v.Passes,
		IsOver:     v.Over,
		Cause:      v.Cause.String(),
		MoveNumber: v.MoveNumber,
		CanUndo:    v.CanUndo,
		CanRedo:    v.CanRedo,
		LegalPlays: game.LegalPlays{
			Black: play.HasLegalPlay(board.Black),
			White: play.HasLegalPlay(board.White),
		},
	}
	for i, c := range v.Board {
		state.Board[i] = int(c)
	}
	if v.Ko != nil {
		p := toPoint(*v.Ko, v.Size)
		state.Ko = &p
	}
	if v.Resigned != nil {
		state.Resigned = v.Resigned.String()
	}
	if moves := play.Moves(); len(moves) > 0 {
		state.LastMove = moveLabel(moves[len(moves)-1], v.Size)
	}
	return state
}

func toPoint(c board.Coord, size int) game.Point {
	// Boards past 25 lines have no GTP vertex; the point is still valid.
	vertex, _ := board.FormatVertex(c, size)
	return game.Point{Row: c.Row, Col: c.Col, Vertex: vertex}
}

func toPoints(cs []board.Coord, size int) []game.Point {
	out := make([]game.Point, 0, len(cs))
	for _, c := range cs {
		out = append(out, toPoint(c, size))
	}
	return out
}

func toGroupView(g group.Group, size int) game.GroupView {
	view := game.GroupView{
		Stones:    toPoints(g.Stones, size),
		Liberties: toPoints(g.Liberties, size),
	}
	if !g.Empty() {
		view.Color = g.Color.String()
	}
	return view
}

func toScoresView(s score.Scores, komi float64, provisional bool) game.ScoresView {
	return game.ScoresView{Black: s.Black, White: s.White, Komi: komi, Provisional: provisional}
}

func toOutcomeView(out score.Outcome, komi float64) game.OutcomeView {
	view := game.OutcomeView{
		Draw:          out.Draw,
		Margin:        out.Margin,
		ByResignation: out.ByResignation,
		Result:        out.String(),
	}
	if !out.Draw {
		view.Winner = out.Winner.String()
	}
	if out.Scores != nil {
		s := toScoresView(*out.Scores, komi, false)
		view.Scores = &s
	}
	return view
}

// moveLabel renders a move as "B D4", "W pass" or "B resign". Boards
// without GTP vertices fall back to (row,col).
func moveLabel(m rules.Move, size int) string {
	color := m.Color.String()[:1]
	if m.Kind != rules.KindPlay {
		return fmt.Sprintf("%s %s", color, m.Kind)
	}
	vertex, err := board.FormatVertex(m.At, size)
	if err != nil {
		vertex = m.At.String()
	}
	return fmt.Sprintf("%s %s", color, vertex)
}

func toMoves(play *engine.Game) game.Moves {
	moves := play.Moves()
	out := game.Moves{Moves: make([]game.Move, 0, len(moves))}
	for _, m := range moves {
		dto := game.Move{Color: m.Color.String(), Kind: m.Kind.String()}
		if m.Kind == rules.KindPlay {
			dto.Vertex = toPoint(m.At, play.Size()).Vertex
		}
		out.Moves = append(out.Moves, dto)
	}
	return out
}

// toSGFMoves drops resignations; SGF records them in RE only.
func toSGFMoves(moves []rules.Move) []sgf.Move {
	out := make([]sgf.Move, 0, len(moves))
	for _, m := range moves {
		if m.Kind == rules.KindResign {
			continue
		}
		out = append(out, sgf.Move{
			Color: m.Color.String()[:1],
			Pass:  m.Kind == rules.KindPass,
			Row:   m.At.Row,
			Col:   m.At.Col,
		})
	}
	return out
}

func sgfResult(play *engine.Game) string {
	out, err := play.Outcome()
	if err != nil {
		return ""
	}
	if out.Draw {
		return "0"
	}
	return out.String()
}

func toRecord(gameID string, play *engine.Game) report.Record {
	captures := play.Captures()
	rec := report.Record{
		Title:    "Game " + gameID,
		Size:     play.Size(),
		Komi:     play.Komi(),
		Cells:    play.Board(),
		Captures: [2]int{captures.Black, captures.White},
	}
	if out, err := play.Outcome(); err == nil {
		rec.Result = out.String()
	}
	for _, m := range play.Moves() {
		rec.Moves = append(rec.Moves, moveLabel(m, play.Size()))
	}
	return rec
}

func (g *GameUseCase) toArchive(gameID string, play *engine.Game) (game.ArchivedGame, error) {
	out, err := play.Outcome()
	if err != nil {
		return game.ArchivedGame{}, err
	}
	record, err := g.sgfOf(play)
	if err != nil {
		return game.ArchivedGame{}, err
	}
	view := toOutcomeView(out, play.Komi())
	captures := play.Captures()
	return game.ArchivedGame{
		GameID:     gameID,
		BoardSize:  play.Size(),
		Komi:       play.Komi(),
		Cause:      play.Cause().String(),
		Winner:     view.Winner,
		Margin:     out.Margin,
		Draw:       out.Draw,
		Result:     view.Result,
		Scores:     toScoresView(play.Scores(), play.Komi(), false),
		Captures:   game.Captures{Black: captures.Black, White: captures.White},
		SGF:        record,
		MoveCount:  play.MoveNumber(),
		FinishedAt: g.now(),
	}, nil
}
