package game

import (
	"time"
)

// @name CreateGameRequest
type CreateGameRequest struct {
	BoardSize int      `json:"board_size"`
	Komi      *float64 `json:"komi,omitempty"`
}

// @name GameCreateResponse
type GameCreateResponse struct {
	GameID string    `json:"game_id"`
	State  GameState `json:"state"`
}

// Point is an intersection, with its GTP vertex when the board is small
// enough to have one.
type Point struct {
	Row    int    `json:"row" bson:"row"`
	Col    int    `json:"col" bson:"col"`
	Vertex string `json:"vertex,omitempty" bson:"vertex,omitempty"`
}

type Captures struct {
	Black int `json:"black" bson:"black"`
	White int `json:"white" bson:"white"`
}

// LegalPlays tells which colors still have somewhere to put a stone.
// Both false on a live game means only passing is left.
type LegalPlays struct {
	Black bool `json:"black"`
	White bool `json:"white"`
}

// GameState is returned by every command. Board holds size*size cells in
// row-major order: 0 black, 1 white, 2 empty.
//
// @name GameState
type GameState struct {
	GameID     string     `json:"game_id"`
	Size       int        `json:"size"`
	Komi       float64    `json:"komi"`
	Board      []int      `json:"board"`
	Turn       string     `json:"turn"`
	Captures   Captures   `json:"captures"`
	Passes     int        `json:"passes"`
	Ko         *Point     `json:"ko"`
	IsOver     bool       `json:"is_over"`
	Cause      string     `json:"cause"`
	Resigned   string     `json:"resigned,omitempty"`
	MoveNumber int        `json:"move_number"`
	LastMove   string     `json:"last_move,omitempty"`
	CanUndo    bool       `json:"can_undo"`
	CanRedo    bool       `json:"can_redo"`
	LegalPlays LegalPlays `json:"legal_plays"`
}

// @name GroupView
type GroupView struct {
	Color     string  `json:"color,omitempty"`
	Stones    []Point `json:"stones"`
	Liberties []Point `json:"liberties"`
}

// @name ScoresView
type ScoresView struct {
	Black float64 `json:"black" bson:"black"`
	White float64 `json:"white" bson:"white"`
	Komi  float64 `json:"komi" bson:"komi"`
	// Provisional is set while the game is still in progress.
	Provisional bool `json:"provisional" bson:"-"`
}

// @name OutcomeView
type OutcomeView struct {
	Winner        string      `json:"winner,omitempty"`
	Draw          bool        `json:"draw"`
	Margin        float64     `json:"margin"`
	ByResignation bool        `json:"by_resignation"`
	Result        string      `json:"result"`
	Scores        *ScoresView `json:"scores,omitempty"`
}

// ArchivedGame is what is kept of a game once it has ended.
type ArchivedGame struct {
	GameID     string     `json:"game_id" bson:"game_id"`
	BoardSize  int        `json:"board_size" bson:"board_size"`
	Komi       float64    `json:"komi" bson:"komi"`
	Cause      string     `json:"cause" bson:"cause"`
	Winner     string     `json:"winner,omitempty" bson:"winner,omitempty"`
	Margin     float64    `json:"margin" bson:"margin"`
	Draw       bool       `json:"draw" bson:"draw"`
	Result     string     `json:"result" bson:"result"`
	Scores     ScoresView `json:"scores" bson:"scores"`
	Captures   Captures   `json:"captures" bson:"captures"`
	SGF        string     `json:"sgf" bson:"sgf"`
	MoveCount  int        `json:"move_count" bson:"move_count"`
	FinishedAt time.Time  `json:"finished_at" bson:"finished_at"`
}

// StreamEvent is pushed to websocket viewers of a game.
type StreamEvent struct {
	Type  string    `json:"type"`
	State GameState `json:"state"`
}

const (
	EventState = "state"
)
