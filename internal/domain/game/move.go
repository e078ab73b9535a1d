package game

// MoveRequest places a stone either by coordinates or by GTP vertex
// ("D4"). The vertex wins when both are given.
//
// @name MoveRequest
type MoveRequest struct {
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
	Vertex string `json:"vertex,omitempty"`
}

// @name Move
type Move struct {
	Color  string `json:"color"`
	Kind   string `json:"kind"`
	Vertex string `json:"vertex,omitempty"`
}

// @name Moves
type Moves struct {
	Moves []Move `json:"moves"`
}
