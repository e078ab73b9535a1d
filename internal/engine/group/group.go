// Package group computes connected stone groups, their liberties, and the
// empty regions between them. Nothing is cached: every call floods the
// board it is given.
package group

import (
	"sort"

	"go_engine/internal/engine/board"
)

// Group is a maximal set of same-colored, orthogonally connected stones.
// Stones and Liberties are sets; they are returned in row-major order.
type Group struct {
	Color     board.Color   `json:"color"`
	Stones    []board.Coord `json:"stones"`
	Liberties []board.Coord `json:"liberties"`
}

// Empty reports whether the group was taken from an empty intersection.
func (g Group) Empty() bool {
	return len(g.Stones) == 0
}

// Contains reports whether c is one of the group's stones.
func (g Group) Contains(c board.Coord) bool {
	for _, s := range g.Stones {
		if s == c {
			return true
		}
	}
	return false
}

// Analyze returns the group through c. An empty intersection yields an
// empty group with no liberties.
func Analyze(b *board.Board, c board.Coord) (Group, error) {
	cell, err := b.Get(c)
	if err != nil {
		return Group{}, err
	}
	color, ok := cell.Color()
	if !ok {
		return Group{}, nil
	}
	members, border := flood(b, c)
	var libs []board.Coord
	for _, p := range border {
		if b.At(p) == board.CellEmpty {
			libs = append(libs, p)
		}
	}
	return Group{Color: color, Stones: members, Liberties: libs}, nil
}

// Region is a maximal connected set of empty intersections.
type Region struct {
	Points       []board.Coord
	BordersBlack bool
	BordersWhite bool
}

// Owner returns the single color bordering the region, false when the
// region touches both colors or no stones at all.
func (r Region) Owner() (board.Color, bool) {
	switch {
	case r.BordersBlack && !r.BordersWhite:
		return board.Black, true
	case r.BordersWhite && !r.BordersBlack:
		return board.White, true
	}
	return board.Black, false
}

// Regions partitions every empty intersection of b into regions.
func Regions(b *board.Board) []Region {
	size := b.Size()
	seen := make([]bool, size*size)
	var out []Region
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			c := board.Coord{Row: row, Col: col}
			if seen[row*size+col] || b.At(c) != board.CellEmpty {
				continue
			}
			members, border := flood(b, c)
			r := Region{Points: members}
			for _, p := range members {
				seen[p.Row*size+p.Col] = true
			}
			for _, p := range border {
				switch b.At(p) {
				case board.CellBlack:
					r.BordersBlack = true
				case board.CellWhite:
					r.BordersWhite = true
				}
			}
			out = append(out, r)
		}
	}
	return out
}

// flood collects the connected cells sharing the state of start, and the
// distinct cells of any other state adjacent to them.
func flood(b *board.Board, start board.Coord) (members, border []board.Coord) {
	want := b.At(start)
	size := b.Size()
	visited := make(map[int]bool)
	bordered := make(map[int]bool)
	stack := []board.Coord{start}
	visited[start.Row*size+start.Col] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, cur)
		for _, n := range b.Neighbors(cur) {
			key := n.Row*size + n.Col
			if b.At(n) == want {
				if !visited[key] {
					visited[key] = true
					stack = append(stack, n)
				}
				continue
			}
			if !bordered[key] {
				bordered[key] = true
				border = append(border, n)
			}
		}
	}
	sortCoords(members)
	sortCoords(border)
	return members, border
}

func sortCoords(cs []board.Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}
		return cs[i].Col < cs[j].Col
	})
}
