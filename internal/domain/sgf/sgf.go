package sgf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GameTree is one SGF tree: a main line of nodes plus variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is a set of properties such as B[pd], W[dd] or C[...]. A property
// may repeat, as in AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

// SGF is the root of an SGF file.
type SGF struct {
	Root *GameTree
}

// Move is one move of a record. Color is "B" or "W".
type Move struct {
	Color string
	Pass  bool
	Row   int
	Col   int
}

// GameInfo fills the root node of a record.
type GameInfo struct {
	Size   int
	Komi   float64
	Result string
	Date   string
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxSize is the largest board SGF coordinates can address.
const MaxSize = len(letters)

// Point renders (row, col) as an SGF coordinate, column first, both
// counted from the top left corner.
func Point(row, col, size int) (string, error) {
	if size > MaxSize {
		return "", fmt.Errorf("sgf cannot address a %dx%d board", size, size)
	}
	if row < 0 || col < 0 || row >= size || col >= size {
		return "", fmt.Errorf("point (%d,%d) is off a %dx%d board", row, col, size, size)
	}
	return string(letters[col]) + string(letters[row]), nil
}

// NewRecord builds the main line of a game with FF[4] root properties.
// Resignations end the line without a node; they only show up in RE.
func NewRecord(info GameInfo, moves []Move) (*SGF, error) {
	root := Node{Properties: map[string][]string{
		"FF": {"4"},
		"GM": {"1"},
		"SZ": {strconv.Itoa(info.Size)},
		"KM": {strconv.FormatFloat(info.Komi, 'f', 1, 64)},
		"RU": {"Chinese"},
	}}
	if info.Result != "" {
		root.Properties["RE"] = []string{info.Result}
	}
	if info.Date != "" {
		root.Properties["DT"] = []string{info.Date}
	}

	tree := &GameTree{Nodes: []Node{root}}
	for _, m := range moves {
		if m.Color != "B" && m.Color != "W" {
			return nil, fmt.Errorf("unknown color %q", m.Color)
		}
		value := ""
		if !m.Pass {
			p, err := Point(m.Row, m.Col, info.Size)
			if err != nil {
				return nil, err
			}
			value = p
		}
		tree.Nodes = append(tree.Nodes, Node{Properties: map[string][]string{m.Color: {value}}})
	}
	return &SGF{Root: tree}, nil
}

// Serialize writes s in SGF text form. Root properties come first in a
// fixed order, the rest alphabetically.
func Serialize(s *SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	if s.Root != nil {
		serializeGameTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

var orderedKeys = []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}

func serializeGameTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		var rest []string
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString("[")
		builder.WriteString(escape(v))
		builder.WriteString("]")
	}
}

func escape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "]", `\]`)
}
