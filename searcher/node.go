package searcher

import (
	"fmt"

	"tictactoe/game"
)

const noParent = -1

// node is one entry of a tree arena. parent and children are indices into
// tree.nodes: a node owns its children, the parent index is only followed
// upwards during backup.
//
// rewards accumulates outcomes from the point of view of the player who moved
// into this node, i.e. the player to move at the parent.
type node struct {
	board      game.Board
	parent     int
	move       game.Coord // zero value for the root
	children   []int
	unexpanded []game.Coord
	rewards    float64
	visits     int
}

// tree is the search tree of a single move selection. The root is nodes[0].
type tree struct {
	nodes []node
}

func newTree(board game.Board) *tree {
	t := &tree{nodes: make([]node, 0, 256)}
	t.add(noParent, game.Coord{}, board)
	return t
}

// add appends a node and links it to its parent. Pointers into t.nodes are
// invalidated by add.
func (t *tree) add(parent int, move game.Coord, board game.Board) int {
	t.nodes = append(t.nodes, node{
		board:      board,
		parent:     parent,
		move:       move,
		unexpanded: board.LegalMoves(),
	})
	id := len(t.nodes) - 1
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) isTerminal(id int) bool {
	return t.nodes[id].board.Classify() != game.Ongoing
}

func (t *tree) isFullyExpanded(id int) bool {
	return len(t.nodes[id].unexpanded) == 0
}

// expand takes the last remaining unexpanded move of id, plays it for the side
// to move and returns the new child.
func (t *tree) expand(id int) (int, error) {
	n := &t.nodes[id]
	if len(n.unexpanded) == 0 {
		panic("cannot expand a fully expanded node")
	}

	last := len(n.unexpanded) - 1
	move := n.unexpanded[last]
	n.unexpanded = n.unexpanded[:last]

	board, err := n.board.Play(move, n.board.NextPlayer())
	if err != nil {
		return noParent, fmt.Errorf("expanding %v: %w", move, err)
	}
	return t.add(id, move, board), nil
}
