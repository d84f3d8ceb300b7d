package searcher

import (
	"math"

	"github.com/samber/lo"

	"tictactoe/game"
)

// pickChild returns the child of a fully expanded node with the highest UCT
// score. Ties go to the earliest created child.
func (t *tree) pickChild(id int, cSquared float64) int {
	n := &t.nodes[id]
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(cSquared, float64(n.visits))

	maxChild := noParent
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		c := &t.nodes[child]
		if score := policy.evaluate(c.rewards, float64(c.visits)); score > maxScore {
			maxScore = score
			maxChild = child
		}
	}
	return maxChild
}

// backup walks from id to the root. reward is given from PlayerA's point of
// view and is first turned towards the player who moved into id, then negated
// at every level.
func (t *tree) backup(id int, reward float64) {
	if t.nodes[id].board.NextPlayer() == game.PlayerA {
		reward = -reward
	}

	for id != noParent {
		n := &t.nodes[id]
		n.visits++
		n.rewards += reward
		reward = -reward
		id = n.parent
	}
}

// bestChild returns the most visited child of id. Ties go to the earliest
// created child.
func (t *tree) bestChild(id int) (int, bool) {
	children := t.nodes[id].children
	if len(children) == 0 {
		return noParent, false
	}

	return lo.MaxBy(children, func(a, b int) bool {
		return t.nodes[a].visits > t.nodes[b].visits
	}), true
}

// policy maps every expanded root move to its share of the root's visits.
func (t *tree) policy() map[game.Coord]float64 {
	root := &t.nodes[0]
	policy := make(map[game.Coord]float64, len(root.children))
	if root.visits == 0 {
		return policy
	}
	for _, child := range root.children {
		c := &t.nodes[child]
		policy[c.move] = float64(c.visits) / float64(root.visits)
	}
	return policy
}
