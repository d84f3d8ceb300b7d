package searcher

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

const DefaultIterations = 1000

// DefaultExploration is the UCT exploration constant c.
var DefaultExploration = math.Sqrt2

type Option func(m *MCTS)

// MCTS runs a fixed number of single-threaded search iterations from a fresh
// tree on every call. Nothing is carried over between calls except the random
// source.
type MCTS struct {
	iterations int
	cSquared   float64
	seed       uint64
	rollout    RolloutPolicy
	metrics    metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.cSquared = c * c
		}
	}
}

// WithSeed fixes the seed of the default random rollout policy.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

// WithRolloutPolicy replaces the random rollout policy.
func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.rollout = policy
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations: DefaultIterations,
		cSquared:   DefaultExploration * DefaultExploration,
		seed:       uint64(time.Now().UnixNano()),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rollout == nil {
		m.rollout = RandomRollout(rand.New(rand.NewSource(m.seed)))
	}
	return m
}

func (m *MCTS) Iterations() int {
	return m.iterations
}

// Search builds a tree rooted at board and returns the most visited root move.
func (m *MCTS) Search(board game.Board) (game.Coord, metrics.SearchMetric, error) {
	m.metrics.Start(m.iterations)
	t, err := m.buildTree(board)
	if err != nil {
		return game.Coord{}, metrics.SearchMetric{}, err
	}
	m.metrics.SetTreeSize(t.size())
	metric := m.metrics.Complete()

	best, ok := t.bestChild(0)
	if !ok {
		panic("root has no children after search")
	}
	child := &t.nodes[best]

	log.Debug().
		Int("iterations", m.iterations).
		Int("nodes", t.size()).
		Stringer("move", child.move).
		Int("visits", child.visits).
		Float64("value", child.rewards/float64(child.visits)).
		Msg("search complete")

	return child.move, metric, nil
}

func (m *MCTS) buildTree(board game.Board) (*tree, error) {
	if result := board.Classify(); result != game.Ongoing {
		return nil, fmt.Errorf("cannot search a finished game (%s): %w", result, game.ErrInvalidState)
	}

	t := newTree(board)
	for i := 0; i < m.iterations; i++ {
		if err := m.simulate(t); err != nil {
			return nil, err
		}
		m.metrics.AddEpisode()
	}
	return t, nil
}

func (m *MCTS) simulate(t *tree) error {
	leaf, err := selectThenExpand(t, m.cSquared)
	if err != nil {
		return err
	}

	result, err := rollout(t.nodes[leaf].board, m.rollout)
	if err != nil {
		return err
	}
	if result != game.Ongoing {
		m.metrics.AddFullPlayout()
	}

	t.backup(leaf, game.Reward(result))
	return nil
}

// selectThenExpand descends through fully expanded nodes by UCT and expands
// the first node that still has untried moves. A terminal node is returned
// as is.
func selectThenExpand(t *tree, cSquared float64) (int, error) {
	id := 0
	for !t.isTerminal(id) && t.isFullyExpanded(id) {
		id = t.pickChild(id, cSquared)
	}
	if t.isTerminal(id) {
		return id, nil
	}
	return t.expand(id)
}

// rollout plays board to the end following policy.
func rollout(board game.Board, policy RolloutPolicy) (game.Result, error) {
	result := board.Classify()
	for result == game.Ongoing {
		moves := board.LegalMoves()
		if len(moves) == 0 {
			break
		}
		move := moves[policy(moves)]

		var err error
		board, err = board.Play(move, board.NextPlayer())
		if err != nil {
			return result, fmt.Errorf("rollout: %w", err)
		}
		result = board.Classify()
	}
	return result, nil
}
