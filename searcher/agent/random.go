package agent

import (
	"fmt"

	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly among legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(board game.Board) (game.Coord, metrics.SearchMetric, error) {
	if result := board.Classify(); result != game.Ongoing {
		return game.Coord{}, metrics.SearchMetric{}, fmt.Errorf("cannot move in a finished game (%s): %w", result, game.ErrInvalidState)
	}
	moves := board.LegalMoves()
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
