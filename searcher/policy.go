package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"tictactoe/game"
)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// RolloutPolicy picks the index of the move to play from a non-empty list of
// legal moves.
type RolloutPolicy func(moves []game.Coord) int

// RandomRollout picks uniformly at random using rng.
func RandomRollout(rng *rand.Rand) RolloutPolicy {
	return func(moves []game.Coord) int {
		return rng.Intn(len(moves))
	}
}

// FirstMoveRollout always plays the first legal move in row-major order.
func FirstMoveRollout(moves []game.Coord) int {
	return 0
}
