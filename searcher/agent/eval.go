package agent

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(iterations int, options ...searcher.Option) Agent {
	options = append(options, searcher.WithIterations(iterations))
	return evaluationAgent{mcts: searcher.NewMCTS(options...)}
}

func (a evaluationAgent) FindMove(board game.Board) (game.Coord, metrics.SearchMetric, error) {
	move, _, metric, err := a.mcts.SelectMove(board)
	return move, metric, err
}
