package searcher

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// SelectMove searches board for iterations iterations (the default when not
// positive) and returns the chosen move together with the board after it.
func SelectMove(board game.Board, iterations int, options ...Option) (game.Coord, game.Board, error) {
	options = append(options, WithIterations(iterations))
	move, next, _, err := NewMCTS(options...).SelectMove(board)
	return move, next, err
}

func (m *MCTS) SelectMove(board game.Board) (game.Coord, game.Board, metrics.SearchMetric, error) {
	move, metric, err := m.Search(board)
	if err != nil {
		return game.Coord{}, board, metric, err
	}

	next, err := board.Play(move, board.NextPlayer())
	if err != nil {
		return game.Coord{}, board, metric, fmt.Errorf("applying selected move: %w", err)
	}
	return move, next, metric, nil
}
