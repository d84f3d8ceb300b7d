package agent

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type Agent interface {
	// FindMove returns the move to play on board for its next player and performance metrics (if collected)
	FindMove(board game.Board) (game.Coord, metrics.SearchMetric, error)
}
