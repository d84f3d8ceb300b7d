package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher/agent"
)

type LocalEngine struct {
	board  game.Board
	agents map[game.Cell]agent.Agent
	out    io.Writer
}

type EngineOption func(e *LocalEngine)

// WithBoard starts the game from board instead of an empty one.
func WithBoard(board game.Board) EngineOption {
	return func(e *LocalEngine) {
		e.board = board
	}
}

// WithOutput renders the board to out before every move and once the game is over.
func WithOutput(out io.Writer) EngineOption {
	return func(e *LocalEngine) {
		e.out = out
	}
}

// NewLocalEngine pits playerA (X) against playerB (O) in a single process.
func NewLocalEngine(playerA, playerB agent.Agent, options ...EngineOption) *LocalEngine {
	if playerA == nil || playerB == nil {
		panic("need an agent for both players")
	}
	e := &LocalEngine{
		board: game.NewBoard(),
		agents: map[game.Cell]agent.Agent{
			game.PlayerA: playerA,
			game.PlayerB: playerB,
		},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) Board() game.Board {
	return e.board
}

// Run executes the entire game loop until the board is won or drawn.
func (e *LocalEngine) Run() (game.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.board.NextPlayer(),
		StartTime:      time.Now(),
	}
	log.Debug().Msgf("player %s is starting", gameMetric.StartingPlayer)

	var moveMetrics []metrics.MoveMetric
	step := 1
	for e.board.Classify() == game.Ongoing {
		e.render()
		player := e.board.NextPlayer()

		move, searchMetric, err := e.agents[player].FindMove(e.board)
		if err != nil {
			return game.Ongoing, gameMetric, moveMetrics, fmt.Errorf("player %s at step %d: %w", player, step, err)
		}
		next, err := e.board.Play(move, player)
		if err != nil {
			return game.Ongoing, gameMetric, moveMetrics, fmt.Errorf("player %s at step %d: %w", player, step, err)
		}

		log.Debug().Int("step", step).Stringer("player", player).Stringer("move", move).Msg("move played")
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move,
			SearchMetric: searchMetric,
		})

		e.board = next
		step++
	}
	e.render()

	result := e.board.Classify()
	gameMetric.Result = result
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Debug().Stringer("result", result).Int("moves", gameMetric.TotalMoves).Msg("game over")
	return result, gameMetric, moveMetrics, nil
}

func (e *LocalEngine) render() {
	if e.out == nil {
		return
	}
	fmt.Fprintf(e.out, "\nCurrent Board:\n%s", e.board)
}
