package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
	"tictactoe/searcher/agent"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if err := cfg.Load(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	var err error
	switch cfg.Mode {
	case config.ModePlay:
		err = play(cfg)
	case config.ModeExperiment:
		err = experiment(cfg)
	}
	if errors.Is(err, player.ErrQuit) {
		fmt.Println("\nBye!")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg(cfg.Mode + " failed")
	}
}

func play(cfg config.Config) error {
	fmt.Println("Welcome to Tic Tac Toe with MCTS!")
	fmt.Println("Board index layout:")
	fmt.Print(player.IndexLayout)

	terminal, err := player.NewTerminal()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer terminal.Close()
	human := player.NewHuman(terminal, os.Stdout)

	mark, iterations := game.Empty, cfg.Iterations
	if m, ok := game.ParseMark(cfg.Human); ok {
		mark = m
	} else {
		if mark, err = human.AskMark(); err != nil {
			return err
		}
		if iterations, err = human.AskIterations(cfg.Iterations); err != nil {
			return err
		}
	}

	options := []searcher.Option{searcher.WithExploration(cfg.Exploration)}
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed))
	}
	bot := announcingAgent{Agent: agent.NewEvaluationAgent(iterations, options...), out: os.Stdout}

	var e *engine.LocalEngine
	if mark == game.PlayerA {
		e = engine.NewLocalEngine(human, bot, engine.WithOutput(os.Stdout))
	} else {
		e = engine.NewLocalEngine(bot, human, engine.WithOutput(os.Stdout))
	}
	result, _, _, err := e.Run()
	if err != nil {
		return err
	}

	switch result.Winner() {
	case mark:
		fmt.Println("You win!")
	case mark.Opponent():
		fmt.Println("MCTS wins!")
	default:
		fmt.Println("It's a draw!")
	}
	return nil
}

// announcingAgent narrates the search agent's turns for the human.
type announcingAgent struct {
	agent.Agent
	out io.Writer
}

func (a announcingAgent) FindMove(board game.Board) (game.Coord, metrics.SearchMetric, error) {
	fmt.Fprintln(a.out, "MCTS is thinking...")
	move, metric, err := a.Agent.FindMove(board)
	if err == nil {
		fmt.Fprintf(a.out, "MCTS plays at position %d\n", move.Row*game.Size+move.Col)
	}
	return move, metric, err
}

func experiment(cfg config.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	exp := experiments.IterationsExperiment(cfg.Experiment.Iterations, cfg.Exploration, cfg.Experiment.Games, seed, cfg.Experiment.OutputDir)

	summaries, err := experiments.Run(exp)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("agent %d vs agent %d: %d-%d with %d draws, %.2f±%.2f moves per game\n",
			s.Agent1, s.Agent2, s.Wins1, s.Wins2, s.Draws, s.MeanMoves, s.StdMoves)
	}
	return nil
}
