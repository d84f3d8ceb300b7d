package experiments

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
	"tictactoe/searcher/agent"
)

const DefaultGames = 20 // Per match up

// Experiment is a set of match-ups played Games times each. The first agent of
// a match-up plays X in even-numbered games and O in odd-numbered ones.
type Experiment struct {
	Name      string
	Configs   []metrics.AgentConfig
	MatchUps  [][2]metrics.AgentConfig
	Games     int
	Seed      uint64
	OutputDir string
}

// MatchUpSummary counts results per agent of a match-up, regardless of mark.
type MatchUpSummary struct {
	Agent1, Agent2 int // AgentConfig.ID
	Wins1, Wins2   int
	Draws          int
	MeanMoves      float64
	StdMoves       float64
}

// IterationsExperiment pairs a search agent per iteration budget against the
// random baseline.
func IterationsExperiment(iterations []int, exploration float64, games int, seed uint64, outputDir string) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Random: true}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, n := range iterations {
		config := metrics.AgentConfig{ID: i + 1, Iterations: n, Exploration: exploration}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, baseline})
	}

	return Experiment{
		Name:      "iterations",
		Configs:   configs,
		MatchUps:  matchUps,
		Games:     games,
		Seed:      seed,
		OutputDir: outputDir,
	}
}

// Run plays every match-up, stores the records as CSV and returns a summary
// per match-up.
func Run(exp Experiment) ([]MatchUpSummary, error) {
	if exp.Games <= 0 {
		exp.Games = DefaultGames
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := []MatchUpSummary{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchUp := range exp.MatchUps {
		config1, config2 := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), config1, config2)

		matchRecords := []metrics.GameRecord{}
		for i := 0; i < exp.Games; i++ {
			count++
			x, o := config1, config2
			if i%2 == 1 {
				x, o = config2, config1
			}

			seed := exp.Seed + uint64(count)*2
			result, gameMetric, moveMetrics, err := runGame(x, o, seed)
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			record := metrics.GameRecord{
				ID:         count,
				AgentX:     x.ID,
				AgentO:     o.ID,
				GameMetric: gameMetric,
			}
			gameRecords = append(gameRecords, record)
			matchRecords = append(matchRecords, record)
			for _, mm := range moveMetrics {
				agentID := x.ID
				if mm.Player == game.PlayerB {
					agentID = o.ID
				}
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					Agent:      agentID,
					MoveMetric: mm,
				})
			}

			log.Debug().Msgf("completed matchup %d of %d game %d with result: %s", mi+1, len(exp.MatchUps), i+1, result)
		}

		summary := summarize(config1.ID, config2.ID, matchRecords)
		summaries = append(summaries, summary)
		log.Info().
			Int("agent1", summary.Agent1).
			Int("agent2", summary.Agent2).
			Int("wins1", summary.Wins1).
			Int("wins2", summary.Wins2).
			Int("draws", summary.Draws).
			Float64("mean_moves", summary.MeanMoves).
			Float64("std_moves", summary.StdMoves).
			Msgf("completed matchup %d of %d", mi+1, len(exp.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if err := store(exp, gameRecords, moveRecords); err != nil {
		return summaries, err
	}
	return summaries, nil
}

func store(exp Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(exp.OutputDir, exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(exp.Configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}

	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}

func summarize(agent1, agent2 int, records []metrics.GameRecord) MatchUpSummary {
	winner := func(r metrics.GameRecord) int {
		switch r.Result {
		case game.PlayerAWins:
			return r.AgentX
		case game.PlayerBWins:
			return r.AgentO
		}
		return -1
	}

	summary := MatchUpSummary{
		Agent1: agent1,
		Agent2: agent2,
		Wins1:  lo.CountBy(records, func(r metrics.GameRecord) bool { return r.Result != game.Draw && winner(r) == agent1 }),
		Wins2:  lo.CountBy(records, func(r metrics.GameRecord) bool { return r.Result != game.Draw && winner(r) == agent2 }),
		Draws:  lo.CountBy(records, func(r metrics.GameRecord) bool { return r.Result == game.Draw }),
	}

	lengths := lo.Map(records, func(r metrics.GameRecord, _ int) float64 { return float64(r.TotalMoves) })
	if len(lengths) > 0 {
		summary.MeanMoves, summary.StdMoves = stat.MeanStdDev(lengths, nil)
		if math.IsNaN(summary.StdMoves) {
			summary.StdMoves = 0
		}
	}
	return summary
}

// runGame executes a single game between two agents and returns the result
func runGame(x, o metrics.AgentConfig, seed uint64) (game.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.NewLocalEngine(createAgent(x, seed), createAgent(o, seed+1))
	return e.Run()
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(seed)
	}

	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	return agent.NewEvaluationAgent(config.Iterations, options...)
}
