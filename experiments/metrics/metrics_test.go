package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

func TestCollector(t *testing.T) {
	t.Run("counting a search", func(t *testing.T) {
		c := NewCollector()
		c.Start(3)
		c.AddEpisode()
		c.AddEpisode()
		c.AddFullPlayout()
		c.SetTreeSize(4)

		m := c.Complete()

		require.Equal(t, 3, m.Iterations)
		require.Equal(t, 2, m.Episodes)
		require.Equal(t, 1, m.FullPlayouts)
		require.Equal(t, 4, m.TreeSize)
		require.GreaterOrEqual(t, m.Duration, time.Duration(0))
	})

	t.Run("resetting on start", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddEpisode()
		c.Start(1)

		require.Zero(t, c.Complete().Episodes)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(5)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "unit")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 0, Random: true},
		{ID: 1, Iterations: 100, Exploration: 1.5},
	}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{
		{ID: 1, AgentX: 1, AgentO: 0, GameMetric: GameMetric{StartingPlayer: game.PlayerA, Result: game.PlayerAWins, TotalMoves: 5}},
	}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{
		{Game: 1, Agent: 1, MoveMetric: MoveMetric{Step: 1, Player: game.PlayerA, Move: game.Coord{Row: 2, Col: 1}, SearchMetric: SearchMetric{Iterations: 100}}},
	}))

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{
		{"id", "random", "iterations", "exploration"},
		{"0", "true", "0", "0"},
		{"1", "false", "100", "1.5"},
	}, configs)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{"1", "1", "0", "X", "X wins", "X", "5"}, games[1][:7])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)
	require.Equal(t, []string{"1", "1", "1", "X", "2", "1", "100"}, moves[1][:7])
}
