package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	require.Equal(t, ModePlay, c.Mode)
	require.Equal(t, 1000, c.Iterations)
	require.InDelta(t, 1.41421356, c.Exploration, 1e-6)
}

func TestLoad(t *testing.T) {
	t.Run("reading flags", func(t *testing.T) {
		c := Default()

		err := c.Load([]string{"-mode", "experiment", "-iterations", "250", "-human", "O", "-seed", "7", "-budgets", "5, 50"})

		require.NoError(t, err)
		require.Equal(t, ModeExperiment, c.Mode)
		require.Equal(t, 250, c.Iterations)
		require.Equal(t, "O", c.Human)
		require.Equal(t, uint64(7), c.Seed)
		require.Equal(t, []int{5, 50}, c.Experiment.Iterations)
	})

	t.Run("reading a file with flags taking precedence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte(`
mode: experiment
iterations: 300
log_level: debug
experiment:
  iterations: [1, 2]
  games: 6
`), 0644)
		require.NoError(t, err)
		c := Default()

		err = c.Load([]string{"-config", path, "-iterations", "400"})

		require.NoError(t, err)
		require.Equal(t, ModeExperiment, c.Mode)
		require.Equal(t, 400, c.Iterations, "Flag should override the file")
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, []int{1, 2}, c.Experiment.Iterations)
		require.Equal(t, 6, c.Experiment.Games)
		require.Equal(t, "results", c.Experiment.OutputDir, "Unset keys should keep their defaults")
	})

	t.Run("failing on a missing file", func(t *testing.T) {
		c := Default()

		err := c.Load([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})

		require.Error(t, err)
	})

	t.Run("failing on a bad budget list", func(t *testing.T) {
		c := Default()

		err := c.Load([]string{"-budgets", "10,ten"})

		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown mode":         func(c *Config) { c.Mode = "watch" },
		"zero iterations":      func(c *Config) { c.Iterations = 0 },
		"negative exploration": func(c *Config) { c.Exploration = -1 },
		"unknown mark":         func(c *Config) { c.Human = "Z" },
		"unknown level":        func(c *Config) { c.LogLevel = "loud" },
		"empty level":          func(c *Config) { c.LogLevel = "" },
		"no games":             func(c *Config) { c.Mode = ModeExperiment; c.Experiment.Games = 0 },
		"bad budget":           func(c *Config) { c.Mode = ModeExperiment; c.Experiment.Iterations = []int{10, 0} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)

			require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "WARN"

	level, err := c.Level()

	require.NoError(t, err)
	require.Equal(t, zerolog.WarnLevel, level)
}
