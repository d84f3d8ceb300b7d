package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"tictactoe/game"
	"tictactoe/searcher"
)

const (
	ModePlay       = "play"
	ModeExperiment = "experiment"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Mode        string  `yaml:"mode"`
	Iterations  int     `yaml:"iterations"`
	Exploration float64 `yaml:"exploration"`
	// Seed 0 seeds from the clock.
	Seed     uint64 `yaml:"seed"`
	LogLevel string `yaml:"log_level"`
	// Human is X or O; empty asks at start.
	Human      string           `yaml:"human"`
	Experiment ExperimentConfig `yaml:"experiment"`

	ConfigPath string `yaml:"-"`
}

type ExperimentConfig struct {
	Iterations []int  `yaml:"iterations"`
	Games      int    `yaml:"games"`
	OutputDir  string `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		Mode:        ModePlay,
		Iterations:  searcher.DefaultIterations,
		Exploration: searcher.DefaultExploration,
		LogLevel:    "info",
		Experiment: ExperimentConfig{
			Iterations: []int{10, 100, 1000},
			Games:      20,
			OutputDir:  "results",
		},
	}
}

func (c *Config) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file with settings; flags take precedence")
	fs.StringVar(&c.Mode, "mode", c.Mode, "play against the search or run an experiment (play|experiment)")
	fs.IntVar(&c.Iterations, "iterations", c.Iterations, "search iterations per move")
	fs.Float64Var(&c.Exploration, "exploration", c.Exploration, "UCT exploration constant")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed, 0 for a clock-based seed")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&c.Human, "human", c.Human, "mark played by the human (X|O), asked when empty")
	fs.IntVar(&c.Experiment.Games, "games", c.Experiment.Games, "games per experiment match-up")
	fs.StringVar(&c.Experiment.OutputDir, "output-dir", c.Experiment.OutputDir, "directory for experiment records")
	fs.Func("budgets", "comma separated iteration budgets for experiments", func(s string) error {
		budgets, err := parseBudgets(s)
		if err != nil {
			return err
		}
		c.Experiment.Iterations = budgets
		return nil
	})
	return fs
}

// Load fills c from the optional YAML file named by -config and then from
// args. Flags given on the command line win over the file.
func (c *Config) Load(args []string) error {
	probe := *c
	err := probe.flagSet().Parse(args)
	if err != nil {
		return err
	}

	if probe.ConfigPath != "" {
		data, err := os.ReadFile(probe.ConfigPath)
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		err = yaml.Unmarshal(data, c)
		if err != nil {
			return fmt.Errorf("parsing config file %s: %w", probe.ConfigPath, err)
		}
	}

	return c.flagSet().Parse(args)
}

func (c Config) Validate() error {
	if c.Mode != ModePlay && c.Mode != ModeExperiment {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Exploration < 0 {
		return fmt.Errorf("%w: exploration must not be negative, got %g", ErrInvalidConfig, c.Exploration)
	}
	if c.Human != "" {
		if _, ok := game.ParseMark(c.Human); !ok {
			return fmt.Errorf("%w: human must be X or O, got %q", ErrInvalidConfig, c.Human)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Mode == ModeExperiment {
		if c.Experiment.Games <= 0 {
			return fmt.Errorf("%w: experiment games must be positive, got %d", ErrInvalidConfig, c.Experiment.Games)
		}
		if len(c.Experiment.Iterations) == 0 || lo.SomeBy(c.Experiment.Iterations, func(n int) bool { return n <= 0 }) {
			return fmt.Errorf("%w: experiment budgets must be positive, got %v", ErrInvalidConfig, c.Experiment.Iterations)
		}
	}
	return nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.NoLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

func parseBudgets(s string) ([]int, error) {
	parts := lo.Filter(strings.Split(s, ","), func(p string, _ int) bool { return strings.TrimSpace(p) != "" })
	budgets := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("budget %q: %w", p, err)
		}
		budgets = append(budgets, n)
	}
	return budgets, nil
}
