package player

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

const (
	movePrompt       = "Enter your move (0-8): "
	markPrompt       = "Do you want to be X or O? "
	iterationsPrompt = "Enter number of MCTS simulations (e.g. 1000): "
)

// ErrQuit is returned when the input is closed or interrupted.
var ErrQuit = errors.New("player quit")

// LineReader is the part of *readline.Instance a Human needs.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Human asks a person for moves. Squares are entered as an index 0-8 in
// row-major order.
type Human struct {
	in  LineReader
	out io.Writer
}

func NewHuman(in LineReader, out io.Writer) *Human {
	return &Human{in: in, out: out}
}

// NewTerminal opens an interactive terminal reader. The caller closes it.
func NewTerminal() (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          movePrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

// FindMove prompts until a legal move is entered.
func (h *Human) FindMove(board game.Board) (game.Coord, metrics.SearchMetric, error) {
	if result := board.Classify(); result != game.Ongoing {
		return game.Coord{}, metrics.SearchMetric{}, fmt.Errorf("cannot move in a finished game (%s): %w", result, game.ErrInvalidState)
	}

	fmt.Fprintln(h.out, "Your move.")
	for {
		line, err := h.ask(movePrompt)
		if err != nil {
			return game.Coord{}, metrics.SearchMetric{}, err
		}
		index, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(h.out, "Invalid input. Please enter a number from 0 to 8.")
			continue
		}
		if index < 0 || index >= game.Size*game.Size {
			fmt.Fprintln(h.out, "Input must be between 0 and 8.")
			continue
		}
		move := game.Coord{Row: index / game.Size, Col: index % game.Size}
		if board.At(move) != game.Empty {
			fmt.Fprintln(h.out, "That space is already taken.")
			continue
		}
		return move, metrics.SearchMetric{}, nil
	}
}

// AskMark asks which mark the person plays until X or O is entered.
func (h *Human) AskMark() (game.Cell, error) {
	for {
		line, err := h.ask(markPrompt)
		if err != nil {
			return game.Empty, err
		}
		if mark, ok := game.ParseMark(line); ok {
			return mark, nil
		}
	}
}

// AskIterations asks for the search budget and falls back to fallback on
// anything that is not a positive number.
func (h *Human) AskIterations(fallback int) (int, error) {
	line, err := h.ask(iterationsPrompt)
	if err != nil {
		return 0, err
	}
	iterations, err := strconv.Atoi(line)
	if err != nil || iterations <= 0 {
		fmt.Fprintf(h.out, "Invalid number. Using default %d iterations.\n", fallback)
		return fallback, nil
	}
	return iterations, nil
}

func (h *Human) ask(prompt string) (string, error) {
	h.in.SetPrompt(prompt)
	line, err := h.in.Readline()
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return "", ErrQuit
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// IndexLayout is the square numbering shown to the person.
const IndexLayout = "0 | 1 | 2\n3 | 4 | 5\n6 | 7 | 8\n"
