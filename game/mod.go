package game

import "errors"

// Size is the number of rows and columns on the board.
const Size = 3

// Cell is the content of a single square. The non-empty values double as the
// two players' marks.
type Cell uint8

const (
	Empty Cell = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player's mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

func (c Cell) IsPlayer() bool {
	return c == PlayerA || c == PlayerB
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "X"
	case PlayerB:
		return "O"
	default:
		return " "
	}
}

// ParseMark maps "X"/"O" (any case) to the corresponding player.
func ParseMark(s string) (Cell, bool) {
	switch s {
	case "X", "x":
		return PlayerA, true
	case "O", "o":
		return PlayerB, true
	}
	return Empty, false
}

// Result classifies a board as still running or finished.
type Result int

const (
	Ongoing Result = iota
	PlayerAWins
	PlayerBWins
	Draw
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case PlayerAWins:
		return "X wins"
	case PlayerBWins:
		return "O wins"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Winner returns the mark of the winning player, or Empty for a draw or an
// unfinished game.
func (r Result) Winner() Cell {
	switch r {
	case PlayerAWins:
		return PlayerA
	case PlayerBWins:
		return PlayerB
	default:
		return Empty
	}
}

var (
	// ErrInvalidMove is returned when a move is out of range, targets an
	// occupied cell or is played with a mark that is not a player.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidState is returned when a search or move is requested on a
	// board that is already decided, or when a grid breaks the turn order.
	ErrInvalidState = errors.New("invalid state")
)
