package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Board is the state of a game. It is a value type: Play returns a modified
// copy and never touches the receiver, so boards held by different search
// nodes stay independent.
type Board struct {
	cells [Size][Size]Cell
}

// NewBoard returns the empty starting position.
func NewBoard() Board {
	return Board{}
}

// FromCells builds a board from a grid, rejecting grids that could not arise
// from alternating play with PlayerA first.
func FromCells(cells [Size][Size]Cell) (Board, error) {
	b := Board{cells: cells}
	for _, cell := range b.flat() {
		if cell != Empty && !cell.IsPlayer() {
			return Board{}, fmt.Errorf("unknown cell value %d: %w", cell, ErrInvalidState)
		}
	}
	a, o := b.counts()
	if a != o && a != o+1 {
		return Board{}, fmt.Errorf("%d X marks and %d O marks: %w", a, o, ErrInvalidState)
	}
	return b, nil
}

// Cells returns a copy of the grid.
func (b Board) Cells() [Size][Size]Cell {
	return b.cells
}

// At returns the content of the square at c, which must be valid.
func (b Board) At(c Coord) Cell {
	return b.cells[c.Row][c.Col]
}

func (b Board) flat() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for _, row := range b.cells {
		cells = append(cells, row[:]...)
	}
	return cells
}

func (b Board) counts() (a, o int) {
	cells := b.flat()
	return lo.Count(cells, PlayerA), lo.Count(cells, PlayerB)
}

// LegalMoves lists the empty squares in row-major order. It is recomputed on
// every call.
func (b Board) LegalMoves() []Coord {
	moves := make([]Coord, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] == Empty {
				moves = append(moves, Coord{Row: r, Col: c})
			}
		}
	}
	return moves
}

// NextPlayer derives the side to move from the mark counts: PlayerA when the
// counts are equal, PlayerB otherwise.
func (b Board) NextPlayer() Cell {
	a, o := b.counts()
	if a == o {
		return PlayerA
	}
	return PlayerB
}

// Play places player's mark on c and returns the new board.
func (b Board) Play(c Coord, player Cell) (Board, error) {
	if !c.Valid() {
		return b, fmt.Errorf("square %v is off the board: %w", c, ErrInvalidMove)
	}
	if !player.IsPlayer() {
		return b, fmt.Errorf("cannot place mark %d: %w", player, ErrInvalidMove)
	}
	if b.cells[c.Row][c.Col] != Empty {
		return b, fmt.Errorf("square %v is already taken by %s: %w", c, b.cells[c.Row][c.Col], ErrInvalidMove)
	}
	b.cells[c.Row][c.Col] = player
	return b, nil
}

// String renders the board the way the console game prints it.
func (b Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		marks := lo.Map(row[:], func(cell Cell, _ int) string { return cell.String() })
		sb.WriteString(strings.Join(marks, " | "))
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", 9))
		sb.WriteString("\n")
	}
	return sb.String()
}
