package game

// WinLines are the eight lines that decide the game: rows, columns, then the
// two diagonals.
var WinLines = [8][Size]Coord{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Classify checks every win line for three equal marks and otherwise reports
// a draw only once no empty square remains.
func (b Board) Classify() Result {
	for _, line := range WinLines {
		first := b.At(line[0])
		if first == Empty {
			continue
		}
		if b.At(line[1]) == first && b.At(line[2]) == first {
			if first == PlayerA {
				return PlayerAWins
			}
			return PlayerBWins
		}
	}
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return Ongoing
			}
		}
	}
	return Draw
}

// Reward scores a finished game from PlayerA's point of view: +1 for a PlayerA
// win, -1 for a PlayerB win and 0 otherwise.
func Reward(result Result) float64 {
	switch result {
	case PlayerAWins:
		return 1
	case PlayerBWins:
		return -1
	default:
		return 0
	}
}
