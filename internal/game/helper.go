package game

import "fmt"

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Board boundaries
	BorderMin = 0
	BorderMax = 2

	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// Board is a 3x3 board stored row-major: index = row*3 + col.
type Board [CellCount]PlayerMark

// Index maps a board position to its cell index.
func Index(row, col int) (int, error) {
	if row < BorderMin || row > BorderMax || col < BorderMin || col > BorderMax {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrInvalidCell, row, col)
	}
	return row*BoardSize + col, nil
}

// Position is the inverse of Index. The cell must be in range.
func Position(cell int) (row, col int) {
	return cell / BoardSize, cell % BoardSize
}

// Rows converts the board to a slice of rows.
func (b Board) Rows() [][]PlayerMark {
	rows := make([][]PlayerMark, BoardSize)
	for r := range rows {
		rows[r] = make([]PlayerMark, BoardSize)
		copy(rows[r], b[r*BoardSize:(r+1)*BoardSize])
	}
	return rows
}

// markForStep is the mark to play from the given step: X on even steps.
func markForStep(step int) PlayerMark {
	if step%2 == 0 {
		return PlayerX
	}
	return PlayerO
}
