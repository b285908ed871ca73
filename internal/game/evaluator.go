package game

// WinLines lists every line of three, in the order they are checked.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// CheckWinner returns the mark holding the first completed line, or None.
// A full board without a line is reported as None; use IsBoardFull for draws.
func CheckWinner(board Board) PlayerMark {
	if line, ok := WinningLine(board); ok {
		return board[line[0]]
	}
	return None
}

// WinningLine returns the first completed line on the board.
func WinningLine(board Board) ([3]int, bool) {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != None && a == b && b == c {
			return line, true
		}
	}
	return [3]int{}, false
}

// IsBoardFull checks if every cell is taken.
func IsBoardFull(board Board) bool {
	for _, cell := range board {
		if cell == None {
			return false
		}
	}
	return true
}
