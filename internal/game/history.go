package game

import "fmt"

// Phase classifies a game by its latest played board.
type Phase string

const (
	PhaseEmpty      Phase = "empty"
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
)

// Snapshot is a board state plus the cell played to reach it.
// Row and Col are meaningless on the root snapshot.
type Snapshot struct {
	Board Board
	Row   int
	Col   int
}

// Status is the outcome of the played game and the mark to move at the viewed step.
type Status struct {
	Winner PlayerMark
	Next   PlayerMark
}

// Move is one entry of the move list.
type Move struct {
	Step   int
	Row    int
	Col    int
	Mark   PlayerMark
	Active bool
}

// History records every snapshot of a game and which one is being viewed.
// The mark to move is derived from the parity of the viewed step, never stored.
type History struct {
	snapshots []Snapshot
	step      int
}

func NewHistory() *History {
	h := &History{}
	h.Reset()
	return h
}

// Reset discards all moves and returns to the empty board.
func (h *History) Reset() {
	h.snapshots = []Snapshot{{}}
	h.step = 0
}

// ApplyMove plays the cell for the mark whose turn it is at the viewed step.
// Occupied cells and moves after the game is won are ignored and report false.
// Any snapshots after the viewed step are dropped before the move is recorded.
// Once the game is won, jumping back only views earlier steps; play resumes after Reset.
func (h *History) ApplyMove(cell int) (bool, error) {
	if cell < 0 || cell >= CellCount {
		return false, fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}

	// A line on the viewed board is also on the latest one.
	if h.latestWinner() != None {
		return false, nil
	}
	current := h.snapshots[h.step]
	if current.Board[cell] != None {
		return false, nil
	}

	next := current.Board
	next[cell] = markForStep(h.step)
	row, col := Position(cell)

	h.snapshots = append(h.snapshots[:h.step+1], Snapshot{Board: next, Row: row, Col: col})
	h.step = len(h.snapshots) - 1
	return true, nil
}

// JumpTo views an earlier (or later) snapshot without changing the history.
func (h *History) JumpTo(step int) error {
	if step < 0 || step >= len(h.snapshots) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidStep, step, len(h.snapshots))
	}
	h.step = step
	return nil
}

// Current returns the viewed snapshot.
func (h *History) Current() Snapshot {
	return h.snapshots[h.step]
}

// Latest returns the last played snapshot.
func (h *History) Latest() Snapshot {
	return h.snapshots[len(h.snapshots)-1]
}

// Status reports the winner of the latest board, even while viewing an earlier step.
func (h *History) Status() Status {
	return Status{
		Winner: h.latestWinner(),
		Next:   markForStep(h.step),
	}
}

// Phase classifies the game by its latest board, so it is unaffected by JumpTo.
func (h *History) Phase() Phase {
	switch {
	case h.latestWinner() != None:
		return PhaseWon
	case len(h.snapshots) == 1:
		return PhaseEmpty
	default:
		return PhaseInProgress
	}
}

// Step is the index of the viewed snapshot.
func (h *History) Step() int {
	return h.step
}

// Len is the number of recorded snapshots, the root included.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Snapshots returns a copy of the recorded history.
func (h *History) Snapshots() []Snapshot {
	out := make([]Snapshot, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}

// Moves lists every recorded step for rendering a move list.
// The root entry has no mark.
func (h *History) Moves() []Move {
	moves := make([]Move, len(h.snapshots))
	for i, s := range h.snapshots {
		moves[i] = Move{Step: i, Row: s.Row, Col: s.Col, Active: i == h.step}
		if i > 0 {
			moves[i].Mark = markForStep(i - 1)
		}
	}
	return moves
}

func (h *History) latestWinner() PlayerMark {
	return CheckWinner(h.snapshots[len(h.snapshots)-1].Board)
}
