package proto

import (
	"fmt"

	"ctchen222/tictactoe-history/internal/game"
)

// NewStateMessage builds the view of a history.
func NewStateMessage(sessionID string, h *game.History) *StateMessage {
	status := h.Status()
	latest := h.Latest().Board

	msg := &StateMessage{
		SessionID: sessionID,
		Board:     h.Current().Board.Rows(),
		Step:      h.Step(),
		Next:      status.Next,
		Winner:    status.Winner,
		Draw:      status.Winner == game.None && game.IsBoardFull(latest),
		Phase:     h.Phase(),
		Status:    StatusLabel(status),
	}
	if line, ok := game.WinningLine(latest); ok {
		msg.WinningLine = line[:]
	}

	for _, m := range h.Moves() {
		msg.Moves = append(msg.Moves, MoveEntry{
			Step:   m.Step,
			Row:    m.Row,
			Col:    m.Col,
			Mark:   m.Mark,
			Label:  MoveLabel(m),
			Active: m.Active,
		})
	}
	return msg
}

// StatusLabel is the status line shown above the move list.
func StatusLabel(s game.Status) string {
	if s.Winner != game.None {
		return "The Winner is: " + string(s.Winner)
	}
	return "Next player: " + string(s.Next)
}

// MoveLabel is the text of a move list entry.
func MoveLabel(m game.Move) string {
	if m.Step == 0 {
		return "Go to game start"
	}
	return fmt.Sprintf("move #%d (%d, %d)", m.Step, m.Row, m.Col)
}
