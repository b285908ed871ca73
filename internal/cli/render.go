package cli

import (
	"fmt"
	"io"
	"strings"

	"ctchen222/tictactoe-history/internal/events"
	"ctchen222/tictactoe-history/internal/game"
	"ctchen222/tictactoe-history/pkg/proto"
)

// Render writes the board, the status line and the move list as plain text.
func Render(w io.Writer, state *proto.StateMessage) error {
	var b strings.Builder

	writeBoard(&b, state.Board)

	b.WriteString("\n" + state.Status + "\n")
	if state.Draw {
		b.WriteString("Draw\n")
	}

	for _, m := range state.Moves {
		marker := " "
		if m.Active {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, m.Step+1, m.Label)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderHistory writes every recorded board, oldest first.
func RenderHistory(w io.Writer, snapshots []game.Snapshot) error {
	var b strings.Builder
	for step, s := range snapshots {
		fmt.Fprintf(&b, "\nStep %d\n", step)
		writeBoard(&b, s.Board.Rows())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderEvents writes one line per event.
func RenderEvents(w io.Writer, evs []events.Event) error {
	var b strings.Builder
	b.WriteString("\nEvents\n")
	for _, e := range evs {
		fmt.Fprintf(&b, "%s %s\n", e.Type, e.Payload)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeBoard(b *strings.Builder, board [][]game.PlayerMark) {
	for r, row := range board {
		cells := make([]string, len(row))
		for c, mark := range row {
			cells[c] = glyph(mark)
		}
		b.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if r < len(board)-1 {
			b.WriteString("---+---+---\n")
		}
	}
}

func glyph(mark game.PlayerMark) string {
	if mark == game.None {
		return " "
	}
	return string(mark)
}
