package proto

import "ctchen222/tictactoe-history/internal/game"

// Command types
const (
	CommandMove  = "move"
	CommandJump  = "jump"
	CommandReset = "reset"
)

// Command is a request from the presentation layer to a session.
type Command struct {
	Type string `json:"type" validate:"required,oneof=move jump reset"`
	Cell *int   `json:"cell,omitempty" validate:"required_if=Type move,omitempty,cell"`
	Step *int   `json:"step,omitempty" validate:"required_if=Type jump,omitempty,min=0"`
}

func Move(cell int) Command {
	return Command{Type: CommandMove, Cell: &cell}
}

func Jump(step int) Command {
	return Command{Type: CommandJump, Step: &step}
}

func Reset() Command {
	return Command{Type: CommandReset}
}

// MoveEntry is one line of the rendered move list.
type MoveEntry struct {
	Step   int             `json:"step"`
	Row    int             `json:"row"`
	Col    int             `json:"col"`
	Mark   game.PlayerMark `json:"mark,omitempty"`
	Label  string          `json:"label"`
	Active bool            `json:"active"`
}

// StateMessage is everything the presentation layer needs to render a session.
type StateMessage struct {
	SessionID   string              `json:"session_id"`
	Applied     bool                `json:"applied"`
	Board       [][]game.PlayerMark `json:"board"`
	Step        int                 `json:"step"`
	Next        game.PlayerMark     `json:"next"`
	Winner      game.PlayerMark     `json:"winner,omitempty"`
	WinningLine []int               `json:"winning_line,omitempty"`
	Draw        bool                `json:"draw"`
	Phase       game.Phase          `json:"phase"`
	Status      string              `json:"status"`
	Moves       []MoveEntry         `json:"moves"`
}
