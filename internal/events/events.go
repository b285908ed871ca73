package events

import (
	"context"
	"encoding/json"
	"fmt"

	"ctchen222/tictactoe-history/internal/game"
)

// Event types
const (
	TypeMoveApplied = "move_applied"
	TypeTimeTravel  = "time_travel"
	TypeGameReset   = "game_reset"
	TypeGameWon     = "game_won"
)

// Event represents a committed state transition of a session.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

//go:generate mockgen -source=events.go -destination=mocks/mock_publisher.go -package=mocks

// Publisher delivers session events to whoever observes them.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MoveAppliedPayload is the payload for the "move_applied" event.
type MoveAppliedPayload struct {
	SessionID string          `json:"session_id"`
	Step      int             `json:"step"`
	Row       int             `json:"row"`
	Col       int             `json:"col"`
	Mark      game.PlayerMark `json:"mark"`
}

// TimeTravelPayload is the payload for the "time_travel" event.
type TimeTravelPayload struct {
	SessionID string `json:"session_id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

// GameResetPayload is the payload for the "game_reset" event.
type GameResetPayload struct {
	SessionID string `json:"session_id"`
}

// GameWonPayload is the payload for the "game_won" event.
type GameWonPayload struct {
	SessionID string          `json:"session_id"`
	Winner    game.PlayerMark `json:"winner"`
	Line      [3]int          `json:"line"`
	Moves     int             `json:"moves"`
}

// New marshals the payload into an event of the given type.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}
