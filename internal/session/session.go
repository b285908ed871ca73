package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ctchen222/tictactoe-history/internal/events"
	"ctchen222/tictactoe-history/internal/game"
	"ctchen222/tictactoe-history/internal/validator"
	"ctchen222/tictactoe-history/pkg/proto"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrUnknownCommand = errors.New("unknown command")
)

type instruments struct {
	moves   metric.Int64Counter
	ignored metric.Int64Counter
	jumps   metric.Int64Counter
	resets  metric.Int64Counter
	wins    metric.Int64Counter
}

func newInstruments() instruments {
	// The global meter returns usable no-op instruments on error.
	moves, _ := meter.Int64Counter("session.moves.applied", metric.WithDescription("Moves recorded in a history"))
	ignored, _ := meter.Int64Counter("session.moves.ignored", metric.WithDescription("Moves on occupied cells or finished games"))
	jumps, _ := meter.Int64Counter("session.jumps", metric.WithDescription("Time travel requests"))
	resets, _ := meter.Int64Counter("session.resets", metric.WithDescription("Game resets"))
	wins, _ := meter.Int64Counter("session.wins", metric.WithDescription("Games won"))
	return instruments{moves: moves, ignored: ignored, jumps: jumps, resets: resets, wins: wins}
}

// Session is one game owned by a single player pair.
type Session struct {
	ID        string
	mu        sync.Mutex
	history   *game.History
	publisher events.Publisher
	metrics   instruments
}

// New creates a session with an empty board. A nil publisher drops events.
func New(publisher events.Publisher) *Session {
	return NewWithID(uuid.New().String(), publisher)
}

func NewWithID(id string, publisher events.Publisher) *Session {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Session{
		ID:        id,
		history:   game.NewHistory(),
		publisher: publisher,
		metrics:   newInstruments(),
	}
}

// Handle validates a command and applies it to the history. It acts as a dispatcher.
// An ignored move is not an error: the returned state has Applied set to false.
func (s *Session) Handle(ctx context.Context, cmd proto.Command) (*proto.StateMessage, error) {
	ctx, span := tracer.Start(ctx, "session.Handle", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("command.type", cmd.Type),
	))
	defer span.End()

	if err := validator.GetValidator().Struct(cmd); err != nil {
		slog.WarnContext(ctx, "invalid command", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid command")
		return nil, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		applied bool
		err     error
	)
	switch cmd.Type {
	case proto.CommandMove:
		applied, err = s.handleMove(ctx, *cmd.Cell)
	case proto.CommandJump:
		applied, err = s.handleJump(ctx, *cmd.Step)
	case proto.CommandReset:
		applied, err = s.handleReset(ctx)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Command failed")
		return nil, err
	}

	state := proto.NewStateMessage(s.ID, s.history)
	state.Applied = applied
	return state, nil
}

// ApplyMove plays a cell. It reports whether the move was recorded.
func (s *Session) ApplyMove(ctx context.Context, cell int) (bool, error) {
	state, err := s.Handle(ctx, proto.Move(cell))
	if err != nil {
		return false, err
	}
	return state.Applied, nil
}

// JumpTo views the given step.
func (s *Session) JumpTo(ctx context.Context, step int) error {
	_, err := s.Handle(ctx, proto.Jump(step))
	return err
}

// Reset starts the game over.
func (s *Session) Reset(ctx context.Context) error {
	_, err := s.Handle(ctx, proto.Reset())
	return err
}

// State returns the view of the session without changing it.
func (s *Session) State() *proto.StateMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return proto.NewStateMessage(s.ID, s.history)
}

// Snapshots returns the recorded history.
func (s *Session) Snapshots() []game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Snapshots()
}

func (s *Session) handleMove(ctx context.Context, cell int) (bool, error) {
	row, col := game.Position(cell)
	ctx, span := tracer.Start(ctx, "session.handleMove", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("move.row", row),
		attribute.Int("move.col", col),
	))
	defer span.End()

	mark := s.history.Status().Next
	applied, err := s.history.ApplyMove(cell)
	if err != nil {
		return false, err
	}
	if !applied {
		slog.DebugContext(ctx, "move ignored", "session.id", s.ID, "cell", cell, "phase", s.history.Phase())
		s.metrics.ignored.Add(ctx, 1)
		span.SetAttributes(attribute.Bool("move.applied", false))
		return false, nil
	}

	s.metrics.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("mark", string(mark))))
	slog.InfoContext(ctx, "move applied", "session.id", s.ID, "mark", mark, "row", row, "col", col, "step", s.history.Step())
	s.publish(ctx, events.TypeMoveApplied, events.MoveAppliedPayload{
		SessionID: s.ID,
		Step:      s.history.Step(),
		Row:       row,
		Col:       col,
		Mark:      mark,
	})

	latest := s.history.Latest().Board
	if line, ok := game.WinningLine(latest); ok {
		winner := latest[line[0]]
		s.metrics.wins.Add(ctx, 1, metric.WithAttributes(attribute.String("mark", string(winner))))
		slog.InfoContext(ctx, "game won", "session.id", s.ID, "winner", winner)
		s.publish(ctx, events.TypeGameWon, events.GameWonPayload{
			SessionID: s.ID,
			Winner:    winner,
			Line:      line,
			Moves:     s.history.Len() - 1,
		})
	}
	return true, nil
}

func (s *Session) handleJump(ctx context.Context, step int) (bool, error) {
	ctx, span := tracer.Start(ctx, "session.handleJump", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("jump.step", step),
	))
	defer span.End()

	from := s.history.Step()
	if err := s.history.JumpTo(step); err != nil {
		return false, err
	}

	s.metrics.jumps.Add(ctx, 1)
	slog.InfoContext(ctx, "time travel", "session.id", s.ID, "from", from, "to", step)
	s.publish(ctx, events.TypeTimeTravel, events.TimeTravelPayload{SessionID: s.ID, From: from, To: step})
	return true, nil
}

func (s *Session) handleReset(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "session.handleReset", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.history.Reset()

	s.metrics.resets.Add(ctx, 1)
	slog.InfoContext(ctx, "game reset", "session.id", s.ID)
	s.publish(ctx, events.TypeGameReset, events.GameResetPayload{SessionID: s.ID})
	return true, nil
}

// publish reports delivery failures without undoing the committed transition.
func (s *Session) publish(ctx context.Context, eventType string, payload any) {
	event, err := events.New(eventType, payload)
	if err == nil {
		err = s.publisher.Publish(ctx, event)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish event", "session.id", s.ID, "event", eventType, "error", err)
		trace.SpanFromContext(ctx).RecordError(err)
	}
}
