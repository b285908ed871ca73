package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ctchen222/tictactoe-history/internal/events"
	"ctchen222/tictactoe-history/internal/events/mocks"
	"ctchen222/tictactoe-history/internal/game"
	"ctchen222/tictactoe-history/pkg/proto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func eventOfType(eventType string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		e, ok := x.(events.Event)
		return ok && e.Type == eventType
	})
}

func TestSession_Handle_Move(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	s := NewWithID("room-1", publisher)

	publisher.EXPECT().Publish(gomock.Any(), eventOfType(events.TypeMoveApplied)).
		DoAndReturn(func(_ context.Context, e events.Event) error {
			var p events.MoveAppliedPayload
			require.NoError(t, json.Unmarshal(e.Payload, &p))
			assert.Equal(t, events.MoveAppliedPayload{SessionID: "room-1", Step: 1, Row: 1, Col: 2, Mark: game.PlayerX}, p)
			return nil
		})

	state, err := s.Handle(context.Background(), proto.Move(5))
	require.NoError(t, err)
	assert.True(t, state.Applied)
	assert.Equal(t, 1, state.Step)
	assert.Equal(t, game.PlayerO, state.Next)
	assert.Equal(t, game.PlayerX, state.Board[1][2])
	assert.Equal(t, "room-1", state.SessionID)
}

func TestSession_Handle_IgnoredMovePublishesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	s := NewWithID("room-1", publisher)
	ctx := context.Background()

	publisher.EXPECT().Publish(gomock.Any(), eventOfType(events.TypeMoveApplied)).Return(nil).Times(1)

	applied, err := s.ApplyMove(ctx, 4)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = s.ApplyMove(ctx, 4)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Len(t, s.Snapshots(), 2)
}

func TestSession_Handle_WinPublishesGameWon(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	s := NewWithID("room-1", publisher)
	ctx := context.Background()

	gomock.InOrder(
		publisher.EXPECT().Publish(gomock.Any(), eventOfType(events.TypeMoveApplied)).Return(nil).Times(5),
		publisher.EXPECT().Publish(gomock.Any(), eventOfType(events.TypeGameWon)).
			DoAndReturn(func(_ context.Context, e events.Event) error {
				var p events.GameWonPayload
				require.NoError(t, json.Unmarshal(e.Payload, &p))
				assert.Equal(t, game.PlayerX, p.Winner)
				assert.Equal(t, [3]int{0, 3, 6}, p.Line)
				assert.Equal(t, 5, p.Moves)
				return nil
			}),
	)

	for _, cell := range []int{0, 1, 3, 4, 6} {
		applied, err := s.ApplyMove(ctx, cell)
		require.NoError(t, err)
		require.True(t, applied)
	}

	state := s.State()
	assert.Equal(t, game.PlayerX, state.Winner)
	assert.Equal(t, game.PhaseWon, state.Phase)
	assert.Equal(t, []int{0, 3, 6}, state.WinningLine)

	applied, err := s.ApplyMove(ctx, 8)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestSession_Handle_JumpAndReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	s := NewWithID("room-1", publisher)
	ctx := context.Background()

	publisher.EXPECT().Publish(gomock.Any(), eventOfType(events.TypeMoveApplied)).Return(nil).Times(3)
	publisher.EXPECT().Publish(gomock.Any(), eventOfType(events.TypeTimeTravel)).
		DoAndReturn(func(_ context.Context, e events.Event) error {
			var p events.TimeTravelPayload
			require.NoError(t, json.Unmarshal(e.Payload, &p))
			assert.Equal(t, events.TimeTravelPayload{SessionID: "room-1", From: 2, To: 0}, p)
			return nil
		})
	publisher.EXPECT().Publish(gomock.Any(), eventOfType(events.TypeGameReset)).Return(nil)

	for _, cell := range []int{4, 0} {
		_, err := s.ApplyMove(ctx, cell)
		require.NoError(t, err)
	}

	require.NoError(t, s.JumpTo(ctx, 0))
	state := s.State()
	assert.Equal(t, 0, state.Step)
	assert.Equal(t, game.PlayerX, state.Next)
	assert.Len(t, state.Moves, 3)
	assert.True(t, state.Moves[0].Active)

	// the redo branch is dropped by the next move
	applied, err := s.ApplyMove(ctx, 0)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, s.Snapshots(), 2)
	assert.Equal(t, game.PlayerX, s.State().Board[0][0])

	require.NoError(t, s.Reset(ctx))
	state = s.State()
	assert.Equal(t, game.PhaseEmpty, state.Phase)
	assert.Len(t, state.Moves, 1)
}

func TestSession_Handle_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	s := NewWithID("room-1", publisher)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  proto.Command
		want error
	}{
		{name: "Missing type", cmd: proto.Command{}, want: ErrInvalidCommand},
		{name: "Unknown type", cmd: proto.Command{Type: "undo"}, want: ErrInvalidCommand},
		{name: "Move without cell", cmd: proto.Command{Type: proto.CommandMove}, want: ErrInvalidCommand},
		{name: "Cell out of range", cmd: proto.Move(9), want: ErrInvalidCommand},
		{name: "Negative cell", cmd: proto.Move(-1), want: ErrInvalidCommand},
		{name: "Jump without step", cmd: proto.Command{Type: proto.CommandJump}, want: ErrInvalidCommand},
		{name: "Negative step", cmd: proto.Jump(-1), want: ErrInvalidCommand},
		{name: "Step past the end", cmd: proto.Jump(1), want: game.ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := s.Handle(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, state)
		})
	}

	assert.Len(t, s.Snapshots(), 1)
}

func TestSession_PublishFailureKeepsTheMove(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	s := NewWithID("room-1", publisher)

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("subscriber gone"))

	applied, err := s.ApplyMove(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, s.Snapshots(), 2)
}

func TestSession_NilPublisher(t *testing.T) {
	s := New(nil)
	assert.NotEmpty(t, s.ID)

	applied, err := s.ApplyMove(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, applied)
}
