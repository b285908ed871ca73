package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink closed") }

func TestMultiHandler(t *testing.T) {
	var debug, warn bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("session.id", "s1")

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug-1))

	log.Debug("move ignored")
	log.Warn("invalid command")

	assert.Contains(t, debug.String(), "move ignored")
	assert.Contains(t, debug.String(), "invalid command")
	assert.Contains(t, debug.String(), "session.id=s1")
	assert.NotContains(t, warn.String(), "move ignored")
	assert.Contains(t, warn.String(), "invalid command")
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, nil)
	h := NewMultiHandler(failingHandler{text}, text)

	err := slog.New(h).Handler().Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "game reset", 0))
	assert.EqualError(t, err, "sink closed")
	assert.Contains(t, buf.String(), "game reset")
}

func TestInit(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := Init(slog.LevelInfo, &buf)
	slog.Info("session created", "session.id", "s1")
	l.Debug("hidden")

	assert.Contains(t, buf.String(), "session created")
	assert.NotContains(t, buf.String(), "hidden")
}
