package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/authkit-dev/authkit/core/logger"
)

func TestError(t *testing.T) {
	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	assert.Equal(t, slog.Attr{}, logger.Error(nil), "nil error produces an empty attr")
}

func TestComponent(t *testing.T) {
	attr := logger.Component("session.cleanup")
	assert.Equal(t, "component", attr.Key)
	assert.Equal(t, "session.cleanup", attr.Value.String())
}

func TestCount(t *testing.T) {
	attr := logger.Count(42)
	assert.Equal(t, "count", attr.Key)
	assert.Equal(t, int64(42), attr.Value.Int64())
}

func TestDuration(t *testing.T) {
	attr := logger.Duration(time.Second)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, time.Second, attr.Value.Duration())
}

func TestElapsed(t *testing.T) {
	attr := logger.Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), time.Second)
}

func TestDefault(t *testing.T) {
	assert.NotNil(t, logger.Default(nil))

	log := slog.Default()
	assert.Same(t, log, logger.Default(log))
}

func TestDiscard_NeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Discard().Error("dropped", logger.Error(errors.New("boom")))
	})
}
