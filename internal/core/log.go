package core

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	SOURCE_LOG_FIELD_NAME   = "src"
	OBSERVER_LOG_FIELD_NAME = "observer"

	OBSERVER_LOG_SRC = "seq-observer"
)

var (
	logger atomic.Pointer[zerolog.Logger]
)

func init() {
	zerolog.DurationFieldInteger = false
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.MessageFieldName = "msg"
	zerolog.LevelFieldName = "lvl"
	zerolog.TimestampFieldName = "tm"

	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger sets the logger used by observers, the logger is copied and a source field is added.
// Observers created before the call keep the previous logger.
func SetLogger(l zerolog.Logger) {
	l = ChildLoggerForSource(l, OBSERVER_LOG_SRC)
	logger.Store(&l)
}

func ChildLoggerForSource(l zerolog.Logger, src string) zerolog.Logger {
	return l.With().Str(SOURCE_LOG_FIELD_NAME, src).Logger()
}

func currentLogger() zerolog.Logger {
	return *logger.Load()
}
