package pavtv

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"
)

// Sink receives parsed updates and connection-state transitions.
//
// The engine fans every poll result and every state change into a single
// Sink. Implementations MUST be safe for concurrent invocation: the six
// pollers and the supervisor call into the sink from their own
// goroutines, and data updates interleave freely with state changes.
//
// Per kind, results arrive in issue order. Across kinds there is no
// ordering. Panics thrown by a sink are recovered at the engine boundary,
// logged with a correlation ID, and never terminate a poller.
type Sink interface {
	// OnState is called once per actual state transition, plus once with
	// the initial state when the supervisor starts and once with
	// [StateDisconnected] when it exits.
	OnState(state ConnectionState)

	OnEvents(r Result[Events])
	OnStatus(r Result[MatchStatus])
	OnLocations(r Result[Locations])
	OnKillfeed(r Result[Killfeed])
	OnTime(r Result[MatchTime])
	OnPause(r Result[PauseState])
}

// safeDispatch runs fn (a single sink call) with panic recovery.
// A panicking sink is logged with a correlation ID; the caller keeps its
// cadence.
func safeDispatch(logger *slog.Logger, component string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			logger.Error("sink panicked",
				"correlation_id", correlationID,
				"component", component,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

// LogSink is a ready-made [Sink] that logs every update via slog.
//
// Successful data updates are logged at debug level to keep steady-state
// output quiet; failures are logged at warn and state changes at info.
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink returns a LogSink writing to logger, or [slog.Default] when
// logger is nil.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{Logger: logger}
}

// OnState implements [Sink].
func (s *LogSink) OnState(state ConnectionState) {
	s.Logger.Info("connection state changed", "state", state.String())
}

func logResult[T any](logger *slog.Logger, kind string, r Result[T]) {
	attrs := []any{
		"kind", kind,
		"status", r.Status,
		"total_ms", r.Timings.Total.Milliseconds(),
	}
	if r.OK {
		logger.Debug("poll completed", attrs...)
		return
	}
	if r.Info != "" {
		attrs = append(attrs, "info", r.Info)
	}
	if r.Err != nil {
		attrs = append(attrs, "error", r.Err.Error())
	}
	logger.Warn("poll completed with error", attrs...)
}

// OnEvents implements [Sink].
func (s *LogSink) OnEvents(r Result[Events]) { logResult(s.Logger, "events", r) }

// OnStatus implements [Sink].
func (s *LogSink) OnStatus(r Result[MatchStatus]) { logResult(s.Logger, "status", r) }

// OnLocations implements [Sink].
func (s *LogSink) OnLocations(r Result[Locations]) { logResult(s.Logger, "locations", r) }

// OnKillfeed implements [Sink].
func (s *LogSink) OnKillfeed(r Result[Killfeed]) { logResult(s.Logger, "killfeed", r) }

// OnTime implements [Sink].
func (s *LogSink) OnTime(r Result[MatchTime]) { logResult(s.Logger, "time", r) }

// OnPause implements [Sink].
func (s *LogSink) OnPause(r Result[PauseState]) { logResult(s.Logger, "pause", r) }
