package pavtv

import (
	"context"
	"time"
)

// runMonitor is the supervisor loop: it lazily (re)starts the pollers,
// derives the connection state each tick, and publishes transitions.
//
// On entry it publishes the initial computed state unconditionally
// (Disconnected when nothing has responded yet). On exit it publishes a
// final Disconnected, also unconditionally, so a consumer always ends on
// a terminal state.
func (e *Engine) runMonitor(ctx context.Context) {
	defer e.wg.Done()

	logger := e.logger.With("component", "monitor")
	logger.Debug("monitor started")

	initial := e.ConnectionStatus()
	e.publishState(initial, true)

	for e.enabled.Load() {
		for _, p := range e.pollers {
			p.ensureRunning(ctx, e)
		}

		current := e.ConnectionStatus()
		e.publishState(current, false)

		if !e.enabled.Load() {
			break
		}

		timer := time.NewTimer(e.dit.MonitorInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			e.publishState(StateDisconnected, true)
			logger.Debug("monitor stopped")
			return
		case <-timer.C:
		}
	}

	e.publishState(StateDisconnected, true)
	logger.Debug("monitor stopped")
}

// publishState records state as the last published value and notifies
// the sink. Unless force is set, a state equal to the last published one
// is suppressed, so the sink sees exactly one notification per actual
// transition. The sink is invoked outside the state lock.
func (e *Engine) publishState(state ConnectionState, force bool) {
	e.stateMu.Lock()
	changed := state != e.lastState
	e.lastState = state
	e.stateMu.Unlock()

	if !changed && !force {
		return
	}

	e.logger.Info("connection state", "state", state.String())

	if s := e.Sink(); s != nil {
		safeDispatch(e.logger, "monitor", func() { s.OnState(state) })
	}
}
