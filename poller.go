package pavtv

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pavtv/pavtv/internal/httpx"
)

// minPollDelay is the floor between successive polls of one endpoint.
// Even when a poll overruns its interval, the worker sleeps at least
// this long before issuing the next request.
const minPollDelay = 5 * time.Millisecond

// poller drives one endpoint at its configured cadence.
//
// Each poller owns a dedicated HTTP client: the client mutates request
// headers (user agent, header hook) immediately before each call, and
// sharing one client across workers would force a lock spanning the
// entire request. One client per kind removes that lock from the hot
// path entirely.
type poller struct {
	kind   Kind
	client *httpx.Client
	logger *slog.Logger
	alive  atomic.Bool
	cycle  func(ctx context.Context)
}

// newPoller builds the worker for one endpoint kind. dispatch routes a
// typed result to the matching sink method; the request timeout is
// captured from the DIT here and fixed for the engine's lifetime.
func newPoller[T any](e *Engine, k Kind, dispatch func(Sink, Result[T])) *poller {
	p := &poller{
		kind:   k,
		client: httpx.NewClient(e.userAgent),
		logger: e.logger.With("component", "poller."+k.String()),
	}
	timeout := e.dit.Timeout(k)

	p.cycle = func(ctx context.Context) {
		res := getJSON[T](ctx, p.client, e.endpointURL(k), nil, timeout)
		if res.OK {
			e.stampLastResponse()
		}
		if s := e.Sink(); s != nil {
			safeDispatch(p.logger, k.String(), func() { dispatch(s, res) })
		}
	}
	return p
}

// run is the poller loop. One iteration: issue one request, stamp the
// shared last-response instant on success, deliver the result, then
// sleep out the remainder of the interval. The interval is re-sampled
// from the DIT every iteration, so runtime mutation takes effect on the
// next cycle. Every failure is a single-poll failure: the worker keeps
// its cadence and never retries within a cycle.
func (p *poller) run(ctx context.Context, e *Engine) {
	defer e.wg.Done()
	defer p.alive.Store(false)

	p.logger.Debug("poller started")

	for e.ShouldRun() {
		start := time.Now()
		p.cycle(ctx)

		if !e.ShouldRun() {
			break
		}

		idle := e.dit.Interval(p.kind) - time.Since(start)
		if idle <= minPollDelay {
			idle = minPollDelay
		}

		timer := time.NewTimer(idle)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Debug("poller stopped")
			return
		case <-timer.C:
		}
	}

	p.logger.Debug("poller stopped")
}

// ensureRunning starts the poller goroutine if it is not alive. Called
// by the supervisor on every tick; covers both the lazy first start and
// a worker that exited unexpectedly.
func (p *poller) ensureRunning(ctx context.Context, e *Engine) {
	if p.alive.Load() {
		return
	}
	p.alive.Store(true)
	e.wg.Add(1)
	go p.run(ctx, e)
}
