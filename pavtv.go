package pavtv

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pavtv/pavtv/internal/process"
)

// DefaultBaseURL is the viewer's local API root.
const DefaultBaseURL = "http://localhost:1234/"

// DefaultUserAgent is sent on every request unless overridden.
const DefaultUserAgent = "pavtv-bridge"

// ProcessProbe reports whether the viewer process is currently alive.
// The supervisor consults it on every tick.
type ProcessProbe interface {
	IsRunning() bool
}

// Engine is the telemetry bridge: six independent pollers feeding one
// sink, supervised by a monitor that derives and publishes the
// connection state.
//
// The typical lifecycle is:
//
//	eng, err := pavtv.New(pavtv.WithSink(sink))
//	if err != nil {
//	    slog.Error("failed to create engine", "error", err)
//	    os.Exit(1)
//	}
//	if err := eng.Start(); err != nil { ... }
//	defer eng.Stop()
//
// Start spawns the supervisor; the supervisor lazily spawns one poller
// per endpoint kind on its first tick. Stop wakes every worker, joins
// them, and releases the HTTP clients. Each worker owns a dedicated HTTP
// client; clients are never shared across workers.
type Engine struct {
	logger    *slog.Logger
	userAgent string
	dit       *DIT
	procProbe ProcessProbe

	urlMu   sync.RWMutex
	baseURL string

	sinkMu sync.RWMutex
	sink   Sink

	enabled atomic.Bool

	probeMu      sync.RWMutex
	enabledProbe func() bool

	lastResponse atomic.Pointer[time.Time]

	stateMu   sync.Mutex
	lastState ConnectionState

	lifecycleMu sync.Mutex
	started     bool
	stopped     bool
	cancel      context.CancelFunc

	wg      sync.WaitGroup
	pollers [numKinds]*poller
}

// New creates an [Engine] with the given options.
//
// Defaults: base URL [DefaultBaseURL], DIT defaults from [NewDIT], the
// standard process watcher over the known viewer process names,
// [slog.Default] for logging, and no sink (updates are dropped until one
// is set). Returns an error if any option is invalid.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.dit == nil {
		cfg.dit = NewDIT()
	}
	if cfg.procProbe == nil {
		cfg.procProbe = process.NewWatcher(nil, cfg.logger)
	}

	e := &Engine{
		logger:       cfg.logger,
		userAgent:    cfg.userAgent,
		dit:          cfg.dit,
		procProbe:    cfg.procProbe,
		baseURL:      cfg.baseURL,
		sink:         cfg.sink,
		enabledProbe: cfg.enabledProbe,
		lastState:    StateDisconnected,
	}

	e.pollers[KindEvents] = newPoller(e, KindEvents, Sink.OnEvents)
	e.pollers[KindStatus] = newPoller(e, KindStatus, Sink.OnStatus)
	e.pollers[KindLocations] = newPoller(e, KindLocations, Sink.OnLocations)
	e.pollers[KindKillfeed] = newPoller(e, KindKillfeed, Sink.OnKillfeed)
	e.pollers[KindTime] = newPoller(e, KindTime, Sink.OnTime)
	e.pollers[KindPause] = newPoller(e, KindPause, Sink.OnPause)

	return e, nil
}

// Start spawns the supervisor if it is not already running.
//
// Start is non-blocking and idempotent: calling it N times spawns one
// supervisor. After [Engine.Stop] the engine is disposed and Start is a
// no-op.
func (e *Engine) Start() error {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()

	if e.started || e.stopped {
		return nil
	}
	e.started = true
	e.enabled.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.wg.Add(1)
	go e.runMonitor(ctx)

	e.logger.Info("engine started", "base_url", e.URL())
	return nil
}

// Stop shuts the engine down: sets the running flag false, wakes every
// sleeping worker, joins them, and releases the HTTP clients.
//
// The final state notification ([StateDisconnected]) is delivered before
// Stop returns; no sink invocation happens afterwards. Stop is idempotent
// and safe to call before Start. Shutdown is bounded by the largest
// per-kind request timeout plus the monitor interval.
func (e *Engine) Stop() {
	e.lifecycleMu.Lock()
	alreadyStopped := e.stopped
	e.stopped = true
	e.enabled.Store(false)
	if e.cancel != nil {
		e.cancel()
	}
	e.lifecycleMu.Unlock()

	e.wg.Wait()

	if alreadyStopped {
		return
	}
	for _, p := range e.pollers {
		p.client.Close()
	}
	e.logger.Info("engine stopped")
}

// URL returns the configured base URL.
func (e *Engine) URL() string {
	e.urlMu.RLock()
	defer e.urlMu.RUnlock()
	return e.baseURL
}

// SetURL validates and stores a new base URL. On rejection the previous
// value is left intact and the returned error matches [ErrValidation].
func (e *Engine) SetURL(raw string) error {
	normalized, err := normalizeBaseURL(raw)
	if err != nil {
		return err
	}
	e.urlMu.Lock()
	e.baseURL = normalized
	e.urlMu.Unlock()
	return nil
}

// Sink returns the current sink, or nil when none is set.
func (e *Engine) Sink() Sink {
	e.sinkMu.RLock()
	defer e.sinkMu.RUnlock()
	return e.sink
}

// SetSink swaps the sink. A nil sink drops all updates. The swap is
// thread-safe; the sink itself is always invoked outside the lock, so a
// sink may safely call back into the engine.
func (e *Engine) SetSink(s Sink) {
	e.sinkMu.Lock()
	e.sink = s
	e.sinkMu.Unlock()
}

// SetEnabledProbe installs an external predicate consulted by
// [Engine.ShouldRun] on every loop iteration. A nil probe is treated as
// always true.
func (e *Engine) SetEnabledProbe(probe func() bool) {
	e.probeMu.Lock()
	e.enabledProbe = probe
	e.probeMu.Unlock()
}

// DIT returns the engine's configuration record. Intervals and
// thresholds may be mutated at runtime; running pollers pick changes up
// on their next cycle.
func (e *Engine) DIT() *DIT {
	return e.dit
}

// LastResponseAt returns the instant of the most recent successful poll.
// ok is false when no endpoint has responded yet.
func (e *Engine) LastResponseAt() (t time.Time, ok bool) {
	if p := e.lastResponse.Load(); p != nil {
		return *p, true
	}
	return time.Time{}, false
}

// ShouldRun reports whether the workers should keep looping: the engine
// is enabled and the external probe (when present) agrees.
func (e *Engine) ShouldRun() bool {
	if !e.enabled.Load() {
		return false
	}
	e.probeMu.RLock()
	probe := e.enabledProbe
	e.probeMu.RUnlock()
	return probe == nil || probe()
}

// ConnectionStatus returns the derived connection state as of now.
// Useful for polling consumers in addition to the push notifications.
func (e *Engine) ConnectionStatus() ConnectionState {
	t, ok := e.LastResponseAt()
	in := deriveInput{
		hasResponse:    ok,
		shouldRun:      e.ShouldRun(),
		processRunning: e.procProbe.IsRunning(),
		unresponsive:   e.dit.UnresponsiveTimeout(),
		disconnected:   e.dit.DisconnectedTimeout(),
	}
	if ok {
		in.age = time.Since(t)
	}
	return deriveState(in)
}

// stampLastResponse records a successful poll. The stored instant is
// taken after the response arrived, so it is always at or after the
// instant the request was issued.
func (e *Engine) stampLastResponse() {
	now := time.Now()
	e.lastResponse.Store(&now)
}

// endpointURL joins the base URL with the kind's path.
func (e *Engine) endpointURL(k Kind) string {
	return e.URL() + k.Path()
}

// normalizeBaseURL validates raw as an http(s) URL and ensures a
// trailing slash so endpoint paths can be appended directly.
func normalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid url %q: %w", ErrValidation, raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: url %q must use http or https", ErrValidation, raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: url %q has no host", ErrValidation, raw)
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw, nil
}
