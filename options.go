package pavtv

import (
	"errors"
	"log/slog"
)

// engineConfig holds mutable state during Engine construction.
type engineConfig struct {
	baseURL      string
	userAgent    string
	logger       *slog.Logger
	dit          *DIT
	sink         Sink
	procProbe    ProcessProbe
	enabledProbe func() bool
}

// Option configures an [Engine] during construction.
//
// Option implements the functional options pattern. Options return an
// error if validation fails.
//
// Built-in options: [WithBaseURL], [WithSink], [WithLogger], [WithDIT],
// [WithProcessProbe], [WithEnabledProbe], [WithUserAgent].
type Option func(*engineConfig) error

// WithBaseURL sets the viewer API root. The URL is validated the same
// way as [Engine.SetURL]; construction fails on an invalid value.
//
// Example:
//
//	eng, err := pavtv.New(pavtv.WithBaseURL("http://localhost:1234/"))
func WithBaseURL(raw string) Option {
	return func(cfg *engineConfig) error {
		normalized, err := normalizeBaseURL(raw)
		if err != nil {
			return err
		}
		cfg.baseURL = normalized
		return nil
	}
}

// WithSink sets the initial sink. Equivalent to calling [Engine.SetSink]
// before Start. A nil sink is allowed and drops updates.
func WithSink(s Sink) Option {
	return func(cfg *engineConfig) error {
		cfg.sink = s
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the engine and its workers.
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *engineConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithDIT supplies a pre-configured [DIT]. The engine takes exclusive
// ownership; per-kind request timeouts are captured from it at
// construction.
//
// Returns an error if the DIT is nil.
func WithDIT(d *DIT) Option {
	return func(cfg *engineConfig) error {
		if d == nil {
			return errors.New("dit cannot be nil")
		}
		cfg.dit = d
		return nil
	}
}

// WithProcessProbe sets the probe the supervisor consults to decide
// whether the viewer process is alive. Defaults to the standard process
// watcher over the known viewer process names.
//
// Returns an error if the probe is nil.
func WithProcessProbe(p ProcessProbe) Option {
	return func(cfg *engineConfig) error {
		if p == nil {
			return errors.New("process probe cannot be nil")
		}
		cfg.procProbe = p
		return nil
	}
}

// WithEnabledProbe installs an external predicate consulted by
// [Engine.ShouldRun] on every loop iteration. Absent means always true.
//
// A nil probe clears any probe set earlier and is treated as always true.
func WithEnabledProbe(probe func() bool) Option {
	return func(cfg *engineConfig) error {
		cfg.enabledProbe = probe
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
//
// Returns an error if the value is empty.
func WithUserAgent(ua string) Option {
	return func(cfg *engineConfig) error {
		if ua == "" {
			return errors.New("user agent cannot be empty")
		}
		cfg.userAgent = ua
		return nil
	}
}
