// Package process knows whether the Pavlov TV viewer is alive, how to
// launch it through Steam, and how to shut it down.
package process

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// DefaultNames are the process names the viewer runs under across
// platforms and Proton.
func DefaultNames() []string {
	return []string{"Pavlov.exe", "Pavlov-Win64-Shipping.exe", "GameThread"}
}

// launchPollInterval is how often Launch re-checks for the process.
const launchPollInterval = 250 * time.Millisecond

// Watcher answers "is the viewer process currently alive?" for a fixed
// set of process names. Safe for concurrent use.
type Watcher struct {
	names  map[string]struct{}
	logger *slog.Logger
}

// NewWatcher creates a Watcher over the given process names; nil or
// empty selects [DefaultNames]. A nil logger falls back to
// [slog.Default].
func NewWatcher(names []string, logger *slog.Logger) *Watcher {
	if len(names) == 0 {
		names = DefaultNames()
	}
	if logger == nil {
		logger = slog.Default()
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return &Watcher{names: set, logger: logger.With("component", "process")}
}

// IsRunning reports whether any watched process name has a live
// instance.
func (w *Watcher) IsRunning() bool {
	procs, err := process.Processes()
	if err != nil {
		w.logger.Debug("process enumeration failed", "error", err)
		return false
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if _, ok := w.names[name]; ok {
			return true
		}
	}
	return false
}

// Launch starts the viewer via its Steam URL and waits until it is
// running. It polls [Watcher.IsRunning] every 250ms and returns nil once
// a process appears, or an error when the timeout elapses, keepWaiting
// returns false, or the context is cancelled. keepWaiting may be nil.
func (w *Watcher) Launch(ctx context.Context, keepWaiting func() bool, timeout time.Duration, steamAppID int) error {
	steamURL := fmt.Sprintf("steam://rungameid/%d", steamAppID)

	w.logger.Info("launching viewer", "url", steamURL)
	if err := openURL(steamURL); err != nil {
		return fmt.Errorf("failed to invoke steam: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if w.IsRunning() {
			return nil
		}
		if keepWaiting != nil && !keepWaiting() {
			return fmt.Errorf("launch abandoned")
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("viewer did not start within %s", timeout)
		}

		timer := time.NewTimer(launchPollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Close sends a terminate signal to every live process matching the
// watched names plus any extra names given. The first error is
// returned after all candidates were attempted.
func (w *Watcher) Close(extraNames ...string) error {
	targets := make(map[string]struct{}, len(w.names)+len(extraNames))
	for n := range w.names {
		targets[n] = struct{}{}
	}
	for _, n := range extraNames {
		targets[n] = struct{}{}
	}

	procs, err := process.Processes()
	if err != nil {
		return fmt.Errorf("process enumeration failed: %w", err)
	}

	var firstErr error
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if _, ok := targets[name]; !ok {
			continue
		}
		w.logger.Info("terminating process", "name", name, "pid", p.Pid)
		if err := p.Terminate(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("terminate %s (pid %d): %w", name, p.Pid, err)
		}
	}
	return firstErr
}

// openURL hands a URL to the platform opener so Steam picks up the
// rungameid scheme.
func openURL(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
