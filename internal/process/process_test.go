package process

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDefaultNames verifies the known viewer process names are watched
// by default.
func TestDefaultNames(t *testing.T) {
	w := NewWatcher(nil, testLogger())

	for _, name := range []string{"Pavlov.exe", "Pavlov-Win64-Shipping.exe", "GameThread"} {
		if _, ok := w.names[name]; !ok {
			t.Errorf("default watcher does not watch %q", name)
		}
	}
}

// TestIsRunning_NoMatch verifies a watcher over a name that cannot
// exist reports not running.
func TestIsRunning_NoMatch(t *testing.T) {
	w := NewWatcher([]string{"definitely-not-a-real-process-name"}, testLogger())

	if w.IsRunning() {
		t.Error("IsRunning reported true for a nonexistent process name")
	}
}

// TestClose_NoMatch verifies terminating with no matching process is a
// no-op, not an error.
func TestClose_NoMatch(t *testing.T) {
	w := NewWatcher([]string{"definitely-not-a-real-process-name"}, testLogger())

	if err := w.Close(); err != nil {
		t.Errorf("Close returned %v for a nonexistent process name", err)
	}
}
