package tui

import (
	"strings"
	"testing"

	"github.com/pavtv/pavtv"
)

// TestModel_KillfeedTrimming verifies the feed keeps only the newest
// entries.
func TestModel_KillfeedTrimming(t *testing.T) {
	m := NewModel()

	for i := 0; i < killfeedDepth+5; i++ {
		next, _ := m.Update(killfeedMsg{{Killer: "a", Killed: "b", KilledBy: "AK"}})
		m = next.(Model)
	}

	if len(m.feed) != killfeedDepth {
		t.Errorf("feed length = %d, want capped at %d", len(m.feed), killfeedDepth)
	}
}

// TestModel_StateRendering verifies each connection state shows up in
// the view.
func TestModel_StateRendering(t *testing.T) {
	tests := []struct {
		state pavtv.ConnectionState
		want  string
	}{
		{pavtv.StateConnected, "connected"},
		{pavtv.StateUnresponsive, "unresponsive"},
		{pavtv.StateDisconnected, "disconnected"},
	}

	for _, tt := range tests {
		m := NewModel()
		next, _ := m.Update(stateMsg(tt.state))
		m = next.(Model)
		if view := m.View(); !strings.Contains(view, tt.want) {
			t.Errorf("view for %s does not mention %q", tt.state, tt.want)
		}
	}
}

// TestModel_ClockAndPause verifies the clock formats and the pause
// marker appears.
func TestModel_ClockAndPause(t *testing.T) {
	m := NewModel()

	next, _ := m.Update(timeMsg(83.5))
	m = next.(Model)
	if view := m.View(); !strings.Contains(view, "01:23.5") {
		t.Errorf("view does not show the formatted clock: %q", view)
	}

	next, _ = m.Update(pauseMsg(true))
	m = next.(Model)
	if view := m.View(); !strings.Contains(view, "paused") {
		t.Error("view does not show the pause marker")
	}
}

// TestFormatClock covers rounding at the edges.
func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00.0"},
		{12.5, "00:12.5"},
		{60, "01:00.0"},
		{3599.9, "59:59.9"},
	}

	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
