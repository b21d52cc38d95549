package pavtv

import (
	"testing"
	"time"
)

// TestDeriveState walks the full derivation ladder.
func TestDeriveState(t *testing.T) {
	base := deriveInput{
		hasResponse:    true,
		age:            time.Second,
		shouldRun:      true,
		processRunning: true,
		unresponsive:   5 * time.Second,
		disconnected:   60 * time.Second,
	}

	tests := []struct {
		name string
		in   func(deriveInput) deriveInput
		want ConnectionState
	}{
		{
			name: "recent response",
			in:   func(in deriveInput) deriveInput { return in },
			want: StateConnected,
		},
		{
			name: "no response yet",
			in: func(in deriveInput) deriveInput {
				in.hasResponse = false
				return in
			},
			want: StateDisconnected,
		},
		{
			name: "engine not running",
			in: func(in deriveInput) deriveInput {
				in.shouldRun = false
				return in
			},
			want: StateDisconnected,
		},
		{
			name: "process dead skips unresponsive even when age is small",
			in: func(in deriveInput) deriveInput {
				in.processRunning = false
				in.age = time.Second
				return in
			},
			want: StateDisconnected,
		},
		{
			name: "silent past unresponsive threshold",
			in: func(in deriveInput) deriveInput {
				in.age = 6 * time.Second
				return in
			},
			want: StateUnresponsive,
		},
		{
			name: "exactly at unresponsive threshold",
			in: func(in deriveInput) deriveInput {
				in.age = 5 * time.Second
				return in
			},
			want: StateUnresponsive,
		},
		{
			name: "silent past disconnected threshold",
			in: func(in deriveInput) deriveInput {
				in.age = 61 * time.Second
				return in
			},
			want: StateDisconnected,
		},
		{
			name: "exactly at disconnected threshold",
			in: func(in deriveInput) deriveInput {
				in.age = 60 * time.Second
				return in
			},
			want: StateDisconnected,
		},
		{
			name: "just under unresponsive threshold",
			in: func(in deriveInput) deriveInput {
				in.age = 5*time.Second - time.Millisecond
				return in
			},
			want: StateConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveState(tt.in(base)); got != tt.want {
				t.Errorf("deriveState() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestConnectionState_String verifies the human-readable names.
func TestConnectionState_String(t *testing.T) {
	if StateConnected.String() != "connected" ||
		StateUnresponsive.String() != "unresponsive" ||
		StateDisconnected.String() != "disconnected" {
		t.Error("unexpected state names")
	}
}
