package pavtv

import (
	"sync"
	"testing"
	"time"
)

// TestNewDIT_Defaults verifies the documented default cadence.
func TestNewDIT_Defaults(t *testing.T) {
	d := NewDIT()

	if got := d.MonitorInterval(); got != 100*time.Millisecond {
		t.Errorf("MonitorInterval = %s, want 100ms", got)
	}
	if got := d.UnresponsiveTimeout(); got != 5*time.Second {
		t.Errorf("UnresponsiveTimeout = %s, want 5s", got)
	}
	if got := d.DisconnectedTimeout(); got != 60*time.Second {
		t.Errorf("DisconnectedTimeout = %s, want 60s", got)
	}

	wantIntervals := map[Kind]time.Duration{
		KindEvents:    5000 * time.Millisecond,
		KindStatus:    1000 * time.Millisecond,
		KindLocations: 500 * time.Millisecond,
		KindKillfeed:  1250 * time.Millisecond,
		KindTime:      125 * time.Millisecond,
		KindPause:     125 * time.Millisecond,
	}
	for kind, want := range wantIntervals {
		if got := d.Interval(kind); got != want {
			t.Errorf("Interval(%s) = %s, want %s", kind, got, want)
		}
		if got := d.Timeout(kind); got != time.Second {
			t.Errorf("Timeout(%s) = %s, want 1s", kind, got)
		}
	}
}

// TestDIT_ThresholdInvariant verifies that after any mutation of the two
// thresholds, disconnected > unresponsive holds.
func TestDIT_ThresholdInvariant(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *DIT)
	}{
		{
			name:   "raise unresponsive past disconnected",
			mutate: func(d *DIT) { d.SetUnresponsiveTimeout(2 * time.Minute) },
		},
		{
			name:   "lower disconnected below unresponsive",
			mutate: func(d *DIT) { d.SetDisconnectedTimeout(time.Second) },
		},
		{
			name:   "disconnected equal to unresponsive",
			mutate: func(d *DIT) { d.SetDisconnectedTimeout(d.UnresponsiveTimeout()) },
		},
		{
			name: "both in sequence",
			mutate: func(d *DIT) {
				d.SetUnresponsiveTimeout(10 * time.Second)
				d.SetDisconnectedTimeout(3 * time.Second)
			},
		},
		{
			name:   "legal values untouched",
			mutate: func(d *DIT) { d.SetDisconnectedTimeout(90 * time.Second) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDIT()
			tt.mutate(d)
			if d.DisconnectedTimeout() <= d.UnresponsiveTimeout() {
				t.Errorf("invariant violated: disconnected %s <= unresponsive %s",
					d.DisconnectedTimeout(), d.UnresponsiveTimeout())
			}
		})
	}
}

// TestDIT_AutoCorrectionGap verifies the corrected disconnected value is
// exactly unresponsive + 1s.
func TestDIT_AutoCorrectionGap(t *testing.T) {
	d := NewDIT()
	d.SetUnresponsiveTimeout(2 * time.Minute)

	want := 2*time.Minute + time.Second
	if got := d.DisconnectedTimeout(); got != want {
		t.Errorf("DisconnectedTimeout = %s, want %s", got, want)
	}
}

// TestDIT_ConcurrentMutation hammers the thresholds from multiple
// goroutines. Run with -race; the invariant must hold afterwards.
func TestDIT_ConcurrentMutation(t *testing.T) {
	d := NewDIT()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.SetUnresponsiveTimeout(time.Duration(n+j) * time.Second)
				d.SetDisconnectedTimeout(time.Duration(j) * time.Second)
				_ = d.UnresponsiveTimeout()
				_ = d.DisconnectedTimeout()
				d.SetInterval(KindTime, time.Duration(j)*time.Millisecond)
				_ = d.Interval(KindTime)
			}
		}(i)
	}
	wg.Wait()

	if d.DisconnectedTimeout() <= d.UnresponsiveTimeout() {
		t.Errorf("invariant violated after concurrent mutation: disconnected %s <= unresponsive %s",
			d.DisconnectedTimeout(), d.UnresponsiveTimeout())
	}
}

// TestDIT_IntervalMutation verifies per-kind intervals are independently
// mutable.
func TestDIT_IntervalMutation(t *testing.T) {
	d := NewDIT()
	d.SetInterval(KindTime, 10*time.Millisecond)

	if got := d.Interval(KindTime); got != 10*time.Millisecond {
		t.Errorf("Interval(time) = %s, want 10ms", got)
	}
	if got := d.Interval(KindPause); got != 125*time.Millisecond {
		t.Errorf("Interval(pause) = %s, want untouched 125ms", got)
	}
}
