package config

import (
	"testing"
	"time"

	"github.com/pavtv/pavtv"
)

// TestBuildDIT_AppliesOverrides verifies config overrides land in the
// DIT and untouched kinds keep their defaults.
func TestBuildDIT_AppliesOverrides(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dit, err := BuildDIT(cfg)
	if err != nil {
		t.Fatalf("BuildDIT failed: %v", err)
	}

	if got := dit.MonitorInterval(); got != 50*time.Millisecond {
		t.Errorf("MonitorInterval = %s, want 50ms", got)
	}
	if got := dit.UnresponsiveTimeout(); got != 3*time.Second {
		t.Errorf("UnresponsiveTimeout = %s, want 3s", got)
	}
	if got := dit.DisconnectedTimeout(); got != 30*time.Second {
		t.Errorf("DisconnectedTimeout = %s, want 30s", got)
	}
	if got := dit.Interval(pavtv.KindTime); got != 100*time.Millisecond {
		t.Errorf("Interval(time) = %s, want 100ms", got)
	}
	if got := dit.Timeout(pavtv.KindTime); got != 500*time.Millisecond {
		t.Errorf("Timeout(time) = %s, want 500ms", got)
	}
	// events override sets only the interval
	if got := dit.Timeout(pavtv.KindEvents); got != time.Second {
		t.Errorf("Timeout(events) = %s, want the default 1s", got)
	}
	// untouched kind keeps both defaults
	if got := dit.Interval(pavtv.KindPause); got != 125*time.Millisecond {
		t.Errorf("Interval(pause) = %s, want the default 125ms", got)
	}
}

// TestBuildDIT_ThresholdOrdering verifies an explicit disconnected
// value below the default unresponsive threshold still lands once the
// configured unresponsive value is applied first.
func TestBuildDIT_ThresholdOrdering(t *testing.T) {
	cfg, err := Parse([]byte("unresponsive_timeout: 1s\ndisconnected_timeout: 4s"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dit, err := BuildDIT(cfg)
	if err != nil {
		t.Fatalf("BuildDIT failed: %v", err)
	}

	if got := dit.UnresponsiveTimeout(); got != time.Second {
		t.Errorf("UnresponsiveTimeout = %s, want 1s", got)
	}
	if got := dit.DisconnectedTimeout(); got != 4*time.Second {
		t.Errorf("DisconnectedTimeout = %s, want 4s", got)
	}
}

// TestBuildOptions verifies a full config builds a working engine.
func TestBuildOptions(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}

	eng, err := pavtv.New(opts...)
	if err != nil {
		t.Fatalf("New rejected built options: %v", err)
	}
	if got := eng.URL(); got != "http://localhost:1234/" {
		t.Errorf("URL = %q", got)
	}
	if got := eng.DIT().UnresponsiveTimeout(); got != 3*time.Second {
		t.Errorf("UnresponsiveTimeout = %s, want 3s", got)
	}
}
