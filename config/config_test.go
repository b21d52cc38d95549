package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fullConfig = `
base_url: http://localhost:1234/
catalog_url: https://tv.vankrupt.net/
user_agent: my-bridge
monitor_interval: 50ms
unresponsive_timeout: 3s
disconnected_timeout: 30s

endpoints:
  time:
    interval: 100ms
    timeout: 500ms
  events:
    interval: 10s

process_names: [Pavlov.exe, GameThread]
steam_app_id: 555160
`

// TestParse_FullConfig verifies every field round-trips from YAML.
func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.BaseURL != "http://localhost:1234/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.CatalogURL != "https://tv.vankrupt.net/" {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.UserAgent != "my-bridge" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.MonitorInterval.Duration() != 50*time.Millisecond {
		t.Errorf("MonitorInterval = %s", cfg.MonitorInterval.Duration())
	}
	if cfg.UnresponsiveTimeout.Duration() != 3*time.Second {
		t.Errorf("UnresponsiveTimeout = %s", cfg.UnresponsiveTimeout.Duration())
	}
	if cfg.DisconnectedTimeout.Duration() != 30*time.Second {
		t.Errorf("DisconnectedTimeout = %s", cfg.DisconnectedTimeout.Duration())
	}
	if ep := cfg.Endpoints["time"]; ep.Interval.Duration() != 100*time.Millisecond || ep.Timeout.Duration() != 500*time.Millisecond {
		t.Errorf("time endpoint = %+v", ep)
	}
	if len(cfg.ProcessNames) != 2 {
		t.Errorf("ProcessNames = %v", cfg.ProcessNames)
	}
	if cfg.SteamApp() != 555160 {
		t.Errorf("SteamApp = %d", cfg.SteamApp())
	}
}

// TestParse_EmptyConfigKeepsDefaults verifies zero fields survive so the
// engine defaults apply.
func TestParse_EmptyConfigKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.BaseURL != "" || cfg.MonitorInterval != 0 {
		t.Errorf("empty config produced non-zero fields: %+v", cfg)
	}
	if cfg.SteamApp() != DefaultSteamAppID {
		t.Errorf("SteamApp = %d, want default", cfg.SteamApp())
	}
}

// TestParse_InvalidDuration verifies a malformed duration fails with a
// useful message.
func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("monitor_interval: fast"))
	if err == nil {
		t.Fatal("Parse accepted an invalid duration")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error = %v, want an invalid-duration message", err)
	}
}

// TestParse_UnknownEndpoint verifies a misspelled endpoint key is
// rejected.
func TestParse_UnknownEndpoint(t *testing.T) {
	_, err := Parse([]byte("endpoints:\n  clock:\n    interval: 1s"))
	if err == nil {
		t.Fatal("Parse accepted an unknown endpoint key")
	}
	if !strings.Contains(err.Error(), "unknown endpoint") {
		t.Errorf("error = %v, want an unknown-endpoint message", err)
	}
}

// TestParse_EnvSubstitution verifies ${VAR} and ${VAR:-default}
// expansion in URLs.
func TestParse_EnvSubstitution(t *testing.T) {
	t.Setenv("PAVTV_HOST", "10.0.0.5")

	cfg, err := Parse([]byte("base_url: http://${PAVTV_HOST}:1234/\ncatalog_url: https://${PAVTV_CATALOG:-tv.vankrupt.net}/"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:1234/" {
		t.Errorf("BaseURL = %q, want the variable expanded", cfg.BaseURL)
	}
	if cfg.CatalogURL != "https://tv.vankrupt.net/" {
		t.Errorf("CatalogURL = %q, want the default expanded", cfg.CatalogURL)
	}
}

// TestLoad_File verifies reading from disk.
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := os.WriteFile(path, []byte(fullConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UserAgent != "my-bridge" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
}

// TestLoad_MissingFile verifies a missing file is an error.
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}
