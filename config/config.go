// Package config provides YAML configuration parsing for the pavtv
// bridge.
//
// This package enables running the bridge as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK
// approach.
//
// Example configuration:
//
//	base_url: http://localhost:1234/
//	catalog_url: https://tv.vankrupt.net/
//	monitor_interval: 100ms
//	unresponsive_timeout: 5s
//	disconnected_timeout: 60s
//
//	endpoints:
//	  time:
//	    interval: 125ms
//	    timeout: 1s
//
//	process_names: [Pavlov.exe, Pavlov-Win64-Shipping.exe, GameThread]
//	steam_app_id: 555160
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSteamAppID is Pavlov's Steam application id.
const DefaultSteamAppID = 555160

// Config is the root configuration structure for the bridge.
//
// It maps directly to the YAML configuration file structure. Use [Load]
// or [Parse] to create a Config from YAML; zero fields keep the engine
// defaults.
type Config struct {
	// BaseURL is the viewer's local API root.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	BaseURL string `yaml:"base_url"`

	// CatalogURL is the master replay catalog server.
	CatalogURL string `yaml:"catalog_url"`

	// UserAgent is sent on every request to the viewer.
	UserAgent string `yaml:"user_agent"`

	// MonitorInterval is the supervisor tick period.
	MonitorInterval Duration `yaml:"monitor_interval"`

	// UnresponsiveTimeout is the silence threshold for the unresponsive
	// state.
	UnresponsiveTimeout Duration `yaml:"unresponsive_timeout"`

	// DisconnectedTimeout is the silence threshold for the disconnected
	// state. Must exceed UnresponsiveTimeout; the engine auto-corrects
	// violations.
	DisconnectedTimeout Duration `yaml:"disconnected_timeout"`

	// Endpoints overrides per-kind cadence, keyed by kind name
	// (events, status, locations, killfeed, time, pause).
	Endpoints map[string]EndpointConfig `yaml:"endpoints"`

	// ProcessNames are the viewer process names the probe watches.
	ProcessNames []string `yaml:"process_names"`

	// SteamAppID is used to launch the viewer via Steam.
	SteamAppID int `yaml:"steam_app_id"`
}

// EndpointConfig overrides the cadence of a single polled endpoint.
type EndpointConfig struct {
	// Interval is the target period between successive polls.
	Interval Duration `yaml:"interval"`

	// Timeout is the maximum wall time for a single request.
	Timeout Duration `yaml:"timeout"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML config data, expands environment variables in the
// URLs, and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.BaseURL = expandEnv(cfg.BaseURL)
	cfg.CatalogURL = expandEnv(cfg.CatalogURL)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// knownKinds are the valid endpoint override keys.
var knownKinds = map[string]struct{}{
	"events":    {},
	"status":    {},
	"locations": {},
	"killfeed":  {},
	"time":      {},
	"pause":     {},
}

// Validate checks field-level constraints. It does not enforce the
// threshold invariant: the engine's DIT auto-corrects that on
// assignment.
func (c Config) Validate() error {
	for name, ep := range c.Endpoints {
		if _, ok := knownKinds[name]; !ok {
			return fmt.Errorf("unknown endpoint %q", name)
		}
		if ep.Interval < 0 || ep.Timeout < 0 {
			return fmt.Errorf("endpoint %q: negative interval or timeout", name)
		}
	}
	if c.MonitorInterval < 0 || c.UnresponsiveTimeout < 0 || c.DisconnectedTimeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.SteamAppID < 0 {
		return fmt.Errorf("steam_app_id must not be negative")
	}
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// expandEnv substitutes ${VAR} and ${VAR:-default} references.
// Unset variables without a default expand to the empty string.
func expandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, hasDefault, def := groups[1], groups[2] != "", groups[3]

		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if hasDefault {
			return def
		}
		return ""
	})
}

// SteamApp returns the configured Steam app id, or the default.
func (c Config) SteamApp() int {
	if c.SteamAppID > 0 {
		return c.SteamAppID
	}
	return DefaultSteamAppID
}

// summaryKinds returns the override keys in a stable order, for the
// validate command's output.
func summaryKinds(c Config) []string {
	order := []string{"events", "status", "locations", "killfeed", "time", "pause"}
	var out []string
	for _, k := range order {
		if _, ok := c.Endpoints[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Summary returns a short human-readable description of the config, for
// the validate command.
func (c Config) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  Base URL:     %s\n", orDefault(c.BaseURL, "http://localhost:1234/ (default)"))
	fmt.Fprintf(&sb, "  Catalog URL:  %s\n", orDefault(c.CatalogURL, "https://tv.vankrupt.net/ (default)"))
	if c.MonitorInterval > 0 {
		fmt.Fprintf(&sb, "  Monitor tick: %s\n", c.MonitorInterval.Duration())
	}
	if ov := summaryKinds(c); len(ov) > 0 {
		fmt.Fprintf(&sb, "  Overrides:    %s\n", strings.Join(ov, ", "))
	}
	return sb.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
