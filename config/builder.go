package config

import (
	"fmt"

	"github.com/pavtv/pavtv"
)

// kindByName maps override keys to engine kinds.
var kindByName = map[string]pavtv.Kind{
	"events":    pavtv.KindEvents,
	"status":    pavtv.KindStatus,
	"locations": pavtv.KindLocations,
	"killfeed":  pavtv.KindKillfeed,
	"time":      pavtv.KindTime,
	"pause":     pavtv.KindPause,
}

// BuildOptions converts a validated [Config] into engine options.
//
// Zero-valued fields are skipped so the engine keeps its defaults. The
// per-kind overrides are folded into a fresh DIT; the engine captures
// request timeouts from it at construction.
func BuildOptions(cfg Config) ([]pavtv.Option, error) {
	var opts []pavtv.Option

	if cfg.BaseURL != "" {
		opts = append(opts, pavtv.WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, pavtv.WithUserAgent(cfg.UserAgent))
	}

	dit, err := BuildDIT(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, pavtv.WithDIT(dit))

	return opts, nil
}

// BuildDIT folds the config's cadence overrides into a DIT.
//
// The unresponsive threshold is applied before the disconnected one so
// an explicit disconnected value is never clobbered by the invariant
// auto-correction.
func BuildDIT(cfg Config) (*pavtv.DIT, error) {
	dit := pavtv.NewDIT()

	if cfg.MonitorInterval > 0 {
		dit.SetMonitorInterval(cfg.MonitorInterval.Duration())
	}
	if cfg.UnresponsiveTimeout > 0 {
		dit.SetUnresponsiveTimeout(cfg.UnresponsiveTimeout.Duration())
	}
	if cfg.DisconnectedTimeout > 0 {
		dit.SetDisconnectedTimeout(cfg.DisconnectedTimeout.Duration())
	}

	for name, ep := range cfg.Endpoints {
		kind, ok := kindByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown endpoint %q", name)
		}
		if ep.Interval > 0 {
			dit.SetInterval(kind, ep.Interval.Duration())
		}
		if ep.Timeout > 0 {
			dit.SetTimeout(kind, ep.Timeout.Duration())
		}
	}

	return dit, nil
}
