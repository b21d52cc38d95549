// Package pavtv is a client-side telemetry bridge for the Pavlov TV
// replay viewer.
//
// The viewer exposes a local read-only HTTP API. The bridge polls each
// of its endpoints (match events, match status, player locations,
// killfeed, replay time, pause state) on an independent cadence and
// delivers every parsed result to a single [Sink], while a supervisor
// derives a connection-health state from the most recent successful
// response and a process probe.
//
// # Engine
//
// [Engine] is the core: one goroutine per endpoint kind plus one
// supervisor. Each poller owns its interval, its request timeout, and a
// dedicated HTTP client. The supervisor publishes a [ConnectionState]
// transition to the sink whenever the derived state changes:
//
//   - [StateConnected]: the API responded recently
//   - [StateUnresponsive]: the process is alive but the API has been
//     silent past the unresponsive threshold (a large replay loading)
//   - [StateDisconnected]: not running, not reachable, or silent past
//     the disconnected threshold
//
// All cadence values live in the [DIT] and may be mutated while the
// engine runs.
//
// # Commands and the catalog
//
// [Commander] issues the viewer's command requests (load replay, seek,
// pause) over the same HTTP shape without participating in the poll
// loop. The catalog subpackage queries the remote master replay list.
//
// # Usage
//
//	eng, err := pavtv.New(
//	    pavtv.WithBaseURL("http://localhost:1234/"),
//	    pavtv.WithSink(pavtv.NewLogSink(nil)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := eng.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
package pavtv
