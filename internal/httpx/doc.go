// Package httpx provides the HTTP collaborator for the telemetry bridge.
//
// This package is internal to pavtv and wraps net/http with the behaviors
// the engine relies on: per-request timeouts via context, ordered query
// parameters, a configurable User-Agent, a cookie jar, and a 1MB response
// body limit.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper; one instance per engine worker
//   - [Response]: raw outcome of a single request
//   - [Param]: ordered query parameter with an optional value
//
// Clients are deliberately not shared: the header hook mutates per-request
// state without locking, so each engine worker owns a dedicated Client.
package httpx
