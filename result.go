package pavtv

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds surfaced by the engine and its command callers. Use
// [errors.Is] to classify an error carried in [Result].Err.
var (
	// ErrValidation indicates rejected input: an invalid base URL or a
	// blank replay id. The previous value is always left intact.
	ErrValidation = errors.New("validation failed")

	// ErrTransport indicates a connection, DNS, TLS, or timeout failure.
	ErrTransport = errors.New("transport failed")

	// ErrProtocol indicates a non-2xx response without a decodable error
	// envelope.
	ErrProtocol = errors.New("unexpected response")

	// ErrDecode indicates a 2xx response whose body failed to parse into
	// the expected payload.
	ErrDecode = errors.New("decode failed")
)

// Timings breaks down the wall time of a single call.
type Timings struct {
	// Transport is the time spent on the wire.
	Transport time.Duration

	// Processing is the time spent decoding the response.
	Processing time.Duration

	// Total is the end-to-end time of the call.
	Total time.Duration
}

// Result holds the outcome of a single HTTP call against the viewer API.
//
// Result is immutable after creation. OK is true iff the HTTP status was
// 2xx and the body parsed into T (or was empty). On failure Err carries a
// classified error and, when the server returned a decodable error
// envelope, Info carries its human-readable message. RawBody is kept for
// diagnostics regardless of outcome.
type Result[T any] struct {
	// OK reports whether the call succeeded end to end.
	OK bool

	// Status is the HTTP status code. Zero if the request failed before
	// receiving a response.
	Status int

	// Info is a human-readable message extracted from the server's error
	// envelope, when one was present.
	Info string

	// Err contains the classified error when OK is false, or an envelope
	// diagnostic when one was decoded.
	Err error

	// Data is the parsed payload. Nil when the body was empty or the
	// call failed.
	Data *T

	// RawBody is the response body as received, for diagnostics.
	RawBody string

	// Timings breaks down where the call spent its time.
	Timings Timings
}

// failure builds a failed Result of kind with the given cause.
func failure[T any](kind error, cause error, status int, raw string, timings Timings) Result[T] {
	return Result[T]{
		Status:  status,
		Err:     fmt.Errorf("%w: %w", kind, cause),
		RawBody: raw,
		Timings: timings,
	}
}
