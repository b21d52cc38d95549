package pavtv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pavtv/pavtv/internal/httpx"
)

// errorEnvelope is the generic error body the viewer returns on non-2xx
// responses: a human-readable info string plus a diagnostic payload.
type errorEnvelope struct {
	Info string          `json:"info"`
	Data json.RawMessage `json:"data"`
}

// getJSON issues one GET and folds the raw response into a [Result].
func getJSON[T any](ctx context.Context, client *httpx.Client, url string, params []httpx.Param, timeout time.Duration) Result[T] {
	start := time.Now()
	resp := client.Get(ctx, url, params, timeout)
	return finish[T](resp, start)
}

// postJSON issues one POST with a JSON body and folds the raw response
// into a [Result].
func postJSON[T any](ctx context.Context, client *httpx.Client, url string, body any, timeout time.Duration) Result[T] {
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return failure[T](ErrValidation, err, 0, "", Timings{Total: time.Since(start)})
	}

	resp := client.Post(ctx, url, payload, "application/json", timeout)
	return finish[T](resp, start)
}

// finish converts a raw httpx response into a typed Result, decoding the
// payload on success and the error envelope on failure.
func finish[T any](resp httpx.Response, start time.Time) Result[T] {
	procStart := time.Now()
	raw := string(resp.Body)

	timings := func() Timings {
		return Timings{
			Transport:  resp.Latency,
			Processing: time.Since(procStart),
			Total:      time.Since(start),
		}
	}

	if resp.Error != nil {
		return failure[T](ErrTransport, resp.Error, resp.StatusCode, raw, timings())
	}

	if resp.Ok() {
		body := bytes.TrimSpace(resp.Body)
		if len(body) == 0 {
			// empty success body: ok with absent data
			return Result[T]{OK: true, Status: resp.StatusCode, RawBody: raw, Timings: timings()}
		}
		var data T
		if err := json.Unmarshal(body, &data); err != nil {
			return failure[T](ErrDecode, err, resp.StatusCode, raw, timings())
		}
		return Result[T]{OK: true, Status: resp.StatusCode, Data: &data, RawBody: raw, Timings: timings()}
	}

	// non-2xx: try the generic {info, data} envelope first
	var envelope errorEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && (envelope.Info != "" || len(envelope.Data) > 0) {
		r := failure[T](ErrProtocol, fmt.Errorf("%s", string(envelope.Data)), resp.StatusCode, raw, timings())
		r.Info = envelope.Info
		return r
	}

	return failure[T](ErrProtocol, fmt.Errorf("status %d", resp.StatusCode), resp.StatusCode, raw, timings())
}
