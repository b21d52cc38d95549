package pavtv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pavtv/pavtv/internal/httpx"
)

// DefaultCommandTimeout bounds each command request.
const DefaultCommandTimeout = 3 * time.Second

// Commander issues command requests against the viewer API: load a
// replay, seek the match time, toggle pause.
//
// Commands share the engine's HTTP call shape but do not participate in
// the poll loop; a Commander owns its own HTTP client and may be used
// with or without a running [Engine]. Commands against the same viewer
// are expected to be issued one at a time.
type Commander struct {
	client  *httpx.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// NewCommander creates a Commander for the viewer at baseURL.
// The URL is validated like [Engine.SetURL]. A nil logger falls back to
// [slog.Default].
func NewCommander(baseURL string, logger *slog.Logger) (*Commander, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Commander{
		client:  httpx.NewClient(DefaultUserAgent),
		baseURL: normalized,
		timeout: DefaultCommandTimeout,
		logger:  logger.With("component", "commander"),
	}, nil
}

// LoadReplay asks the viewer to load the replay with the given catalog
// id. A blank id is rejected with [ErrValidation] before any request is
// made.
func (c *Commander) LoadReplay(ctx context.Context, id string) (Result[CommandResponse], error) {
	if strings.TrimSpace(id) == "" {
		return Result[CommandResponse]{}, fmt.Errorf("%w: replay id is blank", ErrValidation)
	}

	body := struct {
		ID string `json:"Id"`
	}{ID: id}

	c.logger.Info("loading replay", "id", id)
	return c.post(ctx, "LoadReplay", body), nil
}

// SetMatchTime seeks the replay to the given time in seconds. Negative
// values are clamped to 0 before sending.
func (c *Commander) SetMatchTime(ctx context.Context, seconds float64) Result[CommandResponse] {
	if seconds < 0 {
		seconds = 0
	}

	body := struct {
		MatchTime float64 `json:"MatchTime"`
	}{MatchTime: seconds}

	return c.post(ctx, "MatchTime", body)
}

// SetPause pauses or resumes playback.
func (c *Commander) SetPause(ctx context.Context, paused bool) Result[CommandResponse] {
	body := struct {
		Paused bool `json:"Paused"`
	}{Paused: paused}

	return c.post(ctx, "Pause", body)
}

func (c *Commander) post(ctx context.Context, path string, body any) Result[CommandResponse] {
	res := postJSON[CommandResponse](ctx, c.client, c.baseURL+path, body, c.timeout)
	if !res.OK {
		c.logger.Warn("command failed", "path", path, "status", res.Status, "error", errString(res.Err))
	}
	return res
}

// Close releases the commander's HTTP client.
func (c *Commander) Close() {
	c.client.Close()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
