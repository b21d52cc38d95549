// Package catalog queries the master replay catalog: the remote server
// that indexes every recorded Pavlov TV replay.
//
// The catalog exposes a single paginated list endpoint. [Client.List]
// walks the pages, deduplicates entries by id, and returns the replays
// sorted newest first.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/pavtv/pavtv/internal/httpx"
)

// DefaultBaseURL is the public master catalog.
const DefaultBaseURL = "https://tv.vankrupt.net/"

const defaultRequestTimeout = 10 * time.Second

// Replay is one catalog entry.
type Replay struct {
	ID           string `json:"_id"`
	Name         string `json:"friendlyName"`
	GameMode     string `json:"gameMode"`
	MapName      string `json:"mapName"`
	Live         bool   `json:"live"`
	Users        int    `json:"users"`
	CreatedRaw   string `json:"created,omitempty"`
	SecondsSince *int64 `json:"secondsSince,omitempty"`

	// Created is derived, not wire data: the created field when present,
	// otherwise now minus secondsSince, otherwise now.
	Created time.Time `json:"-"`
}

// page is one response from the find endpoint.
type page struct {
	Replays []Replay `json:"replays"`
	Total   int      `json:"total"`
}

// Client fetches replay listings from a master catalog server.
type Client struct {
	http    *httpx.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a catalog client for the server at baseURL; an empty
// baseURL selects [DefaultBaseURL]. A nil logger falls back to
// [slog.Default].
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    httpx.NewClient("pavtv-bridge"),
		baseURL: baseURL,
		timeout: defaultRequestTimeout,
		logger:  logger.With("component", "catalog"),
	}
}

// List fetches the complete replay list, optionally filtered by player
// name. It pages through the find endpoint advancing the offset by the
// number of replays each page returned, and stops when a page comes
// back empty or the number of unique replays reaches the advertised
// total. Entries are deduplicated by id and sorted by derived creation
// time, newest first.
func (c *Client) List(ctx context.Context, player string) ([]Replay, error) {
	path := c.baseURL + "find"
	if player != "" {
		path += "/" + url.PathEscape(player)
	}

	seen := make(map[string]struct{})
	var replays []Replay
	offset := 0

	for {
		pg, err := c.fetchPage(ctx, path, offset)
		if err != nil {
			return nil, err
		}
		if len(pg.Replays) == 0 {
			break
		}

		now := time.Now()
		for _, r := range pg.Replays {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			r.Created = deriveCreated(r, now)
			replays = append(replays, r)
		}

		offset += len(pg.Replays)
		if pg.Total > 0 && len(replays) >= pg.Total {
			break
		}
	}

	// one sort after pagination ends; re-sorting per page would be
	// quadratic across the walk
	sort.SliceStable(replays, func(i, j int) bool {
		return replays[i].Created.After(replays[j].Created)
	})

	c.logger.Debug("catalog listed", "player", player, "count", len(replays))
	return replays, nil
}

func (c *Client) fetchPage(ctx context.Context, path string, offset int) (page, error) {
	params := []httpx.Param{httpx.KV("offset", strconv.Itoa(offset))}

	resp := c.http.Get(ctx, path, params, c.timeout)
	if resp.Error != nil {
		return page{}, fmt.Errorf("catalog request failed: %w", resp.Error)
	}
	if !resp.Ok() {
		return page{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var pg page
	if err := json.Unmarshal(resp.Body, &pg); err != nil {
		return page{}, fmt.Errorf("catalog decode failed: %w", err)
	}
	return pg, nil
}

// deriveCreated resolves a replay's creation instant: the created field
// when parseable, else now minus secondsSince, else now.
func deriveCreated(r Replay, now time.Time) time.Time {
	if r.CreatedRaw != "" {
		if t, err := time.Parse(time.RFC3339, r.CreatedRaw); err == nil {
			return t
		}
	}
	if r.SecondsSince != nil {
		return now.Add(-time.Duration(*r.SecondsSince) * time.Second)
	}
	return now
}

// Close releases the client's HTTP connections.
func (c *Client) Close() {
	c.http.Close()
}
