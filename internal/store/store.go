// Package store is a minimal read/insert client for the managed
// PostgREST-style data API backing the site. All content packages go
// through it; none of them talk HTTP directly.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 8 * time.Second

// ErrNotConfigured is returned when the client has no base URL and a
// caller insists on a remote round trip.
var ErrNotConfigured = errors.New("store: not configured")

// Client issues REST queries against the remote data service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New constructs a Client. When baseURL is empty the client reports
// itself unconfigured and callers fall back to built-in content.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Configured reports whether a remote endpoint is set.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Select fetches all rows of table matching query into dest, which
// must be a pointer to a slice of row structs.
func (c *Client) Select(ctx context.Context, table string, query url.Values, dest any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	endpoint, err := url.JoinPath(c.baseURL, "rest", "v1", table)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = query.Encode()
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("store: select %s status %d: %s", table, resp.StatusCode, drainError(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// Insert posts a single row into table. The response body is discarded.
func (c *Client) Insert(ctx context.Context, table string, row any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	endpoint, err := url.JoinPath(c.baseURL, "rest", "v1", table)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("store: insert %s status %d: %s", table, resp.StatusCode, drainError(resp.Body))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
