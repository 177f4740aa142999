// Package cinema serves the movie and showtime listings for the
// in-mall cinema from the remote store, with fallback data.
package cinema

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/store"
)

const cacheTTL = 5 * time.Minute

// Movie is one title currently showing.
type Movie struct {
	Slug           string
	Title          string
	Rating         string
	RuntimeMinutes int
	Synopsis       string
	PosterURL      string
	Showtimes      []Showtime
}

// Showtime is one scheduled screening of a movie.
type Showtime struct {
	Screen   string
	StartsAt time.Time
	Format   string // e.g. "2D", "3D", "IMAX"
}

// Client lists the cinema programme with a short-lived cache.
type Client struct {
	store *store.Client
	cache *ttlcache.Cache[string, []Movie]
	now   func() time.Time
	log   *zap.Logger
}

// NewClient builds a cinema client.
func NewClient(st *store.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	cache := ttlcache.New(ttlcache.WithTTL[string, []Movie](cacheTTL))
	go cache.Start()
	return &Client{store: st, cache: cache, now: time.Now, log: log}
}

// Close stops the cache janitor.
func (c *Client) Close() {
	c.cache.Stop()
}

// NowShowing returns movies with at least one future showtime, each
// movie's showtimes sorted ascending.
func (c *Client) NowShowing(ctx context.Context) []Movie {
	now := c.now()
	var out []Movie
	for _, m := range c.all(ctx) {
		var upcoming []Showtime
		for _, s := range m.Showtimes {
			if s.StartsAt.After(now) {
				upcoming = append(upcoming, s)
			}
		}
		if len(upcoming) == 0 {
			continue
		}
		sort.Slice(upcoming, func(i, j int) bool {
			return upcoming[i].StartsAt.Before(upcoming[j].StartsAt)
		})
		m.Showtimes = upcoming
		out = append(out, m)
	}
	return out
}

func (c *Client) all(ctx context.Context) []Movie {
	if item := c.cache.Get("all"); item != nil {
		return item.Value()
	}
	movies := c.fetch(ctx)
	c.cache.Set("all", movies, ttlcache.DefaultTTL)
	return movies
}

func (c *Client) fetch(ctx context.Context) []Movie {
	if !c.store.Configured() {
		return fallbackProgramme(c.now())
	}
	query := url.Values{}
	query.Set("select", "*,showtimes(*)")
	query.Set("is_active", "eq.true")
	query.Set("order", "title.asc")
	var rows []movieRow
	if err := c.store.Select(ctx, "movies", query, &rows); err != nil {
		c.log.Warn("cinema fetch failed, serving fallback", zap.Error(err))
		return fallbackProgramme(c.now())
	}
	movies := make([]Movie, 0, len(rows))
	for _, r := range rows {
		m := r.toMovie()
		if m.Slug == "" || m.Title == "" {
			continue
		}
		movies = append(movies, m)
	}
	if len(movies) == 0 {
		return fallbackProgramme(c.now())
	}
	return movies
}

type movieRow struct {
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Rating         string        `json:"rating"`
	RuntimeMinutes int           `json:"runtime_minutes"`
	Synopsis       string        `json:"synopsis"`
	PosterURL      string        `json:"poster_url"`
	Showtimes      []showtimeRow `json:"showtimes"`
}

type showtimeRow struct {
	Screen   string `json:"screen"`
	StartsAt string `json:"starts_at"`
	Format   string `json:"format"`
}

func (r movieRow) toMovie() Movie {
	m := Movie{
		Slug:           strings.ToLower(strings.TrimSpace(r.Slug)),
		Title:          strings.TrimSpace(r.Title),
		Rating:         strings.TrimSpace(r.Rating),
		RuntimeMinutes: r.RuntimeMinutes,
		Synopsis:       strings.TrimSpace(r.Synopsis),
		PosterURL:      strings.TrimSpace(r.PosterURL),
	}
	for _, s := range r.Showtimes {
		ts := parseTime(s.StartsAt)
		if ts.IsZero() {
			continue
		}
		m.Showtimes = append(m.Showtimes, Showtime{
			Screen:   strings.TrimSpace(s.Screen),
			StartsAt: ts,
			Format:   strings.TrimSpace(s.Format),
		})
	}
	return m
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
