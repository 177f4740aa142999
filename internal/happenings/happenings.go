// Package happenings serves mall events and promotions from the
// remote store, with fallback listings when it is unreachable.
package happenings

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/store"
)

// ErrNotFound is returned when no event matches a slug.
var ErrNotFound = errors.New("happenings: not found")

const cacheTTL = 5 * time.Minute

// Event is one scheduled mall event.
type Event struct {
	Slug     string
	Title    string
	Summary  string
	Body     string
	Venue    string
	StartsAt time.Time
	EndsAt   time.Time
	ImageURL string
}

// Promotion is a time-bounded tenant offer.
type Promotion struct {
	Slug       string
	Title      string
	Summary    string
	TenantSlug string
	ValidFrom  time.Time
	ValidUntil time.Time
	ImageURL   string
}

// Client lists events and promotions with short-lived caches.
type Client struct {
	store  *store.Client
	events *ttlcache.Cache[string, []Event]
	promos *ttlcache.Cache[string, []Promotion]
	now    func() time.Time
	log    *zap.Logger
}

// NewClient builds a happenings client.
func NewClient(st *store.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	events := ttlcache.New(ttlcache.WithTTL[string, []Event](cacheTTL))
	promos := ttlcache.New(ttlcache.WithTTL[string, []Promotion](cacheTTL))
	go events.Start()
	go promos.Start()
	return &Client{store: st, events: events, promos: promos, now: time.Now, log: log}
}

// Close stops the cache janitors.
func (c *Client) Close() {
	c.events.Stop()
	c.promos.Stop()
}

// Upcoming returns events that have not ended yet, soonest first,
// capped at limit when limit > 0.
func (c *Client) Upcoming(ctx context.Context, limit int) []Event {
	now := c.now()
	var out []Event
	for _, e := range c.allEvents(ctx) {
		if !e.EndsAt.IsZero() && e.EndsAt.Before(now) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Events returns the full event listing, soonest first.
func (c *Client) Events(ctx context.Context) []Event {
	return c.allEvents(ctx)
}

// Event returns one event by slug.
func (c *Client) Event(ctx context.Context, slug string) (Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, e := range c.allEvents(ctx) {
		if e.Slug == slug {
			return e, nil
		}
	}
	return Event{}, ErrNotFound
}

// Promotions returns offers valid at the current time.
func (c *Client) Promotions(ctx context.Context) []Promotion {
	now := c.now()
	var out []Promotion
	for _, p := range c.allPromotions(ctx) {
		if !p.ValidFrom.IsZero() && p.ValidFrom.After(now) {
			continue
		}
		if !p.ValidUntil.IsZero() && p.ValidUntil.Before(now) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Client) allEvents(ctx context.Context) []Event {
	if item := c.events.Get("all"); item != nil {
		return item.Value()
	}
	events := c.fetchEvents(ctx)
	c.events.Set("all", events, ttlcache.DefaultTTL)
	return events
}

func (c *Client) allPromotions(ctx context.Context) []Promotion {
	if item := c.promos.Get("all"); item != nil {
		return item.Value()
	}
	promos := c.fetchPromotions(ctx)
	c.promos.Set("all", promos, ttlcache.DefaultTTL)
	return promos
}

func (c *Client) fetchEvents(ctx context.Context) []Event {
	if !c.store.Configured() {
		return fallbackEvents(c.now())
	}
	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_active", "eq.true")
	query.Set("order", "starts_at.asc")
	var rows []eventRow
	if err := c.store.Select(ctx, "events", query, &rows); err != nil {
		c.log.Warn("event fetch failed, serving fallback", zap.Error(err))
		return fallbackEvents(c.now())
	}
	events := make([]Event, 0, len(rows))
	for _, r := range rows {
		e := r.toEvent()
		if e.Slug == "" || e.Title == "" {
			continue
		}
		events = append(events, e)
	}
	if len(events) == 0 {
		return fallbackEvents(c.now())
	}
	return events
}

func (c *Client) fetchPromotions(ctx context.Context) []Promotion {
	if !c.store.Configured() {
		return fallbackPromotions(c.now())
	}
	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_active", "eq.true")
	query.Set("order", "valid_until.asc")
	var rows []promotionRow
	if err := c.store.Select(ctx, "promotions", query, &rows); err != nil {
		c.log.Warn("promotion fetch failed, serving fallback", zap.Error(err))
		return fallbackPromotions(c.now())
	}
	promos := make([]Promotion, 0, len(rows))
	for _, r := range rows {
		p := r.toPromotion()
		if p.Slug == "" || p.Title == "" {
			continue
		}
		promos = append(promos, p)
	}
	if len(promos) == 0 {
		return fallbackPromotions(c.now())
	}
	return promos
}

type eventRow struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
	Venue    string `json:"venue"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	ImageURL string `json:"image_url"`
}

func (r eventRow) toEvent() Event {
	return Event{
		Slug:     strings.ToLower(strings.TrimSpace(r.Slug)),
		Title:    strings.TrimSpace(r.Title),
		Summary:  strings.TrimSpace(r.Summary),
		Body:     r.Body,
		Venue:    strings.TrimSpace(r.Venue),
		StartsAt: parseTime(r.StartsAt),
		EndsAt:   parseTime(r.EndsAt),
		ImageURL: strings.TrimSpace(r.ImageURL),
	}
}

type promotionRow struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	TenantSlug string `json:"tenant_slug"`
	ValidFrom  string `json:"valid_from"`
	ValidUntil string `json:"valid_until"`
	ImageURL   string `json:"image_url"`
}

func (r promotionRow) toPromotion() Promotion {
	return Promotion{
		Slug:       strings.ToLower(strings.TrimSpace(r.Slug)),
		Title:      strings.TrimSpace(r.Title),
		Summary:    strings.TrimSpace(r.Summary),
		TenantSlug: strings.ToLower(strings.TrimSpace(r.TenantSlug)),
		ValidFrom:  parseTime(r.ValidFrom),
		ValidUntil: parseTime(r.ValidUntil),
		ImageURL:   strings.TrimSpace(r.ImageURL),
	}
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
