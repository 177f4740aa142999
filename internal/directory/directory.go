// Package directory serves the tenant (shop) directory from the
// remote store, with built-in fallback listings when the store is
// unreachable or unconfigured.
package directory

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/store"
)

// ErrNotFound is returned when no tenant matches a slug.
var ErrNotFound = errors.New("directory: not found")

const cacheTTL = 5 * time.Minute

// Tenant is one shop, restaurant or service in the mall.
type Tenant struct {
	Slug        string
	Name        string
	Category    string
	Floor       string
	Unit        string
	LogoURL     string
	Summary     string
	Description string
	Phone       string
	Hours       string
	Website     string
	Featured    bool
}

// Client lists tenants with a short-lived cache in front of the store.
type Client struct {
	store *store.Client
	cache *ttlcache.Cache[string, []Tenant]
	log   *zap.Logger
}

// NewClient builds a directory client. When the store is not
// configured every call serves the fallback directory.
func NewClient(st *store.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	cache := ttlcache.New(
		ttlcache.WithTTL[string, []Tenant](cacheTTL),
	)
	go cache.Start()
	return &Client{store: st, cache: cache, log: log}
}

// Close stops the cache janitor.
func (c *Client) Close() {
	c.cache.Stop()
}

// List returns tenants, optionally filtered by category, sorted by name.
func (c *Client) List(ctx context.Context, category string) []Tenant {
	tenants := c.all(ctx)
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return tenants
	}
	out := make([]Tenant, 0, len(tenants))
	for _, t := range tenants {
		if strings.ToLower(t.Category) == category {
			out = append(out, t)
		}
	}
	return out
}

// Featured returns the tenants flagged for the home page.
func (c *Client) Featured(ctx context.Context) []Tenant {
	var out []Tenant
	for _, t := range c.all(ctx) {
		if t.Featured {
			out = append(out, t)
		}
	}
	return out
}

// Get returns a single tenant by slug.
func (c *Client) Get(ctx context.Context, slug string) (Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, t := range c.all(ctx) {
		if t.Slug == slug {
			return t, nil
		}
	}
	return Tenant{}, ErrNotFound
}

// Categories returns the distinct tenant categories, sorted.
func (c *Client) Categories(ctx context.Context) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range c.all(ctx) {
		if t.Category == "" {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}

func (c *Client) all(ctx context.Context) []Tenant {
	if item := c.cache.Get("all"); item != nil {
		return item.Value()
	}
	tenants := c.fetch(ctx)
	c.cache.Set("all", tenants, ttlcache.DefaultTTL)
	return tenants
}

func (c *Client) fetch(ctx context.Context) []Tenant {
	if !c.store.Configured() {
		return fallbackTenants
	}
	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_active", "eq.true")
	query.Set("order", "name.asc")
	var rows []tenantRow
	if err := c.store.Select(ctx, "tenants", query, &rows); err != nil {
		c.log.Warn("tenant fetch failed, serving fallback", zap.Error(err))
		return fallbackTenants
	}
	tenants := make([]Tenant, 0, len(rows))
	for _, r := range rows {
		t := r.toTenant()
		if t.Slug == "" || t.Name == "" {
			continue
		}
		tenants = append(tenants, t)
	}
	if len(tenants) == 0 {
		return fallbackTenants
	}
	return tenants
}

type tenantRow struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Floor       string `json:"floor"`
	Unit        string `json:"unit"`
	LogoURL     string `json:"logo_url"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Hours       string `json:"hours"`
	Website     string `json:"website"`
	Featured    bool   `json:"is_featured"`
}

func (r tenantRow) toTenant() Tenant {
	return Tenant{
		Slug:        strings.ToLower(strings.TrimSpace(r.Slug)),
		Name:        strings.TrimSpace(r.Name),
		Category:    strings.TrimSpace(r.Category),
		Floor:       strings.TrimSpace(r.Floor),
		Unit:        strings.TrimSpace(r.Unit),
		LogoURL:     strings.TrimSpace(r.LogoURL),
		Summary:     strings.TrimSpace(r.Summary),
		Description: strings.TrimSpace(r.Description),
		Phone:       strings.TrimSpace(r.Phone),
		Hours:       strings.TrimSpace(r.Hours),
		Website:     strings.TrimSpace(r.Website),
		Featured:    r.Featured,
	}
}
