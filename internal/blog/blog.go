// Package blog serves the news/blog section. Posts come from the
// remote store when configured; otherwise local markdown files with
// YAML front matter are rendered. Bodies are sanitized before they
// reach a template either way.
package blog

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/store"
)

// ErrNotFound is returned when no post matches a slug.
var ErrNotFound = errors.New("blog: not found")

const (
	cacheTTL          = 5 * time.Minute
	defaultContentDir = "content/blog"
)

// Post is one published article.
type Post struct {
	Slug         string
	Title        string
	Summary      string
	Body         template.HTML
	Author       string
	HeroImageURL string
	Tags         []string
	PublishedAt  time.Time
	UpdatedAt    time.Time
}

// Client lists and renders posts.
type Client struct {
	store      *store.Client
	cache      *ttlcache.Cache[string, []Post]
	contentDir string
	policy     *bluemonday.Policy
	md         goldmark.Markdown
	log        *zap.Logger
}

// NewClient builds a blog client. contentDir holds the markdown
// fallback; empty means "content/blog".
func NewClient(st *store.Client, contentDir string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	contentDir = strings.TrimSpace(contentDir)
	if contentDir == "" {
		contentDir = defaultContentDir
	}
	cache := ttlcache.New(ttlcache.WithTTL[string, []Post](cacheTTL))
	go cache.Start()
	return &Client{
		store:      st,
		cache:      cache,
		contentDir: contentDir,
		policy:     bluemonday.UGCPolicy(),
		md:         goldmark.New(),
		log:        log,
	}
}

// Close stops the cache janitor.
func (c *Client) Close() {
	c.cache.Stop()
}

// List returns all posts, newest first.
func (c *Client) List(ctx context.Context) []Post {
	return c.all(ctx)
}

// Get returns one post by slug.
func (c *Client) Get(ctx context.Context, slug string) (Post, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, p := range c.all(ctx) {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

func (c *Client) all(ctx context.Context) []Post {
	if item := c.cache.Get("all"); item != nil {
		return item.Value()
	}
	posts := c.fetch(ctx)
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	c.cache.Set("all", posts, ttlcache.DefaultTTL)
	return posts
}

func (c *Client) fetch(ctx context.Context) []Post {
	if c.store.Configured() {
		if posts, err := c.fetchRemote(ctx); err == nil && len(posts) > 0 {
			return posts
		} else if err != nil {
			c.log.Warn("post fetch failed, serving local posts", zap.Error(err))
		}
	}
	return c.readLocal()
}

func (c *Client) fetchRemote(ctx context.Context) ([]Post, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("is_active", "eq.true")
	query.Set("order", "published_at.desc")
	var rows []postRow
	if err := c.store.Select(ctx, "posts", query, &rows); err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(rows))
	for _, r := range rows {
		p, ok := c.toPost(r)
		if !ok {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (c *Client) toPost(r postRow) (Post, bool) {
	slug := strings.ToLower(strings.TrimSpace(r.Slug))
	title := strings.TrimSpace(r.Title)
	if slug == "" || title == "" || strings.TrimSpace(r.Body) == "" {
		return Post{}, false
	}
	body := r.Body
	if strings.TrimSpace(r.Format) != "html" {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(r.Body), &buf); err != nil {
			return Post{}, false
		}
		body = buf.String()
	}
	return Post{
		Slug:         slug,
		Title:        title,
		Summary:      strings.TrimSpace(r.Summary),
		Body:         template.HTML(c.policy.Sanitize(body)),
		Author:       strings.TrimSpace(r.Author),
		HeroImageURL: strings.TrimSpace(r.HeroImageURL),
		Tags:         r.Tags,
		PublishedAt:  parseTime(r.PublishedAt),
		UpdatedAt:    parseTime(r.UpdatedAt),
	}, true
}

type postRow struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Body         string   `json:"body"`
	Format       string   `json:"format"`
	Author       string   `json:"author"`
	HeroImageURL string   `json:"hero_image_url"`
	Tags         []string `json:"tags"`
	PublishedAt  string   `json:"published_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// readLocal renders every markdown file under contentDir.
func (c *Client) readLocal() []Post {
	entries, err := os.ReadDir(c.contentDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("read local posts", zap.Error(err))
		}
		return nil
	}
	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		post, err := c.readMarkdown(filepath.Join(c.contentDir, entry.Name()))
		if err != nil {
			c.log.Warn("parse local post", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		posts = append(posts, post)
	}
	return posts
}
