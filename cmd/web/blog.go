package main

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"meridianmall.com/meridian-web/internal/blog"
	mw "meridianmall.com/meridian-web/internal/middleware"
	"meridianmall.com/meridian-web/internal/seo"
)

// cacheHeaders sets shared-cache headers for content pages and
// reports whether the client's copy is still current (304 written).
func cacheHeaders(w http.ResponseWriter, r *http.Request, key string, modified time.Time) bool {
	etag := fmt.Sprintf(`W/"%x"`, sha1.Sum([]byte(key+modified.UTC().Format(time.RFC3339))))
	w.Header().Set("Cache-Control", "public, max-age=600")
	w.Header().Set("ETag", etag)
	if !modified.IsZero() {
		w.Header().Set("Last-Modified", modified.UTC().Format(http.TimeFormat))
	}
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// BlogIndexHandler renders the news listing.
func BlogIndexHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	posts := blogClient.List(r.Context())

	var latest time.Time
	for _, p := range posts {
		if p.UpdatedAt.After(latest) {
			latest = p.UpdatedAt
		}
	}
	if cacheHeaders(w, r, "blog:index:"+lang, latest) {
		return
	}

	data := struct {
		PageData
		Posts []blog.Post
	}{
		PageData: NewPageData(r, metaFor(r, i18nBundle.T(lang, "blog.title"), i18nBundle.T(lang, "blog.description"))),
		Posts:    posts,
	}
	render(w, r, "blog.tmpl", data)
}

// BlogPostHandler renders one article.
func BlogPostHandler(w http.ResponseWriter, r *http.Request) {
	slug := trimSlug(chi.URLParam(r, "slug"))
	post, err := blogClient.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			notFound(w, r, "Post not found")
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	modified := post.UpdatedAt
	if modified.IsZero() {
		modified = post.PublishedAt
	}
	if cacheHeaders(w, r, "blog:"+post.Slug+":"+mw.Lang(r), modified) {
		return
	}

	meta := metaFor(r, post.Title, post.Summary)
	meta.OG.Type = "article"
	if ld := seo.Article(post.Title, "/blog/"+post.Slug, post.HeroImageURL, post.Author, post.PublishedAt.Format("2006-01-02")); ld != nil {
		meta.JSONLD = append(meta.JSONLD, seo.JSON(ld))
	}

	data := struct {
		PageData
		Post blog.Post
	}{
		PageData: NewPageData(r, meta),
		Post:     post,
	}
	render(w, r, "blog_post.tmpl", data)
}
