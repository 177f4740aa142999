package seo

import (
	"encoding/json"
	"time"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal ShoppingCenter schema.
func Organization(name, url, logoURL string) map[string]any {
	if name == "" {
		return nil
	}
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "ShoppingCenter",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Event returns a minimal Event schema payload.
func Event(name, url, imageURL, venue string, start, end time.Time) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Event",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if venue != "" {
		m["location"] = map[string]any{"@type": "Place", "name": venue}
	}
	if !start.IsZero() {
		m["startDate"] = start.Format(time.RFC3339)
	}
	if !end.IsZero() {
		m["endDate"] = end.Format(time.RFC3339)
	}
	return m
}

// Movie returns a minimal Movie schema payload for cinema listings.
func Movie(name, url, posterURL string, runtimeMinutes int) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Movie",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if posterURL != "" {
		m["image"] = posterURL
	}
	if runtimeMinutes > 0 {
		m["duration"] = (time.Duration(runtimeMinutes) * time.Minute).String()
	}
	return m
}

// Article returns a minimal Article schema payload for blog posts.
func Article(headline, url, imageURL, authorName, datePublished string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	return m
}
