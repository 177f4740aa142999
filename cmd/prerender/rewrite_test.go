package main

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridianmall.com/meridian-web/internal/settings"
)

const shell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Placeholder</title>
<meta name="description" content="old description">
<link rel="icon" href="/old-favicon.ico">
</head>
<body><h1>Meridian Mall</h1></body>
</html>`

func TestRewriteUpdatesExistingTags(t *testing.T) {
	b := settings.Defaults()
	b.SEO.MetaTitle = "Meridian Mall | Shop Dine Play"
	b.SEO.MetaDescription = "Over 120 shops under one roof."
	b.SEO.CanonicalURL = "https://meridianmall.com/"
	b.SEO.GoogleVerification = "g-token"
	b.General.FaviconURL = "/assets/favicon.svg"

	out, err := Rewrite([]byte(shell), b)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "Meridian Mall | Shop Dine Play", doc.Find("title").Text())

	// updated in place, not duplicated
	desc := doc.Find(`meta[name="description"]`)
	require.Equal(t, 1, desc.Length())
	content, _ := desc.Attr("content")
	assert.Equal(t, "Over 120 shops under one roof.", content)

	href, _ := doc.Find(`link[rel="icon"]`).Attr("href")
	assert.Equal(t, "/assets/favicon.svg", href)

	// appended when absent
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://meridianmall.com/", canonical)
	verification, _ := doc.Find(`meta[name="google-site-verification"]`).Attr("content")
	assert.Equal(t, "g-token", verification)
}

func TestRewriteLeavesShellValuesForEmptySettings(t *testing.T) {
	b := settings.Bundle{}

	out, err := Rewrite([]byte(shell), b)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "Placeholder", doc.Find("title").Text())
	content, _ := doc.Find(`meta[name="description"]`).Attr("content")
	assert.Equal(t, "old description", content)
}
