package seo

import "meridianmall.com/meridian-web/internal/settings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the per-page document metadata. Every page builds its own;
// only the home page derives it from the remote settings bundle.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// ForHome maps the settings SEO group onto the home page metadata.
// Other pages supply their own Meta and are never overwritten by
// these backend-sourced values.
func ForHome(s settings.SEOSettings, g settings.GeneralSettings) Meta {
	m := Meta{
		Title:       s.MetaTitle,
		Description: s.MetaDescription,
		Keywords:    s.MetaKeywords,
		Canonical:   s.CanonicalURL,
		Robots:      s.Robots,
		OG: OpenGraph{
			Title:       firstNonEmpty(s.OGTitle, s.MetaTitle),
			Description: firstNonEmpty(s.OGDescription, s.MetaDescription),
			Image:       s.OGImage,
			Type:        s.OGType,
			URL:         s.CanonicalURL,
			SiteName:    g.SiteName,
		},
		Twitter: Twitter{
			Card:  s.TwitterCard,
			Site:  s.TwitterSite,
			Image: firstNonEmpty(s.TwitterImage, s.OGImage),
		},
	}
	if org := Organization(g.SiteName, s.CanonicalURL, g.LogoLightURL); org != nil {
		m.JSONLD = append(m.JSONLD, JSON(org))
	}
	return m
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
