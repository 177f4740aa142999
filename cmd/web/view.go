package main

import (
	"net/http"
	"time"

	mw "meridianmall.com/meridian-web/internal/middleware"
	"meridianmall.com/meridian-web/internal/nav"
	"meridianmall.com/meridian-web/internal/seo"
	"meridianmall.com/meridian-web/internal/settings"
)

// PageData carries everything the base layout needs. Page handlers
// embed it in their own data structs.
type PageData struct {
	Lang        string
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Meta        seo.Meta
	General     settings.GeneralSettings
	Contact     settings.ContactSettings
	Social      settings.SocialSettings
	CSRFToken   string
	Year        int
}

// NewPageData builds the shared layout data for the current request.
// The settings bundle backs branding and footer contact details; when
// the remote store has never answered, compiled defaults are shown.
func NewPageData(r *http.Request, meta seo.Meta) PageData {
	b := settingsSvc.LoadAll(r.Context())
	d := PageData{
		Lang:        mw.Lang(r),
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		Meta:        meta,
		General:     b.General,
		Contact:     b.Contact,
		Social:      b.Social,
		Year:        time.Now().Year(),
	}
	if s := mw.GetSession(r); s != nil {
		d.CSRFToken = s.CSRFToken
	}
	return d
}

// metaFor builds metadata for a non-home page. These pages own their
// titles; the remote settings_seo group only ever applies to the home
// page, so only the site name for the suffix comes from settings.
func metaFor(r *http.Request, title, description string) seo.Meta {
	b := settingsSvc.LoadAll(r.Context())
	full := b.General.SiteName
	if title != "" {
		full = title + " | " + b.General.SiteName
	}
	return seo.Meta{
		Title:       full,
		Description: description,
		OG: seo.OpenGraph{
			Title:       full,
			Description: description,
			Type:        "website",
			SiteName:    b.General.SiteName,
		},
	}
}
