package main

import (
	"net/http"

	"meridianmall.com/meridian-web/internal/cinema"
	"meridianmall.com/meridian-web/internal/directory"
	"meridianmall.com/meridian-web/internal/happenings"
	"meridianmall.com/meridian-web/internal/seo"
)

// HomeHandler renders the landing page. It is the only page whose
// document metadata comes from the remote settings bundle; until the
// bundle has loaded once the page keeps its compiled-in title rather
// than flashing placeholder values.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		notFound(w, r, "Not found")
		return
	}
	ctx := r.Context()

	b := settingsSvc.LoadAll(ctx)
	var meta seo.Meta
	if settingsSvc.Loaded() {
		meta = seo.ForHome(b.SEO, b.General)
		if site := seo.WebSite(b.General.SiteName, b.SEO.CanonicalURL, ""); site != nil {
			meta.JSONLD = append(meta.JSONLD, seo.JSON(site))
		}
	} else {
		meta = metaFor(r, "", "")
	}

	data := struct {
		PageData
		Tagline    string
		Featured   []directory.Tenant
		Upcoming   []happenings.Event
		NowShowing []cinema.Movie
	}{
		PageData:   NewPageData(r, meta),
		Tagline:    b.General.Tagline,
		Featured:   dirClient.Featured(ctx),
		Upcoming:   hapClient.Upcoming(ctx, 3),
		NowShowing: cineClient.NowShowing(ctx),
	}
	if len(data.NowShowing) > 3 {
		data.NowShowing = data.NowShowing[:3]
	}
	render(w, r, "home.tmpl", data)
}
