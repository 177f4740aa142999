package main

import (
	"net/http"

	"meridianmall.com/meridian-web/internal/cinema"
	mw "meridianmall.com/meridian-web/internal/middleware"
	"meridianmall.com/meridian-web/internal/seo"
)

// CinemaHandler renders the now-showing programme with upcoming
// showtimes per title.
func CinemaHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	movies := cineClient.NowShowing(r.Context())

	meta := metaFor(r, i18nBundle.T(lang, "cinema.title"), i18nBundle.T(lang, "cinema.description"))
	for _, m := range movies {
		if ld := seo.Movie(m.Title, "/cinema#"+m.Slug, m.PosterURL, m.RuntimeMinutes); ld != nil {
			meta.JSONLD = append(meta.JSONLD, seo.JSON(ld))
		}
	}

	data := struct {
		PageData
		Movies []cinema.Movie
	}{
		PageData: NewPageData(r, meta),
		Movies:   movies,
	}
	render(w, r, "cinema.tmpl", data)
}
