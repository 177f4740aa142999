package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"meridianmall.com/meridian-web/internal/happenings"
	mw "meridianmall.com/meridian-web/internal/middleware"
	"meridianmall.com/meridian-web/internal/seo"
)

// EventsHandler renders the events calendar.
func EventsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	data := struct {
		PageData
		Events []happenings.Event
	}{
		PageData: NewPageData(r, metaFor(r, i18nBundle.T(lang, "events.title"), i18nBundle.T(lang, "events.description"))),
		Events:   hapClient.Events(r.Context()),
	}
	render(w, r, "events.tmpl", data)
}

// EventDetailHandler renders a single event page.
func EventDetailHandler(w http.ResponseWriter, r *http.Request) {
	slug := trimSlug(chi.URLParam(r, "slug"))
	ev, err := hapClient.Event(r.Context(), slug)
	if err != nil {
		if errors.Is(err, happenings.ErrNotFound) {
			notFound(w, r, "Event not found")
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	meta := metaFor(r, ev.Title, ev.Summary)
	if ld := seo.Event(ev.Title, "/events/"+ev.Slug, ev.ImageURL, ev.Venue, ev.StartsAt, ev.EndsAt); ld != nil {
		meta.JSONLD = append(meta.JSONLD, seo.JSON(ld))
	}

	data := struct {
		PageData
		Event happenings.Event
	}{
		PageData: NewPageData(r, meta),
		Event:    ev,
	}
	render(w, r, "event_detail.tmpl", data)
}

// PromotionsHandler renders currently valid promotions.
func PromotionsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	data := struct {
		PageData
		Promotions []happenings.Promotion
	}{
		PageData:   NewPageData(r, metaFor(r, i18nBundle.T(lang, "promotions.title"), i18nBundle.T(lang, "promotions.description"))),
		Promotions: hapClient.Promotions(r.Context()),
	}
	render(w, r, "promotions.tmpl", data)
}
