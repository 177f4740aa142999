package main

import (
	"net/http"

	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/contact"
	mw "meridianmall.com/meridian-web/internal/middleware"
)

type contactPage struct {
	PageData
	Form     contact.Message
	Problems map[string]string
	Notice   string
}

// ContactHandler renders the contact form alongside the mall's
// address, phone and map from the settings bundle.
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	data := contactPage{
		PageData: NewPageData(r, metaFor(r, i18nBundle.T(lang, "contact.title"), i18nBundle.T(lang, "contact.description"))),
	}
	render(w, r, "contact.tmpl", data)
}

// ContactSubmitHandler validates and records a submitted message.
// Validation problems re-render the form with the visitor's input
// preserved; a store outage shows a retry notice, not an error page.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	lang := mw.Lang(r)
	msg := contact.Message{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Subject: r.PostFormValue("subject"),
		Body:    r.PostFormValue("message"),
	}

	base := NewPageData(r, metaFor(r, i18nBundle.T(lang, "contact.title"), i18nBundle.T(lang, "contact.description")))

	if problems := msg.Validate(); len(problems) > 0 {
		renderStatus(w, r, "contact.tmpl", contactPage{
			PageData: base,
			Form:     msg,
			Problems: problems,
		}, http.StatusUnprocessableEntity)
		return
	}

	id, err := contactSvc.Submit(r.Context(), msg)
	if err != nil {
		logger.Warn("contact submit failed", zap.Error(err))
		renderStatus(w, r, "contact.tmpl", contactPage{
			PageData: base,
			Form:     msg,
			Notice:   i18nBundle.T(lang, "contact.retry"),
		}, http.StatusServiceUnavailable)
		return
	}

	data := struct {
		PageData
		Reference string
	}{
		PageData:  NewPageData(r, metaFor(r, i18nBundle.T(lang, "contact.thanks_title"), "")),
		Reference: id,
	}
	render(w, r, "contact_thanks.tmpl", data)
}
