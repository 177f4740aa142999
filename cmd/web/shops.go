package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"meridianmall.com/meridian-web/internal/directory"
	mw "meridianmall.com/meridian-web/internal/middleware"
	"meridianmall.com/meridian-web/internal/seo"
)

// ShopsHandler renders the tenant directory, optionally filtered by
// the ?category= query parameter.
func ShopsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.URL.Query().Get("category")

	lang := mw.Lang(r)
	data := struct {
		PageData
		Category   string
		Categories []string
		Tenants    []directory.Tenant
	}{
		PageData:   NewPageData(r, metaFor(r, i18nBundle.T(lang, "shops.title"), i18nBundle.T(lang, "shops.description"))),
		Category:   category,
		Categories: dirClient.Categories(ctx),
		Tenants:    dirClient.List(ctx, category),
	}
	render(w, r, "shops.tmpl", data)
}

// ShopDetailHandler renders a single tenant page.
func ShopDetailHandler(w http.ResponseWriter, r *http.Request) {
	slug := trimSlug(chi.URLParam(r, "slug"))
	tenant, err := dirClient.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			notFound(w, r, "Shop not found")
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	meta := metaFor(r, tenant.Name, tenant.Summary)
	meta.JSONLD = append(meta.JSONLD, seo.JSON(seo.BreadcrumbList([]seo.BreadcrumbItem{
		{Name: "Home", Item: "/"},
		{Name: "Shops", Item: "/shops"},
		{Name: tenant.Name, Item: "/shops/" + tenant.Slug},
	})))

	data := struct {
		PageData
		Tenant directory.Tenant
	}{
		PageData: NewPageData(r, meta),
		Tenant:   tenant,
	}
	render(w, r, "shop_detail.tmpl", data)
}
