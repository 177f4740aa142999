package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/blog"
	"meridianmall.com/meridian-web/internal/cinema"
	"meridianmall.com/meridian-web/internal/contact"
	"meridianmall.com/meridian-web/internal/directory"
	"meridianmall.com/meridian-web/internal/happenings"
	"meridianmall.com/meridian-web/internal/i18n"
	"meridianmall.com/meridian-web/internal/inject"
	"meridianmall.com/meridian-web/internal/settings"
	"meridianmall.com/meridian-web/internal/store"
)

// setupApp wires the full handler stack against an unconfigured store
// (fallback content) and the given settings fetch.
func setupApp(t *testing.T, fetch settings.FetchFunc) http.Handler {
	t.Helper()

	templatesDir = "../../templates"
	localesDir = "../../locales"
	blogDir = "../../content/blog"
	publicDir = "../../public"
	devMode = false
	logger = zap.NewNop()

	var err error
	i18nBundle, err = i18n.Load(localesDir, "en", []string{"en", "es"})
	require.NoError(t, err)

	st := store.New("", "")
	settingsSvc = settings.NewService(fetch, settings.WithLogger(logger))
	scriptReg = inject.NewRegistry()
	stop := inject.Bind(settingsSvc, scriptReg)
	t.Cleanup(stop)

	dirClient = directory.NewClient(st, logger)
	t.Cleanup(dirClient.Close)
	hapClient = happenings.NewClient(st, logger)
	t.Cleanup(hapClient.Close)
	cineClient = cinema.NewClient(st, logger)
	t.Cleanup(cineClient.Close)
	blogClient = blog.NewClient(st, blogDir, logger)
	t.Cleanup(blogClient.Close)
	contactSvc = contact.NewService(st, logger)

	tmplCache, err = parseTemplates()
	require.NoError(t, err)

	return newRouter()
}

func strp(s string) *string { return &s }

func settingsFetch(rows []settings.Row) settings.FetchFunc {
	return func(ctx context.Context) ([]settings.Row, error) {
		return rows, nil
	}
}

func failingFetch(ctx context.Context) ([]settings.Row, error) {
	return nil, errors.New("store down")
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := setupApp(t, failingFetch)
	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHomeUsesRemoteSEOAndAnalytics(t *testing.T) {
	h := setupApp(t, settingsFetch([]settings.Row{
		{Key: "settings_seo", Value: strp(`{"meta_title":"Shop Dine Play"}`)},
		{Key: "settings_analytics", Value: strp(`{"gtm_container_id":"GTM-TEST1"}`)},
	}))

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Shop Dine Play</title>")
	assert.Contains(t, body, "GTM-TEST1")
	// GTM emits the loader in head and a noscript frame after <body>
	assert.Contains(t, body, "googletagmanager.com/gtm.js")
	assert.Contains(t, body, "googletagmanager.com/ns.html?id=GTM-TEST1")
}

func TestInnerPagesKeepOwnTitles(t *testing.T) {
	h := setupApp(t, settingsFetch([]settings.Row{
		{Key: "settings_seo", Value: strp(`{"meta_title":"Shop Dine Play"}`)},
	}))

	rec := get(t, h, "/shops")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Shops &amp; Dining | Meridian Mall</title>")
	assert.NotContains(t, body, "<title>Shop Dine Play</title>")
}

func TestHomeFallsBackWhenSettingsUnavailable(t *testing.T) {
	h := setupApp(t, failingFetch)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Meridian Mall</title>")
	assert.NotContains(t, body, "googletagmanager.com")
}

func TestCustomScriptInjection(t *testing.T) {
	h := setupApp(t, settingsFetch([]settings.Row{
		{
			Key:            "partner_pixel",
			Value:          strp(`console.log("hi")`),
			SettingType:    "script",
			InjectionPoint: "body_end",
		},
	}))

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	idx := strings.Index(body, `console.log("hi")`)
	require.Greater(t, idx, 0)
	// lands after the footer, in the body_end slot
	assert.Greater(t, idx, strings.Index(body, "</footer>"))
}

func TestShopsFallbackDirectory(t *testing.T) {
	h := setupApp(t, failingFetch)

	rec := get(t, h, "/shops")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Atlas Books")
	assert.Contains(t, body, "Verde Juice Bar")

	rec = get(t, h, "/shops/atlas-books")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Atlas Books")

	rec = get(t, h, "/shops/no-such-shop")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestBlogServesLocalMarkdown(t *testing.T) {
	h := setupApp(t, failingFetch)

	rec := get(t, h, "/blog")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "summer night market")

	rec = get(t, h, "/blog/summer-night-market-returns")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "east terrace")
}

func TestBlogPostConditionalGet(t *testing.T) {
	h := setupApp(t, failingFetch)

	rec := get(t, h, "/blog/summer-night-market-returns")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=600", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("Last-Modified"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/blog/summer-night-market-returns", nil)
	req.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusNotModified, rec2.Code)
}

func TestLocaleNegotiation(t *testing.T) {
	h := setupApp(t, failingFetch)

	req := httptest.NewRequest(http.MethodGet, "/shops", nil)
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tiendas y Restaurantes")
}

func TestContactSubmitRequiresCSRF(t *testing.T) {
	h := setupApp(t, failingFetch)

	form := url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Hello"},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestContactSubmitFlow(t *testing.T) {
	h := setupApp(t, failingFetch)

	// First GET establishes the session and CSRF cookies.
	first := get(t, h, "/contact")
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	var token string
	for _, c := range cookies {
		if c.Name == "csrf_token" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	form := url.Values{
		"name":       {"Ada"},
		"email":      {"ada@example.com"},
		"message":    {"When does the night market start?"},
		"csrf_token": {token},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thanks for your message")

	// Missing fields re-render the form with problems.
	form.Set("email", "not-an-email")
	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not look right")
}

func TestRefreshEndpointNeedsToken(t *testing.T) {
	h := setupApp(t, failingFetch)

	req := httptest.NewRequest(http.MethodPost, "/internal/settings/refresh", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	t.Setenv("MERIDIAN_WEB_REFRESH_TOKEN", "sekrit")
	req = httptest.NewRequest(http.MethodPost, "/internal/settings/refresh", nil)
	req.Header.Set("X-Refresh-Token", "sekrit")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
