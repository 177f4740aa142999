package main

import (
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/blog"
	"meridianmall.com/meridian-web/internal/cinema"
	"meridianmall.com/meridian-web/internal/contact"
	"meridianmall.com/meridian-web/internal/directory"
	"meridianmall.com/meridian-web/internal/format"
	"meridianmall.com/meridian-web/internal/happenings"
	"meridianmall.com/meridian-web/internal/i18n"
	"meridianmall.com/meridian-web/internal/inject"
	mw "meridianmall.com/meridian-web/internal/middleware"
	"meridianmall.com/meridian-web/internal/settings"
	"meridianmall.com/meridian-web/internal/store"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	localesDir   = "locales"
	blogDir      = "content/blog"
	// devMode is set in main() based on env: MERIDIAN_WEB_DEV (preferred) or DEV (fallback)
	devMode   bool
	tmplCache map[string]*template.Template

	logger      *zap.Logger
	i18nBundle  *i18n.Bundle
	settingsSvc *settings.Service
	scriptReg   *inject.Registry
	dirClient   *directory.Client
	hapClient   *happenings.Client
	cineClient  *cinema.Client
	blogClient  *blog.Client
	contactSvc  *contact.Service
)

func main() {
	var (
		addr     string
		tmplPath string
		pubPath  string
	)
	// Port resolution: prefer MERIDIAN_WEB_PORT, then PORT, else 8080
	port := os.Getenv("MERIDIAN_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	devMode = os.Getenv("MERIDIAN_WEB_DEV") != "" || os.Getenv("DEV") != ""

	var err error
	if devMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(localesDir, "en", []string{"en", "es"})
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}

	st := store.New(os.Getenv("MERIDIAN_WEB_STORE_URL"), os.Getenv("MERIDIAN_WEB_STORE_KEY"))
	if !st.Configured() {
		logger.Warn("store not configured, serving fallback content; set MERIDIAN_WEB_STORE_URL and MERIDIAN_WEB_STORE_KEY")
	}

	settingsSvc = settings.NewService(settings.StoreFetch(st), settings.WithLogger(logger))
	scriptReg = inject.NewRegistry()
	stopInject := inject.Bind(settingsSvc, scriptReg)
	defer stopInject()

	dirClient = directory.NewClient(st, logger)
	defer dirClient.Close()
	hapClient = happenings.NewClient(st, logger)
	defer hapClient.Close()
	cineClient = cinema.NewClient(st, logger)
	defer cineClient.Close()
	blogClient = blog.NewClient(st, blogDir, logger)
	defer blogClient.Close()
	contactSvc = contact.NewService(st, logger)

	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("web listening", zap.String("addr", addr), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(mw.Session)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/shops", ShopsHandler)
	r.Get("/shops/{slug}", ShopDetailHandler)
	r.Get("/events", EventsHandler)
	r.Get("/events/{slug}", EventDetailHandler)
	r.Get("/promotions", PromotionsHandler)
	r.Get("/cinema", CinemaHandler)
	r.Get("/blog", BlogIndexHandler)
	r.Get("/blog/{slug}", BlogPostHandler)
	r.Get("/contact", ContactHandler)
	r.Post("/contact", ContactSubmitHandler)
	r.Post("/internal/settings/refresh", RefreshSettingsHandler)
	return r
}

// RefreshSettingsHandler invalidates the settings cache and reloads.
// Used by the CMS webhook after an editor saves settings.
func RefreshSettingsHandler(w http.ResponseWriter, r *http.Request) {
	token := os.Getenv("MERIDIAN_WEB_REFRESH_TOKEN")
	if token == "" || r.Header.Get("X-Refresh-Token") != token {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	settingsSvc.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// parseTemplates builds one template set per page file: the shared
// layout and partials plus that page's content block.
func parseTemplates() (map[string]*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		"fmtDate":      format.Date,
		"fmtTime":      format.Time,
		"fmtDateRange": format.DateRange,
		// JSON-LD payloads are produced by encoding/json; emit them verbatim
		// inside <script type="application/ld+json"> blocks.
		"rawjs": func(s string) template.JS { return template.JS(s) },
		// Map embeds are editor-authored iframe HTML from the settings
		// bundle; the admin surface is the trust boundary.
		"rawhtml": func(s string) template.HTML { return template.HTML(s) },
		"fragments": func(point string) template.HTML {
			if scriptReg == nil {
				return ""
			}
			return scriptReg.Fragments(settings.Point(point))
		},
	}
	shared := []string{
		filepath.Join(templatesDir, "base.tmpl"),
		filepath.Join(templatesDir, "partials", "nav.tmpl"),
		filepath.Join(templatesDir, "partials", "footer.tmpl"),
	}
	pages, err := filepath.Glob(filepath.Join(templatesDir, "pages", "*.tmpl"))
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found under %s", templatesDir)
	}
	cache := map[string]*template.Template{}
	for _, page := range pages {
		files := append(append([]string{}, shared...), page)
		t, err := template.New("base.tmpl").Funcs(funcMap).ParseFiles(files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		cache[filepath.Base(page)] = t
	}
	return cache, nil
}

// render executes the named page within the base layout. In dev mode,
// templates are reparsed on each request.
func render(w http.ResponseWriter, r *http.Request, page string, data any) {
	renderStatus(w, r, page, data, http.StatusOK)
}

func renderStatus(w http.ResponseWriter, r *http.Request, page string, data any, status int) {
	cache := tmplCache
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		cache = tc
	}
	t, ok := cache[page]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown template %q", page), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		logger.Error("template exec", zap.String("page", page), zap.Error(err))
	}
}

func notFound(w http.ResponseWriter, r *http.Request, meta string) {
	data := NewPageData(r, metaFor(r, meta, ""))
	renderStatus(w, r, "notfound.tmpl", struct {
		PageData
	}{data}, http.StatusNotFound)
}

func trimSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
