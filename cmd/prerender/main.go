// Command prerender rewrites the document metadata of a static HTML
// shell (a maintenance page, a CDN-cached landing snapshot) from the
// stored SEO and branding settings. Run it after a deploy or whenever
// the settings change.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"meridianmall.com/meridian-web/internal/settings"
	"meridianmall.com/meridian-web/internal/store"
)

func main() {
	var (
		in  string
		out string
	)
	flag.StringVar(&in, "in", "public/index.html", "input HTML shell")
	flag.StringVar(&out, "out", "", "output path (defaults to rewriting in place)")
	flag.Parse()
	if out == "" {
		out = in
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	st := store.New(os.Getenv("MERIDIAN_WEB_STORE_URL"), os.Getenv("MERIDIAN_WEB_STORE_KEY"))
	if !st.Configured() {
		logger.Fatal("store not configured; set MERIDIAN_WEB_STORE_URL and MERIDIAN_WEB_STORE_KEY")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := settings.StoreFetch(st)(ctx)
	if err != nil {
		logger.Fatal("fetch settings", zap.Error(err))
	}
	bundle := settings.Parse(rows)

	src, err := os.ReadFile(in)
	if err != nil {
		logger.Fatal("read shell", zap.String("path", in), zap.Error(err))
	}
	rewritten, err := Rewrite(src, bundle)
	if err != nil {
		logger.Fatal("rewrite", zap.Error(err))
	}
	if err := os.WriteFile(out, rewritten, 0o644); err != nil {
		logger.Fatal("write", zap.String("path", out), zap.Error(err))
	}
	logger.Info("shell rewritten", zap.String("in", in), zap.String("out", out), zap.Int("rows", len(rows)))
}
