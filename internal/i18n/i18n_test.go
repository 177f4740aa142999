package i18n

import "testing"

func TestResolvePrefersSupportedByQuality(t *testing.T) {
	b := &Bundle{
		dict:      map[string]map[string]string{"en": {}},
		fallback:  "en",
		supported: map[string]struct{}{"en": {}, "es": {}},
	}
	if got := b.Resolve("es-MX,es;q=0.9,en;q=0.5"); got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
	if got := b.Resolve("fr-FR,de;q=0.8"); got != "en" {
		t.Fatalf("expected fallback en, got %q", got)
	}
}
