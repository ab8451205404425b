package i18n

import (
	"slices"
	"testing"
	"testing/fstest"
)

func TestEmbeddedCatalogsComplete(t *testing.T) {
	c, err := Load(localesFS)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, l := range c.Locales() {
		if missing := c.Missing(l); len(missing) > 0 {
			t.Errorf("locale %s is missing %v", l, missing)
		}
	}
}

func TestPrinterLocales(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "7 artworks"},
		{"es", "7 obras"},
		{"es-MX", "7 obras"},
		{"", "7 artworks"},
		{"zz-invalid-tag!", "7 artworks"},
	}
	for _, tt := range tests {
		if got := NewPrinter(tt.lang).Count(7); got != tt.want {
			t.Errorf("Count(7) for %q = %q, want %q", tt.lang, got, tt.want)
		}
	}
	if got := NewPrinter("en").Count(1); got != "1 artwork" {
		t.Errorf("singular count = %q", got)
	}
}

func TestMuseumNames(t *testing.T) {
	p := NewPrinter("en")
	if p.Museum("met") != "The Met" || p.Museum("louvre") != "Unknown museum" {
		t.Fatalf("unexpected museum names %q %q", p.Museum("met"), p.Museum("louvre"))
	}
}

func TestLoadRejectsMismatchedLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: fr\nmessages:\n  a: b\n")},
	}
	if _, err := Load(fsys); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/es.yaml": {Data: []byte("locale: es\nmessages:\n  a: b\n")},
	}
	if _, err := Load(fsys); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestPackageLocales(t *testing.T) {
	got := Locales()
	if !slices.Contains(got, "en") || !slices.Contains(got, "es") {
		t.Errorf("Locales() = %v, want en and es", got)
	}
}

func TestConsoleMessagesLocalized(t *testing.T) {
	tests := []struct {
		lang, key string
		args      []any
		want      string
	}{
		{"en", "console.signedout", nil, "Signed out"},
		{"es", "console.signedout", nil, "Sesión cerrada"},
		{"es", "console.favorites", []any{3}, "Colgando tus 3 favoritos"},
	}
	for _, tt := range tests {
		if got := NewPrinter(tt.lang).T(tt.key, tt.args...); got != tt.want {
			t.Errorf("%s %s = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}
}
