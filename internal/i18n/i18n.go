// Package i18n holds the gallery's label catalogs and registers them with x/text.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every key must exist in; other locales fall back to it.
const BaseLocale = "en"

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog is a set of locale message maps.
type Catalog struct {
	locales map[string]map[string]string
}

var (
	registerOnce sync.Once
	registered   *Catalog
	registerErr  error
)

// Load parses every locales/*.yaml file in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no locale files")
	}
	sort.Strings(paths)
	c := &Catalog{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", p, err)
		}
		want := strings.TrimSuffix(path.Base(p), ".yaml")
		if strings.TrimSpace(f.Locale) != want {
			return nil, fmt.Errorf("i18n: %s: locale %q must match file name", p, f.Locale)
		}
		if len(f.Messages) == 0 {
			return nil, fmt.Errorf("i18n: %s: no messages", p)
		}
		c.locales[want] = f.Messages
	}
	if _, ok := c.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %q missing", BaseLocale)
	}
	return c, nil
}

// Locales returns the available locale names, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for l := range c.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Missing returns keys present in the base locale but absent from locale.
func (c *Catalog) Missing(locale string) []string {
	var out []string
	msgs := c.locales[locale]
	for k := range c.locales[BaseLocale] {
		if _, ok := msgs[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Register installs every message into x/text's default catalog. Keys missing from a
// locale are registered with the base locale's text.
func (c *Catalog) Register() error {
	base := c.locales[BaseLocale]
	for _, locale := range c.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("i18n: parse locale %q: %w", locale, err)
		}
		msgs := c.locales[locale]
		for key, text := range base {
			if v, ok := msgs[key]; ok {
				text = v
			}
			if err := message.SetString(tag, key, text); err != nil {
				return fmt.Errorf("i18n: register %s/%s: %w", locale, key, err)
			}
		}
	}
	return nil
}

// Setup loads the embedded catalogs and registers them once per process.
func Setup() error {
	registerOnce.Do(func() {
		registered, registerErr = Load(localesFS)
		if registerErr == nil {
			registerErr = registered.Register()
		}
	})
	return registerErr
}

// Locales lists the embedded locales, or just BaseLocale when the catalogs failed to load.
func Locales() []string {
	if Setup() != nil || registered == nil {
		return []string{BaseLocale}
	}
	return registered.Locales()
}

// Printer formats gallery labels for one locale.
type Printer struct {
	p *message.Printer
}

// NewPrinter returns a printer for lang (e.g. "es", "en-US"). Unknown or unsupported
// languages fall back to English.
func NewPrinter(lang string) *Printer {
	_ = Setup()
	tag := language.English
	if t, err := language.Parse(strings.TrimSpace(lang)); err == nil {
		supported := []language.Tag{language.English, language.Spanish}
		m := language.NewMatcher(supported)
		_, idx, conf := m.Match(t)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Printer{p: message.NewPrinter(tag)}
}

// T returns the message for key formatted with args.
func (p *Printer) T(key string, args ...any) string {
	if p == nil {
		p = NewPrinter(BaseLocale)
	}
	return p.p.Sprintf(key, args...)
}

// Count returns the "N artworks" label.
func (p *Printer) Count(n int) string {
	if n == 1 {
		return p.T("room.count.one", n)
	}
	return p.T("room.count.other", n)
}

// Museum returns the display name for a museum tag.
func (p *Printer) Museum(tag string) string {
	switch tag {
	case "met":
		return p.T("museum.met")
	case "harvard":
		return p.T("museum.harvard")
	}
	return p.T("museum.other")
}
