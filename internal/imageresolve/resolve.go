package imageresolve

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"museum-gallery/internal/artwork"
)

// Defaults for the public services the resolver points at.
const (
	DefaultProxyBase       = "https://corsproxy.io/?"
	DefaultPlaceholderBase = "https://placehold.co/800x1000/"
	// placeholderTextLimit is the number of title characters embedded in a placeholder.
	placeholderTextLimit = 25
)

// Palette is the fixed set of placeholder background colors (hex RGB, no #).
var Palette = [...]string{"FF6B6B", "4ECDC4", "45B7D1", "96CEB4", "FFEAA7", "DFE6E9"}

// Source tells how a texture URL was obtained.
type Source int

const (
	// Direct is a museum image URL used as-is (Harvard IIIF URLs are already fetchable).
	Direct Source = iota
	// Proxied is a museum image URL routed through the CORS relay.
	Proxied
	// Placeholder is a generated image used when the artwork has no image.
	Placeholder
)

func (s Source) String() string {
	switch s {
	case Direct:
		return "direct"
	case Proxied:
		return "proxied"
	case Placeholder:
		return "placeholder"
	}
	return "unknown"
}

// Texture is the resolved image for one artwork.
type Texture struct {
	URL    string
	Source Source
	// Color is the palette color of the artwork. Set for every artwork so a failed
	// image load can still be replaced with a placeholder of the same color.
	Color string
	// Text is the title excerpt drawn on a placeholder.
	Text string
}

// Resolver decides which image URL to load for an artwork. Resolution never fails.
type Resolver struct {
	ProxyBase       string
	PlaceholderBase string
}

// New returns a resolver using the given bases; empty values fall back to the defaults.
func New(proxyBase, placeholderBase string) Resolver {
	if proxyBase == "" {
		proxyBase = DefaultProxyBase
	}
	if placeholderBase == "" {
		placeholderBase = DefaultPlaceholderBase
	}
	if !strings.HasSuffix(placeholderBase, "/") {
		placeholderBase += "/"
	}
	return Resolver{ProxyBase: proxyBase, PlaceholderBase: placeholderBase}
}

// Resolve returns the texture for a. Artworks with an image use it directly (Harvard) or
// through the proxy (every other museum, including unknown tags). Artworks without one get
// a placeholder whose color depends only on the first character of the ID.
func (r Resolver) Resolve(a artwork.Artwork) Texture {
	color := PaletteColor(a.ID)
	text := PlaceholderText(a.Title)
	if src := a.SourceImage(); src != "" {
		if a.Museum == artwork.MuseumHarvard {
			return Texture{URL: src, Source: Direct, Color: color, Text: text}
		}
		return Texture{URL: r.proxyBase() + encodeURIComponent(src), Source: Proxied, Color: color, Text: text}
	}
	u := r.placeholderBase() + color + "/white?text=" + encodeURIComponent(text)
	return Texture{URL: u, Source: Placeholder, Color: color, Text: text}
}

func (r Resolver) proxyBase() string {
	if r.ProxyBase == "" {
		return DefaultProxyBase
	}
	return r.ProxyBase
}

func (r Resolver) placeholderBase() string {
	if r.PlaceholderBase == "" {
		return DefaultPlaceholderBase
	}
	return r.PlaceholderBase
}

// PaletteColor picks the placeholder color for an artwork ID: the first character's code
// point modulo the palette size. An empty ID uses code point 0.
func PaletteColor(id string) string {
	var code rune
	if id != "" {
		code, _ = utf8.DecodeRuneInString(id)
		if code < 0 {
			code = -code
		}
	}
	return Palette[int(code)%len(Palette)]
}

// PlaceholderText truncates a title to the characters shown on a placeholder.
func PlaceholderText(title string) string {
	if utf8.RuneCountInString(title) <= placeholderTextLimit {
		return title
	}
	return string([]rune(title)[:placeholderTextLimit])
}

// encodeURIComponent escapes s like the browser function of the same name: spaces become
// %20 and the unreserved marks !'()* are left alone.
func encodeURIComponent(s string) string {
	e := url.QueryEscape(s)
	e = strings.ReplaceAll(e, "+", "%20")
	for _, mark := range []struct{ enc, dec string }{
		{"%21", "!"}, {"%27", "'"}, {"%28", "("}, {"%29", ")"}, {"%2A", "*"},
	} {
		e = strings.ReplaceAll(e, mark.enc, mark.dec)
	}
	return e
}
