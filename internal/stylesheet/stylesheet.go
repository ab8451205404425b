// Package stylesheet parses the overlay CSS and resolves it into draw-ready styles.
// Only .class and #id selectors are matched; at-rules are skipped.
package stylesheet

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".panel" or "#menu"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Sheet is a list of rules. Later rules override earlier ones.
type Sheet struct {
	Rules []Rule
}

// Parse reads a stylesheet. Selector lists ("a, b") become one rule per selector.
func Parse(content string) (*Sheet, error) {
	p := css.NewParser(parse.NewInputString(content), false)
	sheet := &Sheet{}
	var open []int
	depth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("stylesheet: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			if depth > 0 {
				depth--
			}
		case css.BeginRulesetGrammar:
			open = open[:0]
			if depth > 0 {
				continue
			}
			for _, sel := range selectors(p.Values()) {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: map[string]string{}})
				open = append(open, len(sheet.Rules)-1)
			}
		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			value := joinTokens(p.Values())
			for _, i := range open {
				sheet.Rules[i].Props[name] = value
			}
		case css.EndRulesetGrammar:
			open = open[:0]
		}
	}
}

func selectors(tokens []css.Token) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, t := range tokens {
		if t.TokenType == css.CommaToken {
			flush()
			continue
		}
		b.Write(t.Data)
	}
	flush()
	return out
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

// Match merges the properties of every rule whose selector names class or id, in sheet order.
func (s *Sheet) Match(class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		sel := rule.Selector
		matches := false
		switch {
		case strings.HasPrefix(sel, "."):
			matches = class != "" && hasClass(class, sel[1:])
		case strings.HasPrefix(sel, "#"):
			matches = id != "" && id == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// hasClass reports whether the space-separated class list contains name.
func hasClass(list, name string) bool {
	for _, c := range strings.Fields(list) {
		if c == name {
			return true
		}
	}
	return false
}

// Style holds resolved values used for drawing.
// LeftPct/TopPct: 0-100 for percentage positioning; -1 means use Left/Top as pixels.
type Style struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
}

// Default returns a transparent, borderless style with white text.
func Default() Style {
	return Style{
		Color:    color.RGBA{255, 255, 255, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 20,
	}
}

// Resolve builds a Style from a merged property map.
func Resolve(props map[string]string) Style {
	out := Default()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			// "1px solid #333": the color is the last field.
			fields := strings.Fields(v)
			if len(fields) == 0 {
				continue
			}
			if c, ok := ParseColor(fields[len(fields)-1]); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA and rgba(r,g,b,a) with a in 0-1.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	black := color.RGBA{0, 0, 0, 255}
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return black, false
		}
	}
	d := func(i int) uint8 {
		v, _ := hexDigit(hex[i])
		return v
	}
	switch len(hex) {
	case 3:
		return color.RGBA{d(0) * 17, d(1) * 17, d(2) * 17, 255}, true
	case 6:
		return color.RGBA{d(0)<<4 | d(1), d(2)<<4 | d(3), d(4)<<4 | d(5), 255}, true
	case 8:
		return color.RGBA{d(0)<<4 | d(1), d(2)<<4 | d(3), d(4)<<4 | d(5), d(6)<<4 | d(7)}, true
	}
	return black, false
}

func parseRGBFunc(s string) (color.RGBA, bool) {
	black := color.RGBA{0, 0, 0, 255}
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return black, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return black, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return black, false
		}
		ch[i] = uint8(n)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return black, false
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.RGBA{ch[0], ch[1], ch[2], alpha}, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0-100).
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}
