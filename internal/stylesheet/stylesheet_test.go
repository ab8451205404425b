package stylesheet

import (
	"image/color"
	"testing"
)

const overlayCSS = `
/* selection panel */
.panel, #favorites {
  background: #1e1c1a;
  border: 1px solid #c8a050;
  width: 420px;
  left: 100%;
  top: 40;
}
@media (max-width: 600px) {
  .panel { width: 200px; }
}
.panel-title { color: #FFF; font-size: 28px; padding: 12px }
.panel { height: 300px }
`

func TestParseRulesAndSelectorLists(t *testing.T) {
	sheet, err := Parse(overlayCSS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sheet.Rules) != 4 {
		t.Fatalf("got %d rules, want 4: %+v", len(sheet.Rules), sheet.Rules)
	}
	if sheet.Rules[0].Selector != ".panel" || sheet.Rules[1].Selector != "#favorites" {
		t.Errorf("selector list split = %q, %q", sheet.Rules[0].Selector, sheet.Rules[1].Selector)
	}
	if got := sheet.Rules[1].Props["border"]; got != "1px solid #c8a050" {
		t.Errorf("border = %q", got)
	}
}

func TestMatchSkipsAtRulesAndLaterWins(t *testing.T) {
	sheet, err := Parse(overlayCSS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	props := sheet.Match("panel", "")
	if props["width"] != "420px" {
		t.Errorf("width = %q, media rule must be ignored", props["width"])
	}
	if props["height"] != "300px" {
		t.Errorf("height = %q", props["height"])
	}
	if got := sheet.Match("card panel-title", ""); got["font-size"] != "28px" {
		t.Errorf("multi-class match = %v", got)
	}
	if got := sheet.Match("", "favorites"); got["width"] != "420px" {
		t.Errorf("id match = %v", got)
	}
	if got := sheet.Match("other", ""); len(got) != 0 {
		t.Errorf("unexpected match %v", got)
	}
	var nilSheet *Sheet
	if got := nilSheet.Match("panel", ""); len(got) != 0 {
		t.Errorf("nil sheet match = %v", got)
	}
}

func TestResolve(t *testing.T) {
	sheet, err := Parse(overlayCSS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := Resolve(sheet.Match("panel", ""))
	if s.Background != (color.RGBA{0x1e, 0x1c, 0x1a, 255}) {
		t.Errorf("background = %v", s.Background)
	}
	if !s.HasBorder || s.Border != (color.RGBA{0xc8, 0xa0, 0x50, 255}) {
		t.Errorf("border = %v %v", s.HasBorder, s.Border)
	}
	if s.Width != 420 || s.Height != 300 {
		t.Errorf("size = %dx%d", s.Width, s.Height)
	}
	if s.LeftPct != 100 || s.TopPct != -1 || s.Top != 40 {
		t.Errorf("position = left%% %d top%% %d top %d", s.LeftPct, s.TopPct, s.Top)
	}

	title := Resolve(sheet.Match("panel-title", ""))
	if title.FontSize != 28 || title.Padding != 12 {
		t.Errorf("title font %d padding %d", title.FontSize, title.Padding)
	}
	if title.Color != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("title color = %v", title.Color)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#4ECDC4", color.RGBA{0x4e, 0xcd, 0xc4, 255}, true},
		{"#00000080", color.RGBA{0, 0, 0, 0x80}, true},
		{"rgba(10, 20, 30, 0.5)", color.RGBA{10, 20, 30, 128}, true},
		{"rgb(1,2,3)", color.RGBA{1, 2, 3, 255}, true},
		{"rgb(1,2,300)", color.RGBA{0, 0, 0, 255}, false},
		{"#12", color.RGBA{0, 0, 0, 255}, false},
		{"#zzz", color.RGBA{0, 0, 0, 255}, false},
		{"red", color.RGBA{0, 0, 0, 255}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePxAndPct(t *testing.T) {
	if n, ok := ParsePx(" 12px "); !ok || n != 12 {
		t.Errorf("ParsePx = %d, %v", n, ok)
	}
	if _, ok := ParsePx("1em"); ok {
		t.Error("ParsePx(1em) should fail")
	}
	if n, ok := ParsePct("50%"); !ok || n != 50 {
		t.Errorf("ParsePct = %d, %v", n, ok)
	}
	if _, ok := ParsePct("120%"); ok {
		t.Error("ParsePct(120%) should fail")
	}
}
