package ui

import (
	_ "embed"
	"os"

	"museum-gallery/internal/stylesheet"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed gallery.css
var defaultCSS string

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order. Resolved styles are cached and only recomputed when the
// sheet or the node list changes.
type Engine struct {
	sheet        *stylesheet.Sheet
	nodes        []*Node
	cachedStyles []stylesheet.Style
	cacheValid   bool
	font         rl.Font
}

// New creates an engine styled with the built-in gallery stylesheet.
func New() *Engine {
	e := &Engine{}
	if sheet, err := stylesheet.Parse(defaultCSS); err == nil {
		e.sheet = sheet
	}
	return e
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := stylesheet.Parse(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly.
func (e *Engine) SetStylesheet(sheet *stylesheet.Sheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// LoadFont loads a TTF font for text rendering. Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, 64, nil)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when none was loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// SetNodes replaces all nodes. Passing the same slice again keeps the style cache.
func (e *Engine) SetNodes(nodes []*Node) {
	if sameNodes(e.nodes, nodes) {
		return
	}
	e.nodes = append(e.nodes[:0], nodes...)
	e.cacheValid = false
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Update routes a left click to the topmost enabled node under the mouse.
// It reports whether the click was consumed so the 3D scene can ignore it.
func (e *Engine) Update() bool {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}
	m := rl.GetMousePosition()
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if !rl.CheckCollisionPointRec(m, n.Bounds) {
			continue
		}
		if n.OnClick != nil && !n.Disabled {
			n.OnClick()
		}
		if n.Type == "panel" || n.OnClick != nil {
			return true
		}
	}
	return false
}

func (e *Engine) styles() []stylesheet.Style {
	if !e.cacheValid {
		e.cachedStyles = make([]stylesheet.Style, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = stylesheet.Resolve(e.sheet.Match(n.classes(), n.ID))
		}
		e.cacheValid = true
	}
	return e.cachedStyles
}

// Draw lays out and draws all nodes. Percent positions are resolved against the screen,
// and nodes with a Parent are offset by the parent's top-left corner.
func (e *Engine) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	styles := e.styles()
	for i, n := range e.nodes {
		style := styles[i]
		w, h := style.Width, style.Height
		x, y := style.Left, style.Top
		if style.LeftPct >= 0 {
			x = (screenW - w) * style.LeftPct / 100
		}
		if style.TopPct >= 0 {
			y = (screenH - h) * style.TopPct / 100
		}
		if n.Parent != nil {
			x += int32(n.Parent.Bounds.X)
			y += int32(n.Parent.Bounds.Y)
			if w == 0 {
				w = int32(n.Parent.Bounds.Width) - 2*style.Left
			}
		}
		y += n.OffsetY
		if h == 0 && n.Text != "" {
			h = style.FontSize + 2*style.Padding
		}
		n.Bounds = rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))

		bg := rl.Color(style.Background)
		fg := rl.Color(style.Color)
		if n.Disabled {
			bg.A /= 2
			fg.A /= 2
		}
		if bg.A > 0 {
			rl.DrawRectangle(x, y, w, h, bg)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, rl.Color(style.Border))
		}
		if n.Text != "" {
			pos := rl.NewVector2(float32(x+style.Padding), float32(y+style.Padding))
			if e.font.Texture.ID != 0 {
				rl.DrawTextEx(e.font, n.Text, pos, float32(style.FontSize), 1, fg)
			} else {
				rl.DrawText(n.Text, int32(pos.X), int32(pos.Y), style.FontSize, fg)
			}
		}
	}
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *stylesheet.Sheet {
	return e.sheet
}
