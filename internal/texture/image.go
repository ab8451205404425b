package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"
)

// MaxEdge is the longest texture side uploaded to the GPU.
const MaxEdge = 1024

// Placeholder texture size, matching the picture's 3:4 aspect.
const (
	PlaceholderW = 300
	PlaceholderH = 400
)

// Decode decodes a jpeg, png, gif or webp image and scales it down so its longest side is
// at most maxEdge (MaxEdge when <= 0). Aspect ratio is kept; smaller images are not enlarged.
func Decode(data []byte, maxEdge int) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return Fit(img, maxEdge), nil
}

// Fit returns img as RGBA with its longest side at most maxEdge.
func Fit(img image.Image, maxEdge int) *image.RGBA {
	if maxEdge <= 0 {
		maxEdge = MaxEdge
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return clone.AsRGBA(img)
	}
	if w >= h {
		h = max(1, h*maxEdge/w)
		w = maxEdge
	} else {
		w = max(1, w*maxEdge/h)
		h = maxEdge
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// ParseHex parses "RRGGBB" (with or without '#') into an opaque color. Invalid input is
// mid grey.
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Placeholder paints a local stand-in picture: the palette color with a darker mat
// around the edge. Text is drawn by the renderer.
func Placeholder(hex string) *image.RGBA {
	c := ParseHex(hex)
	rect := image.Rect(0, 0, PlaceholderW, PlaceholderH)
	base := image.NewRGBA(rect)
	draw.Draw(base, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
	out := adjust.Brightness(base, -0.25)
	draw.Draw(out, rect.Inset(PlaceholderW/12), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return out
}
