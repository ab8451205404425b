package render

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"museum-gallery/internal/texture"
)

const labelFontSize = 48

// textureCache owns every GPU texture the gallery draws: uploaded pictures keyed by
// artwork key, and rasterized text labels keyed by their text.
type textureCache struct {
	pictures map[string]rl.Texture2D
	// placeholders marks pictures synthesized locally; they get the title drawn on top.
	placeholders map[string]bool
	labels       map[string]rl.Texture2D
	font         rl.Font
}

func newTextureCache() *textureCache {
	return &textureCache{
		pictures:     make(map[string]rl.Texture2D),
		placeholders: make(map[string]bool),
		labels:       make(map[string]rl.Texture2D),
	}
}

// upload moves a decoded picture to the GPU, replacing any previous texture for the key.
func (c *textureCache) upload(r texture.Result) {
	if r.Image == nil {
		return
	}
	tex := uploadRGBA(r.Image)
	if !rl.IsTextureValid(tex) {
		return
	}
	if old, ok := c.pictures[r.Key]; ok {
		rl.UnloadTexture(old)
	}
	c.pictures[r.Key] = tex
	c.placeholders[r.Key] = r.Placeholder
}

// uploadRGBA allocates a texture of the image's size and fills it in one call.
func uploadRGBA(img *image.RGBA) rl.Texture2D {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return rl.Texture2D{}
	}
	blank := rl.GenImageColor(w, h, rl.Blank)
	tex := rl.LoadTextureFromImage(blank)
	rl.UnloadImage(blank)
	if !rl.IsTextureValid(tex) {
		return tex
	}
	pixels := make([]color.RGBA, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < w; x++ {
			pixels = append(pixels, color.RGBA{row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]})
		}
	}
	rl.UpdateTexture(tex, pixels)
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	return tex
}

func (c *textureCache) isPlaceholder(key string) bool {
	return c.placeholders[key]
}

func (c *textureCache) picture(key string) (rl.Texture2D, bool) {
	tex, ok := c.pictures[key]
	return tex, ok
}

// label returns a texture with text rendered white on transparent, creating it on first use.
func (c *textureCache) label(text string) rl.Texture2D {
	if tex, ok := c.labels[text]; ok {
		return tex
	}
	var img *rl.Image
	if c.font.Texture.ID != 0 {
		img = rl.ImageTextEx(c.font, text, labelFontSize, 2, rl.White)
	} else {
		img = rl.ImageText(text, labelFontSize, rl.White)
	}
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	c.labels[text] = tex
	return tex
}

// resetPictures drops every picture and label; called when the gallery is remounted.
func (c *textureCache) resetPictures() {
	for k, tex := range c.pictures {
		rl.UnloadTexture(tex)
		delete(c.pictures, k)
	}
	clear(c.placeholders)
	for k, tex := range c.labels {
		rl.UnloadTexture(tex)
		delete(c.labels, k)
	}
}
