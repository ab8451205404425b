package frame

import (
	"unicode/utf8"

	"museum-gallery/internal/artwork"
	"museum-gallery/internal/imageresolve"
	"museum-gallery/internal/layout"
)

// Frame geometry in meters, relative to the frame center.
const (
	Width        = 1.4
	Height       = 1.8
	Depth        = 0.1
	PictureW     = 1.2
	PictureH     = 1.6
	PlateW       = 1.2
	PlateH       = 0.15
	PlateY       = -1.0
	ArtistY      = -1.15
	TitleMaxLen  = 40
	HoveredScale = 1.05
	// ScaleBlend is the fraction of the remaining distance to the target scale covered per tick.
	ScaleBlend = 0.1
)

// Frame is one artwork hung in the gallery. It owns only presentation state (hover and
// the scale animation); selection belongs to the gallery controller.
type Frame struct {
	Artwork artwork.Artwork
	Slot    layout.Slot
	Texture imageresolve.Texture

	hovered bool
	scale   float32
	target  float32
	// onSelect is raised on click; may be nil.
	onSelect func(artwork.Artwork)
}

// New returns an idle frame at full (1.0) scale.
func New(a artwork.Artwork, slot layout.Slot, tex imageresolve.Texture, onSelect func(artwork.Artwork)) *Frame {
	return &Frame{
		Artwork:  a,
		Slot:     slot,
		Texture:  tex,
		scale:    1,
		target:   1,
		onSelect: onSelect,
	}
}

// SetHovered records pointer enter (true) or leave (false) and retargets the scale animation.
func (f *Frame) SetHovered(h bool) {
	f.hovered = h
	if h {
		f.target = HoveredScale
	} else {
		f.target = 1
	}
}

// Hovered reports whether the pointer is over the frame. A hovered frame draws its accent light.
func (f *Frame) Hovered() bool {
	return f.hovered
}

// Tick advances the scale animation by one rendered frame: the current scale moves a fixed
// fraction toward the target, so it approaches it exponentially instead of snapping.
func (f *Frame) Tick() {
	f.scale += (f.target - f.scale) * ScaleBlend
}

// Scale returns the current uniform scale.
func (f *Frame) Scale() float32 {
	return f.scale
}

// Click raises onSelect with the frame's artwork. Local state is untouched.
func (f *Frame) Click() {
	if f.onSelect != nil {
		f.onSelect(f.Artwork)
	}
}

// Title returns the plate text: the artwork title, cut to 40 characters plus "..." when longer.
func (f *Frame) Title() string {
	return TruncateTitle(f.Artwork.Title)
}

// ArtistLine returns the artist caption and whether there is one to draw.
func (f *Frame) ArtistLine() (string, bool) {
	return f.Artwork.Artist, f.Artwork.Artist != ""
}

// TruncateTitle cuts s to TitleMaxLen characters and appends "..." when it was longer.
func TruncateTitle(s string) string {
	if utf8.RuneCountInString(s) <= TitleMaxLen {
		return s
	}
	return string([]rune(s)[:TitleMaxLen]) + "..."
}
