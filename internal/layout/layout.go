package layout

import "github.com/chewxy/math32"

// Default gallery dimensions, in meters.
const (
	DefaultArtworksPerWall = 6
	DefaultWallSpacing     = 6
	DefaultFrameSpacing    = 2.2
	DefaultFrameHeight     = 1.6
)

// Wall is one of the four room walls artworks are hung on. Walls are filled in this order;
// the fifth wall's worth of artworks wraps back to Front.
type Wall int

const (
	Front Wall = iota
	Right
	Left
	Back
)

// wallCount is the number of distinct wall orientations.
const wallCount = 4

func (w Wall) String() string {
	switch w {
	case Front:
		return "front"
	case Right:
		return "right"
	case Left:
		return "left"
	case Back:
		return "back"
	}
	return "unknown"
}

// Slot is the placement of one artwork: frame center and Euler rotation (radians, XYZ).
// Only Y (yaw) is ever non-zero.
type Slot struct {
	Index    int        `yaml:"index"`
	Wall     Wall       `yaml:"-"`
	Position [3]float32 `yaml:"position,flow"`
	Rotation [3]float32 `yaml:"rotation,flow"`
}

// Yaw returns the slot's rotation about the vertical axis.
func (s Slot) Yaw() float32 {
	return s.Rotation[1]
}

// Engine maps artwork indices to wall slots. The zero value is not usable; start from Default.
type Engine struct {
	ArtworksPerWall int
	WallSpacing     float32 // distance from room center to each hanging line
	FrameSpacing    float32 // center-to-center distance between neighbours on a wall
	FrameHeight     float32 // frame center height above the floor
}

// Default returns the engine with the gallery's standard dimensions.
func Default() Engine {
	return Engine{
		ArtworksPerWall: DefaultArtworksPerWall,
		WallSpacing:     DefaultWallSpacing,
		FrameSpacing:    DefaultFrameSpacing,
		FrameHeight:     DefaultFrameHeight,
	}
}

// Place returns the slot for the artwork at index. total is the slot count a wall is
// centered for; values <= 0 mean ArtworksPerWall. Place is pure: the same arguments always
// yield the same slot.
//
// Walls cycle front, right, left, back. After 4*ArtworksPerWall artworks placement wraps
// to the front wall again and frames overlap earlier ones.
func (e Engine) Place(index, total int) Slot {
	perWall := e.ArtworksPerWall
	if perWall <= 0 {
		perWall = DefaultArtworksPerWall
	}
	if total <= 0 {
		total = perWall
	}
	if index < 0 {
		index = 0
	}
	wallIndex := index / perWall
	inWall := index % perWall
	offset := (float32(inWall) - float32(total)/2 + 0.5) * e.FrameSpacing

	s := Slot{Index: index, Wall: Wall(wallIndex % wallCount)}
	switch s.Wall {
	case Front:
		s.Position = [3]float32{offset, e.FrameHeight, -e.WallSpacing}
	case Right:
		s.Position = [3]float32{e.WallSpacing, e.FrameHeight, offset}
		s.Rotation = [3]float32{0, -math32.Pi / 2, 0}
	case Left:
		s.Position = [3]float32{-e.WallSpacing, e.FrameHeight, offset}
		s.Rotation = [3]float32{0, math32.Pi / 2, 0}
	case Back:
		s.Position = [3]float32{offset, e.FrameHeight, e.WallSpacing}
		s.Rotation = [3]float32{0, math32.Pi, 0}
	}
	return s
}

// PlaceAll returns slots for n artworks using the engine's per-wall count.
func (e Engine) PlaceAll(n int) []Slot {
	if n <= 0 {
		return nil
	}
	out := make([]Slot, n)
	for i := range out {
		out[i] = e.Place(i, e.ArtworksPerWall)
	}
	return out
}

// Extent returns the largest absolute room-space coordinate, on X or Z, that any frame
// edge can reach given a frame width. The room walls must stand strictly beyond it.
func (e Engine) Extent(frameWidth float32) float32 {
	perWall := e.ArtworksPerWall
	if perWall <= 0 {
		perWall = DefaultArtworksPerWall
	}
	along := (float32(perWall-1) / 2) * e.FrameSpacing
	along += frameWidth / 2
	return math32.Max(along, e.WallSpacing)
}
