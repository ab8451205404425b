package room

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"museum-gallery/internal/frame"
	"museum-gallery/internal/layout"
)

// DefinitionPaths are tried in order so the room is found whether run from repo root or cmd/gallery.
var DefinitionPaths = []string{
	"assets/room.yaml",
	"../../assets/room.yaml",
}

//go:embed default.yaml
var defaultYAML []byte

// ErrWallTooClose means frames placed by the layout would reach into or past the walls.
var ErrWallTooClose = errors.New("room: wall offset does not clear the outermost frame")

// Room is the static gallery geometry. Nothing in it is interactive.
type Room struct {
	Floor   Floor   `yaml:"floor"`
	Walls   Walls   `yaml:"walls"`
	Ceiling Ceiling `yaml:"ceiling"`
	Frame   Finish  `yaml:"frame"`
	Benches []Prop  `yaml:"benches"`
	Title   Title   `yaml:"title"`
}

type Floor struct {
	Size  float32 `yaml:"size"`
	Color string  `yaml:"color"`
	Grid  bool    `yaml:"grid"`
}

// Walls surround the room at ±Offset on X and Z.
type Walls struct {
	Offset    float32    `yaml:"offset"`
	Height    float32    `yaml:"height"`
	Thickness float32    `yaml:"thickness"`
	Colors    WallColors `yaml:"colors"`
}

type WallColors struct {
	Front string `yaml:"front"`
	Right string `yaml:"right"`
	Left  string `yaml:"left"`
	Back  string `yaml:"back"`
}

type Ceiling struct {
	Height float32 `yaml:"height"`
	Color  string  `yaml:"color"`
}

// Finish holds the colors of frame boxes and title plates.
type Finish struct {
	Color string `yaml:"color"`
	Plate string `yaml:"plate"`
}

// Prop is a box-shaped decoration such as a bench.
type Prop struct {
	Position [3]float32 `yaml:"position,flow"`
	Size     [3]float32 `yaml:"size,flow"`
	Color    string     `yaml:"color"`
}

// Title positions the floating gallery name and the artwork count label.
type Title struct {
	TextPosition  [3]float32 `yaml:"text_position,flow"`
	CountPosition [3]float32 `yaml:"count_position,flow"`
}

// Box is an axis-aligned solid: center and full size.
type Box struct {
	Name   string
	Center [3]float32
	Size   [3]float32
	Color  string
}

// Default returns the embedded room definition.
func Default() Room {
	var r Room
	if err := yaml.Unmarshal(defaultYAML, &r); err != nil {
		panic(fmt.Sprintf("room: embedded default: %v", err))
	}
	return r
}

// Parse decodes a room definition. Missing sections keep the embedded defaults.
func Parse(data []byte) (Room, error) {
	r := Default()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Room{}, fmt.Errorf("room: parse: %w", err)
	}
	return r, nil
}

// Load reads the first room definition found in paths (DefinitionPaths when none are given)
// and validates it against the layout. When no file exists the embedded default is used.
func Load(l layout.Engine, paths ...string) (Room, error) {
	if len(paths) == 0 {
		paths = DefinitionPaths
	}
	r := Default()
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Clean(p))
		if err != nil {
			continue
		}
		r, err = Parse(data)
		if err != nil {
			return Room{}, err
		}
		break
	}
	if err := r.Validate(l); err != nil {
		return Room{}, err
	}
	return r, nil
}

// Validate checks that the walls stand strictly beyond every frame edge the layout can
// produce, and that the ceiling is above the tallest frame.
func (r Room) Validate(l layout.Engine) error {
	if r.Walls.Offset <= l.Extent(frame.Width) {
		return fmt.Errorf("%w: offset %.2f, frames reach %.2f", ErrWallTooClose, r.Walls.Offset, l.Extent(frame.Width))
	}
	if top := l.FrameHeight + frame.Height/2; r.Ceiling.Height <= top {
		return fmt.Errorf("room: ceiling %.2f below frame top %.2f", r.Ceiling.Height, top)
	}
	return nil
}

// Boxes returns the walls, ceiling and props as solids, in draw order. The floor is drawn
// separately as a plane.
func (r Room) Boxes() []Box {
	w := r.Walls
	span := w.Offset*2 + w.Thickness
	half := w.Thickness / 2
	y := w.Height / 2
	boxes := []Box{
		{Name: "wall-front", Center: [3]float32{0, y, -w.Offset - half}, Size: [3]float32{span, w.Height, w.Thickness}, Color: w.Colors.Front},
		{Name: "wall-right", Center: [3]float32{w.Offset + half, y, 0}, Size: [3]float32{w.Thickness, w.Height, span}, Color: w.Colors.Right},
		{Name: "wall-left", Center: [3]float32{-w.Offset - half, y, 0}, Size: [3]float32{w.Thickness, w.Height, span}, Color: w.Colors.Left},
		{Name: "wall-back", Center: [3]float32{0, y, w.Offset + half}, Size: [3]float32{span, w.Height, w.Thickness}, Color: w.Colors.Back},
		{Name: "ceiling", Center: [3]float32{0, r.Ceiling.Height + half, 0}, Size: [3]float32{span, w.Thickness, span}, Color: r.Ceiling.Color},
	}
	for i, b := range r.Benches {
		boxes = append(boxes, Box{Name: fmt.Sprintf("bench-%d", i), Center: b.Position, Size: b.Size, Color: b.Color})
	}
	return boxes
}
