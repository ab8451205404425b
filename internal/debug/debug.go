package debug

import (
	"fmt"
	"runtime"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"museum-gallery/internal/locomotion"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws runtime overlays at the top-right: FPS, heap, and the viewer pose.
// All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowPose     bool
	font         rl.Font
	frameCount   uint32
	fpsText      string
	memText      string
	poseText     string
	memStats     runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the overlay font. Zero texture ID = raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// PoseText formats a viewer transform as shown in the overlay (yaw in degrees, 0-360).
func PoseText(t locomotion.Transform) string {
	deg := math32.Mod(t.Yaw*180/math32.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return fmt.Sprintf("Pose: x %.2f  z %.2f  yaw %.0f deg", t.X, t.Z, deg)
}

// Draw renders the enabled overlays. pose is the current viewer transform.
func (d *Debug) Draw(pose locomotion.Transform) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.fpsText == "") || (d.ShowMemAlloc && d.memText == "") {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.line(d.fpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		d.line(d.memText, y)
		y += lineHeight
	}
	if d.ShowPose {
		// Pose changes every frame while moving, so it is not throttled.
		d.poseText = PoseText(pose)
		d.line(d.poseText, y)
	}
}

func (d *Debug) line(text string, y int32) {
	if text == "" {
		return
	}
	screenW := float32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fontSize)
		pos := rl.NewVector2(screenW-rl.MeasureTextEx(d.font, text, sz, 1).X-padding, float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, rl.Green)
		return
	}
	x := int32(screenW) - rl.MeasureText(text, fontSize) - padding
	rl.DrawText(text, x, y, fontSize, rl.Green)
}
