package gallery

import (
	"github.com/chewxy/math32"

	"museum-gallery/internal/frame"
)

// Ray is a pick ray. Dir need not be normalized.
type Ray struct {
	Origin [3]float32
	Dir    [3]float32
}

// Pick returns the index of the nearest frame hit by a ray given in viewer space (the
// space the camera lives in) and the hit distance along Dir. It returns -1 when no frame
// is hit.
func (c *Controller) Pick(r Ray) (int, float32) {
	t := c.loco.Transform()
	room := Ray{Origin: t.ToRoom(r.Origin), Dir: t.DirToRoom(r.Dir)}
	best, bestDist := -1, math32.Inf(1)
	for i, f := range c.frames {
		if d, ok := hitFrame(room, f); ok && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// hitFrame intersects a room-space ray with a frame's box using the slab method in the
// frame's local space.
func hitFrame(r Ray, f *frame.Frame) (float32, bool) {
	pos := f.Slot.Position
	s, c := math32.Sincos(-f.Slot.Yaw())
	local := func(v [3]float32) [3]float32 {
		return [3]float32{c*v[0] + s*v[2], v[1], -s*v[0] + c*v[2]}
	}
	o := local([3]float32{r.Origin[0] - pos[0], r.Origin[1] - pos[1], r.Origin[2] - pos[2]})
	d := local(r.Dir)

	scale := f.Scale()
	half := [3]float32{frame.Width / 2 * scale, frame.Height / 2 * scale, frame.Depth / 2 * scale}
	tmin, tmax := float32(0), math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if math32.Abs(d[axis]) < 1e-8 {
			if o[axis] < -half[axis] || o[axis] > half[axis] {
				return 0, false
			}
			continue
		}
		t1 := (-half[axis] - o[axis]) / d[axis]
		t2 := (half[axis] - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
