package locomotion

import "github.com/chewxy/math32"

// Tuning for controller locomotion. Speeds are per rendered frame, so movement is
// frame-rate dependent.
const (
	DeadZone     = 0.15
	DefaultSpeed = 0.05 // meters per frame at full stick deflection
	DefaultTurn  = 0.03 // radians per frame at full stick deflection
)

// Handedness of an input source.
type Handedness string

const (
	HandLeft  Handedness = "left"
	HandRight Handedness = "right"
	HandNone  Handedness = "none"
)

// Source is one tracked controller as sampled this frame. Axes follow the xr-standard
// layout: [0,1] is the primary pair (touchpad on older controllers), [2,3] the thumbstick.
type Source struct {
	Handedness Handedness
	Axes       []float32
}

// Stick returns the axis pair that drives this source: the secondary pair when the
// source has one and the primary pair is inside the dead zone, otherwise the primary pair.
func (s Source) Stick() (x, y float32) {
	if len(s.Axes) >= 2 {
		x, y = s.Axes[0], s.Axes[1]
	}
	if len(s.Axes) >= 4 && !active(x) && !active(y) {
		x, y = s.Axes[2], s.Axes[3]
	}
	return x, y
}

// Transform is the viewer's accumulated pose in room space: planar position and yaw
// (radians, counter-clockwise seen from above). The zero value is the room origin.
type Transform struct {
	X   float32
	Z   float32
	Yaw float32
}

// Forward returns the unit vector the viewer faces on the floor plane (X, Z). Yaw 0 looks
// down -Z, toward the front wall.
func (t Transform) Forward() (x, z float32) {
	s, c := math32.Sincos(t.Yaw)
	return -s, -c
}

// Right returns the unit vector to the viewer's right on the floor plane.
func (t Transform) Right() (x, z float32) {
	s, c := math32.Sincos(t.Yaw)
	return c, -s
}

// ToRoom maps a point from viewer space (camera at origin looking down -Z) into room space.
func (t Transform) ToRoom(p [3]float32) [3]float32 {
	s, c := math32.Sincos(t.Yaw)
	return [3]float32{
		c*p[0] + s*p[2] + t.X,
		p[1],
		-s*p[0] + c*p[2] + t.Z,
	}
}

// DirToRoom rotates a direction from viewer space into room space.
func (t Transform) DirToRoom(d [3]float32) [3]float32 {
	s, c := math32.Sincos(t.Yaw)
	return [3]float32{c*d[0] + s*d[2], d[1], -s*d[0] + c*d[2]}
}

// Controller turns controller sticks into viewer motion. It owns the Transform; the
// renderer only reads it.
type Controller struct {
	Speed float32
	Turn  float32

	t Transform
}

// New returns a controller at the origin with default speeds.
func New() *Controller {
	return &Controller{Speed: DefaultSpeed, Turn: DefaultTurn}
}

// Transform returns the current viewer pose.
func (c *Controller) Transform() Transform {
	if c == nil {
		return Transform{}
	}
	return c.t
}

// Reset moves the viewer back to the origin, facing the front wall.
func (c *Controller) Reset() {
	c.t = Transform{}
}

// Update applies one frame of input. immersive reports whether the controller-driven
// session is active; when it is not (desktop mouse mode, or before the session exists)
// Update does nothing. The left stick walks relative to the current yaw, the right stick's
// horizontal axis turns. Axis values inside the dead zone are ignored.
func (c *Controller) Update(immersive bool, sources []Source) {
	if c == nil || !immersive {
		return
	}
	for _, src := range sources {
		x, y := src.Stick()
		switch src.Handedness {
		case HandLeft:
			x, y = deadZone(x), deadZone(y)
			if x == 0 && y == 0 {
				continue
			}
			fx, fz := c.t.Forward()
			rx, rz := c.t.Right()
			// Pushing the stick forward reports negative y.
			c.t.X += (fx*-y + rx*x) * c.Speed
			c.t.Z += (fz*-y + rz*x) * c.Speed
		case HandRight:
			x = deadZone(x)
			if x == 0 {
				continue
			}
			c.t.Yaw -= x * c.Turn
		}
	}
}

func active(v float32) bool {
	return math32.Abs(v) > DeadZone
}

func deadZone(v float32) float32 {
	if !active(v) {
		return 0
	}
	return v
}
