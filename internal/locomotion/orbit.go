package locomotion

import "github.com/chewxy/math32"

// Desktop orbit camera tuning. Drag amounts are in screen pixels.
const (
	OrbitRotateSpeed = 0.008 // radians per pixel
	OrbitPanSpeed    = 0.0015
	OrbitZoomStep    = 0.1 // fraction of the distance per wheel notch
	OrbitMinDistance = 0.5
	OrbitMaxDistance = 25
	orbitMaxPitch    = 1.5
)

// Orbit is the desktop camera. It circles Target at Distance, turned by Yaw about the
// vertical axis and tilted by Pitch. Only the render goroutine touches it.
type Orbit struct {
	Target   [3]float32
	Yaw      float32
	Pitch    float32
	Distance float32
}

// NewOrbit looks at the room center from 5 m back at eye height.
func NewOrbit() Orbit {
	return Orbit{Target: [3]float32{0, 1.6, 0}, Distance: 5}
}

// Rotate turns the camera around the target for a drag of dx, dy pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Yaw -= dx * OrbitRotateSpeed
	o.Pitch += dy * OrbitRotateSpeed
	o.Pitch = math32.Max(-orbitMaxPitch, math32.Min(orbitMaxPitch, o.Pitch))
}

// Pan slides the target in the view plane so the room follows the pointer.
func (o *Orbit) Pan(dx, dy float32) {
	k := OrbitPanSpeed * o.Distance
	right, up := o.axes()
	for i := range o.Target {
		o.Target[i] += -right[i]*dx*k + up[i]*dy*k
	}
}

// Zoom moves toward the target for positive wheel values and away for negative ones.
func (o *Orbit) Zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	o.Distance *= 1 - wheel*OrbitZoomStep
	o.Distance = math32.Max(OrbitMinDistance, math32.Min(OrbitMaxDistance, o.Distance))
}

// Position is the camera location.
func (o Orbit) Position() [3]float32 {
	sy, cy := math32.Sincos(o.Yaw)
	sp, cp := math32.Sincos(o.Pitch)
	return [3]float32{
		o.Target[0] + sy*cp*o.Distance,
		o.Target[1] + sp*o.Distance,
		o.Target[2] + cy*cp*o.Distance,
	}
}

// axes returns the camera's right and up directions.
func (o Orbit) axes() (right, up [3]float32) {
	sy, cy := math32.Sincos(o.Yaw)
	sp, cp := math32.Sincos(o.Pitch)
	return [3]float32{cy, 0, -sy}, [3]float32{-sy * sp, cp, -cy * sp}
}
