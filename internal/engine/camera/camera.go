// Package camera provides the orbit camera used by the anatomy viewer,
// including smooth flights between viewpoints.
package camera

import (
	gomath "math"

	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

// Pose is a complete camera viewpoint: where the camera orbits around and
// from which angle and distance.
type Pose struct {
	Center   math.Vec3
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians
}

// OrbitCamera orbits around a center point. Flights started with FlyTo
// interpolate the full pose and are advanced by Update.
type OrbitCamera struct {
	Pose

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// AutoRotate spins the camera around the vertical axis when idle.
	AutoRotate      bool
	AutoRotateSpeed float32 // radians per second

	// Dragging suspends auto-rotation while the user is steering.
	Dragging bool

	home Pose // pose restored by Reset

	// Flight state. A zero flightDuration means no flight in progress.
	flightStart    Pose
	flightEnd      Pose
	flightElapsed  float32
	flightDuration float32
}

// NewOrbitCamera creates an orbit camera with viewer defaults.
func NewOrbitCamera() *OrbitCamera {
	home := Pose{
		Distance: 6.0,
		Pitch:    0.25,
		Yaw:      0.0,
	}
	return &OrbitCamera{
		Pose:            home,
		home:            home,
		MinDistance:     0.2,
		MaxDistance:     100.0,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		AutoRotateSpeed: 0.3,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))

	return math.Vec3{
		X: c.Center.X + x,
		Y: c.Center.Y + y,
		Z: c.Center.Z + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation based on mouse drag delta. Dragging cancels
// any flight in progress; the user always wins.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.flightDuration = 0
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.flightDuration = 0
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FlyTo starts a smooth flight from the current pose to the target pose.
// Starting a new flight while one is running retargets from wherever the
// camera currently is, so rapid selections never snap.
func (c *OrbitCamera) FlyTo(target Pose, durationSec float32) {
	if durationSec <= 0 {
		c.Pose = target
		c.flightDuration = 0
		return
	}
	c.flightStart = c.Pose
	c.flightEnd = target
	c.flightElapsed = 0
	c.flightDuration = durationSec
}

// Reset flies back to the home pose. The return trip is quicker than a
// focus flight.
func (c *OrbitCamera) Reset() {
	c.FlyTo(c.home, 0.4)
}

// SetHome stores the pose that Reset returns to and snaps the camera there.
func (c *OrbitCamera) SetHome(p Pose) {
	c.home = p
	c.Pose = p
	c.flightDuration = 0
}

// Home returns the pose Reset flies back to.
func (c *OrbitCamera) Home() Pose {
	return c.home
}

// PresetPose returns a canonical viewing pose, keeping the home center and
// distance and changing only the angles. Known names: front, back, left,
// right, top.
func (c *OrbitCamera) PresetPose(name string) (Pose, bool) {
	p := c.home
	switch name {
	case "front":
		p.Yaw, p.Pitch = 0, 0.15
	case "back":
		p.Yaw, p.Pitch = gomath.Pi, 0.15
	case "left":
		p.Yaw, p.Pitch = -gomath.Pi/2, 0.15
	case "right":
		p.Yaw, p.Pitch = gomath.Pi/2, 0.15
	case "top":
		p.Yaw, p.Pitch = 0, c.MaxPitch-0.05
	default:
		return Pose{}, false
	}
	return p, true
}

// FlyPreset starts a flight to a named preset. Unknown names are ignored.
func (c *OrbitCamera) FlyPreset(name string, durationSec float32) bool {
	p, ok := c.PresetPose(name)
	if !ok {
		return false
	}
	c.FlyTo(p, durationSec)
	return true
}

// IsAnimating reports whether a flight is in progress.
func (c *OrbitCamera) IsAnimating() bool {
	return c.flightDuration > 0
}

// Update advances flights and auto-rotation by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.flightDuration > 0 {
		c.flightElapsed += dt
		t := math.EaseOutCubic(c.flightElapsed / c.flightDuration)
		c.Pose = Pose{
			Center:   c.flightStart.Center.Lerp(c.flightEnd.Center, t),
			Distance: math.Lerp(c.flightStart.Distance, c.flightEnd.Distance, t),
			Pitch:    math.Lerp(c.flightStart.Pitch, c.flightEnd.Pitch, t),
			Yaw:      math.Lerp(c.flightStart.Yaw, lerpTargetYaw(c.flightStart.Yaw, c.flightEnd.Yaw), t),
		}
		if c.flightElapsed >= c.flightDuration {
			c.Pose = c.flightEnd
			c.flightDuration = 0
		}
		return
	}

	if c.AutoRotate && !c.Dragging {
		c.Yaw += c.AutoRotateSpeed * dt
		// Keep yaw bounded so long sessions don't lose float precision.
		if c.Yaw > 2*gomath.Pi {
			c.Yaw -= 2 * gomath.Pi
		}
		if c.Yaw < -2*gomath.Pi {
			c.Yaw += 2 * gomath.Pi
		}
	}
}

// lerpTargetYaw picks the equivalent end yaw closest to the start, so the
// camera flies the short way around.
func lerpTargetYaw(from, to float32) float32 {
	const twoPi = 2 * gomath.Pi
	for to-from > gomath.Pi {
		to -= twoPi
	}
	for from-to > gomath.Pi {
		to += twoPi
	}
	return to
}

// PoseForBounds computes a pose that frames a bounding region: centered on
// it, pulled back far enough that the whole region fits the view.
func (c *OrbitCamera) PoseForBounds(center math.Vec3, maxExtent float32) Pose {
	dist := maxExtent * 1.8
	if dist < c.MinDistance {
		dist = c.MinDistance
	}
	if dist > c.MaxDistance {
		dist = c.MaxDistance
	}
	return Pose{
		Center:   center,
		Distance: dist,
		Pitch:    c.Pitch,
		Yaw:      c.Yaw,
	}
}
