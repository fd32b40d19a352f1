package camera

import (
	gomath "math"
	"testing"

	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

func posesClose(a, b Pose) bool {
	const eps = 1e-3
	return a.Center.Distance(b.Center) < eps &&
		gomath.Abs(float64(a.Distance-b.Distance)) < eps &&
		gomath.Abs(float64(a.Pitch-b.Pitch)) < eps &&
		gomath.Abs(float64(a.Yaw-b.Yaw)) < eps
}

func TestPositionAtDefaultYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.Pose = Pose{Distance: 10, Pitch: 0, Yaw: 0}

	pos := c.Position()
	if gomath.Abs(float64(pos.X)) > 1e-4 || gomath.Abs(float64(pos.Y)) > 1e-4 || gomath.Abs(float64(pos.Z-10)) > 1e-4 {
		t.Errorf("position = %v, want (0,0,10)", pos)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, c.MinPitch)
	}
}

func TestZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 200; i++ {
		c.HandleZoom(10)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 200; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %v, want max %v", c.Distance, c.MaxDistance)
	}
}

func TestFlightReachesTargetExactly(t *testing.T) {
	c := NewOrbitCamera()
	target := Pose{Center: math.Vec3{X: 1, Y: 2, Z: 3}, Distance: 4, Pitch: 0.5, Yaw: 1.0}
	c.FlyTo(target, 0.8)

	if !c.IsAnimating() {
		t.Fatal("flight should be in progress")
	}
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60.0)
	}
	if c.IsAnimating() {
		t.Error("flight should have finished")
	}
	if !posesClose(c.Pose, target) {
		t.Errorf("pose = %+v, want %+v", c.Pose, target)
	}
}

func TestFlightEasesOut(t *testing.T) {
	c := NewOrbitCamera()
	c.Pose = Pose{Distance: 10}
	c.FlyTo(Pose{Center: math.Vec3{X: 10}, Distance: 10}, 1.0)

	c.Update(0.5)
	early := c.Center.X
	c.Update(0.5)

	// Ease-out covers most of the distance in the first half.
	if early < 5 {
		t.Errorf("after half the flight covered only %v of 10", early)
	}
	if gomath.Abs(float64(c.Center.X-10)) > 1e-3 {
		t.Errorf("flight end center = %v, want 10", c.Center.X)
	}
}

func TestRetargetMidFlightStartsFromCurrentPose(t *testing.T) {
	c := NewOrbitCamera()
	c.FlyTo(Pose{Center: math.Vec3{X: 10}, Distance: 5}, 1.0)
	c.Update(0.25)
	mid := c.Pose

	c.FlyTo(Pose{Center: math.Vec3{Z: 10}, Distance: 5}, 1.0)
	if !posesClose(c.Pose, mid) {
		t.Error("retarget must not snap the camera")
	}

	// One tiny step stays near the mid-flight pose.
	c.Update(0.001)
	if c.Center.Distance(mid.Center) > 0.2 {
		t.Errorf("camera jumped after retarget: %v vs %v", c.Center, mid.Center)
	}
}

func TestZeroDurationFlightSnaps(t *testing.T) {
	c := NewOrbitCamera()
	target := Pose{Center: math.Vec3{Y: 7}, Distance: 3}
	c.FlyTo(target, 0)
	if c.IsAnimating() {
		t.Error("zero duration flight should not animate")
	}
	if !posesClose(c.Pose, target) {
		t.Errorf("pose = %+v, want snap to %+v", c.Pose, target)
	}
}

func TestResetReturnsHome(t *testing.T) {
	c := NewOrbitCamera()
	home := Pose{Center: math.Vec3{Y: 1}, Distance: 8, Pitch: 0.3}
	c.SetHome(home)

	c.HandleDrag(300, 100)
	c.HandleZoom(5)
	c.Reset()
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60.0)
	}
	if !posesClose(c.Pose, home) {
		t.Errorf("pose after reset = %+v, want %+v", c.Pose, home)
	}
}

func TestAutoRotateAdvancesYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.AutoRotate = true
	c.AutoRotateSpeed = 1.0

	c.Update(0.5)
	if gomath.Abs(float64(c.Yaw-0.5)) > 1e-4 {
		t.Errorf("yaw = %v, want 0.5", c.Yaw)
	}

	// Suspended while dragging.
	c.Dragging = true
	c.Update(0.5)
	if gomath.Abs(float64(c.Yaw-0.5)) > 1e-4 {
		t.Errorf("yaw advanced during drag: %v", c.Yaw)
	}
	c.Dragging = false
	c.Update(0.5)
	if gomath.Abs(float64(c.Yaw-1.0)) > 1e-4 {
		t.Errorf("yaw = %v, want 1.0 after resume", c.Yaw)
	}
}

func TestAutoRotateSuspendedDuringFlight(t *testing.T) {
	c := NewOrbitCamera()
	c.AutoRotate = true
	c.AutoRotateSpeed = 10.0
	c.FlyTo(Pose{Center: math.Vec3{X: 1}, Distance: 5, Yaw: 0}, 1.0)

	c.Update(0.1)
	if c.Yaw > 0.01 && c.Yaw < 0 {
		t.Errorf("auto-rotate ran during flight, yaw = %v", c.Yaw)
	}
}

func TestDragCancelsFlight(t *testing.T) {
	c := NewOrbitCamera()
	c.FlyTo(Pose{Center: math.Vec3{X: 10}, Distance: 5}, 1.0)
	c.HandleDrag(10, 0)
	if c.IsAnimating() {
		t.Error("drag should cancel flight")
	}
}

func TestFlightTakesShortWayAround(t *testing.T) {
	c := NewOrbitCamera()
	c.Pose = Pose{Distance: 5, Yaw: 0.1}
	c.FlyTo(Pose{Distance: 5, Yaw: 2*gomath.Pi - 0.1}, 1.0)

	c.Update(0.5)
	// The short way is backwards through zero, never through pi.
	if c.Yaw > 0.1 {
		t.Errorf("flight went the long way, yaw = %v", c.Yaw)
	}
}

func TestPoseForBoundsFrames(t *testing.T) {
	c := NewOrbitCamera()
	p := c.PoseForBounds(math.Vec3{X: 1, Y: 2, Z: 3}, 2.0)
	if p.Center.X != 1 || p.Center.Y != 2 || p.Center.Z != 3 {
		t.Errorf("center = %v", p.Center)
	}
	if p.Distance < 2.0 {
		t.Errorf("distance %v too close for extent 2", p.Distance)
	}
}

func TestPresetPoses(t *testing.T) {
	c := NewOrbitCamera()
	c.SetHome(Pose{Center: math.Vec3{Y: 1}, Distance: 8, Pitch: 0.3})

	for _, name := range []string{"front", "back", "left", "right", "top"} {
		p, ok := c.PresetPose(name)
		if !ok {
			t.Fatalf("preset %q unknown", name)
		}
		if p.Center != c.Home().Center || p.Distance != c.Home().Distance {
			t.Errorf("preset %q moved center/distance: %+v", name, p)
		}
		if p.Pitch < c.MinPitch || p.Pitch > c.MaxPitch {
			t.Errorf("preset %q pitch %v outside clamp", name, p.Pitch)
		}
	}

	if _, ok := c.PresetPose("diagonal"); ok {
		t.Error("unknown preset name should not resolve")
	}
}

func TestFlyPresetStartsFlight(t *testing.T) {
	c := NewOrbitCamera()
	if !c.FlyPreset("back", 0.5) {
		t.Fatal("FlyPreset(back) = false")
	}
	if !c.IsAnimating() {
		t.Error("expected flight in progress")
	}
	if c.FlyPreset("nope", 0.5) {
		t.Error("FlyPreset with unknown name should return false")
	}
}
