package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/rig"
)

func TestImmersive_Sticks(t *testing.T) {
	im := NewImmersive(0.15, 2)
	im.SetController(LeftHand, Controller{Connected: true, Thumbstick: mgl32.Vec2{0, -1}})
	im.SetController(RightHand, Controller{Connected: true, Thumbstick: mgl32.Vec2{1, -1}})

	look, move := im.Sample(0.5)
	if !near(move.Forward, 1) || move.Strafe != 0 {
		t.Errorf("move = %+v, want forward 1", move)
	}
	// Right stick is yaw only, even when pushed diagonally.
	if look.DeltaPitch != 0 {
		t.Errorf("stick produced pitch %v", look.DeltaPitch)
	}
	want := float32(-math.Sqrt2 / 2)
	if !near(look.DeltaYaw, want) {
		t.Errorf("yaw = %v, want %v", look.DeltaYaw, want)
	}
}

func TestImmersive_DeadZone(t *testing.T) {
	im := NewImmersive(0.15, 2)
	im.SetController(LeftHand, Controller{Connected: true, Thumbstick: mgl32.Vec2{0.1, 0.05}})
	im.SetController(RightHand, Controller{Connected: true, Thumbstick: mgl32.Vec2{-0.12, 0}})

	look, move := im.Sample(rig.NominalFrameDelta)
	if look != (rig.LookIntent{}) || move != (rig.MoveIntent{}) {
		t.Errorf("look %+v move %+v inside dead-zone", look, move)
	}
}

func TestImmersive_Disconnected(t *testing.T) {
	im := NewImmersive(0.1, 2)
	im.SetController(LeftHand, Controller{Connected: true, Thumbstick: mgl32.Vec2{1, 0}})
	im.Disconnect(LeftHand)
	// A stale stick value on a disconnected controller is ignored.
	im.SetController(RightHand, Controller{Thumbstick: mgl32.Vec2{1, 0}})

	look, move := im.Sample(rig.NominalFrameDelta)
	if !look.Zero() || !move.Zero() {
		t.Errorf("look %+v move %+v from disconnected controllers", look, move)
	}
	if _, ok := im.Controller(LeftHand); ok {
		t.Error("left reported connected")
	}
	if _, ok := im.Controller(Hand(5)); ok {
		t.Error("unknown hand reported connected")
	}
}

func TestImmersive_Reset(t *testing.T) {
	im := NewImmersive(0.1, 2)
	pose := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	im.SetController(RightHand, Controller{Connected: true, Orientation: pose, Thumbstick: mgl32.Vec2{1, 0}})
	im.Reset()

	if look, _ := im.Sample(0.1); !look.Zero() {
		t.Errorf("look = %+v after Reset", look)
	}
	c, ok := im.Controller(RightHand)
	if !ok || c.Orientation != pose {
		t.Error("Reset dropped the controller pose")
	}
}

func TestController_Ray(t *testing.T) {
	c := Controller{
		Position:    mgl32.Vec3{1, 1, 1},
		Orientation: mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0}),
	}
	origin, dir := c.Ray()
	if origin != c.Position {
		t.Errorf("origin = %v", origin)
	}
	if !dir.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-5) {
		t.Errorf("dir = %v, want straight down", dir)
	}
}
