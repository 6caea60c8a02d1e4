package controller

import (
	"io"
	"log"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/input"
	"github.com/leterax/go-horizon/pkg/rig"
	"github.com/leterax/go-horizon/pkg/scene"
)

const eps = 1e-5

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestController(options ...Option) *Controller {
	s := scene.New()
	s.Add("floor", scene.Floor(0))
	base := []Option{
		WithLogger(quietLogger()),
		WithTeleport(s, 15),
	}
	return New(append(base, options...)...)
}

func TestNew_FallbackMode(t *testing.T) {
	tests := []struct {
		name         string
		touchCapable bool
		want         Mode
	}{
		{"desktop", false, Desktop},
		{"touch", true, Touch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(WithTouchCapable(tt.touchCapable))
			if c.Mode() != tt.want {
				t.Errorf("mode = %v, want %v", c.Mode(), tt.want)
			}
			c.SessionStarted()
			if c.Mode() != Immersive {
				t.Errorf("after session start mode = %v", c.Mode())
			}
			c.SessionEnded()
			if c.Mode() != tt.want {
				t.Errorf("after session end mode = %v, want %v", c.Mode(), tt.want)
			}
		})
	}
}

func TestTick_DesktopMouseLook(t *testing.T) {
	c := newTestController()
	d := c.Desktop()
	d.SetPointerCaptured(true)
	d.PointerMoved(100, 0)

	f := c.Tick(rig.NominalFrameDelta)
	if math.Abs(float64(f.Yaw+0.2)) > eps {
		t.Errorf("yaw = %v, want -0.2", f.Yaw)
	}
	if f.Pitch != 0 {
		t.Errorf("pitch = %v, want 0", f.Pitch)
	}
	for _, n := range c.Rig().Nodes() {
		if n.Rotation.Roll != 0 {
			t.Errorf("%s roll = %v", n.Name, n.Rotation.Roll)
		}
	}

	// Deltas are consumed by the tick.
	f = c.Tick(rig.NominalFrameDelta)
	if math.Abs(float64(f.Yaw+0.2)) > eps {
		t.Errorf("second tick yaw = %v, want -0.2", f.Yaw)
	}
}

func TestTick_DesktopWalk(t *testing.T) {
	c := newTestController(WithStart(mgl32.Vec3{0, 0, -4}), WithMoveSpeed(3))
	c.Desktop().KeyDown("KeyW")

	f := c.Tick(0.1)
	want := mgl32.Vec3{0, 0, -4.3}
	if !f.Position.ApproxEqualThreshold(want, eps) {
		t.Errorf("position = %v, want %v", f.Position, want)
	}
	if !f.Eye.ApproxEqualThreshold(want, eps) {
		t.Errorf("eye = %v, want %v", f.Eye, want)
	}

	// Long stalls are capped.
	c.Desktop().KeyUp("KeyW")
	c.Desktop().KeyDown("KeyD")
	f = c.Tick(5)
	want = mgl32.Vec3{0.75, 0, -4.3}
	if !f.Position.ApproxEqualThreshold(want, eps) {
		t.Errorf("position = %v, want %v", f.Position, want)
	}
}

func TestTick_ModeExclusivity(t *testing.T) {
	c := newTestController()
	d := c.Desktop()
	d.SetPointerCaptured(true)
	d.KeyDown("KeyW")
	d.PointerMoved(250, 40)

	c.SessionStarted()
	f := c.Tick(0.1)
	if f.Mode != Immersive {
		t.Fatalf("mode = %v", f.Mode)
	}
	if f.Position != (mgl32.Vec3{}) || f.Yaw != 0 || f.Pitch != 0 {
		t.Errorf("desktop input leaked into immersive: pos %v yaw %v pitch %v", f.Position, f.Yaw, f.Pitch)
	}

	// Raw events still arrive while inactive but do not steer.
	d.KeyDown("KeyA")
	d.PointerMoved(-80, 0)
	f = c.Tick(0.1)
	if f.Position != (mgl32.Vec3{}) || f.Yaw != 0 {
		t.Errorf("inactive desktop steered: pos %v yaw %v", f.Position, f.Yaw)
	}

	// Nothing buffered while immersive survives the switch back.
	c.SessionEnded()
	f = c.Tick(0.1)
	if f.Position != (mgl32.Vec3{}) || f.Yaw != 0 {
		t.Errorf("stale input after session end: pos %v yaw %v", f.Position, f.Yaw)
	}
}

func TestTick_ImmersiveHeadPose(t *testing.T) {
	c := newTestController(WithStart(mgl32.Vec3{2, 0, 1}))
	c.SetHeadPose(mgl32.Vec3{0, 1.6, 0}, mgl32.QuatIdent())
	if c.Tick(rig.NominalFrameDelta).Eye.Y() != 0 {
		t.Error("head pose applied outside immersive mode")
	}

	c.SessionStarted()
	c.SetHeadPose(mgl32.Vec3{0, 1.6, 0}, mgl32.QuatIdent())
	f := c.Tick(rig.NominalFrameDelta)
	if !f.Eye.ApproxEqualThreshold(mgl32.Vec3{2, 1.6, 1}, eps) {
		t.Errorf("eye = %v, want (2, 1.6, 1)", f.Eye)
	}
	if c.Rig().YawNode.Rotation != (rig.Euler{}) || c.Rig().PitchNode.Rotation != (rig.Euler{}) {
		t.Error("yaw/pitch nodes not held at identity while tracked")
	}
}

func TestTick_ImmersiveStickTurn(t *testing.T) {
	c := newTestController()
	c.SessionStarted()
	c.Immersive().SetController(input.RightHand, input.Controller{
		Connected:   true,
		Orientation: mgl32.QuatIdent(),
		Thumbstick:  mgl32.Vec2{1, 0},
	})
	c.Immersive().TurnSpeed = 2
	c.Immersive().DeadZone = 0
	f := c.Tick(0.1)
	if math.Abs(float64(f.Yaw+0.2)) > eps {
		t.Errorf("yaw = %v, want -0.2", f.Yaw)
	}
}

func TestTick_ImmersiveTeleport(t *testing.T) {
	c := newTestController()
	c.SessionStarted()
	// Right controller at head height, pitched 45 degrees down.
	c.Immersive().SetController(input.RightHand, input.Controller{
		Connected:   true,
		Position:    mgl32.Vec3{0, 1.5, 0},
		Orientation: mgl32.QuatRotate(-math.Pi/4, mgl32.Vec3{1, 0, 0}),
	})

	f := c.Tick(rig.NominalFrameDelta)
	if !f.Teleport.Valid {
		t.Fatal("aim not valid over the floor")
	}
	if !f.Teleport.Point.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1.5}, 1e-4) {
		t.Errorf("target = %v, want (0, 0, -1.5)", f.Teleport.Point)
	}

	// The left hand does not teleport.
	c.Select(input.LeftHand)
	if f = c.Tick(rig.NominalFrameDelta); f.Teleported {
		t.Fatal("left hand select teleported")
	}

	c.Select(input.RightHand)
	f = c.Tick(rig.NominalFrameDelta)
	if !f.Teleported {
		t.Fatal("select did not teleport")
	}
	if !f.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1.5}, 1e-4) {
		t.Errorf("position = %v, want (0, 0, -1.5)", f.Position)
	}
	if f.Teleport.Valid {
		t.Error("aim shown while select is still held")
	}

	c.Release(input.RightHand)
	f = c.Tick(rig.NominalFrameDelta)
	if !f.Teleport.Valid {
		t.Error("aim not restored after release")
	}
}

func TestTick_TeleportIgnoredOutsideImmersive(t *testing.T) {
	c := newTestController()
	c.Immersive().SetController(input.RightHand, input.Controller{
		Connected:   true,
		Position:    mgl32.Vec3{0, 1.5, 0},
		Orientation: mgl32.QuatRotate(-math.Pi/4, mgl32.Vec3{1, 0, 0}),
	})
	c.Select(input.RightHand)
	f := c.Tick(rig.NominalFrameDelta)
	if f.Teleported || f.Teleport.Valid {
		t.Errorf("teleport active in desktop mode: %+v", f.Teleport)
	}
}

func TestTick_InvalidDelta(t *testing.T) {
	c := newTestController(WithMoveSpeed(72))
	c.Desktop().KeyDown("KeyW")
	f := c.Tick(float32(math.NaN()))
	if !f.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("position = %v, want one nominal frame of travel", f.Position)
	}
}

func TestTick_HorizonLevelAcrossModes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := newTestController(WithTouchCapable(true))
	c.Touch().DragSensitivity = 0.01
	guard := rig.RollGuard{}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(6) {
		case 0:
			if c.Mode() == Immersive {
				c.SessionEnded()
			} else {
				c.SessionStarted()
			}
		case 1:
			axis := mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}
			if axis.Len() > 1e-3 {
				q := mgl32.QuatRotate(rng.Float32()*6-3, axis.Normalize())
				c.SetHeadPose(mgl32.Vec3{0, 1.6, 0}, q)
			}
		case 2:
			c.Touch().TouchStart(rng.Intn(3), rng.Float32()*800, rng.Float32()*600)
		case 3:
			c.Touch().TouchMove(rng.Intn(3), rng.Float32()*800, rng.Float32()*600)
		case 4:
			c.Touch().TouchEnd(rng.Intn(3))
		case 5:
			c.Immersive().SetController(input.RightHand, input.Controller{
				Connected:   true,
				Orientation: mgl32.QuatIdent(),
				Thumbstick:  mgl32.Vec2{rng.Float32()*2 - 1, rng.Float32()*2 - 1},
			})
		}
		f := c.Tick(rng.Float32() * 0.05)
		if !guard.Level(c.Rig()) {
			t.Fatalf("step %d (%v): horizon not level", i, f.Mode)
		}
		if f.Pitch < rig.MinPitch || f.Pitch > rig.MaxPitch {
			t.Fatalf("step %d: pitch %v out of range", i, f.Pitch)
		}
	}
}

func TestTick_ImmersiveMoveFollowsBodyYawBeforePose(t *testing.T) {
	c := newTestController(WithMoveSpeed(3))
	c.Rig().SetOrientation(1.57, 0)
	c.SessionStarted()
	c.Immersive().DeadZone = 0
	c.Immersive().SetController(input.LeftHand, input.Controller{
		Connected:   true,
		Orientation: mgl32.QuatIdent(),
		Thumbstick:  mgl32.Vec2{0, -1},
	})

	f := c.Tick(0.1)
	if !f.Position.ApproxEqualThreshold(mgl32.Vec3{-0.3, 0, 0}, 1e-3) {
		t.Errorf("position = %v, want (-0.3, 0, 0) along the body heading", f.Position)
	}
	if math.Abs(float64(c.Rig().View.Rotation.Yaw-1.57)) > 1e-4 {
		t.Errorf("view yaw = %v, want 1.57", c.Rig().View.Rotation.Yaw)
	}
	if f.HeadTracked {
		t.Error("head reported tracked before any pose")
	}
}

func TestTick_LostHeadTrackingHoldsPose(t *testing.T) {
	c := newTestController()
	c.SessionStarted()
	c.SetHeadPose(mgl32.Vec3{0, 1.6, 0}, mgl32.QuatIdent())
	if f := c.Tick(rig.NominalFrameDelta); !f.HeadTracked {
		t.Fatal("head not tracked after a pose")
	}

	c.LoseHeadTracking()
	c.Immersive().TurnSpeed = 2
	c.Immersive().DeadZone = 0
	c.Immersive().SetController(input.RightHand, input.Controller{
		Connected:   true,
		Orientation: mgl32.QuatIdent(),
		Thumbstick:  mgl32.Vec2{1, 0},
	})
	f := c.Tick(0.1)
	if f.HeadTracked {
		t.Error("head still tracked after losing tracking")
	}
	if math.Abs(float64(c.Rig().View.Rotation.Yaw+0.2)) > 1e-4 {
		t.Errorf("view yaw = %v, want -0.2 from the stick turn", c.Rig().View.Rotation.Yaw)
	}
	if math.Abs(float64(f.Eye.Y()-1.6)) > eps {
		t.Errorf("eye height = %v, want the last pose's 1.6", f.Eye.Y())
	}

	c.SetHeadPose(mgl32.Vec3{0, 1.7, 0}, mgl32.QuatIdent())
	if f = c.Tick(rig.NominalFrameDelta); !f.HeadTracked || math.Abs(float64(f.Eye.Y()-1.7)) > eps {
		t.Errorf("tracking not resumed: tracked %v eye %v", f.HeadTracked, f.Eye)
	}
}
