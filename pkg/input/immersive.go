package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/rig"
)

// Hand identifies a tracked controller.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

func (h Hand) String() string {
	if h == LeftHand {
		return "left"
	}
	return "right"
}

// Controller is the polled state of one tracked motion controller.
// Thumbstick follows the xr-standard layout: +X right, +Y toward the user.
type Controller struct {
	Connected   bool
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Thumbstick  mgl32.Vec2
}

// Ray returns the controller's pointing ray: its position and the
// controller's local -Z axis in world space.
func (c Controller) Ray() (origin, dir mgl32.Vec3) {
	return c.Position, c.Orientation.Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}

// Immersive reads the left thumbstick as movement and the right thumbstick
// X axis as turning. Stick pitch is never produced; head tilt owns pitch.
type Immersive struct {
	DeadZone float32
	// TurnSpeed is radians per second at full right-stick deflection.
	TurnSpeed float32

	controllers [2]Controller
}

var _ Adapter = (*Immersive)(nil)

// NewImmersive creates an immersive adapter with no controllers connected.
func NewImmersive(deadZone, turnSpeed float32) *Immersive {
	return &Immersive{DeadZone: deadZone, TurnSpeed: turnSpeed}
}

func (im *Immersive) Capabilities() Capability {
	return ThumbstickMove | ThumbstickLook
}

// SetController replaces the polled state of one hand.
func (im *Immersive) SetController(h Hand, c Controller) {
	if h != LeftHand && h != RightHand {
		return
	}
	im.controllers[h] = c
}

// Disconnect marks a hand as having no input source.
func (im *Immersive) Disconnect(h Hand) {
	if h != LeftHand && h != RightHand {
		return
	}
	im.controllers[h] = Controller{}
}

// Controller returns a hand's state and whether it is connected.
func (im *Immersive) Controller(h Hand) (Controller, bool) {
	if h != LeftHand && h != RightHand {
		return Controller{}, false
	}
	c := im.controllers[h]
	return c, c.Connected
}

func (im *Immersive) Sample(dt float32) (rig.LookIntent, rig.MoveIntent) {
	var look rig.LookIntent
	var move rig.MoveIntent

	if left := im.controllers[LeftHand]; left.Connected {
		v := ApplyDeadZone(left.Thumbstick, im.DeadZone)
		move = rig.MoveIntent{Forward: -v.Y(), Strafe: v.X()}
	}
	if right := im.controllers[RightHand]; right.Connected {
		v := ApplyDeadZone(right.Thumbstick, im.DeadZone)
		look.DeltaYaw = -v.X() * im.TurnSpeed * dt
	}
	return look, move
}

// Reset zeroes stick deflection but keeps poses and connection state, which
// the host refreshes every frame anyway.
func (im *Immersive) Reset() {
	for i := range im.controllers {
		im.controllers[i].Thumbstick = mgl32.Vec2{}
	}
}
