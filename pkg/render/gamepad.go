package render

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/controller"
	"github.com/leterax/go-horizon/pkg/input"
)

// Standing poses in tracking space used while no headset is attached.
var (
	standingHead = mgl32.Vec3{0, 1.6, 0}
	leftHandPos  = mgl32.Vec3{-0.2, 1.3, -0.3}
	rightHandPos = mgl32.Vec3{0.2, 1.3, -0.3}

	// Hands point 45 degrees below the horizon.
	handAim = mgl32.QuatRotate(-math.Pi/4, mgl32.Vec3{1, 0, 0})
)

const triggerThreshold = 0.5

// Gamepad stands in for an HMD session on the desktop: the head is held at
// standing height and a GLFW gamepad's sticks and triggers act as the two
// motion controllers. An unplugged pad reads as a headset that lost
// tracking.
type Gamepad struct {
	joystick glfw.Joystick
	held     [2]bool
	started  bool // the first pose of this session has been sent
}

// NewGamepad reads the given joystick slot.
func NewGamepad(joystick glfw.Joystick) *Gamepad {
	return &Gamepad{joystick: joystick}
}

// Poll pushes the head pose and controller state into ctrl. Outside
// immersive mode it does nothing.
func (g *Gamepad) Poll(ctrl *controller.Controller) {
	if ctrl.Mode() != controller.Immersive {
		g.held = [2]bool{}
		g.started = false
		return
	}

	im := ctrl.Immersive()
	var state *glfw.GamepadState
	if g.joystick.Present() && g.joystick.IsGamepad() {
		state = g.joystick.GetGamepadState()
	}
	if state == nil {
		// Seed the standing pose once so the session opens at eye height.
		if !g.started {
			ctrl.SetHeadPose(standingHead, mgl32.QuatIdent())
			g.started = true
		}
		ctrl.LoseHeadTracking()
		im.Disconnect(input.LeftHand)
		im.Disconnect(input.RightHand)
		return
	}
	ctrl.SetHeadPose(standingHead, mgl32.QuatIdent())
	g.started = true

	// GLFW gamepad Y axes are positive toward the user, as xr-standard
	// thumbsticks are.
	im.SetController(input.LeftHand, input.Controller{
		Connected:   true,
		Position:    leftHandPos,
		Orientation: handAim,
		Thumbstick:  mgl32.Vec2{state.Axes[glfw.AxisLeftX], state.Axes[glfw.AxisLeftY]},
	})
	im.SetController(input.RightHand, input.Controller{
		Connected:   true,
		Position:    rightHandPos,
		Orientation: handAim,
		Thumbstick:  mgl32.Vec2{state.Axes[glfw.AxisRightX], state.Axes[glfw.AxisRightY]},
	})

	g.trigger(ctrl, input.LeftHand, state.Axes[glfw.AxisLeftTrigger] > triggerThreshold)
	g.trigger(ctrl, input.RightHand, state.Axes[glfw.AxisRightTrigger] > triggerThreshold ||
		state.Buttons[glfw.ButtonA] == glfw.Press)
}

func (g *Gamepad) trigger(ctrl *controller.Controller, h input.Hand, pressed bool) {
	switch {
	case pressed && !g.held[h]:
		ctrl.Select(h)
	case !pressed && g.held[h]:
		ctrl.Release(h)
	}
	g.held[h] = pressed
}
