// Package controller runs one frame of the viewpoint pipeline: sample the
// active input adapter, update orientation, move, resolve teleports and
// level the horizon, in that order.
package controller

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/input"
	"github.com/leterax/go-horizon/pkg/rig"
	"github.com/leterax/go-horizon/pkg/teleport"
)

// Frame is what the renderer consumes after a tick.
type Frame struct {
	Mode       Mode
	View       mgl32.Mat4
	World      mgl32.Mat4
	Eye        mgl32.Vec3
	Position   mgl32.Vec3
	Yaw        float32
	Pitch      float32
	Teleport   teleport.Target
	Teleported bool

	// HeadTracked is false in immersive mode while the headset reports no
	// pose; the view then holds the last pose and still follows stick turns.
	HeadTracked bool
}

type headPose struct {
	position    mgl32.Vec3
	orientation mgl32.Quat
	pending     bool // a pose arrived since the last tick
	tracking    bool
}

// Controller owns the rig and the adapters for the life of the process.
// It is not safe for concurrent use; call it from the render loop.
type Controller struct {
	rig          *rig.Rig
	guard        rig.RollGuard
	locomotion   rig.Locomotion
	desktop      *input.Desktop
	touch        *input.Touch
	immersive    *input.Immersive
	coordinator  *Coordinator
	teleport     *teleport.Resolver
	teleportHand input.Hand
	head         headPose
	logger       *log.Logger

	start        mgl32.Vec3
	touchCapable bool
	scene        teleport.Raycaster
	maxRange     float32
	indicator    teleport.Indicator
}

// New creates a controller. Without options it starts at the origin in
// desktop mode with default sensitivities and no teleport scene.
func New(options ...Option) *Controller {
	c := &Controller{
		guard:        rig.RollGuard{},
		locomotion:   rig.NewLocomotion(3.0),
		teleportHand: input.RightHand,
		maxRange:     teleport.DefaultMaxRange,
	}
	for _, option := range options {
		option(c)
	}

	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.desktop == nil {
		c.desktop = input.NewDesktop(input.DefaultMouseSensitivity, nil)
	}
	if c.touch == nil {
		c.touch = input.NewTouch(input.Joystick{}, input.Joystick{}, 2, 0)
	}
	if c.immersive == nil {
		c.immersive = input.NewImmersive(0.15, 2)
	}

	c.rig = rig.New(c.start)
	c.teleport = teleport.NewResolver(c.scene, c.maxRange)
	c.teleport.Indicator = c.indicator
	c.coordinator = NewCoordinator(c.touchCapable, c.desktop, c.touch, c.immersive)
	c.coordinator.OnChange(c.modeChanged)
	return c
}

func (c *Controller) modeChanged(from, to Mode) {
	c.rig.SetTracked(to == Immersive)
	c.teleport.Cancel()
	c.head = headPose{}
	c.logger.Printf("controller: mode %s -> %s", from, to)
}

// Rig returns the transform rig.
func (c *Controller) Rig() *rig.Rig { return c.rig }

// Desktop returns the desktop adapter for event forwarding.
func (c *Controller) Desktop() *input.Desktop { return c.desktop }

// Touch returns the touch adapter for event forwarding.
func (c *Controller) Touch() *input.Touch { return c.touch }

// Immersive returns the immersive adapter for controller state updates.
func (c *Controller) Immersive() *input.Immersive { return c.immersive }

// Teleport returns the teleport resolver.
func (c *Controller) Teleport() *teleport.Resolver { return c.teleport }

// Coordinator returns the mode coordinator.
func (c *Controller) Coordinator() *Coordinator { return c.coordinator }

// Mode returns the active mode.
func (c *Controller) Mode() Mode { return c.coordinator.Mode() }

// SessionStarted signals that an immersive presentation session began.
func (c *Controller) SessionStarted() { c.coordinator.SessionStarted() }

// SessionEnded signals that the immersive session ended.
func (c *Controller) SessionEnded() { c.coordinator.SessionEnded() }

// SetHeadPose records the latest tracked HMD pose in tracking space. It is
// applied on the next tick and ignored outside immersive mode.
func (c *Controller) SetHeadPose(position mgl32.Vec3, orientation mgl32.Quat) {
	if c.Mode() != Immersive {
		return
	}
	c.head = headPose{position: position, orientation: orientation, pending: true, tracking: true}
}

// LoseHeadTracking marks the headset as untracked. The view keeps the last
// pose it received until SetHeadPose is called again.
func (c *Controller) LoseHeadTracking() {
	c.head.tracking = false
}

// Select forwards a controller select press. Only the teleport hand counts
// and only in immersive mode.
func (c *Controller) Select(h input.Hand) {
	if c.Mode() == Immersive && h == c.teleportHand {
		c.teleport.Select()
	}
}

// Release forwards a controller select release.
func (c *Controller) Release(h input.Hand) {
	if c.Mode() == Immersive && h == c.teleportHand {
		c.teleport.Release()
	}
}

// Tick advances one frame. dt is the elapsed time in seconds; zero or
// invalid values fall back to the nominal 1/72 s tick.
func (c *Controller) Tick(dt float32) Frame {
	dt = c.locomotion.FrameDelta(dt)
	immersive := c.Mode() == Immersive

	look, move := c.coordinator.Sample(dt)
	c.rig.ApplyLook(look)
	if immersive && c.head.pending {
		c.rig.SetHeadPose(c.head.position, c.head.orientation)
		c.head.pending = false
	}

	c.locomotion.Step(c.rig, move, dt)

	var teleported bool
	if immersive {
		if p, ok := c.teleport.Apply(c.rig.Position.Translation); ok {
			c.rig.Position.Translation = p
			teleported = true
		}
		origin, dir, ok := c.aimRay()
		c.teleport.Update(origin, dir, ok)
	}

	c.guard.Enforce(c.rig)

	o := c.rig.Orientation()
	return Frame{
		Mode:        c.Mode(),
		View:        c.rig.ViewMatrix(),
		World:       c.rig.World(),
		Eye:         c.rig.EyePosition(),
		Position:    c.rig.Position.Translation,
		Yaw:         o.Yaw(),
		Pitch:       o.Pitch(),
		Teleport:    c.teleport.Target(),
		Teleported:  teleported,
		HeadTracked: immersive && c.head.tracking,
	}
}

// aimRay returns the teleport controller's pointing ray in world space.
func (c *Controller) aimRay() (origin, dir mgl32.Vec3, ok bool) {
	ctrl, connected := c.immersive.Controller(c.teleportHand)
	if !connected || !validQuat(ctrl.Orientation) {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	p, q := c.rig.TrackedToWorld(ctrl.Position, ctrl.Orientation.Normalize())
	return p, q.Rotate(mgl32.Vec3{0, 0, -1}), true
}

func validQuat(q mgl32.Quat) bool {
	l := float64(q.Len())
	return !math.IsNaN(l) && !math.IsInf(l, 0) && l > 1e-6
}
