package controller

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/input"
	"github.com/leterax/go-horizon/pkg/teleport"
)

// Option is a functional option for configuring a Controller.
type Option func(*Controller)

// WithStart sets the rig's starting position.
func WithStart(p mgl32.Vec3) Option {
	return func(c *Controller) {
		c.start = p
	}
}

// WithMoveSpeed sets locomotion speed in units per second.
func WithMoveSpeed(speed float32) Option {
	return func(c *Controller) {
		c.locomotion.Speed = speed
	}
}

// WithMaxFrameDelta caps the elapsed time a single tick may integrate.
func WithMaxFrameDelta(seconds float32) Option {
	return func(c *Controller) {
		c.locomotion.MaxFrameDelta = seconds
	}
}

// WithTouchCapable records the startup touch feature detection. It selects
// Touch instead of Desktop as the non-immersive mode.
func WithTouchCapable(capable bool) Option {
	return func(c *Controller) {
		c.touchCapable = capable
	}
}

// WithDesktop supplies a configured desktop adapter.
func WithDesktop(d *input.Desktop) Option {
	return func(c *Controller) {
		c.desktop = d
	}
}

// WithTouch supplies a configured touch adapter.
func WithTouch(t *input.Touch) Option {
	return func(c *Controller) {
		c.touch = t
	}
}

// WithImmersive supplies a configured immersive adapter.
func WithImmersive(im *input.Immersive) Option {
	return func(c *Controller) {
		c.immersive = im
	}
}

// WithHeadRoll chooses whether physical HMD roll reaches the view. The
// default suppresses it like every other roll source.
func WithHeadRoll(pass bool) Option {
	return func(c *Controller) {
		c.guard.PassHeadRoll = pass
	}
}

// WithTeleport sets the scene teleport rays are cast against and the
// maximum target distance.
func WithTeleport(scene teleport.Raycaster, maxRange float32) Option {
	return func(c *Controller) {
		c.scene = scene
		c.maxRange = maxRange
	}
}

// WithTeleportHand picks the controller that aims and selects.
func WithTeleportHand(h input.Hand) Option {
	return func(c *Controller) {
		c.teleportHand = h
	}
}

// WithIndicator sets the teleport aim marker.
func WithIndicator(ind teleport.Indicator) Option {
	return func(c *Controller) {
		c.indicator = ind
	}
}

// WithLogger sets the logger for mode transitions.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}
