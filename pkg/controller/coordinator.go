package controller

import (
	"github.com/leterax/go-horizon/pkg/input"
	"github.com/leterax/go-horizon/pkg/rig"
)

// Mode is the active presentation mode.
type Mode int

const (
	Desktop Mode = iota
	Touch
	Immersive
)

func (m Mode) String() string {
	switch m {
	case Desktop:
		return "desktop"
	case Touch:
		return "touch"
	case Immersive:
		return "immersive"
	}
	return "unknown"
}

// Coordinator picks which adapter's intents reach the rig. Exactly one
// mode is active; the touch/desktop fallback is fixed at construction.
type Coordinator struct {
	adapters [3]input.Adapter
	fallback Mode
	mode     Mode
	onChange []func(from, to Mode)
}

// NewCoordinator creates a coordinator in its fallback mode: Touch when the
// device reported touch support at startup, Desktop otherwise.
func NewCoordinator(touchCapable bool, desktop, touch, immersive input.Adapter) *Coordinator {
	fallback := Desktop
	if touchCapable {
		fallback = Touch
	}
	return &Coordinator{
		adapters: [3]input.Adapter{Desktop: desktop, Touch: touch, Immersive: immersive},
		fallback: fallback,
		mode:     fallback,
	}
}

// Mode returns the active mode.
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// Fallback returns the mode used outside immersive sessions.
func (c *Coordinator) Fallback() Mode {
	return c.fallback
}

// Adapter returns the adapter registered for a mode, which may be nil.
func (c *Coordinator) Adapter(m Mode) input.Adapter {
	if m < Desktop || m > Immersive {
		return nil
	}
	return c.adapters[m]
}

// OnChange registers fn to run after every mode transition.
func (c *Coordinator) OnChange(fn func(from, to Mode)) {
	c.onChange = append(c.onChange, fn)
}

// SessionStarted enters immersive mode. It reports whether the mode changed.
func (c *Coordinator) SessionStarted() bool {
	return c.switchTo(Immersive)
}

// SessionEnded returns to the fallback mode. It reports whether the mode
// changed.
func (c *Coordinator) SessionEnded() bool {
	return c.switchTo(c.fallback)
}

// Sample polls every adapter so none accumulates stale deltas, and returns
// only the active adapter's intents.
func (c *Coordinator) Sample(dt float32) (rig.LookIntent, rig.MoveIntent) {
	var look rig.LookIntent
	var move rig.MoveIntent
	for m, a := range c.adapters {
		if a == nil {
			continue
		}
		l, mv := a.Sample(dt)
		if Mode(m) == c.mode {
			look, move = l, mv
		}
	}
	return look, move
}

func (c *Coordinator) switchTo(to Mode) bool {
	from := c.mode
	if from == to {
		return false
	}
	// Neither side of the switch may carry gesture state across it.
	if a := c.adapters[from]; a != nil {
		a.Reset()
	}
	if a := c.adapters[to]; a != nil {
		a.Reset()
	}
	c.mode = to
	for _, fn := range c.onChange {
		fn(from, to)
	}
	return true
}
