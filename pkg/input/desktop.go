package input

import (
	"math"

	"github.com/leterax/go-horizon/pkg/rig"
)

// DefaultMouseSensitivity is radians of look per pixel of relative motion.
const DefaultMouseSensitivity = 0.002

// Direction is a discrete movement key role.
type Direction int

const (
	DirNone Direction = iota
	DirForward
	DirBack
	DirLeft
	DirRight
)

// DefaultBindings maps DOM-style key codes to directions.
func DefaultBindings() map[string]Direction {
	return map[string]Direction{
		"KeyW":       DirForward,
		"KeyS":       DirBack,
		"KeyA":       DirLeft,
		"KeyD":       DirRight,
		"ArrowUp":    DirForward,
		"ArrowDown":  DirBack,
		"ArrowLeft":  DirLeft,
		"ArrowRight": DirRight,
	}
}

// ParseDirection converts a config name ("forward", "back", "left",
// "right") to a Direction.
func ParseDirection(name string) Direction {
	switch name {
	case "forward":
		return DirForward
	case "back", "backward":
		return DirBack
	case "left":
		return DirLeft
	case "right":
		return DirRight
	}
	return DirNone
}

// Desktop maps captured relative mouse motion to look and held keys to
// movement.
type Desktop struct {
	Sensitivity float32

	bindings map[string]Direction
	held     map[string]bool
	captured bool
	dx, dy   float64
}

var _ Adapter = (*Desktop)(nil)

// NewDesktop creates a desktop adapter. A nil bindings map selects
// DefaultBindings.
func NewDesktop(sensitivity float32, bindings map[string]Direction) *Desktop {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Desktop{
		Sensitivity: sensitivity,
		bindings:    bindings,
		held:        make(map[string]bool),
	}
}

func (d *Desktop) Capabilities() Capability {
	return PointerLook | DirectionalMove
}

// SetPointerCaptured engages or releases pointer capture. Releasing drops
// any motion not yet sampled.
func (d *Desktop) SetPointerCaptured(captured bool) {
	d.captured = captured
	if !captured {
		d.dx, d.dy = 0, 0
	}
}

// PointerCaptured reports whether relative motion is being sampled.
func (d *Desktop) PointerCaptured() bool {
	return d.captured
}

// PointerMoved records relative pointer motion in pixels. Motion outside
// capture and malformed deltas are ignored.
func (d *Desktop) PointerMoved(dx, dy float64) {
	if !d.captured {
		return
	}
	if math.IsNaN(dx) || math.IsNaN(dy) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return
	}
	d.dx += dx
	d.dy += dy
}

// KeyDown marks a key as held. Unbound keys are ignored.
func (d *Desktop) KeyDown(code string) {
	if _, ok := d.bindings[code]; ok {
		d.held[code] = true
	}
}

// KeyUp releases a key.
func (d *Desktop) KeyUp(code string) {
	delete(d.held, code)
}

// Bind assigns a key code to a direction. DirNone or any value outside
// DirForward..DirRight removes the binding.
func (d *Desktop) Bind(code string, dir Direction) {
	if dir < DirForward || dir > DirRight {
		delete(d.bindings, code)
		delete(d.held, code)
		return
	}
	d.bindings[code] = dir
}

func (d *Desktop) Sample(dt float32) (rig.LookIntent, rig.MoveIntent) {
	look := rig.LookIntent{
		DeltaYaw:   -float32(d.dx) * d.Sensitivity,
		DeltaPitch: -float32(d.dy) * d.Sensitivity,
	}
	d.dx, d.dy = 0, 0

	var dirs [5]bool
	for code := range d.held {
		dirs[d.bindings[code]] = true
	}

	var move rig.MoveIntent
	if dirs[DirForward] {
		move.Forward++
	}
	if dirs[DirBack] {
		move.Forward--
	}
	if dirs[DirRight] {
		move.Strafe++
	}
	if dirs[DirLeft] {
		move.Strafe--
	}
	if move.Forward != 0 && move.Strafe != 0 {
		move.Forward *= math.Sqrt2 / 2
		move.Strafe *= math.Sqrt2 / 2
	}
	return look, move
}

func (d *Desktop) Reset() {
	d.dx, d.dy = 0, 0
	clear(d.held)
}
