package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/rig"
)

// Joystick is a virtual thumbstick: a circular hit region in screen pixels
// whose knob offset is read as a unit vector.
type Joystick struct {
	Center   mgl32.Vec2
	Radius   float32
	DeadZone float32

	active bool
	offset mgl32.Vec2
}

// Contains reports whether a screen point falls inside the joystick base.
func (j *Joystick) Contains(p mgl32.Vec2) bool {
	return p.Sub(j.Center).Len() <= j.Radius
}

// Active reports whether a touch currently holds the knob.
func (j *Joystick) Active() bool {
	return j.active
}

// Vector returns the knob deflection clamped to the unit disc, with the
// dead-zone applied. Up on screen is negative Y.
func (j *Joystick) Vector() mgl32.Vec2 {
	if !j.active || j.Radius <= 0 {
		return mgl32.Vec2{}
	}
	return ApplyDeadZone(j.offset.Mul(1/j.Radius), j.DeadZone)
}

func (j *Joystick) grab(p mgl32.Vec2) {
	j.active = true
	j.offset = p.Sub(j.Center)
}

func (j *Joystick) drag(p mgl32.Vec2) {
	j.offset = p.Sub(j.Center)
}

func (j *Joystick) release() {
	j.active = false
	j.offset = mgl32.Vec2{}
}

type touchRole int

const (
	roleMoveStick touchRole = iota + 1
	roleLookStick
	roleDrag
	roleIgnored
)

// Touch drives movement and look from two virtual joysticks, plus an
// optional one-finger drag anywhere outside them.
type Touch struct {
	MoveStick Joystick
	LookStick Joystick

	// LookSpeed is radians per second at full look-stick deflection.
	LookSpeed float32
	// DragSensitivity is radians per pixel of drag. Zero disables drag look.
	DragSensitivity float32

	roles    map[int]touchRole
	dragging bool
	dragLast mgl32.Vec2
	dragDX   float32
	dragDY   float32
}

var _ Adapter = (*Touch)(nil)

// NewTouch creates a touch adapter with the given sticks.
func NewTouch(moveStick, lookStick Joystick, lookSpeed, dragSensitivity float32) *Touch {
	return &Touch{
		MoveStick:       moveStick,
		LookStick:       lookStick,
		LookSpeed:       lookSpeed,
		DragSensitivity: dragSensitivity,
		roles:           make(map[int]touchRole),
	}
}

func (t *Touch) Capabilities() Capability {
	return ThumbstickMove | ThumbstickLook | PointerLook
}

// TouchStart binds a new touch to exactly one role for its lifetime.
func (t *Touch) TouchStart(id int, x, y float32) {
	if _, ok := t.roles[id]; ok {
		return
	}
	p := mgl32.Vec2{x, y}
	if !finite2(p) {
		return
	}

	switch {
	case !t.MoveStick.active && t.MoveStick.Contains(p):
		t.MoveStick.grab(p)
		t.roles[id] = roleMoveStick
	case !t.LookStick.active && t.LookStick.Contains(p):
		t.LookStick.grab(p)
		t.roles[id] = roleLookStick
	case !t.dragging && t.DragSensitivity > 0 && !t.MoveStick.Contains(p) && !t.LookStick.Contains(p):
		t.dragging = true
		t.dragLast = p
		t.roles[id] = roleDrag
	default:
		t.roles[id] = roleIgnored
	}
}

// TouchMove updates the touch's position. Unknown identifiers are ignored.
func (t *Touch) TouchMove(id int, x, y float32) {
	p := mgl32.Vec2{x, y}
	if !finite2(p) {
		return
	}
	switch t.roles[id] {
	case roleMoveStick:
		t.MoveStick.drag(p)
	case roleLookStick:
		t.LookStick.drag(p)
	case roleDrag:
		d := p.Sub(t.dragLast)
		t.dragDX += d.X()
		t.dragDY += d.Y()
		t.dragLast = p
	}
}

// TouchEnd releases whatever the touch was bound to. Cancelled touches are
// handled the same way.
func (t *Touch) TouchEnd(id int) {
	switch t.roles[id] {
	case roleMoveStick:
		t.MoveStick.release()
	case roleLookStick:
		t.LookStick.release()
	case roleDrag:
		t.dragging = false
	}
	delete(t.roles, id)
}

// ActiveTouches returns the number of tracked touch points.
func (t *Touch) ActiveTouches() int {
	return len(t.roles)
}

func (t *Touch) Sample(dt float32) (rig.LookIntent, rig.MoveIntent) {
	mv := t.MoveStick.Vector()
	move := rig.MoveIntent{Forward: -mv.Y(), Strafe: mv.X()}

	lv := t.LookStick.Vector()
	step := t.LookSpeed * dt
	look := rig.LookIntent{
		DeltaYaw:   -lv.X()*step - t.dragDX*t.DragSensitivity,
		DeltaPitch: -lv.Y()*step - t.dragDY*t.DragSensitivity,
	}
	t.dragDX, t.dragDY = 0, 0
	return look, move
}

// Reset releases both sticks and any drag. Touches still on the screen stay
// bound as ignored until they end, so they cannot grab a stick mid-gesture.
func (t *Touch) Reset() {
	t.MoveStick.release()
	t.LookStick.release()
	t.dragging = false
	t.dragDX, t.dragDY = 0, 0
	for id := range t.roles {
		t.roles[id] = roleIgnored
	}
}
