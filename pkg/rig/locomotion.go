package rig

import "github.com/go-gl/mathgl/mgl32"

// NominalFrameDelta is the tick used when the host cannot report elapsed
// time. It matches a 72 Hz headset refresh.
const NominalFrameDelta float32 = 1.0 / 72.0

// DefaultMaxFrameDelta caps a single step after a stall.
const DefaultMaxFrameDelta float32 = 0.25

// MoveIntent is a planar movement request. Forward and Strafe are each in
// [-1, 1]; positive values mean forward and right.
type MoveIntent struct {
	Forward float32
	Strafe  float32
}

// Zero reports whether the intent carries no movement.
func (m MoveIntent) Zero() bool {
	return m.Forward == 0 && m.Strafe == 0
}

// Resolve turns a move intent into a world-space displacement using the
// yaw-only basis. Inputs longer than unit length are normalized so the
// result never exceeds speed*dt.
func Resolve(move MoveIntent, yaw, speed, dt float32) mgl32.Vec3 {
	if move.Zero() || !finite(move.Forward) || !finite(move.Strafe) {
		return mgl32.Vec3{}
	}
	forward, right := HorizontalBasis(yaw)
	dir := forward.Mul(move.Forward).Add(right.Mul(move.Strafe))
	if l := dir.Len(); l > 1 {
		dir = dir.Mul(1 / l)
	}
	return dir.Mul(speed * dt)
}

// Locomotion moves a rig at a fixed speed in units per second.
type Locomotion struct {
	Speed         float32
	MaxFrameDelta float32
}

// NewLocomotion returns a locomotion with the given speed and the default
// frame delta cap.
func NewLocomotion(speed float32) Locomotion {
	return Locomotion{Speed: speed, MaxFrameDelta: DefaultMaxFrameDelta}
}

// FrameDelta sanitizes a host-reported elapsed time. Missing or invalid
// values fall back to NominalFrameDelta.
func (l Locomotion) FrameDelta(dt float32) float32 {
	if !finite(dt) || dt <= 0 {
		return NominalFrameDelta
	}
	if l.MaxFrameDelta > 0 && dt > l.MaxFrameDelta {
		return l.MaxFrameDelta
	}
	return dt
}

// Step applies one frame of movement to r along its current heading and
// returns the displacement.
func (l Locomotion) Step(r *Rig, move MoveIntent, dt float32) mgl32.Vec3 {
	d := Resolve(move, r.Heading(), l.Speed, l.FrameDelta(dt))
	r.Translate(d)
	return d
}
