package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pitch limits in radians. Both ends are reachable.
const (
	MaxPitch = math.Pi / 2
	MinPitch = -math.Pi / 2
)

// LookIntent is a change of view direction for one event or frame.
type LookIntent struct {
	DeltaYaw   float32
	DeltaPitch float32
}

// Zero reports whether the intent carries no rotation.
func (l LookIntent) Zero() bool {
	return l.DeltaYaw == 0 && l.DeltaPitch == 0
}

// Orientation is the viewer's yaw and pitch. There is no roll field.
// Yaw accumulates in float64 so small deltas stay exact after many turns.
type Orientation struct {
	yaw   float64
	pitch float32
}

// NewOrientation returns an orientation with the given angles, pitch clamped.
func NewOrientation(yaw, pitch float32) Orientation {
	return Orientation{yaw: float64(yaw), pitch: mgl32.Clamp(pitch, MinPitch, MaxPitch)}
}

// Yaw returns the accumulated yaw in radians. It is never wrapped.
func (o Orientation) Yaw() float32 {
	return float32(o.yaw)
}

// Wrapped returns yaw reduced to [-π, π]. It is the same direction as Yaw
// with full float32 precision, for building rotations.
func (o Orientation) Wrapped() float32 {
	return float32(math.Remainder(o.yaw, 2*math.Pi))
}

// Pitch returns the pitch in radians, always within [MinPitch, MaxPitch].
func (o Orientation) Pitch() float32 {
	return o.pitch
}

// Apply adds a look delta. Deltas that are NaN or infinite are rejected and
// the orientation is left untouched.
func (o *Orientation) Apply(delta LookIntent) bool {
	if !finite(delta.DeltaYaw) || !finite(delta.DeltaPitch) {
		return false
	}
	o.yaw += float64(delta.DeltaYaw)
	o.pitch = mgl32.Clamp(o.pitch+delta.DeltaPitch, MinPitch, MaxPitch)
	return true
}

// Basis returns the horizontal forward and right unit vectors for the
// current yaw. Pitch never contributes.
func (o Orientation) Basis() (forward, right mgl32.Vec3) {
	return HorizontalBasis(o.Wrapped())
}

// HorizontalBasis returns the Y=0 forward and right vectors for a yaw angle.
// Yaw 0 faces -Z with +X to the right.
func HorizontalBasis(yaw float32) (forward, right mgl32.Vec3) {
	s, c := math.Sincos(float64(yaw))
	forward = mgl32.Vec3{float32(-s), 0, float32(-c)}
	right = mgl32.Vec3{float32(c), 0, float32(-s)}
	return forward, right
}
