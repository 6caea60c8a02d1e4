package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// Euler is a rotation expressed as intrinsic Y (yaw), X (pitch), Z (roll)
// angles in radians. Yaw is applied first, roll last.
type Euler struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// Quat composes the angles into a unit quaternion.
func (e Euler) Quat() mgl32.Quat {
	q := mgl32.QuatRotate(e.Yaw, axisY)
	q = q.Mul(mgl32.QuatRotate(e.Pitch, axisX))
	return q.Mul(mgl32.QuatRotate(e.Roll, axisZ)).Normalize()
}

// Mat4 returns the rotation as a homogeneous matrix.
func (e Euler) Mat4() mgl32.Mat4 {
	return e.Quat().Mat4()
}

// EulerFromQuat decomposes a rotation into YXZ angles. Near the poles
// (pitch of ±90°) yaw and roll are degenerate and the whole twist is
// reported as yaw.
func EulerFromQuat(q mgl32.Quat) Euler {
	q = q.Normalize()
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])

	m11 := 1 - 2*(y*y+z*z)
	m13 := 2 * (x*z + w*y)
	m21 := 2 * (x*y + w*z)
	m22 := 1 - 2*(x*x+z*z)
	m23 := 2 * (y*z - w*x)
	m31 := 2 * (x*z - w*y)
	m33 := 1 - 2*(x*x+y*y)

	var e Euler
	e.Pitch = float32(math.Asin(-clamp64(m23, -1, 1)))
	if math.Abs(m23) < 0.9999999 {
		e.Yaw = float32(math.Atan2(m13, m33))
		e.Roll = float32(math.Atan2(m21, m22))
	} else {
		e.Yaw = float32(math.Atan2(-m31, m11))
	}
	return e
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
