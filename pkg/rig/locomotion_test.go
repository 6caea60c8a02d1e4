package rig

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestResolve(t *testing.T) {
	const speed, dt = 3.0, 0.5

	tests := []struct {
		name string
		move MoveIntent
		yaw  float32
		want mgl32.Vec3
	}{
		{"idle", MoveIntent{}, 0, mgl32.Vec3{}},
		{"forward", MoveIntent{Forward: 1}, 0, mgl32.Vec3{0, 0, -1.5}},
		{"back", MoveIntent{Forward: -1}, 0, mgl32.Vec3{0, 0, 1.5}},
		{"strafe right", MoveIntent{Strafe: 1}, 0, mgl32.Vec3{1.5, 0, 0}},
		{"forward turned left", MoveIntent{Forward: 1}, math.Pi / 2, mgl32.Vec3{-1.5, 0, 0}},
		{"half stick", MoveIntent{Forward: 0.5}, 0, mgl32.Vec3{0, 0, -0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.move, tt.yaw, speed, dt)
			if !got.ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_DiagonalNormalized(t *testing.T) {
	const speed, dt = 3.0, 1.0 / 72.0
	for _, yaw := range []float32{0, 0.4, -2.2} {
		got := Resolve(MoveIntent{Forward: 1, Strafe: 1}, yaw, speed, dt)
		if math.Abs(float64(got.Len())-speed*dt) > 1e-6 {
			t.Errorf("yaw %v: |d| = %v, want %v", yaw, got.Len(), speed*dt)
		}
	}
}

func TestLocomotion_IgnoresPitch(t *testing.T) {
	r := New(mgl32.Vec3{})
	r.SetOrientation(0.3, math.Pi/2)
	loco := NewLocomotion(2)

	d := loco.Step(r, MoveIntent{Forward: 1}, 0.1)
	if d.Y() != 0 {
		t.Errorf("vertical displacement %v while looking straight up", d.Y())
	}
	forward, _ := HorizontalBasis(0.3)
	if want := forward.Mul(0.2); !d.ApproxEqualThreshold(want, eps) {
		t.Errorf("displacement = %v, want %v", d, want)
	}
	if !r.Position.Translation.ApproxEqualThreshold(d, eps) {
		t.Errorf("position = %v, want %v", r.Position.Translation, d)
	}
}

func TestLocomotion_FrameDelta(t *testing.T) {
	loco := NewLocomotion(1)

	tests := []struct {
		name string
		dt   float32
		want float32
	}{
		{"normal", 0.016, 0.016},
		{"zero", 0, NominalFrameDelta},
		{"negative", -1, NominalFrameDelta},
		{"nan", float32(math.NaN()), NominalFrameDelta},
		{"stall", 3, DefaultMaxFrameDelta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loco.FrameDelta(tt.dt); got != tt.want {
				t.Errorf("FrameDelta(%v) = %v, want %v", tt.dt, got, tt.want)
			}
		})
	}
}

func TestLocomotion_TrackedUsesHeadHeading(t *testing.T) {
	r := New(mgl32.Vec3{})
	r.SetTracked(true)
	// Head turned 90° left and tilted down hard.
	head := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(-1.2, mgl32.Vec3{1, 0, 0}))
	r.SetHeadPose(mgl32.Vec3{}, head)

	d := NewLocomotion(1).Step(r, MoveIntent{Forward: 1}, 0.2)
	if !d.ApproxEqualThreshold(mgl32.Vec3{-0.2, 0, 0}, 1e-4) {
		t.Errorf("displacement = %v, want -X", d)
	}
}
