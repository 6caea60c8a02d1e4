package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPlane_Intersect(t *testing.T) {
	floor := Floor(0)

	tests := []struct {
		name   string
		origin mgl32.Vec3
		dir    mgl32.Vec3
		want   float32
		ok     bool
	}{
		{"straight down", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, -1, 0}, 2, true},
		{"angled", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, -1}.Normalize(), float32(math.Sqrt2), true},
		{"parallel", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, 0, false},
		{"pointing up", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}, 0, false},
		{"from below", mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, n, ok := floor.Intersect(tt.origin, tt.dir)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (!approx(d, tt.want) || n != (mgl32.Vec3{0, 1, 0})) {
				t.Errorf("d = %v n = %v, want %v", d, n, tt.want)
			}
		})
	}
}

func TestBox_Intersect(t *testing.T) {
	box := Box{Min: mgl32.Vec3{-1, 0, -6}, Max: mgl32.Vec3{1, 1, -4}}

	d, n, ok := box.Intersect(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 0, -1})
	if !ok || !approx(d, 4) || n != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("front hit = %v %v %v", d, n, ok)
	}

	d, n, ok = box.Intersect(mgl32.Vec3{0, 5, -5}, mgl32.Vec3{0, -1, 0})
	if !ok || !approx(d, 4) || n != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("top hit = %v %v %v", d, n, ok)
	}

	if _, _, ok = box.Intersect(mgl32.Vec3{5, 0.5, 0}, mgl32.Vec3{0, 0, -1}); ok {
		t.Error("miss reported as hit")
	}
	if _, _, ok = box.Intersect(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 0, 1}); ok {
		t.Error("box behind the ray reported as hit")
	}
}

func TestTriangle_Intersect(t *testing.T) {
	tri := Triangle{{-1, 0, -1}, {1, 0, -1}, {0, 0, 1}}

	d, n, ok := tri.Intersect(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{0, -1, 0})
	if !ok || !approx(d, 3) || !n.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("hit = %v %v %v", d, n, ok)
	}
	if _, _, ok = tri.Intersect(mgl32.Vec3{3, 3, 0}, mgl32.Vec3{0, -1, 0}); ok {
		t.Error("outside point reported as hit")
	}
}

func TestNewMesh(t *testing.T) {
	// Two-triangle quad at y=0.5 spanning [-1,1] in x and z.
	pos := []float32{-1, 0.5, -1, 1, 0.5, -1, 1, 0.5, 1, -1, 0.5, 1}
	idx := []uint32{0, 1, 2, 0, 2, 3, 0, 1, 99}
	m := NewMesh(pos, idx)
	if len(m.Triangles) != 2 {
		t.Fatalf("triangles = %d, want 2 (out-of-range index skipped)", len(m.Triangles))
	}
	d, _, ok := m.Intersect(mgl32.Vec3{0.5, 2, -0.5}, mgl32.Vec3{0, -1, 0})
	if !ok || !approx(d, 1.5) {
		t.Errorf("hit = %v %v", d, ok)
	}
}

func TestNewMesh_HugeIndexSkipped(t *testing.T) {
	pos := []float32{-1, 0, -1, 1, 0, -1, 1, 0, 1, -1, 0, 1}
	// 3*0x55555556 wraps to 2 in 32 bits.
	for _, huge := range []uint32{0x55555556, math.MaxUint32} {
		m := NewMesh(pos, []uint32{0, 1, huge, 0, 2, 3})
		if len(m.Triangles) != 1 {
			t.Errorf("index %#x: triangles = %d, want 1", huge, len(m.Triangles))
		}
	}
}

func TestScene_Raycast(t *testing.T) {
	s := New()
	s.Add("floor", Floor(0))
	s.Add("crate", Box{Min: mgl32.Vec3{-1, 0, -6}, Max: mgl32.Vec3{1, 1, -4}})

	origin := mgl32.Vec3{0, 1.6, 0}
	dir := mgl32.Vec3{0, -0.2, -1}

	hit, ok := s.Raycast(origin, dir, 15)
	if !ok || hit.Surface != "crate" {
		t.Fatalf("hit = %+v %v, want crate", hit, ok)
	}

	// Hiding the nearer surface exposes the floor behind it.
	s.SetVisible("crate", false)
	hit, ok = s.Raycast(origin, dir, 15)
	if !ok || hit.Surface != "floor" || !approx(hit.Point.Y(), 0) {
		t.Fatalf("hit = %+v %v, want floor", hit, ok)
	}
	if !approx(hit.Distance, hit.Point.Sub(origin).Len()) {
		t.Errorf("distance %v does not match point", hit.Distance)
	}

	// Out of range.
	if _, ok = s.Raycast(origin, dir, 5); ok {
		t.Error("hit beyond max range")
	}

	if !s.SetVisible("crate", true) || s.SetVisible("missing", true) {
		t.Error("SetVisible existence reporting wrong")
	}
	s.Remove("crate")
	if s.Len() != 1 {
		t.Errorf("Len() = %d after Remove", s.Len())
	}
}

func TestScene_RaycastRejectsBadRays(t *testing.T) {
	s := New()
	s.Add("floor", Floor(0))
	nan := float32(math.NaN())
	if _, ok := s.Raycast(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, 10); ok {
		t.Error("zero direction hit")
	}
	if _, ok := s.Raycast(mgl32.Vec3{nan, 1, 0}, mgl32.Vec3{0, -1, 0}, 10); ok {
		t.Error("NaN origin hit")
	}
}
