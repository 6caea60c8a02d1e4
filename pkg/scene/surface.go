package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

// Plane is an infinite plane through Point. Only its front side (the side
// Normal points to) is hit.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// Floor returns an upward-facing plane at height y.
func Floor(y float32) Plane {
	return Plane{Point: mgl32.Vec3{0, y, 0}, Normal: mgl32.Vec3{0, 1, 0}}
}

func (p Plane) Intersect(origin, dir mgl32.Vec3) (float32, mgl32.Vec3, bool) {
	n := p.Normal.Normalize()
	denom := n.Dot(dir)
	if denom > -epsilon {
		return 0, mgl32.Vec3{}, false
	}
	t := p.Point.Sub(origin).Dot(n) / denom
	if t < 0 {
		return 0, mgl32.Vec3{}, false
	}
	return t, n, true
}

// Box is an axis-aligned box.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Intersect uses the slab method. Rays starting inside the box hit the far
// face.
func (b Box) Intersect(origin, dir mgl32.Vec3) (float32, mgl32.Vec3, bool) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	nearAxis, farAxis := -1, -1

	for i := 0; i < 3; i++ {
		if math.Abs(float64(dir[i])) < epsilon {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, i
		}
		if t2 < tFar {
			tFar, farAxis = t2, i
		}
		if tNear > tFar || tFar < 0 {
			return 0, mgl32.Vec3{}, false
		}
	}

	t, axis := tNear, nearAxis
	if t < 0 {
		t, axis = tFar, farAxis
	}
	if axis < 0 {
		return 0, mgl32.Vec3{}, false
	}
	var n mgl32.Vec3
	if dir[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return t, n, true
}

// Triangle is a single double-sided triangle.
type Triangle [3]mgl32.Vec3

// Intersect implements the Möller–Trumbore test.
func (tri Triangle) Intersect(origin, dir mgl32.Vec3) (float32, mgl32.Vec3, bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(float64(det)) < epsilon {
		return 0, mgl32.Vec3{}, false
	}
	inv := 1 / det
	s := origin.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, mgl32.Vec3{}, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, mgl32.Vec3{}, false
	}
	t := e2.Dot(q) * inv
	if t < epsilon {
		return 0, mgl32.Vec3{}, false
	}
	n := e1.Cross(e2).Normalize()
	if n.Dot(dir) > 0 {
		n = n.Mul(-1)
	}
	return t, n, true
}

// Mesh is a triangle soup. The nearest triangle wins.
type Mesh struct {
	Triangles []Triangle
}

// NewMesh builds a mesh from flat xyz positions and triangle indices.
func NewMesh(positions []float32, indices []uint32) Mesh {
	var m Mesh
	vertex := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{positions[3*i], positions[3*i+1], positions[3*i+2]}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		// uint64 keeps 3*index from wrapping for indices near MaxUint32.
		if 3*uint64(max(a, b, c))+2 >= uint64(len(positions)) {
			continue
		}
		m.Triangles = append(m.Triangles, Triangle{vertex(a), vertex(b), vertex(c)})
	}
	return m
}

func (m Mesh) Intersect(origin, dir mgl32.Vec3) (float32, mgl32.Vec3, bool) {
	best := float32(math.Inf(1))
	var normal mgl32.Vec3
	found := false
	for _, tri := range m.Triangles {
		if t, n, ok := tri.Intersect(origin, dir); ok && t < best {
			best, normal, found = t, n, true
		}
	}
	return best, normal, found
}
