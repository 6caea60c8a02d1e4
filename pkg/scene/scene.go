// Package scene is a minimal queryable collection of surfaces used for
// teleport ray casts. It knows nothing about rendering or asset formats.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is the nearest intersection found by a ray cast.
type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
	Surface  string
}

// Surface is anything a ray can intersect. dir is unit length. Implementations
// return the distance along the ray and the surface normal at the hit.
type Surface interface {
	Intersect(origin, dir mgl32.Vec3) (dist float32, normal mgl32.Vec3, ok bool)
}

type entry struct {
	name    string
	surface Surface
	visible bool
}

// Scene holds named surfaces. Hidden surfaces are skipped by Raycast.
type Scene struct {
	entries []entry
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add registers a visible surface. Adding an existing name replaces it.
func (s *Scene) Add(name string, surface Surface) {
	for i := range s.entries {
		if s.entries[i].name == name {
			s.entries[i].surface = surface
			s.entries[i].visible = true
			return
		}
	}
	s.entries = append(s.entries, entry{name: name, surface: surface, visible: true})
}

// Remove deletes a surface by name.
func (s *Scene) Remove(name string) {
	for i := range s.entries {
		if s.entries[i].name == name {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// SetVisible shows or hides a surface. It reports whether the name exists.
func (s *Scene) SetVisible(name string, visible bool) bool {
	for i := range s.entries {
		if s.entries[i].name == name {
			s.entries[i].visible = visible
			return true
		}
	}
	return false
}

// Len returns the number of registered surfaces.
func (s *Scene) Len() int {
	return len(s.entries)
}

// Raycast returns the nearest visible hit within maxDist. A zero or
// non-finite direction never hits.
func (s *Scene) Raycast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	l := dir.Len()
	if !finiteVec(origin) || !finiteVec(dir) || l < 1e-8 {
		return Hit{}, false
	}
	dir = dir.Mul(1 / l)

	best := Hit{Distance: float32(math.Inf(1))}
	found := false
	for _, e := range s.entries {
		if !e.visible {
			continue
		}
		d, n, ok := e.surface.Intersect(origin, dir)
		if !ok || d < 0 || d > maxDist || d >= best.Distance {
			continue
		}
		best = Hit{Point: origin.Add(dir.Mul(d)), Normal: n, Distance: d, Surface: e.name}
		found = true
	}
	return best, found
}

func finiteVec(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
