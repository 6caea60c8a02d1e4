// Package teleport implements point-and-select relocation for immersive
// mode: a controller ray picks a floor point, a select action moves the rig
// there.
package teleport

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/scene"
)

// DefaultMaxRange is the farthest a teleport target may be.
const DefaultMaxRange = 15.0

// State is the aiming state.
type State int

const (
	Idle State = iota
	Aiming
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Aiming:
		return "aiming"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Raycaster is the scene-graph collaborator queried for teleport targets.
type Raycaster interface {
	Raycast(origin, dir mgl32.Vec3, maxDist float32) (scene.Hit, bool)
}

// Indicator is the visual aim marker. Show is called every frame the aim
// is valid.
type Indicator interface {
	Show(point mgl32.Vec3)
	Hide()
}

// Target is the current aim result.
type Target struct {
	Point mgl32.Vec3
	Valid bool
}

// Resolver tracks aim and applies teleports on select.
type Resolver struct {
	MaxRange  float32
	Indicator Indicator

	scene   Raycaster
	state   State
	target  Target
	pending bool
	held    bool
}

// NewResolver creates a resolver casting against s.
func NewResolver(s Raycaster, maxRange float32) *Resolver {
	if maxRange <= 0 {
		maxRange = DefaultMaxRange
	}
	return &Resolver{MaxRange: maxRange, scene: s}
}

// State returns the aiming state.
func (r *Resolver) State() State {
	return r.state
}

// Target returns the last aim result.
func (r *Resolver) Target() Target {
	return r.target
}

// Update re-aims from a world-space controller ray. ok is false when no
// controller is tracked, which returns the resolver to Idle.
func (r *Resolver) Update(origin, dir mgl32.Vec3, ok bool) State {
	if !ok || r.scene == nil {
		r.clear()
		return r.state
	}
	// Select is still held after a teleport: stay idle until release.
	if r.held && r.state == Idle {
		return r.state
	}

	r.state = Aiming
	hit, found := r.scene.Raycast(origin, dir, r.MaxRange)
	if !found || hit.Distance > r.MaxRange || math.IsNaN(float64(hit.Distance)) {
		r.state = Invalid
		r.target = Target{}
		r.hide()
		return r.state
	}

	r.state = Valid
	r.target = Target{Point: hit.Point, Valid: true}
	if r.Indicator != nil {
		r.Indicator.Show(hit.Point)
	}
	return r.state
}

// Select records a trigger press. It is consumed by the next Apply.
func (r *Resolver) Select() {
	r.pending = true
	r.held = true
}

// Release records the trigger being let go.
func (r *Resolver) Release() {
	r.held = false
	if r.state == Idle {
		r.state = Aiming
	}
}

// Apply consumes a pending select. When the aim is valid it returns the new
// rig position: horizontal coordinates from the target, height kept from
// current. Selecting while invalid does nothing.
func (r *Resolver) Apply(current mgl32.Vec3) (mgl32.Vec3, bool) {
	if !r.pending {
		return current, false
	}
	r.pending = false
	if r.state != Valid || !r.target.Valid {
		return current, false
	}

	p := mgl32.Vec3{r.target.Point.X(), current.Y(), r.target.Point.Z()}
	r.state = Idle
	r.target = Target{}
	r.hide()
	return p, true
}

// Cancel drops aim and any pending select, e.g. when immersive mode ends.
func (r *Resolver) Cancel() {
	r.pending = false
	r.held = false
	r.clear()
}

func (r *Resolver) clear() {
	r.state = Idle
	r.target = Target{}
	r.hide()
}

func (r *Resolver) hide() {
	if r.Indicator != nil {
		r.Indicator.Hide()
	}
}
