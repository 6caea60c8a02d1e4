package rig

// RollGuard zeroes the roll of every node in a rig. It runs once per frame
// after all orientation and movement updates and before the frame is
// presented.
type RollGuard struct {
	// PassHeadRoll leaves the View node's roll alone while a head pose is
	// tracked, so physical head tilt reaches the viewer.
	PassHeadRoll bool
}

// Enforce clears roll on the rig. It is idempotent.
func (g RollGuard) Enforce(r *Rig) {
	for _, n := range r.Nodes() {
		if n == &r.View && r.tracked && g.PassHeadRoll {
			continue
		}
		n.Rotation.Roll = 0
	}
	// Position carries no rotation at all.
	r.Position.Rotation = Euler{}
}

// Level reports whether every node guarded by g has exactly zero roll.
func (g RollGuard) Level(r *Rig) bool {
	for _, n := range r.Nodes() {
		if n == &r.View && r.tracked && g.PassHeadRoll {
			continue
		}
		if n.Rotation.Roll != 0 {
			return false
		}
	}
	return true
}
