// Package rig holds the viewer's transform hierarchy and the rules that
// keep its horizon level.
//
// The chain is Position -> Yaw -> Pitch -> View. Mouse, keyboard and touch
// drive the Yaw and Pitch nodes through Orientation. While an HMD is tracked
// the View node receives the head pose instead and the Yaw/Pitch nodes are
// held at identity.
package rig

import "github.com/go-gl/mathgl/mgl32"

// Rig is the four-node transform chain plus the orientation that feeds it.
type Rig struct {
	Position  Node
	YawNode   Node
	PitchNode Node
	View      Node

	orientation Orientation
	tracked     bool

	// Last accepted head pose in tracking space.
	headPosition    mgl32.Vec3
	headOrientation mgl32.Quat
}

// New creates a rig standing at start, looking down -Z.
func New(start mgl32.Vec3) *Rig {
	return &Rig{
		Position:  Node{Name: "position", Translation: start},
		YawNode:   Node{Name: "yaw"},
		PitchNode: Node{Name: "pitch"},
		View:      Node{Name: "view"},

		headOrientation: mgl32.QuatIdent(),
	}
}

// Nodes returns the chain root first.
func (r *Rig) Nodes() []*Node {
	return []*Node{&r.Position, &r.YawNode, &r.PitchNode, &r.View}
}

// Orientation returns a copy of the current yaw/pitch state.
func (r *Rig) Orientation() Orientation {
	return r.orientation
}

// SetOrientation replaces yaw and pitch, pitch clamped.
func (r *Rig) SetOrientation(yaw, pitch float32) {
	r.orientation = NewOrientation(yaw, pitch)
	r.sync()
}

// Tracked reports whether a head pose currently drives the View node.
func (r *Rig) Tracked() bool {
	return r.tracked
}

// ApplyLook feeds a look delta into the orientation. While tracked only the
// yaw part is kept; it turns the body under the head pose. It returns false
// when the delta was rejected.
func (r *Rig) ApplyLook(delta LookIntent) bool {
	if r.tracked {
		delta.DeltaPitch = 0
	}
	if !r.orientation.Apply(delta) {
		return false
	}
	r.sync()
	return true
}

// SetTracked switches orientation authority between the Yaw/Pitch nodes
// and the tracked head pose.
func (r *Rig) SetTracked(tracked bool) {
	if r.tracked == tracked {
		return
	}
	r.tracked = tracked
	r.View.Reset()
	r.headPosition = mgl32.Vec3{}
	r.headOrientation = mgl32.QuatIdent()
	r.sync()
}

// SetHeadPose drives the View node from a tracked HMD pose. The body yaw
// from Orientation is composed on top so stick turning still works. The
// pose is kept until the next one arrives. It is ignored while untracked
// and for non-finite input.
func (r *Rig) SetHeadPose(position mgl32.Vec3, orientation mgl32.Quat) bool {
	if !r.tracked || !finiteVec(position) || !finiteQuat(orientation) {
		return false
	}
	r.headPosition = position
	r.headOrientation = orientation.Normalize()
	r.sync()
	return true
}

// HeadPose returns the last accepted head pose in tracking space. Before
// any pose arrives it is the identity at the tracking origin.
func (r *Rig) HeadPose() (mgl32.Vec3, mgl32.Quat) {
	return r.headPosition, r.headOrientation
}

// Heading is the yaw used for planar movement. While tracked it is the
// head's own heading, so stick forward follows where the viewer faces
// without picking up head pitch.
func (r *Rig) Heading() float32 {
	if r.tracked {
		return r.View.Rotation.Yaw
	}
	return r.orientation.Wrapped()
}

// Translate moves the Position node.
func (r *Rig) Translate(d mgl32.Vec3) {
	if !finiteVec(d) {
		return
	}
	r.Position.Translation = r.Position.Translation.Add(d)
}

// World returns the View node's world transform.
func (r *Rig) World() mgl32.Mat4 {
	m := mgl32.Ident4()
	for _, n := range r.Nodes() {
		m = m.Mul4(n.Local())
	}
	return m
}

// ViewMatrix is the inverse of World, ready for a renderer.
func (r *Rig) ViewMatrix() mgl32.Mat4 {
	return r.World().Inv()
}

// EyePosition returns the world-space viewpoint.
func (r *Rig) EyePosition() mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3{}, r.World())
}

// sync writes the orientation into the Yaw and Pitch nodes. While tracked
// it holds them at identity and composes the body yaw with the head pose
// into the View node instead.
func (r *Rig) sync() {
	if r.tracked {
		r.YawNode.Rotation = Euler{}
		r.PitchNode.Rotation = Euler{}
		body := r.body()
		r.View.Translation = body.Rotate(r.headPosition)
		r.View.SetQuat(body.Mul(r.headOrientation))
		return
	}
	r.YawNode.Rotation = Euler{Yaw: r.orientation.Wrapped()}
	r.PitchNode.Rotation = Euler{Pitch: r.orientation.Pitch()}
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func finiteQuat(q mgl32.Quat) bool {
	return finite(q.W) && finiteVec(q.V) && q.Len() > 1e-6
}

// TrackedToWorld maps a pose from tracking space (where the HMD and
// controllers report) into world space, applying the body yaw and the
// Position node.
func (r *Rig) TrackedToWorld(position mgl32.Vec3, orientation mgl32.Quat) (mgl32.Vec3, mgl32.Quat) {
	body := r.body()
	p := r.Position.Translation.Add(body.Rotate(position))
	return p, body.Mul(orientation)
}

func (r *Rig) body() mgl32.Quat {
	return mgl32.QuatRotate(r.orientation.Wrapped(), axisY)
}
