package rig

import "github.com/go-gl/mathgl/mgl32"

// Node is one level of the rig hierarchy: a local translation followed by
// a local rotation.
type Node struct {
	Name        string
	Translation mgl32.Vec3
	Rotation    Euler
}

// Local returns the node's local transform T * R.
func (n *Node) Local() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Translation.X(), n.Translation.Y(), n.Translation.Z())
	return t.Mul4(n.Rotation.Mat4())
}

// SetQuat stores an arbitrary rotation, decomposed into YXZ angles.
func (n *Node) SetQuat(q mgl32.Quat) {
	n.Rotation = EulerFromQuat(q)
}

// Reset returns the node to identity rotation and zero translation.
func (n *Node) Reset() {
	n.Translation = mgl32.Vec3{}
	n.Rotation = Euler{}
}
