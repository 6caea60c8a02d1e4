package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/teleport"
)

// Marker records where the teleport indicator should be drawn. The
// teleport resolver drives it; the renderer reads it each frame.
type Marker struct {
	point   mgl32.Vec3
	visible bool
}

var _ teleport.Indicator = (*Marker)(nil)

func (m *Marker) Show(p mgl32.Vec3) {
	m.point = p
	m.visible = true
}

func (m *Marker) Hide() {
	m.visible = false
}

// Point returns the marker position and whether it is shown.
func (m *Marker) Point() (mgl32.Vec3, bool) {
	return m.point, m.visible
}
