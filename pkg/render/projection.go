package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection maintains the perspective matrix for the current framebuffer.
type Projection struct {
	fov    float32 // degrees
	width  int
	height int
	matrix mgl32.Mat4
}

// NewProjection creates a projection for a framebuffer of the given size.
func NewProjection(fov float32, width, height int) *Projection {
	if fov <= 0 {
		fov = DefaultFOV
	}
	p := &Projection{fov: mgl32.Clamp(fov, MinFOV, MaxFOV), width: width, height: height}
	p.update()
	return p
}

func (p *Projection) update() {
	aspect := float32(1)
	if p.width > 0 && p.height > 0 {
		aspect = float32(p.width) / float32(p.height)
	}
	p.matrix = mgl32.Perspective(mgl32.DegToRad(p.fov), aspect, NearPlane, FarPlane)
}

// Resize updates the aspect ratio. A zero-sized (minimized) framebuffer
// keeps the previous matrix.
func (p *Projection) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width = width
	p.height = height
	p.update()
}

// Zoom narrows or widens the field of view by a scroll offset.
func (p *Projection) Zoom(yoffset float64) {
	p.fov = mgl32.Clamp(p.fov-float32(yoffset), MinFOV, MaxFOV)
	p.update()
}

// FOV returns the vertical field of view in degrees.
func (p *Projection) FOV() float32 {
	return p.fov
}

// Matrix returns the current projection matrix
func (p *Projection) Matrix() mgl32.Mat4 {
	return p.matrix
}
