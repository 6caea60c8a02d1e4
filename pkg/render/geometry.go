package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/scene"
)

func appendLine(v []float32, a, b, color mgl32.Vec3) []float32 {
	return append(v,
		a[0], a[1], a[2], color[0], color[1], color[2],
		b[0], b[1], b[2], color[0], color[1], color[2],
	)
}

// GridLines builds a square floor grid on y=0 centered on the origin. The
// two lines through the origin use AxisColor.
func GridLines(halfExtent int, spacing float32) []float32 {
	var v []float32
	e := float32(halfExtent) * spacing
	for i := -halfExtent; i <= halfExtent; i++ {
		c := GridColor
		if i == 0 {
			c = AxisColor
		}
		o := float32(i) * spacing
		v = appendLine(v, mgl32.Vec3{o, 0, -e}, mgl32.Vec3{o, 0, e}, c)
		v = appendLine(v, mgl32.Vec3{-e, 0, o}, mgl32.Vec3{e, 0, o}, c)
	}
	return v
}

// RingLines builds a flat circle on y=0 as line segments.
func RingLines(radius float32, segments int, color mgl32.Vec3) []float32 {
	if segments < 3 {
		segments = 3
	}
	var v []float32
	point := func(i int) mgl32.Vec3 {
		a := 2 * math.Pi * float64(i) / float64(segments)
		return mgl32.Vec3{radius * float32(math.Cos(a)), 0, radius * float32(math.Sin(a))}
	}
	for i := 0; i < segments; i++ {
		v = appendLine(v, point(i), point(i+1), color)
	}
	return v
}

// BoxLines appends the twelve edges of an axis-aligned box.
func BoxLines(v []float32, b scene.Box, color mgl32.Vec3) []float32 {
	lo, hi := b.Min, b.Max
	c := [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		v = appendLine(v, c[i], c[j], color)
		v = appendLine(v, c[i+4], c[j+4], color)
		v = appendLine(v, c[i], c[i+4], color)
	}
	return v
}

// ModelLines is the stand-in for the calibrated model: a box with an
// "up" spike, so a rolled offset is easy to see against the horizon.
func ModelLines() []float32 {
	v := BoxLines(nil, scene.Box{Min: mgl32.Vec3{-1, -0.5, -0.5}, Max: mgl32.Vec3{1, 0.5, 0.5}}, ModelColor)
	return appendLine(v, mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 1.2, 0}, ModelColor)
}
