package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ApplyDeadZone clamps v to the unit disc and removes the dead-zone. A
// magnitude below deadZone yields exactly zero; above it the remaining range
// is rescaled to [0, 1] so output starts smoothly at the threshold.
func ApplyDeadZone(v mgl32.Vec2, deadZone float32) mgl32.Vec2 {
	if !finite2(v) {
		return mgl32.Vec2{}
	}
	l := v.Len()
	if l == 0 || l < deadZone || deadZone >= 1 {
		return mgl32.Vec2{}
	}
	if l > 1 {
		v = v.Mul(1 / l)
		l = 1
	}
	if deadZone <= 0 {
		return v
	}
	scale := (l - deadZone) / (1 - deadZone) / l
	return v.Mul(scale)
}

func finite2(v mgl32.Vec2) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
