package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection constants
const (
	DefaultFOV = 70.0
	MinFOV     = 20.0
	MaxFOV     = 100.0

	NearPlane = 0.05
	FarPlane  = 500.0
)

// Scene layout, in world units.
const (
	GridHalfExtent = 20
	GridSpacing    = 1.0
	MarkerRadius   = 0.3
	MarkerSegments = 32
	MarkerLift     = 0.01
)

var (
	ClearColor   = mgl32.Vec4{0.02, 0.02, 0.05, 1.0}
	GridColor    = mgl32.Vec3{0.25, 0.3, 0.4}
	AxisColor    = mgl32.Vec3{0.6, 0.65, 0.8}
	OutlineColor = mgl32.Vec3{0.9, 0.7, 0.3}
	MarkerColor  = mgl32.Vec3{0.3, 1.0, 0.5}
	ModelColor   = mgl32.Vec3{0.8, 0.3, 0.9}

	// ModelPosition is where the calibrated model sits in the world.
	ModelPosition = mgl32.Vec3{0, 1.5, -10}
)

// keyCodes maps GLFW keys to the layout-independent key codes the desktop
// adapter binds against ("KeyW", "ArrowUp").
var keyCodes = map[glfw.Key]string{
	glfw.KeyUp:           "ArrowUp",
	glfw.KeyDown:         "ArrowDown",
	glfw.KeyLeft:         "ArrowLeft",
	glfw.KeyRight:        "ArrowRight",
	glfw.KeySpace:        "Space",
	glfw.KeyEscape:       "Escape",
	glfw.KeyLeftShift:    "ShiftLeft",
	glfw.KeyRightShift:   "ShiftRight",
	glfw.KeyLeftControl:  "ControlLeft",
	glfw.KeyRightControl: "ControlRight",
	glfw.KeyPageUp:       "PageUp",
	glfw.KeyPageDown:     "PageDown",
}

func init() {
	for k := glfw.KeyA; k <= glfw.KeyZ; k++ {
		keyCodes[k] = "Key" + string(rune('A'+int(k-glfw.KeyA)))
	}
	for k := glfw.Key0; k <= glfw.Key9; k++ {
		keyCodes[k] = "Digit" + string(rune('0'+int(k-glfw.Key0)))
	}
}

// KeyCode returns the key code for a GLFW key, or false for keys the viewer
// has no name for.
func KeyCode(key glfw.Key) (string, bool) {
	code, ok := keyCodes[key]
	return code, ok
}
