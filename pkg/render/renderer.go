package render

import (
	"fmt"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/internal/config"
	"github.com/leterax/go-horizon/internal/openglhelper"
	"github.com/leterax/go-horizon/pkg/calibration"
	"github.com/leterax/go-horizon/pkg/controller"
	"github.com/leterax/go-horizon/pkg/scene"
)

// Options wires a renderer to the viewpoint controller and its
// collaborators.
type Options struct {
	Display     config.DisplayConfig
	Touch       config.TouchConfig
	Controller  *controller.Controller
	Calibration *calibration.Store
	Marker      *Marker
	// Obstacles are drawn as outlines; they should match the boxes in the
	// teleport scene.
	Obstacles []scene.Box
	Logger    *log.Logger
}

// Renderer owns the window and the main loop. Each frame it polls events,
// ticks the controller and draws the floor grid, obstacles, the calibrated
// model and the teleport marker from the controller's view.
type Renderer struct {
	window      *openglhelper.Window
	projection  *Projection
	ctrl        *controller.Controller
	calibration *calibration.Store
	marker      *Marker
	gamepad     *Gamepad
	touch       config.TouchConfig
	title       string
	logger      *log.Logger

	lineShader *openglhelper.Shader
	grid       *openglhelper.LineMesh
	obstacles  *openglhelper.LineMesh
	model      *openglhelper.LineMesh
	ring       *openglhelper.LineMesh

	lastFrameTime float64
	mouseDown     bool
}

// touchPointer is the touch identifier the left mouse button emulates.
const touchPointer = 0

// NewRenderer creates the window and GL resources.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Controller == nil {
		return nil, fmt.Errorf("renderer needs a controller")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	marker := opts.Marker
	if marker == nil {
		marker = &Marker{}
	}

	window, err := openglhelper.NewWindow(opts.Display.Width, opts.Display.Height, opts.Display.Title, opts.Display.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	shader, err := openglhelper.NewShader(lineVertexShader, lineFragmentShader)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to build line shader: %w", err)
	}

	fbw, fbh := window.GLFWWindow().GetFramebufferSize()
	r := &Renderer{
		window:      window,
		projection:  NewProjection(opts.Display.FOV, fbw, fbh),
		ctrl:        opts.Controller,
		calibration: opts.Calibration,
		marker:      marker,
		gamepad:     NewGamepad(glfw.Joystick1),
		touch:       opts.Touch,
		title:       opts.Display.Title,
		logger:      logger,
		lineShader:  shader,
	}

	r.grid = openglhelper.NewLineMesh(GridLines(GridHalfExtent, GridSpacing), openglhelper.StaticDraw, shader)
	var outlines []float32
	for _, b := range opts.Obstacles {
		outlines = BoxLines(outlines, b, OutlineColor)
	}
	r.obstacles = openglhelper.NewLineMesh(outlines, openglhelper.StaticDraw, shader)
	r.model = openglhelper.NewLineMesh(ModelLines(), openglhelper.StaticDraw, shader)
	r.ring = openglhelper.NewLineMesh(RingLines(MarkerRadius, MarkerSegments, MarkerColor), openglhelper.StaticDraw, shader)

	r.layoutSticks()
	r.ctrl.Coordinator().OnChange(r.modeChanged)
	r.setTitle(r.ctrl.Mode())

	gw := window.GLFWWindow()
	gw.SetKeyCallback(r.keyCallback)
	gw.SetCursorPosCallback(r.cursorPosCallback)
	gw.SetMouseButtonCallback(r.mouseButtonCallback)
	gw.SetScrollCallback(r.scrollCallback)
	gw.SetFramebufferSizeCallback(r.framebufferSizeCallback)
	gw.SetFocusCallback(r.focusCallback)

	return r, nil
}

// Run starts the main rendering loop and releases resources when the
// window closes.
func (r *Renderer) Run() {
	r.lastFrameTime = glfw.GetTime()

	for !r.window.ShouldClose() {
		// Poll first so this frame's tick sees this frame's events.
		r.window.PollEvents()

		currentTime := glfw.GetTime()
		dt := float32(currentTime - r.lastFrameTime)
		r.lastFrameTime = currentTime

		r.gamepad.Poll(r.ctrl)
		frame := r.ctrl.Tick(dt)

		r.render(frame)
		r.window.SwapBuffers()
	}

	r.Cleanup()
}

func (r *Renderer) render(frame controller.Frame) {
	r.window.Clear(ClearColor)

	r.lineShader.Use()
	r.lineShader.SetMat4("projection", r.projection.Matrix())
	r.lineShader.SetMat4("view", frame.View)

	r.grid.Draw(mgl32.Ident4())
	r.obstacles.Draw(mgl32.Ident4())

	model := mgl32.Translate3D(ModelPosition[0], ModelPosition[1], ModelPosition[2])
	if r.calibration != nil {
		model = model.Mul4(r.calibration.Rotation().Mat4())
	}
	r.model.Draw(model)

	if p, ok := r.marker.Point(); ok {
		r.ring.Draw(mgl32.Translate3D(p[0], p[1]+MarkerLift, p[2]))
	}
}

// Cleanup frees all resources
func (r *Renderer) Cleanup() {
	r.grid.Delete()
	r.obstacles.Delete()
	r.model.Delete()
	r.ring.Delete()
	r.lineShader.Delete()
	r.window.Close()
}

func (r *Renderer) modeChanged(from, to controller.Mode) {
	// The pointer is only captured for desktop look.
	if from == controller.Desktop && r.window.IsMouseCaptured() {
		r.setCaptured(false)
	}
	r.mouseDown = false
	r.setTitle(to)
}

func (r *Renderer) setTitle(m controller.Mode) {
	r.window.GLFWWindow().SetTitle(fmt.Sprintf("%s [%s]", r.title, m))
}

func (r *Renderer) setCaptured(captured bool) {
	r.window.SetMouseCaptured(captured)
	r.ctrl.Desktop().SetPointerCaptured(captured)
}

// layoutSticks places the virtual joysticks for the current window size.
func (r *Renderer) layoutSticks() {
	w, h := r.window.GLFWWindow().GetSize()
	move, look := r.touch.Sticks(w, h)
	t := r.ctrl.Touch()
	t.MoveStick.Center, t.MoveStick.Radius, t.MoveStick.DeadZone = move.Center, move.Radius, move.DeadZone
	t.LookStick.Center, t.LookStick.Radius, t.LookStick.DeadZone = look.Center, look.Radius, look.DeadZone
}

func (r *Renderer) toggleSession() {
	if r.ctrl.Mode() == controller.Immersive {
		r.ctrl.SessionEnded()
		return
	}
	r.ctrl.SessionStarted()
}

func (r *Renderer) nudgeCalibration(sign int, large bool) {
	if r.calibration == nil {
		return
	}
	if err := r.calibration.Nudge(sign, large); err != nil {
		r.logger.Printf("calibration: %v", err)
	}
}

// Callback functions
func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		switch key {
		case glfw.KeyEscape:
			if r.window.IsMouseCaptured() {
				r.setCaptured(false)
			} else {
				r.window.SetShouldClose(true)
			}
			return
		case glfw.KeyPageUp:
			r.nudgeCalibration(1, mods&glfw.ModShift != 0)
			return
		case glfw.KeyPageDown:
			r.nudgeCalibration(-1, mods&glfw.ModShift != 0)
			return
		case glfw.KeyF2:
			r.toggleSession()
			return
		}
	}

	// Key state reaches the desktop adapter in every mode; the coordinator
	// decides whether it steers.
	code, ok := KeyCode(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		r.ctrl.Desktop().KeyDown(code)
	case glfw.Release:
		r.ctrl.Desktop().KeyUp(code)
	}
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if r.window.IsMouseCaptured() {
		dx, dy := r.window.CursorDelta(xpos, ypos)
		r.ctrl.Desktop().PointerMoved(dx, dy)
	}
	if r.mouseDown {
		r.ctrl.Touch().TouchMove(touchPointer, float32(xpos), float32(ypos))
	}
}

func (r *Renderer) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	switch r.ctrl.Mode() {
	case controller.Desktop:
		// Click engages look.
		if action == glfw.Press && !r.window.IsMouseCaptured() {
			r.setCaptured(true)
		}
	case controller.Touch:
		// The left button emulates a single finger.
		x, y := w.GetCursorPos()
		switch action {
		case glfw.Press:
			r.mouseDown = true
			r.ctrl.Touch().TouchStart(touchPointer, float32(x), float32(y))
		case glfw.Release:
			r.mouseDown = false
			r.ctrl.Touch().TouchEnd(touchPointer)
		}
	}
}

func (r *Renderer) scrollCallback(_ *glfw.Window, _, yoffset float64) {
	r.projection.Zoom(yoffset)
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
	r.projection.Resize(width, height)
	r.layoutSticks()
}

// focusCallback drops held keys and touches when the window loses focus,
// since their release events will never arrive.
func (r *Renderer) focusCallback(_ *glfw.Window, focused bool) {
	if focused {
		return
	}
	r.ctrl.Desktop().Reset()
	if r.mouseDown {
		r.mouseDown = false
		r.ctrl.Touch().TouchEnd(touchPointer)
	}
}
