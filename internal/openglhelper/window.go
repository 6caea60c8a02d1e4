package openglhelper

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Window handles GLFW window creation and pointer capture.
type Window struct {
	glfwWindow    *glfw.Window
	width         int
	height        int
	mouseCaptured bool

	// Cursor position at the last callback, for turning absolute GLFW
	// positions into deltas.
	lastX, lastY float64
	firstMouse   bool
}

// NewWindow creates a new GLFW window with an OpenGL 4.6 core context.
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	fbw, fbh := glfwWindow.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	return &Window{
		glfwWindow: glfwWindow,
		width:      width,
		height:     height,
		firstMouse: true,
	}, nil
}

// Clear clears color and depth.
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// SetShouldClose asks the main loop to exit after the current frame.
func (w *Window) SetShouldClose(v bool) {
	w.glfwWindow.SetShouldClose(v)
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// Size returns the window dimensions
func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// OnResize tracks a framebuffer resize and resets the viewport.
func (w *Window) OnResize(width, height int) {
	w.width = width
	w.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// GLFWWindow returns the underlying GLFW window
func (w *Window) GLFWWindow() *glfw.Window {
	return w.glfwWindow
}

// SetMouseCaptured captures or releases the mouse cursor. Capture resets
// delta tracking so the first move after engaging does not jump.
func (w *Window) SetMouseCaptured(captured bool) {
	w.mouseCaptured = captured
	w.firstMouse = true

	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.glfwWindow.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// IsMouseCaptured returns whether the mouse is currently captured
func (w *Window) IsMouseCaptured() bool {
	return w.mouseCaptured
}

// CursorDelta converts an absolute cursor position into movement since the
// previous call. The first call after capture reports no movement.
func (w *Window) CursorDelta(xpos, ypos float64) (dx, dy float64) {
	if w.firstMouse {
		w.lastX, w.lastY = xpos, ypos
		w.firstMouse = false
		return 0, 0
	}
	dx, dy = xpos-w.lastX, ypos-w.lastY
	w.lastX, w.lastY = xpos, ypos
	return dx, dy
}
