package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/pkg/input"
	"gopkg.in/yaml.v3"
)

// Head roll policies for immersive mode.
const (
	HeadRollSuppress    = "suppress"
	HeadRollPassthrough = "passthrough"
)

// Config holds all controller and host settings
type Config struct {
	Display     DisplayConfig     `yaml:"display"`
	Rig         RigConfig         `yaml:"rig"`
	Desktop     DesktopConfig     `yaml:"desktop"`
	Touch       TouchConfig       `yaml:"touch"`
	Immersive   ImmersiveConfig   `yaml:"immersive"`
	Calibration CalibrationConfig `yaml:"calibration"`
}

type DisplayConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	FOV    float32 `yaml:"fov"` // degrees
	VSync  bool    `yaml:"vsync"`
}

type RigConfig struct {
	StartPosition [3]float32 `yaml:"start_position"`
	MoveSpeed     float32    `yaml:"move_speed"`      // units per second
	MaxFrameDelta float32    `yaml:"max_frame_delta"` // seconds
}

type DesktopConfig struct {
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // radians per pixel
	// Bindings maps key codes ("KeyW", "ArrowUp") to forward/back/left/right.
	Bindings map[string]string `yaml:"bindings"`
}

type TouchConfig struct {
	Enabled         bool    `yaml:"enabled"`
	DeadZone        float32 `yaml:"dead_zone"`       // fraction of stick radius
	JoystickRadius  float32 `yaml:"joystick_radius"` // pixels
	JoystickMargin  float32 `yaml:"joystick_margin"` // pixels from screen edge
	LookSpeed       float32 `yaml:"look_speed"`      // radians per second
	DragSensitivity float32 `yaml:"drag_sensitivity"`
}

type ImmersiveConfig struct {
	DeadZone      float32 `yaml:"dead_zone"`
	TurnSpeed     float32 `yaml:"turn_speed"` // radians per second
	TeleportRange float32 `yaml:"teleport_range"`
	TeleportHand  string  `yaml:"teleport_hand"` // left or right
	HeadRoll      string  `yaml:"head_roll"`     // suppress or passthrough
}

type CalibrationConfig struct {
	Path      string  `yaml:"path"`
	Step      float64 `yaml:"step"`       // degrees
	LargeStep float64 `yaml:"large_step"` // degrees
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  1280,
			Height: 720,
			Title:  "go-horizon",
			FOV:    70,
			VSync:  true,
		},
		Rig: RigConfig{
			StartPosition: [3]float32{0, 0, -4},
			MoveSpeed:     3.0,
			MaxFrameDelta: 0.25,
		},
		Desktop: DesktopConfig{
			MouseSensitivity: input.DefaultMouseSensitivity,
		},
		Touch: TouchConfig{
			DeadZone:        0.15,
			JoystickRadius:  60,
			JoystickMargin:  30,
			LookSpeed:       2.0,
			DragSensitivity: 0.005,
		},
		Immersive: ImmersiveConfig{
			DeadZone:      0.15,
			TurnSpeed:     2.0,
			TeleportRange: 15,
			TeleportHand:  "right",
			HeadRoll:      HeadRollSuppress,
		},
		Calibration: CalibrationConfig{
			Path:      "calibration.yaml",
			Step:      1,
			LargeStep: 10,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when the file
// does not exist.
func LoadOrDefault(filename string) (*Config, error) {
	cfg, err := Load(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", c.Display.Width, c.Display.Height))
	}
	if c.Display.FOV <= 0 || c.Display.FOV >= 180 {
		errs = append(errs, fmt.Errorf("display.fov %v out of range (0, 180)", c.Display.FOV))
	}
	if c.Rig.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("rig.move_speed %v must not be negative", c.Rig.MoveSpeed))
	}
	if c.Touch.DeadZone < 0 || c.Touch.DeadZone >= 1 {
		errs = append(errs, fmt.Errorf("touch.dead_zone %v out of range [0, 1)", c.Touch.DeadZone))
	}
	if c.Touch.JoystickRadius <= 0 {
		errs = append(errs, fmt.Errorf("touch.joystick_radius %v must be positive", c.Touch.JoystickRadius))
	}
	if c.Immersive.DeadZone < 0 || c.Immersive.DeadZone >= 1 {
		errs = append(errs, fmt.Errorf("immersive.dead_zone %v out of range [0, 1)", c.Immersive.DeadZone))
	}
	switch c.Immersive.HeadRoll {
	case HeadRollSuppress, HeadRollPassthrough:
	default:
		errs = append(errs, fmt.Errorf("immersive.head_roll %q must be %q or %q", c.Immersive.HeadRoll, HeadRollSuppress, HeadRollPassthrough))
	}
	switch c.Immersive.TeleportHand {
	case "left", "right":
	default:
		errs = append(errs, fmt.Errorf("immersive.teleport_hand %q must be left or right", c.Immersive.TeleportHand))
	}
	for code, dir := range c.Desktop.Bindings {
		if input.ParseDirection(dir) == input.DirNone {
			errs = append(errs, fmt.Errorf("desktop.bindings[%s]: unknown direction %q", code, dir))
		}
	}
	return errors.Join(errs...)
}

// StartPosition returns the rig start as a vector.
func (c *Config) StartPosition() mgl32.Vec3 {
	return mgl32.Vec3(c.Rig.StartPosition)
}

// KeyBindings returns the desktop key map, or nil for the defaults.
func (c *Config) KeyBindings() map[string]input.Direction {
	if len(c.Desktop.Bindings) == 0 {
		return nil
	}
	b := make(map[string]input.Direction, len(c.Desktop.Bindings))
	for code, dir := range c.Desktop.Bindings {
		b[code] = input.ParseDirection(dir)
	}
	return b
}

// Sticks lays out the move stick bottom-left and the look stick bottom-right
// of a width x height screen.
func (t TouchConfig) Sticks(width, height int) (move, look input.Joystick) {
	off := t.JoystickMargin + t.JoystickRadius
	y := float32(height) - off
	move = input.Joystick{Center: mgl32.Vec2{off, y}, Radius: t.JoystickRadius, DeadZone: t.DeadZone}
	look = input.Joystick{Center: mgl32.Vec2{float32(width) - off, y}, Radius: t.JoystickRadius, DeadZone: t.DeadZone}
	return move, look
}

// PassHeadRoll reports whether HMD roll reaches the view.
func (i ImmersiveConfig) PassHeadRoll() bool {
	return i.HeadRoll == HeadRollPassthrough
}

// Hand returns the controller used for teleport aiming.
func (i ImmersiveConfig) Hand() input.Hand {
	if i.TeleportHand == "left" {
		return input.LeftHand
	}
	return input.RightHand
}
