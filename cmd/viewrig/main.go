package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-horizon/internal/config"
	"github.com/leterax/go-horizon/pkg/calibration"
	"github.com/leterax/go-horizon/pkg/controller"
	"github.com/leterax/go-horizon/pkg/input"
	"github.com/leterax/go-horizon/pkg/render"
	"github.com/leterax/go-horizon/pkg/scene"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

// Platforms to walk around and teleport onto.
var obstacles = []scene.Box{
	{Min: mgl32.Vec3{3, 0, -8}, Max: mgl32.Vec3{6, 0.5, -5}},
	{Min: mgl32.Vec3{-7, 0, -12}, Max: mgl32.Vec3{-4, 1.0, -9}},
	{Min: mgl32.Vec3{-1.5, 0, -16}, Max: mgl32.Vec3{1.5, 2.0, -13}},
}

func main() {
	fmt.Println("Starting go-horizon...")

	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	speed := flag.Float64("speed", 0, "Override rig.move_speed (units per second)")
	touch := flag.Bool("touch", false, "Treat the device as touch-capable; the left mouse button acts as a finger")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *speed > 0 {
		cfg.Rig.MoveSpeed = float32(*speed)
	}
	if *touch {
		cfg.Touch.Enabled = true
	}

	store, err := calibration.Open(cfg.Calibration.Path, cfg.Calibration.Step, cfg.Calibration.LargeStep, log.Default())
	if err != nil {
		log.Fatalf("Failed to open calibration: %v", err)
	}
	log.Printf("calibration offset %.1f degrees", store.Offset())

	sc := scene.New()
	sc.Add("floor", scene.Floor(0))
	for i, b := range obstacles {
		sc.Add(fmt.Sprintf("platform-%d", i), b)
	}

	marker := &render.Marker{}
	move, look := cfg.Touch.Sticks(cfg.Display.Width, cfg.Display.Height)
	ctrl := controller.New(
		controller.WithStart(cfg.StartPosition()),
		controller.WithMoveSpeed(cfg.Rig.MoveSpeed),
		controller.WithMaxFrameDelta(cfg.Rig.MaxFrameDelta),
		controller.WithTouchCapable(cfg.Touch.Enabled),
		controller.WithDesktop(input.NewDesktop(cfg.Desktop.MouseSensitivity, cfg.KeyBindings())),
		controller.WithTouch(input.NewTouch(move, look, cfg.Touch.LookSpeed, cfg.Touch.DragSensitivity)),
		controller.WithImmersive(input.NewImmersive(cfg.Immersive.DeadZone, cfg.Immersive.TurnSpeed)),
		controller.WithHeadRoll(cfg.Immersive.PassHeadRoll()),
		controller.WithTeleport(sc, cfg.Immersive.TeleportRange),
		controller.WithTeleportHand(cfg.Immersive.Hand()),
		controller.WithIndicator(marker),
	)

	renderer, err := render.NewRenderer(render.Options{
		Display:     cfg.Display,
		Touch:       cfg.Touch,
		Controller:  ctrl,
		Calibration: store,
		Marker:      marker,
		Obstacles:   obstacles,
	})
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	log.Printf("mode %s: click to look, WASD to move, F2 toggles the gamepad headset session, PageUp/PageDown calibrate", ctrl.Mode())
	renderer.Run()
}
