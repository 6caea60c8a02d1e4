// Package calibration persists the model roll offset, the one value the
// viewer keeps between sessions. It corrects an imported asset's built-in
// tilt and is unrelated to the rig's roll, which is always zero.
package calibration

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type file struct {
	ModelRollOffset float64 `yaml:"model_roll_offset"` // degrees
}

// Store holds the offset and rewrites its file on every change.
type Store struct {
	path      string
	step      float64
	largeStep float64
	offset    float64
	logger    *log.Logger
}

// Open reads the offset from path. A missing file starts at zero.
func Open(path string, step, largeStep float64, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{path: path, step: step, largeStep: largeStep, logger: logger}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse calibration %s: %w", path, err)
	}
	if math.IsNaN(f.ModelRollOffset) || math.IsInf(f.ModelRollOffset, 0) {
		logger.Printf("calibration: ignoring invalid offset in %s", path)
		return s, nil
	}
	s.offset = f.ModelRollOffset
	return s, nil
}

// Offset returns the model roll offset in degrees.
func (s *Store) Offset() float64 {
	return s.offset
}

// Rotation returns the correction to apply to the model, a rotation about
// the forward axis.
func (s *Store) Rotation() mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(float32(s.offset)), mgl32.Vec3{0, 0, -1})
}

// Nudge steps the offset up (sign > 0) or down (sign < 0) by the plain or
// large step and saves it.
func (s *Store) Nudge(sign int, large bool) error {
	step := s.step
	if large {
		step = s.largeStep
	}
	switch {
	case sign > 0:
		return s.Set(s.offset + step)
	case sign < 0:
		return s.Set(s.offset - step)
	}
	return nil
}

// Set replaces the offset, normalized to (-180, 180], and saves it.
func (s *Store) Set(degrees float64) error {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return nil
	}
	s.offset = normalize(degrees)
	s.logger.Printf("calibration: model roll offset %.1f°", s.offset)
	return s.save()
}

func (s *Store) save() error {
	data, err := yaml.Marshal(file{ModelRollOffset: s.offset})
	if err != nil {
		return fmt.Errorf("failed to encode calibration: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create calibration dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write calibration: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace calibration: %w", err)
	}
	return nil
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}
