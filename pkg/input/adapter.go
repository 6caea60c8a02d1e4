// Package input turns raw device events into look and move intents.
//
// Each presentation mode has its own adapter. Adapters only collect state
// from events; the controller samples the active one once per frame.
package input

import (
	"strings"

	"github.com/leterax/go-horizon/pkg/rig"
)

// Capability is a bit set describing what an adapter can produce.
type Capability uint8

const (
	PointerLook Capability = 1 << iota
	DirectionalMove
	ThumbstickLook
	ThumbstickMove
)

// Has reports whether all bits of c2 are set in c.
func (c Capability) Has(c2 Capability) bool {
	return c&c2 == c2
}

func (c Capability) String() string {
	var parts []string
	for _, p := range []struct {
		bit  Capability
		name string
	}{
		{PointerLook, "pointer-look"},
		{DirectionalMove, "directional-move"},
		{ThumbstickLook, "thumbstick-look"},
		{ThumbstickMove, "thumbstick-move"},
	} {
		if c.Has(p.bit) {
			parts = append(parts, p.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Adapter is the common contract of the desktop, touch and immersive input
// paths.
type Adapter interface {
	// Capabilities lists the intents this adapter can produce.
	Capabilities() Capability

	// Sample returns the intents accumulated since the previous call. An
	// adapter with no active input source returns zero intents.
	Sample(dt float32) (rig.LookIntent, rig.MoveIntent)

	// Reset drops in-progress gestures and pending deltas.
	Reset()
}
