package system

import (
	"fmt"

	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// World is the ordered, fixed set of bodies of one session.
// Index 0 is the starting location.
type World struct {
	bodies []*CelestialBody
}

// NewWorld creates a world; body names must be unique
func NewWorld(bodies []*CelestialBody) (*World, error) {
	if len(bodies) == 0 {
		return nil, shared.NewValidationError("bodies", "world needs at least one celestial body")
	}

	seen := make(map[string]bool, len(bodies))
	for _, body := range bodies {
		if body == nil {
			return nil, shared.NewValidationError("bodies", "nil celestial body")
		}
		if seen[body.Name()] {
			return nil, shared.NewValidationError("bodies", fmt.Sprintf("duplicate celestial body %q", body.Name()))
		}
		seen[body.Name()] = true
	}

	return &World{bodies: append([]*CelestialBody(nil), bodies...)}, nil
}

// Start returns the body players begin at
func (w *World) Start() *CelestialBody {
	return w.bodies[0]
}

// Len returns the number of bodies
func (w *World) Len() int {
	return len(w.bodies)
}

// Bodies returns the bodies in world order
func (w *World) Bodies() []*CelestialBody {
	return append([]*CelestialBody(nil), w.bodies...)
}

// BodyAt returns the body at index
func (w *World) BodyAt(index int) (*CelestialBody, error) {
	if index < 0 || index >= len(w.bodies) {
		return nil, shared.NewInvalidDestinationError(index, "Invalid destination")
	}
	return w.bodies[index], nil
}

// IndexOf returns the position of body, or -1 if it is not part of this world
func (w *World) IndexOf(body *CelestialBody) int {
	for i, b := range w.bodies {
		if b == body {
			return i
		}
	}
	return -1
}

// Contains checks world membership
func (w *World) Contains(body *CelestialBody) bool {
	return w.IndexOf(body) >= 0
}

// FindByName looks a body up by name
func (w *World) FindByName(name string) (*CelestialBody, bool) {
	for _, b := range w.bodies {
		if b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

// Outposts returns every body that hosts a trading post, in world order
func (w *World) Outposts() []*CelestialBody {
	var result []*CelestialBody
	for _, b := range w.bodies {
		if b.HasOutpost() {
			result = append(result, b)
		}
	}
	return result
}
