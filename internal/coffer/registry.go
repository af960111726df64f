package coffer

import (
	"sync"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// DefaultEpsilon is the per-axis tolerance for location identity.
const DefaultEpsilon float32 = 0.5

// Location is a known coffer spawn point.
type Location struct {
	Territory uint16
	Position  model.Location
}

// Registry holds known coffer locations per zone.
//
// Seeded locations come from the static catalog; discovered ones are added at
// runtime on confirmed finds and are the only ones that need persisting.
type Registry struct {
	epsilon float32

	mu         sync.RWMutex
	seeded     map[uint16][]model.Location
	discovered map[uint16][]model.Location
}

// NewRegistry creates an empty registry.
func NewRegistry(epsilon float32) *Registry {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Registry{
		epsilon:    epsilon,
		seeded:     make(map[uint16][]model.Location),
		discovered: make(map[uint16][]model.Location),
	}
}

// NewSeededRegistry creates a registry with the catalog locations of every
// bunny territory.
func NewSeededRegistry(epsilon float32) *Registry {
	r := NewRegistry(epsilon)
	for _, territory := range data.Territories() {
		if positions := data.CofferPositions(territory); len(positions) > 0 {
			r.seeded[territory] = positions
		}
	}
	return r
}

// Epsilon returns the per-axis tolerance.
func (r *Registry) Epsilon() float32 {
	return r.epsilon
}

// Exists reports whether pos matches a known location of territory.
func (r *Registry) Exists(territory uint16, pos model.Location) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.existsLocked(territory, pos)
}

func (r *Registry) existsLocked(territory uint16, pos model.Location) bool {
	for _, p := range r.seeded[territory] {
		if p.WithinTolerance(pos, r.epsilon) {
			return true
		}
	}
	for _, p := range r.discovered[territory] {
		if p.WithinTolerance(pos, r.epsilon) {
			return true
		}
	}
	return false
}

// Add registers pos as a discovered location.
// Returns false if it already matches a known location.
func (r *Registry) Add(territory uint16, pos model.Location) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsLocked(territory, pos) {
		return false
	}
	r.discovered[territory] = append(r.discovered[territory], pos)
	return true
}

// Restore loads previously discovered locations, skipping duplicates.
func (r *Registry) Restore(discovered map[uint16][]model.Location) int {
	added := 0
	for territory, positions := range discovered {
		for _, pos := range positions {
			if r.Add(territory, pos) {
				added++
			}
		}
	}
	return added
}

// Positions returns all known locations of territory, seeded first.
func (r *Registry) Positions(territory uint16) []model.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Location, 0, len(r.seeded[territory])+len(r.discovered[territory]))
	out = append(out, r.seeded[territory]...)
	out = append(out, r.discovered[territory]...)
	return out
}

// Discovered returns a copy of the runtime-discovered locations.
func (r *Registry) Discovered() map[uint16][]model.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uint16][]model.Location, len(r.discovered))
	for territory, positions := range r.discovered {
		out[territory] = append([]model.Location(nil), positions...)
	}
	return out
}

// Nearest returns the closest known location to pos within radius.
func (r *Registry) Nearest(territory uint16, pos model.Location, radius float64) (model.Location, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := model.Location{}
	bestDist := radius * radius
	found := false

	check := func(p model.Location) {
		if d := p.DistanceSquared(pos); d <= bestDist {
			best, bestDist, found = p, d, true
		}
	}
	for _, p := range r.seeded[territory] {
		check(p)
	}
	for _, p := range r.discovered[territory] {
		check(p)
	}
	return best, found
}
