package stats

import (
	"log/slog"
	"sync"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// Aggregator owns the statistics counters.
//
// Mutations come from the matcher on the tick goroutine; the mutex only
// guards readers such as the report command and the persister hand-off.
type Aggregator struct {
	mu    sync.Mutex
	doc   Document
	dirty bool
}

// NewAggregator creates an aggregator from a loaded document.
func NewAggregator(doc Document) *Aggregator {
	doc = doc.Clone()
	doc.normalize()
	return &Aggregator{doc: doc}
}

// EpisodeStarted records a killed bunny whose coffer is not yet resolved.
func (a *Aggregator) EpisodeStarted(territory uint16) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.doc.PendingKills++
	a.doc.Episodes[territory]++
	a.dirty = true
}

// EpisodeResolved settles one pending kill. The counter never goes below zero.
func (a *Aggregator) EpisodeResolved(territory uint16) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.doc.PendingKills > 0 {
		a.doc.PendingKills--
	} else {
		slog.Debug("pending kills already settled", "territory", territory)
	}
	a.dirty = true
}

// RecordFind increments the counter of a coffer kind in territory.
func (a *Aggregator) RecordFind(territory uint16, kind uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kinds := a.doc.Stats[territory]
	if kinds == nil {
		kinds = make(map[uint32]int, len(data.CofferKinds))
		a.doc.Stats[territory] = kinds
	}
	kinds[kind]++
	a.dirty = true
}

// ResetPending drops the pending kill counter (zone change mid-episode).
func (a *Aggregator) ResetPending() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.doc.PendingKills != 0 {
		a.doc.PendingKills = 0
		a.dirty = true
	}
}

// SetLocations replaces the discovered coffer locations kept in the document.
func (a *Aggregator) SetLocations(locations map[uint16][]model.Location) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.doc.Locations = make(map[uint16][]model.Location, len(locations))
	for territory, positions := range locations {
		a.doc.Locations[territory] = append([]model.Location(nil), positions...)
	}
	a.dirty = true
}

// PendingKills returns the number of unresolved episodes.
func (a *Aggregator) PendingKills() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.PendingKills
}

// Count returns the number of coffers of kind found in territory.
func (a *Aggregator) Count(territory uint16, kind uint32) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Stats[territory][kind]
}

// Episodes returns the number of buff episodes seen in territory.
func (a *Aggregator) Episodes(territory uint16) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Episodes[territory]
}

// Total returns the number of coffers found in territory.
func (a *Aggregator) Total(territory uint16) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return sumKinds(a.doc.Stats[territory])
}

// Dirty reports whether the counters changed since the last ClearDirty.
func (a *Aggregator) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// Snapshot returns a copy of the document and clears the dirty flag.
func (a *Aggregator) Snapshot() Document {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirty = false
	return a.doc.Clone()
}

func sumKinds(kinds map[uint32]int) int {
	n := 0
	for _, c := range kinds {
		n += c
	}
	return n
}
