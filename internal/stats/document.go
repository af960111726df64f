package stats

import (
	"maps"

	"github.com/udisondev/eurekalink/internal/model"
)

// Document is the persisted statistics state.
type Document struct {
	// Stats: territory → coffer data id → count.
	Stats        map[uint16]map[uint32]int `yaml:"stats" json:"stats"`
	Episodes     map[uint16]int            `yaml:"episodes" json:"episodes"`
	PendingKills int                       `yaml:"pending_kills" json:"pending_kills"`

	// Locations are coffer positions discovered at runtime.
	Locations map[uint16][]model.Location `yaml:"locations,omitempty" json:"locations,omitempty"`
}

// NewDocument returns an empty document with allocated maps.
func NewDocument() Document {
	return Document{
		Stats:     make(map[uint16]map[uint32]int),
		Episodes:  make(map[uint16]int),
		Locations: make(map[uint16][]model.Location),
	}
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := NewDocument()
	out.PendingKills = d.PendingKills
	for territory, kinds := range d.Stats {
		out.Stats[territory] = maps.Clone(kinds)
	}
	maps.Copy(out.Episodes, d.Episodes)
	for territory, positions := range d.Locations {
		out.Locations[territory] = append([]model.Location(nil), positions...)
	}
	return out
}

// normalize fills nil maps and drops negative counters left by a damaged file.
func (d *Document) normalize() {
	if d.Stats == nil {
		d.Stats = make(map[uint16]map[uint32]int)
	}
	if d.Episodes == nil {
		d.Episodes = make(map[uint16]int)
	}
	if d.Locations == nil {
		d.Locations = make(map[uint16][]model.Location)
	}
	if d.PendingKills < 0 {
		d.PendingKills = 0
	}
	for territory, kinds := range d.Stats {
		if kinds == nil {
			delete(d.Stats, territory)
			continue
		}
		for kind, n := range kinds {
			if n < 0 {
				kinds[kind] = 0
			}
		}
	}
}
