package fairy

import (
	"log/slog"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// Detector reports each zone elemental once per zone session.
type Detector struct {
	territory uint16
	nameIDs   map[uint32]struct{}
	seen      map[uint32]data.Fairy
	order     []uint32
}

// NewDetector creates a detector for territory.
// Elementals of every Eureka zone are recognized.
func NewDetector(territory uint16) *Detector {
	d := &Detector{
		territory: territory,
		nameIDs:   make(map[uint32]struct{}),
		seen:      make(map[uint32]data.Fairy),
	}
	for _, t := range data.Territories() {
		if id, ok := data.FairyNameID(t); ok {
			d.nameIDs[id] = struct{}{}
		}
	}
	return d
}

// Scan returns elementals in objects not reported before.
func (d *Detector) Scan(objects []model.WorldObject) []data.Fairy {
	var found []data.Fairy
	for _, obj := range objects {
		if obj.Kind != model.KindBattleNpc {
			continue
		}
		if _, ok := d.nameIDs[obj.NameID]; !ok {
			continue
		}
		if _, ok := d.seen[obj.ObjectID]; ok {
			continue
		}
		f := data.Fairy{
			ObjectID:  obj.ObjectID,
			NameID:    obj.NameID,
			Territory: d.territory,
			Location:  obj.Location,
		}
		d.seen[obj.ObjectID] = f
		d.order = append(d.order, obj.ObjectID)
		found = append(found, f)
		slog.Debug("fairy sighted", "territory", d.territory, "objectID", obj.ObjectID)
	}
	return found
}

// Known returns every elemental seen this session in sighting order.
func (d *Detector) Known() []data.Fairy {
	out := make([]data.Fairy, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.seen[id])
	}
	return out
}

// Reset forgets all sightings.
func (d *Detector) Reset() {
	clear(d.seen)
	d.order = d.order[:0]
}
