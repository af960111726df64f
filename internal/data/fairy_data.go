package data

import (
	"fmt"

	"github.com/udisondev/eurekalink/internal/model"
)

// Fairy is a sighted zone elemental.
type Fairy struct {
	ObjectID  uint32
	NameID    uint32
	Territory uint16
	Location  model.Location
}

// MapLink renders the sighting as map coordinates; X and Z are the map plane.
func (f Fairy) MapLink() string {
	return fmt.Sprintf("(%.1f, %.1f)",
		ToMapCoordinate(f.Location.X, f.Territory),
		ToMapCoordinate(f.Location.Z, f.Territory))
}
