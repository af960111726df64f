package data

import "slices"

// zoneDef — статическое описание зоны Eureka.
type zoneDef struct {
	territory   uint16
	mapID       uint32
	name        string
	trackerZone int     // zone key of the external tracker
	sizeFactor  float32 // map size factor, 100 for every Eureka map
	fates       []Fate
	bunnies     []Fate
	fairyNameID uint32
}

// TerritoryToMap maps every relevant territory to its map id.
// Entering a territory missing from this table deactivates the engine.
var TerritoryToMap = map[uint16]uint32{
	TerritoryAnemos:  414,
	TerritoryPagos:   467,
	TerritoryPyros:   484,
	TerritoryHydatos: 515,
}

var zoneTable = map[uint16]*zoneDef{
	TerritoryAnemos: {
		territory:   TerritoryAnemos,
		mapID:       414,
		name:        "Eureka Anemos",
		trackerZone: 1,
		sizeFactor:  100,
		fates:       anemosFates,
		fairyNameID: 7184,
	},
	TerritoryPagos: {
		territory:   TerritoryPagos,
		mapID:       467,
		name:        "Eureka Pagos",
		trackerZone: 2,
		sizeFactor:  100,
		fates:       pagosFates,
		bunnies:     pagosBunnies,
		fairyNameID: 7567,
	},
	TerritoryPyros: {
		territory:   TerritoryPyros,
		mapID:       484,
		name:        "Eureka Pyros",
		trackerZone: 3,
		sizeFactor:  100,
		fates:       pyrosFates,
		bunnies:     pyrosBunnies,
		fairyNameID: 7764,
	},
	TerritoryHydatos: {
		territory:   TerritoryHydatos,
		mapID:       515,
		name:        "Eureka Hydatos",
		trackerZone: 4,
		sizeFactor:  100,
		fates:       hydatosFates,
		bunnies:     hydatosBunnies,
		fairyNameID: 7970,
	},
}

// IsRelevant reports whether the engine should be active in territory.
func IsRelevant(territory uint16) bool {
	_, ok := TerritoryToMap[territory]
	return ok
}

// IsBunnyTerritory reports whether territory has bunny fates and coffers.
func IsBunnyTerritory(territory uint16) bool {
	z := zoneTable[territory]
	return z != nil && len(z.bunnies) > 0
}

// Territories returns all relevant territories in ascending order.
func Territories() []uint16 {
	out := make([]uint16, 0, len(zoneTable))
	for t := range zoneTable {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// PlaceName returns the display name of territory.
func PlaceName(territory uint16) string {
	if z := zoneTable[territory]; z != nil {
		return z.name
	}
	return "Unknown"
}

// TrackerZone returns the external tracker zone key for territory.
func TrackerZone(territory uint16) (int, bool) {
	z := zoneTable[territory]
	if z == nil {
		return 0, false
	}
	return z.trackerZone, true
}

// FatesFor returns the notorious monster fates of territory.
func FatesFor(territory uint16) []Fate {
	if z := zoneTable[territory]; z != nil {
		return z.fates
	}
	return nil
}

// BunniesFor returns the bunny fates of territory, easiest first.
func BunniesFor(territory uint16) []Fate {
	if z := zoneTable[territory]; z != nil {
		return z.bunnies
	}
	return nil
}

// FairyNameID returns the battle npc name id of the zone elemental.
func FairyNameID(territory uint16) (uint32, bool) {
	z := zoneTable[territory]
	if z == nil || z.fairyNameID == 0 {
		return 0, false
	}
	return z.fairyNameID, true
}

// ToMapCoordinate converts a raw world axis value to the 1-based map
// coordinate shown in game.
func ToMapCoordinate(raw float32, territory uint16) float32 {
	scale := float32(100)
	if z := zoneTable[territory]; z != nil && z.sizeFactor > 0 {
		scale = z.sizeFactor
	}
	c := scale / 100
	return (41/c)*((raw*c+1024)/2048) + 1
}
