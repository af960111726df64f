package data

import "github.com/udisondev/eurekalink/internal/model"

// CofferPositions — известные точки появления сундуков по зонам.
// Список неполный: новые точки регистрируются во время игры.
var cofferPositions = map[uint16][]model.Location{
	TerritoryPagos: {
		{X: 41.37, Y: 0.79, Z: 232.55},
		{X: -131.92, Y: -10.43, Z: 410.66},
		{X: -281.81, Y: 4.66, Z: 287.93},
		{X: -375.25, Y: 21.86, Z: 92.63},
		{X: 83.03, Y: 18.07, Z: -54.51},
		{X: 252.3, Y: 31.2, Z: 148.89},
	},
	TerritoryPyros: {
		{X: 154.81, Y: 756.29, Z: 348.51},
		{X: 22.34, Y: 745.78, Z: 520.48},
		{X: -189.76, Y: 754.11, Z: 612.03},
		{X: -391.27, Y: 733.12, Z: 403.71},
		{X: -77.68, Y: 751.93, Z: 236.52},
	},
	TerritoryHydatos: {
		{X: -360.55, Y: 503.71, Z: -262.22},
		{X: -256.92, Y: 496.62, Z: -420.38},
		{X: -143.87, Y: 501.07, Z: -519.9},
		{X: 57.2, Y: 499.38, Z: -381.54},
		{X: 138.53, Y: 512.45, Z: -219.65},
		{X: -60.01, Y: 497.22, Z: -154.33},
	},
}

// CofferPositions returns a copy of the seeded coffer locations of territory.
func CofferPositions(territory uint16) []model.Location {
	src := cofferPositions[territory]
	out := make([]model.Location, len(src))
	copy(out, src)
	return out
}
