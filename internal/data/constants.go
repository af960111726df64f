package data

// Territory (zone) ids of the four Eureka instances.
const (
	TerritoryAnemos  uint16 = 732
	TerritoryPagos   uint16 = 763
	TerritoryPyros   uint16 = 795
	TerritoryHydatos uint16 = 827
)

// NoTrackerID marks a fate that the external tracker does not know about
// (Ovni and every bunny fate). Pop requests for it are skipped.
const NoTrackerID uint16 = 1337

// LuckyCarrotStatusID is the reward buff granted after a bunny fate.
// Пока бафф висит, игрок может открыть один сундук.
const LuckyCarrotStatusID uint32 = 1531

// Bunny respawn window bounds (seconds after last seen alive).
const (
	BunnyRespawnMin = 530
	BunnyRespawnMax = 1000
)

// Coffer kinds (EventObj data ids).
const (
	CofferGold   uint32 = 2009530
	CofferSilver uint32 = 2009531
	CofferBronze uint32 = 2009532
)

// CofferKinds lists every recognized reward-object kind, best first.
var CofferKinds = []uint32{CofferGold, CofferSilver, CofferBronze}

// CofferNames — человекочитаемые названия сундуков (для статистики и логов).
var CofferNames = map[uint32]string{
	CofferGold:   "Gold",
	CofferSilver: "Silver",
	CofferBronze: "Bronze",
}

// IsCoffer reports whether dataID is a recognized reward-object kind.
func IsCoffer(dataID uint32) bool {
	_, ok := CofferNames[dataID]
	return ok
}

// CofferName returns the display name of a coffer kind, or "Unknown".
func CofferName(dataID uint32) string {
	if name, ok := CofferNames[dataID]; ok {
		return name
	}
	return "Unknown"
}
