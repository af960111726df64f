package notify

import (
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// EventKind tags a notification event.
type EventKind uint8

const (
	EventNewEncounter EventKind = iota + 1
	EventFoundReward
	EventNewLocation
	EventFairySighted
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventNewEncounter:
		return "new_encounter"
	case EventFoundReward:
		return "found_reward"
	case EventNewLocation:
		return "new_location"
	case EventFairySighted:
		return "fairy_sighted"
	default:
		return "unknown"
	}
}

// Event is a notification produced during one tick.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind
	Territory uint16

	// EventNewEncounter
	Fate data.Fate

	// EventFoundReward, EventNewLocation
	RewardKind uint32
	ObjectID   uint32
	Position   model.Location

	// EventFairySighted
	Fairy data.Fairy
}

// NewEncounter creates an EventNewEncounter.
func NewEncounter(territory uint16, fate data.Fate) Event {
	return Event{Kind: EventNewEncounter, Territory: territory, Fate: fate}
}

// FoundReward creates an EventFoundReward.
func FoundReward(territory uint16, kind, objectID uint32, pos model.Location) Event {
	return Event{Kind: EventFoundReward, Territory: territory, RewardKind: kind, ObjectID: objectID, Position: pos}
}

// NewLocation creates an EventNewLocation.
func NewLocation(territory uint16, kind, objectID uint32, pos model.Location) Event {
	return Event{Kind: EventNewLocation, Territory: territory, RewardKind: kind, ObjectID: objectID, Position: pos}
}

// FairySighted creates an EventFairySighted.
func FairySighted(fairy data.Fairy) Event {
	return Event{Kind: EventFairySighted, Territory: fairy.Territory, Fairy: fairy}
}
