package model

import "time"

// Snapshot is one tick worth of raw client state.
//
// Nothing is guaranteed to be complete between ticks: Player is nil while the
// client has no local player loaded, and Fates or Objects may transiently
// miss entries.
type Snapshot struct {
	Now       time.Time     `json:"-"`
	Territory uint16        `json:"territory"`
	Fates     []uint16      `json:"fates"`
	Objects   []WorldObject `json:"objects"`
	Player    *Player       `json:"player,omitempty"`
}
