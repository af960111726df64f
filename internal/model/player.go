package model

import "slices"

// Player is the local player as seen in one snapshot.
type Player struct {
	Location Location `json:"location"`
	Statuses []uint32 `json:"statuses"`
	TargetID uint32   `json:"target_id"` // 0 — нет цели
}

// HasStatus reports whether the status id is active on the player.
func (p *Player) HasStatus(statusID uint32) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Statuses, statusID)
}

// HasTarget reports whether the player currently targets anything.
func (p *Player) HasTarget() bool {
	return p != nil && p.TargetID != 0
}
