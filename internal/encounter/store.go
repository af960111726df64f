package encounter

import (
	"time"

	"github.com/udisondev/eurekalink/internal/data"
)

// State tracks liveness of one encounter template during a zone session.
type State struct {
	Fate          data.Fate
	Alive         bool
	LastSeenAlive int64 // Unix seconds, 0 — ни разу не видели живым
}

// Window is the respawn window relative to a point in time.
// Min and Max are the time remaining until the earliest and the latest
// possible respawn; both go negative once passed.
type Window struct {
	Min time.Duration
	Max time.Duration
}

// Soon reports whether the earliest respawn time has passed.
func (w Window) Soon() bool {
	return w.Min <= 0
}

// Elapsed reports whether the latest respawn time has passed.
func (w Window) Elapsed() bool {
	return w.Max <= 0
}

// Store tracks encounter states for the templates of one zone.
//
// It is owned by the engine tick goroutine and is not safe for concurrent use.
type Store struct {
	territory  uint16
	states     []*State
	byID       map[uint16]*State
	minRespawn int64
	maxRespawn int64
}

// NewStore allocates fresh states for fates in territory.
func NewStore(territory uint16, fates []data.Fate) *Store {
	s := &Store{
		territory:  territory,
		states:     make([]*State, 0, len(fates)),
		byID:       make(map[uint16]*State, len(fates)),
		minRespawn: data.BunnyRespawnMin,
		maxRespawn: data.BunnyRespawnMax,
	}
	for _, f := range fates {
		st := &State{Fate: f}
		s.states = append(s.states, st)
		s.byID[f.FateID] = st
	}
	return s
}

// SetRespawnBounds overrides the respawn window bounds (seconds).
func (s *Store) SetRespawnBounds(min, max int64) {
	s.minRespawn = min
	s.maxRespawn = max
}

// Territory returns the zone the store was created for.
func (s *Store) Territory() uint16 {
	return s.territory
}

// Refresh applies one tick of active fate ids.
// Present templates become alive and record now; absent ones become dead and
// keep their last seen timestamp.
func (s *Store) Refresh(active []uint16, now time.Time) {
	present := make(map[uint16]struct{}, len(active))
	for _, id := range active {
		present[id] = struct{}{}
	}

	ts := now.Unix()
	for _, st := range s.states {
		if _, ok := present[st.Fate.FateID]; ok {
			st.Alive = true
			st.LastSeenAlive = ts
			continue
		}
		st.Alive = false
	}
}

// State returns a copy of the state of fateID.
func (s *Store) State(fateID uint16) (State, bool) {
	st, ok := s.byID[fateID]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// States returns copies of all states in catalog order.
func (s *Store) States() []State {
	out := make([]State, len(s.states))
	for i, st := range s.states {
		out[i] = *st
	}
	return out
}

// Len returns the number of tracked templates.
func (s *Store) Len() int {
	return len(s.states)
}

// RespawnWindow returns the respawn window of fateID as seen at now.
// Returns false if the fate is unknown or was never seen alive.
func (s *Store) RespawnWindow(fateID uint16, now time.Time) (Window, bool) {
	st, ok := s.byID[fateID]
	if !ok || st.LastSeenAlive == 0 {
		return Window{}, false
	}

	nowUnix := now.Unix()
	return Window{
		Min: time.Duration(st.LastSeenAlive+s.minRespawn-nowUnix) * time.Second,
		Max: time.Duration(st.LastSeenAlive+s.maxRespawn-nowUnix) * time.Second,
	}, true
}
