package coffer

import (
	"log/slog"
	"time"

	"github.com/udisondev/eurekalink/internal/clock"
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// Phase is the state of the buff episode state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseBuffActive
)

// String returns the phase name for logs.
func (p Phase) String() string {
	if p == PhaseBuffActive {
		return "buff_active"
	}
	return "idle"
}

// Ledger receives the counter mutations produced by confirmed episodes.
// Implemented by stats.Aggregator.
type Ledger interface {
	EpisodeStarted(territory uint16)
	EpisodeResolved(territory uint16)
	RecordFind(territory uint16, kind uint32)
	ResetPending()
}

// Config tunes the matcher.
type Config struct {
	BuffStatusID uint32
	Debounce     time.Duration
	NearRadius   float64 // radius of the "near a known location" hint
}

// DefaultConfig returns the matcher settings used in game.
func DefaultConfig() Config {
	return Config{
		BuffStatusID: data.LuckyCarrotStatusID,
		Debounce:     20 * time.Second,
		NearRadius:   50,
	}
}

// Find is a committed coffer find.
type Find struct {
	Territory   uint16
	Kind        uint32
	ObjectID    uint32
	Position    model.Location
	NewLocation bool
}

// Result is the outcome of one Evaluate call.
type Result struct {
	Started  bool // buff gained this tick
	Resolved bool // buff lost this tick, episode closed
	Find     *Find

	// Near is the closest known location while the buff is active.
	Near   model.Location
	NearOK bool
}

// Matcher correlates the reward buff with the coffer the player opened.
//
// Idle → BuffActive when the buff appears; every active tick refreshes the
// debounce timer and records the targeted coffer as the contact. On
// BuffActive → Idle the contact is committed if the timer was still running
// and the object was not claimed yet.
//
// The claimed set lives for the whole zone session: an opened coffer keeps
// its object id while it stays in the object table, so a later episode must
// not credit it again.
//
// Owned by the engine tick goroutine.
type Matcher struct {
	cfg       Config
	territory uint16
	registry  *Registry
	ledger    Ledger

	phase    Phase
	debounce clock.Timer
	claimed  map[uint32]struct{}
	contact  *model.WorldObject
}

// NewMatcher creates an idle matcher for one zone session.
func NewMatcher(cfg Config, territory uint16, registry *Registry, ledger Ledger) *Matcher {
	return &Matcher{
		cfg:       cfg,
		territory: territory,
		registry:  registry,
		ledger:    ledger,
		debounce:  clock.NewTimer(cfg.Debounce),
		claimed:   make(map[uint32]struct{}),
	}
}

// Phase returns the current state.
func (m *Matcher) Phase() Phase {
	return m.phase
}

// IsClaimed reports whether objectID was already credited this session.
func (m *Matcher) IsClaimed(objectID uint32) bool {
	_, ok := m.claimed[objectID]
	return ok
}

// ClaimedCount returns the size of the claimed set.
func (m *Matcher) ClaimedCount() int {
	return len(m.claimed)
}

// Reset abandons the current episode: claimed set, contact, timer and the
// pending kill counter go back to zone-entry defaults. No credit is given.
func (m *Matcher) Reset() {
	if m.phase == PhaseBuffActive {
		slog.Debug("coffer episode abandoned", "territory", m.territory)
	}
	m.phase = PhaseIdle
	m.debounce.Stop()
	m.contact = nil
	clear(m.claimed)
	m.ledger.ResetPending()
}

// Evaluate advances the state machine by one tick.
// A nil player is a feed gap: nothing changes.
func (m *Matcher) Evaluate(now time.Time, player *model.Player, objects []model.WorldObject) Result {
	var res Result
	if player == nil {
		return res
	}

	if player.HasStatus(m.cfg.BuffStatusID) {
		if m.phase == PhaseIdle {
			m.phase = PhaseBuffActive
			m.contact = nil
			m.ledger.EpisodeStarted(m.territory)
			res.Started = true
			slog.Debug("coffer episode started", "territory", m.territory)
		}

		// таймер перезапускается каждый тик, пока бафф висит
		m.debounce.Start(now)

		if c, ok := m.targetedCandidate(player, objects); ok {
			m.contact = &c
		}
		res.Near, res.NearOK = m.registry.Nearest(m.territory, player.Location, m.cfg.NearRadius)
		return res
	}

	if m.phase != PhaseBuffActive {
		return res
	}

	// buff cleared
	m.phase = PhaseIdle
	res.Resolved = true
	running := m.debounce.Running(now)
	m.debounce.Stop()

	if c, ok := m.targetedCandidate(player, objects); ok {
		m.contact = &c
	}
	contact := m.contact
	m.contact = nil

	if running && contact != nil && !m.IsClaimed(contact.ObjectID) {
		res.Find = m.commit(*contact)
	} else {
		slog.Debug("coffer episode resolved without find",
			"territory", m.territory,
			"timerRunning", running,
			"contact", contact != nil)
	}
	m.ledger.EpisodeResolved(m.territory)
	return res
}

func (m *Matcher) commit(obj model.WorldObject) *Find {
	m.claimed[obj.ObjectID] = struct{}{}
	m.ledger.RecordFind(m.territory, obj.DataID)

	find := &Find{
		Territory: m.territory,
		Kind:      obj.DataID,
		ObjectID:  obj.ObjectID,
		Position:  obj.Location,
	}
	if m.registry.Add(m.territory, obj.Location) {
		find.NewLocation = true
		slog.Info("new coffer location observed",
			"territory", m.territory,
			"x", obj.Location.X,
			"y", obj.Location.Y,
			"z", obj.Location.Z)
	}

	slog.Info("coffer found",
		"territory", m.territory,
		"kind", data.CofferName(obj.DataID),
		"objectID", obj.ObjectID)
	return find
}

// targetedCandidate returns the unclaimed coffer the player currently targets.
func (m *Matcher) targetedCandidate(player *model.Player, objects []model.WorldObject) (model.WorldObject, bool) {
	if !player.HasTarget() {
		return model.WorldObject{}, false
	}
	obj, ok := model.FindObject(objects, player.TargetID)
	if !ok || !m.isCandidate(obj) {
		return model.WorldObject{}, false
	}
	return obj, true
}

func (m *Matcher) isCandidate(obj model.WorldObject) bool {
	return obj.Kind == model.KindEventObj && data.IsCoffer(obj.DataID) && !m.IsClaimed(obj.ObjectID)
}

// NearestCandidate returns the closest unclaimed coffer object to the player.
func (m *Matcher) NearestCandidate(player *model.Player, objects []model.WorldObject) (model.WorldObject, bool) {
	if player == nil {
		return model.WorldObject{}, false
	}
	var (
		best     model.WorldObject
		bestDist float64
		found    bool
	)
	for _, obj := range objects {
		if !m.isCandidate(obj) {
			continue
		}
		d := obj.Location.DistanceSquared(player.Location)
		if !found || d < bestDist {
			best, bestDist, found = obj, d, true
		}
	}
	return best, found
}
