package engine

import (
	"log/slog"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/eurekalink/internal/coffer"
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/encounter"
	"github.com/udisondev/eurekalink/internal/fairy"
	"github.com/udisondev/eurekalink/internal/model"
	"github.com/udisondev/eurekalink/internal/notify"
	"github.com/udisondev/eurekalink/internal/stats"
	"github.com/udisondev/eurekalink/internal/tracker"
)

// Config tunes the engine.
type Config struct {
	Matcher        coffer.Config
	RespawnMin     int64 // seconds
	RespawnMax     int64
	ShowBunnyPanel bool
	OnlyEasyBunny  bool
	Tracker        tracker.Session // preconfigured tracker session, may be empty
	MarkerOffsets  notify.MarkerOffsets
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Matcher:       coffer.DefaultConfig(),
		RespawnMin:    data.BunnyRespawnMin,
		RespawnMax:    data.BunnyRespawnMax,
		MarkerOffsets: notify.DefaultMarkerOffsets(),
	}
}

// Persister receives stats documents to save off the tick goroutine.
type Persister interface {
	Submit(doc stats.Document)
}

// Deps are the collaborators of the engine. Runner, Persister, Markers and
// Panel are optional.
type Deps struct {
	Dispatcher *notify.Dispatcher
	Stats      *stats.Aggregator
	Registry   *coffer.Registry
	Runner     *tracker.Runner
	Persister  Persister
	Markers    notify.MarkerSink
	Panel      notify.PanelSink
}

// Engine drives one tick at a time: differ, encounter store, coffer matcher,
// fairy detector, dispatcher, stats. All zone state is owned by the goroutine
// calling Tick.
type Engine struct {
	cfg        Config
	dispatcher *notify.Dispatcher
	stats      *stats.Aggregator
	registry   *coffer.Registry
	runner     *tracker.Runner
	persister  Persister
	markers    notify.MarkerSink
	panel      notify.PanelSink

	commands chan Command

	// zone session
	active     bool
	territory  uint16
	sessionID  uuid.UUID
	generation uint64
	log        *slog.Logger
	store      *encounter.Store
	matcher    *coffer.Matcher
	fairies    *fairy.Detector
	lastFates  []uint16
	lastNow    time.Time
	near       model.Location
	nearOK     bool
	session    tracker.Session
	creating   bool
}

// New creates an inactive engine.
func New(cfg Config, deps Deps) *Engine {
	if cfg.MarkerOffsets == nil {
		cfg.MarkerOffsets = notify.DefaultMarkerOffsets()
	}
	e := &Engine{
		cfg:        cfg,
		dispatcher: deps.Dispatcher,
		stats:      deps.Stats,
		registry:   deps.Registry,
		runner:     deps.Runner,
		persister:  deps.Persister,
		markers:    deps.Markers,
		panel:      deps.Panel,
		commands:   make(chan Command, 32),
		log:        slog.Default(),
		session:    cfg.Tracker,
	}
	if e.runner != nil {
		e.dispatcher.Register(notify.SinkPop, &popSink{e: e})
	}
	return e
}

// Active reports whether the player is in a tracked zone.
func (e *Engine) Active() bool {
	return e.active
}

// Territory returns the active zone, 0 when inactive.
func (e *Engine) Territory() uint16 {
	return e.territory
}

// SessionID returns the id of the current zone session.
func (e *Engine) SessionID() uuid.UUID {
	return e.sessionID
}

// Matcher returns the coffer matcher of the zone session, nil outside bunny zones.
func (e *Engine) Matcher() *coffer.Matcher {
	return e.matcher
}

// TrackerSession returns the tracker session in use.
func (e *Engine) TrackerSession() tracker.Session {
	return e.session
}

// NearCoffer returns the closest known coffer location while the buff is
// active.
func (e *Engine) NearCoffer() (model.Location, bool) {
	return e.near, e.nearOK
}

// Tick processes one snapshot. A panic inside the tick is logged and the
// next tick runs normally.
func (e *Engine) Tick(snap model.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("tick panic recovered", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if snap.Now.IsZero() {
		snap.Now = time.Now()
	}
	e.lastNow = snap.Now

	e.drainCompletions()
	e.updateZone(snap.Territory, snap.Now)
	if !e.active {
		return
	}

	e.processFates(snap)
	e.processCoffers(snap)
	e.processFairies(snap)
	e.flushStats()
}

// updateZone runs the Inactive/Active lifecycle.
func (e *Engine) updateZone(territory uint16, now time.Time) {
	if e.active && territory == e.territory {
		return
	}
	if e.active {
		e.leaveZone()
	}
	if data.IsRelevant(territory) {
		e.enterZone(territory, now)
	}
}

func (e *Engine) enterZone(territory uint16, now time.Time) {
	e.active = true
	e.territory = territory
	e.sessionID = uuid.New()
	e.log = slog.With("session", e.sessionID.String(), "territory", territory)
	e.lastFates = nil
	e.fairies = fairy.NewDetector(territory)
	e.session = e.cfg.Tracker

	if data.IsBunnyTerritory(territory) {
		e.store = encounter.NewStore(territory, e.bunnyFates(territory))
		e.store.SetRespawnBounds(e.cfg.RespawnMin, e.cfg.RespawnMax)
		e.matcher = coffer.NewMatcher(e.cfg.Matcher, territory, e.registry, e.stats)
		e.matcher.Reset()
		if e.cfg.ShowBunnyPanel && e.panel != nil {
			e.panel.ShowPanel(territory)
		}
	}

	e.log.Info("entered zone",
		"zone", data.PlaceName(territory),
		"bunnies", e.store != nil,
		"at", now.Format(time.TimeOnly))
}

func (e *Engine) leaveZone() {
	e.log.Info("left zone", "zone", data.PlaceName(e.territory))

	if e.matcher != nil {
		e.matcher.Reset()
	}
	if e.runner != nil {
		e.generation = e.runner.Cancel()
	} else {
		e.generation++
	}
	if e.panel != nil && e.store != nil {
		e.panel.HidePanel()
	}
	e.dispatcher.Reset()

	e.active = false
	e.territory = 0
	e.sessionID = uuid.Nil
	e.log = slog.Default()
	e.store = nil
	e.matcher = nil
	e.fairies = nil
	e.lastFates = nil
	e.near, e.nearOK = model.Location{}, false
	e.session = tracker.Session{}
	e.creating = false
	e.flushStats()
}

func (e *Engine) bunnyFates(territory uint16) []data.Fate {
	bunnies := data.BunniesFor(territory)
	if e.cfg.OnlyEasyBunny && len(bunnies) > 1 {
		return bunnies[:1]
	}
	return bunnies
}

// processFates runs the differ and the encounter store.
func (e *Engine) processFates(snap model.Snapshot) {
	// the store needs every tick so lastSeenAlive follows the feed
	if e.store != nil {
		e.store.Refresh(snap.Fates, snap.Now)
	}

	if encounter.SameSet(e.lastFates, snap.Fates) {
		return
	}
	for _, id := range encounter.Diff(e.lastFates, snap.Fates) {
		fate, ok := e.notoriousFate(id)
		if !ok {
			continue
		}
		e.log.Info("encounter spawned", "fate", fate.Name, "fateID", fate.FateID)
		e.dispatcher.Dispatch(notify.NewEncounter(e.territory, fate), snap.Now)
	}
	e.lastFates = slices.Clone(snap.Fates)
}

func (e *Engine) notoriousFate(id uint16) (data.Fate, bool) {
	for _, f := range data.FatesFor(e.territory) {
		if f.FateID == id {
			return f, true
		}
	}
	return data.Fate{}, false
}

func (e *Engine) processCoffers(snap model.Snapshot) {
	if e.matcher == nil {
		return
	}
	res := e.matcher.Evaluate(snap.Now, snap.Player, snap.Objects)
	switch {
	case snap.Player == nil:
		// feed gap, keep the last hint
	case e.matcher.Phase() == coffer.PhaseBuffActive:
		e.near, e.nearOK = res.Near, res.NearOK
	default:
		e.near, e.nearOK = model.Location{}, false
	}

	find := res.Find
	if find == nil {
		return
	}
	e.dispatcher.Dispatch(notify.FoundReward(find.Territory, find.Kind, find.ObjectID, find.Position), snap.Now)
	if find.NewLocation {
		e.stats.SetLocations(e.registry.Discovered())
		e.dispatcher.Dispatch(notify.NewLocation(find.Territory, find.Kind, find.ObjectID, find.Position), snap.Now)
	}
}

func (e *Engine) processFairies(snap model.Snapshot) {
	for _, f := range e.fairies.Scan(snap.Objects) {
		e.dispatcher.Dispatch(notify.FairySighted(f), snap.Now)
	}
}

func (e *Engine) flushStats() {
	if e.persister == nil || !e.stats.Dirty() {
		return
	}
	e.persister.Submit(e.stats.Snapshot())
}
