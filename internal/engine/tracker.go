package engine

import (
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/notify"
	"github.com/udisondev/eurekalink/internal/tracker"
)

// popSink forwards broadcast pops to the tracker runner.
type popSink struct {
	e *Engine
}

func (s *popSink) Ready() bool {
	return s.e.session.Configured()
}

func (s *popSink) Deliver(d notify.Delivery) error {
	s.e.runner.Pop(d.Event.Fate.TrackerID, s.e.session)
	return nil
}

// CreateTracker requests a new tracker instance for the active zone.
// The session is applied when the call completes.
func (e *Engine) CreateTracker() error {
	if !e.active {
		return ErrInactive
	}
	if e.runner == nil {
		return ErrNoTracker
	}
	if e.session.Configured() {
		return ErrTrackerExists
	}
	zoneKey, ok := data.TrackerZone(e.territory)
	if !ok {
		return ErrInactive
	}
	if e.creating {
		e.log.Debug("tracker creation already in flight")
		return nil
	}
	e.creating = true
	e.runner.CreateTracker(zoneKey)
	e.log.Info("tracker creation requested", "zoneKey", zoneKey)
	return nil
}

// SetTrackerSession replaces the tracker session of the zone session.
func (e *Engine) SetTrackerSession(s tracker.Session) {
	e.session = s
	e.log.Info("tracker session set", "instance", s.InstanceID(), "password", s.Fingerprint())
}

// drainCompletions applies finished tracker calls.
func (e *Engine) drainCompletions() {
	if e.runner == nil {
		return
	}
	for {
		select {
		case c := <-e.runner.Completions():
			e.applyCompletion(c)
		default:
			return
		}
	}
}

func (e *Engine) applyCompletion(c tracker.Completion) {
	if c.Generation != e.generation {
		e.log.Debug("stale tracker completion discarded", "task", c.Kind, "generation", c.Generation)
		return
	}

	switch c.Kind {
	case tracker.TaskCreate:
		e.creating = false
		if c.Err != nil {
			e.log.Warn("tracker creation failed", "error", c.Err)
			return
		}
		e.session = c.Session
		e.log.Info("tracker created", "instance", c.Session.Instance, "password", c.Session.Fingerprint())
		e.popCurrentFates()

	case tracker.TaskPop:
		if c.Err != nil {
			e.log.Warn("tracker pop failed", "trackerID", c.TrackerID, "error", c.Err)
			return
		}
		e.log.Debug("tracker pop confirmed", "trackerID", c.TrackerID)
	}
}

// popCurrentFates pops every alive notorious monster on a fresh tracker.
func (e *Engine) popCurrentFates() {
	if !e.session.Configured() {
		return
	}
	for _, id := range e.lastFates {
		fate, ok := e.notoriousFate(id)
		if !ok || !fate.HasTracker() {
			continue
		}
		e.runner.Pop(fate.TrackerID, e.session)
	}
}
