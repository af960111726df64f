package notify

import (
	"log/slog"
	"time"

	"github.com/udisondev/eurekalink/internal/clock"
	"github.com/udisondev/eurekalink/internal/data"
)

// Settings selects which outputs are enabled and how lines are formatted.
type Settings struct {
	EchoPop       bool
	PopToast      bool
	PlaySound     bool
	SoundID       uint32
	Broadcast     bool
	ChatFormat    string
	UseShortNames bool
	ShowPullTimer bool
	UseEorzeaTime bool
	TwelveHour    bool
	PullMinutes   int
	EchoFairies   bool
	FairyToast    bool
	EchoFound     bool
	Cooldown      time.Duration
}

// DefaultSettings returns the out-of-the-box output settings.
func DefaultSettings() Settings {
	return Settings{
		EchoPop:       true,
		PopToast:      true,
		PlaySound:     true,
		SoundID:       36,
		ChatFormat:    "/sh $n pop: $p. Pull in $t",
		ShowPullTimer: true,
		PullMinutes:   27,
		EchoFairies:   true,
		Cooldown:      20 * time.Second,
	}
}

// Dispatcher fans events out to the registered sinks.
//
// Only the broadcast gate carries state: after a shout the broadcast and pop
// sinks stay silent until the cooldown runs out. Every other output fires on
// each event. Owned by the tick goroutine.
type Dispatcher struct {
	settings Settings
	sinks    map[SinkKind][]Sink
	cooldown clock.Timer
	last     Event
}

// NewDispatcher creates a dispatcher without sinks.
func NewDispatcher(settings Settings) *Dispatcher {
	return &Dispatcher{
		settings: settings,
		sinks:    make(map[SinkKind][]Sink),
		cooldown: clock.NewTimer(settings.Cooldown),
	}
}

// Register adds sink for kind.
func (d *Dispatcher) Register(kind SinkKind, sink Sink) {
	d.sinks[kind] = append(d.sinks[kind], sink)
}

// Settings returns the active settings.
func (d *Dispatcher) Settings() Settings {
	return d.settings
}

// CooldownRunning reports whether the broadcast gate is closed at now.
func (d *Dispatcher) CooldownRunning(now time.Time) bool {
	return d.cooldown.Running(now)
}

// CooldownRemaining returns time until the broadcast gate reopens.
func (d *Dispatcher) CooldownRemaining(now time.Time) time.Duration {
	return d.cooldown.Remaining(now)
}

// LastEncounter returns the most recently announced fate.
func (d *Dispatcher) LastEncounter() (data.Fate, bool) {
	return d.last.Fate, !d.last.Fate.IsEmpty()
}

// Reset drops the cooldown and the last announced fate (zone exit).
func (d *Dispatcher) Reset() {
	d.cooldown.Stop()
	d.last = Event{}
}

// Dispatch delivers ev to the enabled sinks.
func (d *Dispatcher) Dispatch(ev Event, now time.Time) {
	s := d.settings

	switch ev.Kind {
	case EventNewEncounter:
		d.last = ev
		line := s.FormatPop(ev.Fate)
		if s.EchoPop {
			d.deliver(SinkChat, Delivery{Event: ev, Text: line})
		}
		if s.PopToast {
			d.deliver(SinkToast, Delivery{Event: ev, Text: line})
		}
		if s.PlaySound {
			d.deliver(SinkSound, Delivery{Event: ev, SoundID: s.SoundID})
		}
		if s.Broadcast {
			d.broadcast(ev, now)
		}

	case EventFoundReward:
		if s.EchoFound {
			d.deliver(SinkChat, Delivery{Event: ev, Text: FormatFound(ev.Territory, ev.RewardKind)})
		}

	case EventNewLocation:
		d.deliver(SinkChat, Delivery{Event: ev, Text: "You found a new chest location, please report the following message:"})
		d.deliver(SinkChat, Delivery{Event: ev, Text: FormatNewLocation(ev.Territory, ev.Position)})

	case EventFairySighted:
		line := FormatFairy(ev.Fairy)
		if s.EchoFairies {
			d.deliver(SinkChat, Delivery{Event: ev, Text: line})
		}
		if s.FairyToast {
			d.deliver(SinkToast, Delivery{Event: ev, Text: line})
		}

	default:
		slog.Warn("unknown notification event", "kind", ev.Kind)
		return
	}

	d.deliver(SinkObserver, Delivery{Event: ev})
}

// Shout repeats the broadcast for the last announced fate, honoring the
// cooldown. Reports whether the shout went out.
func (d *Dispatcher) Shout(now time.Time) bool {
	if _, ok := d.LastEncounter(); !ok {
		return false
	}
	return d.broadcast(d.last, now)
}

// broadcast opens the shout gate if the cooldown is not running.
func (d *Dispatcher) broadcast(ev Event, now time.Time) bool {
	if d.cooldown.Running(now) {
		slog.Debug("broadcast suppressed by cooldown",
			"fate", ev.Fate.Name,
			"remaining", d.cooldown.Remaining(now))
		return false
	}
	d.cooldown.Start(now)

	d.deliver(SinkBroadcast, Delivery{Event: ev, Text: d.settings.FormatShout(ev.Fate, now)})
	if ev.Fate.HasTracker() {
		d.deliver(SinkPop, Delivery{Event: ev})
	} else {
		slog.Debug("fate has no tracker id, pop skipped", "fate", ev.Fate.Name)
	}
	return true
}

// deliver sends to every sink of kind. Failures are logged and ignored.
func (d *Dispatcher) deliver(kind SinkKind, dl Delivery) {
	for _, sink := range d.sinks[kind] {
		if g, ok := sink.(Gate); ok && !g.Ready() {
			slog.Debug("sink not ready, skipped", "sink", kind, "event", dl.Event.Kind)
			continue
		}
		if err := sink.Deliver(dl); err != nil {
			slog.Warn("sink delivery failed", "sink", kind, "event", dl.Event.Kind, "error", err)
		}
	}
}
