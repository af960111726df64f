package engine

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/udisondev/eurekalink/internal/clock"
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/notify"
	"github.com/udisondev/eurekalink/internal/tracker"
)

// BunnyStatus is one row of the bunny panel.
type BunnyStatus struct {
	Fate   data.Fate
	Alive  bool
	Known  bool // seen alive at least once
	Window time.Duration
	Max    time.Duration
}

// String renders the row as shown in the panel.
func (b BunnyStatus) String() string {
	name := b.Fate.DisplayName(true)
	switch {
	case b.Alive:
		return name + ": alive"
	case !b.Known:
		return name + ": unknown"
	case b.Window <= 0:
		if b.Max <= 0 {
			return name + ": soon (window elapsed)"
		}
		return name + ": soon (max " + clock.FormatRemaining(b.Max) + ")"
	default:
		return name + ": " + clock.FormatRemaining(b.Window) + " - " + clock.FormatRemaining(b.Max)
	}
}

// BunnyStates returns the bunny panel rows at now.
func (e *Engine) BunnyStates(now time.Time) []BunnyStatus {
	if e.store == nil {
		return nil
	}
	states := e.store.States()
	out := make([]BunnyStatus, 0, len(states))
	for _, st := range states {
		row := BunnyStatus{Fate: st.Fate, Alive: st.Alive}
		if w, ok := e.store.RespawnWindow(st.Fate.FateID, now); ok {
			row.Known = true
			row.Window = w.Min
			row.Max = w.Max
		}
		out = append(out, row)
	}
	return out
}

// AddChestMarkers places markers on every known coffer location of the zone.
func (e *Engine) AddChestMarkers() error {
	if !e.active || !data.IsBunnyTerritory(e.territory) {
		return ErrInactive
	}
	if e.markers == nil {
		return ErrNoMarkers
	}
	if err := e.markers.ResetMarkers(); err != nil {
		return fmt.Errorf("resetting markers: %w", err)
	}

	positions := e.registry.Positions(e.territory)
	markers := make([]notify.Marker, len(positions))
	for i, p := range positions {
		markers[i] = notify.Marker{Territory: e.territory, Position: p}
	}

	var errs []string
	if err := e.markers.AddMapMarkers(e.cfg.MarkerOffsets.Apply(markers)); err != nil {
		errs = append(errs, "Unable to place all markers on map")
	}
	if err := e.markers.AddMiniMapMarkers(markers); err != nil {
		errs = append(errs, "Unable to place all markers on minimap")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// RemoveChestMarkers clears all placed markers.
func (e *Engine) RemoveChestMarkers() error {
	if !e.active || !data.IsBunnyTerritory(e.territory) {
		return ErrInactive
	}
	if e.markers == nil {
		return ErrNoMarkers
	}
	return e.markers.ResetMarkers()
}

// EchoFairies re-dispatches every elemental seen this session.
func (e *Engine) EchoFairies() int {
	if e.fairies == nil {
		return 0
	}
	known := e.fairies.Known()
	for _, f := range known {
		e.dispatcher.Dispatch(notify.FairySighted(f), e.lastNow)
	}
	return len(known)
}

// Execute runs a console command and returns its text output.
// It must be called on the tick goroutine, usually through Submit.
func (e *Engine) Execute(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	now := e.lastNow
	if now.IsZero() {
		now = time.Now()
	}

	switch strings.TrimPrefix(fields[0], "/") {
	case "help":
		return "commands: bunny, add, remove, create, tracker <instance> <password>, shout, fairies, stats", nil

	case "bunny":
		if e.store == nil {
			return "", ErrInactive
		}
		rows := e.BunnyStates(now)
		lines := make([]string, len(rows))
		for i, r := range rows {
			lines[i] = r.String()
		}
		if e.nearOK {
			lines = append(lines, "Near coffer!")
		}
		return strings.Join(lines, "\n"), nil

	case "add", "eladd":
		if err := e.AddChestMarkers(); err != nil {
			return "", err
		}
		return "markers placed", nil

	case "remove", "elremove":
		if err := e.RemoveChestMarkers(); err != nil {
			return "", err
		}
		return "markers removed", nil

	case "create":
		if err := e.CreateTracker(); err != nil {
			return "", err
		}
		return "tracker creation requested", nil

	case "tracker":
		if len(fields) < 3 {
			return "", fmt.Errorf("usage: tracker <instance> <password>")
		}
		if !e.active {
			return "", ErrInactive
		}
		e.SetTrackerSession(tracker.Session{Instance: fields[1], Password: fields[2]})
		return "tracker set to " + e.session.InstanceID(), nil

	case "shout":
		if !e.dispatcher.Shout(now) {
			return "nothing to shout or cooldown running (" + clock.FormatRemaining(e.dispatcher.CooldownRemaining(now)) + ")", nil
		}
		return "shouted", nil

	case "fairies":
		return fmt.Sprintf("%d fairies echoed", e.EchoFairies()), nil

	case "stats":
		return e.stats.Report(language.English), nil
	}
	return "", fmt.Errorf("unknown command %q", fields[0])
}
