package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
	"github.com/udisondev/eurekalink/internal/notify"
)

// Entry is one journal line.
type Entry struct {
	Time      time.Time       `json:"time"`
	Event     string          `json:"event"`
	Territory uint16          `json:"territory"`
	Zone      string          `json:"zone"`
	FateID    uint16          `json:"fate_id,omitempty"`
	Fate      string          `json:"fate,omitempty"`
	Reward    string          `json:"reward,omitempty"`
	ObjectID  uint32          `json:"object_id,omitempty"`
	Position  *model.Location `json:"position,omitempty"`
}

// EntryFor converts a notification event into a journal entry.
func EntryFor(ev notify.Event, at time.Time) Entry {
	e := Entry{
		Time:      at.UTC(),
		Event:     ev.Kind.String(),
		Territory: ev.Territory,
		Zone:      data.PlaceName(ev.Territory),
	}
	switch ev.Kind {
	case notify.EventNewEncounter:
		e.FateID = ev.Fate.FateID
		e.Fate = ev.Fate.Name
	case notify.EventFoundReward, notify.EventNewLocation:
		e.Reward = data.CofferName(ev.RewardKind)
		e.ObjectID = ev.ObjectID
		pos := ev.Position
		e.Position = &pos
	case notify.EventFairySighted:
		e.ObjectID = ev.Fairy.ObjectID
		pos := ev.Fairy.Location
		e.Position = &pos
	}
	return e
}

// Journal is an observer sink that records every event.
// Deliver only enqueues; Run does the file I/O.
type Journal struct {
	w     *Writer
	queue chan Entry
	now   func() time.Time
}

// New creates a journal writing through w.
func New(w *Writer, buffer int) *Journal {
	if buffer <= 0 {
		buffer = 256
	}
	return &Journal{w: w, queue: make(chan Entry, buffer), now: time.Now}
}

// Deliver implements notify.Sink.
func (j *Journal) Deliver(d notify.Delivery) error {
	select {
	case j.queue <- EntryFor(d.Event, j.now()):
	default:
		slog.Warn("journal queue full, entry dropped", "event", d.Event.Kind)
	}
	return nil
}

// Run writes queued entries until ctx is cancelled, then drains the queue
// and closes the writer.
func (j *Journal) Run(ctx context.Context) error {
	defer func() {
		if err := j.w.Close(); err != nil {
			slog.Error("closing journal", "error", err)
		}
	}()

	for {
		select {
		case e := <-j.queue:
			j.write(e)
		case <-ctx.Done():
			for {
				select {
				case e := <-j.queue:
					j.write(e)
				default:
					return nil
				}
			}
		}
	}
}

func (j *Journal) write(e Entry) {
	if err := j.w.Write(e); err != nil {
		slog.Warn("writing journal entry", "event", e.Event, "error", err)
	}
}
