package main

import (
	"log/slog"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/notify"
)

// logSink writes deliveries of one output kind to the log.
// Used when no game client is attached.
type logSink struct {
	kind notify.SinkKind
}

func (s logSink) Deliver(d notify.Delivery) error {
	switch s.kind {
	case notify.SinkSound:
		slog.Info("sound", "id", d.SoundID, "event", d.Event.Kind)
	default:
		slog.Info(s.kind.String(), "text", d.Text, "event", d.Event.Kind)
	}
	return nil
}

// logMarkers implements notify.MarkerSink by logging marker positions.
type logMarkers struct{}

func (logMarkers) AddMapMarkers(markers []notify.Marker) error {
	for _, m := range markers {
		slog.Info("map marker", "zone", data.PlaceName(m.Territory), "x", m.Position.X, "y", m.Position.Y, "z", m.Position.Z)
	}
	return nil
}

func (logMarkers) AddMiniMapMarkers(markers []notify.Marker) error {
	slog.Debug("minimap markers", "count", len(markers))
	return nil
}

func (logMarkers) ResetMarkers() error {
	slog.Info("markers reset")
	return nil
}

// logPanel implements notify.PanelSink.
type logPanel struct{}

func (logPanel) ShowPanel(territory uint16) {
	slog.Info("bunny panel shown", "zone", data.PlaceName(territory))
}

func (logPanel) HidePanel() {
	slog.Info("bunny panel hidden")
}

func registerSinks(d *notify.Dispatcher) {
	for _, kind := range []notify.SinkKind{
		notify.SinkChat,
		notify.SinkToast,
		notify.SinkSound,
		notify.SinkBroadcast,
	} {
		d.Register(kind, logSink{kind: kind})
	}
}
