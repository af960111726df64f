package notify

import (
	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// SinkKind selects an output channel.
type SinkKind uint8

const (
	SinkChat SinkKind = iota + 1
	SinkToast
	SinkSound
	SinkBroadcast
	SinkPop
	// SinkObserver receives every event unformatted.
	SinkObserver
)

// String returns the sink kind name.
func (k SinkKind) String() string {
	switch k {
	case SinkChat:
		return "chat"
	case SinkToast:
		return "toast"
	case SinkSound:
		return "sound"
	case SinkBroadcast:
		return "broadcast"
	case SinkPop:
		return "pop"
	case SinkObserver:
		return "observer"
	default:
		return "unknown"
	}
}

// Delivery is what a sink receives.
type Delivery struct {
	Event   Event
	Text    string
	SoundID uint32
}

// Sink is a best-effort output. Deliver must not block the tick goroutine.
type Sink interface {
	Deliver(d Delivery) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Delivery) error

// Deliver calls f.
func (f SinkFunc) Deliver(d Delivery) error {
	return f(d)
}

// Gate is implemented by sinks that can be temporarily unusable, such as
// the pop sink without a configured tracker session. A closed gate skips
// delivery without an error.
type Gate interface {
	Ready() bool
}

// Marker is a map marker position in world coordinates.
type Marker struct {
	Territory uint16
	Position  model.Location
}

// MarkerSink places and removes map and minimap markers.
type MarkerSink interface {
	AddMapMarkers(markers []Marker) error
	AddMiniMapMarkers(markers []Marker) error
	ResetMarkers() error
}

// HydatosMarkerOffsetZ is the Z correction applied to map markers in Hydatos.
// Minimap markers do not need it.
const HydatosMarkerOffsetZ float32 = 475

// MarkerOffsets holds per-zone Z corrections for map markers.
type MarkerOffsets map[uint16]float32

// DefaultMarkerOffsets returns the known corrections.
func DefaultMarkerOffsets() MarkerOffsets {
	return MarkerOffsets{data.TerritoryHydatos: HydatosMarkerOffsetZ}
}

// Apply returns markers with the Z correction of their zone applied.
func (o MarkerOffsets) Apply(markers []Marker) []Marker {
	out := make([]Marker, len(markers))
	for i, m := range markers {
		if dz, ok := o[m.Territory]; ok {
			m.Position = m.Position.WithOffset(0, 0, dz)
		}
		out[i] = m
	}
	return out
}

// PanelSink is the UI surface that lists bunny fates and respawn windows.
type PanelSink interface {
	ShowPanel(territory uint16)
	HidePanel()
}
