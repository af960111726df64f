package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/notify"
	"github.com/udisondev/eurekalink/internal/tracker"
)

// mockService implements tracker.Service for testing.
type mockService struct {
	mu      sync.Mutex
	session tracker.Session
	err     error
	zones   []int
	pops    []uint16
}

func (m *mockService) CreateTracker(_ context.Context, zoneKey int) (tracker.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones = append(m.zones, zoneKey)
	return m.session, m.err
}

func (m *mockService) Pop(_ context.Context, trackerID uint16, _ tracker.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pops = append(m.pops, trackerID)
	return nil
}

func (m *mockService) popped() []uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint16(nil), m.pops...)
}

func newTrackerHarness(t *testing.T, cfg Config, settings notify.Settings) (*harness, *mockService, *tracker.Runner) {
	t.Helper()
	svc := &mockService{session: tracker.Session{Instance: "https://tracker.example/new", Password: "pw"}}
	runner := tracker.NewRunner(svc, time.Second, 8)
	t.Cleanup(runner.Close)
	return newHarness(t, cfg, settings, runner), svc, runner
}

func waitCompletion(t *testing.T, r *tracker.Runner) {
	t.Helper()
	require.Eventually(t, func() bool { return len(r.Completions()) > 0 }, time.Second, 5*time.Millisecond)
}

func TestEngine_CreateTrackerPopsCurrentFates(t *testing.T) {
	h, svc, runner := newTrackerHarness(t, DefaultConfig(), notify.DefaultSettings())
	e := h.engine

	e.Tick(snap(0, data.TerritoryPagos, 1351, 1368))
	out, err := e.Execute("create")
	require.NoError(t, err)
	assert.Equal(t, "tracker creation requested", out)

	waitCompletion(t, runner)
	e.Tick(snap(1, data.TerritoryPagos, 1351, 1368))

	assert.Equal(t, "new", e.TrackerSession().InstanceID())
	require.Eventually(t, func() bool { return len(svc.popped()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []uint16{21}, svc.popped(), "bunny has no tracker id")

	_, err = e.Execute("create")
	assert.ErrorIs(t, err, ErrTrackerExists)
}

func TestEngine_CreateTrackerFailure(t *testing.T) {
	h, svc, runner := newTrackerHarness(t, DefaultConfig(), notify.DefaultSettings())
	svc.err = tracker.ErrRejected
	e := h.engine

	e.Tick(snap(0, data.TerritoryPagos))
	require.NoError(t, e.CreateTracker())
	waitCompletion(t, runner)
	e.Tick(snap(1, data.TerritoryPagos))

	assert.False(t, e.TrackerSession().Configured())
	assert.NoError(t, e.CreateTracker(), "a failed creation can be retried")
}

func TestEngine_StaleCompletionDiscarded(t *testing.T) {
	h, _, _ := newTrackerHarness(t, DefaultConfig(), notify.DefaultSettings())
	e := h.engine

	e.Tick(snap(0, data.TerritoryPagos))
	e.Tick(snap(1, 0))
	e.Tick(snap(2, data.TerritoryPagos))

	e.applyCompletion(tracker.Completion{
		Generation: e.generation - 1,
		Kind:       tracker.TaskCreate,
		Session:    tracker.Session{Instance: "old", Password: "pw"},
	})
	assert.False(t, e.TrackerSession().Configured())

	e.applyCompletion(tracker.Completion{
		Generation: e.generation,
		Kind:       tracker.TaskCreate,
		Session:    tracker.Session{Instance: "current", Password: "pw"},
	})
	assert.Equal(t, "current", e.TrackerSession().InstanceID())
}

func TestEngine_BroadcastPopsConfiguredTracker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tracker = tracker.Session{Instance: "abc", Password: "pw"}
	settings := notify.DefaultSettings()
	settings.Broadcast = true
	h, svc, _ := newTrackerHarness(t, cfg, settings)
	e := h.engine

	e.Tick(snap(0, data.TerritoryHydatos, 1423)) // Ovni
	e.Tick(snap(30, data.TerritoryHydatos, 1423, 1412))

	assert.Equal(t, 2, h.broadcast.count())
	require.Eventually(t, func() bool { return len(svc.popped()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []uint16{55}, svc.popped())
}

func TestEngine_TrackerSessionClearedOnLeave(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tracker = tracker.Session{Instance: "abc", Password: "pw"}
	h, _, _ := newTrackerHarness(t, cfg, notify.DefaultSettings())
	e := h.engine

	e.Tick(snap(0, data.TerritoryPagos))
	e.SetTrackerSession(tracker.Session{Instance: "other", Password: "pw"})
	e.Tick(snap(1, 0))
	assert.False(t, e.TrackerSession().Configured())

	e.Tick(snap(2, data.TerritoryPagos))
	assert.Equal(t, "abc", e.TrackerSession().InstanceID(), "configured session restored on entry")
}
