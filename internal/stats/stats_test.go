package stats

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

// mockStore implements Store for testing.
type mockStore struct {
	mu      sync.Mutex
	doc     Document
	loadErr error
	saveErr error
	saves   []Document
	saved   chan struct{}
}

func newMockStore() *mockStore {
	return &mockStore{doc: NewDocument(), saved: make(chan struct{}, 16)}
}

func (m *mockStore) Load(_ context.Context) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return Document{}, m.loadErr
	}
	return m.doc.Clone(), nil
}

func (m *mockStore) Save(_ context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves = append(m.saves, doc)
	m.doc = doc.Clone()
	m.saved <- struct{}{}
	return nil
}

func (m *mockStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func TestAggregator_EpisodeCounters(t *testing.T) {
	a := NewAggregator(NewDocument())

	a.EpisodeStarted(data.TerritoryPagos)
	a.EpisodeStarted(data.TerritoryPagos)
	assert.Equal(t, 2, a.PendingKills())
	assert.Equal(t, 2, a.Episodes(data.TerritoryPagos))

	a.RecordFind(data.TerritoryPagos, data.CofferGold)
	a.EpisodeResolved(data.TerritoryPagos)
	a.EpisodeResolved(data.TerritoryPagos)
	assert.Equal(t, 0, a.PendingKills())
	assert.Equal(t, 1, a.Count(data.TerritoryPagos, data.CofferGold))
	assert.Equal(t, 1, a.Total(data.TerritoryPagos))

	// extra resolve is clamped
	a.EpisodeResolved(data.TerritoryPagos)
	assert.Equal(t, 0, a.PendingKills())
}

func TestAggregator_ResetPending(t *testing.T) {
	a := NewAggregator(NewDocument())
	a.EpisodeStarted(data.TerritoryHydatos)
	a.Snapshot()
	require.False(t, a.Dirty())

	a.ResetPending()
	assert.Equal(t, 0, a.PendingKills())
	assert.True(t, a.Dirty())
	assert.Equal(t, 1, a.Episodes(data.TerritoryHydatos), "episode total survives")
}

func TestAggregator_SnapshotIsCopy(t *testing.T) {
	a := NewAggregator(NewDocument())
	a.RecordFind(data.TerritoryPyros, data.CofferSilver)
	require.True(t, a.Dirty())

	doc := a.Snapshot()
	assert.False(t, a.Dirty())

	doc.Stats[data.TerritoryPyros][data.CofferSilver] = 100
	assert.Equal(t, 1, a.Count(data.TerritoryPyros, data.CofferSilver))
}

func TestAggregator_NormalizesLoadedDocument(t *testing.T) {
	doc := Document{
		Stats: map[uint16]map[uint32]int{
			data.TerritoryPagos: {data.CofferBronze: -3, data.CofferGold: 2},
			data.TerritoryPyros: nil,
		},
		PendingKills: -1,
	}
	a := NewAggregator(doc)

	assert.Equal(t, 0, a.PendingKills())
	assert.Equal(t, 0, a.Count(data.TerritoryPagos, data.CofferBronze))
	assert.Equal(t, 2, a.Count(data.TerritoryPagos, data.CofferGold))
	assert.Equal(t, 0, a.Episodes(data.TerritoryPagos))
}

func TestAggregator_SetLocations(t *testing.T) {
	a := NewAggregator(NewDocument())
	locs := map[uint16][]model.Location{
		data.TerritoryPyros: {model.NewLocation(1, 2, 3)},
	}
	a.SetLocations(locs)
	locs[data.TerritoryPyros][0] = model.Location{}

	doc := a.Snapshot()
	assert.Equal(t, model.NewLocation(1, 2, 3), doc.Locations[data.TerritoryPyros][0])
}

func TestAggregator_Report(t *testing.T) {
	a := NewAggregator(NewDocument())
	for range 4 {
		a.EpisodeStarted(data.TerritoryHydatos)
	}
	a.RecordFind(data.TerritoryHydatos, data.CofferBronze)
	a.RecordFind(data.TerritoryHydatos, data.CofferBronze)
	a.RecordFind(data.TerritoryHydatos, data.CofferBronze)
	a.RecordFind(data.TerritoryHydatos, data.CofferGold)
	a.Snapshot()

	report := a.Report(language.English)

	assert.Contains(t, report, "Killed Bunnies: 4")
	assert.Contains(t, report, "Unresolved: 4")
	assert.Contains(t, report, "Coffers Found: 4")
	assert.Contains(t, report, "Bronze: 3 (75.00%)")
	assert.Contains(t, report, "Gold: 1 (25.00%)")
	assert.Contains(t, report, "Silver: 0 (0.00%)")
	assert.Contains(t, report, data.PlaceName(data.TerritoryHydatos)+" (4 episodes)")
	assert.Less(t, strings.Index(report, "Bronze"), strings.Index(report, "Gold"))
	assert.False(t, a.Dirty(), "report does not mark the document saved or dirty")
}

func TestAggregator_ReportEmpty(t *testing.T) {
	report := NewAggregator(NewDocument()).Report(language.English)
	assert.Contains(t, report, "Coffers Found: 0")
	assert.NotContains(t, report, "Map Stats")
}

func TestLoadAggregator(t *testing.T) {
	store := newMockStore()
	store.doc.Stats[data.TerritoryPagos] = map[uint32]int{data.CofferGold: 5}

	a, err := LoadAggregator(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 5, a.Count(data.TerritoryPagos, data.CofferGold))

	store.loadErr = errors.New("disk on fire")
	a, err = LoadAggregator(context.Background(), store)
	require.Error(t, err)
	require.NotNil(t, a)
	assert.Equal(t, 0, a.Total(data.TerritoryPagos))
}

func TestPersister_LatestWins(t *testing.T) {
	store := newMockStore()
	p := NewPersister(store)

	for i := range 5 {
		doc := NewDocument()
		doc.PendingKills = i
		p.Submit(doc)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = p.Run(ctx)
		close(done)
	}()

	select {
	case <-store.saved:
	case <-time.After(time.Second):
		t.Fatal("document was not saved")
	}
	cancel()
	<-done

	require.Equal(t, 1, store.saveCount())
	assert.Equal(t, 4, store.saves[0].PendingKills)
}

func TestPersister_FlushOnShutdown(t *testing.T) {
	store := newMockStore()
	p := NewPersister(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := NewDocument()
	doc.PendingKills = 7
	p.Submit(doc)

	require.NoError(t, p.Run(ctx))

	// Run may pick the document in either select branch; it is saved once.
	require.Equal(t, 1, store.saveCount())
	assert.Equal(t, 7, store.saves[0].PendingKills)
}

func TestPersister_SaveErrorIsLogged(t *testing.T) {
	store := newMockStore()
	store.saveErr = errors.New("read-only")
	p := NewPersister(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Submit(NewDocument())

	assert.NoError(t, p.Run(ctx))
	assert.Equal(t, 0, store.saveCount())
}
