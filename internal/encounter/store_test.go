package encounter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/eurekalink/internal/data"
)

func newPagosStore(t *testing.T) *Store {
	t.Helper()
	bunnies := data.BunniesFor(data.TerritoryPagos)
	require.NotEmpty(t, bunnies)
	return NewStore(data.TerritoryPagos, bunnies)
}

func TestStore_Refresh(t *testing.T) {
	s := newPagosStore(t)
	bunny := data.BunniesFor(data.TerritoryPagos)[0]
	base := time.Unix(1_700_000_000, 0)

	st, ok := s.State(bunny.FateID)
	require.True(t, ok)
	assert.False(t, st.Alive)
	assert.Zero(t, st.LastSeenAlive)

	s.Refresh([]uint16{bunny.FateID, 1351}, base)
	st, _ = s.State(bunny.FateID)
	assert.True(t, st.Alive)
	assert.Equal(t, base.Unix(), st.LastSeenAlive)

	s.Refresh([]uint16{bunny.FateID}, base.Add(10*time.Second))
	st, _ = s.State(bunny.FateID)
	assert.Equal(t, base.Add(10*time.Second).Unix(), st.LastSeenAlive, "alive refresh moves timestamp")

	s.Refresh(nil, base.Add(11*time.Second))
	st, _ = s.State(bunny.FateID)
	assert.False(t, st.Alive)
	assert.Equal(t, base.Add(10*time.Second).Unix(), st.LastSeenAlive, "death keeps last seen")
}

func TestStore_RespawnWindow_Unknown(t *testing.T) {
	s := newPagosStore(t)
	bunny := data.BunniesFor(data.TerritoryPagos)[0]

	_, ok := s.RespawnWindow(bunny.FateID, time.Now())
	assert.False(t, ok, "never seen alive")

	_, ok = s.RespawnWindow(9999, time.Now())
	assert.False(t, ok, "unknown fate")
}

func TestStore_RespawnWindow(t *testing.T) {
	s := newPagosStore(t)
	bunny := data.BunniesFor(data.TerritoryPagos)[0]
	base := time.Unix(1_700_000_000, 0)

	s.Refresh([]uint16{bunny.FateID}, base)
	s.Refresh(nil, base.Add(time.Second))

	w, ok := s.RespawnWindow(bunny.FateID, base)
	require.True(t, ok)
	assert.Equal(t, 530*time.Second, w.Min)
	assert.Equal(t, 1000*time.Second, w.Max)
	assert.False(t, w.Soon())

	w, _ = s.RespawnWindow(bunny.FateID, base.Add(600*time.Second))
	assert.True(t, w.Soon())
	assert.False(t, w.Elapsed())

	w, _ = s.RespawnWindow(bunny.FateID, base.Add(1001*time.Second))
	assert.True(t, w.Elapsed())
}

func TestStore_RespawnWindow_Monotonic(t *testing.T) {
	s := newPagosStore(t)
	bunny := data.BunniesFor(data.TerritoryPagos)[0]
	base := time.Unix(1_700_000_000, 0)
	s.Refresh([]uint16{bunny.FateID}, base)

	prev, _ := s.RespawnWindow(bunny.FateID, base)
	for sec := 1; sec <= 1100; sec++ {
		w, ok := s.RespawnWindow(bunny.FateID, base.Add(time.Duration(sec)*time.Second))
		require.True(t, ok)
		require.Less(t, w.Min, prev.Min, "min bound at +%ds", sec)
		require.Less(t, w.Max, prev.Max, "max bound at +%ds", sec)
		prev = w
	}
	assert.True(t, prev.Elapsed())
}

func TestStore_CustomBounds(t *testing.T) {
	s := newPagosStore(t)
	s.SetRespawnBounds(60, 120)
	bunny := data.BunniesFor(data.TerritoryPagos)[0]
	base := time.Unix(1_700_000_000, 0)
	s.Refresh([]uint16{bunny.FateID}, base)

	w, ok := s.RespawnWindow(bunny.FateID, base)
	require.True(t, ok)
	assert.Equal(t, 60*time.Second, w.Min)
	assert.Equal(t, 120*time.Second, w.Max)
}

func TestStore_StatesOrder(t *testing.T) {
	s := newPagosStore(t)
	states := s.States()
	bunnies := data.BunniesFor(data.TerritoryPagos)

	require.Len(t, states, len(bunnies))
	for i := range bunnies {
		assert.Equal(t, bunnies[i].FateID, states[i].Fate.FateID)
	}
	assert.Equal(t, len(bunnies), s.Len())
	assert.Equal(t, data.TerritoryPagos, s.Territory())
}
