package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
	"github.com/udisondev/eurekalink/internal/notify"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var out []Entry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestWriter_AppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	w := NewWriter(dir, "events")
	w.now = func() time.Time { return at }
	require.NoError(t, w.Write(map[string]int{"n": 1}))
	require.NoError(t, w.Close())

	w2 := NewWriter(dir, "events")
	w2.now = func() time.Time { return at }
	require.NoError(t, w2.Write(map[string]int{"n": 2}))
	require.NoError(t, w2.Close())

	path := w.PathFor(at)
	assert.Contains(t, path, "events-2026-03-01.jsonl.zst")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`}, lines)
}

func TestWriter_RotatesDaily(t *testing.T) {
	dir := t.TempDir()
	day1 := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	day2 := day1.Add(2 * time.Minute)

	w := NewWriter(dir, "events")
	now := day1
	w.now = func() time.Time { return now }
	require.NoError(t, w.Write(1))
	now = day2
	require.NoError(t, w.Write(2))
	require.NoError(t, w.Close())

	assert.FileExists(t, w.PathFor(day1))
	assert.FileExists(t, w.PathFor(day2))
}

func TestEntryFor(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pos := model.NewLocation(1, 2, 3)

	e := EntryFor(notify.NewLocation(data.TerritoryPyros, data.CofferSilver, 77, pos), at)
	assert.Equal(t, "new_location", e.Event)
	assert.Equal(t, "Eureka Pyros", e.Zone)
	assert.Equal(t, "Silver", e.Reward)
	assert.Equal(t, uint32(77), e.ObjectID)
	require.NotNil(t, e.Position)
	assert.Equal(t, pos, *e.Position)

	fate := data.Fate{FateID: 1328, Name: "Sabotender Corrido"}
	e = EntryFor(notify.NewEncounter(data.TerritoryAnemos, fate), at)
	assert.Equal(t, uint16(1328), e.FateID)
	assert.Nil(t, e.Position)
}

func TestJournal_RunDrainsOnShutdown(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w := NewWriter(dir, "journal")
	w.now = func() time.Time { return at }
	j := New(w, 8)
	j.now = func() time.Time { return at }

	ev := notify.FoundReward(data.TerritoryHydatos, data.CofferGold, 42, model.NewLocation(1, 2, 3))
	require.NoError(t, j.Deliver(notify.Delivery{Event: ev}))
	require.NoError(t, j.Deliver(notify.Delivery{Event: ev}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, j.Run(ctx))

	entries := readEntries(t, w.PathFor(at))
	require.Len(t, entries, 2)
	assert.Equal(t, "found_reward", entries[0].Event)
	assert.Equal(t, "Gold", entries[0].Reward)
}

func TestJournal_DeliverNeverBlocks(t *testing.T) {
	j := New(NewWriter(t.TempDir(), "journal"), 1)

	for range 10 {
		assert.NoError(t, j.Deliver(notify.Delivery{Event: notify.FoundReward(data.TerritoryPagos, data.CofferBronze, 1, model.Location{})}))
	}
	assert.Len(t, j.queue, 1)
}
