package coffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/eurekalink/internal/data"
	"github.com/udisondev/eurekalink/internal/model"
)

func TestRegistry_ToleranceIdentity(t *testing.T) {
	r := NewRegistry(0.5)
	pos := model.NewLocation(10, 20, 30)

	require.True(t, r.Add(data.TerritoryPyros, pos))
	assert.False(t, r.Add(data.TerritoryPyros, pos.WithOffset(0.25, -0.25, 0.25)), "within epsilon")
	assert.True(t, r.Add(data.TerritoryPyros, pos.WithOffset(0.75, 0, 0)), "outside epsilon on one axis")
	assert.True(t, r.Add(data.TerritoryPagos, pos), "zones are separate")

	assert.Len(t, r.Positions(data.TerritoryPyros), 2)
}

func TestRegistry_DefaultEpsilon(t *testing.T) {
	r := NewRegistry(0)
	assert.Equal(t, DefaultEpsilon, r.Epsilon())
}

func TestRegistry_Seeded(t *testing.T) {
	r := NewSeededRegistry(DefaultEpsilon)

	for _, territory := range data.Territories() {
		seeded := data.CofferPositions(territory)
		assert.Len(t, r.Positions(territory), len(seeded))
		for _, p := range seeded {
			assert.True(t, r.Exists(territory, p))
		}
	}
	assert.Empty(t, r.Discovered(), "seeded locations are not discovered")
}

func TestRegistry_Restore(t *testing.T) {
	r := NewSeededRegistry(DefaultEpsilon)
	seeded := data.CofferPositions(data.TerritoryPagos)[0]
	fresh := model.NewLocation(1, 2, 3)

	added := r.Restore(map[uint16][]model.Location{
		data.TerritoryPagos: {seeded, fresh, fresh},
	})

	assert.Equal(t, 1, added)
	assert.Equal(t, []model.Location{fresh}, r.Discovered()[data.TerritoryPagos])
}

func TestRegistry_Nearest(t *testing.T) {
	r := NewRegistry(DefaultEpsilon)
	a := model.NewLocation(0, 0, 0)
	b := model.NewLocation(10, 0, 0)
	r.Add(data.TerritoryPagos, a)
	r.Add(data.TerritoryPagos, b)

	got, ok := r.Nearest(data.TerritoryPagos, model.NewLocation(8, 0, 0), 50)
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = r.Nearest(data.TerritoryPagos, model.NewLocation(100, 0, 0), 50)
	assert.False(t, ok)

	_, ok = r.Nearest(data.TerritoryHydatos, a, 50)
	assert.False(t, ok)
}
