package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		prev []uint16
		cur  []uint16
		want []uint16
	}{
		{"empty both", nil, nil, nil},
		{"first poll", nil, []uint16{5}, []uint16{5}},
		{"one new appears", []uint16{5}, []uint16{5, 7}, []uint16{7}},
		{"order does not matter", []uint16{7, 5}, []uint16{5, 7}, nil},
		{"disappearance is not an appearance", []uint16{5, 7}, []uint16{5}, nil},
		{"duplicates reported once", []uint16{5}, []uint16{9, 9, 5}, []uint16{9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.prev, tt.cur))
		})
	}
}

func TestDiff_Idempotent(t *testing.T) {
	sets := [][]uint16{
		nil,
		{1},
		{1328, 1351, 1412},
		{3, 3, 2, 1},
	}
	for _, s := range sets {
		assert.Empty(t, Diff(s, s), "Diff(%v, %v)", s, s)
	}
}

func TestDiff_ReappearanceIsNew(t *testing.T) {
	// только один тик истории: исчезновение и повторное появление — новое событие
	t0 := []uint16{5, 7}
	t1 := []uint16{5}
	t2 := []uint16{5, 7}

	assert.Empty(t, Diff(t0, t1))
	assert.Equal(t, []uint16{7}, Diff(t1, t2))
}

func TestSameSet(t *testing.T) {
	assert.True(t, SameSet(nil, nil))
	assert.True(t, SameSet([]uint16{1, 2}, []uint16{1, 2}))
	assert.True(t, SameSet([]uint16{2, 1}, []uint16{1, 2}))
	assert.True(t, SameSet([]uint16{1, 1, 2}, []uint16{2, 1}))
	assert.False(t, SameSet([]uint16{1}, []uint16{1, 2}))
	assert.False(t, SameSet([]uint16{1, 3}, []uint16{1, 2}))
}
