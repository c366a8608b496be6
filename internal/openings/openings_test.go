package openings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardDoorArea(t *testing.T) {
	o := New(KindDoor, "standard", 1)
	assert.Equal(t, 20.0, o.TotalArea)

	o.Quantity = 3
	o.Recalculate()
	assert.Equal(t, 60.0, o.TotalArea)
	assert.Equal(t, 20.0, o.UnitArea)
}

func TestResolvePreset(t *testing.T) {
	p, ok := ResolvePreset(KindWindow, "medium")
	assert.True(t, ok)
	assert.Equal(t, 36.0, p.WidthIn)
	assert.Equal(t, 48.0, p.HeightIn)

	_, ok = ResolvePreset(KindWindow, "standard")
	assert.False(t, ok)
}

func TestUnknownPresetFallsBackToZeroCustom(t *testing.T) {
	o := New(KindDoor, "barn", 2)
	assert.Equal(t, CustomPresetID, o.PresetID)
	assert.Equal(t, 0.0, o.TotalArea)
}

func TestCustomOpeningDerivesArea(t *testing.T) {
	o := NewCustom("Transom", 48, 12, 2)
	assert.Equal(t, 4.0, o.UnitArea)
	assert.Equal(t, 8.0, o.TotalArea)
}

func TestRecalculateIgnoresNegativeInput(t *testing.T) {
	o := NewCustom("bad", -10, 80, 1)
	assert.Equal(t, 0.0, o.TotalArea)
}

func TestTotalAreaSkipsInvalidEntries(t *testing.T) {
	list := []Opening{
		New(KindDoor, "standard", 1),
		{WidthIn: -1, HeightIn: 80, Quantity: 1},
		New(KindWindow, "small", 2),
	}
	// 20 + 0 + 2*(24*36/144=6) = 32
	assert.InDelta(t, 32.0, TotalArea(list), 1e-9)
}
