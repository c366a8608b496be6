package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradebid/tradebid/internal/rates"
)

func TestHangingHydrateAppliesOnlyProvidedFields(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetWasteFactor(0.05)

	e.HydrateFromSaved([]byte(`{"mode":"area","directArea":320}`))

	assert.Equal(t, HangingModeArea, e.Mode)
	assert.Equal(t, 320.0, e.DirectArea)
	// Untouched fields retain their current state.
	assert.Equal(t, 0.05, e.WasteFactor)
	assert.Equal(t, ComplexityStandard, e.Complexity)
	assert.Greater(t, e.Totals.Total, 0.0)
}

func TestHangingHydrateSkipsInvalidFields(t *testing.T) {
	e := NewHangingEstimate(nil)

	e.HydrateFromSaved([]byte(`{
		"mode": "telepathy",
		"wasteFactor": "lots",
		"sheetSize": -48,
		"ceilingBand": "14ft",
		"directArea": 100,
		"complexity": "brutal"
	}`))

	// Valid fields apply, everything else keeps defaults.
	assert.Equal(t, 100.0, e.DirectArea)
	assert.Equal(t, HangingModeRooms, e.Mode)
	assert.Equal(t, 0.12, e.WasteFactor)
	assert.Equal(t, 32.0, e.SheetSize)
	assert.Equal(t, CeilingBand8ft, e.CeilingBand)
	assert.Equal(t, ComplexityStandard, e.Complexity)
}

func TestHydrateMalformedBlobIsNoOp(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(200)
	before := e.Totals

	e.HydrateFromSaved([]byte(`{"mode": `))
	assert.Equal(t, before, e.Totals)

	f := NewFinishingEstimate(nil)
	f.HydrateFromSaved(nil)
	assert.Equal(t, 0.0, f.Totals.Total)
}

func TestHangingParamsRoundTrip(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(320)
	e.SetWasteFactor(0)
	e.SetCeilingBand(CeilingBand9ft)
	e.AddAddon("debris_disposal", 1)

	raw, err := e.MarshalParams()
	require.NoError(t, err)

	restored := NewHangingEstimate(nil)
	restored.HydrateFromSaved(raw)

	assert.Equal(t, e.Totals, restored.Totals)
	assert.Equal(t, e.Mode, restored.Mode)
	assert.Len(t, restored.Addons, 1)
}

func TestFinishingParamsRoundTrip(t *testing.T) {
	e := NewFinishingEstimate(nil)
	id := e.AddLine(rates.SqftStandard, 150)
	off := false
	e.UpdateLine(id, LinePatch{IncludeMaterial: &off})
	e.SetDirectHours(3)
	e.AddMaterial("mesh_tape", 2)

	raw, err := e.MarshalParams()
	require.NoError(t, err)

	restored := NewFinishingEstimate(nil)
	restored.HydrateFromSaved(raw)

	assert.Equal(t, e.Totals, restored.Totals)
	require.Len(t, restored.Lines, 1)
	assert.False(t, restored.Lines[0].IncludeMaterial)
}

func TestPaintingParamsRoundTrip(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)
	e.SetQuality(QualityPremium)
	e.SetPrepTier(PrepHeavy)
	e.SetRangeMode(RangeBand)

	raw, err := e.MarshalParams()
	require.NoError(t, err)

	restored := NewPaintingEstimate(nil)
	restored.HydrateFromSaved(raw)

	assert.Equal(t, e.Totals, restored.Totals)
	assert.Equal(t, QualityPremium, restored.Quality)
	assert.Equal(t, RangeBand, restored.RangeMode)
}

func TestPaintingHydrateTamperedTotalsAreRecomputed(t *testing.T) {
	e := NewPaintingEstimate(nil)
	// Persisted totals are never authoritative; only parameters count.
	e.HydrateFromSaved([]byte(`{"wallSqft":100,"ceilingSqft":0,"totals":{"total":999999}}`))

	assert.Equal(t, 225.0, e.Totals.Total) // 100*1.75 + 100*0.5
}
