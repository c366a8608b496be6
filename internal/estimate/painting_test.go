package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradebid/tradebid/internal/geometry"
	"github.com/tradebid/tradebid/internal/rates"
	"github.com/tradebid/tradebid/internal/units"
)

func TestPaintingEmptyEstimateIsWellFormed(t *testing.T) {
	e := NewPaintingEstimate(nil)

	assert.Equal(t, 0.0, e.Totals.Total)
	assert.Equal(t, 0.0, e.Totals.LaborSubtotal)
	assert.Equal(t, 0.0, e.Totals.CostPerSqft)
	assert.Equal(t, Range{}, e.Totals.Range)
}

func TestPaintingEndToEnd(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)

	// Defaults: 2 coats, standard quality, no prep, standard complexity,
	// industry midpoints 1.75 labor / 0.50 material, ceiling modifier 1.2.
	assert.Equal(t, 910.0, e.Totals.LaborSubtotal) // 400*1.75 + 100*1.75*1.2
	assert.Equal(t, 250.0, e.Totals.MaterialSubtotal)
	assert.Equal(t, 0.0, e.Totals.PrepSubtotal)
	assert.Equal(t, 1160.0, e.Totals.Total)
	assert.Equal(t, 986.0, e.Totals.Range.Low)
	assert.Equal(t, 1334.0, e.Totals.Range.High)
}

func TestPaintingCoatMultiplier(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)

	e.SetCoats(1)
	assert.Equal(t, units.Round2(910*0.65), e.Totals.LaborSubtotal)
	assert.Equal(t, units.Round2(250*0.65), e.Totals.MaterialSubtotal)

	e.SetCoats(3)
	assert.Equal(t, units.Round2(910*1.35), e.Totals.LaborSubtotal)

	// Out-of-range coat counts are ignored.
	e.SetCoats(0)
	assert.Equal(t, 3, e.Coats)
}

func TestPaintingQualityAffectsMaterialOnly(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)
	e.SetQuality(QualityPremium)

	assert.Equal(t, 910.0, e.Totals.LaborSubtotal)
	assert.Equal(t, 325.0, e.Totals.MaterialSubtotal) // 250 * 1.3
}

func TestPaintingPrepTier(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)
	e.SetPrepTier(PrepStandard)

	assert.Equal(t, 150.0, e.Totals.PrepSubtotal) // 500 * 0.30
	assert.Equal(t, 1310.0, e.Totals.Total)
}

func TestPaintingComplexityAppliesToFullSubtotal(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)
	e.SetPrepTier(PrepStandard)
	e.AddAddon("doors", 2)

	require.Equal(t, 90.0, e.Totals.AddonSubtotal)
	require.Equal(t, 1400.0, e.Totals.Subtotal)

	e.SetComplexity(ComplexityComplex)
	assert.Equal(t, 1.3, e.Totals.ComplexityMultiplier)
	assert.Equal(t, units.Round2(1400*0.3), e.Totals.ComplexityAdjustment)
	assert.Equal(t, 1820.0, e.Totals.Total)
}

func TestPaintingBandRangeMode(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)
	e.SetRangeMode(RangeBand)

	// Low: 400*1.25 + 100*1.25*1.2 + 500*0.35 = 825.
	// High: 400*2.25 + 100*2.25*1.2 + 500*0.65 = 1495.
	assert.Equal(t, 825.0, e.Totals.Range.Low)
	assert.Equal(t, 1495.0, e.Totals.Range.High)

	// The point total is unchanged by the range mode.
	assert.Equal(t, 1160.0, e.Totals.Total)
}

func TestPaintingBandRangeCollapsesForOverriddenRates(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)
	e.SetRangeMode(RangeBand)

	labor := 1.50
	material := 0.40
	e.SetRateOverrides(&labor, &material)

	expected := units.Round2(400*1.5 + 100*1.5*1.2 + 500*0.4)
	assert.Equal(t, expected, e.Totals.Total)
	assert.Equal(t, expected, e.Totals.Range.Low)
	assert.Equal(t, expected, e.Totals.Range.High)
}

func TestPaintingRoomsMode(t *testing.T) {
	e := NewPaintingEstimate(nil)
	id := e.AddRoom("Living Room")
	require.True(t, e.UseRooms)

	// Default room: 352 net wall + 120 ceiling.
	assert.Equal(t, 472.0, e.Totals.TotalArea)

	noCeiling := false
	e.UpdateRoom(id, geometry.Patch{IncludeCeiling: &noCeiling})
	assert.Equal(t, 352.0, e.Totals.TotalArea)

	e.RemoveRoom(id)
	assert.Equal(t, 0.0, e.Totals.Total)
}

func TestPaintingCustomRates(t *testing.T) {
	custom := rates.CustomRates{}
	custom.Set(rates.TradePainting, rates.PaintLaborPerSqft, 2.00)

	e := NewPaintingEstimate(custom)
	e.SetSqft(100, 0)

	assert.Equal(t, 200.0, e.Totals.LaborSubtotal)

	// A fresh snapshot is picked up only when handed to the estimate.
	custom2 := rates.CustomRates{}
	custom2.Set(rates.TradePainting, rates.PaintLaborPerSqft, 3.00)
	e.SetCustomRates(custom2)
	assert.Equal(t, 300.0, e.Totals.LaborSubtotal)
}

func TestPaintingIdempotentRecomputation(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(640, 120)
	e.SetPrepTier(PrepLight)
	e.AddAddon("trim", 80)

	first := e.Totals
	e.SetCustomRates(nil)
	assert.Equal(t, first, e.Totals)
}

func TestPaintingReset(t *testing.T) {
	e := NewPaintingEstimate(nil)
	e.SetSqft(400, 100)
	e.SetQuality(QualityPremium)
	e.SetRangeMode(RangeBand)

	e.Reset()
	assert.Equal(t, 2, e.Coats)
	assert.Equal(t, QualityStandard, e.Quality)
	assert.Equal(t, RangePercent, e.RangeMode)
	assert.Equal(t, 0.0, e.Totals.Total)
}
