package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradebid/tradebid/internal/rates"
)

func TestFinishingEmptyEstimateIsWellFormed(t *testing.T) {
	e := NewFinishingEstimate(nil)

	assert.Equal(t, 0.0, e.Totals.Total)
	assert.Equal(t, 0.0, e.Totals.MaterialSubtotal)
	assert.Equal(t, 0.0, e.Totals.LaborSubtotal)
	assert.Equal(t, 0.0, e.Totals.MaterialsSubtotal)
	assert.Equal(t, Range{}, e.Totals.Range)
}

func TestFinishingLineItemSplitsBlendedRate(t *testing.T) {
	e := NewFinishingEstimate(nil)
	id := e.AddLine(rates.SqftStandard, 100)

	// Blended 1.25/sqft splits 30/70: 0.375 material, 0.875 labor.
	require.Len(t, e.Lines, 1)
	line := e.Lines[0]
	assert.Equal(t, id, line.ID)
	assert.Equal(t, 37.5, line.MaterialTotal)
	assert.Equal(t, 87.5, line.LaborTotal)
	assert.Equal(t, 125.0, line.Total)
	assert.Equal(t, line.Total, line.MaterialTotal+line.LaborTotal)

	assert.Equal(t, 37.5, e.Totals.MaterialSubtotal)
	assert.Equal(t, 87.5, e.Totals.LaborSubtotal)
	assert.Equal(t, 125.0, e.Totals.Total)
}

func TestFinishingIncludeMaterialToggle(t *testing.T) {
	e := NewFinishingEstimate(nil)
	id := e.AddLine(rates.SqftStandard, 100)

	off := false
	ok := e.UpdateLine(id, LinePatch{IncludeMaterial: &off})
	require.True(t, ok)

	line := e.Lines[0]
	assert.Equal(t, 0.0, line.MaterialTotal)
	assert.Equal(t, 87.5, line.Total)
	assert.Equal(t, 0.0, e.Totals.MaterialSubtotal)
}

func TestFinishingPerLineOverrides(t *testing.T) {
	e := NewFinishingEstimate(nil)
	id := e.AddLine(rates.SqftStandard, 100)

	matOverride := 0.50
	labOverride := 1.00
	e.UpdateLine(id, LinePatch{MaterialOverride: &matOverride, LaborOverride: &labOverride})

	assert.Equal(t, 50.0, e.Totals.MaterialSubtotal)
	assert.Equal(t, 100.0, e.Totals.LaborSubtotal)

	// Clearing an override falls back to the resolved split.
	e.UpdateLine(id, LinePatch{ClearMaterialOverride: true, ClearLaborOverride: true})
	assert.Equal(t, 37.5, e.Totals.MaterialSubtotal)
}

func TestFinishingDirectHoursAreLaborOnly(t *testing.T) {
	e := NewFinishingEstimate(nil)
	e.SetDirectHours(2)

	// Industry hourly midpoint is 60.
	assert.Equal(t, 120.0, e.Totals.LaborSubtotal)
	assert.Equal(t, 0.0, e.Totals.MaterialSubtotal)
}

func TestFinishingMaterialEntries(t *testing.T) {
	e := NewFinishingEstimate(nil)
	id := e.AddMaterial("joint_compound", 2)
	assert.Equal(t, 33.0, e.Totals.MaterialsSubtotal)

	override := 15.0
	e.UpdateMaterial(id, MaterialPatch{PriceOverride: &override})
	assert.Equal(t, 30.0, e.Totals.MaterialsSubtotal)

	e.AddCustomMaterial("Specialty bead", "piece", 12.5, 4)
	assert.Equal(t, 80.0, e.Totals.MaterialsSubtotal)

	e.RemoveMaterial(id)
	assert.Equal(t, 50.0, e.Totals.MaterialsSubtotal)
}

func TestFinishingBandedRange(t *testing.T) {
	e := NewFinishingEstimate(nil)
	e.AddLine(rates.SqftStandard, 100)

	// Low 0.95, high 1.55 per sqft across 100 sqft.
	assert.Equal(t, 95.0, e.Totals.Range.Low)
	assert.Equal(t, 155.0, e.Totals.Range.High)
}

func TestFinishingRangeRespectsIncludeMaterial(t *testing.T) {
	e := NewFinishingEstimate(nil)
	id := e.AddLine(rates.SqftStandard, 100)
	off := false
	e.UpdateLine(id, LinePatch{IncludeMaterial: &off})

	// Only the 70% labor share carries band spread.
	assert.Equal(t, 66.5, e.Totals.Range.Low)
	assert.Equal(t, 108.5, e.Totals.Range.High)
}

func TestFinishingRangeCollapsesForCustomizedRates(t *testing.T) {
	custom := rates.CustomRates{}
	custom.Set(rates.TradeFinishing, rates.SqftStandard, 1.00)

	e := NewFinishingEstimate(custom)
	e.AddLine(rates.SqftStandard, 100)

	assert.Equal(t, 100.0, e.Totals.Total)
	assert.Equal(t, 100.0, e.Totals.Range.Low)
	assert.Equal(t, 100.0, e.Totals.Range.High)
}

func TestFinishingRangeAppliesComplexityToBothBounds(t *testing.T) {
	e := NewFinishingEstimate(nil)
	e.AddLine(rates.SqftStandard, 100)
	e.SetComplexity(ComplexityComplex)

	assert.Equal(t, 118.75, e.Totals.Range.Low)  // 95 * 1.25
	assert.Equal(t, 193.75, e.Totals.Range.High) // 155 * 1.25
	assert.Equal(t, 156.25, e.Totals.Total)
}

func TestFinishingAddonsAndMaterialsAreFixedInRange(t *testing.T) {
	e := NewFinishingEstimate(nil)
	e.AddAddon("dust_barrier", 1)
	e.AddMaterial("paper_tape", 2)

	// No banded lines: both bounds equal the fixed charges.
	assert.Equal(t, 100.5, e.Totals.Total)
	assert.Equal(t, 100.5, e.Totals.Range.Low)
	assert.Equal(t, 100.5, e.Totals.Range.High)
}

func TestFinishingReset(t *testing.T) {
	e := NewFinishingEstimate(nil)
	e.AddLine(rates.LinearJoints, 200)
	e.SetDirectHours(5)
	e.AddAddon("skim_coat", 50)

	e.Reset()
	assert.Empty(t, e.Lines)
	assert.Equal(t, 0.0, e.DirectHours)
	assert.Empty(t, e.Addons)
	assert.Equal(t, 0.0, e.Totals.Total)
}
