package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradebid/tradebid/internal/rates"
	"github.com/tradebid/tradebid/internal/units"
)

func TestHangingEmptyEstimateIsWellFormed(t *testing.T) {
	e := NewHangingEstimate(nil)

	assert.Equal(t, 0.0, e.Totals.Total)
	assert.Equal(t, 0.0, e.Totals.MaterialSubtotal)
	assert.Equal(t, 0.0, e.Totals.LaborSubtotal)
	assert.Equal(t, 0, e.Totals.SheetCount)
	assert.Equal(t, 0.0, e.Totals.CostPerSqft)
	assert.Equal(t, 0.0, e.Totals.CostPerSheet)
	assert.Equal(t, Range{}, e.Totals.Range)
}

func TestHangingDirectAreaTotals(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(320)
	e.SetWasteFactor(0)

	// 320 sqft / 32 sqft sheets = 10 sheets.
	// Material: 13 * 1.10 markup = 14.30 per sheet. Labor: 18 per sheet.
	require.Equal(t, 10, e.Totals.SheetCount)
	assert.Equal(t, 143.0, e.Totals.MaterialSubtotal)
	assert.Equal(t, 180.0, e.Totals.LaborSubtotal)
	assert.Equal(t, 323.0, e.Totals.Total)
	assert.Equal(t, 32.3, e.Totals.CostPerSheet)
	assert.InDelta(t, 1.01, e.Totals.CostPerSqft, 1e-9)

	// Band-derived range: low (10*1.1 + 14)*10, high (16*1.1 + 22)*10.
	assert.Equal(t, 250.0, e.Totals.Range.Low)
	assert.Equal(t, 396.0, e.Totals.Range.High)
}

func TestHangingWasteFactorRaisesSheetCount(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(320)

	// Default 12% waste: ceil(320*1.12/32) = 12.
	assert.Equal(t, 12, e.Totals.SheetCount)
}

func TestHangingRoomsMode(t *testing.T) {
	e := NewHangingEstimate(nil)
	id := e.AddRoom("Bedroom")
	e.SetWasteFactor(0)

	// Default room: 352 wall + 120 ceiling = 472 sqft -> 15 sheets.
	assert.Equal(t, 472.0, e.Totals.TotalArea)
	assert.Equal(t, 15, e.Totals.SheetCount)

	e.RemoveRoom(id)
	assert.Equal(t, 0.0, e.Totals.Total)
}

func TestHangingCeilingHeightMultiplierAppliesToWholeLaborSubtotal(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(320)
	e.SetWasteFactor(0)
	e.SetCeilingBand(CeilingBand10ft)

	assert.Equal(t, units.Round2(180*1.15), e.Totals.LaborSubtotal)
	// Material is unaffected by ceiling height.
	assert.Equal(t, 143.0, e.Totals.MaterialSubtotal)
}

func TestHangingSheetEntryMode(t *testing.T) {
	e := NewHangingEstimate(nil)
	id := e.AddSheetEntry(48, 20)

	assert.Equal(t, HangingModeSheets, e.Mode)
	assert.Equal(t, 20, e.Totals.SheetCount)
	// Back-calculated area: 20 * 48.
	assert.Equal(t, 960.0, e.Totals.TotalArea)

	labOverride := 20.0
	ok := e.UpdateSheetEntry(id, SheetEntryPatch{LaborOverride: &labOverride})
	require.True(t, ok)
	assert.Equal(t, 400.0, e.Totals.LaborSubtotal)

	e.RemoveSheetEntry(id)
	assert.Equal(t, 0.0, e.Totals.Total)
}

func TestHangingRateOverridesWinOverCustomRates(t *testing.T) {
	custom := rates.CustomRates{}
	custom.Set(rates.TradeHanging, rates.SheetLabor, 25)

	e := NewHangingEstimate(custom)
	e.SetSqft(32)
	e.SetWasteFactor(0)
	assert.Equal(t, 25.0, e.Totals.LaborSubtotal)

	override := 30.0
	e.SetRateOverrides(nil, &override)
	assert.Equal(t, 30.0, e.Totals.LaborSubtotal)

	// Overridden and customized rates contribute no band spread to labor.
	assert.Equal(t, e.Totals.Range.Low, units.Round2(10*1.1+30))
	assert.Equal(t, e.Totals.Range.High, units.Round2(16*1.1+30))
}

func TestHangingComplexityAppliesToFullSubtotal(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(320)
	e.SetWasteFactor(0)
	e.AddAddon("debris_disposal", 1)

	base := e.Totals
	require.Equal(t, 125.0, base.AddonSubtotal)
	require.Equal(t, 448.0, base.Subtotal)

	e.SetComplexity(ComplexityComplex)
	assert.Equal(t, 1.25, e.Totals.ComplexityMultiplier)
	assert.Equal(t, 112.0, e.Totals.ComplexityAdjustment)
	assert.Equal(t, 560.0, e.Totals.Total)

	e.SetComplexity(ComplexitySimple)
	assert.Equal(t, units.Round2(448*0.85), e.Totals.Total)
}

func TestHangingAddonLifecycle(t *testing.T) {
	e := NewHangingEstimate(nil)
	id := e.AddAddon("scaffolding", 3)
	assert.Equal(t, 450.0, e.Totals.AddonSubtotal)

	override := 100.0
	ok := e.UpdateAddon(id, AddonPatch{PriceOverride: &override})
	require.True(t, ok)
	assert.Equal(t, 300.0, e.Totals.AddonSubtotal)

	customID := e.AddCustomAddon("Attic access", AddonUnitFlat, 60, 1)
	assert.Equal(t, 360.0, e.Totals.AddonSubtotal)

	e.RemoveAddon(id)
	e.RemoveAddon(customID)
	assert.Equal(t, 0.0, e.Totals.AddonSubtotal)
}

func TestHangingIdempotentRecomputation(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(500)
	e.AddAddon("material_delivery", 1)

	first := e.Totals
	e.SetCustomRates(nil)
	assert.Equal(t, first, e.Totals)
}

func TestHangingReset(t *testing.T) {
	e := NewHangingEstimate(nil)
	e.SetSqft(1000)
	e.AddAddon("debris_disposal", 1)
	e.SetComplexity(ComplexityComplex)

	e.Reset()
	assert.Equal(t, HangingModeRooms, e.Mode)
	assert.Empty(t, e.Addons)
	assert.Equal(t, ComplexityStandard, e.Complexity)
	assert.Equal(t, 0.0, e.Totals.Total)
}
