// Package estimate holds the per-trade working state of an in-progress
// estimate and recomputes its totals on every mutation. The three trades
// (drywall hanging, drywall finishing, painting) share one aggregation
// skeleton parameterized by a trade-specific pricing strategy; only the
// numeric formulas differ.
package estimate

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tradebid/tradebid/internal/units"
)

// Complexity is a trade-wide scalar applied to the full pre-adjustment
// subtotal.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityStandard Complexity = "standard"
	ComplexityComplex  Complexity = "complex"
)

// complexityMultiplier maps a complexity selection to its scalar. complexHigh
// differs per trade (1.25 for drywall, 1.3 for painting). Unknown values are
// treated as standard, never coerced.
func complexityMultiplier(c Complexity, complexHigh float64) float64 {
	switch c {
	case ComplexitySimple:
		return 0.85
	case ComplexityComplex:
		return complexHigh
	default:
		return 1.0
	}
}

// Range is the defensible low/high bracket around an estimate total.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Totals is the recomputed rollup for one trade's estimate. Fields that a
// trade does not use stay zero. It carries enough intermediate detail for
// the most detailed rendering mode, not just the final figure.
type Totals struct {
	MaterialSubtotal  float64 `json:"materialSubtotal"`
	LaborSubtotal     float64 `json:"laborSubtotal"`
	AddonSubtotal     float64 `json:"addonSubtotal"`
	MaterialsSubtotal float64 `json:"materialsSubtotal"` // finishing consumables
	PrepSubtotal      float64 `json:"prepSubtotal"`      // painting surface prep

	Subtotal             float64 `json:"subtotal"`
	ComplexityMultiplier float64 `json:"complexityMultiplier"`
	ComplexityAdjustment float64 `json:"complexityAdjustment"`
	Total                float64 `json:"total"`
	Range                Range   `json:"range"`

	// Quantity detail for display and per-unit metrics.
	TotalArea    float64 `json:"totalArea"`
	SheetCount   int     `json:"sheetCount"`
	CostPerSqft  float64 `json:"costPerSqft"`
	CostPerSheet float64 `json:"costPerSheet"`
}

// subtotals is the trade-specific portion of a recomputation.
type subtotals struct {
	material  float64
	labor     float64
	addons    float64
	materials float64
	prep      float64
}

// pricingStrategy is what a trade supplies to the shared aggregation
// skeleton: its subtotal formulas, its complexity scalar, and its range
// strategy.
type pricingStrategy interface {
	subtotals() subtotals
	complexity() float64
	priceRange(t Totals) Range
}

// computeTotals runs the shared skeleton: sum subtotals, apply the
// complexity multiplier to the full pre-adjustment subtotal, then hand the
// rounded totals to the trade's range strategy.
func computeTotals(s pricingStrategy) Totals {
	st := s.subtotals()
	subtotal := st.material + st.labor + st.addons + st.materials + st.prep
	mult := s.complexity()
	adjustment := subtotal * (mult - 1)

	t := Totals{
		MaterialSubtotal:     units.Round2(st.material),
		LaborSubtotal:        units.Round2(st.labor),
		AddonSubtotal:        units.Round2(st.addons),
		MaterialsSubtotal:    units.Round2(st.materials),
		PrepSubtotal:         units.Round2(st.prep),
		Subtotal:             units.Round2(subtotal),
		ComplexityMultiplier: mult,
		ComplexityAdjustment: units.Round2(adjustment),
		Total:                units.Round2(subtotal + adjustment),
	}
	t.Range = s.priceRange(t)
	return t
}

// AddonUnitFlat marks an add-on charged once regardless of quantity.
const AddonUnitFlat = "flat"

// Addon is an optional extra charge, either from the per-trade catalogue or
// fully custom.
type Addon struct {
	ID            string   `json:"id"`
	PresetID      string   `json:"presetId"`
	Name          string   `json:"name"`
	Unit          string   `json:"unit"`
	Price         float64  `json:"price"`
	Quantity      float64  `json:"quantity"`
	PriceOverride *float64 `json:"priceOverride"`
	Total         float64  `json:"total"`
}

// Recalculate derives the add-on total from its effective price. Flat
// add-ons ignore quantity.
func (a *Addon) Recalculate() {
	price := a.Price
	if a.PriceOverride != nil {
		price = *a.PriceOverride
	}
	if a.Unit == AddonUnitFlat {
		a.Total = price
		return
	}
	a.Total = price * a.Quantity
}

// AddonPreset is a catalogue entry for one trade.
type AddonPreset struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

var hangingAddonPresets = []AddonPreset{
	{ID: "debris_disposal", Name: "Debris Disposal", Unit: AddonUnitFlat, Price: 125},
	{ID: "material_delivery", Name: "Material Delivery", Unit: AddonUnitFlat, Price: 75},
	{ID: "scaffolding", Name: "Scaffolding Rental", Unit: "day", Price: 150},
	{ID: "resilient_channel", Name: "Resilient Channel", Unit: "sqft", Price: 0.35},
}

var finishingAddonPresets = []AddonPreset{
	{ID: "skim_coat", Name: "Skim Coat", Unit: "sqft", Price: 0.45},
	{ID: "prime_walls", Name: "Prime Finished Walls", Unit: "sqft", Price: 0.30},
	{ID: "patch_repair", Name: "Patch Repair", Unit: "each", Price: 35},
	{ID: "dust_barrier", Name: "Dust Barrier Setup", Unit: AddonUnitFlat, Price: 90},
}

var paintingAddonPresets = []AddonPreset{
	{ID: "trim", Name: "Trim & Baseboards", Unit: "linear ft", Price: 1.10},
	{ID: "doors", Name: "Doors (both sides)", Unit: "each", Price: 45},
	{ID: "accent_wall", Name: "Accent Wall Color", Unit: "each", Price: 95},
	{ID: "wallpaper_removal", Name: "Wallpaper Removal", Unit: "sqft", Price: 1.25},
	{ID: "minor_drywall_repair", Name: "Minor Drywall Repair", Unit: AddonUnitFlat, Price: 85},
}

func resolveAddonPreset(presets []AddonPreset, id string) (AddonPreset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return AddonPreset{}, false
}

// newAddonFromPreset builds an add-on row from a catalogue entry. Unknown
// preset ids produce a zero-priced custom row rather than an error.
func newAddonFromPreset(presets []AddonPreset, presetID string, quantity float64) Addon {
	p, ok := resolveAddonPreset(presets, presetID)
	if !ok {
		return newCustomAddon(presetID, AddonUnitFlat, 0, quantity)
	}
	a := Addon{
		ID:       uuid.NewString(),
		PresetID: p.ID,
		Name:     p.Name,
		Unit:     p.Unit,
		Price:    p.Price,
		Quantity: quantity,
	}
	a.Recalculate()
	return a
}

func newCustomAddon(name, unit string, price, quantity float64) Addon {
	a := Addon{
		ID:       uuid.NewString(),
		PresetID: "custom",
		Name:     name,
		Unit:     unit,
		Price:    price,
		Quantity: quantity,
	}
	a.Recalculate()
	return a
}

// recalcAddons refreshes every row and returns the subtotal.
func recalcAddons(list []Addon) float64 {
	for i := range list {
		list[i].Recalculate()
	}
	return lo.SumBy(list, func(a Addon) float64 { return a.Total })
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	return lo.Filter(list, func(item T, _ int) bool { return idOf(item) != id })
}

// safeDiv guards the per-unit display metrics against zero quantities.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return units.Round2(num / den)
}
