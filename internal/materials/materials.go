// Package materials turns net coverage area into discrete purchasable units
// and carries the finishing-consumables preset catalogue.
package materials

import "math"

// Standard drywall sheet sizes in square feet.
const (
	SheetSize4x8  = 32.0
	SheetSize4x10 = 40.0
	SheetSize4x12 = 48.0
)

// DefaultWasteFactor is the fractional overage applied for cutting loss.
const DefaultWasteFactor = 0.12

// SheetSize describes one orderable sheet dimension.
type SheetSize struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Sqft  float64 `json:"sqft"`
}

// SheetSizes lists the orderable sheet dimensions, smallest first.
func SheetSizes() []SheetSize {
	return []SheetSize{
		{ID: "4x8", Label: "4' x 8' (32 sqft)", Sqft: SheetSize4x8},
		{ID: "4x10", Label: "4' x 10' (40 sqft)", Sqft: SheetSize4x10},
		{ID: "4x12", Label: "4' x 12' (48 sqft)", Sqft: SheetSize4x12},
	}
}

// SheetsNeeded converts coverage area into a billable sheet count. Waste is
// applied multiplicatively before the ceiling division; partial sheets are
// not billable fractions, so the result always rounds up. Invalid inputs
// yield 0 rather than an error.
func SheetsNeeded(area, unitSizeSqft, wasteFactor float64) int {
	if area <= 0 || unitSizeSqft <= 0 {
		return 0
	}
	if wasteFactor < 0 {
		wasteFactor = 0
	}
	return int(math.Ceil(area * (1 + wasteFactor) / unitSizeSqft))
}

// SuggestSheetSize picks a sheet size from ceiling height. Taller walls get
// longer sheets to reduce seam count.
func SuggestSheetSize(heightFeet float64) float64 {
	switch {
	case heightFeet <= 8:
		return SheetSize4x8
	case heightFeet <= 9:
		return SheetSize4x10
	default:
		return SheetSize4x12
	}
}

// Preset is a finishing consumable with an industry-typical unit price. The
// price can be overridden per estimate or replaced by a fully custom entry.
type Preset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
}

var finishingPresets = []Preset{
	{ID: "joint_compound", Name: "Joint Compound (4.5 gal box)", Unit: "box", UnitPrice: 16.50},
	{ID: "paper_tape", Name: "Paper Tape (500 ft roll)", Unit: "roll", UnitPrice: 5.25},
	{ID: "mesh_tape", Name: "Mesh Tape (300 ft roll)", Unit: "roll", UnitPrice: 8.75},
	{ID: "corner_bead", Name: "Corner Bead (8 ft)", Unit: "piece", UnitPrice: 4.50},
	{ID: "sanding_sponge", Name: "Sanding Sponge", Unit: "each", UnitPrice: 3.95},
	{ID: "primer", Name: "Drywall Primer (gal)", Unit: "gal", UnitPrice: 24.00},
}

// FinishingPresets returns the consumables catalogue for the finishing trade.
func FinishingPresets() []Preset {
	return finishingPresets
}

// ResolveFinishingPreset looks up a consumable by id.
func ResolveFinishingPreset(id string) (Preset, bool) {
	for _, p := range finishingPresets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
