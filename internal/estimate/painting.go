package estimate

import (
	"github.com/tradebid/tradebid/internal/geometry"
	"github.com/tradebid/tradebid/internal/rates"
	"github.com/tradebid/tradebid/internal/units"
)

// Quality is the selected paint grade. It scales material cost only; labor
// is the same whether the can cost $20 or $60.
type Quality string

const (
	QualityEconomy  Quality = "economy"
	QualityStandard Quality = "standard"
	QualityPremium  Quality = "premium"
)

func qualityMultiplier(q Quality) float64 {
	switch q {
	case QualityEconomy:
		return 0.85
	case QualityPremium:
		return 1.3
	default:
		return 1.0
	}
}

// PrepTier is the surface preparation level, billed per square foot.
type PrepTier string

const (
	PrepNone     PrepTier = "none"
	PrepLight    PrepTier = "light"
	PrepStandard PrepTier = "standard"
	PrepHeavy    PrepTier = "heavy"
)

func prepCostPerSqft(p PrepTier) float64 {
	switch p {
	case PrepLight:
		return 0.15
	case PrepStandard:
		return 0.30
	case PrepHeavy:
		return 0.50
	default:
		return 0
	}
}

// Two coats is the pricing baseline; one coat discounts, three adds.
func coatMultiplier(coats int) float64 {
	switch coats {
	case 1:
		return 0.65
	case 3:
		return 1.35
	default:
		return 1.0
	}
}

// PaintRangeMode selects how the low/high range is derived.
type PaintRangeMode string

const (
	// RangePercent brackets the point total at a flat ±15%.
	RangePercent PaintRangeMode = "percent"
	// RangeBand reruns the full pipeline at the industry low and high rate
	// bands.
	RangeBand PaintRangeMode = "band"
)

// DefaultCeilingModifier is the labor premium for painting overhead.
const DefaultCeilingModifier = 1.2

// PaintingEstimate is the mutable working set for one painting estimate.
type PaintingEstimate struct {
	Rooms    []geometry.Room `json:"rooms"`
	UseRooms bool            `json:"useRooms"`

	// Direct-entry areas, used when UseRooms is false.
	WallSqft    float64 `json:"wallSqft"`
	CeilingSqft float64 `json:"ceilingSqft"`

	Coats           int      `json:"coats"`
	Quality         Quality  `json:"quality"`
	PrepTier        PrepTier `json:"prepTier"`
	CeilingModifier float64  `json:"ceilingModifier"`

	LaborRateOverride    *float64 `json:"laborRateOverride"`
	MaterialRateOverride *float64 `json:"materialRateOverride"`

	Addons     []Addon        `json:"addons"`
	Complexity Complexity     `json:"complexity"`
	RangeMode  PaintRangeMode `json:"rangeMode"`

	Coverage geometry.Coverage `json:"coverage"`
	Totals   Totals            `json:"totals"`

	custom rates.CustomRates
}

// NewPaintingEstimate returns a painting estimate at trade defaults.
func NewPaintingEstimate(custom rates.CustomRates) *PaintingEstimate {
	e := &PaintingEstimate{custom: custom}
	e.applyDefaults()
	e.recalculate()
	return e
}

func (e *PaintingEstimate) applyDefaults() {
	e.Rooms = nil
	e.UseRooms = false
	e.WallSqft = 0
	e.CeilingSqft = 0
	e.Coats = 2
	e.Quality = QualityStandard
	e.PrepTier = PrepNone
	e.CeilingModifier = DefaultCeilingModifier
	e.LaborRateOverride = nil
	e.MaterialRateOverride = nil
	e.Addons = nil
	e.Complexity = ComplexityStandard
	e.RangeMode = RangePercent
}

// Reset returns the estimate to trade defaults.
func (e *PaintingEstimate) Reset() {
	e.applyDefaults()
	e.recalculate()
}

// SetCustomRates swaps in a new saved-rates snapshot and recomputes.
func (e *PaintingEstimate) SetCustomRates(custom rates.CustomRates) {
	e.custom = custom
	e.recalculate()
}

// AddRoom appends a default room, switches to room-derived areas, and
// returns the room id.
func (e *PaintingEstimate) AddRoom(name string) string {
	room := geometry.NewRoom(name)
	e.Rooms = append(e.Rooms, room)
	e.UseRooms = true
	e.recalculate()
	return room.ID
}

// UpdateRoom applies a partial update to one room.
func (e *PaintingEstimate) UpdateRoom(id string, patch geometry.Patch) bool {
	for i := range e.Rooms {
		if e.Rooms[i].ID == id {
			e.Rooms[i].Apply(patch)
			e.recalculate()
			return true
		}
	}
	return false
}

// RemoveRoom deletes a room by id.
func (e *PaintingEstimate) RemoveRoom(id string) {
	e.Rooms = removeByID(e.Rooms, id, func(r geometry.Room) string { return r.ID })
	e.recalculate()
}

// SetSqft switches to direct-entry areas, used when square footage arrives
// from a shared multi-trade room source. Negative values clamp to zero.
func (e *PaintingEstimate) SetSqft(wallSqft, ceilingSqft float64) {
	e.UseRooms = false
	e.WallSqft = max(0, wallSqft)
	e.CeilingSqft = max(0, ceilingSqft)
	e.recalculate()
}

// SetCoats sets the coat count. Values outside 1..3 are ignored.
func (e *PaintingEstimate) SetCoats(coats int) {
	if coats < 1 || coats > 3 {
		return
	}
	e.Coats = coats
	e.recalculate()
}

// SetQuality selects the paint grade.
func (e *PaintingEstimate) SetQuality(q Quality) {
	e.Quality = q
	e.recalculate()
}

// SetPrepTier selects the surface preparation level.
func (e *PaintingEstimate) SetPrepTier(p PrepTier) {
	e.PrepTier = p
	e.recalculate()
}

// SetCeilingModifier sets the per-sqft labor premium for ceilings. Values
// below 1 are ignored.
func (e *PaintingEstimate) SetCeilingModifier(mod float64) {
	if mod < 1 {
		return
	}
	e.CeilingModifier = mod
	e.recalculate()
}

// SetRateOverrides sets or clears the estimate-wide labor and material rate
// overrides.
func (e *PaintingEstimate) SetRateOverrides(labor, material *float64) {
	e.LaborRateOverride = copyFloat(labor)
	e.MaterialRateOverride = copyFloat(material)
	e.recalculate()
}

// SetComplexity selects the job complexity tier.
func (e *PaintingEstimate) SetComplexity(c Complexity) {
	e.Complexity = c
	e.recalculate()
}

// SetRangeMode selects percentage- or band-derived range bounds.
func (e *PaintingEstimate) SetRangeMode(mode PaintRangeMode) {
	if mode != RangePercent && mode != RangeBand {
		return
	}
	e.RangeMode = mode
	e.recalculate()
}

// AddAddon adds a catalogue add-on and returns its id.
func (e *PaintingEstimate) AddAddon(presetID string, quantity float64) string {
	a := newAddonFromPreset(paintingAddonPresets, presetID, quantity)
	e.Addons = append(e.Addons, a)
	e.recalculate()
	return a.ID
}

// AddCustomAddon adds a fully custom add-on and returns its id.
func (e *PaintingEstimate) AddCustomAddon(name, unit string, price, quantity float64) string {
	a := newCustomAddon(name, unit, price, quantity)
	e.Addons = append(e.Addons, a)
	e.recalculate()
	return a.ID
}

// UpdateAddon applies a partial update to one add-on.
func (e *PaintingEstimate) UpdateAddon(id string, patch AddonPatch) bool {
	if !applyAddonPatch(e.Addons, id, patch) {
		return false
	}
	e.recalculate()
	return true
}

// RemoveAddon deletes an add-on by id.
func (e *PaintingEstimate) RemoveAddon(id string) {
	e.Addons = removeByID(e.Addons, id, func(a Addon) string { return a.ID })
	e.recalculate()
}

func (e *PaintingEstimate) recalculate() {
	e.Coverage = geometry.TotalCoverage(e.Rooms)
	e.Totals = computeTotals(e)
	wall, ceiling := e.areas()
	e.Totals.TotalArea = units.Round2(wall + ceiling)
	e.Totals.CostPerSqft = safeDiv(e.Totals.Total, wall+ceiling)
}

func (e *PaintingEstimate) areas() (wall, ceiling float64) {
	if e.UseRooms {
		return e.Coverage.WallArea, e.Coverage.CeilingArea
	}
	return e.WallSqft, e.CeilingSqft
}

// surfaceCosts computes the labor, material, and prep subtotals at the given
// band edge.
func (e *PaintingEstimate) surfaceCosts(bound rates.Bound) (labor, material, prep float64) {
	wall, ceiling := e.areas()
	coats := coatMultiplier(e.Coats)

	laborRate := rates.ResolveBound(rates.TradePainting, rates.PaintLaborPerSqft, e.custom, e.LaborRateOverride, bound)
	materialRate := rates.ResolveBound(rates.TradePainting, rates.PaintMaterialPerSqft, e.custom, e.MaterialRateOverride, bound)

	labor = wall*laborRate*coats + ceiling*laborRate*coats*e.CeilingModifier
	material = (wall + ceiling) * materialRate * coats * qualityMultiplier(e.Quality)
	prep = (wall + ceiling) * prepCostPerSqft(e.PrepTier)
	return labor, material, prep
}

func (e *PaintingEstimate) subtotals() subtotals {
	labor, material, prep := e.surfaceCosts(rates.BoundMid)
	return subtotals{
		material: material,
		labor:    labor,
		prep:     prep,
		addons:   recalcAddons(e.Addons),
	}
}

func (e *PaintingEstimate) complexity() float64 {
	return complexityMultiplier(e.Complexity, 1.3)
}

// priceRange brackets the total at a flat ±15% by default. In band mode it
// reruns the full pipeline at the industry low and high rates instead, for
// callers wanting band-derived bounds.
func (e *PaintingEstimate) priceRange(t Totals) Range {
	if e.RangeMode == RangeBand {
		mult := e.complexity()
		lowLab, lowMat, prep := e.surfaceCosts(rates.BoundLow)
		highLab, highMat, _ := e.surfaceCosts(rates.BoundHigh)
		addons := t.AddonSubtotal
		return Range{
			Low:  units.Round2((lowLab + lowMat + prep + addons) * mult),
			High: units.Round2((highLab + highMat + prep + addons) * mult),
		}
	}
	return Range{
		Low:  units.Round2(t.Total * 0.85),
		High: units.Round2(t.Total * 1.15),
	}
}
