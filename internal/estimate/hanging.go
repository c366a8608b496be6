package estimate

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tradebid/tradebid/internal/geometry"
	"github.com/tradebid/tradebid/internal/materials"
	"github.com/tradebid/tradebid/internal/rates"
	"github.com/tradebid/tradebid/internal/units"
)

// HangingMode selects where the job's area comes from.
type HangingMode string

const (
	// HangingModeRooms derives area from the room list.
	HangingModeRooms HangingMode = "rooms"
	// HangingModeArea takes a square footage handed in from a shared
	// multi-trade room source.
	HangingModeArea HangingMode = "area"
	// HangingModeSheets back-calculates area from directly entered sheet
	// counts.
	HangingModeSheets HangingMode = "sheets"
)

// CeilingBand is the selected ceiling-height bracket. Taller ceilings raise
// the labor subtotal as a whole, not per sheet.
type CeilingBand string

const (
	CeilingBand8ft     CeilingBand = "8ft"
	CeilingBand9ft     CeilingBand = "9ft"
	CeilingBand10ft    CeilingBand = "10ft"
	CeilingBandVaulted CeilingBand = "vaulted"
)

func ceilingBandMultiplier(b CeilingBand) float64 {
	switch b {
	case CeilingBand9ft:
		return 1.1
	case CeilingBand10ft:
		return 1.15
	case CeilingBandVaulted:
		return 1.35
	default:
		return 1.0
	}
}

// SheetEntry is one directly entered group of sheets in sheet-entry mode.
type SheetEntry struct {
	ID               string   `json:"id"`
	SheetSize        float64  `json:"sheetSize"`
	Quantity         int      `json:"quantity"`
	MaterialOverride *float64 `json:"materialOverride"`
	LaborOverride    *float64 `json:"laborOverride"`

	MaterialRate  float64 `json:"materialRate"`
	LaborRate     float64 `json:"laborRate"`
	MaterialTotal float64 `json:"materialTotal"`
	LaborTotal    float64 `json:"laborTotal"`
	Total         float64 `json:"total"`
}

// HangingEstimate is the mutable working set for one drywall hanging
// estimate. Every mutation triggers a synchronous full recomputation.
type HangingEstimate struct {
	Mode  HangingMode     `json:"mode"`
	Rooms []geometry.Room `json:"rooms"`

	Sheets     []SheetEntry `json:"sheets"`
	DirectArea float64      `json:"directArea"`

	SheetSize      float64     `json:"sheetSize"`
	WasteFactor    float64     `json:"wasteFactor"`
	CeilingBand    CeilingBand `json:"ceilingBand"`
	Complexity     Complexity  `json:"complexity"`
	MaterialMarkup float64     `json:"materialMarkup"`

	MaterialRateOverride *float64 `json:"materialRateOverride"`
	LaborRateOverride    *float64 `json:"laborRateOverride"`

	Addons []Addon `json:"addons"`

	Coverage geometry.Coverage `json:"coverage"`
	Totals   Totals            `json:"totals"`

	custom rates.CustomRates
}

// NewHangingEstimate returns a hanging estimate at trade defaults.
func NewHangingEstimate(custom rates.CustomRates) *HangingEstimate {
	e := &HangingEstimate{custom: custom}
	e.applyDefaults()
	e.recalculate()
	return e
}

func (e *HangingEstimate) applyDefaults() {
	e.Mode = HangingModeRooms
	e.Rooms = nil
	e.Sheets = nil
	e.DirectArea = 0
	e.SheetSize = materials.SheetSize4x8
	e.WasteFactor = materials.DefaultWasteFactor
	e.CeilingBand = CeilingBand8ft
	e.Complexity = ComplexityStandard
	e.MaterialMarkup = 0.10
	e.MaterialRateOverride = nil
	e.LaborRateOverride = nil
	e.Addons = nil
}

// Reset returns the estimate to trade defaults.
func (e *HangingEstimate) Reset() {
	e.applyDefaults()
	e.recalculate()
}

// SetCustomRates swaps in a new saved-rates snapshot and recomputes. Rates
// are never mutated mid-calculation; callers re-invoke with the new
// snapshot.
func (e *HangingEstimate) SetCustomRates(custom rates.CustomRates) {
	e.custom = custom
	e.recalculate()
}

// AddRoom appends a default room and returns its id.
func (e *HangingEstimate) AddRoom(name string) string {
	room := geometry.NewRoom(name)
	e.Rooms = append(e.Rooms, room)
	e.recalculate()
	return room.ID
}

// UpdateRoom applies a partial update to one room. It reports whether the
// room exists.
func (e *HangingEstimate) UpdateRoom(id string, patch geometry.Patch) bool {
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
func (e *HangingEstimate) RemoveRoom(id string) {
	e.Rooms = removeByID(e.Rooms, id, func(r geometry.Room) string { return r.ID })
	e.recalculate()
}

// SetSqft switches to direct-area mode with the given square footage, used
// when area arrives from a shared multi-trade room source.
func (e *HangingEstimate) SetSqft(area float64) {
	if area < 0 {
		area = 0
	}
	e.Mode = HangingModeArea
	e.DirectArea = area
	e.recalculate()
}

// AddSheetEntry appends a sheet group in sheet-entry mode and returns its id.
func (e *HangingEstimate) AddSheetEntry(sheetSize float64, quantity int) string {
	entry := SheetEntry{ID: uuid.NewString(), SheetSize: sheetSize, Quantity: quantity}
	e.Mode = HangingModeSheets
	e.Sheets = append(e.Sheets, entry)
	e.recalculate()
	return entry.ID
}

// SheetEntryPatch is a partial update for one sheet group.
type SheetEntryPatch struct {
	SheetSize             *float64 `json:"sheetSize"`
	Quantity              *int     `json:"quantity"`
	MaterialOverride      *float64 `json:"materialOverride"`
	LaborOverride         *float64 `json:"laborOverride"`
	ClearMaterialOverride bool     `json:"clearMaterialOverride"`
	ClearLaborOverride    bool     `json:"clearLaborOverride"`
}

// UpdateSheetEntry applies a partial update to one sheet group.
func (e *HangingEstimate) UpdateSheetEntry(id string, patch SheetEntryPatch) bool {
	for i := range e.Sheets {
		if e.Sheets[i].ID != id {
			continue
		}
		s := &e.Sheets[i]
		if patch.SheetSize != nil && *patch.SheetSize > 0 {
			s.SheetSize = *patch.SheetSize
		}
		if patch.Quantity != nil && *patch.Quantity >= 0 {
			s.Quantity = *patch.Quantity
		}
		if patch.ClearMaterialOverride {
			s.MaterialOverride = nil
		} else if patch.MaterialOverride != nil {
			v := *patch.MaterialOverride
			s.MaterialOverride = &v
		}
		if patch.ClearLaborOverride {
			s.LaborOverride = nil
		} else if patch.LaborOverride != nil {
			v := *patch.LaborOverride
			s.LaborOverride = &v
		}
		e.recalculate()
		return true
	}
	return false
}

// RemoveSheetEntry deletes a sheet group by id.
func (e *HangingEstimate) RemoveSheetEntry(id string) {
	e.Sheets = removeByID(e.Sheets, id, func(s SheetEntry) string { return s.ID })
	e.recalculate()
}

// AddAddon adds a catalogue add-on and returns its id.
func (e *HangingEstimate) AddAddon(presetID string, quantity float64) string {
	a := newAddonFromPreset(hangingAddonPresets, presetID, quantity)
	e.Addons = append(e.Addons, a)
	e.recalculate()
	return a.ID
}

// AddCustomAddon adds a fully custom add-on and returns its id.
func (e *HangingEstimate) AddCustomAddon(name, unit string, price, quantity float64) string {
	a := newCustomAddon(name, unit, price, quantity)
	e.Addons = append(e.Addons, a)
	e.recalculate()
	return a.ID
}

// AddonPatch is a partial update for one add-on row.
type AddonPatch struct {
	Quantity           *float64 `json:"quantity"`
	PriceOverride      *float64 `json:"priceOverride"`
	ClearPriceOverride bool     `json:"clearPriceOverride"`
}

func applyAddonPatch(list []Addon, id string, patch AddonPatch) bool {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		a := &list[i]
		if patch.Quantity != nil && *patch.Quantity >= 0 {
			a.Quantity = *patch.Quantity
		}
		if patch.ClearPriceOverride {
			a.PriceOverride = nil
		} else if patch.PriceOverride != nil {
			v := *patch.PriceOverride
			a.PriceOverride = &v
		}
		return true
	}
	return false
}

// UpdateAddon applies a partial update to one add-on.
func (e *HangingEstimate) UpdateAddon(id string, patch AddonPatch) bool {
	if !applyAddonPatch(e.Addons, id, patch) {
		return false
	}
	e.recalculate()
	return true
}

// RemoveAddon deletes an add-on by id.
func (e *HangingEstimate) RemoveAddon(id string) {
	e.Addons = removeByID(e.Addons, id, func(a Addon) string { return a.ID })
	e.recalculate()
}

// SetWasteFactor sets the cutting-loss fraction. Negative values are ignored.
func (e *HangingEstimate) SetWasteFactor(waste float64) {
	if waste < 0 {
		return
	}
	e.WasteFactor = waste
	e.recalculate()
}

// SetSheetSize sets the ordered sheet size in square feet.
func (e *HangingEstimate) SetSheetSize(sqft float64) {
	if sqft <= 0 {
		return
	}
	e.SheetSize = sqft
	e.recalculate()
}

// SetCeilingBand selects the ceiling-height labor bracket.
func (e *HangingEstimate) SetCeilingBand(band CeilingBand) {
	e.CeilingBand = band
	e.recalculate()
}

// SetComplexity selects the job complexity tier.
func (e *HangingEstimate) SetComplexity(c Complexity) {
	e.Complexity = c
	e.recalculate()
}

// SetMaterialMarkup sets the markup fraction applied to sheet material
// rates. Negative values are ignored.
func (e *HangingEstimate) SetMaterialMarkup(markup float64) {
	if markup < 0 {
		return
	}
	e.MaterialMarkup = markup
	e.recalculate()
}

// SetRateOverrides sets or clears the estimate-wide per-sheet rate
// overrides used outside sheet-entry mode.
func (e *HangingEstimate) SetRateOverrides(material, labor *float64) {
	e.MaterialRateOverride = copyFloat(material)
	e.LaborRateOverride = copyFloat(labor)
	e.recalculate()
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (e *HangingEstimate) recalculate() {
	e.Coverage = geometry.TotalCoverage(e.Rooms)
	e.Totals = computeTotals(e)

	_, _, count, area := e.sheetCosts(rates.BoundMid, false)
	e.Totals.SheetCount = count
	e.Totals.TotalArea = units.Round2(area)
	e.Totals.CostPerSqft = safeDiv(e.Totals.Total, area)
	e.Totals.CostPerSheet = safeDiv(e.Totals.Total, float64(count))
}

// area returns the billable square footage for the current mode.
func (e *HangingEstimate) area() float64 {
	switch e.Mode {
	case HangingModeArea:
		return e.DirectArea
	case HangingModeSheets:
		return lo.SumBy(e.Sheets, func(s SheetEntry) float64 {
			return s.SheetSize * float64(s.Quantity)
		})
	default:
		return e.Coverage.TotalArea
	}
}

func (e *HangingEstimate) subtotals() subtotals {
	material, labor, _, _ := e.sheetCosts(rates.BoundMid, true)
	return subtotals{
		material: material,
		labor:    labor,
		addons:   recalcAddons(e.Addons),
	}
}

// sheetCosts computes the material and labor subtotals at the given band
// edge. When annotate is set, sheet-entry rows are refreshed with their
// effective rates and amounts for display.
func (e *HangingEstimate) sheetCosts(bound rates.Bound, annotate bool) (material, labor float64, count int, area float64) {
	heightMult := ceilingBandMultiplier(e.CeilingBand)
	area = e.area()

	if e.Mode == HangingModeSheets {
		for i := range e.Sheets {
			s := &e.Sheets[i]
			matRate := rates.ResolveBound(rates.TradeHanging, rates.SheetMaterial, e.custom, s.MaterialOverride, bound) * (1 + e.MaterialMarkup)
			labRate := rates.ResolveBound(rates.TradeHanging, rates.SheetLabor, e.custom, s.LaborOverride, bound)
			qty := float64(s.Quantity)
			material += matRate * qty
			labor += labRate * qty
			count += s.Quantity
			if annotate {
				s.MaterialRate = units.Round2(matRate)
				s.LaborRate = units.Round2(labRate)
				s.MaterialTotal = units.Round2(matRate * qty)
				s.LaborTotal = units.Round2(labRate * qty * heightMult)
				s.Total = units.Round2(s.MaterialTotal + s.LaborTotal)
			}
		}
		labor *= heightMult
		return material, labor, count, area
	}

	count = materials.SheetsNeeded(area, e.SheetSize, e.WasteFactor)
	matRate := rates.ResolveBound(rates.TradeHanging, rates.SheetMaterial, e.custom, e.MaterialRateOverride, bound) * (1 + e.MaterialMarkup)
	labRate := rates.ResolveBound(rates.TradeHanging, rates.SheetLabor, e.custom, e.LaborRateOverride, bound)
	material = matRate * float64(count)
	labor = labRate * float64(count) * heightMult
	return material, labor, count, area
}

func (e *HangingEstimate) complexity() float64 {
	return complexityMultiplier(e.Complexity, 1.25)
}

// priceRange recomputes the sheet costs at the industry low and high band
// edges; overridden or customized rates contribute no spread. Add-ons are
// fixed prices and carry over unchanged.
func (e *HangingEstimate) priceRange(t Totals) Range {
	mult := e.complexity()
	addons := t.AddonSubtotal

	lowMat, lowLab, _, _ := e.sheetCosts(rates.BoundLow, false)
	highMat, highLab, _, _ := e.sheetCosts(rates.BoundHigh, false)

	return Range{
		Low:  units.Round2((lowMat + lowLab + addons) * mult),
		High: units.Round2((highMat + highLab + addons) * mult),
	}
}
