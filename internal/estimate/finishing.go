package estimate

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tradebid/tradebid/internal/materials"
	"github.com/tradebid/tradebid/internal/rates"
	"github.com/tradebid/tradebid/internal/units"
)

// LineItem is one priced quantity in a finishing estimate. Its blended rate
// resolves through the standard precedence chain and splits into material
// and labor portions, each independently overridable.
type LineItem struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Quantity        float64 `json:"quantity"`
	IncludeMaterial bool    `json:"includeMaterial"`

	MaterialOverride *float64 `json:"materialOverride"`
	LaborOverride    *float64 `json:"laborOverride"`

	MaterialRate  float64 `json:"materialRate"`
	LaborRate     float64 `json:"laborRate"`
	MaterialTotal float64 `json:"materialTotal"`
	LaborTotal    float64 `json:"laborTotal"`
	Total         float64 `json:"total"`
}

// MaterialEntry is a named consumable in a finishing estimate, from the
// preset catalogue or fully custom.
type MaterialEntry struct {
	ID            string   `json:"id"`
	PresetID      string   `json:"presetId"`
	Name          string   `json:"name"`
	Unit          string   `json:"unit"`
	UnitPrice     float64  `json:"unitPrice"`
	PriceOverride *float64 `json:"priceOverride"`
	Quantity      float64  `json:"quantity"`
	Subtotal      float64  `json:"subtotal"`
}

func (m *MaterialEntry) recalculate() {
	price := m.UnitPrice
	if m.PriceOverride != nil {
		price = *m.PriceOverride
	}
	m.Subtotal = units.Round2(price * m.Quantity)
}

// FinishingEstimate is the mutable working set for one drywall finishing
// estimate.
type FinishingEstimate struct {
	Lines       []LineItem      `json:"lines"`
	DirectHours float64         `json:"directHours"`
	Addons      []Addon         `json:"addons"`
	Materials   []MaterialEntry `json:"materials"`
	Complexity  Complexity      `json:"complexity"`

	Totals Totals `json:"totals"`

	custom rates.CustomRates
}

// NewFinishingEstimate returns a finishing estimate at trade defaults.
func NewFinishingEstimate(custom rates.CustomRates) *FinishingEstimate {
	e := &FinishingEstimate{custom: custom}
	e.applyDefaults()
	e.recalculate()
	return e
}

func (e *FinishingEstimate) applyDefaults() {
	e.Lines = nil
	e.DirectHours = 0
	e.Addons = nil
	e.Materials = nil
	e.Complexity = ComplexityStandard
}

// Reset returns the estimate to trade defaults.
func (e *FinishingEstimate) Reset() {
	e.applyDefaults()
	e.recalculate()
}

// SetCustomRates swaps in a new saved-rates snapshot and recomputes.
func (e *FinishingEstimate) SetCustomRates(custom rates.CustomRates) {
	e.custom = custom
	e.recalculate()
}

// AddLine appends a line item of the given type and returns its id.
// Material is included by default.
func (e *FinishingEstimate) AddLine(lineType string, quantity float64) string {
	line := LineItem{
		ID:              uuid.NewString(),
		Type:            lineType,
		Quantity:        quantity,
		IncludeMaterial: true,
	}
	e.Lines = append(e.Lines, line)
	e.recalculate()
	return line.ID
}

// LinePatch is a partial update for one line item.
type LinePatch struct {
	Quantity              *float64 `json:"quantity"`
	IncludeMaterial       *bool    `json:"includeMaterial"`
	MaterialOverride      *float64 `json:"materialOverride"`
	LaborOverride         *float64 `json:"laborOverride"`
	ClearMaterialOverride bool     `json:"clearMaterialOverride"`
	ClearLaborOverride    bool     `json:"clearLaborOverride"`
}

// UpdateLine applies a partial update to one line item.
func (e *FinishingEstimate) UpdateLine(id string, patch LinePatch) bool {
	for i := range e.Lines {
		if e.Lines[i].ID != id {
			continue
		}
		line := &e.Lines[i]
		if patch.Quantity != nil && *patch.Quantity >= 0 {
			line.Quantity = *patch.Quantity
		}
		if patch.IncludeMaterial != nil {
			line.IncludeMaterial = *patch.IncludeMaterial
		}
		if patch.ClearMaterialOverride {
			line.MaterialOverride = nil
		} else if patch.MaterialOverride != nil {
			line.MaterialOverride = copyFloat(patch.MaterialOverride)
		}
		if patch.ClearLaborOverride {
			line.LaborOverride = nil
		} else if patch.LaborOverride != nil {
			line.LaborOverride = copyFloat(patch.LaborOverride)
		}
		e.recalculate()
		return true
	}
	return false
}

// RemoveLine deletes a line item by id.
func (e *FinishingEstimate) RemoveLine(id string) {
	e.Lines = removeByID(e.Lines, id, func(l LineItem) string { return l.ID })
	e.recalculate()
}

// SetDirectHours sets the directly billed hours, labor only, at the flat
// hourly rate. Negative values are ignored.
func (e *FinishingEstimate) SetDirectHours(hours float64) {
	if hours < 0 {
		return
	}
	e.DirectHours = hours
	e.recalculate()
}

// AddMaterial adds a consumable from the preset catalogue and returns its
// id. Unknown preset ids produce a zero-priced custom entry.
func (e *FinishingEstimate) AddMaterial(presetID string, quantity float64) string {
	entry := MaterialEntry{ID: uuid.NewString(), PresetID: presetID, Quantity: quantity}
	if p, ok := materials.ResolveFinishingPreset(presetID); ok {
		entry.Name = p.Name
		entry.Unit = p.Unit
		entry.UnitPrice = p.UnitPrice
	} else {
		entry.PresetID = "custom"
	}
	e.Materials = append(e.Materials, entry)
	e.recalculate()
	return entry.ID
}

// AddCustomMaterial adds a fully custom consumable and returns its id.
func (e *FinishingEstimate) AddCustomMaterial(name, unit string, unitPrice, quantity float64) string {
	entry := MaterialEntry{
		ID:        uuid.NewString(),
		PresetID:  "custom",
		Name:      name,
		Unit:      unit,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}
	e.Materials = append(e.Materials, entry)
	e.recalculate()
	return entry.ID
}

// MaterialPatch is a partial update for one consumable entry.
type MaterialPatch struct {
	Quantity           *float64 `json:"quantity"`
	PriceOverride      *float64 `json:"priceOverride"`
	ClearPriceOverride bool     `json:"clearPriceOverride"`
}

// UpdateMaterial applies a partial update to one consumable entry.
func (e *FinishingEstimate) UpdateMaterial(id string, patch MaterialPatch) bool {
	for i := range e.Materials {
		if e.Materials[i].ID != id {
			continue
		}
		m := &e.Materials[i]
		if patch.Quantity != nil && *patch.Quantity >= 0 {
			m.Quantity = *patch.Quantity
		}
		if patch.ClearPriceOverride {
			m.PriceOverride = nil
		} else if patch.PriceOverride != nil {
			m.PriceOverride = copyFloat(patch.PriceOverride)
		}
		e.recalculate()
		return true
	}
	return false
}

// RemoveMaterial deletes a consumable entry by id.
func (e *FinishingEstimate) RemoveMaterial(id string) {
	e.Materials = removeByID(e.Materials, id, func(m MaterialEntry) string { return m.ID })
	e.recalculate()
}

// AddAddon adds a catalogue add-on and returns its id.
func (e *FinishingEstimate) AddAddon(presetID string, quantity float64) string {
	a := newAddonFromPreset(finishingAddonPresets, presetID, quantity)
	e.Addons = append(e.Addons, a)
	e.recalculate()
	return a.ID
}

// AddCustomAddon adds a fully custom add-on and returns its id.
func (e *FinishingEstimate) AddCustomAddon(name, unit string, price, quantity float64) string {
	a := newCustomAddon(name, unit, price, quantity)
	e.Addons = append(e.Addons, a)
	e.recalculate()
	return a.ID
}

// UpdateAddon applies a partial update to one add-on.
func (e *FinishingEstimate) UpdateAddon(id string, patch AddonPatch) bool {
	if !applyAddonPatch(e.Addons, id, patch) {
		return false
	}
	e.recalculate()
	return true
}

// RemoveAddon deletes an add-on by id.
func (e *FinishingEstimate) RemoveAddon(id string) {
	e.Addons = removeByID(e.Addons, id, func(a Addon) string { return a.ID })
	e.recalculate()
}

// SetComplexity selects the job complexity tier.
func (e *FinishingEstimate) SetComplexity(c Complexity) {
	e.Complexity = c
	e.recalculate()
}

func (e *FinishingEstimate) recalculate() {
	e.Totals = computeTotals(e)
}

// lineRates returns the effective material and labor rates for a line at
// the given band edge. The blended rate resolves through the chain, splits
// 30/70, then per-portion overrides replace their half.
func (e *FinishingEstimate) lineRates(line LineItem, bound rates.Bound) (material, labor float64) {
	blended := rates.ResolveBound(rates.TradeFinishing, line.Type, e.custom, nil, bound)
	material, labor = rates.SplitBlended(blended)
	if line.MaterialOverride != nil {
		material = *line.MaterialOverride
	}
	if line.LaborOverride != nil {
		labor = *line.LaborOverride
	}
	return material, labor
}

func (e *FinishingEstimate) subtotals() subtotals {
	var materialSub, laborSub float64
	for i := range e.Lines {
		line := &e.Lines[i]
		matRate, labRate := e.lineRates(*line, rates.BoundMid)

		line.MaterialRate = units.Round2(matRate)
		line.LaborRate = units.Round2(labRate)
		if line.IncludeMaterial {
			line.MaterialTotal = units.Round2(matRate * line.Quantity)
		} else {
			line.MaterialTotal = 0
		}
		line.LaborTotal = units.Round2(labRate * line.Quantity)
		line.Total = units.Round2(line.MaterialTotal + line.LaborTotal)

		materialSub += line.MaterialTotal
		laborSub += line.LaborTotal
	}

	hourly := rates.Resolve(rates.TradeFinishing, rates.Hourly, e.custom, nil)
	laborSub += hourly * e.DirectHours

	for i := range e.Materials {
		e.Materials[i].recalculate()
	}
	materialsSub := lo.SumBy(e.Materials, func(m MaterialEntry) float64 { return m.Subtotal })

	return subtotals{
		material:  materialSub,
		labor:     laborSub,
		addons:    recalcAddons(e.Addons),
		materials: materialsSub,
	}
}

func (e *FinishingEstimate) complexity() float64 {
	return complexityMultiplier(e.Complexity, 1.25)
}

// priceRange sums each line's low/high rate band (respecting the material
// toggle), with overridden and customized rates contributing no spread.
// Add-ons and consumables are fixed prices; the complexity multiplier
// applies to both bounds. The result reflects input-level rate uncertainty,
// not a flat percentage.
func (e *FinishingEstimate) priceRange(t Totals) Range {
	mult := e.complexity()
	fixed := t.AddonSubtotal + t.MaterialsSubtotal

	var low, high float64
	for _, line := range e.Lines {
		lowMat, lowLab := e.lineRates(line, rates.BoundLow)
		highMat, highLab := e.lineRates(line, rates.BoundHigh)
		if !line.IncludeMaterial {
			lowMat, highMat = 0, 0
		}
		low += (lowMat + lowLab) * line.Quantity
		high += (highMat + highLab) * line.Quantity
	}

	low += rates.ResolveBound(rates.TradeFinishing, rates.Hourly, e.custom, nil, rates.BoundLow) * e.DirectHours
	high += rates.ResolveBound(rates.TradeFinishing, rates.Hourly, e.custom, nil, rates.BoundHigh) * e.DirectHours

	return Range{
		Low:  units.Round2((low + fixed) * mult),
		High: units.Round2((high + fixed) * mult),
	}
}
