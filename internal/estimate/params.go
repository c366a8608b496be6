package estimate

import (
	"encoding/json"

	"github.com/tradebid/tradebid/internal/geometry"
)

// Hydration restores a container from a persisted parameter blob. It is
// deliberately lenient: the blob is decoded field by field, each field is
// applied only if it parses and validates, and everything else keeps its
// current state. A malformed blob never reaches the aggregator as an error;
// the worst case is an estimate left at defaults.

// MarshalParams serializes the estimate's parameters for persistence.
func (e *HangingEstimate) MarshalParams() ([]byte, error) {
	return json.Marshal(e)
}

// MarshalParams serializes the estimate's parameters for persistence.
func (e *FinishingEstimate) MarshalParams() ([]byte, error) {
	return json.Marshal(e)
}

// MarshalParams serializes the estimate's parameters for persistence.
func (e *PaintingEstimate) MarshalParams() ([]byte, error) {
	return json.Marshal(e)
}

func decodeFields(raw []byte) map[string]json.RawMessage {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

// field applies one parameter if it is present and parses as T.
func field[T any](fields map[string]json.RawMessage, key string, apply func(T)) {
	rawValue, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(rawValue, &v); err != nil {
		return
	}
	apply(v)
}

func nonNegative(apply func(float64)) func(float64) {
	return func(v float64) {
		if v >= 0 {
			apply(v)
		}
	}
}

func validComplexity(apply func(Complexity)) func(string) {
	return func(v string) {
		switch Complexity(v) {
		case ComplexitySimple, ComplexityStandard, ComplexityComplex:
			apply(Complexity(v))
		}
	}
}

func sanitizeRooms(rooms []geometry.Room) []geometry.Room {
	for i := range rooms {
		// Rederive opening areas; stored totals are never authoritative.
		rooms[i].Apply(geometry.Patch{})
	}
	return rooms
}

// HydrateFromSaved restores a previously persisted parameter blob. Only the
// fields present and valid are applied; derived values are recomputed from
// scratch afterwards.
func (e *HangingEstimate) HydrateFromSaved(raw []byte) {
	fields := decodeFields(raw)
	if fields == nil {
		return
	}

	field(fields, "mode", func(v HangingMode) {
		switch v {
		case HangingModeRooms, HangingModeArea, HangingModeSheets:
			e.Mode = v
		}
	})
	field(fields, "rooms", func(v []geometry.Room) { e.Rooms = sanitizeRooms(v) })
	field(fields, "sheets", func(v []SheetEntry) { e.Sheets = v })
	field(fields, "directArea", nonNegative(func(v float64) { e.DirectArea = v }))
	field(fields, "sheetSize", func(v float64) {
		if v > 0 {
			e.SheetSize = v
		}
	})
	field(fields, "wasteFactor", nonNegative(func(v float64) { e.WasteFactor = v }))
	field(fields, "ceilingBand", func(v CeilingBand) {
		switch v {
		case CeilingBand8ft, CeilingBand9ft, CeilingBand10ft, CeilingBandVaulted:
			e.CeilingBand = v
		}
	})
	field(fields, "complexity", validComplexity(func(v Complexity) { e.Complexity = v }))
	field(fields, "materialMarkup", nonNegative(func(v float64) { e.MaterialMarkup = v }))
	field(fields, "materialRateOverride", func(v *float64) { e.MaterialRateOverride = v })
	field(fields, "laborRateOverride", func(v *float64) { e.LaborRateOverride = v })
	field(fields, "addons", func(v []Addon) { e.Addons = v })

	e.recalculate()
}

// HydrateFromSaved restores a previously persisted parameter blob. Only the
// fields present and valid are applied.
func (e *FinishingEstimate) HydrateFromSaved(raw []byte) {
	fields := decodeFields(raw)
	if fields == nil {
		return
	}

	field(fields, "lines", func(v []LineItem) { e.Lines = v })
	field(fields, "directHours", nonNegative(func(v float64) { e.DirectHours = v }))
	field(fields, "addons", func(v []Addon) { e.Addons = v })
	field(fields, "materials", func(v []MaterialEntry) { e.Materials = v })
	field(fields, "complexity", validComplexity(func(v Complexity) { e.Complexity = v }))

	e.recalculate()
}

// HydrateFromSaved restores a previously persisted parameter blob. Only the
// fields present and valid are applied.
func (e *PaintingEstimate) HydrateFromSaved(raw []byte) {
	fields := decodeFields(raw)
	if fields == nil {
		return
	}

	field(fields, "rooms", func(v []geometry.Room) { e.Rooms = sanitizeRooms(v) })
	field(fields, "useRooms", func(v bool) { e.UseRooms = v })
	field(fields, "wallSqft", nonNegative(func(v float64) { e.WallSqft = v }))
	field(fields, "ceilingSqft", nonNegative(func(v float64) { e.CeilingSqft = v }))
	field(fields, "coats", func(v int) {
		if v >= 1 && v <= 3 {
			e.Coats = v
		}
	})
	field(fields, "quality", func(v Quality) {
		switch v {
		case QualityEconomy, QualityStandard, QualityPremium:
			e.Quality = v
		}
	})
	field(fields, "prepTier", func(v PrepTier) {
		switch v {
		case PrepNone, PrepLight, PrepStandard, PrepHeavy:
			e.PrepTier = v
		}
	})
	field(fields, "ceilingModifier", func(v float64) {
		if v >= 1 {
			e.CeilingModifier = v
		}
	})
	field(fields, "laborRateOverride", func(v *float64) { e.LaborRateOverride = v })
	field(fields, "materialRateOverride", func(v *float64) { e.MaterialRateOverride = v })
	field(fields, "addons", func(v []Addon) { e.Addons = v })
	field(fields, "complexity", validComplexity(func(v Complexity) { e.Complexity = v }))
	field(fields, "rangeMode", func(v PaintRangeMode) {
		switch v {
		case RangePercent, RangeBand:
			e.RangeMode = v
		}
	})

	e.recalculate()
}
