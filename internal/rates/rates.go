// Package rates resolves every priced quantity in an estimate through a
// fixed precedence chain: an explicit per-line override, then the user's
// saved custom rate, then the trade's industry-default midpoint. It also
// exposes the industry low/high band used for range computation.
package rates

// Trade namespaces custom rates and industry tables.
type Trade string

const (
	TradeHanging   Trade = "hanging"
	TradeFinishing Trade = "finishing"
	TradePainting  Trade = "painting"
)

// Band is an industry low/mid/high triple for one rate type. Mid is the
// documented default; Low and High feed range estimation only, never point
// totals.
type Band struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// Bound selects which edge of a band a resolution should fall back to.
type Bound int

const (
	BoundLow Bound = iota
	BoundMid
	BoundHigh
)

func (b Band) at(bound Bound) float64 {
	switch bound {
	case BoundLow:
		return b.Low
	case BoundHigh:
		return b.High
	default:
		return b.Mid
	}
}

// Hanging rate types. Material and labor are resolved independently per
// sheet; there is no blended figure to split.
const (
	SheetMaterial = "sheet_material"
	SheetLabor    = "sheet_labor"
)

// Finishing line-item rate types, each a single blended $/unit figure.
const (
	SqftStandard = "sqft_standard"
	SqftLevel5   = "sqft_level5"
	LinearJoints = "linear_joints"
	Hourly       = "hourly"
)

// Painting rate types.
const (
	PaintLaborPerSqft    = "labor_per_sqft"
	PaintMaterialPerSqft = "material_per_sqft"
)

var industry = map[Trade]map[string]Band{
	TradeHanging: {
		SheetMaterial: {Low: 10.00, Mid: 13.00, High: 16.00},
		SheetLabor:    {Low: 14.00, Mid: 18.00, High: 22.00},
	},
	TradeFinishing: {
		SqftStandard: {Low: 0.95, Mid: 1.25, High: 1.55},
		SqftLevel5:   {Low: 1.45, Mid: 1.85, High: 2.25},
		LinearJoints: {Low: 0.55, Mid: 0.75, High: 0.95},
		Hourly:       {Low: 45.00, Mid: 60.00, High: 75.00},
	},
	TradePainting: {
		PaintLaborPerSqft:    {Low: 1.25, Mid: 1.75, High: 2.25},
		PaintMaterialPerSqft: {Low: 0.35, Mid: 0.50, High: 0.65},
	},
}

// CustomRates is the user's saved rate document: trade namespace → rate
// type → value. It is treated as an immutable snapshot for the duration of
// any single recomputation.
type CustomRates map[string]map[string]float64

// Get returns the saved custom rate for a trade/rate type, if any.
func (c CustomRates) Get(trade Trade, rateType string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	byType, ok := c[string(trade)]
	if !ok {
		return 0, false
	}
	v, ok := byType[rateType]
	return v, ok
}

// Set records a custom rate, allocating namespaces as needed.
func (c CustomRates) Set(trade Trade, rateType string, value float64) {
	byType, ok := c[string(trade)]
	if !ok {
		byType = map[string]float64{}
		c[string(trade)] = byType
	}
	byType[rateType] = value
}

// resolver is one tier of the precedence chain; ok reports whether this tier
// has a value. The chain is an explicit ordered list so the precedence is
// testable on its own rather than scattered through call sites.
type resolver func() (float64, bool)

func firstOf(chain ...resolver) float64 {
	for _, r := range chain {
		if v, ok := r(); ok {
			return v
		}
	}
	return 0
}

// Resolve returns the effective rate for a trade's rate type. Precedence:
// per-line override, saved custom rate, industry midpoint. An unknown rate
// type yields 0, never an error.
func Resolve(trade Trade, rateType string, custom CustomRates, override *float64) float64 {
	return ResolveBound(trade, rateType, custom, override, BoundMid)
}

// ResolveBound resolves like Resolve but falls back to the requested band
// edge instead of the midpoint when neither an override nor a custom rate is
// present. Range strategies use this to blend fixed (customized) rates with
// industry uncertainty.
func ResolveBound(trade Trade, rateType string, custom CustomRates, override *float64, bound Bound) float64 {
	return firstOf(
		func() (float64, bool) {
			if override != nil {
				return *override, true
			}
			return 0, false
		},
		func() (float64, bool) {
			return custom.Get(trade, rateType)
		},
		func() (float64, bool) {
			band, ok := BandFor(trade, rateType)
			if !ok {
				return 0, false
			}
			return band.at(bound), true
		},
	)
}

// BandFor returns the industry band for a trade's rate type.
func BandFor(trade Trade, rateType string) (Band, bool) {
	byType, ok := industry[trade]
	if !ok {
		return Band{}, false
	}
	band, ok := byType[rateType]
	return band, ok
}

// IsCustomized reports whether the user has saved their own rate for this
// rate type. Range strategies treat customized rates as fixed values with no
// band spread.
func IsCustomized(trade Trade, rateType string, custom CustomRates) bool {
	_, ok := custom.Get(trade, rateType)
	return ok
}

// Blended finishing rates carry both material and labor in one $/unit
// figure; the industry convention splits it roughly 30% material, 70% labor.
const (
	blendedMaterialShare = 0.30
	blendedLaborShare    = 0.70
)

// SplitBlended splits a blended rate into its material and labor portions.
func SplitBlended(rate float64) (material, labor float64) {
	return rate * blendedMaterialShare, rate * blendedLaborShare
}
