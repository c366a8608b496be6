// Package openings models the doors and windows subtracted from a room's
// wall area. Sizes come from a fixed preset catalogue or are entered as
// custom inch dimensions; area is always derived, never accepted as input.
package openings

import "github.com/tradebid/tradebid/internal/units"

// Kind distinguishes doors from windows.
type Kind string

const (
	KindDoor   Kind = "door"
	KindWindow Kind = "window"
)

// CustomPresetID marks an opening whose dimensions were entered by hand.
const CustomPresetID = "custom"

// Preset is a catalogue entry with standard inch dimensions.
type Preset struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
}

var doorPresets = []Preset{
	{ID: "standard", Label: "Standard Door (36\" x 80\")", WidthIn: 36, HeightIn: 80},
	{ID: "interior", Label: "Interior Door (30\" x 80\")", WidthIn: 30, HeightIn: 80},
	{ID: "double", Label: "Double Door (72\" x 80\")", WidthIn: 72, HeightIn: 80},
	{ID: "sliding", Label: "Sliding Door (96\" x 80\")", WidthIn: 96, HeightIn: 80},
}

var windowPresets = []Preset{
	{ID: "small", Label: "Small Window (24\" x 36\")", WidthIn: 24, HeightIn: 36},
	{ID: "medium", Label: "Medium Window (36\" x 48\")", WidthIn: 36, HeightIn: 48},
	{ID: "large", Label: "Large Window (48\" x 60\")", WidthIn: 48, HeightIn: 60},
	{ID: "picture", Label: "Picture Window (72\" x 60\")", WidthIn: 72, HeightIn: 60},
}

// Presets returns the catalogue for the given kind.
func Presets(kind Kind) []Preset {
	switch kind {
	case KindDoor:
		return doorPresets
	case KindWindow:
		return windowPresets
	default:
		return nil
	}
}

// ResolvePreset looks up a catalogue entry by kind and id.
func ResolvePreset(kind Kind, presetID string) (Preset, bool) {
	for _, p := range Presets(kind) {
		if p.ID == presetID {
			return p, true
		}
	}
	return Preset{}, false
}

// Opening is a rectangular void subtracted from wall area.
type Opening struct {
	PresetID  string  `json:"presetId"`
	Label     string  `json:"label"`
	WidthIn   float64 `json:"widthIn"`
	HeightIn  float64 `json:"heightIn"`
	Quantity  int     `json:"quantity"`
	UnitArea  float64 `json:"unitArea"`
	TotalArea float64 `json:"totalArea"`
}

// New creates an opening from a catalogue preset. An unknown preset id falls
// back to a zero-area custom opening rather than failing.
func New(kind Kind, presetID string, quantity int) Opening {
	p, ok := ResolvePreset(kind, presetID)
	if !ok {
		return NewCustom("", 0, 0, quantity)
	}
	o := Opening{PresetID: p.ID, Label: p.Label, WidthIn: p.WidthIn, HeightIn: p.HeightIn, Quantity: quantity}
	o.Recalculate()
	return o
}

// NewCustom creates an opening with user-entered inch dimensions.
func NewCustom(label string, widthIn, heightIn float64, quantity int) Opening {
	o := Opening{PresetID: CustomPresetID, Label: label, WidthIn: widthIn, HeightIn: heightIn, Quantity: quantity}
	o.Recalculate()
	return o
}

// Recalculate derives unit and total area from the current width, height and
// quantity. Area is never set independently of these fields.
func (o *Opening) Recalculate() {
	if o.WidthIn < 0 || o.HeightIn < 0 || o.Quantity < 0 {
		o.UnitArea = 0
		o.TotalArea = 0
		return
	}
	o.UnitArea = units.Round2(units.SquareInchesToFeet(o.WidthIn, o.HeightIn))
	o.TotalArea = units.Round2(units.SquareInchesToFeet(o.WidthIn, o.HeightIn) * float64(o.Quantity))
}

// TotalArea sums the total areas of a list of openings, recomputed from raw
// dimensions so stale stored totals can never leak into coverage.
func TotalArea(list []Opening) float64 {
	var sum float64
	for _, o := range list {
		if o.WidthIn < 0 || o.HeightIn < 0 || o.Quantity < 0 {
			continue
		}
		sum += units.SquareInchesToFeet(o.WidthIn, o.HeightIn) * float64(o.Quantity)
	}
	return sum
}
