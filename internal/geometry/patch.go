package geometry

import (
	"github.com/tradebid/tradebid/internal/openings"
	"github.com/tradebid/tradebid/internal/units"
)

// Patch is a partial room update: only non-nil fields are applied, the rest
// of the room keeps its current state. Invalid values (an unknown shape, a
// negative ceiling override) are skipped rather than rejected.
type Patch struct {
	Name  *string `json:"name"`
	Shape *Shape  `json:"shape"`

	Length *units.FeetInches `json:"length"`
	Width  *units.FeetInches `json:"width"`
	Height *units.FeetInches `json:"height"`

	MainLength *units.FeetInches `json:"mainLength"`
	MainWidth  *units.FeetInches `json:"mainWidth"`
	ExtLength  *units.FeetInches `json:"extLength"`
	ExtWidth   *units.FeetInches `json:"extWidth"`

	Walls *[]WallSegment `json:"walls"`

	IncludeCeiling       *bool    `json:"includeCeiling"`
	CeilingOverride      *float64 `json:"ceilingOverride"`
	ClearCeilingOverride bool     `json:"clearCeilingOverride"`

	Doors   *[]openings.Opening `json:"doors"`
	Windows *[]openings.Opening `json:"windows"`
}

func validShape(s Shape) bool {
	switch s {
	case ShapeRectangular, ShapeLShape, ShapeCustom:
		return true
	}
	return false
}

// Apply merges a patch into the room. Opening areas are rederived from raw
// dimensions so callers can never smuggle in a stale total.
func (r *Room) Apply(p Patch) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Shape != nil && validShape(*p.Shape) {
		r.Shape = *p.Shape
	}
	if p.Length != nil {
		r.Length = *p.Length
	}
	if p.Width != nil {
		r.Width = *p.Width
	}
	if p.Height != nil {
		r.Height = *p.Height
	}
	if p.MainLength != nil {
		r.MainLength = *p.MainLength
	}
	if p.MainWidth != nil {
		r.MainWidth = *p.MainWidth
	}
	if p.ExtLength != nil {
		r.ExtLength = *p.ExtLength
	}
	if p.ExtWidth != nil {
		r.ExtWidth = *p.ExtWidth
	}
	if p.Walls != nil {
		r.Walls = *p.Walls
	}
	if p.IncludeCeiling != nil {
		r.IncludeCeiling = *p.IncludeCeiling
	}
	if p.ClearCeilingOverride {
		r.CeilingOverride = nil
	} else if p.CeilingOverride != nil && *p.CeilingOverride >= 0 {
		override := *p.CeilingOverride
		r.CeilingOverride = &override
	}
	if p.Doors != nil {
		r.Doors = *p.Doors
	}
	if p.Windows != nil {
		r.Windows = *p.Windows
	}

	for i := range r.Doors {
		r.Doors[i].Recalculate()
	}
	for i := range r.Windows {
		r.Windows[i].Recalculate()
	}
}
