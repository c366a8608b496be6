// Package geometry decomposes rooms into billable surface area. It supports
// rectangular and L-shaped footprints plus a free-form list of wall segments,
// and subtracts door/window openings with a hard floor at zero.
package geometry

import (
	"math"

	"github.com/google/uuid"

	"github.com/tradebid/tradebid/internal/openings"
	"github.com/tradebid/tradebid/internal/units"
)

// Shape identifies how a room's footprint is described.
type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeLShape      Shape = "l_shape"
	ShapeCustom      Shape = "custom"
)

// WallSegment is one named wall of a custom-shaped room.
type WallSegment struct {
	Name   string           `json:"name"`
	Length units.FeetInches `json:"length"`
}

// Room is a physical space to be worked on. All derived areas are recomputed
// from these fields on demand and never stored as authoritative.
type Room struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`

	Length units.FeetInches `json:"length"`
	Width  units.FeetInches `json:"width"`
	Height units.FeetInches `json:"height"`

	// L-shape footprint: the main rectangle plus an extension.
	MainLength units.FeetInches `json:"mainLength"`
	MainWidth  units.FeetInches `json:"mainWidth"`
	ExtLength  units.FeetInches `json:"extLength"`
	ExtWidth   units.FeetInches `json:"extWidth"`

	Walls []WallSegment `json:"walls"`

	IncludeCeiling  bool     `json:"includeCeiling"`
	CeilingOverride *float64 `json:"ceilingOverride"`

	Doors   []openings.Opening `json:"doors"`
	Windows []openings.Opening `json:"windows"`
}

// NewRoom returns a room with trade defaults: 12x10 rectangular footprint,
// 8ft ceilings, ceiling included, no openings.
func NewRoom(name string) Room {
	return Room{
		ID:             uuid.NewString(),
		Name:           name,
		Shape:          ShapeRectangular,
		Length:         units.FeetInches{Feet: 12},
		Width:          units.FeetInches{Feet: 10},
		Height:         units.FeetInches{Feet: 8},
		IncludeCeiling: true,
	}
}

// Coverage is the billable area breakdown for one room. WallArea is net of
// openings and never negative.
type Coverage struct {
	WallArea    float64 `json:"wallArea"`
	CeilingArea float64 `json:"ceilingArea"`
	OpeningArea float64 `json:"openingArea"`
	TotalArea   float64 `json:"totalArea"`
}

// ComputeCoverage computes gross wall area from the room's shape, subtracts
// openings (floored at zero), and adds ceiling area when included. Outputs
// are rounded to 2 decimals at return, not during accumulation.
func ComputeCoverage(room Room) Coverage {
	height := room.Height.Decimal()

	var grossWall, ceiling float64
	switch room.Shape {
	case ShapeLShape:
		grossWall, ceiling = lShapeAreas(room, height)
	case ShapeCustom:
		for _, w := range room.Walls {
			grossWall += w.Length.Decimal() * height
		}
		if room.CeilingOverride != nil && *room.CeilingOverride > 0 {
			ceiling = *room.CeilingOverride
		}
	default:
		length := room.Length.Decimal()
		width := room.Width.Decimal()
		grossWall = 2 * (length + width) * height
		ceiling = length * width
	}

	if room.Shape != ShapeCustom && room.CeilingOverride != nil && *room.CeilingOverride > 0 {
		ceiling = *room.CeilingOverride
	}
	if !room.IncludeCeiling {
		ceiling = 0
	}

	opening := openings.TotalArea(room.Doors) + openings.TotalArea(room.Windows)
	netWall := math.Max(0, grossWall-opening)

	return Coverage{
		WallArea:    units.Round2(netWall),
		CeilingArea: units.Round2(ceiling),
		OpeningArea: units.Round2(opening),
		TotalArea:   units.Round2(netWall + ceiling),
	}
}

// lShapeAreas walks the actual outer boundary of the L footprint, not its
// bounding rectangle.
func lShapeAreas(room Room, height float64) (wall, ceiling float64) {
	mainL := room.MainLength.Decimal()
	mainW := room.MainWidth.Decimal()
	extL := room.ExtLength.Decimal()
	extW := room.ExtWidth.Decimal()

	perimeter := mainL + mainW + extL + extW +
		math.Abs(mainW-extW) + math.Abs(mainL-extL)

	return perimeter * height, mainL*mainW + extL*extW
}

// TotalCoverage sums coverage across rooms for whole-estimate area figures.
func TotalCoverage(rooms []Room) Coverage {
	var wall, ceiling, opening float64
	for _, r := range rooms {
		c := ComputeCoverage(r)
		wall += c.WallArea
		ceiling += c.CeilingArea
		opening += c.OpeningArea
	}
	return Coverage{
		WallArea:    units.Round2(wall),
		CeilingArea: units.Round2(ceiling),
		OpeningArea: units.Round2(opening),
		TotalArea:   units.Round2(wall + ceiling),
	}
}
