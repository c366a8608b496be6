// Package units converts between the imperial measurements tradespeople
// enter (feet+inches pairs, inch dimensions) and the decimal square footage
// the rest of the engine computes with.
package units

import "math"

const inchesPerFoot = 12.0

// FeetInches is a dimension entered as separate feet and inches fields.
type FeetInches struct {
	Feet   float64 `json:"feet"`
	Inches float64 `json:"inches"`
}

// Decimal returns the dimension as decimal feet.
func (fi FeetInches) Decimal() float64 {
	return fi.Feet + fi.Inches/inchesPerFoot
}

// FromDecimal splits decimal feet back into a whole-feet + inches pair.
func FromDecimal(feet float64) FeetInches {
	whole := math.Floor(feet)
	return FeetInches{
		Feet:   whole,
		Inches: Round2((feet - whole) * inchesPerFoot),
	}
}

// SquareInchesToFeet converts a width×height measured in inches to square feet.
func SquareInchesToFeet(widthIn, heightIn float64) float64 {
	return widthIn * heightIn / (inchesPerFoot * inchesPerFoot)
}

// Round2 rounds to two decimal places. The engine rounds at the point of
// return, never during intermediate accumulation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
