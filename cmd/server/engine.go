package main

import (
	"encoding/json"
	"fmt"

	"github.com/tradebid/tradebid/internal/estimate"
	"github.com/tradebid/tradebid/internal/rates"
)

// snapshot is the persisted output of one engine run: the parameter blob,
// the totals blob, and the denormalized figures for list views.
type snapshot struct {
	Params    []byte
	Totals    []byte
	Total     float64
	RangeLow  float64
	RangeHigh float64
}

type paramsMarshaler interface {
	MarshalParams() ([]byte, error)
}

// computeSnapshot hydrates a fresh container for the trade from the given
// parameter blob, lets the engine recompute, and serializes the result. The
// custom-rates snapshot is fixed for the duration of the run.
func computeSnapshot(trade string, params []byte, custom rates.CustomRates) (snapshot, error) {
	switch rates.Trade(trade) {
	case rates.TradeHanging:
		e := estimate.NewHangingEstimate(custom)
		e.HydrateFromSaved(params)
		return marshalSnapshot(e, e.Totals)
	case rates.TradeFinishing:
		e := estimate.NewFinishingEstimate(custom)
		e.HydrateFromSaved(params)
		return marshalSnapshot(e, e.Totals)
	case rates.TradePainting:
		e := estimate.NewPaintingEstimate(custom)
		e.HydrateFromSaved(params)
		return marshalSnapshot(e, e.Totals)
	default:
		return snapshot{}, fmt.Errorf("unknown trade %q", trade)
	}
}

func marshalSnapshot(e paramsMarshaler, totals estimate.Totals) (snapshot, error) {
	params, err := e.MarshalParams()
	if err != nil {
		return snapshot{}, fmt.Errorf("marshal estimate params: %w", err)
	}
	totalsJSON, err := json.Marshal(totals)
	if err != nil {
		return snapshot{}, fmt.Errorf("marshal estimate totals: %w", err)
	}

	return snapshot{
		Params:    params,
		Totals:    totalsJSON,
		Total:     totals.Total,
		RangeLow:  totals.Range.Low,
		RangeHigh: totals.Range.High,
	}, nil
}
