// Package bininfo summarizes the binned event files behind a fit into
// one csv row per file: bin edges, centers, weighted averages and RMS
// values for the momentum transfer, beam energy, and invariant mass,
// plus the weighted event count. Weights carry the sideband
// subtraction, so the event count error is sqrt of the summed squared
// weights.
package bininfo

import (
	"math"
)

// Columns is the fixed output schema, one row per input file.
var Columns = []string{
	"t_low",
	"t_high",
	"t_center",
	"t_avg",
	"t_rms",
	"e_low",
	"e_high",
	"e_center",
	"e_avg",
	"e_rms",
	"m_low",
	"m_high",
	"m_center",
	"m_avg",
	"m_rms",
	"events",
	"events_err",
}

// Event is one weighted event from a pre-cut data file.
type Event struct {
	T      float64
	EBeam  float64
	Mass   float64
	Weight float64
}

// Accumulator gathers weighted first and second moments plus the value
// range of one observable.
type Accumulator struct {
	sumW   float64
	sumW2  float64
	sumWX  float64
	sumWX2 float64
	min    float64
	max    float64
	n      int
}

// Fill adds one weighted observation.
func (a *Accumulator) Fill(x, w float64) {
	if a.n == 0 || x < a.min {
		a.min = x
	}
	if a.n == 0 || x > a.max {
		a.max = x
	}
	a.n++
	a.sumW += w
	a.sumW2 += w * w
	a.sumWX += w * x
	a.sumWX2 += w * x * x
}

// Mean returns the weighted mean, 0 when empty.
func (a *Accumulator) Mean() float64 {
	if a.sumW == 0 {
		return 0
	}
	return a.sumWX / a.sumW
}

// RMS returns the weighted standard deviation about the mean.
func (a *Accumulator) RMS() float64 {
	if a.sumW == 0 {
		return 0
	}
	mean := a.Mean()
	v := a.sumWX2/a.sumW - mean*mean
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// Events returns the weighted event count.
func (a *Accumulator) Events() float64 { return a.sumW }

// EventsErr returns the uncertainty on the weighted count.
func (a *Accumulator) EventsErr() float64 { return math.Sqrt(a.sumW2) }

// Edges returns the observed value range rounded to the given number
// of decimals, approximating the populated histogram bin edges of the
// original binning.
func (a *Accumulator) Edges(decimals int) (low, high float64) {
	return roundTo(a.min, decimals), roundTo(a.max, decimals)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// Summarize reduces one file's events to the Columns values. Momentum
// transfer and beam energy edges round to 2 decimals, mass edges to 3
// (1 MeV).
func Summarize(events []Event) map[string]float64 {
	var t, e, m Accumulator
	for _, ev := range events {
		t.Fill(ev.T, ev.Weight)
		e.Fill(ev.EBeam, ev.Weight)
		m.Fill(ev.Mass, ev.Weight)
	}

	row := make(map[string]float64, len(Columns))
	fill := func(prefix string, a *Accumulator, decimals int) {
		low, high := a.Edges(decimals)
		row[prefix+"_low"] = low
		row[prefix+"_high"] = high
		row[prefix+"_center"] = (low + high) / 2
		row[prefix+"_avg"] = a.Mean()
		row[prefix+"_rms"] = a.RMS()
	}
	fill("t", &t, 2)
	fill("e", &e, 2)
	fill("m", &m, 3)
	row["events"] = m.Events()
	row["events_err"] = m.EventsErr()
	return row
}
