package dsp

import "math"

// Deemphasis implements the single-pole low-pass filter that reverses FM
// pre-emphasis.
type Deemphasis struct {
	alpha float64
	prev  float64
}

// NewDeemphasis creates a de-emphasis filter for the given audio sample
// rate and time constant (e.g. 50e-6 for Europe, 75e-6 for North America).
// alpha follows the discrete-time exponential-smoothing realization of a
// continuous RC low-pass: alpha = 1 - exp(-dt/tau).
func NewDeemphasis(sampleRateHz int, tau float64) *Deemphasis {
	dt := 1.0 / float64(sampleRateHz)
	return &Deemphasis{alpha: 1 - math.Exp(-dt/tau)}
}

// Filter applies one step of the de-emphasis filter and returns the new state.
func (d *Deemphasis) Filter(x float64) float64 {
	d.prev = d.alpha*x + (1-d.alpha)*d.prev
	return d.prev
}

// Alpha reports the filter's fixed coefficient.
func (d *Deemphasis) Alpha() float64 {
	return d.alpha
}
