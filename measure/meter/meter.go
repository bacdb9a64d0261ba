package meter

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Reading holds level statistics of the samples seen so far.
//
//nolint:revive
type Reading struct {
	Length         int
	DC             float64
	Peak           float64
	Peak_dB        float64
	RMS            float64
	RMS_dB         float64
	CrestFactor    float64
	CrestFactor_dB float64
}

// Meter is a streaming level accumulator. The zero value is ready to use.
type Meter struct {
	n     int
	sum   float64
	sumSq float64
	peak  float64
}

// New creates an empty Meter.
func New() *Meter {
	return &Meter{}
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	if len(samples) == 0 {
		return
	}

	for _, x := range samples {
		m.sum += x
		m.sumSq += x * x
	}

	m.n += len(samples)
	m.peak = max(m.peak, vecmath.MaxAbs(samples))
}

// Result computes the reading from accumulated data.
func (m *Meter) Result() Reading {
	if m.n == 0 {
		return Reading{
			Peak_dB:        math.Inf(-1),
			RMS_dB:         math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = m.peak / rms
	}

	return Reading{
		Length:         m.n,
		DC:             m.sum / nf,
		Peak:           m.peak,
		Peak_dB:        ampTodB(m.peak),
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		CrestFactor:    crest,
		CrestFactor_dB: ampTodB(crest),
	}
}

// Reset clears all accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}

// Measure is a one-shot reading of signal.
func Measure(signal []float64) Reading {
	var m Meter
	m.Update(signal)
	return m.Result()
}

// ampTodB converts an amplitude value to decibels. Zero maps to -Inf.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}
