package envelope

import "github.com/cwbudde/algo-subosc/dsp/core"

// settleConstant calibrates a time constant to ~90% settling (ln 10 ≈ 2.3).
const settleConstant = 2.2

// Coefficient returns the one-pole smoothing coefficient for a time constant
// in milliseconds at sampleRate.
//
// Time constants at or below zero give 1, an instantaneous jump to the target.
// Otherwise the result is 1 - exp(-2.2 / (timeMs * 0.001 * sampleRate)).
func Coefficient(timeMs, sampleRate float64) float64 {
	if timeMs <= 0 {
		return 1
	}

	samples := timeMs * 0.001 * sampleRate
	if samples <= 0 {
		return 1
	}

	return core.Clamp(1-mathExp(-settleConstant/samples), 0, 1)
}
