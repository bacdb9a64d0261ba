package gain

import (
	"fmt"

	"github.com/cwbudde/algo-subosc/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ApplyGain multiplies signal by curve in place: signal[i] *= curve[i].
// It panics if the lengths differ.
func ApplyGain(signal, curve []float64) {
	requireSameLength(len(signal), len(curve))
	if len(signal) == 0 {
		return
	}

	vecmath.MulBlockInPlace(signal, curve)
}

// ApplyGainTo writes signal[i] * curve[i] into dst. It panics unless all three
// slices have the same length.
func ApplyGainTo(dst, signal, curve []float64) {
	requireSameLength(len(signal), len(curve))
	requireSameLength(len(dst), len(signal))
	if len(dst) == 0 {
		return
	}

	vecmath.MulBlock(dst, signal, curve)
}

// Scale multiplies signal by a scalar gain in place. A gain of exactly 1 is
// a no-op.
func Scale(signal []float64, gain float64) {
	if gain == 1 || len(signal) == 0 {
		return
	}

	vecmath.ScaleBlockInPlace(signal, gain)
}

// DBToLinear converts a gain in dB to a linear factor.
func DBToLinear(db float64) float64 {
	return core.DBToLinear(db)
}

func requireSameLength(a, b int) {
	if a != b {
		panic(fmt.Sprintf("gain: length mismatch: %d != %d", a, b))
	}
}
