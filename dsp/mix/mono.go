package mix

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// ReduceToMono returns the element-wise arithmetic mean of channels.
//
// A block without channels is treated as a single silent channel; since it
// carries no length, the result is empty.
func ReduceToMono(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return []float64{}
	}

	out := make([]float64, len(channels[0]))
	ReduceToMonoInto(out, channels)

	return out
}

// ReduceToMonoInto writes the mean of channels into dst without allocating.
// len(dst) is the block length; every channel must match it.
// With zero channels dst is cleared.
func ReduceToMonoInto(dst []float64, channels [][]float64) {
	for ch, s := range channels {
		if len(s) != len(dst) {
			panic(fmt.Sprintf("mix: channel %d has %d samples, want %d", ch, len(s), len(dst)))
		}
	}

	if len(channels) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}

	copy(dst, channels[0])
	if len(channels) == 1 || len(dst) == 0 {
		return
	}

	for _, s := range channels[1:] {
		vecmath.AddBlockInPlace(dst, s)
	}

	vecmath.ScaleBlockInPlace(dst, 1/float64(len(channels)))
}
