package osc

import (
	"errors"
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// ErrLengthMismatch is returned when an output buffer and its gain curve
// differ in length.
var ErrLengthMismatch = errors.New("osc: output and gain curve lengths differ")

// Sawtooth returns the value of a sawtooth built from the first harmonics
// partials at phase (radians). harmonics <= 0 yields 0.
func Sawtooth(phase float64, harmonics int) float64 {
	if harmonics <= 0 {
		return 0
	}

	// sin((n+1)φ) = 2cos(φ)·sin(nφ) - sin((n-1)φ)
	s1, c1 := math.Sincos(phase)
	twoCos := 2 * c1

	var (
		prev = 0.0
		cur  = s1
		sign = 1.0
		sum  float64
	)

	for n := 1; n <= harmonics; n++ {
		sum += sign * cur / float64(n)
		prev, cur = cur, twoCos*cur-prev
		sign = -sign
	}

	return sum * 2 / math.Pi
}

// Sine returns sin(2π·frequency·index/sampleRate).
func Sine(frequency, sampleRate float64, index int) float64 {
	return math.Sin(indexPhase(frequency, sampleRate, index))
}

// SawWithGain renders a sawtooth scaled sample-by-sample by curve. The curve
// length sets the output length and the phase starts at 0.
func SawWithGain(frequency, sampleRate float64, harmonics int, curve []float64) []float64 {
	out := make([]float64, len(curve))
	_ = SawWithGainInto(out, frequency, sampleRate, harmonics, curve)

	return out
}

// SawWithGainInto is the allocation-free form of SawWithGain. It returns
// ErrLengthMismatch when len(dst) != len(curve).
func SawWithGainInto(dst []float64, frequency, sampleRate float64, harmonics int, curve []float64) error {
	if len(dst) != len(curve) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dst), len(curve))
	}

	for i, g := range curve {
		dst[i] = Sawtooth(indexPhase(frequency, sampleRate, i), harmonics) * g
	}

	return nil
}

// SineWithGain renders a sine scaled sample-by-sample by curve. The curve
// length sets the output length and the phase starts at 0.
func SineWithGain(frequency, sampleRate float64, curve []float64) []float64 {
	out := make([]float64, len(curve))
	_ = SineWithGainInto(out, frequency, sampleRate, curve)

	return out
}

// SineWithGainInto is the allocation-free form of SineWithGain. It returns
// ErrLengthMismatch when len(dst) != len(curve).
func SineWithGainInto(dst []float64, frequency, sampleRate float64, curve []float64) error {
	if len(dst) != len(curve) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dst), len(curve))
	}

	for i, g := range curve {
		dst[i] = Sine(frequency, sampleRate, i) * g
	}

	return nil
}

func indexPhase(frequency, sampleRate float64, index int) float64 {
	return twoPi * frequency * float64(index) / sampleRate
}
