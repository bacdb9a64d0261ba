// Package harmonics measures the partial amplitudes of a periodic signal
// with a windowed FFT. It is used to check that a rendered sub-oscillator
// carries the expected sawtooth series and nothing above it.
package harmonics
