// Package osc synthesizes band-limited sawtooth and sine tones.
//
// Sawtooth evaluates the truncated Fourier series of a sawtooth,
//
//	saw(φ) = (2/π) Σ_{n=1..N} (-1)^(n+1) sin(nφ) / n
//
// so that N = 1 degenerates to a pure sine and larger N sharpens the ramp at
// the cost of more terms and more Gibbs ringing energy close to the edge.
//
// The package-level helpers (Sine, SawWithGain, SineWithGain) compute phase
// from a sample index counted from zero on every call. Rendering consecutive
// blocks with them restarts the waveform at each block boundary. Oscillator
// keeps a phase accumulator instead and is the type to use for streaming.
package osc
