package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-subosc/dsp/core"
	"github.com/cwbudde/algo-subosc/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const defaultMaxHarmonics = 8

// ErrEmptySignal is returned when there is nothing to analyze.
var ErrEmptySignal = errors.New("harmonics: empty signal")

// Config holds analysis parameters.
type Config struct {
	SampleRate float64
	// FFTSize defaults to the next power of two covering the signal.
	FFTSize int
	// Fundamental is the expected fundamental in Hz.
	Fundamental float64
	// MaxHarmonics defaults to 8.
	MaxHarmonics int
	// Window defaults to Hann.
	Window window.Type
	// CaptureBins is how many bins either side of a harmonic are summed.
	// It defaults to the main-lobe half width of the window.
	CaptureBins int
}

// Result holds the measured partials.
//
//nolint:revive
type Result struct {
	FFTSize int
	BinHz   float64
	// Amplitudes[k-1] is the peak amplitude of harmonic k. Harmonics at or
	// above Nyquist are reported as 0.
	Amplitudes []float64
	// THD is the RMS sum of harmonics 2..MaxHarmonics relative to the
	// fundamental.
	THD    float64
	THD_dB float64
	// Spectrum holds the single-sided magnitude spectrum, bins 0..FFTSize/2.
	Spectrum []float64
}

// Analyze measures the harmonics of signal. The first FFTSize samples are
// windowed and transformed; shorter signals are zero padded.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	if err := core.ValidateSampleRate("harmonics", cfg.SampleRate); err != nil {
		return Result{}, err
	}

	if cfg.Fundamental <= 0 || !core.IsFinite(cfg.Fundamental) {
		return Result{}, fmt.Errorf("harmonics fundamental must be > 0 and finite: %f", cfg.Fundamental)
	}

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	maxHarmonics := cfg.MaxHarmonics
	if maxHarmonics <= 0 {
		maxHarmonics = defaultMaxHarmonics
	}

	winType := cfg.Window

	frame := min(len(signal), fftSize)

	coeffs, err := window.Generate(winType, frame, window.WithPeriodic())
	if err != nil {
		return Result{}, err
	}

	windowed := append([]float64(nil), signal[:frame]...)
	if err := window.ApplyCoefficientsInPlace(windowed, coeffs); err != nil {
		return Result{}, err
	}

	inData := make([]complex128, fftSize)
	for i, v := range windowed {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("harmonics: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Result{}, fmt.Errorf("harmonics: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	magnitude := make([]float64, bins)
	vecmath.Magnitude(magnitude, re, im)

	sumSquares := 0.0
	for _, c := range coeffs {
		sumSquares += c * c
	}

	capture := cfg.CaptureBins
	if capture <= 0 {
		capture = captureBinsFor(winType)
	}

	binHz := cfg.SampleRate / float64(fftSize)
	res := Result{
		FFTSize:    fftSize,
		BinHz:      binHz,
		Amplitudes: make([]float64, maxHarmonics),
		Spectrum:   magnitude,
	}

	nyquist := cfg.SampleRate / 2
	for k := 1; k <= maxHarmonics; k++ {
		freq := float64(k) * cfg.Fundamental
		if freq >= nyquist {
			break
		}

		center := int(math.Round(freq / binHz))
		lo := max(center-capture, 1)
		hi := min(center+capture, bins-1)

		energy := 0.0
		for i := lo; i <= hi; i++ {
			energy += power[i]
		}

		// One-sided energy of A·sin is N·A²·Σw²/4 by Parseval.
		res.Amplitudes[k-1] = 2 * math.Sqrt(energy/(float64(fftSize)*sumSquares))
	}

	res.THD, res.THD_dB = thd(res.Amplitudes)

	return res, nil
}

// Amplitude returns the measured amplitude of harmonic k, or 0 when k is
// out of range.
func (r Result) Amplitude(k int) float64 {
	if k < 1 || k > len(r.Amplitudes) {
		return 0
	}
	return r.Amplitudes[k-1]
}

func thd(amplitudes []float64) (ratio, db float64) {
	if len(amplitudes) == 0 || amplitudes[0] == 0 {
		return 0, math.Inf(-1)
	}

	sum := 0.0
	for _, a := range amplitudes[1:] {
		sum += a * a
	}

	ratio = math.Sqrt(sum) / amplitudes[0]

	return ratio, core.LinearToDB(ratio)
}

func captureBinsFor(t window.Type) int {
	switch t {
	case window.TypeBlackmanHarris:
		return 4
	case window.TypeHann:
		return 2
	default:
		return 1
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
