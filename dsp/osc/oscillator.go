package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-subosc/dsp/core"
)

const (
	defaultFrequencyHz = 440.0
	defaultHarmonics   = 3
)

// Waveform selects the shape an Oscillator renders.
type Waveform int

const (
	// WaveformSaw renders the band-limited sawtooth series.
	WaveformSaw Waveform = iota
	// WaveformSine renders a pure sine.
	WaveformSine
)

func (w Waveform) String() string {
	switch w {
	case WaveformSaw:
		return "saw"
	case WaveformSine:
		return "sine"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// Option mutates oscillator construction parameters.
type Option func(*config) error

type config struct {
	frequency float64
	harmonics int
	waveform  Waveform
	bandLimit bool
}

func defaultConfig() config {
	return config{
		frequency: defaultFrequencyHz,
		harmonics: defaultHarmonics,
		waveform:  WaveformSaw,
		bandLimit: true,
	}
}

// WithFrequency sets the fundamental frequency in Hz.
func WithFrequency(hz float64) Option {
	return func(cfg *config) error {
		if err := validateFrequency(hz); err != nil {
			return err
		}

		cfg.frequency = hz

		return nil
	}
}

// WithHarmonics sets how many sawtooth partials are summed.
func WithHarmonics(n int) Option {
	return func(cfg *config) error {
		if err := validateHarmonics(n); err != nil {
			return err
		}

		cfg.harmonics = n

		return nil
	}
}

// WithWaveform selects the rendered waveform.
func WithWaveform(w Waveform) Option {
	return func(cfg *config) error {
		if err := validateWaveform(w); err != nil {
			return err
		}

		cfg.waveform = w

		return nil
	}
}

// WithBandLimit toggles dropping partials above Nyquist. Enabled by default.
func WithBandLimit(enable bool) Option {
	return func(cfg *config) error {
		cfg.bandLimit = enable
		return nil
	}
}

// Oscillator renders a continuous waveform whose phase carries over between
// calls, so consecutive blocks join without discontinuities.
//
// With band limiting enabled the number of summed partials is capped so that
// no partial lies above sampleRate/2; a fundamental above Nyquist renders
// silence.
type Oscillator struct {
	sampleRate float64
	frequency  float64
	harmonics  int
	waveform   Waveform
	bandLimit  bool

	effective int
	phase     float64
	phaseInc  float64
}

// NewOscillator creates an oscillator for sampleRate with optional overrides.
// Defaults: 440 Hz sawtooth with 3 partials, band limited.
func NewOscillator(sampleRate float64, opts ...Option) (*Oscillator, error) {
	if err := core.ValidateSampleRate("oscillator", sampleRate); err != nil {
		return nil, err
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o := &Oscillator{
		sampleRate: sampleRate,
		frequency:  cfg.frequency,
		harmonics:  cfg.harmonics,
		waveform:   cfg.waveform,
		bandLimit:  cfg.bandLimit,
	}
	o.update()

	return o, nil
}

// SetSampleRate updates the sample rate. The phase is kept.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("oscillator", sampleRate); err != nil {
		return err
	}

	o.sampleRate = sampleRate
	o.update()

	return nil
}

// SetFrequency sets the fundamental frequency in Hz. The phase is kept, so
// pitch changes are glitch-free.
func (o *Oscillator) SetFrequency(hz float64) error {
	if err := validateFrequency(hz); err != nil {
		return err
	}

	o.frequency = hz
	o.update()

	return nil
}

// SetHarmonics sets how many sawtooth partials are summed.
func (o *Oscillator) SetHarmonics(n int) error {
	if err := validateHarmonics(n); err != nil {
		return err
	}

	o.harmonics = n
	o.update()

	return nil
}

// SetWaveform selects the rendered waveform.
func (o *Oscillator) SetWaveform(w Waveform) error {
	if err := validateWaveform(w); err != nil {
		return err
	}

	o.waveform = w

	return nil
}

// Reset restarts the waveform at phase 0.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Next returns the sample at the current phase and advances by one sample.
func (o *Oscillator) Next() float64 {
	v := o.value(o.phase)

	o.phase += o.phaseInc
	if o.phase >= twoPi {
		o.phase = math.Mod(o.phase, twoPi)
	}

	return v
}

// ProcessInto fills dst with consecutive samples.
func (o *Oscillator) ProcessInto(dst []float64) {
	for i := range dst {
		dst[i] = o.Next()
	}
}

// ProcessWithGain fills dst with consecutive samples scaled by curve. It
// returns ErrLengthMismatch, without advancing, when len(dst) != len(curve).
func (o *Oscillator) ProcessWithGain(dst, curve []float64) error {
	if len(dst) != len(curve) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dst), len(curve))
	}

	for i, g := range curve {
		dst[i] = o.Next() * g
	}

	return nil
}

// Phase returns the current phase in [0, 2π).
func (o *Oscillator) Phase() float64 { return o.phase }

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Frequency returns the fundamental frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// Harmonics returns the configured partial count.
func (o *Oscillator) Harmonics() int { return o.harmonics }

// EffectiveHarmonics returns the partial count actually summed after band
// limiting.
func (o *Oscillator) EffectiveHarmonics() int { return o.effective }

// Waveform returns the rendered waveform.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

func (o *Oscillator) value(phase float64) float64 {
	if o.effective == 0 {
		return 0
	}

	if o.waveform == WaveformSine {
		return math.Sin(phase)
	}

	return Sawtooth(phase, o.effective)
}

func (o *Oscillator) update() {
	o.phaseInc = twoPi * o.frequency / o.sampleRate
	o.effective = o.harmonics

	if o.bandLimit {
		limit := int(math.Floor(0.5 * o.sampleRate / o.frequency))
		o.effective = min(o.harmonics, limit)
	}
}

func validateFrequency(hz float64) error {
	if hz <= 0 || !core.IsFinite(hz) {
		return fmt.Errorf("oscillator frequency must be > 0 and finite: %f", hz)
	}

	return nil
}

func validateHarmonics(n int) error {
	if n < 1 {
		return fmt.Errorf("oscillator harmonics must be >= 1: %d", n)
	}

	return nil
}

func validateWaveform(w Waveform) error {
	if w != WaveformSaw && w != WaveformSine {
		return fmt.Errorf("invalid oscillator waveform: %d", w)
	}

	return nil
}
