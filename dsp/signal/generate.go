package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-subosc/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("sine", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("noise", samples); err != nil {
		return nil, err
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Step generates silence that jumps to a constant amplitude at onsetSec.
func (g *Generator) Step(amplitude, onsetSec float64, samples int) ([]float64, error) {
	if err := g.validate("step", samples); err != nil {
		return nil, err
	}
	if onsetSec < 0 || !core.IsFinite(onsetSec) {
		return nil, fmt.Errorf("step onset must be >= 0 and finite: %f", onsetSec)
	}
	out := make([]float64, samples)
	onset := int(math.Round(onsetSec * g.cfg.SampleRate))
	for i := min(onset, samples); i < samples; i++ {
		out[i] = amplitude
	}
	return out, nil
}

// Burst generates a sine that is gated on for onSec and off for offSec,
// repeating, starting with the on phase. It exercises the attack and release
// of an envelope follower.
func (g *Generator) Burst(freqHz, amplitude, onSec, offSec float64, samples int) ([]float64, error) {
	if onSec <= 0 || !core.IsFinite(onSec) {
		return nil, fmt.Errorf("burst on time must be > 0 and finite: %f", onSec)
	}
	if offSec < 0 || !core.IsFinite(offSec) {
		return nil, fmt.Errorf("burst off time must be >= 0 and finite: %f", offSec)
	}
	out, err := g.Sine(freqHz, amplitude, samples)
	if err != nil {
		return nil, err
	}
	on := max(int(math.Round(onSec*g.cfg.SampleRate)), 1)
	period := on + int(math.Round(offSec*g.cfg.SampleRate))
	for i := range out {
		if i%period >= on {
			out[i] = 0
		}
	}
	return out, nil
}

// Silence generates zeros.
func (g *Generator) Silence(samples int) ([]float64, error) {
	if err := g.validate("silence", samples); err != nil {
		return nil, err
	}
	return make([]float64, samples), nil
}

// Generate renders kind with default shape parameters: freqHz for the tonal
// kinds, a step at the midpoint and 100 ms bursts separated by 100 ms.
func (g *Generator) Generate(kind Kind, freqHz, amplitude float64, samples int) ([]float64, error) {
	switch kind {
	case KindSine:
		return g.Sine(freqHz, amplitude, samples)
	case KindNoise:
		return g.WhiteNoise(amplitude, samples)
	case KindStep:
		return g.Step(amplitude, 0.5*float64(samples)/g.cfg.SampleRate, samples)
	case KindBurst:
		return g.Burst(freqHz, amplitude, 0.1, 0.1, samples)
	case KindSilence:
		return g.Silence(samples)
	default:
		return nil, fmt.Errorf("unknown signal kind: %d", int(kind))
	}
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

func (g *Generator) validate(what string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", what, samples)
	}
	return core.ValidateSampleRate(what, g.cfg.SampleRate)
}
