package subosc

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-subosc/dsp/buffer"
	"github.com/cwbudde/algo-subosc/dsp/core"
	"github.com/cwbudde/algo-subosc/dsp/envelope"
	"github.com/cwbudde/algo-subosc/dsp/gain"
	"github.com/cwbudde/algo-subosc/dsp/mix"
	"github.com/cwbudde/algo-subosc/dsp/osc"
	"github.com/cwbudde/algo-vecmath"
)

// ErrRaggedBlock is returned when the channels of a block differ in length.
var ErrRaggedBlock = errors.New("subosc: channels differ in length")

// Engine renders the envelope-driven sub-oscillator for one stream.
//
// Configuration setters are meant to be called between blocks, never
// concurrently with Process. After New or Initialize, Process does not
// allocate unless a block exceeds the configured maximum block size.
type Engine struct {
	sampleRate      float64
	maxBlockSize    int
	channels        int
	postGain        float64
	routing         mix.Routing
	continuousPhase bool

	follower   *envelope.Follower
	oscillator *osc.Oscillator

	mono  []float64
	curve []float64
	sub   []float64
	last  int

	host *buffer.Block

	envelopePeak float64
	outputPeak   float64
}

// New creates an engine for sampleRate. Defaults: 440 Hz, unity post gain,
// mixed into every channel, 10 ms attack and release, 3 partials, 1024
// sample blocks of 2 channels, continuous phase.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	if err := core.ValidateSampleRate("subosc", sampleRate); err != nil {
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

	follower, err := envelope.NewFollower(sampleRate,
		envelope.WithAttack(cfg.attackMs),
		envelope.WithRelease(cfg.releaseMs),
	)
	if err != nil {
		return nil, err
	}

	oscillator, err := osc.NewOscillator(sampleRate,
		osc.WithFrequency(cfg.pitch),
		osc.WithHarmonics(cfg.harmonics),
	)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		sampleRate:      sampleRate,
		postGain:        cfg.postGain,
		channels:        cfg.channels,
		routing:         mix.Channel(cfg.outputChannel),
		continuousPhase: cfg.continuousPhase,
		follower:        follower,
		oscillator:      oscillator,
	}
	e.allocate(cfg.maxBlockSize)

	return e, nil
}

// Initialize prepares the engine for a new stream: it applies sampleRate,
// sizes scratch buffers for maxBlockSize samples and resets all state.
func (e *Engine) Initialize(sampleRate float64, maxBlockSize int) error {
	if err := core.ValidateSampleRate("subosc", sampleRate); err != nil {
		return err
	}

	if err := validateBlockSize(maxBlockSize); err != nil {
		return err
	}

	if err := e.follower.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := e.oscillator.SetSampleRate(sampleRate); err != nil {
		return err
	}

	e.sampleRate = sampleRate
	e.allocate(maxBlockSize)
	e.Reset()

	return nil
}

// Reset clears the envelope level, the oscillator phase and the meter.
func (e *Engine) Reset() {
	e.follower.Reset()
	e.oscillator.Reset()
	e.envelopePeak = 0
	e.outputPeak = 0
	e.last = 0
}

// Process runs one block in place. channels holds one slice per channel,
// all of the same length. Empty blocks are left alone.
func (e *Engine) Process(channels [][]float64) error {
	if len(channels) == 0 {
		return nil
	}

	n := len(channels[0])
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrRaggedBlock, ch, len(channels[ch]), n)
		}
	}

	if n == 0 {
		return nil
	}

	if n > e.maxBlockSize {
		e.allocate(n)
	}

	mono := e.mono[:n]
	curve := e.curve[:n]
	sub := e.sub[:n]

	mix.ReduceToMonoInto(mono, channels)
	e.follower.FollowInto(curve, mono)

	if !e.continuousPhase {
		e.oscillator.Reset()
	}

	e.oscillator.ProcessInto(sub)
	gain.ApplyGain(sub, curve)
	gain.Scale(sub, e.postGain)

	e.last = n
	e.envelopePeak = vecmath.MaxAbs(curve)
	e.outputPeak = vecmath.MaxAbs(sub)

	mix.Route(channels, sub, e.routing)

	return nil
}

// Process32 runs one block of host float32 channels in place. The samples
// are widened to float64, processed and narrowed back. Buffers are sized at
// construction for the WithChannels count; another channel count, or a
// block above the maximum block size, allocates once.
func (e *Engine) Process32(channels [][]float32) error {
	if len(channels) == 0 {
		return nil
	}

	n := len(channels[0])
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrRaggedBlock, ch, len(channels[ch]), n)
		}
	}

	if e.host.NumChannels() != len(channels) {
		e.channels = len(channels)
		e.host = buffer.New(e.channels, max(n, e.maxBlockSize))
	}

	if err := e.host.ReadFrom32(channels); err != nil {
		return err
	}

	if err := e.Process(e.host.Slices()); err != nil {
		return err
	}

	return e.host.WriteTo32(channels)
}

// SetPitch sets the oscillator pitch in Hz, within [10, 2000].
func (e *Engine) SetPitch(hz float64) error {
	if err := validatePitch(hz); err != nil {
		return err
	}

	return e.oscillator.SetFrequency(hz)
}

// SetPostGain sets the linear output gain, at most +6 dB.
func (e *Engine) SetPostGain(linear float64) error {
	if err := validatePostGain(linear); err != nil {
		return err
	}

	e.postGain = linear

	return nil
}

// SetOutputChannel selects the routing: 0 for every channel, n in [1, 10]
// for channel n alone.
func (e *Engine) SetOutputChannel(n int) error {
	if err := validateOutputChannel(n); err != nil {
		return err
	}

	e.routing = mix.Channel(n)

	return nil
}

// SetAttack sets the envelope attack time in milliseconds.
func (e *Engine) SetAttack(ms float64) error {
	if err := validateTime("attack", ms); err != nil {
		return err
	}

	return e.follower.SetAttack(ms)
}

// SetRelease sets the envelope release time in milliseconds.
func (e *Engine) SetRelease(ms float64) error {
	if err := validateTime("release", ms); err != nil {
		return err
	}

	return e.follower.SetRelease(ms)
}

// SetHarmonics sets the number of sawtooth partials.
func (e *Engine) SetHarmonics(n int) error {
	return e.oscillator.SetHarmonics(n)
}

// Meter returns the peak of the last block's envelope curve and the peak of
// the sub-oscillator signal written to the output.
func (e *Engine) Meter() (envelopePeak, outputPeak float64) {
	return e.envelopePeak, e.outputPeak
}

// SubBlock returns the sub-oscillator signal of the last processed block,
// after the gain curve and post gain and before routing. The slice is
// reused by the next call to Process.
func (e *Engine) SubBlock() []float64 {
	return e.sub[:e.last]
}

// Channels returns the host channel count Process32 buffers are sized for.
func (e *Engine) Channels() int { return e.channels }

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// MaxBlockSize returns the block length scratch buffers are sized for.
func (e *Engine) MaxBlockSize() int { return e.maxBlockSize }

// Pitch returns the oscillator pitch in Hz.
func (e *Engine) Pitch() float64 { return e.oscillator.Frequency() }

// PostGain returns the linear output gain.
func (e *Engine) PostGain() float64 { return e.postGain }

// OutputChannel returns the routing: 0 for every channel, else the 1-based
// channel.
func (e *Engine) OutputChannel() int { return int(e.routing) }

// Attack returns the envelope attack time in milliseconds.
func (e *Engine) Attack() float64 { return e.follower.Attack() }

// Release returns the envelope release time in milliseconds.
func (e *Engine) Release() float64 { return e.follower.Release() }

// Harmonics returns the configured partial count.
func (e *Engine) Harmonics() int { return e.oscillator.Harmonics() }

// EffectiveHarmonics returns the partial count left after band limiting.
func (e *Engine) EffectiveHarmonics() int { return e.oscillator.EffectiveHarmonics() }

// ContinuousPhase reports whether the oscillator phase runs on across blocks.
func (e *Engine) ContinuousPhase() bool { return e.continuousPhase }

func (e *Engine) allocate(n int) {
	e.maxBlockSize = n
	e.mono = core.EnsureLen(e.mono, n)
	e.curve = core.EnsureLen(e.curve, n)
	e.sub = core.EnsureLen(e.sub, n)
	e.last = 0

	// An existing host block grows on its own in ReadFrom32; replacing it
	// here would detach the slices Process32 is working on.
	if e.host == nil || e.host.NumChannels() != e.channels {
		e.host = buffer.New(e.channels, n)
	}
}
