package subosc

import (
	"fmt"

	"github.com/cwbudde/algo-subosc/dsp/core"
)

const (
	defaultPitchHz      = 440.0
	defaultPostGain     = 1.0
	defaultAttackMs     = 10.0
	defaultReleaseMs    = 10.0
	defaultHarmonics    = 3
	defaultMaxBlockSize = 1024
	defaultChannels     = 2

	minPitchHz       = 10.0
	maxPitchHz       = 2000.0
	maxPostGainDB    = 6.0
	maxOutputChannel = 10
)

// Option mutates engine construction parameters.
type Option func(*config) error

type config struct {
	pitch           float64
	postGain        float64
	outputChannel   int
	attackMs        float64
	releaseMs       float64
	harmonics       int
	maxBlockSize    int
	channels        int
	continuousPhase bool
}

func defaultConfig() config {
	return config{
		pitch:           defaultPitchHz,
		postGain:        defaultPostGain,
		attackMs:        defaultAttackMs,
		releaseMs:       defaultReleaseMs,
		harmonics:       defaultHarmonics,
		maxBlockSize:    defaultMaxBlockSize,
		channels:        defaultChannels,
		continuousPhase: true,
	}
}

// WithPitch sets the oscillator pitch in Hz, within [10, 2000].
func WithPitch(hz float64) Option {
	return func(cfg *config) error {
		if err := validatePitch(hz); err != nil {
			return err
		}

		cfg.pitch = hz

		return nil
	}
}

// WithPostGain sets the linear output gain, at most +6 dB.
func WithPostGain(linear float64) Option {
	return func(cfg *config) error {
		if err := validatePostGain(linear); err != nil {
			return err
		}

		cfg.postGain = linear

		return nil
	}
}

// WithPostGainDB sets the output gain in dB, at most +6 dB.
func WithPostGainDB(db float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(db) || db > maxPostGainDB {
			return fmt.Errorf("subosc post gain must be finite and <= %.0f dB: %f", maxPostGainDB, db)
		}

		cfg.postGain = core.DBToLinear(db)

		return nil
	}
}

// WithOutputChannel selects the output routing: 0 mixes into every channel,
// n in [1, 10] replaces channel n.
func WithOutputChannel(n int) Option {
	return func(cfg *config) error {
		if err := validateOutputChannel(n); err != nil {
			return err
		}

		cfg.outputChannel = n

		return nil
	}
}

// WithAttack sets the envelope attack time in milliseconds.
func WithAttack(ms float64) Option {
	return func(cfg *config) error {
		if err := validateTime("attack", ms); err != nil {
			return err
		}

		cfg.attackMs = ms

		return nil
	}
}

// WithRelease sets the envelope release time in milliseconds.
func WithRelease(ms float64) Option {
	return func(cfg *config) error {
		if err := validateTime("release", ms); err != nil {
			return err
		}

		cfg.releaseMs = ms

		return nil
	}
}

// WithHarmonics sets the number of sawtooth partials.
func WithHarmonics(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("subosc harmonics must be >= 1: %d", n)
		}

		cfg.harmonics = n

		return nil
	}
}

// WithMaxBlockSize sets the block length scratch buffers are sized for.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) error {
		if err := validateBlockSize(n); err != nil {
			return err
		}

		cfg.maxBlockSize = n

		return nil
	}
}

// WithChannels sets the host channel count Process32 buffers are sized for.
// Process32 blocks with another channel count reallocate once.
func WithChannels(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("subosc channels must be >= 1: %d", n)
		}

		cfg.channels = n

		return nil
	}
}

// WithContinuousPhase selects whether the oscillator phase runs on across
// blocks (the default) or restarts at zero for every block.
func WithContinuousPhase(enable bool) Option {
	return func(cfg *config) error {
		cfg.continuousPhase = enable
		return nil
	}
}

func validatePitch(hz float64) error {
	if !core.IsFinite(hz) || hz < minPitchHz || hz > maxPitchHz {
		return fmt.Errorf("subosc pitch must be in [%.0f, %.0f] Hz: %f", minPitchHz, maxPitchHz, hz)
	}

	return nil
}

func validatePostGain(linear float64) error {
	if !core.IsFinite(linear) || linear < 0 {
		return fmt.Errorf("subosc post gain must be >= 0 and finite: %f", linear)
	}

	if linear > core.DBToLinear(maxPostGainDB) {
		return fmt.Errorf("subosc post gain must be <= %.0f dB: %f", maxPostGainDB, linear)
	}

	return nil
}

func validateOutputChannel(n int) error {
	if n < 0 || n > maxOutputChannel {
		return fmt.Errorf("subosc output channel must be in [0, %d]: %d", maxOutputChannel, n)
	}

	return nil
}

func validateTime(name string, ms float64) error {
	if !core.IsFinite(ms) || ms < 0 {
		return fmt.Errorf("subosc %s must be >= 0 and finite: %f", name, ms)
	}

	return nil
}

func validateBlockSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("subosc max block size must be > 0: %d", n)
	}

	return nil
}
