package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-subosc/dsp/core"
)

const (
	defaultAttackMs  = 10.0
	defaultReleaseMs = 10.0
)

// FollowerOption mutates follower construction parameters.
type FollowerOption func(*followerConfig) error

type followerConfig struct {
	attackMs  float64
	releaseMs float64
}

func defaultFollowerConfig() followerConfig {
	return followerConfig{
		attackMs:  defaultAttackMs,
		releaseMs: defaultReleaseMs,
	}
}

// WithAttack sets the attack time in milliseconds. Values <= 0 make the
// follower jump to rising input immediately.
func WithAttack(ms float64) FollowerOption {
	return func(cfg *followerConfig) error {
		if !core.IsFinite(ms) {
			return fmt.Errorf("envelope attack must be finite: %f", ms)
		}

		cfg.attackMs = ms

		return nil
	}
}

// WithRelease sets the release time in milliseconds. Values <= 0 make the
// follower drop to falling input immediately.
func WithRelease(ms float64) FollowerOption {
	return func(cfg *followerConfig) error {
		if !core.IsFinite(ms) {
			return fmt.Errorf("envelope release must be finite: %f", ms)
		}

		cfg.releaseMs = ms

		return nil
	}
}

// Follower is a rectifying one-pole envelope follower.
//
// The current level persists across calls, so consecutive blocks form one
// continuous curve. Only Reset returns it to zero. A Follower is owned by a
// single processing thread.
type Follower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64

	attackCoeff  float64
	releaseCoeff float64

	level float64
}

// NewFollower creates a follower for sampleRate with optional time constant
// overrides. Attack and release default to 10 ms.
func NewFollower(sampleRate float64, opts ...FollowerOption) (*Follower, error) {
	if err := core.ValidateSampleRate("envelope", sampleRate); err != nil {
		return nil, err
	}

	cfg := defaultFollowerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Follower{
		sampleRate: sampleRate,
		attackMs:   cfg.attackMs,
		releaseMs:  cfg.releaseMs,
	}
	f.updateCoefficients()

	return f, nil
}

// SetSampleRate updates the sample rate and recalculates both coefficients.
// The current level is kept.
func (f *Follower) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate("envelope", sampleRate); err != nil {
		return err
	}

	f.sampleRate = sampleRate
	f.updateCoefficients()

	return nil
}

// SetAttack sets the attack time in milliseconds.
func (f *Follower) SetAttack(ms float64) error {
	if !core.IsFinite(ms) {
		return fmt.Errorf("envelope attack must be finite: %f", ms)
	}

	f.attackMs = ms
	f.attackCoeff = Coefficient(ms, f.sampleRate)

	return nil
}

// SetRelease sets the release time in milliseconds.
func (f *Follower) SetRelease(ms float64) error {
	if !core.IsFinite(ms) {
		return fmt.Errorf("envelope release must be finite: %f", ms)
	}

	f.releaseMs = ms
	f.releaseCoeff = Coefficient(ms, f.sampleRate)

	return nil
}

// Reset returns the level to zero.
func (f *Follower) Reset() {
	f.level = 0
}

// Process advances the follower by one input sample and returns the new level.
func (f *Follower) Process(sample float64) float64 {
	target := math.Abs(sample)

	coeff := f.releaseCoeff
	if target > f.level {
		coeff = f.attackCoeff
	}

	f.level += coeff * (target - f.level)

	return f.level
}

// FollowInto writes the gain curve for samples into dst using the current
// settings. It does not allocate. len(dst) must equal len(samples); dst and
// samples may alias.
func (f *Follower) FollowInto(dst, samples []float64) {
	if len(dst) != len(samples) {
		panic(fmt.Sprintf("envelope: curve has %d samples, input has %d", len(dst), len(samples)))
	}

	for i, s := range samples {
		dst[i] = f.Process(s)
	}
}

// Follow returns the gain curve for samples, continuing from the level left
// by the previous call.
//
// The time constants and sample rate are applied before processing when
// they differ from the current settings. Non-finite times and non-positive
// sample rates are ignored and keep the previous setting.
func (f *Follower) Follow(samples []float64, attackMs, releaseMs, sampleRate float64) []float64 {
	f.configure(attackMs, releaseMs, sampleRate)

	curve := make([]float64, len(samples))
	f.FollowInto(curve, samples)

	return curve
}

// Level returns the most recently emitted value.
func (f *Follower) Level() float64 { return f.level }

// SampleRate returns the sample rate in Hz.
func (f *Follower) SampleRate() float64 { return f.sampleRate }

// Attack returns the attack time in milliseconds.
func (f *Follower) Attack() float64 { return f.attackMs }

// Release returns the release time in milliseconds.
func (f *Follower) Release() float64 { return f.releaseMs }

// AttackCoeff returns the smoothing coefficient used while the input rises.
func (f *Follower) AttackCoeff() float64 { return f.attackCoeff }

// ReleaseCoeff returns the smoothing coefficient used while the input falls.
func (f *Follower) ReleaseCoeff() float64 { return f.releaseCoeff }

func (f *Follower) configure(attackMs, releaseMs, sampleRate float64) {
	changed := false

	if sampleRate != f.sampleRate && sampleRate > 0 && core.IsFinite(sampleRate) {
		f.sampleRate = sampleRate
		changed = true
	}

	if attackMs != f.attackMs && core.IsFinite(attackMs) {
		f.attackMs = attackMs
		changed = true
	}

	if releaseMs != f.releaseMs && core.IsFinite(releaseMs) {
		f.releaseMs = releaseMs
		changed = true
	}

	if changed {
		f.updateCoefficients()
	}
}

func (f *Follower) updateCoefficients() {
	f.attackCoeff = Coefficient(f.attackMs, f.sampleRate)
	f.releaseCoeff = Coefficient(f.releaseMs, f.sampleRate)
}
