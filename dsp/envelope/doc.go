// Package envelope tracks the amplitude of an audio signal with a one-pole
// peak follower that has separate attack and release time constants.
//
// The follower rectifies its input and smooths it toward the current target
// with the attack coefficient while the signal rises and the release
// coefficient while it falls. Its output is a non-negative gain curve that
// can drive the level of another signal.
//
// Time constants are settling times: with the fixed 2.2 calibration, a step
// input reaches roughly 90% of its target after the configured time.
package envelope
