// Package signal generates deterministic sidechain test signals: sines,
// white noise, level steps, gated tone bursts and silence.
package signal
