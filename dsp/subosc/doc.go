// Package subosc implements an envelope-driven sub-oscillator.
//
// The Engine reduces each input block to mono, follows its amplitude
// envelope and uses that envelope as the gain curve of a band-limited
// sawtooth. The result is scaled by a post gain and either mixed into every
// output channel or written over one selected channel.
//
// All processing happens in float64. Process32 accepts host float32 buffers
// and converts at the boundary.
package subosc
