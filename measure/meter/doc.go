// Package meter accumulates peak and RMS levels over a stream of blocks.
package meter
