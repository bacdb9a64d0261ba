package buffer

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-subosc/dsp/core"
)

var errChannelCount = errors.New("buffer: host channel count does not match block")

// Block stores equal-length channels of float64 samples.
// All channels always share the same length.
type Block struct {
	channels [][]float64
	length   int
}

// New returns a zero-filled Block with the given channel count and length.
// Negative values are treated as 0.
func New(channels, length int) *Block {
	channels = max(channels, 0)
	length = max(length, 0)

	b := &Block{
		channels: make([][]float64, channels),
		length:   length,
	}
	for ch := range b.channels {
		b.channels[ch] = make([]float64, length)
	}
	return b
}

// FromSlices wraps existing channel slices without copying. It returns an
// error if the channels differ in length.
func FromSlices(channels [][]float64) (*Block, error) {
	length := 0
	if len(channels) > 0 {
		length = len(channels[0])
	}
	for ch, s := range channels {
		if len(s) != length {
			return nil, fmt.Errorf("buffer: channel %d has %d samples, want %d", ch, len(s), length)
		}
	}
	return &Block{channels: channels, length: length}, nil
}

// NumChannels returns the channel count.
func (b *Block) NumChannels() int {
	return len(b.channels)
}

// Len returns the per-channel sample count.
func (b *Block) Len() int {
	return b.length
}

// Channel returns the samples of channel ch. It panics if ch is out of range.
func (b *Block) Channel(ch int) []float64 {
	return b.channels[ch]
}

// Slices returns the channel slices. Mutations are visible through the Block.
func (b *Block) Slices() [][]float64 {
	return b.channels
}

// Resize sets the per-channel length to n, reusing capacity when possible.
// Samples beyond the previous length are zeroed.
func (b *Block) Resize(n int) {
	n = max(n, 0)
	for ch, s := range b.channels {
		old := len(s)
		if n <= cap(s) {
			s = s[:n]
		} else {
			grown := make([]float64, n)
			copy(grown, s)
			s = grown
		}
		for i := old; i < n; i++ {
			s[i] = 0
		}
		b.channels[ch] = s
	}
	b.length = n
}

// Zero clears every channel.
func (b *Block) Zero() {
	for _, s := range b.channels {
		for i := range s {
			s[i] = 0
		}
	}
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	out := New(len(b.channels), b.length)
	for ch, s := range b.channels {
		copy(out.channels[ch], s)
	}
	return out
}

// ReadFrom32 resizes the block to the host block length and copies the host
// float32 channels into it. The host must supply exactly NumChannels channels
// of equal length.
func (b *Block) ReadFrom32(host [][]float32) error {
	if len(host) != len(b.channels) {
		return fmt.Errorf("%w: got %d, want %d", errChannelCount, len(host), len(b.channels))
	}

	length := 0
	if len(host) > 0 {
		length = len(host[0])
	}
	for ch, s := range host {
		if len(s) != length {
			return fmt.Errorf("buffer: host channel %d has %d samples, want %d", ch, len(s), length)
		}
	}

	b.Resize(length)
	for ch, s := range host {
		core.Widen(b.channels[ch], s)
	}
	return nil
}

// WriteTo32 copies the block back into host float32 channels of the same shape.
func (b *Block) WriteTo32(host [][]float32) error {
	if len(host) != len(b.channels) {
		return fmt.Errorf("%w: got %d, want %d", errChannelCount, len(host), len(b.channels))
	}
	for ch, s := range host {
		if len(s) != b.length {
			return fmt.Errorf("buffer: host channel %d has %d samples, want %d", ch, len(s), b.length)
		}
		core.Narrow(s, b.channels[ch])
	}
	return nil
}

// Interleave writes the block into dst as frame-interleaved float32 samples,
// the layout audio devices exchange. dst must hold Len()*NumChannels() samples.
func (b *Block) Interleave(dst []float32) error {
	n := len(b.channels)
	if len(dst) != b.length*n {
		return fmt.Errorf("buffer: interleaved length %d, want %d", len(dst), b.length*n)
	}
	for ch, s := range b.channels {
		for i, v := range s {
			dst[i*n+ch] = float32(v)
		}
	}
	return nil
}

// Deinterleave resizes the block to len(src)/NumChannels frames and splits
// frame-interleaved float32 samples into its channels.
func (b *Block) Deinterleave(src []float32) error {
	n := len(b.channels)
	if n == 0 {
		return errChannelCount
	}
	if len(src)%n != 0 {
		return fmt.Errorf("buffer: interleaved length %d is not a multiple of %d channels", len(src), n)
	}
	b.Resize(len(src) / n)
	for ch, s := range b.channels {
		for i := range s {
			s[i] = float64(src[i*n+ch])
		}
	}
	return nil
}
