package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/algo-subosc/dsp/buffer"
	"github.com/cwbudde/algo-subosc/dsp/core"
	"github.com/cwbudde/algo-subosc/dsp/subosc"
)

const meterWidth = 30

// duplexHost adapts the engine to a duplex device callback. The callback
// runs on the audio thread; the meter fields are the only state shared with
// other goroutines.
type duplexHost struct {
	engine   *subosc.Engine
	channels int

	block *buffer.Block
	in    []float32
	out   []float32

	envelope atomic.Uint64
	output   atomic.Uint64
	errors   atomic.Int64
}

func newDuplexHost(engine *subosc.Engine, channels, frames int) *duplexHost {
	return &duplexHost{
		engine:   engine,
		channels: channels,
		block:    buffer.New(channels, frames),
		in:       make([]float32, frames*channels),
		out:      make([]float32, frames*channels),
	}
}

// process matches malgo's data callback: interleaved little-endian float32
// frames in, the same layout out.
func (h *duplexHost) process(pOutput, pInput []byte, frameCount uint32) {
	n := int(frameCount) * h.channels
	if len(pInput) < 4*n || len(pOutput) < 4*n {
		h.errors.Add(1)
		clear(pOutput)
		return
	}

	h.in = ensureLen32(h.in, n)
	h.out = ensureLen32(h.out, n)

	for i := range n {
		h.in[i] = math.Float32frombits(binary.LittleEndian.Uint32(pInput[i*4:]))
	}

	if err := h.render(); err != nil {
		h.errors.Add(1)
		clear(pOutput)
		return
	}

	for i, v := range h.out[:n] {
		binary.LittleEndian.PutUint32(pOutput[i*4:], math.Float32bits(v))
	}
}

func (h *duplexHost) render() error {
	if err := h.block.Deinterleave(h.in); err != nil {
		return err
	}

	if err := h.engine.Process(h.block.Slices()); err != nil {
		return err
	}

	env, sub := h.engine.Meter()
	h.envelope.Store(math.Float64bits(env))
	h.output.Store(math.Float64bits(sub))

	return h.block.Interleave(h.out)
}

// Meter returns the latest envelope and sub-oscillator peaks.
func (h *duplexHost) Meter() (envelope, output float64) {
	return math.Float64frombits(h.envelope.Load()), math.Float64frombits(h.output.Load())
}

// Errors returns how many callbacks were answered with silence.
func (h *duplexHost) Errors() int64 {
	return h.errors.Load()
}

// MeterLine renders the meter as a single terminal line.
func (h *duplexHost) MeterLine() string {
	env, sub := h.Meter()
	return fmt.Sprintf("env %s %6s dB  sub %s %6s dB", bar(env), dbString(env), bar(sub), dbString(sub))
}

func bar(level float64) string {
	filled := int(math.Round(core.Clamp(level, 0, 1) * meterWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", meterWidth-filled) + "]"
}

func dbString(level float64) string {
	db := core.LinearToDB(level)
	if math.IsInf(db, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", db)
}

func ensureLen32(buf []float32, n int) []float32 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float32, n)
}
