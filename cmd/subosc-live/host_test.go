package main

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-subosc/dsp/subosc"
)

func encode(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func decode(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

func newTestHost(t *testing.T, opts ...subosc.Option) *duplexHost {
	t.Helper()

	engine, err := subosc.New(48000, opts...)
	if err != nil {
		t.Fatalf("subosc.New() error = %v", err)
	}

	return newDuplexHost(engine, 2, 64)
}

func TestProcessSilenceStaysSilent(t *testing.T) {
	h := newTestHost(t)

	in := encode(make([]float32, 128))
	out := make([]byte, len(in))
	h.process(out, in, 64)

	for i, v := range decode(out) {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
	if env, sub := h.Meter(); env != 0 || sub != 0 {
		t.Fatalf("Meter() = %v, %v, want 0, 0", env, sub)
	}
}

func TestProcessRoutesToSecondChannel(t *testing.T) {
	h := newTestHost(t, subosc.WithOutputChannel(2), subosc.WithAttack(0))

	frames := make([]float32, 128)
	for i := range 64 {
		frames[2*i] = 0.5
		frames[2*i+1] = 0.5
	}

	out := make([]byte, 4*len(frames))
	h.process(out, encode(frames), 64)

	got := decode(out)
	changed := false
	for i := range 64 {
		if got[2*i] != 0.5 {
			t.Fatalf("left frame %d = %v, want 0.5 untouched", i, got[2*i])
		}
		if got[2*i+1] != 0.5 {
			changed = true
		}
	}
	if !changed {
		t.Fatal("right channel unchanged, want sub-oscillator output")
	}

	if env, _ := h.Meter(); math.Abs(env-0.5) > 1e-12 {
		t.Fatalf("envelope = %v, want 0.5", env)
	}
	if h.Errors() != 0 {
		t.Fatalf("Errors() = %d, want 0", h.Errors())
	}
}

func TestProcessShortBufferAnswersSilence(t *testing.T) {
	h := newTestHost(t)

	out := encode([]float32{1, 1, 1, 1})
	h.process(out, make([]byte, 4), 2)

	for i, v := range decode(out) {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
	if h.Errors() != 1 {
		t.Fatalf("Errors() = %d, want 1", h.Errors())
	}
}

func TestProcessDoesNotAllocate(t *testing.T) {
	h := newTestHost(t)
	in := encode(make([]float32, 128))
	out := make([]byte, len(in))

	allocs := testing.AllocsPerRun(50, func() {
		h.process(out, in, 64)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}

func TestMeterLine(t *testing.T) {
	h := newTestHost(t)
	h.envelope.Store(math.Float64bits(1))

	line := h.MeterLine()
	if !strings.Contains(line, "["+strings.Repeat("#", meterWidth)+"]") {
		t.Fatalf("full-scale bar missing: %q", line)
	}
	if !strings.Contains(line, "0.0 dB") || !strings.Contains(line, "-inf dB") {
		t.Fatalf("unexpected levels: %q", line)
	}
}
