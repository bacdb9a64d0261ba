package osc

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-subosc/internal/testutil"
)

func directSawtooth(phase float64, harmonics int) float64 {
	sum := 0.0
	for n := 1; n <= harmonics; n++ {
		sign := 1.0
		if n%2 == 0 {
			sign = -1
		}
		sum += sign * math.Sin(float64(n)*phase) / float64(n)
	}
	return 2 / math.Pi * sum
}

func TestSawtoothZeroPhase(t *testing.T) {
	for _, h := range []int{1, 2, 3, 10, 50, 200} {
		if v := Sawtooth(0, h); math.Abs(v) > 1e-6 {
			t.Fatalf("Sawtooth(0, %d) = %v, want ~0", h, v)
		}
	}
}

func TestSawtoothQuarterPeriod(t *testing.T) {
	if v := Sawtooth(math.Pi/2, 200); math.Abs(v-0.5) > 0.01 {
		t.Fatalf("Sawtooth(π/2, 200) = %v, want 0.5±0.01", v)
	}

	if v := Sawtooth(-math.Pi/2, 200); math.Abs(v+0.5) > 0.01 {
		t.Fatalf("Sawtooth(-π/2, 200) = %v, want -0.5±0.01", v)
	}
}

func TestSawtoothMoreHarmonicsReduceError(t *testing.T) {
	low := math.Abs(Sawtooth(math.Pi/2, 1) - 0.5)
	high := math.Abs(Sawtooth(math.Pi/2, 50) - 0.5)

	if high >= low {
		t.Fatalf("error with 50 harmonics = %v, want < %v", high, low)
	}
	if high >= 0.1 {
		t.Fatalf("error with 50 harmonics = %v, want < 0.1", high)
	}

	// Even partials vanish at π/2, so compare successive odd counts.
	prev := math.Inf(1)
	for h := 1; h <= 49; h += 2 {
		err := math.Abs(Sawtooth(math.Pi/2, h) - 0.5)
		if err >= prev {
			t.Fatalf("error with %d harmonics = %v, want < %v", h, err, prev)
		}
		prev = err
	}
}

func TestSawtoothSingleHarmonicIsSine(t *testing.T) {
	for _, phase := range []float64{-2, -0.3, 0.7, 1.9, 3} {
		want := 2 / math.Pi * math.Sin(phase)
		if got := Sawtooth(phase, 1); math.Abs(got-want) > 1e-15 {
			t.Fatalf("Sawtooth(%v, 1) = %v, want %v", phase, got, want)
		}
	}
}

func TestSawtoothMatchesDirectSeries(t *testing.T) {
	phases := []float64{-math.Pi, -2.5, -1, -0.01, 0.01, 0.5, 1, math.Pi / 3, 2.9, math.Pi, 5.5}
	for _, h := range []int{1, 2, 3, 7, 16, 64, 200} {
		for _, phase := range phases {
			got := Sawtooth(phase, h)
			want := directSawtooth(phase, h)
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("Sawtooth(%v, %d) = %v, want %v", phase, h, got, want)
			}
		}
	}
}

func TestSawtoothIsOddAndPeriodic(t *testing.T) {
	for _, phase := range []float64{0.2, 1.1, 2.4} {
		a := Sawtooth(phase, 9)
		if b := Sawtooth(-phase, 9); math.Abs(a+b) > 1e-12 {
			t.Fatalf("Sawtooth(-%v) = %v, want %v", phase, b, -a)
		}
		if c := Sawtooth(phase+2*math.Pi, 9); math.Abs(a-c) > 1e-9 {
			t.Fatalf("Sawtooth(%v+2π) = %v, want %v", phase, c, a)
		}
	}
}

func TestSawtoothNonPositiveHarmonics(t *testing.T) {
	if v := Sawtooth(1, 0); v != 0 {
		t.Fatalf("Sawtooth(1, 0) = %v, want 0", v)
	}
	if v := Sawtooth(1, -3); v != 0 {
		t.Fatalf("Sawtooth(1, -3) = %v, want 0", v)
	}
}

func TestSineValues(t *testing.T) {
	// 1 Hz at 4 Hz sample rate hits the crest on the second sample.
	if v := Sine(1, 4, 1); math.Abs(v-1) > 1e-6 {
		t.Fatalf("Sine(1, 4, 1) = %v, want 1", v)
	}
	if v := Sine(1, 4, 0); v != 0 {
		t.Fatalf("Sine(1, 4, 0) = %v, want 0", v)
	}
	if v := Sine(1, 4, 3); math.Abs(v+1) > 1e-6 {
		t.Fatalf("Sine(1, 4, 3) = %v, want -1", v)
	}
}

func TestSineWithGainLength(t *testing.T) {
	curve := []float64{0, 0.5, 1}
	out := SineWithGain(1, 3, curve)
	if len(out) != len(curve) {
		t.Fatalf("len = %d, want %d", len(out), len(curve))
	}
}

func TestSawWithGainLength(t *testing.T) {
	curve := testutil.Ones(5)
	out := SawWithGain(100, 44100, 3, curve)
	if len(out) != len(curve) {
		t.Fatalf("len = %d, want %d", len(out), len(curve))
	}
}

func TestSawWithGainValues(t *testing.T) {
	curve := []float64{1, 0.5, 0.25, 0}
	out := SawWithGain(10, 70, 3, curve)

	for i, g := range curve {
		phase := 2 * math.Pi * 10 * float64(i) / 70
		want := Sawtooth(phase, 3) * g
		if math.Abs(out[i]-want) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestSineWithGainValues(t *testing.T) {
	curve := []float64{1, 2, 3}
	out := SineWithGain(1, 4, curve)
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 2, 0}, 1e-12)
}

func TestWithGainIntoLengthMismatch(t *testing.T) {
	dst := make([]float64, 3)
	curve := make([]float64, 4)

	if err := SawWithGainInto(dst, 100, 48000, 3, curve); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("SawWithGainInto() error = %v, want %v", err, ErrLengthMismatch)
	}
	if err := SineWithGainInto(dst, 100, 48000, curve); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("SineWithGainInto() error = %v, want %v", err, ErrLengthMismatch)
	}
}

func TestStatelessHelpersRestartPhase(t *testing.T) {
	curve := testutil.Ones(7)
	first := SawWithGain(1000, 48000, 3, curve)
	second := SawWithGain(1000, 48000, 3, curve)

	// Each call starts at phase 0, so blocks repeat instead of continuing.
	testutil.RequireSliceNearlyEqual(t, first, second, 0)
	if second[0] != 0 {
		t.Fatalf("second[0] = %v, want 0", second[0])
	}
}
