package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-subosc/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise[%d] = %v, want within [-1, 1]", i, n1[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestStep(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	out, err := g.Step(0.8, 0.004, 8)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	for i, v := range out {
		want := 0.0
		if i >= 4 {
			want = 0.8
		}
		if v != want {
			t.Fatalf("out[%d]=%v, want %v", i, v, want)
		}
	}

	late, err := g.Step(1, 1, 8)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	for i, v := range late {
		if v != 0 {
			t.Fatalf("late[%d]=%v, want 0", i, v)
		}
	}

	if _, err := g.Step(1, -1, 8); err == nil {
		t.Fatal("Step(negative onset) error = nil, want error")
	}
}

func TestBurstGating(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	out, err := g.Burst(250, 1, 0.004, 0.004, 16)
	if err != nil {
		t.Fatalf("Burst() error = %v", err)
	}

	for i, v := range out {
		gated := i%8 >= 4
		if gated && v != 0 {
			t.Fatalf("out[%d]=%v, want 0 in the off phase", i, v)
		}
	}
	if math.Abs(out[1]-1) > 1e-12 || math.Abs(out[9]-1) > 1e-12 {
		t.Fatalf("on phase peaks = %v, %v, want 1", out[1], out[9])
	}

	if _, err := g.Burst(250, 1, 0, 0.1, 16); err == nil {
		t.Fatal("Burst(zero on time) error = nil, want error")
	}
}

func TestSilence(t *testing.T) {
	out, err := NewGenerator().Silence(4)
	if err != nil {
		t.Fatalf("Silence() error = %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d]=%v, want 0", i, v)
		}
	}
}

func TestGenerateKinds(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(8000))
	for _, k := range []Kind{KindSine, KindNoise, KindStep, KindBurst, KindSilence} {
		t.Run(k.String(), func(t *testing.T) {
			out, err := g.Generate(k, 100, 0.5, 4000)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(out) != 4000 {
				t.Fatalf("len = %d, want 4000", len(out))
			}
			for i, v := range out {
				if math.Abs(v) > 0.5+1e-12 {
					t.Fatalf("out[%d]=%v exceeds amplitude", i, v)
				}
			}
		})
	}

	if _, err := g.Generate(Kind(42), 100, 1, 10); err == nil {
		t.Fatal("Generate(unknown) error = nil, want error")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindSine, KindNoise, KindStep, KindBurst, KindSilence} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v, want %v", k.String(), got, err, k)
		}
	}
	if _, err := ParseKind("square"); err == nil {
		t.Fatal("ParseKind(square) error = nil, want error")
	}
}

func TestValidation(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Sine(100, 1, 0); err == nil {
		t.Fatal("Sine(0 samples) error = nil, want error")
	}
	if _, err := g.WhiteNoise(-1, 8); err == nil {
		t.Fatal("WhiteNoise(negative amplitude) error = nil, want error")
	}
	if _, err := g.Step(1, math.NaN(), 8); err == nil {
		t.Fatal("Step(NaN onset) error = nil, want error")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}
	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("Normalize(nil) error = nil, want error")
	}
}
