package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateGolden(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		size int
		opts []Option
		want []float64
	}{
		{name: "rectangular", typ: TypeRectangular, size: 3, want: []float64{1, 1, 1}},
		{name: "hann symmetric", typ: TypeHann, size: 5, want: []float64{0, 0.5, 1, 0.5, 0}},
		{name: "hann periodic", typ: TypeHann, size: 4, opts: []Option{WithPeriodic()}, want: []float64{0, 0.5, 1, 0.5}},
		{name: "blackman-harris ends", typ: TypeBlackmanHarris, size: 3, want: []float64{0.00006, 1, 0.00006}},
		{name: "single sample", typ: TypeHann, size: 1, want: []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.typ, tt.size, tt.opts...)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("w[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerateSymmetry(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeBlackmanHarris} {
		w, err := Generate(typ, 33)
		if err != nil {
			t.Fatalf("Generate(%v) error = %v", typ, err)
		}
		for i := range w {
			if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
				t.Fatalf("%v: w[%d] = %v, w[%d] = %v", typ, i, w[i], len(w)-1-i, w[len(w)-1-i])
			}
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(TypeHann, 0); err == nil {
		t.Fatal("Generate(size 0) error = nil, want error")
	}
	if _, err := Generate(Type(99), 8); err == nil {
		t.Fatal("Generate(unknown type) error = nil, want error")
	}
}

func TestCoherentGain(t *testing.T) {
	tests := []struct {
		typ  Type
		want float64
	}{
		{typ: TypeRectangular, want: 1},
		{typ: TypeHann, want: 0.5},
		{typ: TypeBlackmanHarris, want: 0.35875},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			w, err := Generate(tt.typ, 1024, WithPeriodic())
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			got, err := CoherentGain(w)
			if err != nil {
				t.Fatalf("CoherentGain() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("CoherentGain() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := CoherentGain(nil); !errors.Is(err, errEmptyCoeffs) {
		t.Fatalf("CoherentGain(nil) error = %v, want errEmptyCoeffs", err)
	}
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	samples := []float64{2, 2, 2, 2}
	if err := ApplyCoefficientsInPlace(samples, []float64{0, 0.5, 1, 0.25}); err != nil {
		t.Fatalf("ApplyCoefficientsInPlace() error = %v", err)
	}

	want := []float64{0, 1, 2, 0.5}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}

	if err := ApplyCoefficientsInPlace(samples, []float64{1}); !errors.Is(err, errMismatchedLength) {
		t.Fatalf("mismatched error = %v, want errMismatchedLength", err)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeBlackmanHarris} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v, want %v", typ.String(), got, err, typ)
		}
	}

	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("ParseType(kaiser) error = nil, want error")
	}
}
