package testutil

import "testing"

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestStep(t *testing.T) {
	s := Step(0, 1, 2, 4)
	want := []float64{0, 0, 1, 1}
	RequireSliceNearlyEqual(t, s, want, 0)
}

func TestChannelsAreIndependent(t *testing.T) {
	chs := Channels(2, Ones(3))
	chs[0][0] = 5
	if chs[1][0] != 1 {
		t.Fatal("Channels should copy data per channel")
	}
}
