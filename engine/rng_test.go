package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Float64()
		b := rng2.Float64()
		if a != b {
			t.Fatalf("draw %d: got %v and %v from same seed", i, a, b)
		}
	}
}

func TestRNG_Float64_Range(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		f := rng.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("sample out of range [0,1): got %v", f)
		}
	}
}

func TestRNG_Position(t *testing.T) {
	rng := NewRNG(7)
	if rng.Position() != 0 {
		t.Fatalf("fresh RNG position = %d, want 0", rng.Position())
	}
	rng.Float64()
	rng.Float64()
	rng.Float64()
	if rng.Position() != 3 {
		t.Errorf("position = %d, want 3", rng.Position())
	}
	if rng.Seed() != 7 {
		t.Errorf("seed = %d, want 7", rng.Seed())
	}
}
