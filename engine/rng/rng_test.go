package rng

import "testing"

func TestDeterministic(t *testing.T) {
	r1 := New(42)
	r2 := New(42)

	for i := 0; i < 20; i++ {
		a := r1.Float32()
		b := r2.Float32()
		if a != b {
			t.Fatalf("draw %d: got %v and %v from same seed", i, a, b)
		}
	}
}

func TestFloat32_Range(t *testing.T) {
	r := New(99)

	for i := 0; i < 1000; i++ {
		v := r.Float32()
		if v < 0 || v >= 1 {
			t.Fatalf("draw out of [0,1): got %v", v)
		}
	}
}

func TestRange_Bounds(t *testing.T) {
	r := New(7)

	for i := 0; i < 1000; i++ {
		v := r.Range(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("draw out of [10,20): got %v", v)
		}
	}
}

func TestRange_Degenerate(t *testing.T) {
	r := New(1)

	for i := 0; i < 10; i++ {
		if v := r.Range(5, 5); v != 5 {
			t.Fatalf("degenerate span should return min, got %v", v)
		}
		if v := r.Range(5, 3); v != 5 {
			t.Fatalf("inverted span should return min, got %v", v)
		}
	}
}

func TestIntn_Range(t *testing.T) {
	r := New(3)

	for i := 0; i < 1000; i++ {
		v := r.Intn(4)
		if v < 0 || v > 3 {
			t.Fatalf("draw out of [0,4): got %d", v)
		}
	}
}

func TestPosition_Tracks(t *testing.T) {
	r := New(42)

	if r.Position() != 0 {
		t.Fatalf("expected position 0, got %d", r.Position())
	}

	r.Float32()
	if r.Position() != 1 {
		t.Fatalf("expected position 1, got %d", r.Position())
	}

	r.Range(0, 10)
	r.Intn(6)
	if r.Position() != 3 {
		t.Fatalf("expected position 3, got %d", r.Position())
	}
}

func TestDifferentSeeds_DifferentResults(t *testing.T) {
	r1 := New(1)
	r2 := New(2)

	differs := false
	for i := 0; i < 20; i++ {
		if r1.Float32() != r2.Float32() {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different draws")
	}
}
