package features

import (
	"math"
	"testing"
)

func TestSimpleReturnsLength(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 110}
	rets := SimpleReturns(closes)
	if len(rets) != len(closes)-1 {
		t.Fatalf("expected %d returns, got %d", len(closes)-1, len(rets))
	}
	want := []float64{0.02, -0.00980392156862745, 0.0396039603960396, 0.0476190476190476}
	for i := range want {
		if math.Abs(rets[i]-want[i]) > 1e-12 {
			t.Fatalf("ret[%d]=%v want %v", i, rets[i], want[i])
		}
	}
	if SimpleReturns([]float64{1}) != nil {
		t.Fatalf("expected nil for single close")
	}
}

func TestTail(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	if got := Tail(xs, 2); len(got) != 2 || got[0] != 3 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := Tail(xs, 10); len(got) != 4 {
		t.Fatalf("expected whole slice, got %v", got)
	}
	if Tail(xs, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestMeanAndPStdev(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if Mean(xs) != 5 {
		t.Fatalf("mean=%v", Mean(xs))
	}
	if PStdev(xs) != 2 {
		t.Fatalf("pstdev=%v", PStdev(xs))
	}
	if Mean(nil) != 0 || PStdev(nil) != 0 {
		t.Fatalf("empty window should be zero")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(1.7, 0, 1) != 1 || Clamp(-0.2, 0, 1) != 0 || Clamp(0.4, 0, 1) != 0.4 {
		t.Fatalf("clamp mismatch")
	}
}
