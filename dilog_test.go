// ./dilog_test.go
package msis

import (
	"math"
	"testing"
)

func TestDilogDomainEdges(t *testing.T) {
	if got := dilog(0); got != 0 {
		t.Errorf("dilog(0) = %v, want 0", got)
	}
	if got := dilog(1); got != pi2over6 {
		t.Errorf("dilog(1) = %v, want pi^2/6", got)
	}
	// Out-of-domain arguments clamp to the nearest edge instead of feeding
	// the series something it does not converge for.
	if got := dilog(-3); got != 0 {
		t.Errorf("dilog(-3) = %v, want 0", got)
	}
	if got := dilog(1.7); got != pi2over6 {
		t.Errorf("dilog(1.7) = %v, want pi^2/6", got)
	}
}

func TestDilogHalf(t *testing.T) {
	// Li2(1/2) = pi^2/12 - ln(2)^2/2, a classical closed form.
	want := math.Pi*math.Pi/12 - math.Ln2*math.Ln2/2
	got := dilog(0.5)
	if math.Abs(got-want) > 1e-14 {
		t.Errorf("dilog(0.5) = %.16f, want %.16f", got, want)
	}
}

func TestDilogReflection(t *testing.T) {
	// Euler: Li2(x) + Li2(1-x) = pi^2/6 - ln(x)ln(1-x). The reflected
	// branch (x > 1/2) must satisfy the identity against the direct series.
	for _, x := range []float64{0.55, 0.7, 0.9, 0.99} {
		lhs := dilog(x) + dilogSeries(1-x)
		rhs := pi2over6 - math.Log(x)*math.Log(1-x)
		if math.Abs(lhs-rhs) > 1e-13 {
			t.Errorf("reflection identity broken at x=%v: %v != %v", x, lhs, rhs)
		}
	}
}

func TestDilogMonotone(t *testing.T) {
	prev := -1.0
	for x := 0.0; x <= 1.0; x += 0.01 {
		v := dilog(x)
		if v <= prev {
			t.Fatalf("dilog not strictly increasing at x=%v: %v <= %v", x, v, prev)
		}
		prev = v
	}
}
