// ./spline_test.go
package msis

import (
	"math"
	"testing"
)

func TestFindSpanBrackets(t *testing.T) {
	cases := []struct {
		knots []float64
		k     int
	}{
		{tempKnots[:], 4},
		{tempKnots5, 5},
		{tempKnots6, 6},
	}
	for _, c := range cases {
		for z := 0.0; z < zetaB; z += 0.7 {
			j := findSpan(c.knots, c.k, z)
			if !(c.knots[j] <= z && z < c.knots[j+1]) {
				t.Errorf("order %d: span %d does not bracket z=%v: [%v,%v)",
					c.k, j, z, c.knots[j], c.knots[j+1])
			}
		}
	}
}

func TestCubicPartitionOfUnity(t *testing.T) {
	ones := make([]float64, numTempSpline)
	for i := range ones {
		ones[i] = 1
	}
	for z := 0.0; z <= zetaB; z += 0.25 {
		s := splineValue(tempKnots[:], 4, ones, z)
		if math.Abs(s-1) > 1e-12 {
			t.Errorf("basis sum at z=%v is %v, want 1", z, s)
		}
	}
}

// testCoefficients is an arbitrary smooth coefficient vector standing in
// for a reciprocal-temperature profile.
func testCoefficients() []float64 {
	cf := make([]float64, numTempSpline)
	for i := range cf {
		cf[i] = 1 / (200 + 5*float64(i))
	}
	return cf
}

func TestAntiderivativeOrder5(t *testing.T) {
	cf := testCoefficients()
	wg1 := make([]float64, numTempSpline)
	cumulativeWeights(cf, tempGamma4, wg1)

	// d/dz of the order-5 B-form must reproduce the order-4 spline.
	const h = 1e-5
	for z := 1.0; z < zetaB-1; z += 3.7 {
		want := splineValue(tempKnots[:], 4, cf, z)
		got := (splineValue(tempKnots5, 5, wg1, z+h) -
			splineValue(tempKnots5, 5, wg1, z-h)) / (2 * h)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("order-5 derivative at z=%v: %v, want %v", z, got, want)
		}
	}
}

func TestAntiderivativeOrder6(t *testing.T) {
	cf := testCoefficients()
	wg1 := make([]float64, numTempSpline)
	cumulativeWeights(cf, tempGamma4, wg1)
	wg2 := make([]float64, numTempSpline+1)
	cumulativeWeights(wg1, tempGamma5, wg2[1:])

	const h = 1e-5
	for z := 1.0; z < zetaB-1; z += 3.7 {
		want := splineValue(tempKnots5, 5, wg1, z)
		got := (splineValue(tempKnots6, 6, wg2, z+h) -
			splineValue(tempKnots6, 6, wg2, z-h)) / (2 * h)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("order-6 derivative at z=%v: %v, want %v", z, got, want)
		}
	}
}

func TestContinuityMatrixRoundTrip(t *testing.T) {
	// Setting the last three coefficients from an arbitrary (value, slope,
	// curvature) triple must reproduce exactly that triple at the stitch
	// altitude. Only the last three basis functions are active there, so
	// the remaining coefficients stay zero.
	y := [3]float64{1 / 380.0, -9.7e-5, 2.1e-6}
	cf := make([]float64, numTempSpline)
	for r := 0; r < numTempConstrained; r++ {
		i := numTempSpline - numTempConstrained + r
		cf[i] = continuityMatrix[r][0]*y[0] + continuityMatrix[r][1]*y[1] + continuityMatrix[r][2]*y[2]
	}

	var vals, d1, d2 [4]float64
	j := basisDerivs(tempKnots[:], zetaB, &vals, &d1, &d2)
	var got [3]float64
	for r := 0; r < 4; r++ {
		i := j - 3 + r
		if i < 0 || i >= numTempSpline {
			continue
		}
		got[0] += cf[i] * vals[r]
		got[1] += cf[i] * d1[r]
		got[2] += cf[i] * d2[r]
	}
	for r := 0; r < 3; r++ {
		if math.Abs(got[r]-y[r]) > 1e-12*math.Max(1, math.Abs(y[r])) {
			t.Errorf("derivative %d at stitch: %v, want %v", r, got[r], y[r])
		}
	}
}

func TestBasisDerivsMatchNumeric(t *testing.T) {
	cf := testCoefficients()
	const h = 1e-4
	for z := 5.0; z < zetaB-1; z += 11.3 {
		var vals, d1, d2 [4]float64
		j := basisDerivs(tempKnots[:], z, &vals, &d1, &d2)
		var s0, s1, s2 float64
		for r := 0; r < 4; r++ {
			i := j - 3 + r
			if i < 0 || i >= numTempSpline {
				continue
			}
			s0 += cf[i] * vals[r]
			s1 += cf[i] * d1[r]
			s2 += cf[i] * d2[r]
		}
		v := splineValue(tempKnots[:], 4, cf, z)
		n1 := (splineValue(tempKnots[:], 4, cf, z+h) - splineValue(tempKnots[:], 4, cf, z-h)) / (2 * h)
		n2 := (splineValue(tempKnots[:], 4, cf, z+h) - 2*v + splineValue(tempKnots[:], 4, cf, z-h)) / (h * h)
		if math.Abs(s0-v) > 1e-12 {
			t.Errorf("value at z=%v: %v != %v", z, s0, v)
		}
		if math.Abs(s1-n1) > 1e-6 {
			t.Errorf("first derivative at z=%v: %v != %v", z, s1, n1)
		}
		if math.Abs(s2-n2) > 1e-4 {
			t.Errorf("second derivative at z=%v: %v != %v", z, s2, n2)
		}
	}
}
