// ./spline.go
package msis

/*
Package msis evaluates an empirical model of the neutral atmosphere.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

// B-spline machinery for the reciprocal-temperature profile.
//
// The vertical temperature parameterization needs three things from its
// spline basis: values of the cubic (order 4) basis functions at a query
// height, values and first two derivatives of the rightmost cubic basis
// functions at the stitch altitude (for the C2 continuity matrix), and exact
// antiderivatives of the spline in B-form (orders 5 and 6) for the two
// integrals of 1/T. All knot vectors are fixed at compile time, so every
// loop below has a fixed trip count.

// maxSplineOrder bounds the B-spline order used anywhere in the package.
const maxSplineOrder = 6

// Extended knot vectors for the antiderivative splines. Integrating a spline
// in B-form raises its order by one and requires one extra knot at the top.
// The order-6 vector additionally carries one phantom knot at the bottom so
// its basis triangle stays within the knot range on the lowest altitude
// span; evaluation accounts for the index shift with a leading zero weight.
var (
	tempKnots5 = extendKnots(tempKnots[:], 157.5)
	tempKnots6 = prependKnot(-25, extendKnots(tempKnots5, 162.5))

	// Knot-span widths (t[i+k] - t[i]) / k entering the cumulative
	// antiderivative weights.
	tempGamma4 = knotGammas(tempKnots[:], 4)
	tempGamma5 = knotGammas(tempKnots5, 5)
)

func extendKnots(knots []float64, top float64) []float64 {
	out := make([]float64, len(knots)+1)
	copy(out, knots)
	out[len(knots)] = top
	return out
}

func prependKnot(bottom float64, knots []float64) []float64 {
	out := make([]float64, len(knots)+1)
	out[0] = bottom
	copy(out[1:], knots)
	return out
}

// knotGammas returns (t[i+k]-t[i])/k for each of the len(knots)-k basis
// functions of order k on the given knots.
func knotGammas(knots []float64, k int) []float64 {
	n := len(knots) - k
	g := make([]float64, n)
	for i := 0; i < n; i++ {
		g[i] = (knots[i+k] - knots[i]) / float64(k)
	}
	return g
}

// findSpan locates the knot interval j with knots[j] <= z < knots[j+1].
// The span is clamped to [k-2, len(knots)-k], the range over which the
// Cox-de Boor triangle of order k only touches existing knots; the profile
// evaluation domain never leaves that range. z exactly at the top of the
// domain lands on the final span and takes the one-sided limit, which for a
// C2 spline with simple knots equals the interior value.
func findSpan(knots []float64, k int, z float64) int {
	lo := k - 2
	hi := len(knots) - k
	if z >= knots[hi] {
		return hi
	}
	if z < knots[lo] {
		return lo
	}
	// Fixed-size knot vectors: a linear scan is branch-predictable and as
	// fast as bisection at this size.
	j := lo
	for j < hi && z >= knots[j+1] {
		j++
	}
	return j
}

// basisTriangle computes the k Cox-de Boor triangle entries of order k on
// span j at z. Entry r corresponds to basis index j-k+1+r; entries whose
// basis index falls outside [0, len(knots)-k) are meaningless and must be
// skipped by the caller. vals must have length >= k.
func basisTriangle(knots []float64, k, j int, z float64, vals []float64) {
	var left, right [maxSplineOrder]float64
	vals[0] = 1
	for order := 1; order < k; order++ {
		left[order] = z - knots[j+1-order]
		right[order] = knots[j+order] - z
		saved := 0.0
		for r := 0; r < order; r++ {
			den := right[r+1] + left[order-r]
			term := vals[r] / den
			vals[r] = saved + right[r+1]*term
			saved = left[order-r] * term
		}
		vals[order] = saved
	}
}

// splineValue evaluates sum(cf[i]*B_{i,k}(z)) for the coefficient slice cf
// defined on the given knots.
func splineValue(knots []float64, k int, cf []float64, z float64) float64 {
	var vals [maxSplineOrder]float64
	j := findSpan(knots, k, z)
	basisTriangle(knots, k, j, z, vals[:k])
	s := 0.0
	for r := 0; r < k; r++ {
		i := j - k + 1 + r
		if i >= 0 && i < len(cf) {
			s += cf[i] * vals[r]
		}
	}
	return s
}

// basisDerivs computes values, first and second derivatives of the cubic
// basis functions active on the span containing z. Entry r corresponds to
// basis index j-3+r for the returned span j. Derivatives follow from the
// order-lowering identity applied to the order-3 and order-2 triangles on
// the same span.
func basisDerivs(knots []float64, z float64, vals, d1, d2 *[4]float64) int {
	j := findSpan(knots, 4, z)
	basisTriangle(knots, 4, j, z, vals[:])

	var v3 [3]float64
	var v2 [2]float64
	basisTriangle(knots, 3, j, z, v3[:])
	basisTriangle(knots, 2, j, z, v2[:])

	// Order-3 entries map to indices j-2..j, order-2 entries to j-1..j.
	b3 := func(i int) float64 {
		r := i - (j - 2)
		if r < 0 || r > 2 || i < 0 || i+3 >= len(knots) {
			return 0
		}
		return v3[r]
	}
	b2 := func(i int) float64 {
		r := i - (j - 1)
		if r < 0 || r > 1 || i < 0 || i+2 >= len(knots) {
			return 0
		}
		return v2[r]
	}
	// First derivative of the order-3 basis function i.
	d3 := func(i int) float64 {
		var a, b float64
		if w := knots[i+2] - knots[i]; w > 0 {
			a = b2(i) / w
		}
		if w := knots[i+3] - knots[i+1]; w > 0 {
			b = b2(i+1) / w
		}
		return 2 * (a - b)
	}
	for r := 0; r < 4; r++ {
		i := j - 3 + r
		if i < 0 || i+4 >= len(knots) {
			vals[r], d1[r], d2[r] = 0, 0, 0
			continue
		}
		var a, b float64
		if w := knots[i+3] - knots[i]; w > 0 {
			a = b3(i) / w
		}
		if w := knots[i+4] - knots[i+1]; w > 0 {
			b = b3(i+1) / w
		}
		d1[r] = 3 * (a - b)

		var da, db float64
		if w := knots[i+3] - knots[i]; w > 0 {
			da = d3(i) / w
		}
		if w := knots[i+4] - knots[i+1]; w > 0 {
			db = d3(i+1) / w
		}
		d2[r] = 3 * (da - db)
	}
	return j
}

// cumulativeWeights converts B-form coefficients of an order-k spline into
// the coefficients of its antiderivative, an order-(k+1) spline on the
// extended knots: C[j] = sum_{i<=j} cf[i]*(t[i+k]-t[i])/k. gamma must come
// from knotGammas(knots, k). The result is written into out, which must have
// the same length as cf.
func cumulativeWeights(cf, gamma, out []float64) {
	run := 0.0
	for i := range cf {
		run += cf[i] * gamma[i]
		out[i] = run
	}
}

// continuityMatrix is the inverse of the 3x3 system linking the last three
// spline coefficients to (value, slope, curvature) of the spline at the
// stitch altitude. Row r of the system holds the r-th derivative of basis
// functions numTempSpline-3..numTempSpline-1 at zetaB; the matrix is a fixed
// property of the knot vector and is computed once at package init.
var continuityMatrix = computeContinuityMatrix()

func computeContinuityMatrix() [3][3]float64 {
	var vals, d1, d2 [4]float64
	j := basisDerivs(tempKnots[:], zetaB, &vals, &d1, &d2)

	var m [3][3]float64
	for col := 0; col < 3; col++ {
		i := numTempSpline - 3 + col
		r := i - (j - 3)
		if r < 0 || r > 3 {
			continue
		}
		m[0][col] = vals[r]
		m[1][col] = d1[r]
		m[2][col] = d2[r]
	}
	return invert3(m)
}

// invert3 inverts a 3x3 matrix by cofactors. The continuity system is well
// conditioned for any simple-knot vector, so no pivoting is needed.
func invert3(m [3][3]float64) [3][3]float64 {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02
	inv := 1.0 / det
	return [3][3]float64{
		{c00 * inv, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv},
		{c01 * inv, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv},
		{c02 * inv, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv},
	}
}
