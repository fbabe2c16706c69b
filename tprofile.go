// ./tprofile.go
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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vertical temperature profile.
//
// Below the stitch altitude zetaB the temperature is the reciprocal of a
// cubic B-spline over the fixed knot vector; above it an analytic Bates
// profile rises from the boundary temperature Tb toward the exospheric
// asymptote Tex with shape sigma = Tgb/(Tex-Tb). The last three spline
// coefficients are not free parameters: they are solved from the continuity
// matrix so that 1/T and its first two derivatives match the Bates side
// exactly at zetaB.
//
// The two antiderivatives of 1/T needed by the hydrostatic density integral
// are carried alongside: B-form weighted sums below zetaB, closed forms
// (logarithm, dilogarithm) above, anchored so both integrals are zero at
// zetaB and continuous everywhere.
type tempProfile struct {
	cf    [numTempSpline]float64 // B-spline coefficients of 1/T
	tex   float64                // exospheric temperature, K
	tb    float64                // temperature at zetaB, K
	tgb   float64                // temperature gradient at zetaB, K/km
	sigma float64                // Bates shape factor, 1/km

	// Antiderivative weights: wg1 is the order-5 B-form of the first
	// integral of 1/T; wg2 is the order-6 B-form of its integral, shifted
	// by one index for the phantom bottom knot of tempKnots6.
	wg1 [numTempSpline]float64
	wg2 [numTempSpline + 1]float64

	// Integration constants. rawYB and rawWB anchor the spline-side
	// antiderivatives at zetaB; dilogB carries the Bates-side dilogarithm
	// constant Li2((Tex-Tb)/Tex).
	rawYB  float64
	rawWB  float64
	dilogB float64
}

// tempProfile projects the basis vector through the temperature rows of the
// coefficient table and assembles the profile. Parameter sets that imply
// Tex <= Tb, Tb <= 0 or a non-positive boundary gradient cannot describe an
// atmosphere and violate the caller contract.
func (p *ParameterSet) tempProfile(gf *[NumBasis]float64) (tempProfile, error) {
	var tp tempProfile
	tp.tex = floats.Dot(p.row(rowTex), gf[:])
	tp.tb = floats.Dot(p.row(rowTb), gf[:])
	tp.tgb = floats.Dot(p.row(rowTgb), gf[:])

	if tp.tb <= 0 || tp.tex <= tp.tb || tp.tgb <= 0 {
		return tp, fmt.Errorf("%w: Tex=%.2f Tb=%.2f Tgb=%.3f", ErrProfileParams, tp.tex, tp.tb, tp.tgb)
	}
	tp.sigma = tp.tgb / (tp.tex - tp.tb)

	for i := 0; i < numTempFree; i++ {
		tp.cf[i] = floats.Dot(p.row(rowSplineBase+i), gf[:])
	}

	// C2 continuity: value, slope and curvature of 1/T at zetaB follow
	// from the Bates side, then the continuity matrix yields the three
	// constrained spline coefficients.
	y0 := 1 / tp.tb
	y1 := -tp.tgb / (tp.tb * tp.tb)
	y2 := tp.sigma*tp.tgb/(tp.tb*tp.tb) + 2*tp.tgb*tp.tgb/(tp.tb*tp.tb*tp.tb)
	for r := 0; r < numTempConstrained; r++ {
		i := numTempSpline - numTempConstrained + r
		tp.cf[i] = continuityMatrix[r][0]*y0 + continuityMatrix[r][1]*y1 + continuityMatrix[r][2]*y2
	}

	cumulativeWeights(tp.cf[:], tempGamma4, tp.wg1[:])
	tp.wg2[0] = 0
	cumulativeWeights(tp.wg1[:], tempGamma5, tp.wg2[1:])

	tp.rawYB = splineValue(tempKnots5, 5, tp.wg1[:], zetaB)
	tp.rawWB = splineValue(tempKnots6, 6, tp.wg2[:], zetaB)
	tp.dilogB = dilog((tp.tex - tp.tb) / tp.tex)
	return tp, nil
}

// temperature returns T at geopotential height zeta (km).
func (tp *tempProfile) temperature(zeta float64) float64 {
	if zeta < zetaB {
		return 1 / splineValue(tempKnots[:], 4, tp.cf[:], zeta)
	}
	u := zeta - zetaB
	return tp.tex - (tp.tex-tp.tb)*clampedExp(-tp.sigma*u)
}

// intRecip returns the first integral of 1/T from zetaB to zeta, in km/K.
// Negative below zetaB. Continuous and C1 across the stitch altitude.
func (tp *tempProfile) intRecip(zeta float64) float64 {
	if zeta < zetaB {
		return splineValue(tempKnots5, 5, tp.wg1[:], zeta) - tp.rawYB
	}
	u := zeta - zetaB
	t := tp.tex - (tp.tex-tp.tb)*clampedExp(-tp.sigma*u)
	return (math.Log(t/tp.tb) + tp.sigma*u) / (tp.sigma * tp.tex)
}

// intRecip2 returns the second integral: the integral of intRecip from
// zetaB to zeta, in km^2/K. The analytic side carries the dilogarithm of
// x(u) = ((Tex-Tb)/Tex) * exp(-sigma*u), which stays inside [0, 1) for any
// valid profile.
func (tp *tempProfile) intRecip2(zeta float64) float64 {
	if zeta < zetaB {
		return splineValue(tempKnots6, 6, tp.wg2[:], zeta) - tp.rawWB -
			tp.rawYB*(zeta-zetaB)
	}
	u := zeta - zetaB
	x := (tp.tex - tp.tb) / tp.tex * clampedExp(-tp.sigma*u)
	return (math.Log(tp.tex/tp.tb)*u + 0.5*tp.sigma*u*u +
		(dilog(x)-tp.dilogB)/tp.sigma) / (tp.sigma * tp.tex)
}
