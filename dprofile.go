// ./dprofile.go
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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vertical density profile.
//
// Each species' number density is built in log space from a reference value
// at a species-specific reference height:
//
//	ln n(z) = ln n_ref + ln(T_ref/T(z))
//	          - (g0/R) Int[ M_eff(zeta)/T(zeta) dzeta, z_ref..z ]
//	          + alpha ln(T_a/T(z))   (thermal diffusion, z above anchor a)
//	          + Chapman term + logistic term
//
// and exponentiated at the end, so a density can underflow to zero at
// extreme altitude but can never go negative. The effective molecular mass
// M_eff is a piecewise-linear profile over at most maxMassNodes altitude
// nodes: pinned to the mean mass of air below the turbopause region and
// relaxing to the species mass above it for the well-mixed species, a
// single constant node for the diffusively separated ones. Because every
// well-mixed species shares the air mass profile below the full-mixing
// altitude, fixed mixing ratios hold there identically.

// maxMassNodes bounds the effective-mass profile length.
const maxMassNodes = 5

// massProfile is a piecewise-linear effective-mass profile. Mass is
// constant below the first node and above the last node.
type massProfile struct {
	n    int
	zeta [maxMassNodes]float64
	mass [maxMassNodes]float64
}

// massTransition are the blend weights of the mean air mass across the
// well-mixed species' node altitudes: fully mixed at 85 km, fully
// diffusively separated at the stitch altitude.
var massTransition = [maxMassNodes]struct {
	zeta    float64
	airFrac float64
}{
	{zetaA, 1.0},
	{95, 0.85},
	{105, 0.55},
	{115, 0.20},
	{zetaB, 0.0},
}

// massProfileFor builds the static effective-mass profile of a species.
func massProfileFor(spec *speciesSpec) massProfile {
	var mp massProfile
	if spec.strategy != stratMixed {
		mp.n = 1
		mp.zeta[0] = zetaB
		mp.mass[0] = spec.mass
		return mp
	}
	mp.n = maxMassNodes
	for i, t := range massTransition {
		mp.zeta[i] = t.zeta
		mp.mass[i] = t.airFrac*meanAirMass + (1-t.airFrac)*spec.mass
	}
	return mp
}

// at evaluates the effective mass at a geopotential height, for any node
// interval, with constant continuation below the first and above the last
// node.
func (mp *massProfile) at(zeta float64) float64 {
	if zeta <= mp.zeta[0] {
		return mp.mass[0]
	}
	last := mp.n - 1
	if zeta >= mp.zeta[last] {
		return mp.mass[last]
	}
	i := 0
	for i < last-1 && zeta >= mp.zeta[i+1] {
		i++
	}
	s := (mp.mass[i+1] - mp.mass[i]) / (mp.zeta[i+1] - mp.zeta[i])
	return mp.mass[i] + s*(zeta-mp.zeta[i])
}

// hydroIntegral computes Int[ M_eff(zeta)/T(zeta) dzeta ] from zref to z
// using the two precomputed integrals of 1/T. On a segment where
// M = M_a + s*(zeta - z_a) the cross term integrates by parts:
//
//	Int[(zeta-z_a)/T] = (q-z_a)Y(q) - (p-z_a)Y(p) - (W(q) - W(p))
//
// with Y and W the first and second integrals of 1/T. The walk splits the
// range at every node boundary so each segment has a single linear mass
// law.
func (mp *massProfile) hydroIntegral(tp *tempProfile, zref, z float64) float64 {
	if z == zref {
		return 0
	}
	a, b, sign := zref, z, 1.0
	if z < zref {
		a, b, sign = z, zref, -1.0
	}

	total := 0.0
	p := a
	for p < b {
		q := b
		// Next node boundary strictly above p caps the segment.
		for i := 0; i < mp.n; i++ {
			if mp.zeta[i] > p && mp.zeta[i] < q {
				q = mp.zeta[i]
				break
			}
		}
		yp, yq := tp.intRecip(p), tp.intRecip(q)
		mid := 0.5 * (p + q)
		switch {
		case mid <= mp.zeta[0] || mp.n == 1:
			total += mp.mass[0] * (yq - yp)
		case mid >= mp.zeta[mp.n-1]:
			total += mp.mass[mp.n-1] * (yq - yp)
		default:
			i := 0
			for i < mp.n-2 && mid >= mp.zeta[i+1] {
				i++
			}
			za := mp.zeta[i]
			s := (mp.mass[i+1] - mp.mass[i]) / (mp.zeta[i+1] - za)
			wp, wq := tp.intRecip2(p), tp.intRecip2(q)
			total += mp.mass[i]*(yq-yp) +
				s*((q-za)*yq-(p-za)*yp-(wq-wp))
		}
		p = q
	}
	return sign * total
}

// densityProfile holds the per-query, per-species profile parameters.
type densityProfile struct {
	spec *speciesSpec
	mp   massProfile

	lnRef float64 // log reference number density at spec.refHeight

	chapAmp    float64 // Chapman term amplitude in log space
	chapHeight float64 // Chapman layer center, km
	chapScale  float64 // Chapman layer scale, km

	logAmp    float64 // logistic term amplitude in log space
	logHeight float64 // logistic transition center, km
	logScale  float64 // logistic transition scale, km
}

// densityProfile projects the basis vector through one species' rows of
// the coefficient table.
func (p *ParameterSet) densityProfile(s Species, gf *[NumBasis]float64) densityProfile {
	spec := &speciesTable[s]
	return densityProfile{
		spec:       spec,
		mp:         massProfileFor(spec),
		lnRef:      floats.Dot(p.row(speciesRow(s, rowLnRef)), gf[:]),
		chapAmp:    floats.Dot(p.row(speciesRow(s, rowChapAmp)), gf[:]),
		chapHeight: floats.Dot(p.row(speciesRow(s, rowChapHeight)), gf[:]),
		chapScale:  floats.Dot(p.row(speciesRow(s, rowChapScale)), gf[:]),
		logAmp:     floats.Dot(p.row(speciesRow(s, rowLogAmp)), gf[:]),
		logHeight:  floats.Dot(p.row(speciesRow(s, rowLogHeight)), gf[:]),
		logScale:   floats.Dot(p.row(speciesRow(s, rowLogScale)), gf[:]),
	}
}

// chapman is the Chapman-layer shape exp(1 - x - exp(-x)): unity at the
// layer center, decaying on both sides. The inner exponential is clamped so
// an extreme argument drives the result to zero instead of NaN.
func chapman(x float64) float64 {
	return math.Exp(1 - x - clampedExp(-x))
}

// logistic is the standard sigmoid with a clamped exponent.
func logistic(x float64) float64 {
	return 1 / (1 + clampedExp(-x))
}

// density returns the species number density at geopotential height zeta,
// in cm^-3. The result is non-negative by construction; underflow to exact
// zero at extreme altitude is an accepted physical outcome.
func (dp *densityProfile) density(zeta float64, tp *tempProfile) float64 {
	if dp.spec.strategy == stratAnomalous {
		// Hot population with a fixed effective temperature: constant
		// scale height plus the logistic transition factor.
		lnn := dp.lnRef -
			hydrostK*dp.spec.mass*(zeta-dp.spec.refHeight)/anomOTemperature
		if dp.logAmp != 0 {
			lnn += dp.logAmp * logistic((zeta-dp.logHeight)/dp.logScale)
		}
		return math.Exp(lnn)
	}

	tref := tp.temperature(dp.spec.refHeight)
	t := tp.temperature(zeta)
	lnn := dp.lnRef + math.Log(tref/t) -
		hydrostK*dp.mp.hydroIntegral(tp, dp.spec.refHeight, zeta)
	if a := dp.spec.alpha; a != 0 {
		// Thermal diffusion acts only in the diffusively separated region;
		// anchoring the term above the mixed region keeps the fixed mixing
		// ratios below it exact.
		anchor := math.Max(dp.spec.refHeight, zetaA)
		if zeta > anchor {
			lnn += a * math.Log(tp.temperature(anchor)/t)
		}
	}
	// The correction terms are tapered to zero at the full-mixing altitude
	// for the well-mixed species, so fixed mixing ratios hold exactly below
	// it no matter what the fitted amplitudes are. The ramp keeps density
	// continuous across zetaF.
	taper := 1.0
	if dp.spec.strategy == stratMixed {
		taper = math.Min(math.Max((zeta-zetaF)/(zetaA-zetaF), 0), 1)
	}
	if dp.chapAmp != 0 {
		lnn += taper * dp.chapAmp * chapman((zeta-dp.chapHeight)/dp.chapScale)
	}
	if dp.logAmp != 0 {
		lnn += taper * dp.logAmp * logistic((zeta-dp.logHeight)/dp.logScale)
	}
	return math.Exp(lnn)
}
