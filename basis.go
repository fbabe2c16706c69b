// ./basis.go
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

import "math"

// Basis-function expander.
//
// A query's horizontal, temporal and activity dependence is encoded as a
// fixed-length vector of tensor-product terms: associated Legendre
// polynomials in sin(latitude) crossed with Fourier harmonics of day of
// year, local solar time and longitude, plus solar-flux and
// geomagnetic-activity terms. Every profile parameter of the model is the
// dot product of this vector with one row of the coefficient table.
//
// The layout below is a fixed linear ordering of blocks. All offsets are
// compile-time constants; the zero-length array assertions after the block
// table make a miscounted block a compile error rather than a runtime
// bookkeeping check.
const (
	bfZonal  = 0 // P_l^0(sin lat), l = 0..6
	nbfZonal = 7

	bfIntraAnn  = bfZonal + nbfZonal // annual/semiannual x zonal Legendre
	nbfIntraAnn = 28

	bfTide  = bfIntraAnn + nbfIntraAnn // migrating tides, m = 1..3
	nbfTide = 30

	bfTideAnn  = bfTide + nbfTide // intra-annual modulation of the tides
	nbfTideAnn = 120

	bfSPW  = bfTideAnn + nbfTideAnn // stationary planetary waves, s = 1..2
	nbfSPW = 22

	bfSPWAnn  = bfSPW + nbfSPW // intra-annual modulation of the waves
	nbfSPWAnn = 88

	bfSolar  = bfSPWAnn + nbfSPWAnn // solar-flux linear and cross terms
	nbfSolar = 45

	bfGeomag  = bfSolar + nbfSolar // geomagnetic-activity terms
	nbfGeomag = 11

	bfCross  = bfGeomag + nbfGeomag // remaining flux/activity cross terms
	nbfCross = 33

	// NumBasis is the length of the basis vector.
	NumBasis = bfCross + nbfCross
)

// The block layout must tile exactly 384 entries; both arrays have negative
// length otherwise and the package does not compile.
var (
	_ [NumBasis - 384]struct{}
	_ [384 - NumBasis]struct{}
)

// Angular frequencies of the Fourier harmonics.
const (
	degToRad  = math.Pi / 180
	doyToRad  = 2 * math.Pi / 365
	hourToRad = 2 * math.Pi / 24
)

// Geomagnetic-activity response constants: the response grows linearly in
// (Ap - 4) for weak activity and saturates exponentially toward a reduced
// slope for strong activity.
const (
	geomagRate = 0.06
	geomagAmp  = 0.6
	geomagNorm = 40.0
	// refAp is the quiet-time activity index at which the response is zero.
	refAp = 4.0
)

// expClamp bounds the argument of every activity-dependent exponential.
// math.Exp overflows to +Inf near 709; +-700 keeps any intermediate finite
// for arbitrarily extreme index ratios while leaving the physical range
// untouched.
const expClamp = 700.0

// clampedExp is exp with its argument clamped into [-expClamp, expClamp].
func clampedExp(x float64) float64 {
	if x > expClamp {
		x = expClamp
	} else if x < -expClamp {
		x = -expClamp
	}
	return math.Exp(x)
}

// geomagResponse maps the Ap index onto the saturating activity response,
// normalized so a moderate storm (Ap ~ 40) is of order unity and the
// quiet-time reference Ap = 4 maps to exactly zero.
func geomagResponse(ap float64) float64 {
	da := ap - refAp
	r := da + (geomagAmp-1)*(da+(clampedExp(-geomagRate*da)-1)/geomagRate)
	return r / geomagNorm
}

// Switches enables or disables whole basis-function families for
// sensitivity studies. A disabled family contributes exactly zero to every
// profile parameter. The zero value disables everything; use
// DefaultSwitches for the full model.
type Switches struct {
	IntraAnnual    bool // annual/semiannual variation
	Tides          bool // migrating tides (local-time harmonics)
	PlanetaryWaves bool // stationary planetary waves (longitude harmonics)
	SolarFlux      bool // F10.7 dependence
	Geomagnetic    bool // Ap dependence
}

// DefaultSwitches returns the full model with every family enabled.
func DefaultSwitches() Switches {
	return Switches{
		IntraAnnual:    true,
		Tides:          true,
		PlanetaryWaves: true,
		SolarFlux:      true,
		Geomagnetic:    true,
	}
}

// basisContext holds the per-query trigonometric tables. It lives on the
// stack of one evaluation; nothing here survives a call, so repeated
// queries are bit-identical by construction (no shared cache to invalidate).
type basisContext struct {
	plg [7][4]float64 // plg[l][m], associated Legendre at sin(latitude)

	cdoy, sdoy [3]float64 // index n: cos/sin(n * doyToRad * doy), n = 1, 2
	clst, slst [4]float64 // index m: cos/sin(m * hourToRad * lst)
	clon, slon [3]float64 // index s: cos/sin(s * lon)

	dF, dB, g float64
}

// legendre fills plg[l][m] with the associated Legendre polynomials
// P_l^m(x), x = sin(latitude), for l = 0..6 and m = 0..3, by explicit
// closed forms (Ferrers convention, no Condon-Shortley phase). Every m > 0
// entry carries a cos(latitude)^m factor, so all non-zonal terms vanish at
// the poles.
func (bc *basisContext) legendre(latDeg float64) {
	x := math.Sin(latDeg * degToRad)
	s := math.Cos(latDeg * degToRad)
	x2 := x * x
	x3 := x2 * x
	x4 := x2 * x2
	x5 := x4 * x
	x6 := x4 * x2
	s2 := s * s
	s3 := s2 * s

	p := &bc.plg
	p[0][0] = 1
	p[1][0] = x
	p[2][0] = 0.5 * (3*x2 - 1)
	p[3][0] = 0.5 * (5*x3 - 3*x)
	p[4][0] = 0.125 * (35*x4 - 30*x2 + 3)
	p[5][0] = 0.125 * (63*x5 - 70*x3 + 15*x)
	p[6][0] = 0.0625 * (231*x6 - 315*x4 + 105*x2 - 5)

	p[1][1] = s
	p[2][1] = 3 * x * s
	p[3][1] = 1.5 * (5*x2 - 1) * s
	p[4][1] = 2.5 * (7*x3 - 3*x) * s
	p[5][1] = 1.875 * (21*x4 - 14*x2 + 1) * s
	p[6][1] = 2.625 * (33*x5 - 30*x3 + 5*x) * s

	p[2][2] = 3 * s2
	p[3][2] = 15 * x * s2
	p[4][2] = 7.5 * (7*x2 - 1) * s2
	p[5][2] = 52.5 * (3*x3 - x) * s2
	p[6][2] = 13.125 * (33*x4 - 18*x2 + 1) * s2

	p[3][3] = 15 * s3
	p[4][3] = 105 * x * s3
	p[5][3] = 52.5 * (9*x2 - 1) * s3
	p[6][3] = 157.5 * (11*x3 - 3*x) * s3
}

// harmonics fills the day-of-year, local-time and longitude Fourier tables.
// Longitude enters only through trigonometric functions, so no wraparound
// normalization is needed.
func (bc *basisContext) harmonics(doy, lst, lonDeg float64) {
	ad := doyToRad * doy
	for n := 1; n <= 2; n++ {
		bc.cdoy[n] = math.Cos(float64(n) * ad)
		bc.sdoy[n] = math.Sin(float64(n) * ad)
	}
	at := hourToRad * lst
	for m := 1; m <= 3; m++ {
		bc.clst[m] = math.Cos(float64(m) * at)
		bc.slst[m] = math.Sin(float64(m) * at)
	}
	al := degToRad * lonDeg
	for s := 1; s <= 2; s++ {
		bc.clon[s] = math.Cos(float64(s) * al)
		bc.slon[s] = math.Sin(float64(s) * al)
	}
}

// computeBasis expands one query point into the basis vector gf. The result
// is a pure function of the arguments: the context below is rebuilt from
// scratch on every call.
func computeBasis(doy, lst, latDeg, lonDeg, f107a, f107, ap float64, sw Switches, gf *[NumBasis]float64) {
	var bc basisContext
	bc.legendre(latDeg)
	bc.harmonics(doy, lst, lonDeg)

	// Disabled families multiply through as exact zeros, which removes the
	// family and all of its cross terms in one place.
	if sw.SolarFlux {
		bc.dF = f107 - f107a
		bc.dB = f107a - 150
	}
	if sw.Geomagnetic {
		bc.g = geomagResponse(ap)
	}
	iaFac := 0.0
	if sw.IntraAnnual {
		iaFac = 1
	}
	tideFac := 0.0
	if sw.Tides {
		tideFac = 1
	}
	spwFac := 0.0
	if sw.PlanetaryWaves {
		spwFac = 1
	}

	for i := range gf {
		gf[i] = 0
	}

	bc.fillZonal(gf[bfZonal : bfZonal+nbfZonal : bfZonal+nbfZonal])
	bc.fillIntraAnnual(gf[bfIntraAnn:bfIntraAnn+nbfIntraAnn:bfIntraAnn+nbfIntraAnn], iaFac)
	bc.fillTides(gf[bfTide:bfTide+nbfTide:bfTide+nbfTide], tideFac)
	bc.fillTideAnnual(gf[bfTideAnn:bfTideAnn+nbfTideAnn:bfTideAnn+nbfTideAnn], gf[bfTide:bfTide+nbfTide], iaFac)
	bc.fillSPW(gf[bfSPW:bfSPW+nbfSPW:bfSPW+nbfSPW], spwFac)
	bc.fillSPWAnnual(gf[bfSPWAnn:bfSPWAnn+nbfSPWAnn:bfSPWAnn+nbfSPWAnn], gf[bfSPW:bfSPW+nbfSPW], iaFac)
	bc.fillSolar(gf[bfSolar:bfSolar+nbfSolar:bfSolar+nbfSolar], tideFac)
	bc.fillGeomag(gf[bfGeomag:bfGeomag+nbfGeomag:bfGeomag+nbfGeomag], tideFac)
	bc.fillCross(gf[bfCross:bfCross+nbfCross:bfCross+nbfCross], tideFac, spwFac)
}

// fillZonal writes the time-independent block: zonal Legendre polynomials.
func (bc *basisContext) fillZonal(out []float64) {
	for l := 0; l <= 6; l++ {
		out[l] = bc.plg[l][0]
	}
}

// fillIntraAnnual writes the annual and semiannual harmonics crossed with
// the zonal Legendre polynomials.
func (bc *basisContext) fillIntraAnnual(out []float64, fac float64) {
	idx := 0
	for n := 1; n <= 2; n++ {
		for _, f := range [2]float64{bc.cdoy[n], bc.sdoy[n]} {
			for l := 0; l <= 6; l++ {
				out[idx] = fac * f * bc.plg[l][0]
				idx++
			}
		}
	}
}

// fillTides writes the migrating-tide block: local-time harmonics m = 1..3
// (diurnal, semidiurnal, terdiurnal) paired with the order-m associated
// Legendre polynomials.
func (bc *basisContext) fillTides(out []float64, fac float64) {
	idx := 0
	for m := 1; m <= 3; m++ {
		for l := m; l <= 6; l++ {
			out[idx] = fac * bc.clst[m] * bc.plg[l][m]
			out[idx+1] = fac * bc.slst[m] * bc.plg[l][m]
			idx += 2
		}
	}
}

// fillTideAnnual modulates the tide block by the four intra-annual
// harmonics.
func (bc *basisContext) fillTideAnnual(out, tide []float64, fac float64) {
	idx := 0
	for _, f := range [4]float64{bc.cdoy[1], bc.sdoy[1], bc.cdoy[2], bc.sdoy[2]} {
		for _, t := range tide {
			out[idx] = fac * f * t
			idx++
		}
	}
}

// fillSPW writes the stationary-planetary-wave block: longitude harmonics
// s = 1..2 paired with the order-s associated Legendre polynomials.
func (bc *basisContext) fillSPW(out []float64, fac float64) {
	idx := 0
	for s := 1; s <= 2; s++ {
		for l := s; l <= 6; l++ {
			out[idx] = fac * bc.clon[s] * bc.plg[l][s]
			out[idx+1] = fac * bc.slon[s] * bc.plg[l][s]
			idx += 2
		}
	}
}

// fillSPWAnnual modulates the planetary-wave block by the four intra-annual
// harmonics.
func (bc *basisContext) fillSPWAnnual(out, spw []float64, fac float64) {
	idx := 0
	for _, f := range [4]float64{bc.cdoy[1], bc.sdoy[1], bc.cdoy[2], bc.sdoy[2]} {
		for _, w := range spw {
			out[idx] = fac * f * w
			idx++
		}
	}
}

// fillSolar writes the solar-flux block: scalar flux terms, flux-modulated
// zonal and annual terms, and the flux-modulated diurnal tide base.
func (bc *basisContext) fillSolar(out []float64, tideFac float64) {
	out[0] = bc.dF
	out[1] = bc.dF * bc.dF
	out[2] = bc.dB
	out[3] = bc.dB * bc.dB
	out[4] = bc.dF * bc.dB
	idx := 5
	for l := 0; l <= 6; l++ {
		out[idx] = bc.dB * bc.plg[l][0]
		idx++
	}
	for l := 0; l <= 6; l++ {
		out[idx] = bc.dF * bc.plg[l][0]
		idx++
	}
	for _, f := range [2]float64{bc.cdoy[1], bc.sdoy[1]} {
		for l := 0; l <= 6; l++ {
			out[idx] = bc.dB * f * bc.plg[l][0]
			idx++
		}
	}
	for l := 1; l <= 6; l++ {
		out[idx] = tideFac * bc.dB * bc.clst[1] * bc.plg[l][1]
		out[idx+1] = tideFac * bc.dB * bc.slst[1] * bc.plg[l][1]
		idx += 2
	}
}

// fillGeomag writes the geomagnetic-activity block.
func (bc *basisContext) fillGeomag(out []float64, tideFac float64) {
	g := bc.g
	for l := 0; l <= 3; l++ {
		out[l] = g * bc.plg[l][0]
	}
	out[4] = g * g * bc.plg[0][0]
	out[5] = g * g * bc.plg[1][0]
	out[6] = g * bc.cdoy[1]
	out[7] = g * bc.sdoy[1]
	out[8] = tideFac * g * bc.clst[1] * bc.plg[1][1]
	out[9] = tideFac * g * bc.slst[1] * bc.plg[1][1]
	out[10] = g * bc.dB
}

// fillCross writes the remaining flux/activity cross terms with the wave
// and tide bases.
func (bc *basisContext) fillCross(out []float64, tideFac, spwFac float64) {
	idx := 0
	for l := 1; l <= 6; l++ {
		out[idx] = spwFac * bc.dB * bc.clon[1] * bc.plg[l][1]
		out[idx+1] = spwFac * bc.dB * bc.slon[1] * bc.plg[l][1]
		idx += 2
	}
	for l := 1; l <= 6; l++ {
		out[idx] = tideFac * bc.dF * bc.clst[1] * bc.plg[l][1]
		out[idx+1] = tideFac * bc.dF * bc.slst[1] * bc.plg[l][1]
		idx += 2
	}
	for l := 1; l <= 2; l++ {
		out[idx] = spwFac * bc.g * bc.clon[1] * bc.plg[l][1]
		out[idx+1] = spwFac * bc.g * bc.slon[1] * bc.plg[l][1]
		idx += 2
	}
	for l := 0; l <= 2; l++ {
		out[idx] = bc.dB * bc.dB * bc.plg[l][0]
		idx++
	}
	out[idx] = bc.g * bc.dB * bc.plg[0][0]
	out[idx+1] = bc.g * bc.dB * bc.plg[1][0]
}
