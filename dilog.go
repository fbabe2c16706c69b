// ./dilog.go
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

// pi2over6 is Li2(1), the limiting value of the dilogarithm at the upper
// edge of its domain here.
const pi2over6 = math.Pi * math.Pi / 6

// dilogTol terminates the power series once a term falls below this
// relative size; with the reflection below the series argument never
// exceeds 1/2, so convergence is geometric.
const dilogTol = 1e-16

// dilogMaxTerms caps the series loop. 60 terms of (1/2)^k/k^2 are already
// past double precision; the cap only exists to keep the loop bounded.
const dilogMaxTerms = 64

// dilog evaluates the dilogarithm Li2(x) on the closed interval [0, 1].
//
// The engine needs Li2 only for arguments of the form (Tex-Tb)/Tex, which a
// valid temperature profile keeps inside (0, 1). Inputs outside [0, 1] are
// clamped to the nearest domain edge before the series is invoked, so the
// function returns the defined limiting value (0 or pi^2/6) instead of
// feeding the series an argument it does not converge for. Arguments above
// 1/2 are reflected through the Euler identity
// Li2(x) = pi^2/6 - ln(x)*ln(1-x) - Li2(1-x) to keep the series fast.
func dilog(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return pi2over6
	}
	if x > 0.5 {
		return pi2over6 - math.Log(x)*math.Log(1-x) - dilogSeries(1-x)
	}
	return dilogSeries(x)
}

// dilogSeries sums Li2(x) = sum x^k / k^2 for 0 < x <= 1/2.
func dilogSeries(x float64) float64 {
	sum := x
	term := x
	for k := 2; k <= dilogMaxTerms; k++ {
		term *= x
		dk := term / float64(k*k)
		sum += dk
		if dk < dilogTol*sum {
			break
		}
	}
	return sum
}
