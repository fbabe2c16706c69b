// ./geo.go
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

// surfaceGravity returns the normal gravity at sea level for a geodetic
// latitude in degrees, in cm/s^2, and the matching effective Earth radius
// in km. Both follow the 1967 geodetic reference formula expanded in
// cos(2*lat).
func surfaceGravity(latDeg float64) (gv, reff float64) {
	c2 := math.Cos(2 * latDeg * degToRad)
	gv = 980.616 * (1 - 0.0026373*c2 + 0.0000059*c2*c2)
	reff = 2 * gv / (3.085462e-6 + 2.27e-9*c2) * 1e-5
	return gv, reff
}

// geopotentialHeight converts geometric altitude (km) at a geodetic
// latitude (deg) into geopotential height (km), the vertical coordinate of
// every profile function in this package.
func geopotentialHeight(latDeg, altKm float64) float64 {
	_, reff := surfaceGravity(latDeg)
	return altKm * reff / (altKm + reff)
}
