// ./constants.go
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

// Physical constants (CODATA 2018 where applicable).
const (
	// gravSurface is the standard surface gravity in m/s^2, the reference
	// acceleration of the geopotential height coordinate.
	gravSurface = 9.80665
	// gasConstant is the universal gas constant in J/(mol K).
	gasConstant = 8.314462618
	// amuGrams is one atomic mass unit in grams.
	amuGrams = 1.66053906660e-24

	// hydrostK converts the hydrostatic integral to a log-density decrement:
	// d(ln n) = -hydrostK * M[g/mol] * dzeta[km] / T[K].
	hydrostK = gravSurface / gasConstant
)

// Vertical structure of the profile model, in km of geopotential height.
const (
	// zetaB is the stitch altitude joining the reciprocal-temperature spline
	// to the analytic Bates profile.
	zetaB = 122.5
	// zetaF is the full-mixing altitude: below it the well-mixed species
	// track bulk air through fixed mixing ratios.
	zetaF = 70.0
	// zetaA is the altitude up to which every species' effective molecular
	// mass equals the mean mass of air.
	zetaA = 85.0
	// zetaGround is the lower boundary of the evaluation domain and the
	// reference height of the well-mixed species.
	zetaGround = 0.0

	// altMax is the highest supported geometric altitude, in km.
	altMax = 1000.0
)

// Reciprocal-temperature spline geometry. The cubic spline has numTempKnots
// knots and numTempSpline coefficients; the last numTempConstrained
// coefficients are fixed by C2 continuity with the Bates profile at zetaB.
const (
	numTempKnots       = 28
	numTempSpline      = numTempKnots - 4 // 24 cubic B-splines
	numTempConstrained = 3
	numTempFree        = numTempSpline - numTempConstrained // 21 fitted
)

// tempKnots is the fixed knot vector of the reciprocal-temperature spline.
// Uniform 5 km spacing through the mesosphere, stretched spacing through the
// lower thermosphere, three phantom knots above the stitch altitude.
var tempKnots = [numTempKnots]float64{
	-15, -10, -5, 0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50,
	55, 60, 65, 70, 75, 80, 85, 92.5, 102.5, 112.5, 122.5,
	132.5, 142.5, 152.5,
}

// Species enumerates the neutral species the model resolves, in the fixed
// order used by the coefficient table and the Output density array.
type Species int

const (
	// SpeciesN2 is molecular nitrogen.
	SpeciesN2 Species = iota
	// SpeciesO2 is molecular oxygen.
	SpeciesO2
	// SpeciesO is atomic oxygen.
	SpeciesO
	// SpeciesHe is helium.
	SpeciesHe
	// SpeciesH is atomic hydrogen.
	SpeciesH
	// SpeciesAr is argon.
	SpeciesAr
	// SpeciesN is atomic nitrogen.
	SpeciesN
	// SpeciesAnomO is the hot anomalous-oxygen population of the upper
	// thermosphere. It is excluded from the total mass density.
	SpeciesAnomO
	// SpeciesNO is nitric oxide.
	SpeciesNO

	// NumSpecies is the number of resolved species.
	NumSpecies = int(SpeciesNO) + 1
)

// String returns the conventional chemical symbol of the species.
func (s Species) String() string {
	switch s {
	case SpeciesN2:
		return "N2"
	case SpeciesO2:
		return "O2"
	case SpeciesO:
		return "O"
	case SpeciesHe:
		return "He"
	case SpeciesH:
		return "H"
	case SpeciesAr:
		return "Ar"
	case SpeciesN:
		return "N"
	case SpeciesAnomO:
		return "O+(an)"
	case SpeciesNO:
		return "NO"
	}
	return "?"
}

// speciesStrategy selects the density-profile machinery for a species.
type speciesStrategy int

const (
	// stratMixed: referenced at the ground, effective mass relaxing from the
	// mean air mass to the species mass through the turbopause.
	stratMixed speciesStrategy = iota
	// stratDiffusive: referenced at the stitch altitude, constant species
	// mass, Chapman and logistic corrections.
	stratDiffusive
	// stratAnomalous: fixed effective-temperature scale height from a high
	// reference altitude (hot oxygen population).
	stratAnomalous
)

// speciesSpec holds the static, parameter-independent description of one
// species.
type speciesSpec struct {
	mass        float64         // molecular mass, g/mol
	alpha       float64         // thermal diffusion exponent
	mixRatio    float64         // volume mixing ratio in fully mixed air
	strategy    speciesStrategy // profile machinery
	refHeight   float64         // reference geopotential height, km
	inMassDens  bool            // contributes to total mass density
	geomagCorr  bool            // logistic amplitude carries activity terms
}

// meanAirMass is the mean molecular mass of fully mixed air, g/mol.
const meanAirMass = 28.96546

// anomOTemperature is the fixed effective temperature of the anomalous
// oxygen population, K.
const anomOTemperature = 4000.0

// anomORefHeight is the reference geopotential height of the anomalous
// oxygen population, km.
const anomORefHeight = 550.0

// speciesTable is the static species catalogue.
var speciesTable = [NumSpecies]speciesSpec{
	SpeciesN2:    {mass: 28.0134, alpha: 0, mixRatio: 0.780848, strategy: stratMixed, refHeight: zetaGround, inMassDens: true},
	SpeciesO2:    {mass: 31.9988, alpha: 0, mixRatio: 0.209476, strategy: stratMixed, refHeight: zetaGround, inMassDens: true},
	SpeciesO:     {mass: 15.999, alpha: 0, strategy: stratDiffusive, refHeight: zetaB, inMassDens: true},
	SpeciesHe:    {mass: 4.0026, alpha: -0.38, mixRatio: 5.24e-6, strategy: stratMixed, refHeight: zetaGround, inMassDens: true},
	SpeciesH:     {mass: 1.00784, alpha: -0.38, strategy: stratDiffusive, refHeight: zetaB, inMassDens: true},
	SpeciesAr:    {mass: 39.948, alpha: 0, mixRatio: 9.332e-3, strategy: stratMixed, refHeight: zetaGround, inMassDens: true},
	SpeciesN:     {mass: 14.0067, alpha: 0, strategy: stratDiffusive, refHeight: zetaB, inMassDens: true},
	SpeciesAnomO: {mass: 15.999, alpha: 0, strategy: stratAnomalous, refHeight: anomORefHeight, inMassDens: false},
	SpeciesNO:    {mass: 30.006, alpha: 0, strategy: stratDiffusive, refHeight: zetaB, inMassDens: true, geomagCorr: true},
}

// Coefficient-table row layout. Each row holds NumBasis fit weights for one
// profile parameter; the scalar parameter value is the dot product of the
// row with the basis vector.
const (
	rowTex        = 0 // exospheric temperature
	rowTb         = 1 // temperature at the stitch altitude
	rowTgb        = 2 // temperature gradient at the stitch altitude
	rowSplineBase = 3 // first of numTempFree spline-coefficient rows

	rowSpeciesBase = rowSplineBase + numTempFree // 24
	rowsPerSpecies = 7

	// Per-species row offsets.
	rowLnRef      = 0 // log reference number density
	rowChapAmp    = 1 // Chapman term amplitude (log space)
	rowChapHeight = 2 // Chapman term center height, km
	rowChapScale  = 3 // Chapman term scale height, km
	rowLogAmp     = 4 // logistic term amplitude (log space)
	rowLogHeight  = 5 // logistic term center height, km
	rowLogScale   = 6 // logistic term scale height, km

	// NumRows is the total number of coefficient-table rows.
	NumRows = rowSpeciesBase + NumSpecies*rowsPerSpecies // 87
)

// speciesRow returns the table row index of the given parameter of species s.
func speciesRow(s Species, offset int) int {
	return rowSpeciesBase + int(s)*rowsPerSpecies + offset
}
