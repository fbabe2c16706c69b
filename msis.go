// ./msis.go

// Package msis evaluates an empirical model of the temperature and
// composition of the neutral atmosphere, from the ground to the exosphere.
//
// A Model is initialized once from a binary coefficient table (or the
// built-in climatology) and is then immutable: Evaluate performs no writes
// to shared state, so a single Model may be used concurrently from any
// number of goroutines.
//
// For one query point, Evaluate expands the location, time, solar-flux and
// geomagnetic-activity inputs into a vector of basis functions, projects
// the coefficient table onto it to obtain the vertical-profile parameters,
// and reconstructs temperature and the number densities of nine neutral
// species along the vertical coordinate, together with the total mass
// density.
package msis

/*
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
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrParmFile is returned when the coefficient table cannot be loaded:
// missing file, bad magic, unsupported version, dimension mismatch or
// truncation. It is recoverable; the caller may retry with another path.
var ErrParmFile = errors.New("parameter file error")

// ErrInputRange is returned when a query input other than altitude is
// outside its documented domain.
var ErrInputRange = errors.New("input outside valid range")

// ErrAltitudeRange is returned when the query altitude is outside the
// vertical domain of the model.
var ErrAltitudeRange = errors.New("altitude outside model range")

// ErrProfileParams is returned when the projected temperature-profile
// parameters are unphysical (Tex <= Tb, Tb <= 0 or Tgb <= 0), which
// indicates a corrupt or incompatible coefficient table.
var ErrProfileParams = errors.New("unphysical temperature profile parameters")

// SpeciesMask selects which species densities Evaluate computes. Species
// not in the mask report zero density and are skipped entirely, including
// their contribution to the total mass density.
type SpeciesMask uint16

// MaskAll selects every species.
const MaskAll SpeciesMask = 1<<NumSpecies - 1

// Mask builds a SpeciesMask from a list of species.
func Mask(species ...Species) SpeciesMask {
	var m SpeciesMask
	for _, s := range species {
		m |= 1 << s
	}
	return m
}

// Has reports whether the mask selects species s.
func (m SpeciesMask) Has(s Species) bool {
	return m&(1<<s) != 0
}

// Input is one query point.
type Input struct {
	// DayOfYear is the day of year, 1..366. Fractional days are accepted;
	// the fraction shifts the seasonal phase only, not the local time.
	DayOfYear float64
	// UTSeconds is universal time in seconds of day. It is used only to
	// derive local solar time when LST is negative.
	UTSeconds float64
	// AltKm is geodetic altitude in km, 0..1000.
	AltKm float64
	// LatDeg is geodetic latitude in degrees, -90..90.
	LatDeg float64
	// LonDeg is geodetic longitude in degrees. Any value is accepted and
	// wrapped by the longitude harmonics.
	LonDeg float64
	// LST is local solar time in hours, 0..24. A negative value derives it
	// from UTSeconds and LonDeg as UT/3600 + lon/15.
	LST float64
	// F107A is the 81-day centered average of the F10.7 solar radio flux,
	// in solar flux units. Must be positive.
	F107A float64
	// F107 is the previous-day F10.7 flux, in solar flux units. Must be
	// positive.
	F107 float64
	// Ap is the daily geomagnetic activity index. Must be non-negative.
	Ap float64
}

// Output is the result of one query.
type Output struct {
	// Temperature is the neutral temperature at the query altitude, K.
	Temperature float64
	// ExosphericTemperature is the asymptotic temperature of the upper
	// thermosphere for this query, K.
	ExosphericTemperature float64
	// Densities holds the species number densities in cm^-3, indexed by
	// Species. Entries not selected by the mask are zero.
	Densities [NumSpecies]float64
	// MassDensity is the total mass density in g/cm^3, summed over the
	// selected species. Anomalous oxygen is excluded by convention.
	MassDensity float64
}

// Model is an initialized, immutable instance of the atmosphere model.
type Model struct {
	parms    *ParameterSet
	switches Switches
	log      *zap.Logger

	useDefaults bool // set by WithDefaultParameters before loading
}

// Option configures a Model during New.
type Option func(*Model)

// WithSwitches overrides the basis-function family switches. Disabled
// families contribute exactly zero to every profile parameter.
func WithSwitches(sw Switches) Option {
	return func(m *Model) { m.switches = sw }
}

// WithLogger attaches a structured logger. Without it the model is silent.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) { m.log = log }
}

// WithDefaultParameters selects the built-in coefficient table instead of
// loading one from disk. The path argument of New is ignored.
func WithDefaultParameters() Option {
	return func(m *Model) { m.useDefaults = true }
}

// New initializes the model from a binary coefficient table and returns an
// immutable Model.
//
// Parameters:
//   - path: Path to the coefficient table. A ".gz" suffix loads through a
//     gzip reader. Ignored when WithDefaultParameters is given.
//   - opts: Optional configuration (switches, logger, built-in table).
//
// Returns:
//   - *Model: Pointer to the initialized model on success, nil on failure.
//   - error: ErrParmFile-wrapped error if the table cannot be loaded or is
//     malformed. Check with errors.Is.
func New(path string, opts ...Option) (*Model, error) {
	m := &Model{
		switches: DefaultSwitches(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.useDefaults {
		m.parms = DefaultParameters()
		m.log.Info("using built-in coefficient table")
		return m, nil
	}
	p, err := LoadParameters(path)
	if err != nil {
		return nil, err
	}
	m.parms = p
	m.log.Info("loaded coefficient table",
		zap.String("path", path),
		zap.Uint32("version", p.Version()))
	return m, nil
}

// Parameters returns the coefficient table the model was initialized with.
func (m *Model) Parameters() *ParameterSet {
	return m.parms
}

// validate checks the query inputs against their documented domains.
func validate(in Input) error {
	if in.AltKm < zetaGround || in.AltKm > altMax {
		return fmt.Errorf("%w: %.2f km (valid %g..%g)", ErrAltitudeRange, in.AltKm, zetaGround, altMax)
	}
	if in.LatDeg < -90 || in.LatDeg > 90 {
		return fmt.Errorf("%w: latitude %.2f", ErrInputRange, in.LatDeg)
	}
	if in.DayOfYear < 1 || in.DayOfYear > 366 {
		return fmt.Errorf("%w: day of year %.2f", ErrInputRange, in.DayOfYear)
	}
	if in.F107A <= 0 || in.F107 <= 0 {
		return fmt.Errorf("%w: F10.7a=%.1f F10.7=%.1f (must be positive)", ErrInputRange, in.F107A, in.F107)
	}
	if in.Ap < 0 {
		return fmt.Errorf("%w: Ap %.1f", ErrInputRange, in.Ap)
	}
	return nil
}

// localSolarTime resolves the effective local solar time of a query,
// wrapped into [0, 24).
func localSolarTime(in Input) float64 {
	lst := in.LST
	if lst < 0 {
		lst = in.UTSeconds/3600 + in.LonDeg/15
	}
	lst = math.Mod(lst, 24)
	if lst < 0 {
		lst += 24
	}
	return lst
}

// Evaluate computes temperature and composition at one query point.
//
// Parameters:
//   - in: The query point. See the Input field documentation for units and
//     domains.
//   - mask: Species selection. Use MaskAll for every species.
//
// Returns:
//   - Output: Temperature at altitude, exospheric temperature, selected
//     species number densities and the total mass density.
//   - error: ErrAltitudeRange or ErrInputRange on a domain violation,
//     ErrProfileParams on an unphysical coefficient table. Check with
//     errors.Is.
//
// Evaluate touches no mutable state and is safe for concurrent use.
func (m *Model) Evaluate(in Input, mask SpeciesMask) (Output, error) {
	var out Output
	if err := validate(in); err != nil {
		return out, err
	}

	lst := localSolarTime(in)
	var gf [NumBasis]float64
	computeBasis(in.DayOfYear, lst, in.LatDeg, in.LonDeg,
		in.F107A, in.F107, in.Ap, m.switches, &gf)

	tp, err := m.parms.tempProfile(&gf)
	if err != nil {
		return out, err
	}

	zeta := geopotentialHeight(in.LatDeg, in.AltKm)
	out.Temperature = tp.temperature(zeta)
	out.ExosphericTemperature = tp.tex

	for s := Species(0); int(s) < NumSpecies; s++ {
		if !mask.Has(s) {
			continue
		}
		dp := m.parms.densityProfile(s, &gf)
		n := dp.density(zeta, &tp)
		out.Densities[s] = n
		if speciesTable[s].inMassDens {
			out.MassDensity += n * speciesTable[s].mass * amuGrams
		}
	}
	return out, nil
}

// Temperature computes only the neutral temperature at one query point.
// It is equivalent to Evaluate with an empty species mask.
func (m *Model) Temperature(in Input) (float64, error) {
	out, err := m.Evaluate(in, 0)
	return out.Temperature, err
}
