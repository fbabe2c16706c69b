// ./parms.go
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// Coefficient-table file format: an 8-byte magic, three uint32 header
// fields (version, rows, columns) and rows*columns float64 values in
// row-major order, all little-endian. A ".gz" path suffix selects gzip
// transport around the same stream.
const (
	parmMagic   = "GOMSISPM"
	parmVersion = 1
)

// ParameterSet is an immutable coefficient table: one row of NumBasis fit
// weights per profile parameter. A loaded set is never modified after
// initialization, so a single set may be shared by any number of
// goroutines.
type ParameterSet struct {
	version uint32
	data    []float64 // NumRows x NumBasis, row-major
}

// Version returns the format version the table was loaded with.
func (p *ParameterSet) Version() uint32 {
	return p.version
}

// row returns the weight row of one profile parameter.
func (p *ParameterSet) row(i int) []float64 {
	return p.data[i*NumBasis : (i+1)*NumBasis]
}

// LoadParameters reads a coefficient table from a file. A ".gz" suffix
// loads through a gzip reader. All failures are reported as recoverable
// errors wrapping ErrParmFile.
func LoadParameters(path string) (*ParameterSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParmFile, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParmFile, path, err)
		}
		defer zr.Close()
		r = zr
	}
	p, err := ReadParameters(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ReadParameters decodes a coefficient table from a raw (uncompressed)
// stream.
func ReadParameters(r io.Reader) (*ParameterSet, error) {
	var magic [len(parmMagic)]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: reading magic: %v", ErrParmFile, err)
	}
	if string(magic[:]) != parmMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrParmFile, string(magic[:]))
	}
	version, err := getUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading version: %v", ErrParmFile, err)
	}
	if version != parmVersion {
		return nil, fmt.Errorf("%w: unsupported version %d (want %d)", ErrParmFile, version, parmVersion)
	}
	rows, err := getUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading row count: %v", ErrParmFile, err)
	}
	cols, err := getUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading column count: %v", ErrParmFile, err)
	}
	if rows != uint32(NumRows) || cols != NumBasis {
		return nil, fmt.Errorf("%w: table is %dx%d, want %dx%d",
			ErrParmFile, rows, cols, NumRows, NumBasis)
	}
	data := make([]float64, NumRows*NumBasis)
	if err := getFloat64Slice(r, data); err != nil {
		return nil, fmt.Errorf("%w: reading %d coefficients: %v",
			ErrParmFile, len(data), err)
	}
	return &ParameterSet{version: version, data: data}, nil
}

// countWriter tracks bytes written for the io.WriterTo contract.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(b []byte) (int, error) {
	n, err := cw.w.Write(b)
	cw.n += int64(n)
	return n, err
}

// WriteTo encodes the table onto a raw (uncompressed) stream.
func (p *ParameterSet) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	if _, err := cw.Write([]byte(parmMagic)); err != nil {
		return cw.n, err
	}
	for _, v := range [3]uint32{p.version, uint32(NumRows), NumBasis} {
		if err := putUint32(cw, v); err != nil {
			return cw.n, err
		}
	}
	err := putFloat64Slice(cw, p.data)
	return cw.n, err
}

// Save writes the table to a file, gzip-compressed when the path carries a
// ".gz" suffix.
func (p *ParameterSet) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var zw *pgzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = pgzip.NewWriter(bw)
		w = zw
	}
	if _, err := p.WriteTo(w); err != nil {
		f.Close()
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// defaultSplineTemps is the built-in quiet-time zonal-mean temperature
// climatology under the stitch altitude, one value per free spline
// coefficient, sampled at the Greville heights of the temperature knots
// (-5, 0, 5, ..., 80, 85.8, 93.3, 102.5 km). Tropo/strato/mesosphere values
// follow the 1976 standard atmosphere; the coefficient stored in the table
// is the reciprocal, since the spline represents 1/T.
var defaultSplineTemps = [numTempFree]float64{
	320.65, // -5 km
	288.15, //  0 km
	255.65,
	223.25,
	216.65,
	216.65, // 20 km, tropopause shelf
	221.55,
	226.65,
	237.05,
	251.05,
	265.05,
	270.65, // 50 km, stratopause
	260.77,
	247.02,
	233.29,
	219.58,
	208.40,
	198.64, // 80 km
	188.50, // 85.8 km
	186.90, // 93.3 km, mesopause
	205.00, // 102.5 km
}

// Built-in exospheric-temperature defaults: quiet-time baseline plus a
// linear response to the centered 81-day flux average, the daily flux
// deviation, and the activity index.
const (
	defaultTexBase   = 870.0
	defaultTexFluxB  = 2.5
	defaultTexFluxD  = 1.8
	defaultTexGeomag = 50.0

	defaultTb  = 380.0
	defaultTgb = 14.0
)

// defaultAirDensity is the total number density of air at the ground
// reference, cm^-3.
const defaultAirDensity = 2.547e19

// defaultRefDensity holds the built-in reference number densities of the
// diffusively separated species at their reference heights, cm^-3.
var defaultRefDensity = [NumSpecies]float64{
	SpeciesO:     8e10,
	SpeciesH:     8e7,
	SpeciesN:     4e6,
	SpeciesAnomO: 3e5,
	SpeciesNO:    1e7,
}

// DefaultParameters builds the built-in coefficient table: a quiet-time
// zonal-mean climatology with solar-flux and activity response in the
// exospheric temperature and an activity response in the nitric-oxide
// profile. It carries no intra-annual, tidal or wave structure; it exists
// so the engine is usable without an external table and as a fixture for
// the command-line tools and tests.
func DefaultParameters() *ParameterSet {
	p := &ParameterSet{
		version: parmVersion,
		data:    make([]float64, NumRows*NumBasis),
	}
	set := func(row, col int, v float64) {
		p.data[row*NumBasis+col] = v
	}

	set(rowTex, 0, defaultTexBase)
	set(rowTex, bfSolar, defaultTexFluxD)
	set(rowTex, bfSolar+2, defaultTexFluxB)
	set(rowTex, bfGeomag, defaultTexGeomag)
	set(rowTb, 0, defaultTb)
	set(rowTgb, 0, defaultTgb)
	for i, t := range defaultSplineTemps {
		set(rowSplineBase+i, 0, 1/t)
	}

	for s := Species(0); int(s) < NumSpecies; s++ {
		spec := &speciesTable[s]
		var lnRef float64
		switch spec.strategy {
		case stratMixed:
			lnRef = math.Log(spec.mixRatio * defaultAirDensity)
		default:
			lnRef = math.Log(defaultRefDensity[s])
		}
		set(speciesRow(s, rowLnRef), 0, lnRef)

		// Correction-term scales stay nonzero even with zero amplitudes
		// so an externally perturbed table remains well formed.
		set(speciesRow(s, rowChapHeight), 0, 100)
		set(speciesRow(s, rowChapScale), 0, 10)
		if spec.strategy == stratAnomalous {
			set(speciesRow(s, rowLogHeight), 0, 400)
			set(speciesRow(s, rowLogScale), 0, 250)
		} else {
			set(speciesRow(s, rowLogHeight), 0, 110)
			set(speciesRow(s, rowLogScale), 0, 10)
		}
		if spec.geomagCorr {
			set(speciesRow(s, rowLogAmp), bfGeomag, 0.5)
		}
	}

	// Atomic hydrogen is photochemically destroyed below the mesopause: a
	// logistic suppression centered at 85 km keeps its profile falling
	// with altitude everywhere above the fully mixed region, where the
	// mesospheric temperature gradient would otherwise outweigh its small
	// hydrostatic term. The reference density above compensates for the
	// saturated factor exp(-1) aloft.
	set(speciesRow(SpeciesH, rowLogAmp), 0, -1)
	set(speciesRow(SpeciesH, rowLogHeight), 0, 85)
	set(speciesRow(SpeciesH, rowLogScale), 0, 8)

	return p
}
