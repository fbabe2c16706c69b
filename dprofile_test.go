// ./dprofile_test.go
package msis

import (
	"math"
	"testing"
)

func TestMassProfileMixed(t *testing.T) {
	mp := massProfileFor(&speciesTable[SpeciesN2])
	if mp.n != maxMassNodes {
		t.Fatalf("mixed profile has %d nodes, want %d", mp.n, maxMassNodes)
	}
	// Constant continuation on both sides.
	if got := mp.at(0); got != meanAirMass {
		t.Errorf("mass below the first node is %v, want mean air mass %v", got, meanAirMass)
	}
	if got := mp.at(500); got != speciesTable[SpeciesN2].mass {
		t.Errorf("mass above the last node is %v, want species mass", got)
	}
	// Continuity at every node.
	for i := 0; i < mp.n; i++ {
		below := mp.at(mp.zeta[i] - 1e-9)
		at := mp.at(mp.zeta[i])
		above := mp.at(mp.zeta[i] + 1e-9)
		if math.Abs(below-at) > 1e-6 || math.Abs(above-at) > 1e-6 {
			t.Errorf("mass discontinuous at node %v: %v / %v / %v", mp.zeta[i], below, at, above)
		}
	}
	// Linear interpolation inside an interval.
	mid := 0.5 * (mp.zeta[0] + mp.zeta[1])
	want := 0.5 * (mp.mass[0] + mp.mass[1])
	if got := mp.at(mid); math.Abs(got-want) > 1e-12 {
		t.Errorf("midpoint mass %v, want %v", got, want)
	}
}

func TestMassProfileDiffusive(t *testing.T) {
	mp := massProfileFor(&speciesTable[SpeciesO])
	if mp.n != 1 {
		t.Fatalf("diffusive profile has %d nodes, want 1", mp.n)
	}
	for _, z := range []float64{0, 50, 122.5, 400, 1000} {
		if got := mp.at(z); got != speciesTable[SpeciesO].mass {
			t.Errorf("mass at %v km is %v, want constant species mass", z, got)
		}
	}
}

func TestHydroIntegralMatchesQuadrature(t *testing.T) {
	tp := quietTempProfile(t)
	for _, s := range []Species{SpeciesN2, SpeciesHe, SpeciesO} {
		mp := massProfileFor(&speciesTable[s])
		f := func(z float64) float64 { return mp.at(z) / tp.temperature(z) }
		cases := []struct{ a, b float64 }{
			{0, 60},     // constant air mass
			{60, 122.5}, // across the transition nodes
			{0, 300},    // across the stitch
			{122.5, 800},
		}
		for _, c := range cases {
			want := simpson(f, c.a, c.b, 8000)
			got := mp.hydroIntegral(tp, c.a, c.b)
			if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
				t.Errorf("%v: integral over [%v,%v]: %v, want %v", s, c.a, c.b, got, want)
			}
		}
	}
}

func TestHydroIntegralAntisymmetric(t *testing.T) {
	tp := quietTempProfile(t)
	mp := massProfileFor(&speciesTable[SpeciesO2])
	fwd := mp.hydroIntegral(tp, 0, 250)
	rev := mp.hydroIntegral(tp, 250, 0)
	if math.Abs(fwd+rev) > 1e-12*math.Abs(fwd) {
		t.Errorf("integral not antisymmetric: %v vs %v", fwd, rev)
	}
	if v := mp.hydroIntegral(tp, 80, 80); v != 0 {
		t.Errorf("empty range integral is %v, want 0", v)
	}
}

func TestChapmanShape(t *testing.T) {
	if got := chapman(0); math.Abs(got-1) > 1e-15 {
		t.Errorf("chapman(0) = %v, want 1 at the layer center", got)
	}
	for _, x := range []float64{-3, -1, 1, 3} {
		if v := chapman(x); v >= 1 || v <= 0 {
			t.Errorf("chapman(%v) = %v, want in (0,1)", x, v)
		}
	}
	// Extreme arguments decay to zero without producing NaN.
	for _, x := range []float64{-1e6, 1e6} {
		v := chapman(x)
		if math.IsNaN(v) {
			t.Errorf("chapman(%v) is NaN", x)
		}
	}
	if chapman(-1e6) != 0 {
		t.Errorf("chapman far below the layer = %v, want 0", chapman(-1e6))
	}
}

func TestLogisticShape(t *testing.T) {
	if got := logistic(0); got != 0.5 {
		t.Errorf("logistic(0) = %v, want 0.5", got)
	}
	if v := logistic(1e6); v != 1 {
		t.Errorf("logistic(+inf) = %v, want 1", v)
	}
	if v := logistic(-1e6); v > 1e-300 {
		t.Errorf("logistic(-inf) = %v, want ~0", v)
	}
}

func TestDensityNonNegative(t *testing.T) {
	p, gf := quietBasis(t)
	tp, err := p.tempProfile(gf)
	if err != nil {
		t.Fatal(err)
	}
	for s := Species(0); int(s) < NumSpecies; s++ {
		dp := p.densityProfile(s, gf)
		for _, z := range []float64{0, 50, 85, 122.5, 400, 1000} {
			n := dp.density(z, &tp)
			if n < 0 || math.IsNaN(n) {
				t.Errorf("%v at %v km: density %v", s, z, n)
			}
		}
	}
}

func TestMixingRatiosBelowTurbopause(t *testing.T) {
	p, gf := quietBasis(t)
	tp, err := p.tempProfile(gf)
	if err != nil {
		t.Fatal(err)
	}
	mixed := []Species{SpeciesN2, SpeciesO2, SpeciesHe, SpeciesAr}
	n2 := p.densityProfile(SpeciesN2, gf)
	for _, s := range mixed[1:] {
		dp := p.densityProfile(s, gf)
		wantRatio := speciesTable[s].mixRatio / speciesTable[SpeciesN2].mixRatio
		for _, z := range []float64{0, 20, 45, 70} {
			got := dp.density(z, &tp) / n2.density(z, &tp)
			if rel := math.Abs(got-wantRatio) / wantRatio; rel > 1e-9 {
				t.Errorf("%v/N2 ratio at %v km: %v, want %v (rel err %v)", s, z, got, wantRatio, rel)
			}
		}
	}
}

func TestMixingRatiosSurviveCorrections(t *testing.T) {
	p, gf := quietBasis(t)
	// Give a well-mixed species strong correction terms; the tapered
	// corrections must leave the fixed mixing ratio untouched at and below
	// the full-mixing altitude.
	p.data[speciesRow(SpeciesO2, rowChapAmp)*NumBasis] = 1.0
	p.data[speciesRow(SpeciesO2, rowLogAmp)*NumBasis] = 0.5
	tp, err := p.tempProfile(gf)
	if err != nil {
		t.Fatal(err)
	}
	n2 := p.densityProfile(SpeciesN2, gf)
	o2 := p.densityProfile(SpeciesO2, gf)
	wantRatio := speciesTable[SpeciesO2].mixRatio / speciesTable[SpeciesN2].mixRatio
	for _, z := range []float64{0, 40, zetaF} {
		got := o2.density(z, &tp) / n2.density(z, &tp)
		if rel := math.Abs(got-wantRatio) / wantRatio; rel > 1e-9 {
			t.Errorf("O2/N2 ratio at %v km: %v, want %v (rel err %v)", z, got, wantRatio, rel)
		}
	}
	// Above the mixed region the corrections must actually act.
	if got := o2.density(110, &tp) / n2.density(110, &tp); got <= wantRatio {
		t.Errorf("O2/N2 ratio at 110 km is %v, want above %v with positive corrections", got, wantRatio)
	}
	// The taper must not introduce a jump at the full-mixing altitude.
	const eps = 1e-6
	below := o2.density(zetaF-eps, &tp)
	above := o2.density(zetaF+eps, &tp)
	if rel := math.Abs(above-below) / below; rel > 1e-5 {
		t.Errorf("O2 density jumps across %v km: %v vs %v", zetaF, below, above)
	}
}

func TestDensityContinuousAtNodes(t *testing.T) {
	p, gf := quietBasis(t)
	tp, err := p.tempProfile(gf)
	if err != nil {
		t.Fatal(err)
	}
	const eps = 1e-6
	nodes := []float64{zetaF, zetaA, 95, 105, 115, zetaB}
	for s := Species(0); int(s) < NumSpecies; s++ {
		dp := p.densityProfile(s, gf)
		for _, z := range nodes {
			below := dp.density(z-eps, &tp)
			above := dp.density(z+eps, &tp)
			if rel := math.Abs(above-below) / below; rel > 1e-5 {
				t.Errorf("%v density jumps at %v km: %v vs %v", s, z, below, above)
			}
		}
	}
}

func TestAnomalousOxygenScaleHeight(t *testing.T) {
	p, gf := quietBasis(t)
	tp, err := p.tempProfile(gf)
	if err != nil {
		t.Fatal(err)
	}
	dp := p.densityProfile(SpeciesAnomO, gf)

	// With zero logistic amplitude the hot population is a pure
	// exponential with scale height R*T_anom/(g0*M).
	n1 := dp.density(600, &tp)
	n2 := dp.density(700, &tp)
	wantSlope := -hydrostK * speciesTable[SpeciesAnomO].mass / anomOTemperature
	gotSlope := (math.Log(n2) - math.Log(n1)) / 100
	if math.Abs(gotSlope-wantSlope) > 1e-12 {
		t.Errorf("anomalous-oxygen log slope %v, want %v", gotSlope, wantSlope)
	}
	// Reference density at the reference height.
	if got := dp.density(anomORefHeight, &tp); math.Abs(math.Log(got)-dp.lnRef) > 1e-12 {
		t.Errorf("density at reference height %v, want exp(lnRef)=%v", got, math.Exp(dp.lnRef))
	}
}

func TestDensityMonotoneAloft(t *testing.T) {
	p, gf := quietBasis(t)
	tp, err := p.tempProfile(gf)
	if err != nil {
		t.Fatal(err)
	}
	// Every species falls off monotonically above the full-mixing
	// altitude. For atomic hydrogen this relies on the built-in logistic
	// suppression below the mesopause.
	for s := Species(0); int(s) < NumSpecies; s++ {
		dp := p.densityProfile(s, gf)
		prev := math.Inf(1)
		for z := zetaF; z <= 1000; z += 5 {
			n := dp.density(z, &tp)
			if n > prev {
				t.Errorf("%v density increases at %v km: %v > %v", s, z, n, prev)
				break
			}
			prev = n
		}
	}
}
