// ./parms_test.go
package msis

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParametersRoundTrip(t *testing.T) {
	p := DefaultParameters()
	for _, name := range []string{"table.parm", "table.parm.gz"} {
		path := filepath.Join(t.TempDir(), name)
		if err := p.Save(path); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		got, err := LoadParameters(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if got.Version() != p.Version() {
			t.Errorf("%s: version %d, want %d", name, got.Version(), p.Version())
		}
		for i := range p.data {
			if got.data[i] != p.data[i] {
				t.Fatalf("%s: coefficient %d differs: %v != %v", name, i, got.data[i], p.data[i])
			}
		}
	}
}

func TestWriteToHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	p := DefaultParameters()
	n, err := p.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	wantLen := int64(len(parmMagic) + 3*4 + 8*NumRows*NumBasis)
	if n != wantLen || int64(buf.Len()) != wantLen {
		t.Fatalf("encoded %d bytes (reported %d), want %d", buf.Len(), n, wantLen)
	}
	b := buf.Bytes()[len(parmMagic):]
	for i, want := range []uint32{parmVersion, uint32(NumRows), NumBasis} {
		if got := parmByteOrder.Uint32(b[4*i:]); got != want {
			t.Errorf("header field %d is %d, want %d", i, got, want)
		}
	}
}

func TestLoadParametersMissingFile(t *testing.T) {
	_, err := LoadParameters(filepath.Join(t.TempDir(), "nope.parm"))
	if !errors.Is(err, ErrParmFile) {
		t.Fatalf("want ErrParmFile for a missing file, got %v", err)
	}
}

func TestReadParametersBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if _, err := DefaultParameters().WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	b[0] ^= 0xff
	_, err := ReadParameters(bytes.NewReader(b))
	if !errors.Is(err, ErrParmFile) {
		t.Fatalf("want ErrParmFile for bad magic, got %v", err)
	}
}

func TestReadParametersBadVersion(t *testing.T) {
	var buf bytes.Buffer
	if _, err := DefaultParameters().WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	b[len(parmMagic)] = 99 // little-endian version field
	_, err := ReadParameters(bytes.NewReader(b))
	if !errors.Is(err, ErrParmFile) {
		t.Fatalf("want ErrParmFile for unsupported version, got %v", err)
	}
}

func TestReadParametersTruncated(t *testing.T) {
	var buf bytes.Buffer
	if _, err := DefaultParameters().WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	for _, cut := range []int{0, 4, len(parmMagic) + 6, len(b) / 2, len(b) - 1} {
		_, err := ReadParameters(bytes.NewReader(b[:cut]))
		if !errors.Is(err, ErrParmFile) {
			t.Errorf("truncation at %d: want ErrParmFile, got %v", cut, err)
		}
	}
}

func TestReadParametersDimensionMismatch(t *testing.T) {
	var buf bytes.Buffer
	if _, err := DefaultParameters().WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	b[len(parmMagic)+4] ^= 0x01 // rows field
	_, err := ReadParameters(bytes.NewReader(b))
	if !errors.Is(err, ErrParmFile) {
		t.Fatalf("want ErrParmFile for a dimension mismatch, got %v", err)
	}
}

func TestLoadParametersCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.parm.gz")
	if err := os.WriteFile(path, []byte("this is not a gzip stream"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadParameters(path)
	if !errors.Is(err, ErrParmFile) {
		t.Fatalf("want ErrParmFile for corrupt gzip, got %v", err)
	}
}

func TestDefaultParametersShape(t *testing.T) {
	p := DefaultParameters()
	if len(p.data) != NumRows*NumBasis {
		t.Fatalf("table holds %d coefficients, want %d", len(p.data), NumRows*NumBasis)
	}
	if v := p.row(rowTex)[0]; v != defaultTexBase {
		t.Errorf("Tex intercept %v, want %v", v, defaultTexBase)
	}
	// Every species row must carry a finite reference density intercept.
	for s := Species(0); int(s) < NumSpecies; s++ {
		if v := p.row(speciesRow(s, rowLnRef))[0]; v == 0 {
			t.Errorf("%v: zero reference-density intercept", s)
		}
		if v := p.row(speciesRow(s, rowLogScale))[0]; v <= 0 {
			t.Errorf("%v: non-positive logistic scale %v", s, v)
		}
		if v := p.row(speciesRow(s, rowChapScale))[0]; v <= 0 {
			t.Errorf("%v: non-positive Chapman scale %v", s, v)
		}
	}
}
