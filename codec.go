// ./codec.go
package msis

/*
Package msis provides helper functions for reading and writing binary data.

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
	"encoding/binary"
	"io"
)

// parmByteOrder is the byte order of the parameter file format. The format
// is defined as little-endian; files are portable across hosts.
var parmByteOrder binary.ByteOrder = binary.LittleEndian

// getNumber reads a value of the given type in the file byte order.
func getNumber(r io.Reader, data any) error {
	return binary.Read(r, parmByteOrder, data)
}

// getUint32 reads a uint32 value in the file byte order.
func getUint32(r io.Reader) (uint32, error) {
	var val uint32
	err := getNumber(r, &val)
	return val, err
}

// getFloat64Slice reads len(dst) consecutive float64 values in the file
// byte order.
func getFloat64Slice(r io.Reader, dst []float64) error {
	return binary.Read(r, parmByteOrder, dst)
}

// putNumber writes a value of the given type in the file byte order.
func putNumber(w io.Writer, data any) error {
	return binary.Write(w, parmByteOrder, data)
}

// putUint32 writes a uint32 value in the file byte order.
func putUint32(w io.Writer, val uint32) error {
	return putNumber(w, val)
}

// putFloat64Slice writes the float64 values in the file byte order.
func putFloat64Slice(w io.Writer, src []float64) error {
	return binary.Write(w, parmByteOrder, src)
}
