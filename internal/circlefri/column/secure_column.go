// Package column implements the evaluation and coefficient containers FRI
// folds over: a QM31 column stored as four parallel M31 columns, and the
// domain-carrying evaluation/polynomial wrappers built on top of it.
package column

import "github.com/vybium/vybium-circle-fri/internal/circlefri/field"

// SecureColumnByCoords stores a column of QM31 values as four parallel M31
// columns, one per coordinate. Base-field arithmetic dominates FRI's inner
// loop (Merkle hashing, folding twiddle multiplies), so keeping the secure
// column "structure of arrays" rather than "array of structs" avoids paying
// for QM31 packing on every element access.
type SecureColumnByCoords struct {
	Columns [4][]field.M31
}

// NewSecureColumnByCoords allocates a column of the given length, zero-initialized.
func NewSecureColumnByCoords(length int) SecureColumnByCoords {
	var c SecureColumnByCoords
	for i := range c.Columns {
		c.Columns[i] = make([]field.M31, length)
	}
	return c
}

// Len returns the column length.
func (c SecureColumnByCoords) Len() int {
	if c.Columns[0] == nil {
		return 0
	}
	return len(c.Columns[0])
}

// At reassembles the QM31 value at index i from the four coordinate columns.
func (c SecureColumnByCoords) At(i int) field.QM31 {
	return field.FromM31Array([4]field.M31{
		c.Columns[0][i], c.Columns[1][i], c.Columns[2][i], c.Columns[3][i],
	})
}

// Set decomposes v into its four coordinates and writes them at index i.
func (c SecureColumnByCoords) Set(i int, v field.QM31) {
	coords := v.ToM31Array()
	for j := range c.Columns {
		c.Columns[j][i] = coords[j]
	}
}

// ToQM31Vec materializes the column as a []QM31, for callers that don't need
// to touch individual coordinate columns.
func (c SecureColumnByCoords) ToQM31Vec() []field.QM31 {
	out := make([]field.QM31, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// FromQM31Vec builds a SecureColumnByCoords from a flat slice of QM31 values.
func FromQM31Vec(vs []field.QM31) SecureColumnByCoords {
	c := NewSecureColumnByCoords(len(vs))
	for i, v := range vs {
		c.Set(i, v)
	}
	return c
}
