package column

import (
	"fmt"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/domain"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

// LinePoly is a univariate polynomial over the line domain's x-coordinates,
// represented in the "doubling-map basis": coefficient i is stored at its
// bit-reversed position, the same layout fold_line produces and consumes, so
// the last FRI layer never needs to reorder its coefficients before they are
// committed or evaluated. Coeffs.Len() is always a power of two.
type LinePoly struct {
	Coeffs []field.QM31
}

// NewLinePoly wraps coeffs (already bit-reversed) as a LinePoly. Panics if
// coeffs is not a power-of-two length.
func NewLinePoly(coeffs []field.QM31) LinePoly {
	if !domain.IsPowerOfTwo(len(coeffs)) {
		panic(fmt.Sprintf("column: LinePoly requires a power-of-two length, got %d", len(coeffs)))
	}
	return LinePoly{Coeffs: coeffs}
}

// Len returns the number of coefficients, 2^LogSize().
func (p LinePoly) Len() int { return len(p.Coeffs) }

// LogSize returns log2 of the coefficient count.
func (p LinePoly) LogSize() uint32 { return domain.Log2(len(p.Coeffs)) }

// IntoOrderedCoefficients returns a copy of the coefficients in natural
// (non-bit-reversed) order.
func (p LinePoly) IntoOrderedCoefficients() []field.QM31 {
	out := make([]field.QM31, len(p.Coeffs))
	copy(out, p.Coeffs)
	domain.BitReverse(out)
	return out
}

// FromOrderedCoefficients builds a LinePoly from coefficients given in
// natural order, converting them to the internal bit-reversed layout. It is
// the exact inverse of IntoOrderedCoefficients.
func FromOrderedCoefficients(ordered []field.QM31) LinePoly {
	store := make([]field.QM31, len(ordered))
	copy(store, ordered)
	domain.BitReverse(store)
	return NewLinePoly(store)
}

// Eval evaluates the polynomial at x, a base-field point reinterpreted in
// the secure field. The doubling-map basis is evaluated by repeatedly
// applying the circle doubling map t ↦ 2t²-1 to x to build one folding
// factor per level, then folding the bit-reversed coefficient tree from the
// bottom up with those factors — the same recursion fold_line performs,
// run forward over the whole polynomial at once instead of halving an
// evaluation table.
func (p LinePoly) Eval(x field.M31) field.QM31 {
	logSize := p.LogSize()
	if logSize == 0 {
		return p.Coeffs[0]
	}

	mappings := make([]field.M31, logSize)
	t := x
	for k := uint32(0); k < logSize; k++ {
		mappings[k] = t
		t = t.Square().Double().Sub(field.One)
	}
	// mappings[0] is the point itself and folds the two halves of the whole
	// coefficient vector; mappings[logSize-1] folds the innermost 2-element
	// groups. Ordered coefficient i thus multiplies a basis element of
	// degree i: 1, x, π(x), π(x)·x, π(π(x)), ...
	return foldQM31(p.Coeffs, mappings)
}

// foldQM31 recursively folds values (length a power of two) using
// foldingFactors (log2(len(values)) of them, consumed one per level):
// splitting values into two halves and combining foldQM31(lo) +
// factor*foldQM31(hi).
func foldQM31(values []field.QM31, foldingFactors []field.M31) field.QM31 {
	if len(values) == 1 {
		return values[0]
	}
	mid := len(values) / 2
	lambda := foldingFactors[0]
	lo := foldQM31(values[:mid], foldingFactors[1:])
	hi := foldQM31(values[mid:], foldingFactors[1:])
	return lo.Add(hi.MulM31(lambda))
}
