package column

import (
	"github.com/vybium/vybium-circle-fri/internal/circlefri/domain"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

// twoInv is the multiplicative inverse of 2 in M31, the normalization factor
// Interpolate's butterfly needs at every level.
var twoInv = field.NewM31(2).Inverse()

// Interpolate is the exact inverse of LinePoly.Eval: given eval (whose
// values are stored bit-reversed per the domain, the LineEvaluation
// convention) it recovers the polynomial's coefficients in the same
// bit-reversed doubling-map basis LinePoly stores them in.
//
// It works by un-bit-reversing the evaluations back to natural domain
// order, then recursively pairing index i with i+half (the domain's
// negation pairing: domain.At(i+half) = -domain.At(i)) via an ibutterfly
// scaled by 1/2. That splits the problem into two half-size polynomial
// interpolations over the doubled domain — one recovering the even part's
// coefficients, one the odd part's — whose stored coefficient vectors become
// the lower and upper halves of the result.
func Interpolate(eval LineEvaluation) LinePoly {
	natural := eval.Values.ToQM31Vec()
	domain.BitReverse(natural)

	coeffs := interpolateRec(natural, eval.Domain)
	return NewLinePoly(coeffs)
}

func interpolateRec(vals []field.QM31, d domain.LineDomain) []field.QM31 {
	n := len(vals)
	if n == 1 {
		return vals
	}
	half := n / 2
	lo := make([]field.QM31, half)
	hi := make([]field.QM31, half)
	for i := 0; i < half; i++ {
		x := d.At(i)
		xInv := x.Inverse()
		sum := vals[i].Add(vals[half+i])
		diff := vals[i].Sub(vals[half+i]).MulM31(xInv)
		lo[i] = sum.MulM31(twoInv)
		hi[i] = diff.MulM31(twoInv)
	}
	loCoeffs := interpolateRec(lo, d.Double())
	hiCoeffs := interpolateRec(hi, d.Double())

	out := make([]field.QM31, n)
	for i := 0; i < half; i++ {
		out[i] = loCoeffs[i]
		out[half+i] = hiCoeffs[i]
	}
	return out
}
