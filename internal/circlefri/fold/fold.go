// Package fold implements the two folding primitives at the heart of FRI:
// fold_line, which halves a univariate evaluation using an x-coordinate
// twiddle, and fold_circle_into_line, which folds a circle-domain evaluation
// down onto a line evaluation using a y-coordinate twiddle to pair up
// conjugate points.
package fold

import (
	"fmt"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/column"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

// FoldStep is the number of bits the fold narrows the domain index space by
// per step; both folding primitives here are radix-2.
const FoldStep = 1

// CircleToLineFoldStep is FoldStep's circle-domain analogue.
const CircleToLineFoldStep = 1

// ibutterfly computes the inverse-FFT butterfly: given paired evaluations
// f0=f(p), f1=f(-p) and the inverse of the twiddle distinguishing them, it
// returns the even/odd decomposition (f0+f1, (f0-f1)*twiddleInv).
func ibutterfly(f0, f1 field.QM31, twiddleInv field.M31) (field.QM31, field.QM31) {
	sum := f0.Add(f1)
	diff := f0.Sub(f1).MulM31(twiddleInv)
	return sum, diff
}

// FoldLine halves eval using the folding twiddles for its domain (one
// inverse x-coordinate per resulting pair, as produced by
// domain.PrecomputeTwiddles), combining each pair with alpha:
// f0 + alpha*f1. The result lives on eval.Domain.Double() and remains in
// bit-reversed order.
func FoldLine(eval column.LineEvaluation, alpha field.QM31, twiddles []field.M31) column.LineEvaluation {
	n := eval.Len()
	if n < 2 {
		panic("fold: FoldLine requires at least 2 evaluations")
	}
	half := n / 2
	if len(twiddles) != half {
		panic(fmt.Sprintf("fold: FoldLine expected %d twiddles, got %d", half, len(twiddles)))
	}

	folded := make([]field.QM31, half)
	for i := 0; i < half; i++ {
		fx := eval.Values.At(2 * i)
		fnegx := eval.Values.At(2*i + 1)
		f0, f1 := ibutterfly(fx, fnegx, twiddles[i])
		folded[i] = f0.Add(alpha.Mul(f1))
	}

	return column.NewLineEvaluation(eval.Domain.Double(), column.FromQM31Vec(folded))
}

// FoldCircleIntoLine folds src (evaluated over a circle domain) and
// accumulates the result into dst (a line evaluation of half src's size)
// scaled by alpha²: dst[i] = dst[i]*alpha² + f0 + alpha*f1, where (f0,f1) is
// the ibutterfly decomposition of the conjugate pair src[2i], src[2i+1]
// using the y-coordinate twiddle. This is the one step that moves an
// evaluation off the circle and onto a line; every subsequent fold step is
// FoldLine.
func FoldCircleIntoLine(dst column.LineEvaluation, src column.SecureEvaluation, alpha field.QM31, twiddles []field.M31) {
	half := src.Len() / 2
	if dst.Len() != half {
		panic(fmt.Sprintf("fold: FoldCircleIntoLine dst length %d, want %d", dst.Len(), half))
	}
	if len(twiddles) != half {
		panic(fmt.Sprintf("fold: FoldCircleIntoLine expected %d twiddles, got %d", half, len(twiddles)))
	}

	alphaSq := alpha.Mul(alpha)
	for i := 0; i < half; i++ {
		f0, f1 := ibutterfly(src.Values.At(2*i), src.Values.At(2*i+1), twiddles[i])
		prev := dst.Values.At(i)
		dst.Values.Set(i, prev.Mul(alphaSq).Add(f0).Add(alpha.Mul(f1)))
	}
}
