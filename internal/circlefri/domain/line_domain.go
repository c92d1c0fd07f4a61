package domain

import "github.com/vybium/vybium-circle-fri/internal/circlefri/field"

// LineDomain is the set of x-coordinates of a Coset, used as the evaluation
// domain of the univariate polynomials FRI folds onto (fold_circle_into_line
// moves a SecureEvaluation on a CircleDomain down to a LineEvaluation on a
// LineDomain, then fold_line repeatedly halves that LineDomain).
type LineDomain struct {
	coset Coset
}

// NewLineDomain wraps a coset as a LineDomain.
func NewLineDomain(c Coset) LineDomain {
	return LineDomain{coset: c}
}

// LogSize returns log2 of the domain's size.
func (d LineDomain) LogSize() uint32 { return d.coset.LogSize() }

// Size returns the domain's size.
func (d LineDomain) Size() int { return d.coset.Size() }

// At returns the x-coordinate of the i-th point of the underlying coset.
func (d LineDomain) At(i int) field.M31 { return d.coset.At(i).X }

// Double returns the domain of half the size obtained from applying the
// x-coordinate doubling map x ↦ 2x²-1 to every point.
func (d LineDomain) Double() LineDomain {
	return LineDomain{coset: d.coset.Double()}
}

// Coset exposes the underlying coset, e.g. for deriving twiddles.
func (d LineDomain) Coset() Coset { return d.coset }
