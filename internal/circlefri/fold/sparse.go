package fold

import (
	"fmt"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

// SparseEvaluation holds the verifier's view of a FRI layer at a set of
// query positions: rather than the full dense evaluation, it has just the
// conjugate/sibling pair needed to fold each queried position, gathered
// either from other query answers or from Merkle decommitment witnesses.
type SparseEvaluation struct {
	// Subsets[i] is the pair [f(p), f(-p)] for the i-th query.
	Subsets [][2]field.QM31
}

// NewSparseEvaluation wraps pre-gathered sibling pairs.
func NewSparseEvaluation(subsets [][2]field.QM31) SparseEvaluation {
	return SparseEvaluation{Subsets: subsets}
}

// Len returns the number of query subsets.
func (s SparseEvaluation) Len() int { return len(s.Subsets) }

// FoldLine folds every subset the same way FoldLine does for a dense
// evaluation, using a per-query twiddle inverse (the verifier looks each one
// up from the precomputed twiddle tree by query position, rather than
// walking a single shared array as the prover does).
func (s SparseEvaluation) FoldLine(alpha field.QM31, twiddleInvs []field.M31) []field.QM31 {
	if len(twiddleInvs) != len(s.Subsets) {
		panic(fmt.Sprintf("fold: SparseEvaluation.FoldLine expected %d twiddles, got %d", len(s.Subsets), len(twiddleInvs)))
	}
	out := make([]field.QM31, len(s.Subsets))
	for i, pair := range s.Subsets {
		f0, f1 := ibutterfly(pair[0], pair[1], twiddleInvs[i])
		out[i] = f0.Add(alpha.Mul(f1))
	}
	return out
}

// FoldCircle folds every subset the way FoldCircleIntoLine does, optionally
// accumulating onto prevLine (pass nil to start a fresh line evaluation).
func (s SparseEvaluation) FoldCircle(alpha field.QM31, twiddleInvs []field.M31, prevLine []field.QM31) []field.QM31 {
	if len(twiddleInvs) != len(s.Subsets) {
		panic(fmt.Sprintf("fold: SparseEvaluation.FoldCircle expected %d twiddles, got %d", len(s.Subsets), len(twiddleInvs)))
	}
	if prevLine != nil && len(prevLine) != len(s.Subsets) {
		panic("fold: SparseEvaluation.FoldCircle prevLine length mismatch")
	}
	alphaSq := alpha.Mul(alpha)
	out := make([]field.QM31, len(s.Subsets))
	for i, pair := range s.Subsets {
		f0, f1 := ibutterfly(pair[0], pair[1], twiddleInvs[i])
		prev := field.ZeroQM31
		if prevLine != nil {
			prev = prevLine[i]
		}
		out[i] = prev.Mul(alphaSq).Add(f0).Add(alpha.Mul(f1))
	}
	return out
}
