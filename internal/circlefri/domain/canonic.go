package domain

// CanonicCoset is the natural, spec-mandated choice of coset for a trace or
// evaluation of a given log size: the odds-coset of that size. It is a
// convenience for obtaining both the circle domain used to evaluate on and
// the half coset used to derive folding twiddles, from a single log size.
type CanonicCoset struct {
	coset Coset
}

// NewCanonicCoset builds the canonic coset of size 2^logSize.
func NewCanonicCoset(logSize uint32) CanonicCoset {
	return CanonicCoset{coset: oddsCoset(logSize)}
}

// LogSize returns log2 of the coset's size.
func (c CanonicCoset) LogSize() uint32 { return c.coset.LogSize() }

// Coset returns the underlying odds-coset of size 2^LogSize().
func (c CanonicCoset) Coset() Coset { return c.coset }

// CircleDomain returns the canonic evaluation domain of size 2^LogSize(),
// built as HalfCoset() ∪ Conjugate(HalfCoset()).
func (c CanonicCoset) CircleDomain() CircleDomain {
	return NewCircleDomain(c.HalfCoset())
}

// HalfCoset returns the coset of size 2^(LogSize()-1) generating one half of
// CircleDomain(), and from whose x-coordinates the folding twiddles are
// derived. Its initial index is a quarter of its step, so its conjugate is
// disjoint from it and together they make up exactly Coset().
func (c CanonicCoset) HalfCoset() Coset {
	return NewCoset(groupOrder>>(c.LogSize()+1), c.LogSize()-1)
}
