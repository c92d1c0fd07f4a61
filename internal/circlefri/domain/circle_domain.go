package domain

// CircleDomain is the evaluation domain of a circle polynomial: the union of
// a "half coset" of size 2^(logSize-1) and its conjugate, for a total size
// of 2^logSize. Splitting it this way is what lets fold_circle_into_line
// pair up conjugate points (x,y) and (x,-y) into a single LineEvaluation
// sample.
type CircleDomain struct {
	half Coset
}

// NewCircleDomain builds the domain half ∪ Conjugate(half).
func NewCircleDomain(half Coset) CircleDomain {
	return CircleDomain{half: half}
}

// LogSize returns log2 of the domain's size.
func (d CircleDomain) LogSize() uint32 { return d.half.LogSize() + 1 }

// Size returns the domain's size.
func (d CircleDomain) Size() int { return d.half.Size() * 2 }

// HalfCoset returns the coset generating one half of the domain; its
// x-coordinates double into the twiddles used by fold_circle_into_line.
func (d CircleDomain) HalfCoset() Coset { return d.half }

// At returns the i-th point of the domain: for i < half.Size() this is
// half.At(i); for i >= half.Size() it is the conjugate point
// half.At(i - half.Size()).Conjugate().
func (d CircleDomain) At(i int) CirclePoint {
	n := d.half.Size()
	if i < n {
		return d.half.At(i)
	}
	return d.half.At(i - n).Conjugate()
}

// IsCanonic reports whether d is exactly the canonic domain of its log size,
// i.e. whether its half coset equals CanonicCoset's half coset of that size.
func (d CircleDomain) IsCanonic() bool {
	return d.half.Equal(NewCanonicCoset(d.LogSize()).HalfCoset())
}
