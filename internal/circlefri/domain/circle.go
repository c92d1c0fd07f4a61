package domain

import "github.com/vybium/vybium-circle-fri/internal/circlefri/field"

// groupLogOrder is log2 of the order of the full M31 circle group, i.e. p+1
// where p = 2^31-1. The group is cyclic, which is what makes a circle-FFT
// domain structure of power-of-two sizes possible.
const groupLogOrder = 31

// groupOrder is the order of the full circle group as a uint64 (kept wide so
// index arithmetic below never wraps at 32 bits).
const groupOrder uint64 = 1 << groupLogOrder

// CirclePoint is a point (x,y) on the M31 circle curve x²+y²=1. The set of
// such points forms a cyclic group of order p+1=2^31 under the addition law
// below, which is exactly what lets us build power-of-two evaluation
// domains out of its subgroups and cosets.
type CirclePoint struct {
	X, Y field.M31
}

// circleGen is a fixed generator of the full circle group, of order 2^31.
var circleGen = CirclePoint{X: field.NewM31(2), Y: field.NewM31(1268011823)}

// identityPoint is the group identity (1,0).
var identityPoint = CirclePoint{X: field.One}

// Add implements the circle group law: (x1,y1)+(x2,y2) = (x1x2-y1y2, x1y2+y1x2).
// When applied to a point with itself this is exactly the Circle STARKs
// doubling map π(x,y) = (2x²-1, 2xy), since x²+y²=1 makes x1x2-y1y2 collapse
// to 2x²-1.
func (p CirclePoint) Add(q CirclePoint) CirclePoint {
	return CirclePoint{
		X: p.X.Mul(q.X).Sub(p.Y.Mul(q.Y)),
		Y: p.X.Mul(q.Y).Add(p.Y.Mul(q.X)),
	}
}

// Double returns p+p.
func (p CirclePoint) Double() CirclePoint {
	return p.Add(p)
}

// Conjugate returns (x,-y), the group inverse of p.
func (p CirclePoint) Conjugate() CirclePoint {
	return CirclePoint{X: p.X, Y: p.Y.Neg()}
}

// mulScalar computes n·p (p added to itself n times) via double-and-add.
func (p CirclePoint) mulScalar(n uint64) CirclePoint {
	result := identityPoint
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Add(base)
		}
		base = base.Double()
		n >>= 1
	}
	return result
}

// pointAtIndex returns index·circleGen, i.e. the point reached by walking
// index steps of the generator around the full group. index is taken modulo
// the group order.
func pointAtIndex(index uint64) CirclePoint {
	return circleGen.mulScalar(index % groupOrder)
}

// Coset is an arithmetic progression of CirclePoints: initialIndex,
// initialIndex+step, initialIndex+2*step, ..., of length 2^logSize, where
// step = groupOrder/2^logSize. It is the building block for both
// CircleDomain and LineDomain.
type Coset struct {
	initialIndex uint64
	logSize      uint32
	stepIndex    uint64
}

// NewCoset builds the coset of size 2^logSize starting at initialIndex
// (taken modulo the group order) and stepping by groupOrder/2^logSize.
func NewCoset(initialIndex uint64, logSize uint32) Coset {
	if logSize > groupLogOrder {
		panic("domain: coset log size exceeds the circle group's log order")
	}
	return Coset{
		initialIndex: initialIndex % groupOrder,
		logSize:      logSize,
		stepIndex:    groupOrder >> logSize,
	}
}

// oddsCoset returns the coset of size 2^logSize consisting of the odd
// multiples of groupOrder/2^(logSize+1): the subgroup of order 2^logSize
// shifted by half a step, so it never includes the low-order subgroup
// itself. This is the "canonic" shape used throughout the FRI domains.
func oddsCoset(logSize uint32) Coset {
	step := groupOrder >> logSize
	return NewCoset(step/2, logSize)
}

// LogSize returns log2 of the coset's size.
func (c Coset) LogSize() uint32 { return c.logSize }

// Size returns the coset's size, 2^LogSize().
func (c Coset) Size() int { return 1 << c.logSize }

// At returns the i-th point of the coset (i taken modulo Size()).
func (c Coset) At(i int) CirclePoint {
	idx := c.initialIndex + uint64(i)*c.stepIndex
	return pointAtIndex(idx)
}

// Double returns the coset obtained by applying the doubling map to every
// point of c. Because c is itself a coset of a subgroup, its image under
// doubling is again a coset, of half the size.
func (c Coset) Double() Coset {
	return Coset{
		initialIndex: (c.initialIndex * 2) % groupOrder,
		logSize:      c.logSize - 1,
		stepIndex:    (c.stepIndex * 2) % groupOrder,
	}
}

// Conjugate returns the coset of conjugated points, {Conjugate(p) : p in c}.
// It is itself a coset, reached by negating the initial index.
func (c Coset) Conjugate() Coset {
	neg := (groupOrder - c.initialIndex%groupOrder) % groupOrder
	return Coset{
		initialIndex: neg,
		logSize:      c.logSize,
		stepIndex:    c.stepIndex,
	}
}

// Equal reports whether c and o describe the same coset.
func (c Coset) Equal(o Coset) bool {
	return c.initialIndex == o.initialIndex && c.logSize == o.logSize && c.stepIndex == o.stepIndex
}
