package field

import "fmt"

// ExtensionDegree is the number of M31 coordinates in a QM31 element.
const ExtensionDegree = 4

// qm31U2 is u², the non-residue defining the quartic extension: u² = 2+i.
var qm31U2 = CM31{A: NewM31(2), B: One}

// QM31 (the "secure field") is an element c0+c1*u of the degree-4 extension
// of M31 obtained by adjoining u with u²=2+i over CM31. It is the field FRI
// challenges and folded evaluations live in.
type QM31 struct {
	C0, C1 CM31
}

// ZeroQM31 is the additive identity.
var ZeroQM31 = QM31{}

// OneQM31 is the multiplicative identity.
var OneQM31 = QM31{C0: OneCM31}

// QM31FromM31 embeds a base-field element as (x,0,0,0).
func QM31FromM31(x M31) QM31 {
	return QM31{C0: CM31FromM31(x)}
}

// QM31FromCM31 embeds a CM31 element as c0 with c1=0.
func QM31FromCM31(c CM31) QM31 {
	return QM31{C0: c}
}

// FromM31Array builds c0+c1*u from the four fixed-order coordinates
// [a,b,c,d] = (a+bi) + (c+di)*u.
func FromM31Array(coords [4]M31) QM31 {
	return QM31{
		C0: CM31{coords[0], coords[1]},
		C1: CM31{coords[2], coords[3]},
	}
}

// ToM31Array returns the four fixed-order coordinates of q, the exact
// inverse of FromM31Array.
func (q QM31) ToM31Array() [4]M31 {
	return [4]M31{q.C0.A, q.C0.B, q.C1.A, q.C1.B}
}

// IsZero reports whether every coordinate is zero.
func (q QM31) IsZero() bool { return q.C0.IsZero() && q.C1.IsZero() }

// Equal reports componentwise equality.
func (q QM31) Equal(o QM31) bool { return q.C0.Equal(o.C0) && q.C1.Equal(o.C1) }

// Add is componentwise.
func (q QM31) Add(o QM31) QM31 { return QM31{q.C0.Add(o.C0), q.C1.Add(o.C1)} }

// Sub is componentwise.
func (q QM31) Sub(o QM31) QM31 { return QM31{q.C0.Sub(o.C0), q.C1.Sub(o.C1)} }

// Neg is componentwise.
func (q QM31) Neg() QM31 { return QM31{q.C0.Neg(), q.C1.Neg()} }

// Double is componentwise.
func (q QM31) Double() QM31 { return QM31{q.C0.Double(), q.C1.Double()} }

// MulCM31 scales q by a CM31 element (acting on both coordinates).
func (q QM31) MulCM31(c CM31) QM31 {
	return QM31{q.C0.Mul(c), q.C1.Mul(c)}
}

// MulM31 scales q by a base-field element.
func (q QM31) MulM31(x M31) QM31 {
	return QM31{q.C0.MulM31(x), q.C1.MulM31(x)}
}

// Mul computes (c0+c1u)(d0+d1u) = (c0d0+(2+i)c1d1) + (c0d1+c1d0)u.
func (q QM31) Mul(o QM31) QM31 {
	c0d0 := q.C0.Mul(o.C0)
	c1d1 := q.C1.Mul(o.C1)
	c0d1 := q.C0.Mul(o.C1)
	c1d0 := q.C1.Mul(o.C0)
	return QM31{
		C0: c0d0.Add(c1d1.Mul(qm31U2)),
		C1: c0d1.Add(c1d0),
	}
}

// Square returns q*q.
func (q QM31) Square() QM31 { return q.Mul(q) }

// norm returns c0²-(2+i)c1², whose CM31 inverse drives QM31 inversion.
func (q QM31) norm() CM31 {
	return q.C0.Square().Sub(q.C1.Square().Mul(qm31U2))
}

// Inverse returns the multiplicative inverse of q. Panics on the zero
// element.
func (q QM31) Inverse() QM31 {
	if q.IsZero() {
		panic("field: inverse of zero QM31 element")
	}
	normInv := q.norm().Inverse()
	return QM31{
		C0: q.C0.Mul(normInv),
		C1: q.C1.Neg().Mul(normInv),
	}
}

// String renders "c0+c1*u".
func (q QM31) String() string {
	return fmt.Sprintf("%s+(%s)u", q.C0, q.C1)
}
