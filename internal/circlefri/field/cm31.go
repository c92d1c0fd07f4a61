package field

import "fmt"

// CM31 is an element a+bi of the quadratic extension of M31 by i, i²=-1.
type CM31 struct {
	A, B M31
}

// ZeroCM31 is the additive identity.
var ZeroCM31 = CM31{}

// OneCM31 is the multiplicative identity.
var OneCM31 = CM31{A: One}

// NewCM31 builds a+bi.
func NewCM31(a, b M31) CM31 {
	return CM31{A: a, B: b}
}

// CM31FromM31 embeds a base-field element as (x, 0).
func CM31FromM31(x M31) CM31 {
	return CM31{A: x}
}

// IsZero reports whether both components are zero.
func (c CM31) IsZero() bool { return c.A.IsZero() && c.B.IsZero() }

// Equal reports componentwise equality.
func (c CM31) Equal(o CM31) bool { return c.A.Equal(o.A) && c.B.Equal(o.B) }

// Add is componentwise.
func (c CM31) Add(o CM31) CM31 { return CM31{c.A.Add(o.A), c.B.Add(o.B)} }

// Sub is componentwise.
func (c CM31) Sub(o CM31) CM31 { return CM31{c.A.Sub(o.A), c.B.Sub(o.B)} }

// Neg is componentwise.
func (c CM31) Neg() CM31 { return CM31{c.A.Neg(), c.B.Neg()} }

// Double is componentwise.
func (c CM31) Double() CM31 { return CM31{c.A.Double(), c.B.Double()} }

// Conjugate negates the imaginary component.
func (c CM31) Conjugate() CM31 { return CM31{c.A, c.B.Neg()} }

// Mul computes (a+bi)(c+di) = (ac-bd) + (ad+bc)i.
func (c CM31) Mul(o CM31) CM31 {
	return CM31{
		A: c.A.Mul(o.A).Sub(c.B.Mul(o.B)),
		B: c.A.Mul(o.B).Add(c.B.Mul(o.A)),
	}
}

// MulM31 scales c by a base-field element.
func (c CM31) MulM31(x M31) CM31 {
	return CM31{c.A.Mul(x), c.B.Mul(x)}
}

// Square returns c*c.
func (c CM31) Square() CM31 { return c.Mul(c) }

// norm returns a²+b², the field norm down to M31.
func (c CM31) norm() M31 {
	return c.A.Square().Add(c.B.Square())
}

// Inverse returns the multiplicative inverse: conjugate divided by the
// norm. Panics on the zero element.
func (c CM31) Inverse() CM31 {
	if c.IsZero() {
		panic("field: inverse of zero CM31 element")
	}
	normInv := c.norm().Inverse()
	conj := c.Conjugate()
	return CM31{conj.A.Mul(normInv), conj.B.Mul(normInv)}
}

// String renders "a+bi".
func (c CM31) String() string {
	return fmt.Sprintf("%s+%si", c.A, c.B)
}
