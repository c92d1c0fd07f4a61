package field

import (
	"math/rand"
	"testing"
)

func randM31(r *rand.Rand) M31 {
	return NewM31(r.Uint32() % Modulus)
}

func randCM31(r *rand.Rand) CM31 {
	return CM31{randM31(r), randM31(r)}
}

func randQM31(r *rand.Rand) QM31 {
	return QM31{randCM31(r), randCM31(r)}
}

func TestM31FieldLaws(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		x, y, z := randM31(r), randM31(r), randM31(r)

		if !x.Add(y).Equal(y.Add(x)) {
			t.Fatalf("add not commutative: %v %v", x, y)
		}
		if !x.Mul(y).Equal(y.Mul(x)) {
			t.Fatalf("mul not commutative: %v %v", x, y)
		}
		if !x.Add(y).Add(z).Equal(x.Add(y.Add(z))) {
			t.Fatalf("add not associative")
		}
		if !x.Mul(y).Mul(z).Equal(x.Mul(y.Mul(z))) {
			t.Fatalf("mul not associative")
		}
		if !x.Mul(y.Add(z)).Equal(x.Mul(y).Add(x.Mul(z))) {
			t.Fatalf("mul not distributive over add")
		}
		if !x.Mul(Zero).IsZero() {
			t.Fatalf("x*0 != 0")
		}
		if !x.Mul(One).Equal(x) {
			t.Fatalf("x*1 != x")
		}
		if !x.Add(x.Neg()).IsZero() {
			t.Fatalf("x+(-x) != 0")
		}
		if !x.IsZero() {
			if !x.Mul(x.Inverse()).Equal(One) {
				t.Fatalf("x*x^-1 != 1 for x=%v", x)
			}
		}
	}
}

func TestCM31FieldLaws(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		x, y, z := randCM31(r), randCM31(r), randCM31(r)

		if !x.Add(y).Equal(y.Add(x)) {
			t.Fatalf("add not commutative")
		}
		if !x.Mul(y).Equal(y.Mul(x)) {
			t.Fatalf("mul not commutative")
		}
		if !x.Mul(y).Mul(z).Equal(x.Mul(y.Mul(z))) {
			t.Fatalf("mul not associative")
		}
		if !x.Mul(y.Add(z)).Equal(x.Mul(y).Add(x.Mul(z))) {
			t.Fatalf("mul not distributive over add")
		}
		if !x.Mul(OneCM31).Equal(x) {
			t.Fatalf("x*1 != x")
		}
		if !x.IsZero() {
			if !x.Mul(x.Inverse()).Equal(OneCM31) {
				t.Fatalf("x*x^-1 != 1 for x=%v", x)
			}
		}
	}
}

func TestQM31FieldLaws(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		x, y, z := randQM31(r), randQM31(r), randQM31(r)

		if !x.Add(y).Equal(y.Add(x)) {
			t.Fatalf("add not commutative")
		}
		if !x.Mul(y).Equal(y.Mul(x)) {
			t.Fatalf("mul not commutative")
		}
		if !x.Mul(y).Mul(z).Equal(x.Mul(y.Mul(z))) {
			t.Fatalf("mul not associative")
		}
		if !x.Mul(y.Add(z)).Equal(x.Mul(y).Add(x.Mul(z))) {
			t.Fatalf("mul not distributive over add")
		}
		if !x.Mul(OneQM31).Equal(x) {
			t.Fatalf("x*1 != x")
		}
		if !x.IsZero() {
			if !x.Mul(x.Inverse()).Equal(OneQM31) {
				t.Fatalf("x*x^-1 != 1 for x=%v", x)
			}
		}
	}
}

func TestQM31ArrayRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		var coords [4]M31
		for j := range coords {
			coords[j] = randM31(r)
		}
		q := FromM31Array(coords)
		got := q.ToM31Array()
		if got != coords {
			t.Fatalf("round trip mismatch: got %v want %v", got, coords)
		}
	}
}

func TestBatchInverse(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, n := range []int{1, 2, 3, 4, 5, 8, 17} {
		xs := make([]M31, n)
		for i := range xs {
			x := randM31(r)
			for x.IsZero() {
				x = randM31(r)
			}
			xs[i] = x
		}
		dst := make([]M31, n)
		BatchInverse(dst, xs)
		for i := range xs {
			if !dst[i].Mul(xs[i]).Equal(One) {
				t.Fatalf("batch inverse wrong at %d (n=%d)", i, n)
			}
			naive := xs[i].Inverse()
			if !dst[i].Equal(naive) {
				t.Fatalf("batch inverse != naive at %d (n=%d)", i, n)
			}
		}
	}
}

func TestM31FromInt64Negative(t *testing.T) {
	a := FromInt64(-1)
	want := NewM31(Modulus - 1)
	if !a.Equal(want) {
		t.Fatalf("FromInt64(-1) = %v, want %v", a, want)
	}
}
