package domain

import "github.com/vybium/vybium-circle-fri/internal/circlefri/field"

// TwiddleTree holds the precomputed, inverted folding twiddles for a root
// LineDomain and every domain obtained from it by repeated halving. Layer k
// corresponds to the domain reached after k halvings of the root; it holds
// the multiplicative inverse of the bit-reversed x-coordinates of the first
// half of that domain, which is exactly what ibutterfly needs at fold step k.
type TwiddleTree struct {
	Layers [][]field.M31
}

// PrecomputeTwiddles walks root down to size 1, halving at each step, and
// records the batch-inverted, bit-reversed first-half x-coordinates of each
// intermediate domain.
func PrecomputeTwiddles(root LineDomain) TwiddleTree {
	var layers [][]field.M31
	d := root
	for d.Size() > 1 {
		half := d.Size() / 2
		xs := make([]field.M31, half)
		for i := 0; i < half; i++ {
			xs[i] = d.At(i)
		}
		BitReverse(xs)
		inv := make([]field.M31, half)
		field.BatchInverse(inv, xs)
		layers = append(layers, inv)
		d = d.Double()
	}
	return TwiddleTree{Layers: layers}
}

// CircleTwiddles precomputes the twiddles fold_circle_into_line needs to
// pair up a circle domain's conjugate points (x,y) and (x,-y): the batch
// inverse of the bit-reversed y-coordinates of the domain's half coset. Its
// length is c.Size()/2, one twiddle per conjugate pair.
func CircleTwiddles(c CircleDomain) []field.M31 {
	half := c.HalfCoset()
	ys := make([]field.M31, half.Size())
	for i := 0; i < half.Size(); i++ {
		ys[i] = half.At(i).Y
	}
	BitReverse(ys)
	inv := make([]field.M31, len(ys))
	field.BatchInverse(inv, ys)
	return inv
}
