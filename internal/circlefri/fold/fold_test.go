package fold

import (
	"math/rand"
	"testing"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/column"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/domain"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

func randQM31(r *rand.Rand) field.QM31 {
	var coords [4]field.M31
	for i := range coords {
		coords[i] = field.NewM31(r.Uint32() % field.Modulus)
	}
	return field.FromM31Array(coords)
}

func TestFoldLineEvenFunctionDoublesValue(t *testing.T) {
	cc := domain.NewCanonicCoset(4)
	ld := domain.NewLineDomain(cc.HalfCoset())
	tree := domain.PrecomputeTwiddles(ld)

	r := rand.New(rand.NewSource(1))
	n := ld.Size()
	vals := make([]field.QM31, n)
	for i := 0; i < n/2; i++ {
		v := randQM31(r)
		vals[2*i] = v
		vals[2*i+1] = v
	}
	eval := column.NewLineEvaluation(ld, column.FromQM31Vec(vals))
	alpha := randQM31(r)
	folded := FoldLine(eval, alpha, tree.Layers[0])

	if folded.Len() != n/2 {
		t.Fatalf("folded length = %d, want %d", folded.Len(), n/2)
	}
	if folded.Domain.LogSize() != ld.LogSize()-1 {
		t.Fatalf("folded domain log size = %d, want %d", folded.Domain.LogSize(), ld.LogSize()-1)
	}
	for i := 0; i < n/2; i++ {
		want := vals[2*i].Double()
		if got := folded.Values.At(i); !got.Equal(want) {
			t.Fatalf("folded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestFoldLineOddFunctionScalesByAlpha(t *testing.T) {
	cc := domain.NewCanonicCoset(3)
	ld := domain.NewLineDomain(cc.HalfCoset())
	tree := domain.PrecomputeTwiddles(ld)

	r := rand.New(rand.NewSource(2))
	n := ld.Size()
	vals := make([]field.QM31, n)
	for i := 0; i < n/2; i++ {
		v := randQM31(r)
		vals[2*i] = v
		vals[2*i+1] = v.Neg()
	}
	eval := column.NewLineEvaluation(ld, column.FromQM31Vec(vals))
	alpha := randQM31(r)
	folded := FoldLine(eval, alpha, tree.Layers[0])

	for i := 0; i < n/2; i++ {
		// f0=v, f1=-v: sum=0, diff=(v-(-v))*twiddleInv=2v*twiddleInv.
		diff := vals[2*i].Double().MulM31(tree.Layers[0][i])
		want := alpha.Mul(diff)
		if got := folded.Values.At(i); !got.Equal(want) {
			t.Fatalf("folded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestFoldLinePanicsOnSizeOrTwiddleMismatch(t *testing.T) {
	cc := domain.NewCanonicCoset(3)
	ld := domain.NewLineDomain(cc.HalfCoset())

	run := func(f func()) (panicked bool) {
		defer func() {
			if recover() != nil {
				panicked = true
			}
		}()
		f()
		return
	}

	vals := make([]field.QM31, 1)
	single := column.NewLineEvaluation(domain.NewLineDomain(domain.NewCoset(0, 0)), column.FromQM31Vec(vals))
	if !run(func() { FoldLine(single, field.ZeroQM31, nil) }) {
		t.Fatal("expected panic on evaluation of length < 2")
	}

	eval := column.NewLineEvaluation(ld, column.NewSecureColumnByCoords(ld.Size()))
	if !run(func() { FoldLine(eval, field.ZeroQM31, make([]field.M31, ld.Size())) }) {
		t.Fatal("expected panic on twiddle length mismatch")
	}
}

func TestFoldCircleIntoLineEvenFunctionDoublesAccumulator(t *testing.T) {
	cc := domain.NewCanonicCoset(4)
	circ := cc.CircleDomain()
	tw := domain.CircleTwiddles(circ)

	r := rand.New(rand.NewSource(3))
	n := circ.Size()
	vals := make([]field.QM31, n)
	for i := 0; i < n/2; i++ {
		v := randQM31(r)
		vals[2*i] = v
		vals[2*i+1] = v
	}
	src := column.NewSecureEvaluation(circ, column.FromQM31Vec(vals))

	ld := domain.NewLineDomain(circ.HalfCoset())
	dstVals := make([]field.QM31, n/2)
	for i := range dstVals {
		dstVals[i] = randQM31(r)
	}
	dst := column.NewLineEvaluation(ld, column.FromQM31Vec(append([]field.QM31(nil), dstVals...)))

	alpha := randQM31(r)
	FoldCircleIntoLine(dst, src, alpha, tw)

	alphaSq := alpha.Mul(alpha)
	for i := 0; i < n/2; i++ {
		want := dstVals[i].Mul(alphaSq).Add(vals[2*i].Double())
		if got := dst.Values.At(i); !got.Equal(want) {
			t.Fatalf("dst[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestFoldCircleIntoLinePanicsOnLengthMismatch(t *testing.T) {
	cc := domain.NewCanonicCoset(4)
	circ := cc.CircleDomain()
	tw := domain.CircleTwiddles(circ)
	src := column.NewSecureEvaluation(circ, column.NewSecureColumnByCoords(circ.Size()))

	badLd := domain.NewLineDomain(domain.NewCoset(0, circ.LogSize()))
	bad := column.NewLineEvaluation(badLd, column.NewSecureColumnByCoords(badLd.Size()))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on dst/src length mismatch")
		}
	}()
	FoldCircleIntoLine(bad, src, field.ZeroQM31, tw)
}

func TestSparseEvaluationFoldLineMatchesDense(t *testing.T) {
	cc := domain.NewCanonicCoset(4)
	ld := domain.NewLineDomain(cc.HalfCoset())
	tree := domain.PrecomputeTwiddles(ld)

	r := rand.New(rand.NewSource(4))
	n := ld.Size()
	vals := make([]field.QM31, n)
	for i := range vals {
		vals[i] = randQM31(r)
	}
	eval := column.NewLineEvaluation(ld, column.FromQM31Vec(vals))
	alpha := randQM31(r)
	dense := FoldLine(eval, alpha, tree.Layers[0])

	subsets := make([][2]field.QM31, n/2)
	for i := range subsets {
		subsets[i] = [2]field.QM31{vals[2*i], vals[2*i+1]}
	}
	sparse := NewSparseEvaluation(subsets)
	got := sparse.FoldLine(alpha, tree.Layers[0])

	for i := range got {
		if !got[i].Equal(dense.Values.At(i)) {
			t.Fatalf("sparse fold[%d] = %v, want %v", i, got[i], dense.Values.At(i))
		}
	}
}
