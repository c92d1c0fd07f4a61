package merkle

import (
	"math/rand"
	"testing"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

func randColumn(r *rand.Rand, n int) []field.M31 {
	col := make([]field.M31, n)
	for i := range col {
		col[i] = field.NewM31(r.Uint32() % field.Modulus)
	}
	return col
}

func TestTreeCommitDecommitVerifyRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	columns := [][]field.M31{randColumn(r, 16), randColumn(r, 16), randColumn(r, 16), randColumn(r, 16)}
	tree := Commit(columns)

	positions := []int{0, 3, 7, 15}
	dec := tree.Decommit(columns, positions)

	if err := Verify(tree.Root(), tree.LogSize, dec); err != nil {
		t.Fatalf("unexpected verification failure: %v", err)
	}
}

func TestTreeVerifyDetectsTamperedValue(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	columns := [][]field.M31{randColumn(r, 8), randColumn(r, 8)}
	tree := Commit(columns)
	dec := tree.Decommit(columns, []int{2, 5})

	dec.Values[0][0] = dec.Values[0][0].Add(field.One)

	if err := Verify(tree.Root(), tree.LogSize, dec); err == nil {
		t.Fatal("expected verification error for a tampered leaf value")
	}
}

func TestTreeVerifyDetectsTamperedPath(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	columns := [][]field.M31{randColumn(r, 8)}
	tree := Commit(columns)
	dec := tree.Decommit(columns, []int{1})

	dec.AuthPaths[0][0][0] ^= 0xFF

	if err := Verify(tree.Root(), tree.LogSize, dec); err == nil {
		t.Fatal("expected verification error for a tampered authentication path")
	}
}

func TestCommitPanicsOnNonPowerOfTwoLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-power-of-two column length")
		}
	}()
	Commit([][]field.M31{make([]field.M31, 3)})
}

func TestLayeredCommitmentRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	layers := map[uint32][][]field.M31{
		5: {randColumn(r, 32), randColumn(r, 32), randColumn(r, 32), randColumn(r, 32)},
		4: {randColumn(r, 16), randColumn(r, 16), randColumn(r, 16), randColumn(r, 16)},
		0: {randColumn(r, 1), randColumn(r, 1), randColumn(r, 1), randColumn(r, 1)},
	}
	lc := CommitLayers(layers)

	positions := map[uint32][]int{
		5: {1, 9, 30},
		4: {0, 15},
		0: {0},
	}
	dec := lc.Decommit(layers, positions)

	claimedRoots := make(map[uint32]Hash)
	for l, tree := range lc.Trees {
		claimedRoots[l] = tree.Root()
	}

	if err := VerifyLayered(lc.CombinedRoot, claimedRoots, lc.SortedLogs, dec); err != nil {
		t.Fatalf("unexpected verification failure: %v", err)
	}
}

func TestLayeredCommitmentDetectsRootSwap(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	layers := map[uint32][][]field.M31{
		3: {randColumn(r, 8)},
		2: {randColumn(r, 4)},
	}
	lc := CommitLayers(layers)
	positions := map[uint32][]int{3: {0}, 2: {0}}
	dec := lc.Decommit(layers, positions)

	claimedRoots := map[uint32]Hash{3: lc.Trees[2].Root(), 2: lc.Trees[3].Root()}

	if err := VerifyLayered(lc.CombinedRoot, claimedRoots, lc.SortedLogs, dec); err == nil {
		t.Fatal("expected verification failure after swapping sub-tree roots")
	}
}
