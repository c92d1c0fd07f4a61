package merkle

import (
	"fmt"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/domain"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

// Tree is a standard binary Merkle tree over 2^LogSize leaves, where leaf i
// is the hash of the i-th value across every column passed to Commit (this
// is how a FRI layer's four M31 coordinate columns get folded into one leaf
// per position).
type Tree struct {
	LogSize uint32
	nodes   [][]Hash // nodes[0] = leaves; nodes[len-1] = [root]
}

// Commit builds a Tree over columns, which must all share the same
// power-of-two length.
func Commit(columns [][]field.M31) *Tree {
	if len(columns) == 0 {
		panic("merkle: Commit requires at least one column")
	}
	n := len(columns[0])
	if !domain.IsPowerOfTwo(n) {
		panic(fmt.Sprintf("merkle: column length %d is not a power of two", n))
	}
	for _, col := range columns {
		if len(col) != n {
			panic("merkle: Commit columns have mismatched lengths")
		}
	}

	leaves := make([]Hash, n)
	vals := make([]field.M31, len(columns))
	for i := 0; i < n; i++ {
		for c, col := range columns {
			vals[c] = col[i]
		}
		leaves[i] = hashLeaf(vals)
	}

	nodes := [][]Hash{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([]Hash, len(cur)/2)
		for i := range next {
			next[i] = hashPair(cur[2*i], cur[2*i+1])
		}
		nodes = append(nodes, next)
		cur = next
	}
	return &Tree{LogSize: domain.Log2(n), nodes: nodes}
}

// Root returns the tree's root hash.
func (t *Tree) Root() Hash {
	return t.nodes[len(t.nodes)-1][0]
}

// Decommitment carries, for a set of queried leaf positions, the column
// values at each position and the authentication path (sibling hash at
// every level from the leaf up to, but not including, the root) needed to
// recompute the root independently.
type Decommitment struct {
	Positions []int
	Values    [][]field.M31
	AuthPaths [][]Hash
}

// Decommit builds a Decommitment for positions out of the same columns
// passed to Commit.
func (t *Tree) Decommit(columns [][]field.M31, positions []int) Decommitment {
	values := make([][]field.M31, len(positions))
	paths := make([][]Hash, len(positions))

	for pi, pos := range positions {
		vals := make([]field.M31, len(columns))
		for c, col := range columns {
			vals[c] = col[pos]
		}
		values[pi] = vals

		path := make([]Hash, 0, len(t.nodes)-1)
		idx := pos
		for level := 0; level < len(t.nodes)-1; level++ {
			path = append(path, t.nodes[level][idx^1])
			idx >>= 1
		}
		paths[pi] = path
	}

	return Decommitment{Positions: positions, Values: values, AuthPaths: paths}
}

// Verify checks d against root, returning a *VerificationError for the
// first position whose authentication path fails to reproduce root.
func Verify(root Hash, logSize uint32, d Decommitment) error {
	for i, pos := range d.Positions {
		cur := hashLeaf(d.Values[i])
		idx := pos
		for level := 0; level < int(logSize); level++ {
			sibling := d.AuthPaths[i][level]
			if idx&1 == 0 {
				cur = hashPair(cur, sibling)
			} else {
				cur = hashPair(sibling, cur)
			}
			idx >>= 1
		}
		if cur != root {
			return &VerificationError{LogSize: logSize, Position: pos}
		}
	}
	return nil
}
