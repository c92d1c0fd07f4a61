// Package merkle implements the layered, mixed-log-size Merkle commitment
// FRI uses to bind the prover to each layer's evaluations: one binary tree
// per distinct column log-size, with all of those trees' roots folded
// together into a single commitment the verifier checks decommitments
// against.
package merkle

import (
	"encoding/binary"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
	"golang.org/x/crypto/blake2s"
)

// Hash is the tree's node type: a 32-byte blake2s digest.
type Hash [32]byte

const (
	leafTag byte = 0
	nodeTag byte = 1
)

// hashLeaf hashes the column values at a single leaf position, domain
// separated from internal nodes so a leaf hash can never be replayed as a
// node hash.
func hashLeaf(vals []field.M31) Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write([]byte{leafTag})
	var buf [4]byte
	for _, v := range vals {
		binary.LittleEndian.PutUint32(buf[:], v.Value())
		h.Write(buf[:])
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// hashPair hashes two child node hashes into their parent.
func hashPair(left, right Hash) Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write([]byte{nodeTag})
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// hashRoots combines a sequence of sub-tree roots (ordered by descending
// column log-size) into a single combined root.
func hashRoots(roots []Hash) Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	for _, r := range roots {
		h.Write(r[:])
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
