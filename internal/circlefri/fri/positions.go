package fri

import (
	"fmt"
	"sort"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/merkle"
)

// pairExpand takes query positions into a folded (output) domain and
// returns the storage positions of their full butterfly pairs in the
// pre-fold (input) domain: for each q, both 2q and 2q+1. The input is sorted
// and deduplicated, so the result is strictly ascending with no repeats.
func pairExpand(positions []int) []int {
	out := make([]int, 0, 2*len(positions))
	for _, q := range positions {
		out = append(out, 2*q, 2*q+1)
	}
	return out
}

func positionsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint32SlicesEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lookupIndex returns the index of want within the strictly ascending slice
// positions, or -1 if absent.
func lookupIndex(positions []int, want int) int {
	i := sort.SearchInts(positions, want)
	if i < len(positions) && positions[i] == want {
		return i
	}
	return -1
}

func toQM31(vals []field.M31) field.QM31 {
	return field.FromM31Array([4]field.M31{vals[0], vals[1], vals[2], vals[3]})
}

func fromQM31(v field.QM31) []field.M31 {
	coords := v.ToM31Array()
	return coords[:]
}

// splitWitness separates dec's per-position values into the subset the
// verifier already knows some other way (knownPositions) and the rest,
// which has to travel as fri_witness: the sibling values needed to
// reconstruct a queried coset but not themselves independently claimed.
// trimmed keeps dec's positions and authentication paths but drops the
// values at knownPositions, since the verifier reconstructs those itself.
func splitWitness(dec merkle.Decommitment, knownPositions []int) (trimmed merkle.Decommitment, witness []field.QM31) {
	known := make(map[int]bool, len(knownPositions))
	for _, p := range knownPositions {
		known[p] = true
	}
	values := make([][]field.M31, len(dec.Positions))
	for i, pos := range dec.Positions {
		if known[pos] {
			continue
		}
		values[i] = dec.Values[i]
		witness = append(witness, toQM31(dec.Values[i]))
	}
	trimmed = merkle.Decommitment{Positions: dec.Positions, Values: values, AuthPaths: dec.AuthPaths}
	return trimmed, witness
}

// reconstructValues rebuilds the full per-position value rows for positions
// (ascending storage order) from known (positions the verifier can already
// claim a value for) and witness (the remaining positions' values, in the
// same ascending order they appear in positions). It fails if witness runs
// short before a needed slot, or if it has leftovers once every position is
// filled.
func reconstructValues(positions []int, known map[int]field.QM31, witness []field.QM31) ([][]field.M31, error) {
	out := make([][]field.M31, len(positions))
	wi := 0
	for i, pos := range positions {
		if v, ok := known[pos]; ok {
			out[i] = fromQM31(v)
			continue
		}
		if wi >= len(witness) {
			return nil, fmt.Errorf("fri: fri_witness exhausted before every non-queried coset position was filled")
		}
		out[i] = fromQM31(witness[wi])
		wi++
	}
	if wi != len(witness) {
		return nil, fmt.Errorf("fri: fri_witness has %d leftover entries after reconstruction", len(witness)-wi)
	}
	return out, nil
}
