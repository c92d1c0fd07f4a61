package merkle

import (
	"sort"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

// LayeredCommitment commits several groups of columns that may each have a
// different log-size (one group per FRI layer, typically) under a single
// combined root: one Tree per log-size group, with the sub-tree roots
// folded together in descending log-size order.
type LayeredCommitment struct {
	Trees        map[uint32]*Tree
	SortedLogs   []uint32 // descending
	CombinedRoot Hash
}

// CommitLayers builds a LayeredCommitment from one column group per log
// size. Every columnsByLogSize[k] entry must consist of columns of length
// 2^k.
func CommitLayers(columnsByLogSize map[uint32][][]field.M31) *LayeredCommitment {
	trees := make(map[uint32]*Tree, len(columnsByLogSize))
	logs := make([]uint32, 0, len(columnsByLogSize))
	for logSize, cols := range columnsByLogSize {
		trees[logSize] = Commit(cols)
		logs = append(logs, logSize)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i] > logs[j] })

	roots := make([]Hash, len(logs))
	for i, l := range logs {
		roots[i] = trees[l].Root()
	}

	return &LayeredCommitment{
		Trees:        trees,
		SortedLogs:   logs,
		CombinedRoot: hashRoots(roots),
	}
}

// LayeredDecommitment carries one Decommitment per log-size layer that was
// queried.
type LayeredDecommitment struct {
	ByLogSize map[uint32]Decommitment
}

// Decommit builds a LayeredDecommitment for the given query positions per
// log size, using the same columns CommitLayers was built from.
func (lc *LayeredCommitment) Decommit(columnsByLogSize map[uint32][][]field.M31, positionsByLogSize map[uint32][]int) LayeredDecommitment {
	out := make(map[uint32]Decommitment, len(positionsByLogSize))
	for logSize, positions := range positionsByLogSize {
		tree, ok := lc.Trees[logSize]
		if !ok {
			panic("merkle: no committed tree at the requested log size")
		}
		out[logSize] = tree.Decommit(columnsByLogSize[logSize], positions)
	}
	return LayeredDecommitment{ByLogSize: out}
}

// VerifyLayered checks every per-log-size decommitment against the
// individually claimed sub-tree roots, and those roots against
// combinedRoot. claimedRoots must contain an entry for every log size
// present in d.
func VerifyLayered(combinedRoot Hash, claimedRoots map[uint32]Hash, sortedLogs []uint32, d LayeredDecommitment) error {
	roots := make([]Hash, len(sortedLogs))
	for i, l := range sortedLogs {
		root, ok := claimedRoots[l]
		if !ok {
			return &LayeredVerificationError{Reason: "missing claimed root for committed log size"}
		}
		roots[i] = root
	}
	if hashRoots(roots) != combinedRoot {
		return &LayeredVerificationError{Reason: "combined root mismatch"}
	}
	for logSize, dec := range d.ByLogSize {
		root, ok := claimedRoots[logSize]
		if !ok {
			return &LayeredVerificationError{Reason: "decommitment references an uncommitted log size"}
		}
		if err := Verify(root, logSize, dec); err != nil {
			return err
		}
	}
	return nil
}
