package fri

import (
	"github.com/vybium/vybium-circle-fri/internal/circlefri/column"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/merkle"
)

// FirstLayerProof is the mixed-log-size commitment over every input circle
// evaluation (at most one per log size, strictly decreasing), per spec.md
// §4.5/§4.7 step 1. Decommitments carries each column's positions and
// authentication paths; the raw values at those positions are split
// between what the verifier already knows (the caller's claimed column
// evaluations at query positions) and FriWitness, the sibling values that
// have to be transmitted because nothing else determines them.
type FirstLayerProof struct {
	CombinedRoot  merkle.Hash
	SortedLogs    []uint32 // descending, one entry per input column
	ColumnRoots   map[uint32]merkle.Hash
	Decommitments map[uint32]merkle.Decommitment
	FriWitness    map[uint32][]field.QM31
}

// LayerProof is one committed inner (line-domain) FRI layer. As with
// FirstLayerProof, Decommitment carries positions and authentication paths;
// FriWitness carries only the sibling values the verifier cannot otherwise
// derive from folding the layer below it.
type LayerProof struct {
	Commitment   merkle.Hash
	Decommitment merkle.Decommitment
	FriWitness   []field.QM31
}

// Proof is the full transcript a Prover hands to a Verifier: the mixed
// first layer, zero or more inner layers, and the small polynomial the
// folding bottoms out at.
type Proof struct {
	FirstLayer  FirstLayerProof
	InnerLayers []LayerProof
	LastLayer   column.LinePoly
}
