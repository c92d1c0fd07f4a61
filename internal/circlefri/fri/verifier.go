package fri

import (
	"fmt"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/channel"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/domain"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/fold"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/merkle"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/query"
)

type verifierState int

const (
	verifierInit verifierState = iota
	verifierCommitted
	verifierQueriesSampled
)

// Verifier replays a Prover's transcript against a Proof: Init →
// Committed → QueriesSampled → (Decommit succeeds or fails). ColumnLogSizes
// are the log2 sizes of every input column's evaluation, descending, which
// the verifier must know independently of the proof (they are part of what
// the claim being proven fixes, analogous to a commitment's claimed
// degree).
type Verifier struct {
	config         Config
	columnLogSizes []uint32
	state          verifierState

	alpha0      field.QM31
	innerAlphas []field.QM31
}

// NewVerifier validates cfg and columnLogSizes (non-empty, strictly
// decreasing, each exceeding the configured last-layer domain log size) and
// returns a fresh Verifier.
func NewVerifier(cfg Config, columnLogSizes []uint32) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lastLayerLog := cfg.LastLayerDomainLogSize()
	if len(columnLogSizes) == 0 {
		return nil, fmt.Errorf("fri: NewVerifier requires at least one column log size")
	}
	for i, s := range columnLogSizes {
		if s <= lastLayerLog {
			return nil, fmt.Errorf("fri: column %d log size %d must exceed the last layer domain log size %d", i, s, lastLayerLog)
		}
		if i > 0 && columnLogSizes[i] >= columnLogSizes[i-1] {
			return nil, fmt.Errorf("fri: column log sizes must be strictly decreasing: column %d has %d, column %d has %d", i-1, columnLogSizes[i-1], i, columnLogSizes[i])
		}
	}
	return &Verifier{config: cfg, columnLogSizes: columnLogSizes}, nil
}

// Commit replays the commit-phase transcript against proof, checking the
// column/layer structure and the last-layer degree bound. It does not check
// any Merkle decommitment or fold consistency; that happens in Decommit.
func (v *Verifier) Commit(ch *channel.Channel, proof Proof) error {
	if v.state != verifierInit {
		return fmt.Errorf("fri: Verifier.Commit called out of order")
	}

	maxLog := v.columnLogSizes[0]
	lastLayerLog := v.config.LastLayerDomainLogSize()
	expectedInner := int(maxLog) - 1 - int(lastLayerLog)
	if expectedInner < 0 || len(proof.InnerLayers) != expectedInner {
		return &VerificationError{Kind: InvalidNumFriLayers}
	}
	if !uint32SlicesEqual(proof.FirstLayer.SortedLogs, v.columnLogSizes) {
		return &VerificationError{Kind: InvalidNumFriLayers}
	}

	ch.MixRoot(proof.FirstLayer.CombinedRoot)
	v.alpha0 = ch.DrawFelt()

	v.innerAlphas = make([]field.QM31, len(proof.InnerLayers))
	for i, layer := range proof.InnerLayers {
		ch.MixRoot(layer.Commitment)
		v.innerAlphas[i] = ch.DrawFelt()
	}

	truncateLen := 1 << v.config.LogLastLayerDegreeBound
	if proof.LastLayer.Len() > truncateLen {
		return &VerificationError{Kind: LastLayerDegreeInvalid}
	}
	ch.MixFelts(proof.LastLayer.IntoOrderedCoefficients())

	v.state = verifierCommitted
	return nil
}

// SampleQueryPositions draws the query positions used for the first layer,
// at the largest column's own (full) domain size.
func (v *Verifier) SampleQueryPositions(ch *channel.Channel) (query.Queries, error) {
	if v.state != verifierCommitted {
		return query.Queries{}, fmt.Errorf("fri: queries not sampled: Verifier.Commit has not succeeded")
	}
	q := query.Generate(ch, v.columnLogSizes[0], v.config.NQueries)
	v.state = verifierQueriesSampled
	return q, nil
}

// alphaForColumn returns the folding challenge that merges column s into
// the running layer: alpha0 for the largest column (which seeds the fold
// chain directly) or the inner-layer alpha drawn right before the layer
// whose size column s's single fold lands on.
func (v *Verifier) alphaForColumn(maxLog, s uint32) field.QM31 {
	idx := int(maxLog) - 1 - int(s)
	if idx < 0 {
		return v.alpha0
	}
	return v.innerAlphas[idx]
}

// Decommit checks proof's Merkle decommitments and fold consistency against
// the query positions qRaw (as returned by SampleQueryPositions) and the
// caller's claimed column evaluations at those positions
// (firstLayerQueryEvals, keyed by column log size, values ascending in
// query position order), and finally checks the last layer polynomial's
// claimed evaluations. firstLayerQueryEvals is the FRI/PCS handoff: FRI
// checks that these values are consistent with the first-layer commitment
// and the rest of the proof, but does not originate them itself.
func (v *Verifier) Decommit(proof Proof, qRaw query.Queries, firstLayerQueryEvals map[uint32][]field.QM31) error {
	if v.state != verifierQueriesSampled {
		return fmt.Errorf("fri: queries not sampled")
	}

	maxLog := v.columnLogSizes[0]
	numInner := len(proof.InnerLayers)
	qLayers := make([]query.Queries, numInner+1)
	qLayers[0] = qRaw.Fold(1)
	for k := 1; k < len(qLayers); k++ {
		qLayers[k] = qLayers[k-1].Fold(1)
	}

	layeredDec := merkle.LayeredDecommitment{ByLogSize: make(map[uint32]merkle.Decommitment, len(v.columnLogSizes))}
	columnFold := make(map[uint32][]field.QM31, len(v.columnLogSizes))

	for _, s := range v.columnLogSizes {
		shift := maxLog - s
		qcRaw := qRaw.Fold(shift)
		pairPositions := pairExpand(qLayers[shift].Positions)

		dec, ok := proof.FirstLayer.Decommitments[s]
		if !ok || !positionsEqual(dec.Positions, pairPositions) {
			return &VerificationError{Kind: FirstLayerEvaluationsInvalid}
		}
		known := firstLayerQueryEvals[s]
		if len(known) != len(qcRaw.Positions) {
			return &VerificationError{Kind: FirstLayerEvaluationsInvalid}
		}
		knownByPos := make(map[int]field.QM31, len(known))
		for i, pos := range qcRaw.Positions {
			knownByPos[pos] = known[i]
		}
		values, err := reconstructValues(dec.Positions, knownByPos, proof.FirstLayer.FriWitness[s])
		if err != nil {
			return &VerificationError{Kind: FirstLayerEvaluationsInvalid}
		}
		layeredDec.ByLogSize[s] = merkle.Decommitment{Positions: dec.Positions, Values: values, AuthPaths: dec.AuthPaths}

		twiddles := domain.CircleTwiddles(domain.NewCanonicCoset(s).CircleDomain())
		subsets := make([][2]field.QM31, len(qLayers[shift].Positions))
		twInv := make([]field.M31, len(qLayers[shift].Positions))
		for j, q := range qLayers[shift].Positions {
			idx0 := lookupIndex(pairPositions, 2*q)
			idx1 := lookupIndex(pairPositions, 2*q+1)
			if idx0 < 0 || idx1 < 0 {
				return &VerificationError{Kind: FirstLayerEvaluationsInvalid}
			}
			subsets[j] = [2]field.QM31{toQM31(values[idx0]), toQM31(values[idx1])}
			twInv[j] = twiddles[q]
		}
		columnFold[s] = fold.NewSparseEvaluation(subsets).FoldCircle(v.alphaForColumn(maxLog, s), twInv, nil)
	}

	if err := merkle.VerifyLayered(proof.FirstLayer.CombinedRoot, proof.FirstLayer.ColumnRoots, proof.FirstLayer.SortedLogs, layeredDec); err != nil {
		return &VerificationError{Kind: FirstLayerCommitmentInvalid, cause: err}
	}

	curVal := columnFold[maxLog]
	curPositions := qLayers[0].Positions

	lineDomain := domain.NewLineDomain(domain.NewCanonicCoset(maxLog).CircleDomain().HalfCoset())
	layerLogSize := maxLog - 1

	for k := 0; k < numInner; k++ {
		layer := proof.InnerLayers[k]
		nextPositions := qLayers[k+1].Positions
		pairPos := pairExpand(nextPositions)

		if !positionsEqual(layer.Decommitment.Positions, pairPos) {
			return &VerificationError{Kind: InnerLayerEvaluationsInvalid, Layer: k}
		}
		knownByPos := make(map[int]field.QM31, len(curPositions))
		for i, pos := range curPositions {
			knownByPos[pos] = curVal[i]
		}
		values, err := reconstructValues(layer.Decommitment.Positions, knownByPos, layer.FriWitness)
		if err != nil {
			return &VerificationError{Kind: InnerLayerEvaluationsInvalid, Layer: k}
		}
		fullDec := merkle.Decommitment{Positions: layer.Decommitment.Positions, Values: values, AuthPaths: layer.Decommitment.AuthPaths}
		if err := merkle.Verify(layer.Commitment, layerLogSize, fullDec); err != nil {
			return &VerificationError{Kind: InnerLayerCommitmentInvalid, Layer: k, cause: err}
		}

		twiddles := domain.PrecomputeTwiddles(lineDomain).Layers[0]
		subsets := make([][2]field.QM31, len(nextPositions))
		twInv := make([]field.M31, len(nextPositions))
		for j, q := range nextPositions {
			idx0 := lookupIndex(pairPos, 2*q)
			idx1 := lookupIndex(pairPos, 2*q+1)
			subsets[j] = [2]field.QM31{toQM31(values[idx0]), toQM31(values[idx1])}
			twInv[j] = twiddles[q]
		}
		curVal = fold.NewSparseEvaluation(subsets).FoldLine(v.innerAlphas[k], twInv)
		curPositions = nextPositions
		lineDomain = lineDomain.Double()
		layerLogSize--

		for _, s := range v.columnLogSizes {
			if int(maxLog)-1-int(s) == k {
				alphaSq := v.innerAlphas[k].Mul(v.innerAlphas[k])
				contribution := columnFold[s]
				for i := range curVal {
					curVal[i] = curVal[i].Mul(alphaSq).Add(contribution[i])
				}
			}
		}
	}

	for j, q := range curPositions {
		x := lineDomain.At(int(domain.BitReverseIndex(uint32(q), lineDomain.LogSize())))
		want := proof.LastLayer.Eval(x)
		if !want.Equal(curVal[j]) {
			return &VerificationError{Kind: LastLayerEvaluationsInvalid}
		}
	}
	return nil
}
