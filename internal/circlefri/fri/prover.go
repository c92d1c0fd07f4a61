package fri

import (
	"fmt"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/channel"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/column"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/domain"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/fold"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/merkle"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/query"
)

type proverState int

const (
	proverInit proverState = iota
	proverCommitted
	proverDecommitted
)

// Prover drives one FRI instance's commit/decommit phases: Init →
// Committed → Decommitted. Commit folds the input columns down to the
// last-layer polynomial, committing a Merkle tree per intermediate layer and
// mixing every root and challenge through the channel; Decommit opens the
// positions the channel's query draw selects.
type Prover struct {
	config Config
	state  proverState

	columns               []column.SecureEvaluation
	firstColumnsByLogSize map[uint32][][]field.M31
	firstCommitment       *merkle.LayeredCommitment

	innerColumns [][][]field.M31
	innerTrees   []*merkle.Tree

	lastLayer column.LinePoly
}

// NewProver validates cfg and returns a fresh, uncommitted Prover.
func NewProver(cfg Config) (*Prover, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Prover{config: cfg}, nil
}

func columnsOf(c column.SecureColumnByCoords) [][]field.M31 {
	out := make([][]field.M31, 4)
	for i := range out {
		out[i] = c.Columns[i]
	}
	return out
}

// validateColumns checks that columns is non-empty, every entry is a
// canonic circle evaluation strictly larger than the last-layer domain, and
// log sizes strictly decrease (so at most one column shares any given
// size).
func validateColumns(columns []column.SecureEvaluation, lastLayerLog uint32) error {
	if len(columns) == 0 {
		return fmt.Errorf("fri: Commit requires at least one column")
	}
	for i, c := range columns {
		if !c.Domain.IsCanonic() {
			return fmt.Errorf("fri: column %d domain is not canonic", i)
		}
		if c.Domain.LogSize() <= lastLayerLog {
			return fmt.Errorf("fri: column %d log size %d must exceed the last layer domain log size %d", i, c.Domain.LogSize(), lastLayerLog)
		}
		if i > 0 && columns[i].Domain.LogSize() >= columns[i-1].Domain.LogSize() {
			return fmt.Errorf("fri: columns must be strictly decreasing in size: column %d has log size %d, column %d has log size %d", i-1, columns[i-1].Domain.LogSize(), i, columns[i].Domain.LogSize())
		}
	}
	return nil
}

// Commit folds columns down to the last-layer polynomial, committing one
// mixed-log-size Merkle layer for all of columns and one plain Merkle layer
// per subsequent fold step, driving ch identically to how Verifier.Commit
// will replay it. columns must be canonic circle evaluations, strictly
// decreasing in size, each larger than the configured last-layer domain;
// every column must end up merged into the fold chain by the time it
// reaches the last layer; if any are left over, Commit fails rather than
// silently dropping them.
func (p *Prover) Commit(ch *channel.Channel, columns []column.SecureEvaluation) error {
	if p.state != proverInit {
		return fmt.Errorf("fri: Prover.Commit called out of order")
	}
	lastLayerLog := p.config.LastLayerDomainLogSize()
	if err := validateColumns(columns, lastLayerLog); err != nil {
		return err
	}
	lastLayerSize := 1 << lastLayerLog

	p.columns = columns
	p.firstColumnsByLogSize = make(map[uint32][][]field.M31, len(columns))
	for _, c := range columns {
		p.firstColumnsByLogSize[c.Domain.LogSize()] = columnsOf(c.Values)
	}
	p.firstCommitment = merkle.CommitLayers(p.firstColumnsByLogSize)
	ch.MixRoot(p.firstCommitment.CombinedRoot)
	alpha0 := ch.DrawFelt()

	lineDomain := domain.NewLineDomain(columns[0].Domain.HalfCoset())
	cur := column.NewLineEvaluation(lineDomain, column.NewSecureColumnByCoords(lineDomain.Size()))
	twiddles0 := domain.CircleTwiddles(columns[0].Domain)
	fold.FoldCircleIntoLine(cur, columns[0], alpha0, twiddles0)

	colIdx := 1
	for cur.Len() > lastLayerSize {
		cols := columnsOf(cur.Values)
		tree := merkle.Commit(cols)
		ch.MixRoot(tree.Root())
		alpha := ch.DrawFelt()

		p.innerColumns = append(p.innerColumns, cols)
		p.innerTrees = append(p.innerTrees, tree)

		twiddles := domain.PrecomputeTwiddles(cur.Domain).Layers[0]
		cur = fold.FoldLine(cur, alpha, twiddles)

		for colIdx < len(columns) && columns[colIdx].Len()/2 == cur.Len() {
			mergeTwiddles := domain.CircleTwiddles(columns[colIdx].Domain)
			fold.FoldCircleIntoLine(cur, columns[colIdx], alpha, mergeTwiddles)
			colIdx++
		}
	}
	if cur.Len() != lastLayerSize {
		return fmt.Errorf("fri: folded evaluation length %d does not match the last layer domain size %d", cur.Len(), lastLayerSize)
	}
	if colIdx != len(columns) {
		return fmt.Errorf("fri: column sizes not decreasing fast enough to be fully consumed by the fold chain (%d of %d columns merged)", colIdx, len(columns))
	}

	poly := column.Interpolate(cur)
	ordered := poly.IntoOrderedCoefficients()
	truncateLen := 1 << p.config.LogLastLayerDegreeBound
	for _, c := range ordered[truncateLen:] {
		if !c.IsZero() {
			return fmt.Errorf("fri: last layer evaluation is not a polynomial of degree < 2^%d", p.config.LogLastLayerDegreeBound)
		}
	}
	p.lastLayer = column.FromOrderedCoefficients(ordered[:truncateLen])
	ch.MixFelts(p.lastLayer.IntoOrderedCoefficients())

	p.state = proverCommitted
	return nil
}

// Decommit draws query positions from ch (which must be in the exact state
// Commit left it in) and opens every layer at the positions the folding
// chain needs to verify those queries. Queried values are not repeated in
// the returned witnesses: the first layer's are expected to come from the
// caller's own claimed column evaluations (the FRI/PCS handoff), and inner
// layers' from the verifier's own fold computation.
func (p *Prover) Decommit(ch *channel.Channel) (Proof, error) {
	if p.state != proverCommitted {
		return Proof{}, fmt.Errorf("fri: Prover.Decommit called before Commit")
	}

	maxLog := p.columns[0].Domain.LogSize()
	qRaw := query.Generate(ch, maxLog, p.config.NQueries)
	numInner := len(p.innerTrees)
	qLayers := make([]query.Queries, numInner+1)
	qLayers[0] = qRaw.Fold(1)
	for k := 1; k < len(qLayers); k++ {
		qLayers[k] = qLayers[k-1].Fold(1)
	}

	firstLayer := FirstLayerProof{
		SortedLogs:    p.firstCommitment.SortedLogs,
		CombinedRoot:  p.firstCommitment.CombinedRoot,
		ColumnRoots:   make(map[uint32]merkle.Hash, len(p.columns)),
		Decommitments: make(map[uint32]merkle.Decommitment, len(p.columns)),
		FriWitness:    make(map[uint32][]field.QM31, len(p.columns)),
	}
	for _, c := range p.columns {
		s := c.Domain.LogSize()
		shift := maxLog - s
		knownPositions := qRaw.Fold(shift).Positions
		pairPositions := pairExpand(qLayers[shift].Positions)

		tree := p.firstCommitment.Trees[s]
		dec := tree.Decommit(p.firstColumnsByLogSize[s], pairPositions)
		trimmed, witness := splitWitness(dec, knownPositions)

		firstLayer.ColumnRoots[s] = tree.Root()
		firstLayer.Decommitments[s] = trimmed
		firstLayer.FriWitness[s] = witness
	}

	innerLayers := make([]LayerProof, numInner)
	for k, tree := range p.innerTrees {
		pairPositions := pairExpand(qLayers[k+1].Positions)
		dec := tree.Decommit(p.innerColumns[k], pairPositions)
		trimmed, witness := splitWitness(dec, qLayers[k].Positions)
		innerLayers[k] = LayerProof{Commitment: tree.Root(), Decommitment: trimmed, FriWitness: witness}
	}

	p.state = proverDecommitted
	return Proof{
		FirstLayer:  firstLayer,
		InnerLayers: innerLayers,
		LastLayer:   p.lastLayer,
	}, nil
}
