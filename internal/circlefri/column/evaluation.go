package column

import (
	"github.com/vybium/vybium-circle-fri/internal/circlefri/domain"
	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
)

// LineEvaluation pairs a LineDomain with a SecureColumnByCoords of matching
// length, holding values stored in the domain's bit-reversed order: index i
// of Values corresponds to domain.At(BitReverseIndex(i, logSize)), not
// domain.At(i) directly. fold_line consumes and produces evaluations in this
// layout so no reordering work happens on the hot path.
type LineEvaluation struct {
	Domain domain.LineDomain
	Values SecureColumnByCoords
}

// NewLineEvaluation pairs d with values, which must already be in
// bit-reversed domain order and whose length must equal d.Size().
func NewLineEvaluation(d domain.LineDomain, values SecureColumnByCoords) LineEvaluation {
	if values.Len() != d.Size() {
		panic("column: LineEvaluation domain/values length mismatch")
	}
	return LineEvaluation{Domain: d, Values: values}
}

// Len returns the number of evaluations, equal to Domain.Size().
func (e LineEvaluation) Len() int { return e.Values.Len() }

// SecureEvaluation pairs a CircleDomain with a SecureColumnByCoords of
// matching length, in the domain's bit-reversed order.
type SecureEvaluation struct {
	Domain domain.CircleDomain
	Values SecureColumnByCoords
}

// NewSecureEvaluation pairs d with values, which must already be in
// bit-reversed domain order and whose length must equal d.Size().
func NewSecureEvaluation(d domain.CircleDomain, values SecureColumnByCoords) SecureEvaluation {
	if values.Len() != d.Size() {
		panic("column: SecureEvaluation domain/values length mismatch")
	}
	return SecureEvaluation{Domain: d, Values: values}
}

// Len returns the number of evaluations, equal to Domain.Size().
func (e SecureEvaluation) Len() int { return e.Values.Len() }

// At returns the value at natural (non-bit-reversed) domain index i.
func (e SecureEvaluation) At(i int) field.QM31 {
	j := domain.BitReverseIndex(uint32(i), e.Domain.LogSize())
	return e.Values.At(int(j))
}
