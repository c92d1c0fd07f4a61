// Package query implements Fiat-Shamir-driven sampling of FRI query
// positions, and the folding of those positions as the verifier walks down
// through successive, half-sized FRI layers.
package query

import (
	"sort"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/channel"
)

// Queries is a deduplicated, sorted set of positions into a domain of size
// 2^LogDomainSize.
type Queries struct {
	LogDomainSize uint32
	Positions     []int
}

// Generate draws nQueries random positions into a domain of size
// 2^logDomainSize from ch, deduplicating and sorting the result. Because
// duplicates are dropped rather than redrawn, the number of distinct
// positions returned can be fewer than nQueries when nQueries is large
// relative to the domain.
func Generate(ch *channel.Channel, logDomainSize uint32, nQueries int) Queries {
	mask := uint32(1)<<logDomainSize - 1
	raw := ch.DrawRandomM31s(nQueries)

	seen := make(map[int]struct{}, nQueries)
	positions := make([]int, 0, nQueries)
	for _, x := range raw {
		p := int(x.Value() & mask)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		positions = append(positions, p)
	}
	sort.Ints(positions)

	return Queries{LogDomainSize: logDomainSize, Positions: positions}
}

// Fold maps every position down into a domain of size 2^(LogDomainSize-n) by
// shifting out its n lowest bits, then deduplicates and re-sorts: this is
// exactly how query positions track a FRI layer as it folds down n times.
func (q Queries) Fold(n uint32) Queries {
	if n > q.LogDomainSize {
		panic("query: Fold shift exceeds the domain's log size")
	}
	seen := make(map[int]struct{}, len(q.Positions))
	folded := make([]int, 0, len(q.Positions))
	for _, p := range q.Positions {
		fp := p >> n
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		folded = append(folded, fp)
	}
	sort.Ints(folded)
	return Queries{LogDomainSize: q.LogDomainSize - n, Positions: folded}
}
