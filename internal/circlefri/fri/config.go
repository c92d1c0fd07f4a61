// Package fri ties the domain, column, fold, channel, merkle and query
// packages together into the FRI commit/decommit/verify protocol: proving
// (and checking) that a circle-domain evaluation is close to a low-degree
// polynomial by repeatedly folding it down to a small polynomial sent in
// the clear.
package fri

import "fmt"

// Config fixes the shape of a FRI instance: how small the final polynomial
// must be, how much redundancy (blowup) the evaluation domain carries over
// the polynomial's claimed degree, and how many positions get queried.
type Config struct {
	LogLastLayerDegreeBound uint32
	LogBlowupFactor         uint32
	NQueries                int
}

// Validate checks that the configuration describes an instantiable FRI
// instance.
func (c Config) Validate() error {
	if c.LogLastLayerDegreeBound > 10 {
		return fmt.Errorf("fri: log_last_layer_degree_bound must be at most 10, got %d", c.LogLastLayerDegreeBound)
	}
	if c.LogBlowupFactor == 0 || c.LogBlowupFactor > 16 {
		return fmt.Errorf("fri: log_blowup_factor must be in [1, 16], got %d", c.LogBlowupFactor)
	}
	if c.NQueries <= 0 {
		return fmt.Errorf("fri: n_queries must be positive, got %d", c.NQueries)
	}
	return nil
}

// LastLayerDomainLogSize returns log2 of the domain size the folding
// terminates at: the degree bound inflated by the blowup factor, the same
// redundancy every other layer carries.
func (c Config) LastLayerDomainLogSize() uint32 {
	return c.LogLastLayerDegreeBound + c.LogBlowupFactor
}
