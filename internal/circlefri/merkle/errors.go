package merkle

import "fmt"

// VerificationError reports that a decommitment failed to reproduce the
// committed root at a specific queried position.
type VerificationError struct {
	LogSize  uint32
	Position int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("merkle: decommitment at log_size=%d position=%d does not match the committed root", e.LogSize, e.Position)
}

// LayeredVerificationError reports a structural failure in a
// LayeredCommitment's combined root or one of its per-log-size roots.
type LayeredVerificationError struct {
	Reason string
}

func (e *LayeredVerificationError) Error() string {
	return fmt.Sprintf("merkle: layered commitment verification failed: %s", e.Reason)
}
