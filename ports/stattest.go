package ports

import (
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// TestRunner computes the p-value of one statistical test over the drawn
// per-group value vectors. Implementations are pure and safe for concurrent
// use; degenerate inputs (zero-variance or empty groups) follow whatever the
// underlying routine defines and must be documented there.
type TestRunner interface {
	PValue(kind sampling.TestKind, groups [][]float64) (float64, error)
}
