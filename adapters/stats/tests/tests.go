package tests

import (
	"fmt"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// StatTest computes a p-value for one test kind over per-group value vectors.
type StatTest interface {
	Kind() sampling.TestKind
	PValue(groups [][]float64) (float64, error)
}

// Runner dispatches constraint evaluations to the registered tests.
// It implements ports.TestRunner and is safe for concurrent use: the
// registry is built once and never mutated afterwards.
type Runner struct {
	registry map[sampling.TestKind]StatTest
}

// NewRunner creates a runner with the standard battery: Welch's t-test for
// two-sample constraints and one-way ANOVA for k-sample constraints.
func NewRunner() *Runner {
	r := &Runner{registry: make(map[sampling.TestKind]StatTest)}
	r.Register(NewWelchTTest())
	r.Register(NewOneWayANOVA())
	return r
}

// Register adds or replaces the test for a kind.
func (r *Runner) Register(test StatTest) {
	r.registry[test.Kind()] = test
}

// PValue runs the registered test for kind over the drawn group values.
func (r *Runner) PValue(kind sampling.TestKind, groups [][]float64) (float64, error) {
	test, ok := r.registry[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %s", core.ErrUnknownTestKind, kind)
	}
	return test.PValue(groups)
}
