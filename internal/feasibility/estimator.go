package feasibility

import (
	"context"
	"fmt"

	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/internal/battery"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// Estimator measures each constraint's marginal pass probability by running
// independent random trials against fresh draws.
type Estimator struct {
	evaluator *battery.Evaluator
	rngPort   ports.RNGPort
}

// NewEstimator creates a feasibility estimator.
func NewEstimator(evaluator *battery.Evaluator, rngPort ports.RNGPort) *Estimator {
	return &Estimator{evaluator: evaluator, rngPort: rngPort}
}

// Estimate runs nTrials independent trials. Each trial draws fresh random
// subsets per group and evaluates all constraints in full-scan mode, so every
// constraint's frequency is tallied regardless of the others. The pools'
// eligible sets are never mutated; each trial's draw is independent.
func (e *Estimator) Estimate(ctx context.Context, pools []sampling.Pool, constraints []sampling.Constraint, nTrials int, seed int64) (*sampling.FeasibilityReport, error) {
	if nTrials <= 0 {
		return nil, fmt.Errorf("trial count must be positive, got %d", nTrials)
	}

	rng, err := e.rngPort.SeededStream(ctx, "feasibility", seed)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire rng stream: %w", err)
	}

	report := &sampling.FeasibilityReport{
		Trials:     nTrials,
		PassCounts: make([]int, len(constraints)),
	}

	for trial := 0; trial < nTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		draw := sampling.RandomDraw(rng, pools)
		result, err := e.evaluator.EvaluateAll(constraints, draw)
		if err != nil {
			return nil, err
		}
		for i, passed := range result.Pass {
			if passed {
				report.PassCounts[i]++
			}
		}
	}

	return report, nil
}
