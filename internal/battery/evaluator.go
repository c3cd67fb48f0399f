package battery

import (
	"fmt"

	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// Evaluator scores one draw against an ordered list of compiled constraints.
// It holds only read-only state and is safe for concurrent use by the
// search workers.
type Evaluator struct {
	table  *sampling.AttributeTable
	runner ports.TestRunner
}

// NewEvaluator creates an evaluator over a table and a test runner.
func NewEvaluator(table *sampling.AttributeTable, runner ports.TestRunner) *Evaluator {
	return &Evaluator{table: table, runner: runner}
}

// EvaluateAll runs every constraint unconditionally (full-scan mode) and
// returns a pass vector with one entry per constraint, regardless of
// individual outcomes. The feasibility estimator and the outcome reporter
// depend on this: every constraint's marginal result is measured even when
// an earlier one already failed.
func (e *Evaluator) EvaluateAll(constraints []sampling.Constraint, draw sampling.Draw) (sampling.BatteryResult, error) {
	result := sampling.BatteryResult{
		Pass:    make([]bool, len(constraints)),
		PValues: make([]float64, len(constraints)),
	}
	for i, c := range constraints {
		passed, p, err := e.evaluate(c, draw)
		if err != nil {
			return sampling.BatteryResult{}, fmt.Errorf("constraint %d (%s on %q): %w", i, c.Kind, c.Attribute, err)
		}
		result.Pass[i] = passed
		result.PValues[i] = p
	}
	return result, nil
}

// EvaluateEarlyExit runs constraints in the given order and stops at the
// first failure. It returns whether all passed and how many constraints were
// actually evaluated. The scheduler calls this with constraints ordered
// hardest first to maximize rejection savings.
func (e *Evaluator) EvaluateEarlyExit(constraints []sampling.Constraint, draw sampling.Draw) (bool, int, error) {
	for i, c := range constraints {
		passed, _, err := e.evaluate(c, draw)
		if err != nil {
			return false, i + 1, fmt.Errorf("constraint %d (%s on %q): %w", i, c.Kind, c.Attribute, err)
		}
		if !passed {
			return false, i + 1, nil
		}
	}
	return true, len(constraints), nil
}

func (e *Evaluator) evaluate(c sampling.Constraint, draw sampling.Draw) (bool, float64, error) {
	groups := sampling.GroupValues(e.table, draw, c)
	p, err := e.runner.PValue(c.Kind, groups)
	if err != nil {
		return false, 0, err
	}
	passed, err := c.Op.Passes(p, c.Threshold)
	if err != nil {
		return false, 0, err
	}
	return passed, p, nil
}
