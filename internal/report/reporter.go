package report

import (
	"fmt"

	"github.com/LabpsicofisioUCU/ViCC/adapters/stats/tests"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// Reporter recomputes full statistics for an accepted draw. It is purely
// informational: acceptance was already decided by the scheduler, and the
// p-values here must match the evaluator's for the same draw because both
// dispatch through the same test runner.
type Reporter struct {
	table  *sampling.AttributeTable
	runner ports.TestRunner
}

// NewReporter creates a reporter over the same table and runner the
// evaluator used.
func NewReporter(table *sampling.AttributeTable, runner ports.TestRunner) *Reporter {
	return &Reporter{table: table, runner: runner}
}

// Report re-runs every constraint's statistical test on the accepted draw
// and returns per-constraint p-values with descriptive statistics per group.
func (r *Reporter) Report(pools []sampling.Pool, constraints []sampling.Constraint, draw sampling.Draw) ([]sampling.ConstraintReport, error) {
	reports := make([]sampling.ConstraintReport, 0, len(constraints))
	for i, c := range constraints {
		groups := sampling.GroupValues(r.table, draw, c)
		p, err := r.runner.PValue(c.Kind, groups)
		if err != nil {
			return nil, fmt.Errorf("constraint %d (%s on %q): %w", i, c.Kind, c.Attribute, err)
		}
		passed, err := c.Op.Passes(p, c.Threshold)
		if err != nil {
			return nil, err
		}

		summaries := make([]sampling.GroupSummary, len(c.Groups))
		for gi, g := range c.Groups {
			summaries[gi] = sampling.GroupSummary{
				Label: pools[g].Label,
				Stats: tests.Describe(groups[gi]),
			}
		}

		reports = append(reports, sampling.ConstraintReport{
			Attribute: c.Attribute,
			Kind:      c.Kind.String(),
			Op:        c.Op.String(),
			Threshold: c.Threshold,
			PValue:    p,
			Passed:    passed,
			Groups:    summaries,
		})
	}
	return reports, nil
}
