package pool

import (
	"fmt"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// Build derives each group's eligible index set by applying its filters
// conjunctively across the attribute table. Pure function of its inputs.
//
// Unknown filter attributes or operators fail with a configuration error.
// Pool-size findings do not fail the build: a group whose required N equals
// its pool size gets a warning note (unique draw), a group whose N exceeds
// it gets an error note that blocks search start at the caller.
func Build(table *sampling.AttributeTable, specs []sampling.GroupSpec) ([]sampling.Pool, []sampling.FeasibilityNote, error) {
	pools := make([]sampling.Pool, 0, len(specs))
	notes := make([]sampling.FeasibilityNote, 0)

	for _, spec := range specs {
		eligible, err := eligibleRows(table, spec)
		if err != nil {
			return nil, nil, fmt.Errorf("group %q: %w", spec.Label, err)
		}

		if spec.N > len(eligible) {
			notes = append(notes, sampling.FeasibilityNote{
				Label:    spec.Label,
				Severity: sampling.SeverityError,
				Message:  core.NewPoolError(spec.Label, spec.N, len(eligible)).Error(),
			})
		} else if spec.N == len(eligible) {
			notes = append(notes, sampling.FeasibilityNote{
				Label:    spec.Label,
				Severity: sampling.SeverityWarning,
				Message:  fmt.Sprintf("group %q admits exactly one draw (N == pool size == %d)", spec.Label, spec.N),
			})
		}

		pools = append(pools, sampling.Pool{Label: spec.Label, N: spec.N, Eligible: eligible})
	}

	return pools, notes, nil
}

func eligibleRows(table *sampling.AttributeTable, spec sampling.GroupSpec) ([]int, error) {
	// Resolve filter columns once, before the row scan.
	columns := make([]int, len(spec.Filters))
	for i, f := range spec.Filters {
		c, ok := table.Column(f.Attribute)
		if !ok {
			return nil, core.NewAttributeError(f.Attribute)
		}
		columns[i] = c
	}

	eligible := make([]int, 0, table.RowCount())
	for row := 0; row < table.RowCount(); row++ {
		keep := true
		for i, f := range spec.Filters {
			ok, err := f.Op.Compare(table.Columns[columns[i]][row], f.Threshold)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			eligible = append(eligible, row)
		}
	}
	return eligible, nil
}
