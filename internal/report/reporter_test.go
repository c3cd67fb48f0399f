package report

import (
	"testing"

	"github.com/LabpsicofisioUCU/ViCC/adapters/stats/tests"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/internal/battery"
	"github.com/LabpsicofisioUCU/ViCC/internal/testkit"
)

func TestReportMatchesEvaluatorPValues(t *testing.T) {
	table := testkit.NewTable(
		[]string{"luminance", "contrast"},
		[][]float64{
			{1.0, 1.2, 0.9, 9.8, 10.1, 10.0},
			{0.5, 0.52, 0.48, 0.51, 0.49, 0.5},
		},
	)
	pools := []sampling.Pool{
		{Label: "low", N: 3, Eligible: []int{0, 1, 2}},
		{Label: "high", N: 3, Eligible: []int{3, 4, 5}},
	}
	constraints, err := sampling.CompileConstraints(table, pools, []sampling.ConstraintSpec{
		{Kind: sampling.TestTwoSample, Attribute: "luminance", Groups: []string{"low", "high"}, Op: sampling.PValueLess, Threshold: 0.05},
		{Kind: sampling.TestTwoSample, Attribute: "contrast", Groups: []string{"low", "high"}, Op: sampling.PValueGreater, Threshold: 0.05},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	draw := sampling.Draw{{0, 1, 2}, {3, 4, 5}}

	runner := tests.NewRunner()
	result, err := battery.NewEvaluator(table, runner).EvaluateAll(constraints, draw)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	reports, err := NewReporter(table, runner).Report(pools, constraints, draw)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if len(reports) != len(constraints) {
		t.Fatalf("got %d reports for %d constraints", len(reports), len(constraints))
	}
	for i, rep := range reports {
		if rep.PValue != result.PValues[i] {
			t.Errorf("constraint %d: report p=%v, evaluator p=%v", i, rep.PValue, result.PValues[i])
		}
		if rep.Passed != result.Pass[i] {
			t.Errorf("constraint %d: report pass=%v, evaluator pass=%v", i, rep.Passed, result.Pass[i])
		}
		if !rep.Passed {
			t.Errorf("constraint %d should pass on this separated fixture", i)
		}
	}
}

func TestReportGroupSummaries(t *testing.T) {
	table := testkit.NewTable([]string{"x"}, [][]float64{{2, 4, 6, 8}})
	pools := []sampling.Pool{
		{Label: "A", N: 2, Eligible: []int{0, 1}},
		{Label: "B", N: 2, Eligible: []int{2, 3}},
	}
	constraints, err := sampling.CompileConstraints(table, pools, []sampling.ConstraintSpec{{
		Kind: sampling.TestTwoSample, Attribute: "x", Groups: []string{"A", "B"},
		Op: sampling.PValueGreater, Threshold: 0.01,
	}})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	reports, err := NewReporter(table, tests.NewRunner()).Report(pools, constraints, sampling.Draw{{0, 1}, {2, 3}})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	groups := reports[0].Groups
	if groups[0].Label != "A" || groups[1].Label != "B" {
		t.Fatalf("labels = %s/%s, want A/B", groups[0].Label, groups[1].Label)
	}
	if groups[0].Stats.N != 2 || groups[0].Stats.Mean != 3 {
		t.Errorf("group A stats = %+v, want N=2 mean=3", groups[0].Stats)
	}
	if groups[1].Stats.Mean != 7 {
		t.Errorf("group B mean = %v, want 7", groups[1].Stats.Mean)
	}
}
