package tests

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// WelchTTest compares two group means without assuming equal variances.
type WelchTTest struct{}

// NewWelchTTest creates the two-sample test.
func NewWelchTTest() *WelchTTest {
	return &WelchTTest{}
}

// Kind returns the test kind this implementation serves.
func (t *WelchTTest) Kind() sampling.TestKind {
	return sampling.TestTwoSample
}

// PValue computes the two-sided Welch p-value for exactly two groups.
//
// Degenerate inputs are resolved explicitly rather than left to NaN
// propagation: when both groups have zero variance the standard error is 0,
// and the p-value is defined as 0 if the means differ and 1 if they are
// equal. Groups smaller than 2 yield p=1 (no evidence either way).
func (t *WelchTTest) PValue(groups [][]float64) (float64, error) {
	if len(groups) != 2 {
		return 0, fmt.Errorf("%w: two-sample test got %d groups", core.ErrGroupCount, len(groups))
	}
	a, b := groups[0], groups[1]
	if len(a) < 2 || len(b) < 2 {
		return 1.0, nil
	}

	meanA, _ := stats.Mean(a)
	meanB, _ := stats.Mean(b)
	varA, _ := stats.SampleVariance(a)
	varB, _ := stats.SampleVariance(b)

	nA := float64(len(a))
	nB := float64(len(b))

	se := math.Sqrt(varA/nA + varB/nB)
	if se == 0 {
		if meanA == meanB {
			return 1.0, nil
		}
		return 0.0, nil
	}

	tStat := (meanA - meanB) / se

	// Welch-Satterthwaite degrees of freedom
	df := math.Pow(varA/nA+varB/nB, 2) /
		(math.Pow(varA/nA, 2)/(nA-1) + math.Pow(varB/nB, 2)/(nB-1))
	if df <= 0 || math.IsNaN(df) {
		return 1.0, nil
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(tStat))
	if p > 1 {
		p = 1
	}
	return p, nil
}
