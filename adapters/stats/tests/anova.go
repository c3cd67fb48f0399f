package tests

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// OneWayANOVA compares the means of two or more groups with an F-test.
type OneWayANOVA struct{}

// NewOneWayANOVA creates the k-sample test.
func NewOneWayANOVA() *OneWayANOVA {
	return &OneWayANOVA{}
}

// Kind returns the test kind this implementation serves.
func (t *OneWayANOVA) Kind() sampling.TestKind {
	return sampling.TestKSample
}

// PValue computes the one-way ANOVA p-value across k >= 2 groups.
//
// Degenerate inputs are resolved explicitly: when the within-group mean
// square is 0 the p-value is defined as 0 if the group means differ and 1
// if they are all equal.
func (t *OneWayANOVA) PValue(groups [][]float64) (float64, error) {
	if len(groups) < 2 {
		return 0, fmt.Errorf("%w: k-sample test got %d groups", core.ErrGroupCount, len(groups))
	}

	total := 0
	grandSum := 0.0
	means := make([]float64, len(groups))
	for i, g := range groups {
		if len(g) == 0 {
			return 1.0, nil
		}
		m, _ := stats.Mean(g)
		means[i] = m
		total += len(g)
		grandSum += m * float64(len(g))
	}
	k := len(groups)
	if total <= k {
		return 1.0, nil
	}
	grandMean := grandSum / float64(total)

	ssBetween := 0.0
	ssWithin := 0.0
	for i, g := range groups {
		diff := means[i] - grandMean
		ssBetween += float64(len(g)) * diff * diff
		for _, v := range g {
			d := v - means[i]
			ssWithin += d * d
		}
	}

	dfBetween := float64(k - 1)
	dfWithin := float64(total - k)
	msBetween := ssBetween / dfBetween
	msWithin := ssWithin / dfWithin

	if msWithin == 0 {
		if msBetween == 0 {
			return 1.0, nil
		}
		return 0.0, nil
	}

	f := msBetween / msWithin
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0, nil
	}

	dist := distuv.F{D1: dfBetween, D2: dfWithin}
	p := 1 - dist.CDF(f)
	if p < 0 {
		p = 0
	}
	return p, nil
}
