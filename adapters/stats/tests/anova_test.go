package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

func TestANOVASeparatedGroups(t *testing.T) {
	test := NewOneWayANOVA()
	p, err := test.PValue([][]float64{
		{1.0, 1.1, 0.9, 1.0},
		{5.0, 5.1, 4.9, 5.0},
		{9.0, 9.1, 8.9, 9.0},
	})
	require.NoError(t, err)
	assert.Less(t, p, 0.001, "well separated group means must be significant")
}

func TestANOVASimilarGroups(t *testing.T) {
	test := NewOneWayANOVA()
	p, err := test.PValue([][]float64{
		{5.0, 5.3, 4.8, 5.1},
		{5.1, 4.9, 5.2, 5.0},
		{4.9, 5.2, 5.0, 5.1},
	})
	require.NoError(t, err)
	assert.Greater(t, p, 0.05, "near-identical group means must not be significant")
}

func TestANOVAZeroWithinVariance(t *testing.T) {
	test := NewOneWayANOVA()

	// Constant groups with different values: p defined as 0.
	p, err := test.PValue([][]float64{{1, 1}, {2, 2}, {3, 3}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	// All groups identical constants: p defined as 1.
	p, err = test.PValue([][]float64{{4, 4}, {4, 4}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestANOVARejectsSingleGroup(t *testing.T) {
	test := NewOneWayANOVA()
	_, err := test.PValue([][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, core.ErrGroupCount)
}

func TestRunnerDispatchesByKind(t *testing.T) {
	runner := NewRunner()

	pTwo, err := runner.PValue(sampling.TestTwoSample, [][]float64{
		{1, 1.1, 0.9}, {9, 9.1, 8.9},
	})
	require.NoError(t, err)
	assert.Less(t, pTwo, 0.01)

	pK, err := runner.PValue(sampling.TestKSample, [][]float64{
		{1, 1.1, 0.9}, {9, 9.1, 8.9}, {5, 5.1, 4.9},
	})
	require.NoError(t, err)
	assert.Less(t, pK, 0.01)
}

func TestRunnerUnknownKind(t *testing.T) {
	runner := NewRunner()
	_, err := runner.PValue(sampling.TestKind(99), [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, core.ErrUnknownTestKind)
}
