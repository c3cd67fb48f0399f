package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
)

func TestWelchDistinctMeans(t *testing.T) {
	test := NewWelchTTest()
	p, err := test.PValue([][]float64{
		{1.0, 1.2, 0.9, 1.1, 1.0},
		{9.8, 10.1, 10.0, 9.9, 10.2},
	})
	require.NoError(t, err)
	assert.Less(t, p, 0.001, "clearly separated groups must be significant")
}

func TestWelchSimilarGroups(t *testing.T) {
	test := NewWelchTTest()
	p, err := test.PValue([][]float64{
		{5.0, 5.2, 4.9, 5.1, 5.0},
		{5.1, 4.9, 5.0, 5.2, 4.8},
	})
	require.NoError(t, err)
	assert.Greater(t, p, 0.05, "near-identical groups must not be significant")
}

func TestWelchZeroVarianceDistinctMeans(t *testing.T) {
	// Both groups constant with different values: se is 0, the p-value is
	// defined as 0 so a similarity constraint (p > alpha) fails and a
	// difference constraint (p < alpha) passes.
	test := NewWelchTTest()
	p, err := test.PValue([][]float64{
		{1, 1, 1, 1},
		{10, 10, 10, 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestWelchZeroVarianceEqualMeans(t *testing.T) {
	test := NewWelchTTest()
	p, err := test.PValue([][]float64{
		{3, 3, 3},
		{3, 3, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestWelchTinyGroups(t *testing.T) {
	test := NewWelchTTest()
	p, err := test.PValue([][]float64{{1}, {10, 11}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p, "groups below 2 elements carry no evidence")
}

func TestWelchRejectsWrongGroupCount(t *testing.T) {
	test := NewWelchTTest()
	_, err := test.PValue([][]float64{{1, 2}, {3, 4}, {5, 6}})
	assert.ErrorIs(t, err, core.ErrGroupCount)
}
