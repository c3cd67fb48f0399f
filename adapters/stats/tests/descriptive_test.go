package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	got := Describe([]float64{2, 4, 6, 8})

	assert.Equal(t, 4, got.N)
	assert.InDelta(t, 5.0, got.Mean, 1e-9)
	assert.InDelta(t, 2.581988897, got.StdDev, 1e-6)
	assert.Equal(t, 2.0, got.Min)
	assert.Equal(t, 8.0, got.Max)
	assert.InDelta(t, 5.0, got.Median, 1e-9)
}

func TestDescribeEmpty(t *testing.T) {
	got := Describe(nil)
	assert.Equal(t, 0, got.N)
	assert.Equal(t, 0.0, got.Mean)
}
