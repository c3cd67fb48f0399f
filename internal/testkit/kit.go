package testkit

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// RNGAdapter implements the RNGPort interface for testing and local runs
type RNGAdapter struct{}

// NewRNGAdapter creates the deterministic RNG adapter.
func NewRNGAdapter() *RNGAdapter {
	return &RNGAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(int64(hashString(name)) + seed)), nil
}

// Stream creates a deterministic RNG stream for a specific search/round/worker.
// Identical keys always produce identical streams, which keeps searches
// reproducible for a fixed base seed.
func (r *RNGAdapter) Stream(ctx context.Context, searchID, stageName, workerKey string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if searchID != "" {
		seed = int64(hashString(searchID)) + seed
	}
	if stageName != "" {
		seed = int64(hashString(stageName)) + seed
	}
	if workerKey != "" {
		seed = int64(hashString(workerKey)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}

// NewTable builds an attribute table from literal columns, panicking on
// malformed fixtures. Stimulus identifiers are s0, s1, ...
func NewTable(names []string, columns [][]float64) *sampling.AttributeTable {
	ids := make([]string, len(columns[0]))
	for i := range ids {
		ids[i] = fmt.Sprintf("s%d", i)
	}
	table, err := sampling.NewAttributeTable(ids, names, columns)
	if err != nil {
		panic(err)
	}
	return table
}

// FixedRunner returns the same p-value for every evaluation, regardless of
// kind. It makes evaluator and scheduler outcomes deterministic.
type FixedRunner struct {
	P float64
}

func (r *FixedRunner) PValue(kind sampling.TestKind, groups [][]float64) (float64, error) {
	return r.P, nil
}

// SequenceRunner returns p-values from a fixed cycle, one per call, useful
// for mixed pass/fail batteries.
type SequenceRunner struct {
	PValues []float64
	calls   atomic.Int64
}

func (r *SequenceRunner) PValue(kind sampling.TestKind, groups [][]float64) (float64, error) {
	n := r.calls.Add(1) - 1
	return r.PValues[int(n)%len(r.PValues)], nil
}

// CountingRunner wraps another runner and counts evaluations, for verifying
// early-exit behavior.
type CountingRunner struct {
	Inner ports.TestRunner
	calls atomic.Int64
}

func (r *CountingRunner) PValue(kind sampling.TestKind, groups [][]float64) (float64, error) {
	r.calls.Add(1)
	return r.Inner.PValue(kind, groups)
}

// Calls returns the number of evaluations performed so far.
func (r *CountingRunner) Calls() int {
	return int(r.calls.Load())
}
