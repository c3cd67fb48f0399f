package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for a specific search/round/worker.
	// Each concurrent worker must receive its own stream: sharing one mutable
	// generator across workers would corrupt draw independence.
	Stream(ctx context.Context, searchID, stageName, workerKey string, baseSeed int64) (*rand.Rand, error)
}
