package search

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/internal"
	"github.com/LabpsicofisioUCU/ViCC/internal/battery"
	apperrors "github.com/LabpsicofisioUCU/ViCC/internal/errors"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// Config holds the search run parameters.
type Config struct {
	Workers       int   // W: concurrently running workers per round
	ChunkLength   int   // C: sequential attempts per worker before yielding
	Seed          int64 // base seed for per-worker RNG streams
	ExpectedDraws int   // feasibility estimate; 0 disables progress fractions
}

// Scheduler performs rejection sampling across concurrent workers until one
// draw passes the whole battery in early-exit evaluation. It never bounds
// the number of rounds: a search runs until success or the caller cancels
// the context between rounds.
type Scheduler struct {
	evaluator *battery.Evaluator
	rngPort   ports.RNGPort
	logger    *internal.Logger
}

// NewScheduler creates a search scheduler.
func NewScheduler(evaluator *battery.Evaluator, rngPort ports.RNGPort, logger *internal.Logger) *Scheduler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Scheduler{evaluator: evaluator, rngPort: rngPort, logger: logger}
}

type workerResult struct {
	draw     sampling.Draw
	attempts int
}

// Search runs rounds of cfg.Workers concurrent workers, each performing up
// to cfg.ChunkLength sequential attempts. Constraints should be ordered
// hardest first (see FeasibilityReport.HardestFirst); ordering only affects
// early-exit savings, never correctness.
//
// Within a round workers never observe each other: a worker runs its full
// chunk or stops at its own success. The round barrier joins all workers
// before results are scanned in worker-index order, so when several workers
// succeed in the same round the lowest index deterministically wins.
func (s *Scheduler) Search(ctx context.Context, table *sampling.AttributeTable, pools []sampling.Pool, constraints []sampling.Constraint, cfg Config, observer ports.SearchObserver) (*sampling.Selection, error) {
	if cfg.Workers <= 0 || cfg.ChunkLength <= 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("workers (%d) and chunk length (%d) must be positive", cfg.Workers, cfg.ChunkLength))
	}
	for _, p := range pools {
		if p.N > len(p.Eligible) {
			return nil, apperrors.FeasibilityError(core.NewPoolError(p.Label, p.N, len(p.Eligible)).Error())
		}
	}

	searchID := core.SearchID(core.NewID())
	expectedRounds := s.expectedRounds(cfg)

	// Worker-pool resource scoped to this search: acquired here, released on
	// every exit path when Search returns.
	workerPool := semaphore.NewWeighted(int64(cfg.Workers))

	s.logger.Info("search %s: %d workers x %d attempts per round, ~%d rounds expected",
		searchID, cfg.Workers, cfg.ChunkLength, expectedRounds)

	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results := make([]*workerResult, cfg.Workers)
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < cfg.Workers; w++ {
			g.Go(s.worker(gctx, workerPool, searchID, round, w, pools, constraints, cfg, results))
		}
		// Round barrier: nothing proceeds until every worker has finished
		// its own chunk or succeeded.
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for w, result := range results {
			if result == nil {
				continue
			}
			s.logger.Info("search %s: accepted draw in round %d by worker %d after %d attempts",
				searchID, round, w, result.attempts)
			if observer != nil {
				observer.SearchSucceeded(round, w)
			}
			return s.selection(table, pools, searchID, result, round, w), nil
		}

		fraction := progressFraction(round, expectedRounds)
		s.logger.Debug("search %s: round %d complete, progress %.2f", searchID, round, fraction)
		if observer != nil {
			observer.RoundCompleted(round, fraction)
		}
	}
}

// worker returns the round job for one worker index. Each worker draws from
// its own RNG stream keyed by (search, round, worker); concurrent workers
// never share a generator.
func (s *Scheduler) worker(ctx context.Context, workerPool *semaphore.Weighted, searchID core.SearchID, round, index int, pools []sampling.Pool, constraints []sampling.Constraint, cfg Config, results []*workerResult) func() error {
	return func() error {
		if err := workerPool.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("worker %d: %w", index, err)
		}
		defer workerPool.Release(1)

		// The search ID is deliberately not part of the stream key: for a
		// fixed base seed, repeated searches draw identical sequences.
		rng, err := s.rngPort.Stream(ctx, "", "search",
			fmt.Sprintf("round-%d-worker-%d", round, index), cfg.Seed)
		if err != nil {
			return fmt.Errorf("worker %d: %w", index, err)
		}

		// No mid-chunk cancellation: the chunk runs to completion or to this
		// worker's own success.
		for attempt := 1; attempt <= cfg.ChunkLength; attempt++ {
			draw := sampling.RandomDraw(rng, pools)
			passed, _, err := s.evaluator.EvaluateEarlyExit(constraints, draw)
			if err != nil {
				return fmt.Errorf("worker %d: %w", index, err)
			}
			if passed {
				results[index] = &workerResult{draw: draw, attempts: attempt}
				return nil
			}
		}
		return nil
	}
}

func (s *Scheduler) selection(table *sampling.AttributeTable, pools []sampling.Pool, searchID core.SearchID, result *workerResult, round, worker int) *sampling.Selection {
	groups := make(map[string][]string, len(pools))
	for g, pool := range pools {
		ids := make([]string, len(result.draw[g]))
		for i, row := range result.draw[g] {
			ids[i] = table.IDs[row]
		}
		groups[pool.Label] = ids
	}
	return &sampling.Selection{
		SearchID:    searchID,
		Draw:        result.draw,
		Groups:      groups,
		Rounds:      round,
		WorkerIndex: worker,
		Attempts:    result.attempts,
		AcceptedAt:  core.Now(),
	}
}

func (s *Scheduler) expectedRounds(cfg Config) int {
	if cfg.ExpectedDraws <= 0 {
		return 0
	}
	perRound := cfg.Workers * cfg.ChunkLength
	return int(math.Ceil(float64(cfg.ExpectedDraws) / float64(perRound)))
}

// progressFraction reports roundsCompleted/expectedRounds, capped below 1.0:
// only an actual success completes the bar.
func progressFraction(round, expectedRounds int) float64 {
	if expectedRounds <= 0 {
		return 0
	}
	fraction := float64(round) / float64(expectedRounds)
	if fraction > 0.99 {
		fraction = 0.99
	}
	return fraction
}
