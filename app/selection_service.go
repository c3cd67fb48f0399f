package app

import (
	"context"
	"fmt"

	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/internal"
	"github.com/LabpsicofisioUCU/ViCC/internal/battery"
	"github.com/LabpsicofisioUCU/ViCC/internal/config"
	apperrors "github.com/LabpsicofisioUCU/ViCC/internal/errors"
	"github.com/LabpsicofisioUCU/ViCC/internal/feasibility"
	"github.com/LabpsicofisioUCU/ViCC/internal/report"
	"github.com/LabpsicofisioUCU/ViCC/internal/search"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// SelectionService runs the whole selection pipeline: feasibility
// estimation, hardest-first constraint ordering, parallel search, and the
// outcome report.
type SelectionService struct {
	table       *sampling.AttributeTable
	pools       []sampling.Pool
	constraints []sampling.Constraint

	estimator *feasibility.Estimator
	scheduler *search.Scheduler
	reporter  *report.Reporter

	cfg    config.SearchConfig
	logger *internal.Logger
}

// RunOutcome bundles everything a finished search produces.
type RunOutcome struct {
	Feasibility *sampling.FeasibilityReport
	Selection   *sampling.Selection
	Reports     []sampling.ConstraintReport
}

// NewSelectionService compiles the constraint specs and wires the pipeline.
// Pool-size findings must already have been reviewed: a blocking note
// (required N above pool size) fails construction.
func NewSelectionService(
	table *sampling.AttributeTable,
	pools []sampling.Pool,
	notes []sampling.FeasibilityNote,
	specs []sampling.ConstraintSpec,
	runner ports.TestRunner,
	rngPort ports.RNGPort,
	cfg config.SearchConfig,
	logger *internal.Logger,
) (*SelectionService, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	for _, note := range notes {
		switch note.Severity {
		case sampling.SeverityError:
			return nil, apperrors.FeasibilityError(note.Message)
		case sampling.SeverityWarning:
			logger.Warn("%s", note.Message)
		}
	}

	constraints, err := sampling.CompileConstraints(table, pools, specs)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeConfiguration, err)
	}

	evaluator := battery.NewEvaluator(table, runner)
	return &SelectionService{
		table:       table,
		pools:       pools,
		constraints: constraints,
		estimator:   feasibility.NewEstimator(evaluator, rngPort),
		scheduler:   search.NewScheduler(evaluator, rngPort, logger),
		reporter:    report.NewReporter(table, runner),
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// EstimateFeasibility measures per-constraint pass frequencies over the
// configured number of independent trials.
func (s *SelectionService) EstimateFeasibility(ctx context.Context) (*sampling.FeasibilityReport, error) {
	return s.estimator.Estimate(ctx, s.pools, s.constraints, s.cfg.Trials, s.cfg.Seed)
}

// Run executes the full pipeline. The observer (may be nil) receives round
// progress from the scheduler.
func (s *SelectionService) Run(ctx context.Context, observer ports.SearchObserver) (*RunOutcome, error) {
	feasReport, err := s.EstimateFeasibility(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "feasibility estimation failed")
	}

	joint, conservative := feasReport.JointProbability()
	expected := feasReport.ExpectedDraws()
	if conservative {
		s.logger.Warn("joint probability %.3g is a smoothed lower bound (some constraints never passed in %d trials)", joint, feasReport.Trials)
	}
	s.logger.Info("joint pass probability %.3g, ~%d draws expected for 50%% success", joint, expected)

	// Hardest first: lowest observed pass frequency leads, maximizing the
	// early-exit savings per rejected draw.
	order := feasReport.HardestFirst()
	ordered := make([]sampling.Constraint, len(order))
	for i, idx := range order {
		ordered[i] = s.constraints[idx]
	}

	selection, err := s.scheduler.Search(ctx, s.table, s.pools, ordered, search.Config{
		Workers:       s.cfg.Workers,
		ChunkLength:   s.cfg.ChunkLength,
		Seed:          s.cfg.Seed,
		ExpectedDraws: expected,
	}, observer)
	if err != nil {
		return nil, apperrors.Wrap(err, "search failed")
	}

	// Report in protocol order, not search order.
	reports, err := s.reporter.Report(s.pools, s.constraints, selection.Draw)
	if err != nil {
		return nil, apperrors.Wrap(err, "outcome report failed")
	}
	for _, r := range reports {
		if !r.Passed {
			// The accepted draw passed early-exit evaluation with the same
			// tests; a mismatch here means the runner is not deterministic.
			return nil, fmt.Errorf("accepted draw fails %s on %q in the outcome report", r.Kind, r.Attribute)
		}
	}

	return &RunOutcome{Feasibility: feasReport, Selection: selection, Reports: reports}, nil
}
