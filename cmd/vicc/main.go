package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/LabpsicofisioUCU/ViCC/adapters/excel"
	"github.com/LabpsicofisioUCU/ViCC/adapters/postgres"
	"github.com/LabpsicofisioUCU/ViCC/adapters/stats/tests"
	"github.com/LabpsicofisioUCU/ViCC/app"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/internal"
	"github.com/LabpsicofisioUCU/ViCC/internal/config"
	"github.com/LabpsicofisioUCU/ViCC/internal/pool"
	"github.com/LabpsicofisioUCU/ViCC/internal/testkit"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// logObserver adapts scheduler progress to the leveled logger.
type logObserver struct {
	logger *internal.Logger
}

func (o *logObserver) RoundCompleted(round int, fraction float64) {
	o.logger.Info("round %d complete, progress %.0f%%", round, fraction*100)
}

func (o *logObserver) SearchSucceeded(round, workerIndex int) {
	o.logger.Info("draw accepted in round %d by worker %d", round, workerIndex)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Data.TableFile == "" || cfg.Data.ProtocolFile == "" {
		return fmt.Errorf("TABLE_FILE and PROTOCOL_FILE are required")
	}
	logger := internal.NewDefaultLogger()
	ctx := context.Background()

	table, err := excel.NewDataReader().ReadTable(cfg.Data.TableFile)
	if err != nil {
		return fmt.Errorf("failed to load attribute table: %w", err)
	}
	logger.Info("loaded %d stimuli with %d attributes", table.RowCount(), len(table.Names))

	protocolData, err := os.ReadFile(cfg.Data.ProtocolFile)
	if err != nil {
		return fmt.Errorf("failed to read protocol file: %w", err)
	}
	groups, constraints, err := sampling.ParseProtocol(protocolData)
	if err != nil {
		return err
	}

	pools, notes, err := pool.Build(table, groups)
	if err != nil {
		return err
	}
	for _, p := range pools {
		logger.Info("group %q: %d eligible, %d required", p.Label, len(p.Eligible), p.N)
	}

	service, err := app.NewSelectionService(table, pools, notes, constraints,
		tests.NewRunner(), testkit.NewRNGAdapter(), cfg.Search, logger)
	if err != nil {
		return err
	}

	outcome, err := service.Run(ctx, &logObserver{logger: logger})
	if err != nil {
		return err
	}

	printOutcome(outcome)

	if cfg.Database.URL != "" {
		if err := persist(ctx, cfg.Database.URL, outcome); err != nil {
			return fmt.Errorf("failed to persist selection: %w", err)
		}
		logger.Info("selection %s persisted", outcome.Selection.SearchID)
	}
	return nil
}

func printOutcome(outcome *app.RunOutcome) {
	freqs := outcome.Feasibility.Frequencies()
	fmt.Printf("\nSelection %s (round %d, worker %d, %d attempts)\n",
		outcome.Selection.SearchID, outcome.Selection.Rounds,
		outcome.Selection.WorkerIndex, outcome.Selection.Attempts)

	for label, ids := range outcome.Selection.Groups {
		fmt.Printf("  %s: %v\n", label, ids)
	}

	fmt.Println("\nConstraints:")
	for i, r := range outcome.Reports {
		fmt.Printf("  %s on %q: p=%.4f (%s %.3f), observed pass frequency %.3f\n",
			r.Kind, r.Attribute, r.PValue, r.Op, r.Threshold, freqs[i])
		for _, g := range r.Groups {
			fmt.Printf("    %s: n=%d mean=%.3f sd=%.3f median=%.3f\n",
				g.Label, g.Stats.N, g.Stats.Mean, g.Stats.StdDev, g.Stats.Median)
		}
	}
}

func persist(ctx context.Context, databaseURL string, outcome *app.RunOutcome) error {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewSelectionRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	return repo.Save(ctx, ports.SelectionRecord{
		Selection: *outcome.Selection,
		Reports:   outcome.Reports,
	})
}
