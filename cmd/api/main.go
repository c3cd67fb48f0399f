package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/LabpsicofisioUCU/ViCC/adapters/api"
	"github.com/LabpsicofisioUCU/ViCC/adapters/excel"
	"github.com/LabpsicofisioUCU/ViCC/adapters/stats/tests"
	"github.com/LabpsicofisioUCU/ViCC/app"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/internal"
	"github.com/LabpsicofisioUCU/ViCC/internal/config"
	"github.com/LabpsicofisioUCU/ViCC/internal/pool"
	"github.com/LabpsicofisioUCU/ViCC/internal/testkit"
)

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

	table, err := excel.NewDataReader().ReadTable(cfg.Data.TableFile)
	if err != nil {
		return fmt.Errorf("failed to load attribute table: %w", err)
	}

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

	service, err := app.NewSelectionService(table, pools, notes, constraints,
		tests.NewRunner(), testkit.NewRNGAdapter(), cfg.Search, logger)
	if err != nil {
		return err
	}

	server := api.NewServer(service, logger)
	addr := ":" + cfg.Server.Port
	logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, server.Router())
}
