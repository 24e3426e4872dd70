package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gicoinDesk/internal/config"
	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/stats"
	"gicoinDesk/internal/storage/postgres"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate exported staking events into window metrics",
		RunE:  runStats,
	}
	cmd.Flags().Uint64("chain-id", contract.DefaultChainID, "chain id of the exported events")
	cmd.Flags().String("contract", "", "override the GIC contract address")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().String("in", "", "input events JSONL")
	cmd.Flags().String("window", "24h", "aggregation window (e.g. 1h, 24h)")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().Int("batch-size", 1000, "batch size for DB writes")
	cmd.Flags().String("state-file", "", "optional local state file for progress tracking")
	cmd.Flags().String("recompute-from", "", "recompute from timestamp (unix seconds or RFC3339)")
	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadStats(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}

	windowSeconds, err := config.ParseWindow(cfg.Window)
	if err != nil {
		return err
	}
	recomputeFrom, err := config.ParseTimestamp(cfg.RecomputeFrom)
	if err != nil {
		return fmt.Errorf("parse recompute-from: %w", err)
	}
	dep, _, err := cfg.Deployment()
	if err != nil {
		return err
	}
	contractAddr := dep.Token.Hex()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	name := stats.StateName(contractAddr, windowSeconds)
	var stateStore stats.StateStore
	if cfg.StateFile != "" {
		stateStore = &stats.FileStateStore{Path: cfg.StateFile, Name: name}
	} else {
		stateStore = &stats.DBStateStore{Store: store, Name: name}
	}

	agg := stats.NewAggregator(stats.Config{
		Contract:      contractAddr,
		WindowSeconds: windowSeconds,
		BatchSize:     cfg.BatchSize,
		RecomputeFrom: recomputeFrom,
		StateStore:    stateStore,
	}, store, logger)

	logger.Info("stats start",
		zap.String("input", cfg.Input),
		zap.String("contract", contractAddr),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Uint64("window_seconds", windowSeconds),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Uint64("recompute_from", recomputeFrom),
	)

	res, err := agg.Run(ctx, cfg.Input)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}
