package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gicoinDesk/internal/backfill"
	"gicoinDesk/internal/config"
	"gicoinDesk/internal/storage"
	"gicoinDesk/internal/storage/postgres"
)

func newBackfillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Load historical contract events into JSONL and Postgres",
		RunE:  runBackfill,
	}
	addChainFlags(cmd)
	cmd.Flags().Uint64("from", 0, "start block (inclusive), 0 means head minus span")
	cmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	cmd.Flags().Uint64("span", backfill.DefaultSpan, "blocks to load when --from is not set")
	cmd.Flags().Uint64("batch-size", 2000, "blocks per batch")
	cmd.Flags().String("out", "./data/events.jsonl", "output JSONL path, empty disables")
	cmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	cmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	cmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	cmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	return cmd
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadBackfill(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Out == "" && cfg.PGDSN == "" {
		return fmt.Errorf("an output path or pg dsn is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := dial(ctx, cfg.Common)
	if err != nil {
		return err
	}
	defer sess.Close()

	var sinks storage.Multi
	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	runner, err := backfill.NewRunner(backfill.RunConfig{
		Contract:          sess.deployment.Token,
		FromBlock:         cfg.FromBlock,
		ToBlock:           cfg.ToBlock,
		Span:              cfg.Span,
		BatchSize:         cfg.BatchSize,
		CheckpointPath:    cfg.Checkpoint,
		CheckpointEnabled: cfg.CheckpointEnabled,
		MaxRetries:        cfg.MaxRetries,
		RetryBackoff:      cfg.RetryBackoff,
	}, sess.client, sinks, logger)
	if err != nil {
		return err
	}

	logger.Info("backfill start",
		zap.String("network", sess.info.Name),
		zap.String("contract", sess.deployment.Token.Hex()),
		zap.Uint64("from", cfg.FromBlock),
		zap.Uint64("to", cfg.ToBlock),
		zap.Uint64("span", cfg.Span),
		zap.Uint64("batch_size", cfg.BatchSize),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
		zap.String("checkpoint", cfg.Checkpoint),
	)

	sum, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), sum)
}
