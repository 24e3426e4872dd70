// Package backfill loads historical contract events into a storage sink.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/events"
	"gicoinDesk/internal/metrics"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/storage"
)

// Source is the RPC surface used by the runner.
type Source interface {
	ChainID(ctx context.Context) (uint64, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
	BlockTimestamp(ctx context.Context, number uint64) (uint64, error)
}

// RunConfig holds runtime settings for a backfill.
type RunConfig struct {
	Contract common.Address
	// FromBlock zero means Span blocks behind ToBlock.
	FromBlock uint64
	// ToBlock zero means the current head.
	ToBlock           uint64
	Span              uint64
	BatchSize         uint64
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
	Clock             clockwork.Clock
}

// Summary reports what a run did.
type Summary struct {
	From    uint64 `json:"from"`
	To      uint64 `json:"to"`
	Batches int    `json:"batches"`
	Records int    `json:"records"`
	Skipped int    `json:"skipped"`
	// DecodeErrors lists logs of known events that could not be decoded.
	DecodeErrors []model.DecodeError `json:"decode_errors,omitempty"`
}

// Runner streams contract logs from the chain, decodes them and writes
// event records to storage.
type Runner struct {
	cfg        RunConfig
	source     Source
	storage    storage.Storage
	decoder    *contract.EventDecoder
	logger     *zap.Logger
	seen       map[string]struct{}
	checkpoint *CheckpointStore
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, source Source, sink storage.Storage, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	decoder, err := contract.NewEventDecoder()
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:        cfg,
		source:     source,
		storage:    sink,
		decoder:    decoder,
		logger:     logger.With(zap.String("component", "backfill")),
		seen:       make(map[string]struct{}),
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}, nil
}

// Run executes the backfill.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	if r.source == nil {
		return sum, fmt.Errorf("log source is nil")
	}
	if r.storage == nil {
		return sum, fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize == 0 {
		return sum, fmt.Errorf("batch size must be greater than zero")
	}
	if r.cfg.Contract == (common.Address{}) {
		return sum, fmt.Errorf("contract address is required")
	}

	chainID, err := r.source.ChainID(ctx)
	if err != nil {
		return sum, fmt.Errorf("get chain id: %w", err)
	}

	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.source.LatestBlockNumber(ctx)
		if err != nil {
			return sum, fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}
	from := r.cfg.FromBlock
	if from == 0 {
		from = RecentRange(to, r.cfg.Span).From
	}

	cp, ok, err := r.checkpoint.Load()
	if err != nil {
		return sum, err
	}
	if ok && cp.Matches(chainID, r.cfg.Contract.Hex()) && cp.LastProcessedBlock >= from {
		from = cp.LastProcessedBlock + 1
		r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", cp.LastProcessedBlock), zap.Uint64("from", from))
	}

	sum.From, sum.To = from, to
	if from > to {
		r.logger.Info("nothing to sync", zap.Uint64("from", from), zap.Uint64("to", to))
		return sum, nil
	}

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return sum, err
	}

	topics := r.decoder.Topics()
	for _, blockRange := range ranges {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		logs, err := r.filterLogsWithRetry(ctx, blockRange, topics)
		if err != nil {
			return sum, fmt.Errorf("filter logs: %w", err)
		}

		observedAt := r.cfg.Clock.Now()
		records := make([]model.EventRecord, 0, len(logs))
		for _, log := range logs {
			if log.Removed || r.isDuplicate(log) {
				sum.Skipped++
				continue
			}
			ev, err := r.decoder.Decode(log)
			if err != nil {
				if !errors.Is(err, contract.ErrUnknownEvent) {
					de := events.NewDecodeError(chainID, log, err)
					metrics.EventDecodeErrors.Inc()
					sum.DecodeErrors = append(sum.DecodeErrors, de)
					r.logger.Warn("decode log", zap.Object("log", de))
				}
				sum.Skipped++
				continue
			}
			records = append(records, events.NewRecord(chainID, ev, log, r.blockTime(ctx, log.BlockNumber), observedAt))
		}

		if err := r.storage.PutEventBatch(ctx, records); err != nil {
			return sum, fmt.Errorf("store events: %w", err)
		}
		if err := r.checkpoint.Save(Checkpoint{ChainID: chainID, Contract: r.cfg.Contract.Hex(), LastProcessedBlock: blockRange.To}); err != nil {
			return sum, err
		}

		sum.Batches++
		sum.Records += len(records)
		metrics.BackfillBlocks.Add(float64(blockRange.Blocks()))
		r.logger.Info("batch complete", zap.Int("records", len(records)), zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))
	}

	return sum, nil
}

func (r *Runner) filterLogsWithRetry(ctx context.Context, br BlockRange, topics []common.Hash) ([]types.Log, error) {
	var logs []types.Log
	err := withRetry(ctx, r.cfg.Clock, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		logs, err = r.source.FilterLogs(ctx, br.From, br.To, []common.Address{r.cfg.Contract}, topics)
		if err != nil {
			r.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", br.From), zap.Uint64("to", br.To))
		}
		return err
	})
	return logs, err
}

// blockTime resolves a block timestamp with retries; failure yields nil.
func (r *Runner) blockTime(ctx context.Context, blockNumber uint64) *time.Time {
	var ts uint64
	err := withRetry(ctx, r.cfg.Clock, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		ts, err = r.source.BlockTimestamp(ctx, blockNumber)
		return err
	})
	if err != nil {
		r.logger.Warn("block timestamp unavailable", zap.Error(err), zap.Uint64("block_number", blockNumber))
		return nil
	}
	t := time.Unix(int64(ts), 0).UTC()
	return &t
}

func (r *Runner) isDuplicate(log types.Log) bool {
	id := fmt.Sprintf("%d:%s:%d", log.BlockNumber, log.TxHash.Hex(), log.Index)
	if _, ok := r.seen[id]; ok {
		return true
	}
	r.seen[id] = struct{}{}
	return false
}
