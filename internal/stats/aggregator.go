// Package stats aggregates staking events into fixed time windows.
package stats

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"gicoinDesk/internal/model"
	"gicoinDesk/internal/storage"
)

// MetricsStore persists window metrics.
type MetricsStore interface {
	UpsertWindowMetrics(ctx context.Context, metrics []model.StakingWindowMetrics) error
}

// Config controls aggregation behavior.
type Config struct {
	Contract      string
	WindowSeconds uint64
	BatchSize     int
	RecomputeFrom uint64
	StateStore    StateStore
}

// Result summarises one run.
type Result struct {
	Total   int `json:"total"`
	Used    int `json:"used"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Windows int `json:"windows"`
}

// Aggregator folds event records into staking window metrics. Input is
// expected in block order; a window is flushed once a later window appears.
type Aggregator struct {
	cfg          Config
	store        MetricsStore
	logger       *zap.Logger
	accumulators map[uint64]*Accumulator
	startTs      uint64
	maxTs        uint64
}

func NewAggregator(cfg Config, store MetricsStore, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		cfg:          cfg,
		store:        store,
		logger:       logger,
		accumulators: make(map[uint64]*Accumulator),
	}
}

// Run executes aggregation over an event JSONL file.
func (a *Aggregator) Run(ctx context.Context, inputPath string) (Result, error) {
	var res Result
	if a.store == nil {
		return res, fmt.Errorf("store is nil")
	}
	if a.cfg.WindowSeconds == 0 {
		return res, fmt.Errorf("window seconds must be > 0")
	}
	if a.cfg.BatchSize <= 0 {
		a.cfg.BatchSize = 1000
	}

	startTs, err := a.loadStartTimestamp(ctx)
	if err != nil {
		return res, err
	}
	a.startTs = startTs
	a.maxTs = startTs

	batch := make([]model.StakingWindowMetrics, 0, a.cfg.BatchSize)
	scan, err := storage.ReadJsonl(ctx, inputPath, func(record model.EventRecord) error {
		if !tracked[record.Name] || record.BlockTime == nil {
			res.Skipped++
			return nil
		}
		ts := uint64(record.BlockTime.Unix())
		if ts <= startTs {
			res.Skipped++
			return nil
		}

		start := windowStart(ts, a.cfg.WindowSeconds)
		acc := a.accumulators[start]
		if acc == nil {
			acc = NewAccumulator(record.ChainID, start, start+a.cfg.WindowSeconds)
			a.accumulators[start] = acc
		}
		if err := acc.AddEvent(record); err != nil {
			res.Failed++
			a.logger.Warn("aggregate event", zap.Error(err), zap.String("event", record.Name), zap.String("tx_hash", record.TxHash))
			return nil
		}
		res.Used++
		if ts > a.maxTs {
			a.maxTs = ts
		}

		batch = append(batch, a.flushBefore(start)...)
		if len(batch) >= a.cfg.BatchSize {
			if err := a.store.UpsertWindowMetrics(ctx, batch); err != nil {
				return err
			}
			res.Windows += len(batch)
			batch = batch[:0]
			return a.saveState(ctx)
		}
		return nil
	})
	res.Total = scan.Total
	res.Failed += scan.Failed
	if err != nil {
		return res, err
	}

	batch = append(batch, a.flushBefore(^uint64(0))...)
	if len(batch) > 0 {
		if err := a.store.UpsertWindowMetrics(ctx, batch); err != nil {
			return res, err
		}
		res.Windows += len(batch)
	}

	if err := a.saveState(ctx); err != nil {
		return res, err
	}

	a.logger.Info("aggregate complete",
		zap.Int("total", res.Total),
		zap.Int("used", res.Used),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
		zap.Int("windows", res.Windows),
	)
	return res, nil
}

// flushBefore closes every open window that starts before limit, oldest first.
func (a *Aggregator) flushBefore(limit uint64) []model.StakingWindowMetrics {
	starts := make([]uint64, 0, len(a.accumulators))
	for start := range a.accumulators {
		if start < limit {
			starts = append(starts, start)
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	out := make([]model.StakingWindowMetrics, 0, len(starts))
	for _, start := range starts {
		out = append(out, a.accumulators[start].Metrics(a.cfg.Contract))
		delete(a.accumulators, start)
	}
	return out
}

func (a *Aggregator) loadStartTimestamp(ctx context.Context) (uint64, error) {
	if a.cfg.RecomputeFrom > 0 {
		return a.cfg.RecomputeFrom - 1, nil
	}
	if a.cfg.StateStore == nil {
		return 0, nil
	}
	last, ok, err := a.cfg.StateStore.Load(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return last, nil
}

// saveState stores the newest timestamp that is safe to resume after: just
// before the oldest open window, or just before the window holding the newest
// processed event. Metrics are upserted whole, so the newest window is rebuilt
// from its first event on the next run.
func (a *Aggregator) saveState(ctx context.Context) error {
	if a.cfg.StateStore == nil {
		return nil
	}
	if len(a.accumulators) == 0 {
		if a.maxTs <= a.startTs {
			return a.cfg.StateStore.Save(ctx, a.startTs)
		}
		cursor := windowStart(a.maxTs, a.cfg.WindowSeconds)
		if cursor > 0 {
			cursor--
		}
		return a.cfg.StateStore.Save(ctx, cursor)
	}
	var oldest uint64
	for start := range a.accumulators {
		if oldest == 0 || start < oldest {
			oldest = start
		}
	}
	if oldest > 0 {
		oldest--
	}
	return a.cfg.StateStore.Save(ctx, oldest)
}

func windowStart(ts uint64, windowSec uint64) uint64 {
	return ts - (ts % windowSec)
}
