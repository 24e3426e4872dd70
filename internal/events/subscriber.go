// Package events turns contract logs into a bounded, de-duplicated event
// feed and fans them out to refresh triggers.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/metrics"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/storage"
)

const (
	DefaultPollInterval = 4 * time.Second
	DefaultMaxRange     = 2000
)

// Source is the RPC surface the subscriber polls.
type Source interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
	BlockTimestamp(ctx context.Context, number uint64) (uint64, error)
}

// Config controls a Subscriber.
type Config struct {
	ChainID      uint64
	Contract     common.Address
	PollInterval time.Duration
	// MaxRange caps the block span of one FilterLogs call.
	MaxRange uint64
	// StartBlock is the first block polled after activation. Zero means the
	// block after the current head.
	StartBlock uint64
	Capacity   int
	Cooldown   time.Duration
	Clock      clockwork.Clock
	// Sink receives accepted records. Write failures are logged.
	Sink storage.Storage
}

// Subscriber polls the contract's logs while active.
type Subscriber struct {
	cfg     Config
	source  Source
	decoder *contract.EventDecoder
	log     *Log
	clock   clockwork.Clock
	logger  *zap.Logger
	feed    event.Feed

	mu       sync.Mutex
	sub      event.Subscription
	next     uint64
	triggers map[string][]func()
}

func NewSubscriber(cfg Config, source Source, logger *zap.Logger) (*Subscriber, error) {
	if source == nil {
		return nil, fmt.Errorf("log source is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MaxRange == 0 {
		cfg.MaxRange = DefaultMaxRange
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	decoder, err := contract.NewEventDecoder()
	if err != nil {
		return nil, err
	}
	return &Subscriber{
		cfg:      cfg,
		source:   source,
		decoder:  decoder,
		log:      NewLog(cfg.Capacity, cfg.Cooldown, cfg.Clock),
		clock:    cfg.Clock,
		logger:   logger.With(zap.String("component", "events")),
		triggers: make(map[string][]func()),
	}, nil
}

// OnEvent registers fn to run after a record with one of names is accepted.
// With no names fn runs for every event.
func (s *Subscriber) OnEvent(fn func(), names ...string) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) == 0 {
		names = contract.EventNames
	}
	for _, name := range names {
		s.triggers[name] = append(s.triggers[name], fn)
	}
}

// SubscribeRecords delivers accepted records to ch. Subscribers must keep
// draining ch: delivery blocks until every subscriber has received.
func (s *Subscriber) SubscribeRecords(ch chan<- model.EventRecord) event.Subscription {
	return s.feed.Subscribe(ch)
}

// Records returns the global feed, newest first.
func (s *Subscriber) Records() []model.EventRecord {
	return s.log.Records()
}

// ForAccount returns the feed filtered to records involving account.
func (s *Subscriber) ForAccount(account string) []model.EventRecord {
	return s.log.ForAccount(account)
}

// Active reports whether polling is running.
func (s *Subscriber) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub != nil
}

// Activate starts polling. It is a no-op when already active. The returned
// subscription's Err channel reports a parent context cancellation.
func (s *Subscriber) Activate(ctx context.Context) (event.Subscription, error) {
	s.mu.Lock()
	if s.sub != nil {
		sub := s.sub
		s.mu.Unlock()
		return sub, nil
	}
	s.mu.Unlock()

	start := s.cfg.StartBlock
	if start == 0 {
		latest, err := s.source.LatestBlockNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("get latest block: %w", err)
		}
		start = latest + 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		return s.sub, nil
	}
	s.next = start
	s.sub = event.NewSubscription(func(quit <-chan struct{}) error {
		return s.loop(ctx, quit)
	})
	s.logger.Info("event subscription active", zap.Uint64("from_block", start))
	return s.sub, nil
}

// Deactivate stops polling and clears the log and dedup state.
func (s *Subscriber) Deactivate() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}

	s.mu.Lock()
	s.next = 0
	s.mu.Unlock()
	s.log.Clear()
	if sub != nil {
		s.logger.Info("event subscription stopped")
	}
}

func (s *Subscriber) loop(parent context.Context, quit <-chan struct{}) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	go func() {
		select {
		case <-quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := s.clock.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			select {
			case <-quit:
				return nil
			default:
				return parent.Err()
			}
		case <-ticker.Chan():
			if err := s.Poll(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("poll logs failed", zap.Error(err))
			}
		}
	}
}

// Poll fetches logs from the next unseen block up to the head, bounded by
// MaxRange, and delivers them.
func (s *Subscriber) Poll(ctx context.Context) error {
	s.mu.Lock()
	from := s.next
	s.mu.Unlock()

	latest, err := s.source.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("get latest block: %w", err)
	}
	if from == 0 {
		from = latest
	}
	if from > latest {
		return nil
	}
	to := latest
	if to-from+1 > s.cfg.MaxRange {
		to = from + s.cfg.MaxRange - 1
	}

	logs, err := s.source.FilterLogs(ctx, from, to, []common.Address{s.cfg.Contract}, s.decoder.Topics())
	if err != nil {
		return fmt.Errorf("filter logs %d-%d: %w", from, to, err)
	}
	s.Deliver(ctx, logs)

	s.mu.Lock()
	if s.next == from || s.next == 0 {
		s.next = to + 1
	}
	s.mu.Unlock()
	return nil
}

// Deliver processes logs in order and returns the records that were accepted.
func (s *Subscriber) Deliver(ctx context.Context, logs []types.Log) []model.EventRecord {
	accepted := make([]model.EventRecord, 0, len(logs))
	for _, l := range logs {
		rec, ok := s.ingest(ctx, l)
		if !ok {
			continue
		}
		accepted = append(accepted, rec)
	}
	if len(accepted) > 0 && s.cfg.Sink != nil {
		if err := s.cfg.Sink.PutEventBatch(ctx, accepted); err != nil {
			s.logger.Warn("export events failed", zap.Int("records", len(accepted)), zap.Error(err))
		}
	}
	return accepted
}

func (s *Subscriber) ingest(ctx context.Context, l types.Log) (model.EventRecord, bool) {
	if l.Removed {
		return model.EventRecord{}, false
	}
	ev, err := s.decoder.Decode(l)
	if err != nil {
		if !errors.Is(err, contract.ErrUnknownEvent) {
			metrics.EventDecodeErrors.Inc()
			s.logger.Warn("decode log", zap.Object("log", NewDecodeError(s.cfg.ChainID, l, err)))
		}
		return model.EventRecord{}, false
	}

	var blockTime *time.Time
	if ts, err := s.source.BlockTimestamp(ctx, l.BlockNumber); err != nil {
		s.logger.Debug("block timestamp unavailable", zap.Uint64("block_number", l.BlockNumber), zap.Error(err))
	} else {
		blockTime = unixTime(ts)
	}

	rec := NewRecord(s.cfg.ChainID, ev, l, blockTime, s.clock.Now())
	if !s.log.Add(rec) {
		metrics.EventsDeduplicated.Inc()
		return model.EventRecord{}, false
	}
	metrics.EventsObserved.WithLabelValues(rec.Name).Inc()
	s.logger.Debug("event", zap.String("summary", ev.Summary()), zap.Uint64("block_number", rec.BlockNumber), zap.String("tx_hash", rec.TxHash))

	s.feed.Send(rec)
	s.fire(rec.Name)
	return rec, true
}

func (s *Subscriber) fire(name string) {
	s.mu.Lock()
	fns := append([]func(){}, s.triggers[name]...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Log returns the subscriber's event log.
func (s *Subscriber) Log() *Log {
	return s.log
}
