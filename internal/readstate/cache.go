// Package readstate keeps cached projections of contract reads for the
// connected account.
package readstate

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gicoinDesk/internal/metrics"
	"gicoinDesk/internal/session"
)

// FetchFunc loads a fresh value for account. prev is the last good value
// and may be used to fill fields a secondary source failed to provide.
type FetchFunc[T any] func(ctx context.Context, account common.Address, prev T) (T, error)

// Options configures a Cache.
type Options struct {
	Name         string
	PollInterval time.Duration
	MinInterval  time.Duration
	// Global projections do not depend on the connected account and keep
	// refreshing while disconnected.
	Global bool
	Clock  clockwork.Clock
	Logger *zap.Logger
}

// Cache holds one projection. Reads never fail: errors are logged and the
// previous value is kept.
type Cache[T any] struct {
	name   string
	fetch  FetchFunc[T]
	empty  func() T
	opts   Options
	clock  clockwork.Clock
	logger *zap.Logger

	mu        sync.RWMutex
	value     T
	updatedAt time.Time
	account   common.Address
	connected bool
	gen       uint64
	cancel    context.CancelFunc
	limiter   *rate.Limiter

	kick chan struct{}
}

// New builds a Cache. empty returns the default snapshot.
func New[T any](opts Options, empty func() T, fetch FetchFunc[T]) *Cache[T] {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Cache[T]{
		name:    opts.Name,
		fetch:   fetch,
		empty:   empty,
		opts:    opts,
		clock:   opts.Clock,
		logger:  opts.Logger.With(zap.String("projection", opts.Name)),
		value:   empty(),
		limiter: newLimiter(opts.MinInterval),
		kick:    make(chan struct{}, 1),
	}
}

func newLimiter(minInterval time.Duration) *rate.Limiter {
	if minInterval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(minInterval), 1)
}

// Get returns the current value.
func (c *Cache[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// UpdatedAt returns when the value was last replaced by a successful fetch.
func (c *Cache[T]) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

// SetAccount applies a session transition. Any in-flight fetch is
// cancelled. Disconnecting resets the value to the empty snapshot; switching
// accounts resets it and schedules an immediate fetch.
func (c *Cache[T]) SetAccount(state session.State) {
	c.mu.Lock()
	if state.Connected == c.connected && state.Account == c.account {
		c.mu.Unlock()
		return
	}
	c.supersedeLocked()
	c.account = state.Account
	c.connected = state.Connected
	c.limiter = newLimiter(c.opts.MinInterval)
	if !c.opts.Global {
		c.value = c.empty()
		c.updatedAt = time.Time{}
	}
	connected := state.Connected
	c.mu.Unlock()

	if connected || c.opts.Global {
		c.Trigger()
	}
}

// Observe wires the cache to session transitions.
func (c *Cache[T]) Observe(sess *session.Session) {
	c.SetAccount(sess.Current())
	sess.OnChange(func(_, next session.State) { c.SetAccount(next) })
}

// Trigger requests an immediate refresh from Run, bypassing the minimum
// interval. Extra triggers coalesce.
func (c *Cache[T]) Trigger() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Refresh fetches unless a fetch happened within the minimum interval.
// It reports whether a fetch was issued and succeeded.
func (c *Cache[T]) Refresh(ctx context.Context) bool {
	return c.refresh(ctx, false)
}

// ForceRefresh fetches regardless of the minimum interval.
func (c *Cache[T]) ForceRefresh(ctx context.Context) bool {
	return c.refresh(ctx, true)
}

// Run polls until ctx is done. Triggers and the poll ticker both refresh.
func (c *Cache[T]) Run(ctx context.Context) {
	var tick <-chan time.Time
	if c.opts.PollInterval > 0 {
		ticker := c.clock.NewTicker(c.opts.PollInterval)
		defer ticker.Stop()
		tick = ticker.Chan()
	}

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.supersedeLocked()
			c.mu.Unlock()
			return
		case <-c.kick:
			c.refresh(ctx, true)
		case <-tick:
			c.refresh(ctx, false)
		}
	}
}

func (c *Cache[T]) refresh(ctx context.Context, force bool) bool {
	c.mu.Lock()
	if !c.connected && !c.opts.Global {
		c.mu.Unlock()
		return false
	}
	allowed := c.limiter.AllowN(c.clock.Now(), 1)
	if !force && !allowed {
		c.mu.Unlock()
		metrics.CacheFetches.WithLabelValues(c.name, "suppressed").Inc()
		return false
	}
	c.supersedeLocked()
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	gen := c.gen
	account := c.account
	prev := c.value
	c.mu.Unlock()
	defer cancel()

	value, err := c.fetch(fetchCtx, account, prev)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		metrics.CacheFetches.WithLabelValues(c.name, "superseded").Inc()
		return false
	}
	c.cancel = nil
	if err != nil {
		metrics.CacheFetches.WithLabelValues(c.name, "error").Inc()
		c.logger.Warn("read refresh failed", zap.String("account", account.Hex()), zap.Error(err))
		return false
	}
	c.value = value
	c.updatedAt = c.clock.Now()
	metrics.CacheFetches.WithLabelValues(c.name, "ok").Inc()
	return true
}

// supersedeLocked cancels the in-flight fetch and invalidates its result.
func (c *Cache[T]) supersedeLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
