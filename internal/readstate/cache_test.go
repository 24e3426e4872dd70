package readstate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gicoinDesk/internal/session"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func counterCache(clock clockwork.Clock, fetch FetchFunc[int]) *Cache[int] {
	return New(Options{Name: "test", MinInterval: 4 * time.Second, Clock: clock}, func() int { return 0 }, fetch)
}

func TestRefreshWithinMinIntervalFetchesOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	c := counterCache(clock, func(context.Context, common.Address, int) (int, error) {
		return int(calls.Add(1)), nil
	})
	c.SetAccount(session.State{Account: alice, Connected: true})

	assert.True(t, c.Refresh(context.Background()))
	assert.False(t, c.Refresh(context.Background()))
	assert.Equal(t, int32(1), calls.Load())

	clock.Advance(4 * time.Second)
	assert.True(t, c.Refresh(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, c.Get())
}

func TestForceRefreshBypassesGate(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	c := counterCache(clock, func(context.Context, common.Address, int) (int, error) {
		return int(calls.Add(1)), nil
	})
	c.SetAccount(session.State{Account: alice, Connected: true})

	require.True(t, c.Refresh(context.Background()))
	require.True(t, c.ForceRefresh(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRefreshSkippedWhileDisconnected(t *testing.T) {
	var calls atomic.Int32
	c := counterCache(clockwork.NewFakeClock(), func(context.Context, common.Address, int) (int, error) {
		calls.Add(1)
		return 1, nil
	})
	assert.False(t, c.Refresh(context.Background()))
	assert.Equal(t, int32(0), calls.Load())
}

func TestReadErrorKeepsPreviousValue(t *testing.T) {
	clock := clockwork.NewFakeClock()
	fail := false
	c := counterCache(clock, func(context.Context, common.Address, int) (int, error) {
		if fail {
			return 0, errors.New("rpc down")
		}
		return 7, nil
	})
	c.SetAccount(session.State{Account: alice, Connected: true})
	require.True(t, c.ForceRefresh(context.Background()))

	fail = true
	assert.False(t, c.ForceRefresh(context.Background()))
	assert.Equal(t, 7, c.Get())
}

func TestDisconnectResetsToEmpty(t *testing.T) {
	c := counterCache(clockwork.NewFakeClock(), func(context.Context, common.Address, int) (int, error) {
		return 99, nil
	})
	c.SetAccount(session.State{Account: alice, Connected: true})
	require.True(t, c.ForceRefresh(context.Background()))
	require.Equal(t, 99, c.Get())

	c.SetAccount(session.State{})
	assert.Equal(t, 0, c.Get())
	assert.True(t, c.UpdatedAt().IsZero())
}

func TestAccountSwitchSupersedesInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var cancelled atomic.Bool

	c := New(Options{Name: "test"}, func() string { return "" },
		func(ctx context.Context, account common.Address, _ string) (string, error) {
			if account == alice {
				close(started)
				select {
				case <-ctx.Done():
					cancelled.Store(true)
				case <-release:
				}
				return "alice", nil
			}
			return "bob", nil
		})
	c.SetAccount(session.State{Account: alice, Connected: true})

	var wg sync.WaitGroup
	wg.Add(1)
	var stale bool
	go func() {
		defer wg.Done()
		stale = !c.ForceRefresh(context.Background())
	}()

	<-started
	c.SetAccount(session.State{Account: bob, Connected: true})
	wg.Wait()
	close(release)

	assert.True(t, cancelled.Load())
	assert.True(t, stale)
	assert.Equal(t, "", c.Get())

	require.True(t, c.ForceRefresh(context.Background()))
	assert.Equal(t, "bob", c.Get())
}

func TestRunRefreshesOnTriggerAndTicker(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	c := New(Options{Name: "test", PollInterval: 10 * time.Second, Clock: clock}, func() int { return 0 },
		func(context.Context, common.Address, int) (int, error) { return int(calls.Add(1)), nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	c.SetAccount(session.State{Account: alice, Connected: true})
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	clock.BlockUntil(1)
	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestObserveFollowsSession(t *testing.T) {
	sess := session.New()
	c := counterCache(clockwork.NewFakeClock(), func(context.Context, common.Address, int) (int, error) {
		return 5, nil
	})
	c.Observe(sess)

	sess.Connect(alice, 56)
	require.True(t, c.ForceRefresh(context.Background()))
	assert.Equal(t, 5, c.Get())

	sess.Disconnect()
	assert.Equal(t, 0, c.Get())
}
