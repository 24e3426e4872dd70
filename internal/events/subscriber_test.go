package events

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gicoinDesk/internal/contract/contracttest"
	"gicoinDesk/internal/model"
)

var user = common.HexToAddress("0x1111111111111111111111111111111111111111")

type fakeSource struct {
	mu      sync.Mutex
	latest  uint64
	logs    []types.Log
	tsErr   error
	ranges  [][2]uint64
	filters int
}

func (f *fakeSource) LatestBlockNumber(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, nil
}

func (f *fakeSource) FilterLogs(_ context.Context, from, to uint64, _ []common.Address, _ []common.Hash) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters++
	f.ranges = append(f.ranges, [2]uint64{from, to})
	var out []types.Log
	for _, l := range f.logs {
		if l.BlockNumber >= from && l.BlockNumber <= to {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSource) BlockTimestamp(_ context.Context, number uint64) (uint64, error) {
	if f.tsErr != nil {
		return 0, f.tsErr
	}
	return 1_700_000_000 + number, nil
}

type memorySink struct {
	mu      sync.Mutex
	batches [][]model.EventRecord
}

func (m *memorySink) PutEventBatch(_ context.Context, records []model.EventRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, records)
	return nil
}

func newTestSubscriber(t *testing.T, src *fakeSource, clock clockwork.Clock, sink *memorySink) *Subscriber {
	t.Helper()
	cfg := Config{ChainID: 97, Contract: contracttest.Address, Clock: clock, PollInterval: time.Second}
	if sink != nil {
		cfg.Sink = sink
	}
	s, err := NewSubscriber(cfg, src, nil)
	require.NoError(t, err)
	return s
}

func TestDeliverDeduplicatesRedeliveredLogs(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sink := &memorySink{}
	s := newTestSubscriber(t, &fakeSource{}, clock, sink)

	tx := common.HexToHash("0xaa")
	l := contracttest.Staked(user, big.NewInt(10), 7, tx)

	got := s.Deliver(context.Background(), []types.Log{l, l})
	require.Len(t, got, 1)
	clock.Advance(2 * time.Second)
	assert.Empty(t, s.Deliver(context.Background(), []types.Log{l}))

	clock.Advance(2 * time.Second)
	assert.Len(t, s.Deliver(context.Background(), []types.Log{l}), 1)
	assert.Len(t, s.Records(), 2)
	assert.Len(t, sink.batches, 2)

	rec := got[0]
	assert.Equal(t, "Staked", rec.Name)
	assert.Equal(t, "10", rec.Args["amount"])
	assert.Equal(t, uint64(97), rec.ChainID)
	assert.Equal(t, tx.Hex(), rec.TxHash)
	require.NotNil(t, rec.BlockTime)
	assert.Equal(t, int64(1_700_000_007), rec.BlockTime.Unix())
	assert.True(t, rec.Involves(user.Hex()))
}

func TestDeliverKeepsRecordWhenTimestampFails(t *testing.T) {
	src := &fakeSource{tsErr: errors.New("header not found")}
	s := newTestSubscriber(t, src, clockwork.NewFakeClock(), nil)

	got := s.Deliver(context.Background(), []types.Log{contracttest.Staked(user, big.NewInt(1), 3, common.HexToHash("0x01"))})
	require.Len(t, got, 1)
	assert.Nil(t, got[0].BlockTime)
}

func TestDeliverSkipsUnknownAndRemovedLogs(t *testing.T) {
	s := newTestSubscriber(t, &fakeSource{}, clockwork.NewFakeClock(), nil)

	removed := contracttest.Staked(user, big.NewInt(1), 3, common.HexToHash("0x01"))
	removed.Removed = true
	unknown := types.Log{Topics: []common.Hash{common.HexToHash("0xdead")}, TxHash: common.HexToHash("0x02")}

	assert.Empty(t, s.Deliver(context.Background(), []types.Log{removed, unknown}))
}

func TestDeliverLogsMalformedLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := NewSubscriber(Config{ChainID: 97, Contract: contracttest.Address, Clock: clockwork.NewFakeClock()}, &fakeSource{}, zap.New(core))
	require.NoError(t, err)

	bad := contracttest.Staked(user, big.NewInt(1), 9, common.HexToHash("0x0b"))
	bad.Data = []byte{0x01}
	assert.Empty(t, s.Deliver(context.Background(), []types.Log{bad}))

	entries := logs.FilterMessage("decode log").All()
	require.Len(t, entries, 1)
	fields, ok := entries[0].ContextMap()["log"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, common.HexToHash("0x0b").Hex(), fields["tx_hash"])
	assert.Equal(t, uint64(9), fields["block_number"])
	assert.Equal(t, bad.Topics[0].Hex(), fields["topic0"])
	assert.NotEmpty(t, fields["reason"])
}

func TestTriggersFireByEventName(t *testing.T) {
	s := newTestSubscriber(t, &fakeSource{}, clockwork.NewFakeClock(), nil)

	var staking, governance, all int
	s.OnEvent(func() { staking++ }, "Staked", "Unstaked")
	s.OnEvent(func() { governance++ }, "Voted")
	s.OnEvent(func() { all++ })

	unstaked := contracttest.MustLog("Unstaked", 4, common.HexToHash("0x02"), 0,
		[]common.Hash{contracttest.TopicFromAddress(user)}, big.NewInt(1), big.NewInt(0))
	paused := contracttest.MustLog("PausedStatusChanged", 4, common.HexToHash("0x03"), 1, nil, true)
	s.Deliver(context.Background(), []types.Log{
		contracttest.Staked(user, big.NewInt(1), 4, common.HexToHash("0x01")),
		unstaked,
		paused,
	})

	assert.Equal(t, 2, staking)
	assert.Equal(t, 0, governance)
	assert.Equal(t, 3, all)
}

func TestPollAdvancesInBoundedRanges(t *testing.T) {
	src := &fakeSource{latest: 25}
	s, err := NewSubscriber(Config{Contract: contracttest.Address, MaxRange: 10, StartBlock: 10, Clock: clockwork.NewFakeClock()}, src, nil)
	require.NoError(t, err)
	s.next = 10

	ctx := context.Background()
	require.NoError(t, s.Poll(ctx))
	require.NoError(t, s.Poll(ctx))
	require.NoError(t, s.Poll(ctx))

	assert.Equal(t, [][2]uint64{{10, 19}, {20, 25}}, src.ranges)
}

func TestActivatePollsAndDeactivateClears(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{latest: 100}
	s := newTestSubscriber(t, src, clock, nil)

	ch := make(chan model.EventRecord, 4)
	feed := s.SubscribeRecords(ch)
	defer feed.Unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := s.Activate(ctx)
	require.NoError(t, err)
	assert.True(t, s.Active())

	src.mu.Lock()
	src.latest = 101
	src.logs = append(src.logs, contracttest.Staked(user, big.NewInt(5), 101, common.HexToHash("0x05")))
	src.mu.Unlock()

	clock.BlockUntil(1)
	clock.Advance(time.Second)

	select {
	case rec := <-ch:
		assert.Equal(t, "Staked", rec.Name)
		assert.Equal(t, uint64(101), rec.BlockNumber)
	case <-time.After(5 * time.Second):
		t.Fatal("no record delivered")
	}
	assert.Len(t, s.ForAccount(user.Hex()), 1)

	s.Deactivate()
	assert.False(t, s.Active())
	assert.Empty(t, s.Records())
}
