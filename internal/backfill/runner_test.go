package backfill

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"gicoinDesk/internal/contract/contracttest"
	"gicoinDesk/internal/model"
)

var staker = common.HexToAddress("0x1111111111111111111111111111111111111111")

type chainStub struct {
	mu        sync.Mutex
	latest    uint64
	logs      []types.Log
	failFirst int
	calls     [][2]uint64
}

func (c *chainStub) ChainID(context.Context) (uint64, error) { return 97, nil }

func (c *chainStub) LatestBlockNumber(context.Context) (uint64, error) { return c.latest, nil }

func (c *chainStub) FilterLogs(_ context.Context, from, to uint64, _ []common.Address, _ []common.Hash) ([]types.Log, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failFirst > 0 {
		c.failFirst--
		return nil, errors.New("rpc limit")
	}
	c.calls = append(c.calls, [2]uint64{from, to})
	var out []types.Log
	for _, l := range c.logs {
		if l.BlockNumber >= from && l.BlockNumber <= to {
			out = append(out, l)
		}
	}
	return out, nil
}

func (c *chainStub) BlockTimestamp(_ context.Context, n uint64) (uint64, error) {
	return 1_700_000_000 + n*3, nil
}

type sliceSink struct{ records []model.EventRecord }

func (s *sliceSink) PutEventBatch(_ context.Context, records []model.EventRecord) error {
	s.records = append(s.records, records...)
	return nil
}

func TestRunnerDecodesAndCheckpoints(t *testing.T) {
	src := &chainStub{
		latest:    120,
		failFirst: 1,
		logs: []types.Log{
			contracttest.Staked(staker, big.NewInt(10), 101, common.HexToHash("0x01")),
			contracttest.Staked(staker, big.NewInt(10), 101, common.HexToHash("0x01")),
			contracttest.Staked(staker, big.NewInt(7), 115, common.HexToHash("0x02")),
		},
	}
	sink := &sliceSink{}
	cpPath := filepath.Join(t.TempDir(), "cp.json")
	cfg := RunConfig{
		Contract:          contracttest.Address,
		Span:              20,
		BatchSize:         10,
		CheckpointPath:    cpPath,
		CheckpointEnabled: true,
		MaxRetries:        2,
		RetryBackoff:      time.Millisecond,
	}

	r, err := NewRunner(cfg, src, sink, nil)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.From != 101 || sum.To != 120 || sum.Batches != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if len(sink.records) != 2 || sum.Skipped != 1 {
		t.Fatalf("expected 2 records and 1 duplicate, got %d/%d", len(sink.records), sum.Skipped)
	}
	first := sink.records[0]
	if first.Name != "Staked" || first.Args["amount"] != "10" || first.ChainID != 97 {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.BlockTime == nil || first.BlockTime.Unix() != 1_700_000_303 {
		t.Fatalf("unexpected block time: %v", first.BlockTime)
	}

	cp, ok, err := NewCheckpointStore(cpPath, true).Load()
	if err != nil || !ok {
		t.Fatalf("load checkpoint: %v %v", ok, err)
	}
	if cp.LastProcessedBlock != 120 || !cp.Matches(97, contracttest.Address.Hex()) {
		t.Fatalf("unexpected checkpoint: %+v", cp)
	}

	src.latest = 125
	r2, _ := NewRunner(cfg, src, sink, nil)
	sum, err = r2.Run(context.Background())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if sum.From != 121 || sum.To != 125 {
		t.Fatalf("expected resume from 121, got %+v", sum)
	}
}

func TestRunnerIgnoresForeignCheckpoint(t *testing.T) {
	cpPath := filepath.Join(t.TempDir(), "cp.json")
	if err := NewCheckpointStore(cpPath, true).Save(Checkpoint{ChainID: 56, Contract: contracttest.Address.Hex(), LastProcessedBlock: 500}); err != nil {
		t.Fatalf("save: %v", err)
	}
	src := &chainStub{latest: 600}
	r, _ := NewRunner(RunConfig{
		Contract: contracttest.Address, FromBlock: 550, BatchSize: 100,
		CheckpointPath: cpPath, CheckpointEnabled: true,
	}, src, &sliceSink{}, nil)

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.From != 550 {
		t.Fatalf("checkpoint from another chain must not be used, got from=%d", sum.From)
	}
}

func TestRunnerGivesUpAfterRetries(t *testing.T) {
	src := &chainStub{latest: 10, failFirst: 5}
	r, _ := NewRunner(RunConfig{Contract: contracttest.Address, FromBlock: 1, BatchSize: 100, MaxRetries: 1, RetryBackoff: time.Millisecond}, src, &sliceSink{}, nil)
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatalf("expected filter error")
	}
}

func TestRunnerReportsMalformedLogs(t *testing.T) {
	bad := contracttest.Staked(staker, big.NewInt(3), 5, common.HexToHash("0x0b"))
	bad.Data = []byte{0x01}
	src := &chainStub{
		latest: 10,
		logs: []types.Log{
			bad,
			contracttest.Staked(staker, big.NewInt(4), 6, common.HexToHash("0x0c")),
		},
	}
	sink := &sliceSink{}
	r, err := NewRunner(RunConfig{Contract: contracttest.Address, FromBlock: 1, BatchSize: 100}, src, sink, nil)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.records) != 1 || sum.Skipped != 1 {
		t.Fatalf("expected malformed log skipped, got %d records %+v", len(sink.records), sum)
	}
	if len(sum.DecodeErrors) != 1 {
		t.Fatalf("expected one decode error, got %+v", sum.DecodeErrors)
	}
	de := sum.DecodeErrors[0]
	if de.ChainID != 97 || de.BlockNumber != 5 || de.TxHash != common.HexToHash("0x0b").Hex() || de.Reason == "" {
		t.Fatalf("unexpected decode error: %+v", de)
	}
	if de.Topic0 != bad.Topics[0].Hex() {
		t.Fatalf("unexpected topic0: %s", de.Topic0)
	}
}
