package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gicoinDesk/internal/model"
)

func TestJsonlAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "events.jsonl")
	s := NewJsonlStorage(path)
	ctx := context.Background()

	ts := time.Unix(1_700_000_000, 0).UTC()
	first := []model.EventRecord{
		{ChainID: 97, Name: "Staked", Args: map[string]string{"user": "0xabc", "amount": "10"}, BlockNumber: 5, BlockTime: &ts, TxHash: "0x01"},
	}
	second := []model.EventRecord{
		{ChainID: 97, Name: "Unstaked", Args: map[string]string{"user": "0xabc", "amount": "4"}, BlockNumber: 6, TxHash: "0x02", LogIndex: 1},
	}
	if err := s.PutEventBatch(ctx, first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := s.PutEventBatch(ctx, second); err != nil {
		t.Fatalf("put second: %v", err)
	}
	if err := s.PutEventBatch(ctx, nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, _ = f.WriteString("not json\n\n")
	f.Close()

	var got []model.EventRecord
	stats, err := ReadJsonl(ctx, path, func(r model.EventRecord) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stats.Total != 3 || stats.Failed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].BlockTime == nil || !got[0].BlockTime.Equal(ts) {
		t.Fatalf("block time lost: %v", got[0].BlockTime)
	}
	if got[1].BlockTime != nil {
		t.Fatalf("expected nil block time, got %v", got[1].BlockTime)
	}
	if got[1].Args["amount"] != "4" || got[1].LogIndex != 1 {
		t.Fatalf("unexpected record: %+v", got[1])
	}
}

type countingSink struct{ n int }

func (c *countingSink) PutEventBatch(_ context.Context, records []model.EventRecord) error {
	c.n += len(records)
	return nil
}

func TestMultiFansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := Multi{a, nil, b}
	if err := m.PutEventBatch(context.Background(), make([]model.EventRecord, 3)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if a.n != 3 || b.n != 3 {
		t.Fatalf("expected both sinks to see 3 records, got %d and %d", a.n, b.n)
	}
}
