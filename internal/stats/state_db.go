package stats

import (
	"context"
	"strconv"
)

// CursorStore is the subset of the Postgres store used for state.
type CursorStore interface {
	LoadState(ctx context.Context, name string) (uint64, bool, error)
	SaveState(ctx context.Context, name string, v uint64) error
}

// DBStateStore stores state in the indexer_state table.
type DBStateStore struct {
	Store CursorStore
	Name  string
}

func (s *DBStateStore) Load(ctx context.Context) (uint64, bool, error) {
	if s == nil || s.Store == nil {
		return 0, false, nil
	}
	return s.Store.LoadState(ctx, s.Name)
}

func (s *DBStateStore) Save(ctx context.Context, ts uint64) error {
	if s == nil || s.Store == nil {
		return nil
	}
	return s.Store.SaveState(ctx, s.Name, ts)
}

// StateName is the indexer_state key for a contract and window size.
func StateName(contract string, windowSeconds uint64) string {
	return "staking_windows:" + contract + ":" + strconv.FormatUint(windowSeconds, 10)
}
