package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gicoinDesk/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Store provides Postgres persistence for contract events and staking metrics.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the tables used by this package if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// PutEventBatch stores event records. Rows are keyed by (chain_id, tx_hash,
// log_index), so replaying a range is idempotent.
func (s *Store) PutEventBatch(ctx context.Context, records []model.EventRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		accounts := r.Accounts
		if accounts == nil {
			accounts = []string{}
		}
		args := r.Args
		if args == nil {
			args = map[string]string{}
		}
		batch.Queue(`
			INSERT INTO contract_events (
				chain_id, tx_hash, log_index, name, args, accounts, block_number, block_time, observed_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			ON CONFLICT (chain_id, tx_hash, log_index)
			DO UPDATE SET
				block_time = COALESCE(EXCLUDED.block_time, contract_events.block_time),
				updated_at = now()
		`,
			int64(r.ChainID),
			strings.ToLower(r.TxHash),
			int64(r.LogIndex),
			r.Name,
			args,
			accounts,
			int64(r.BlockNumber),
			r.BlockTime,
			r.ObservedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertWindowMetrics inserts or updates staking window metrics.
func (s *Store) UpsertWindowMetrics(ctx context.Context, metrics []model.StakingWindowMetrics) error {
	if len(metrics) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, m := range metrics {
		batch.Queue(`
			INSERT INTO staking_window_metrics (
				chain_id, contract, window_size_seconds, window_start_ts, window_end_ts,
				stake_count, unstake_count, claim_count, staked_volume, unstaked_volume,
				rewards_claimed, net_stake_change, unique_stakers, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now(),now())
			ON CONFLICT (chain_id, contract, window_size_seconds, window_start_ts)
			DO UPDATE SET
				window_end_ts = EXCLUDED.window_end_ts,
				stake_count = EXCLUDED.stake_count,
				unstake_count = EXCLUDED.unstake_count,
				claim_count = EXCLUDED.claim_count,
				staked_volume = EXCLUDED.staked_volume,
				unstaked_volume = EXCLUDED.unstaked_volume,
				rewards_claimed = EXCLUDED.rewards_claimed,
				net_stake_change = EXCLUDED.net_stake_change,
				unique_stakers = EXCLUDED.unique_stakers,
				updated_at = now()
		`,
			int64(m.ChainID),
			strings.ToLower(m.Contract),
			m.WindowSizeSecs,
			time.Unix(m.WindowStart, 0).UTC(),
			time.Unix(m.WindowEnd, 0).UTC(),
			int64(m.StakeCount),
			int64(m.UnstakeCount),
			int64(m.ClaimCount),
			m.StakedVolume,
			m.UnstakedVolume,
			m.RewardsClaimed,
			m.NetStakeChange,
			int64(m.UniqueStakers),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range metrics {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the stored cursor for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var v int64
	row := s.pool.QueryRow(ctx, `SELECT last_processed FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(v), true, nil
}

// SaveState upserts the cursor for a name.
func (s *Store) SaveState(ctx context.Context, name string, v uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO indexer_state (name, last_processed, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed = EXCLUDED.last_processed, updated_at = now()
	`, name, int64(v))
	return err
}
