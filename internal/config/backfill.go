package config

import (
	"time"

	"github.com/spf13/pflag"
)

// BackfillConfig holds configuration for the historical event load.
type BackfillConfig struct {
	Common

	FromBlock         uint64
	ToBlock           uint64
	Span              uint64
	BatchSize         uint64
	Out               string
	PGDSN             string
	Checkpoint        string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// LoadBackfill merges config file, environment variables, and flags into BackfillConfig.
func LoadBackfill(cfgFile string, flags *pflag.FlagSet) (BackfillConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"span":               uint64(50_000),
		"batch-size":         uint64(2000),
		"out":                "./data/events.jsonl",
		"checkpoint":         "./data/checkpoint.json",
		"checkpoint-enabled": true,
		"max-retries":        5,
		"retry-backoff":      500 * time.Millisecond,
	})
	if err != nil {
		return BackfillConfig{}, err
	}

	return BackfillConfig{
		Common:            loadCommon(v),
		FromBlock:         v.GetUint64("from"),
		ToBlock:           v.GetUint64("to"),
		Span:              v.GetUint64("span"),
		BatchSize:         v.GetUint64("batch-size"),
		Out:               v.GetString("out"),
		PGDSN:             v.GetString("pg-dsn"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
	}, nil
}
