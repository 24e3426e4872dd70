package config

import (
	"time"

	"github.com/spf13/pflag"
)

// WatchConfig holds configuration for the long-running desk.
type WatchConfig struct {
	Common
	Key
	Executor

	Account          string
	BackendURL       string
	StatusTimeout    time.Duration
	PollInterval     time.Duration
	ProposalPoll     time.Duration
	StatsPoll        time.Duration
	MinFetchInterval time.Duration
	Events           bool
	EventPoll        time.Duration
	EventStartBlock  uint64
	HistorySpan      uint64
	Listen           string
	TrustedProxies   []string
	Out              string
	PGDSN            string
}

// LoadWatch merges config file, environment variables, and flags into WatchConfig.
func LoadWatch(cfgFile string, flags *pflag.FlagSet) (WatchConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"status-timeout":        5 * time.Second,
		"poll-interval":         5 * time.Second,
		"proposal-poll":         15 * time.Second,
		"stats-poll":            10 * time.Second,
		"min-fetch-interval":    4 * time.Second,
		"events":                true,
		"event-poll":            4 * time.Second,
		"history-span":          uint64(50_000),
		"listen":                ":8080",
		"tx-timeout":            15 * time.Second,
		"receipt-poll-interval": 1500 * time.Millisecond,
	})
	if err != nil {
		return WatchConfig{}, err
	}

	return WatchConfig{
		Common:           loadCommon(v),
		Key:              loadKey(v),
		Executor:         loadExecutor(v),
		Account:          v.GetString("account"),
		BackendURL:       v.GetString("backend-url"),
		StatusTimeout:    v.GetDuration("status-timeout"),
		PollInterval:     v.GetDuration("poll-interval"),
		ProposalPoll:     v.GetDuration("proposal-poll"),
		StatsPoll:        v.GetDuration("stats-poll"),
		MinFetchInterval: v.GetDuration("min-fetch-interval"),
		Events:           v.GetBool("events"),
		EventPoll:        v.GetDuration("event-poll"),
		EventStartBlock:  v.GetUint64("event-start-block"),
		HistorySpan:      v.GetUint64("history-span"),
		Listen:           v.GetString("listen"),
		TrustedProxies:   v.GetStringSlice("trusted-proxies"),
		Out:              v.GetString("out"),
		PGDSN:            v.GetString("pg-dsn"),
	}, nil
}
