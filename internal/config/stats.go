package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// StatsConfig holds configuration for staking window aggregation.
type StatsConfig struct {
	Common

	Input         string
	Window        string
	PGDSN         string
	BatchSize     int
	StateFile     string
	RecomputeFrom string
}

// LoadStats merges config file, environment variables, and flags into StatsConfig.
func LoadStats(cfgFile string, flags *pflag.FlagSet) (StatsConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"batch-size": 1000,
		"window":     "24h",
	})
	if err != nil {
		return StatsConfig{}, err
	}

	return StatsConfig{
		Common:        loadCommon(v),
		Input:         v.GetString("in"),
		Window:        v.GetString("window"),
		PGDSN:         v.GetString("pg-dsn"),
		BatchSize:     v.GetInt("batch-size"),
		StateFile:     v.GetString("state-file"),
		RecomputeFrom: v.GetString("recompute-from"),
	}, nil
}

// ParseWindow converts a duration string to whole seconds.
func ParseWindow(input string) (uint64, error) {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid window: %w", err)
	}
	secs := uint64(d / time.Second)
	if d <= 0 || secs == 0 {
		return 0, fmt.Errorf("window must be at least 1s")
	}
	return secs, nil
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339).
func ParseTimestamp(input string) (uint64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}

	if isNumeric(input) {
		val, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return 0, err
		}
		return val, nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return 0, err
	}
	return uint64(tm.Unix()), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
