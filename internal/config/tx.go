package config

import (
	"time"

	"github.com/spf13/pflag"
)

// TxConfig holds configuration for one-shot contract writes.
type TxConfig struct {
	Common
	Key
	Executor

	BackendURL    string
	StatusTimeout time.Duration
}

// LoadTx merges config file, environment variables, and flags into TxConfig.
func LoadTx(cfgFile string, flags *pflag.FlagSet) (TxConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"status-timeout":        5 * time.Second,
		"tx-timeout":            15 * time.Second,
		"receipt-poll-interval": 1500 * time.Millisecond,
	})
	if err != nil {
		return TxConfig{}, err
	}

	return TxConfig{
		Common:        loadCommon(v),
		Key:           loadKey(v),
		Executor:      loadExecutor(v),
		BackendURL:    v.GetString("backend-url"),
		StatusTimeout: v.GetDuration("status-timeout"),
	}, nil
}

// ReadConfig holds configuration for read-only queries.
type ReadConfig struct {
	Common

	Account       string
	BackendURL    string
	StatusTimeout time.Duration
}

// LoadRead merges config file, environment variables, and flags into ReadConfig.
func LoadRead(cfgFile string, flags *pflag.FlagSet) (ReadConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"status-timeout": 5 * time.Second,
	})
	if err != nil {
		return ReadConfig{}, err
	}

	return ReadConfig{
		Common:        loadCommon(v),
		Account:       v.GetString("account"),
		BackendURL:    v.GetString("backend-url"),
		StatusTimeout: v.GetDuration("status-timeout"),
	}, nil
}
