package model

import (
	"strings"
	"time"
)

// EventRecord is a decoded contract event as observed by this process.
type EventRecord struct {
	ChainID     uint64            `json:"chain_id"`
	Name        string            `json:"name"`
	Args        map[string]string `json:"args"`
	Accounts    []string          `json:"accounts,omitempty"`
	BlockNumber uint64            `json:"block_number"`
	BlockTime   *time.Time        `json:"block_time,omitempty"`
	TxHash      string            `json:"tx_hash"`
	LogIndex    uint64            `json:"log_index"`
	ObservedAt  time.Time         `json:"observed_at"`
}

// Involves reports whether account is one of the addresses named by the event.
func (r EventRecord) Involves(account string) bool {
	if account == "" {
		return false
	}
	for _, a := range r.Accounts {
		if strings.EqualFold(a, account) {
			return true
		}
	}
	return false
}
