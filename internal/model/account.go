package model

import (
	"encoding/json"
	"math/big"
)

// AccountSnapshot is the cached per-account projection of contract state.
// Amounts are in base units (18 decimals).
type AccountSnapshot struct {
	Account       string   `json:"account"`
	Balance       *big.Int `json:"balance"`
	Staked        *big.Int `json:"staked"`
	PendingReward *big.Int `json:"pending_reward"`
	StakingTime   uint64   `json:"staking_time"`
	LastClaimed   uint64   `json:"last_claimed"`
	CanUnstake    bool     `json:"can_unstake"`
	CanClaim      bool     `json:"can_claim"`
	Registered    bool     `json:"registered"`
	Whitelisted   bool     `json:"whitelisted"`
	Claimed       bool     `json:"claimed"`
	PoolBalance   *big.Int `json:"pool_balance"`
	// Allowance is what the account has approved for the staking contract.
	Allowance *big.Int `json:"allowance"`

	Eligible      bool     `json:"eligible"`
	AirdropAmount *big.Int `json:"airdrop_amount"`
	Proof         []string `json:"proof,omitempty"`
}

// EmptyAccountSnapshot returns the snapshot shown when no account is connected.
func EmptyAccountSnapshot() AccountSnapshot {
	return AccountSnapshot{
		Balance:       new(big.Int),
		Staked:        new(big.Int),
		PendingReward: new(big.Int),
		PoolBalance:   new(big.Int),
		Allowance:     new(big.Int),
		AirdropAmount: new(big.Int),
	}
}

// AirdropStatus is the off-chain enrichment for an account.
type AirdropStatus struct {
	Eligible bool        `json:"eligible"`
	Claimed  bool        `json:"claimed"`
	Amount   json.Number `json:"amount"`
	Proof    []string    `json:"proof"`
}
