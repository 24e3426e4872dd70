package model

import "math/big"

// ContractStats is the admin view of global contract parameters.
type ContractStats struct {
	TotalSupply      *big.Int `json:"total_supply"`
	TotalStaked      *big.Int `json:"total_staked"`
	RewardPool       *big.Int `json:"reward_pool"`
	CommittedReward  *big.Int `json:"committed_reward"`
	RewardRate       *big.Int `json:"reward_rate"`
	APR              string   `json:"apr"`
	TaxRate          *big.Int `json:"tax_rate"`
	Paused           bool     `json:"paused"`
	QuorumPercentage *big.Int `json:"quorum_percentage"`
	MinStakeAmount   *big.Int `json:"min_stake_amount"`
	Owner            string   `json:"owner"`
}

// EmptyContractStats returns zero-valued stats.
func EmptyContractStats() ContractStats {
	return ContractStats{
		TotalSupply:      new(big.Int),
		TotalStaked:      new(big.Int),
		RewardPool:       new(big.Int),
		CommittedReward:  new(big.Int),
		RewardRate:       new(big.Int),
		APR:              "0",
		TaxRate:          new(big.Int),
		QuorumPercentage: new(big.Int),
		MinStakeAmount:   new(big.Int),
	}
}

// StakingWindowMetrics holds aggregated staking activity for one window.
type StakingWindowMetrics struct {
	ChainID        uint64 `json:"chain_id"`
	Contract       string `json:"contract"`
	WindowSizeSecs int64  `json:"window_size_seconds"`
	WindowStart    int64  `json:"window_start_ts"`
	WindowEnd      int64  `json:"window_end_ts"`
	StakeCount     uint64 `json:"stake_count"`
	UnstakeCount   uint64 `json:"unstake_count"`
	ClaimCount     uint64 `json:"claim_count"`
	StakedVolume   string `json:"staked_volume"`
	UnstakedVolume string `json:"unstaked_volume"`
	RewardsClaimed string `json:"rewards_claimed"`
	UniqueStakers  uint64 `json:"unique_stakers"`
	NetStakeChange string `json:"net_stake_change"`
}
