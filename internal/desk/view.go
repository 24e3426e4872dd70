package desk

import (
	"math/big"
	"time"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/model"
)

// AccountView is the account projection with token amounts rendered in
// whole-token units.
type AccountView struct {
	Account         string    `json:"account,omitempty"`
	Connected       bool      `json:"connected"`
	Balance         string    `json:"balance"`
	Staked          string    `json:"staked"`
	PendingReward   string    `json:"pending_reward"`
	StakingTime     uint64    `json:"staking_time"`
	LastClaimedTime uint64    `json:"last_claimed_time"`
	CanUnstake      bool      `json:"can_unstake"`
	CanClaim        bool      `json:"can_claim"`
	Registered      bool      `json:"registered"`
	Whitelisted     bool      `json:"whitelisted"`
	Claimed         bool      `json:"claimed"`
	PoolBalance     string    `json:"pool_balance"`
	Allowance       string    `json:"allowance"`
	Eligible        bool      `json:"eligible"`
	AirdropAmount   string    `json:"airdrop_amount"`
	Proof           []string  `json:"proof"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newAccountView(s model.AccountSnapshot, connected bool, updated time.Time) AccountView {
	proof := s.Proof
	if proof == nil {
		proof = []string{}
	}
	return AccountView{
		Account:         s.Account,
		Connected:       connected,
		Balance:         contract.FormatUnits(s.Balance),
		Staked:          contract.FormatUnits(s.Staked),
		PendingReward:   contract.FormatUnits(s.PendingReward),
		StakingTime:     s.StakingTime,
		LastClaimedTime: s.LastClaimed,
		CanUnstake:      s.CanUnstake,
		CanClaim:        s.CanClaim,
		Registered:      s.Registered,
		Whitelisted:     s.Whitelisted,
		Claimed:         s.Claimed,
		PoolBalance:     contract.FormatUnits(s.PoolBalance),
		Allowance:       contract.FormatUnits(s.Allowance),
		Eligible:        s.Eligible,
		AirdropAmount:   contract.FormatUnits(s.AirdropAmount),
		Proof:           proof,
		UpdatedAt:       updated,
	}
}

// StatsView is the admin statistics projection in whole-token units.
type StatsView struct {
	TotalSupply      string    `json:"total_supply"`
	TotalStaked      string    `json:"total_staked"`
	RewardPool       string    `json:"reward_pool"`
	CommittedReward  string    `json:"committed_reward"`
	RewardRate       string    `json:"reward_rate"`
	APR              string    `json:"apr"`
	TaxRate          string    `json:"tax_rate"`
	Paused           bool      `json:"paused"`
	QuorumPercentage string    `json:"quorum_percentage"`
	MinStakeAmount   string    `json:"min_stake_amount"`
	Owner            string    `json:"owner"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func newStatsView(s model.ContractStats, updated time.Time) StatsView {
	return StatsView{
		TotalSupply:      contract.FormatUnits(s.TotalSupply),
		TotalStaked:      contract.FormatUnits(s.TotalStaked),
		RewardPool:       contract.FormatUnits(s.RewardPool),
		CommittedReward:  contract.FormatUnits(s.CommittedReward),
		RewardRate:       intString(s.RewardRate),
		APR:              s.APR,
		TaxRate:          intString(s.TaxRate),
		Paused:           s.Paused,
		QuorumPercentage: intString(s.QuorumPercentage),
		MinStakeAmount:   contract.FormatUnits(s.MinStakeAmount),
		Owner:            s.Owner,
		UpdatedAt:        updated,
	}
}

// ProposalView is one governance proposal as returned by proposals(id).
type ProposalView struct {
	ID            uint64 `json:"id"`
	Description   string `json:"description"`
	StartTime     uint64 `json:"start_time"`
	EndTime       uint64 `json:"end_time"`
	Active        bool   `json:"active"`
	VoteCount     string `json:"vote_count"`
	VotesFor      string `json:"votes_for"`
	VotesAgainst  string `json:"votes_against"`
	Executed      bool   `json:"executed"`
	VotingClosed  bool   `json:"voting_closed"`
	AutoExecuted  bool   `json:"auto_executed"`
	QuorumReached bool   `json:"quorum_reached"`
}

func newProposalViews(list []model.Proposal, now time.Time) []ProposalView {
	out := make([]ProposalView, 0, len(list))
	for _, p := range list {
		out = append(out, ProposalView{
			ID:            p.ID,
			Description:   p.Description,
			StartTime:     p.StartTime,
			EndTime:       p.EndTime,
			Active:        p.Active(uint64(now.Unix())),
			VoteCount:     intString(p.VoteCount),
			VotesFor:      intString(p.VotesFor),
			VotesAgainst:  intString(p.VotesAgainst),
			Executed:      p.Executed,
			VotingClosed:  p.VotingClosed,
			AutoExecuted:  p.AutoExecuted,
			QuorumReached: p.QuorumReached,
		})
	}
	return out
}

func intString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
