package model

import "math/big"

// Proposal mirrors one entry of the contract's proposals mapping.
type Proposal struct {
	ID            uint64   `json:"id"`
	Description   string   `json:"description"`
	StartTime     uint64   `json:"start_time"`
	EndTime       uint64   `json:"end_time"`
	VoteCount     *big.Int `json:"vote_count"`
	Executed      bool     `json:"executed"`
	VotingClosed  bool     `json:"voting_closed"`
	AutoExecuted  bool     `json:"auto_executed"`
	QuorumReached bool     `json:"quorum_reached"`
	VotesFor      *big.Int `json:"votes_for"`
	VotesAgainst  *big.Int `json:"votes_against"`
}

// Active reports whether voting is open at unix time now.
func (p Proposal) Active(now uint64) bool {
	return !p.VotingClosed && !p.Executed && now >= p.StartTime && now < p.EndTime
}
