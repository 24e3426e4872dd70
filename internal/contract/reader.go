package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"gicoinDesk/internal/model"
)

// Reader performs typed eth_call reads against the deployed contract.
type Reader struct {
	caller  ethereum.ContractCaller
	address common.Address
	abi     abi.ABI
}

// NewReader builds a Reader for the contract at address.
func NewReader(caller ethereum.ContractCaller, address common.Address) (*Reader, error) {
	if caller == nil {
		return nil, fmt.Errorf("contract caller is nil")
	}
	parsed, err := ABI()
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	return &Reader{caller: caller, address: address, abi: parsed}, nil
}

// Address returns the contract address.
func (r *Reader) Address() common.Address {
	return r.address
}

func (r *Reader) call(ctx context.Context, method string, block *big.Int, args ...interface{}) ([]interface{}, error) {
	data, err := r.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	to := r.address
	resp, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, block)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := r.abi.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: empty result", method)
	}
	return values, nil
}

func (r *Reader) bigInt(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	values, err := r.call(ctx, method, nil, args...)
	if err != nil {
		return nil, err
	}
	v, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return v, nil
}

func (r *Reader) boolean(ctx context.Context, method string, args ...interface{}) (bool, error) {
	values, err := r.call(ctx, method, nil, args...)
	if err != nil {
		return false, err
	}
	v, err := asBool(values[0])
	if err != nil {
		return false, fmt.Errorf("%s: %w", method, err)
	}
	return v, nil
}

func (r *Reader) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return r.bigInt(ctx, "balanceOf", account)
}

func (r *Reader) Decimals(ctx context.Context) (uint8, error) {
	values, err := r.call(ctx, "decimals", nil)
	if err != nil {
		return 0, err
	}
	return asUint8(values[0])
}

func (r *Reader) TotalSupply(ctx context.Context) (*big.Int, error) {
	return r.bigInt(ctx, "totalSupply")
}

func (r *Reader) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return r.bigInt(ctx, "allowance", owner, spender)
}

func (r *Reader) StakedAmount(ctx context.Context, account common.Address) (*big.Int, error) {
	return r.bigInt(ctx, "stakedAmount", account)
}

func (r *Reader) CalculateReward(ctx context.Context, account common.Address) (*big.Int, error) {
	return r.bigInt(ctx, "calculateReward", account)
}

// StakingTime returns the unix time of the account's last stake, 0 if never.
func (r *Reader) StakingTime(ctx context.Context, account common.Address) (uint64, error) {
	v, err := r.bigInt(ctx, "stakingTime", account)
	if err != nil {
		return 0, err
	}
	return asUint64(v)
}

func (r *Reader) LastClaimedTime(ctx context.Context, account common.Address) (uint64, error) {
	v, err := r.bigInt(ctx, "lastClaimedTime", account)
	if err != nil {
		return 0, err
	}
	return asUint64(v)
}

func (r *Reader) TotalStaked(ctx context.Context) (*big.Int, error) {
	return r.bigInt(ctx, "totalStaked")
}

func (r *Reader) RewardPool(ctx context.Context) (*big.Int, error) {
	return r.bigInt(ctx, "rewardPool")
}

func (r *Reader) RewardRate(ctx context.Context) (*big.Int, error) {
	return r.bigInt(ctx, "rewardRate")
}

func (r *Reader) MinStakeAmount(ctx context.Context) (*big.Int, error) {
	return r.bigInt(ctx, "MIN_STAKE_AMOUNT")
}

// RewardPoolStatus returns the pool balance and the reward already committed to stakers.
func (r *Reader) RewardPoolStatus(ctx context.Context) (balance, committed *big.Int, err error) {
	values, err := r.call(ctx, "getRewardPoolStatus", nil)
	if err != nil {
		return nil, nil, err
	}
	if len(values) < 2 {
		return nil, nil, fmt.Errorf("getRewardPoolStatus: expected 2 values, got %d", len(values))
	}
	if balance, err = asBigInt(values[0]); err != nil {
		return nil, nil, fmt.Errorf("getRewardPoolStatus balance: %w", err)
	}
	if committed, err = asBigInt(values[1]); err != nil {
		return nil, nil, fmt.Errorf("getRewardPoolStatus committed: %w", err)
	}
	return balance, committed, nil
}

func (r *Reader) ProposalCount(ctx context.Context) (uint64, error) {
	v, err := r.bigInt(ctx, "proposalCount")
	if err != nil {
		return 0, err
	}
	return asUint64(v)
}

// Proposal reads proposals(id).
func (r *Reader) Proposal(ctx context.Context, id uint64) (model.Proposal, error) {
	values, err := r.call(ctx, "proposals", nil, new(big.Int).SetUint64(id))
	if err != nil {
		return model.Proposal{}, err
	}
	return proposalFromValues(values)
}

func proposalFromValues(values []interface{}) (model.Proposal, error) {
	if len(values) < 11 {
		return model.Proposal{}, fmt.Errorf("proposals: expected 11 values, got %d", len(values))
	}
	var (
		p   model.Proposal
		err error
	)
	if p.ID, err = asUint64(values[0]); err != nil {
		return p, fmt.Errorf("proposal id: %w", err)
	}
	if p.Description, err = asString(values[1]); err != nil {
		return p, fmt.Errorf("proposal description: %w", err)
	}
	if p.StartTime, err = asUint64(values[2]); err != nil {
		return p, fmt.Errorf("proposal start: %w", err)
	}
	if p.EndTime, err = asUint64(values[3]); err != nil {
		return p, fmt.Errorf("proposal end: %w", err)
	}
	if p.VoteCount, err = asBigInt(values[4]); err != nil {
		return p, fmt.Errorf("proposal vote count: %w", err)
	}
	flags := []*bool{&p.Executed, &p.VotingClosed, &p.AutoExecuted, &p.QuorumReached}
	for i, dst := range flags {
		if *dst, err = asBool(values[5+i]); err != nil {
			return p, fmt.Errorf("proposal flag %d: %w", i, err)
		}
	}
	if p.VotesFor, err = asBigInt(values[9]); err != nil {
		return p, fmt.Errorf("proposal votes for: %w", err)
	}
	if p.VotesAgainst, err = asBigInt(values[10]); err != nil {
		return p, fmt.Errorf("proposal votes against: %w", err)
	}
	return p, nil
}

func (r *Reader) QuorumPercentage(ctx context.Context) (*big.Int, error) {
	return r.bigInt(ctx, "quorumPercentage")
}

func (r *Reader) Owner(ctx context.Context) (common.Address, error) {
	values, err := r.call(ctx, "owner", nil)
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(values[0])
}

func (r *Reader) Paused(ctx context.Context) (bool, error) {
	return r.boolean(ctx, "paused")
}

func (r *Reader) TaxRate(ctx context.Context) (*big.Int, error) {
	return r.bigInt(ctx, "taxRate")
}

func (r *Reader) HasClaimed(ctx context.Context, account common.Address) (bool, error) {
	return r.boolean(ctx, "hasClaimed", account)
}

func (r *Reader) AirdropRegistered(ctx context.Context, account common.Address) (bool, error) {
	return r.boolean(ctx, "airdropRegistered", account)
}

func (r *Reader) IsWhitelisted(ctx context.Context, account common.Address) (bool, error) {
	return r.boolean(ctx, "isWhitelisted", account)
}

// Replay re-executes call data as from at block and returns the revert reason
// if the call fails with one. A nil error and empty reason mean the call succeeded.
func (r *Reader) Replay(ctx context.Context, from common.Address, data []byte, block *big.Int) (string, error) {
	to := r.address
	_, err := r.caller.CallContract(ctx, ethereum.CallMsg{From: from, To: &to, Data: data}, block)
	if err == nil {
		return "", nil
	}
	return RevertReason(err), nil
}
