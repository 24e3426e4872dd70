package readstate

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/model"
)

// LockPeriod is the contract's staking and claim lock.
const LockPeriod = 30 * 24 * time.Hour

// AccountReader is the subset of contract reads used by the account projection.
type AccountReader interface {
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	StakedAmount(ctx context.Context, account common.Address) (*big.Int, error)
	CalculateReward(ctx context.Context, account common.Address) (*big.Int, error)
	StakingTime(ctx context.Context, account common.Address) (uint64, error)
	LastClaimedTime(ctx context.Context, account common.Address) (uint64, error)
	AirdropRegistered(ctx context.Context, account common.Address) (bool, error)
	IsWhitelisted(ctx context.Context, account common.Address) (bool, error)
	HasClaimed(ctx context.Context, account common.Address) (bool, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
}

// StatusSource is the optional off-chain airdrop status service.
type StatusSource interface {
	Status(ctx context.Context, account common.Address) (model.AirdropStatus, error)
}

// AccountFetcher builds AccountSnapshot values. Zero RewardPool or Staking
// addresses skip the pool balance and allowance reads.
type AccountFetcher struct {
	Reader     AccountReader
	Status     StatusSource
	RewardPool common.Address
	Staking    common.Address
	Clock      clockwork.Clock
	Logger     *zap.Logger
}

// Fetch reads on-chain fields concurrently and enriches them with the
// status service. A status failure keeps the previous enrichment.
func (f AccountFetcher) Fetch(ctx context.Context, account common.Address, prev model.AccountSnapshot) (model.AccountSnapshot, error) {
	snap := model.EmptyAccountSnapshot()
	snap.Account = account.Hex()

	var status *model.AirdropStatus
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { snap.Balance, err = f.Reader.BalanceOf(gctx, account); return })
	g.Go(func() (err error) { snap.Staked, err = f.Reader.StakedAmount(gctx, account); return })
	g.Go(func() (err error) { snap.PendingReward, err = f.Reader.CalculateReward(gctx, account); return })
	g.Go(func() (err error) { snap.StakingTime, err = f.Reader.StakingTime(gctx, account); return })
	g.Go(func() (err error) { snap.LastClaimed, err = f.Reader.LastClaimedTime(gctx, account); return })
	g.Go(func() (err error) { snap.Registered, err = f.Reader.AirdropRegistered(gctx, account); return })
	g.Go(func() (err error) { snap.Whitelisted, err = f.Reader.IsWhitelisted(gctx, account); return })
	g.Go(func() (err error) { snap.Claimed, err = f.Reader.HasClaimed(gctx, account); return })
	if f.RewardPool != (common.Address{}) {
		g.Go(func() (err error) { snap.PoolBalance, err = f.Reader.BalanceOf(gctx, f.RewardPool); return })
	}
	if f.Staking != (common.Address{}) {
		g.Go(func() (err error) { snap.Allowance, err = f.Reader.Allowance(gctx, account, f.Staking); return })
	}

	// The status service is best effort and must not fail the group.
	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		if f.Status == nil {
			return
		}
		st, err := f.Status.Status(ctx, account)
		if err != nil {
			if f.Logger != nil {
				f.Logger.Debug("airdrop status unavailable", zap.String("account", account.Hex()), zap.Error(err))
			}
			return
		}
		status = &st
	}()

	if err := g.Wait(); err != nil {
		<-statusDone
		return prev, err
	}
	<-statusDone

	applyStatus(&snap, status, prev)
	f.applyLocks(&snap)
	return snap, nil
}

func applyStatus(snap *model.AccountSnapshot, status *model.AirdropStatus, prev model.AccountSnapshot) {
	sameAccount := prev.Account == snap.Account
	if status == nil {
		if sameAccount {
			snap.Eligible = prev.Eligible
			if prev.AirdropAmount != nil {
				snap.AirdropAmount = prev.AirdropAmount
			}
			snap.Proof = prev.Proof
		}
		return
	}
	snap.Eligible = status.Eligible
	if amount, err := contract.ParseUnits(status.Amount.String()); err == nil {
		snap.AirdropAmount = amount
	} else if sameAccount && prev.AirdropAmount != nil {
		snap.AirdropAmount = prev.AirdropAmount
	}
	if len(status.Proof) > 0 {
		snap.Proof = status.Proof
	} else if sameAccount {
		snap.Proof = prev.Proof
	}
}

func (f AccountFetcher) applyLocks(snap *model.AccountSnapshot) {
	clock := f.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	now := uint64(clock.Now().Unix())
	lock := uint64(LockPeriod / time.Second)

	snap.CanUnstake = snap.StakingTime > 0 && now >= snap.StakingTime+lock
	if snap.LastClaimed > 0 {
		snap.CanClaim = now >= snap.LastClaimed+lock
	} else {
		snap.CanClaim = true
	}
}

var _ AccountReader = (*contract.Reader)(nil)
