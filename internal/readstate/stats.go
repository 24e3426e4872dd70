package readstate

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"gicoinDesk/internal/model"
)

// StatsReader reads global contract parameters.
type StatsReader interface {
	TotalSupply(ctx context.Context) (*big.Int, error)
	TotalStaked(ctx context.Context) (*big.Int, error)
	RewardPoolStatus(ctx context.Context) (*big.Int, *big.Int, error)
	RewardRate(ctx context.Context) (*big.Int, error)
	TaxRate(ctx context.Context) (*big.Int, error)
	Paused(ctx context.Context) (bool, error)
	QuorumPercentage(ctx context.Context) (*big.Int, error)
	MinStakeAmount(ctx context.Context) (*big.Int, error)
	Owner(ctx context.Context) (common.Address, error)
}

// aprMultiplier converts the monthly reward rate into a yearly figure.
const aprMultiplier = 12

// FetchStats returns a FetchFunc for the admin statistics view.
func FetchStats(reader StatsReader) FetchFunc[model.ContractStats] {
	return func(ctx context.Context, _ common.Address, _ model.ContractStats) (model.ContractStats, error) {
		s := model.EmptyContractStats()
		var owner common.Address

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { s.TotalSupply, err = reader.TotalSupply(gctx); return })
		g.Go(func() (err error) { s.TotalStaked, err = reader.TotalStaked(gctx); return })
		g.Go(func() (err error) { s.RewardPool, s.CommittedReward, err = reader.RewardPoolStatus(gctx); return })
		g.Go(func() (err error) { s.RewardRate, err = reader.RewardRate(gctx); return })
		g.Go(func() (err error) { s.TaxRate, err = reader.TaxRate(gctx); return })
		g.Go(func() (err error) { s.Paused, err = reader.Paused(gctx); return })
		g.Go(func() (err error) { s.QuorumPercentage, err = reader.QuorumPercentage(gctx); return })
		g.Go(func() (err error) { s.MinStakeAmount, err = reader.MinStakeAmount(gctx); return })
		g.Go(func() (err error) { owner, err = reader.Owner(gctx); return })
		if err := g.Wait(); err != nil {
			return model.ContractStats{}, err
		}

		s.Owner = strings.ToLower(owner.Hex())
		s.APR = new(big.Int).Mul(s.RewardRate, big.NewInt(aprMultiplier)).String()
		return s, nil
	}
}
