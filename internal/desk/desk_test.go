package desk

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/contract/contracttest"
	"gicoinDesk/internal/events"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/tx"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	owner = common.HexToAddress("0x9999999999999999999999999999999999999999")
)

// fakeChain is an in-memory staking contract that serves both reads and writes.
type fakeChain struct {
	mu       sync.Mutex
	sender   common.Address
	balances map[common.Address]*big.Int
	staked   map[common.Address]*big.Int
	stakedAt map[common.Address]uint64
	receipts map[common.Hash]*types.Receipt
	submits  int
	now      func() time.Time
	block    int64
}

func newFakeChain(now func() time.Time) *fakeChain {
	return &fakeChain{
		balances: map[common.Address]*big.Int{alice: mustUnits("100")},
		staked:   map[common.Address]*big.Int{},
		stakedAt: map[common.Address]uint64{},
		receipts: map[common.Hash]*types.Receipt{},
		now:      now,
		block:    1000,
	}
}

func mustUnits(s string) *big.Int {
	v, err := contract.ParseUnits(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (c *fakeChain) amount(m map[common.Address]*big.Int, a common.Address) *big.Int {
	if v, ok := m[a]; ok {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

func (c *fakeChain) caller() *contracttest.Caller {
	read := func(fn func(args []interface{}) interface{}) contracttest.Handler {
		return func(args []interface{}) ([]interface{}, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			return []interface{}{fn(args)}, nil
		}
	}
	addr := func(args []interface{}) common.Address { return args[0].(common.Address) }
	return contracttest.NewCaller().
		Handle("balanceOf", read(func(a []interface{}) interface{} { return c.amount(c.balances, addr(a)) })).
		Handle("stakedAmount", read(func(a []interface{}) interface{} { return c.amount(c.staked, addr(a)) })).
		Handle("stakingTime", read(func(a []interface{}) interface{} { return new(big.Int).SetUint64(c.stakedAt[addr(a)]) })).
		Return("calculateReward", big.NewInt(0)).
		Return("lastClaimedTime", big.NewInt(0)).
		Return("airdropRegistered", true).
		Return("isWhitelisted", false).
		Return("hasClaimed", false).
		Return("allowance", mustUnits("25")).
		Return("proposalCount", big.NewInt(0)).
		Return("totalSupply", mustUnits("1000000")).
		Handle("totalStaked", read(func([]interface{}) interface{} {
			total := new(big.Int)
			for _, v := range c.staked {
				total.Add(total, v)
			}
			return total
		})).
		Return("getRewardPoolStatus", mustUnits("500"), big.NewInt(0)).
		Return("rewardRate", big.NewInt(1)).
		Return("taxRate", big.NewInt(2)).
		Return("paused", false).
		Return("quorumPercentage", big.NewInt(51)).
		Return("MIN_STAKE_AMOUNT", mustUnits("1")).
		Return("owner", owner)
}

func (c *fakeChain) Submit(_ context.Context, op contract.Operation) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submits++
	switch o := op.(type) {
	case contract.Stake:
		bal := c.amount(c.balances, c.sender)
		if bal.Cmp(o.Amount) < 0 {
			return common.Hash{}, errors.New("execution reverted: E12")
		}
		c.balances[c.sender] = bal.Sub(bal, o.Amount)
		c.staked[c.sender] = c.amount(c.staked, c.sender).Add(c.amount(c.staked, c.sender), o.Amount)
		c.stakedAt[c.sender] = uint64(c.now().Unix())
	}
	c.block++
	hash := common.BigToHash(big.NewInt(c.block))
	c.receipts[hash] = &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(c.block), TxHash: hash}
	return hash, nil
}

func (c *fakeChain) Receipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipts[hash], nil
}

func (c *fakeChain) RevertReason(context.Context, contract.Operation, *types.Receipt) (string, error) {
	return "", nil
}

type noLogs struct{}

func (noLogs) LatestBlockNumber(context.Context) (uint64, error) { return 0, nil }
func (noLogs) FilterLogs(context.Context, uint64, uint64, []common.Address, []common.Hash) ([]types.Log, error) {
	return nil, nil
}
func (noLogs) BlockTimestamp(context.Context, uint64) (uint64, error) { return 1_700_000_000, nil }

func newTestDesk(t *testing.T) (*Desk, *fakeChain) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Unix(1_800_000_000, 0))
	chain := newFakeChain(clock.Now)
	chain.sender = alice

	reader, err := contract.NewReader(chain.caller(), contracttest.Address)
	require.NoError(t, err)
	sub, err := events.NewSubscriber(events.Config{ChainID: 97, Contract: contracttest.Address, Clock: clock}, noLogs{}, nil)
	require.NoError(t, err)

	d, err := New(Config{
		ChainID:    97,
		Deployment: contract.Deployment{Token: contracttest.Address, Staking: contracttest.Address},
		Executor:   tx.Config{PollInterval: 10 * time.Millisecond, Timeout: time.Second},
	}, Deps{Reader: reader, Backend: chain, Events: sub, Clock: clock})
	require.NoError(t, err)
	return d, chain
}

type unreachableHead struct{ noLogs }

func (unreachableHead) LatestBlockNumber(context.Context) (uint64, error) {
	return 0, errors.New("dial tcp: connection refused")
}

func TestRunFailsBeforeStartingCaches(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Unix(1_800_000_000, 0))
	chain := newFakeChain(clock.Now)
	reader, err := contract.NewReader(chain.caller(), contracttest.Address)
	require.NoError(t, err)
	sub, err := events.NewSubscriber(events.Config{ChainID: 97, Contract: contracttest.Address, Clock: clock}, unreachableHead{}, nil)
	require.NoError(t, err)

	d, err := New(Config{ChainID: 97, EventsEnabled: true}, Deps{Reader: reader, Backend: chain, Events: sub, Clock: clock})
	require.NoError(t, err)

	err = d.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activate events")

	// No cache loop is left to pick up a trigger.
	d.Stats.Trigger()
	assert.Never(t, func() bool { return !d.Stats.UpdatedAt().IsZero() }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestStakeRefreshesSnapshot(t *testing.T) {
	d, chain := newTestDesk(t)
	ctx := context.Background()

	d.Connect(alice)
	require.True(t, d.Account.ForceRefresh(ctx))
	before := d.AccountView()
	assert.Equal(t, "0", before.Staked)
	assert.Equal(t, "100", before.Balance)
	assert.Equal(t, "25", before.Allowance)

	outcome, err := d.Execute(ctx, contract.Stake{Amount: mustUnits("10")})
	require.NoError(t, err)
	assert.Equal(t, model.TxSuccess, outcome.Status)
	assert.Equal(t, 1, chain.submits)

	view := d.AccountView()
	assert.Equal(t, "10", view.Staked)
	assert.Equal(t, "90", view.Balance)
	assert.False(t, view.CanUnstake, "lock period has not elapsed")
	assert.Equal(t, "10", d.StatsView().TotalStaked)

	notes := d.Notifications()
	require.NotEmpty(t, notes)
	assert.Equal(t, tx.KindSuccess, notes[len(notes)-1].Kind)
}

func TestDisconnectResetsSnapshot(t *testing.T) {
	d, _ := newTestDesk(t)
	ctx := context.Background()

	d.Connect(alice)
	_, err := d.Execute(ctx, contract.Stake{Amount: mustUnits("10")})
	require.NoError(t, err)
	require.Equal(t, "10", d.AccountView().Staked)

	d.Disconnect()
	view := d.AccountView()
	assert.False(t, view.Connected)
	assert.Empty(t, view.Account)
	assert.Equal(t, "0", view.Balance)
	assert.Equal(t, "0", view.Staked)
	assert.Equal(t, "0", view.PendingReward)
	assert.False(t, view.Registered)
	assert.Empty(t, view.Proof)
	assert.Empty(t, d.MyEvents())
}

func TestOwnerOnlyOperationIsRejectedForNonOwner(t *testing.T) {
	d, chain := newTestDesk(t)
	d.Connect(alice)

	_, err := d.Execute(context.Background(), contract.Pause{})
	var authErr *tx.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 0, chain.submits)
}

func TestWriteWithoutSessionIsRejected(t *testing.T) {
	d, chain := newTestDesk(t)

	_, err := d.Execute(context.Background(), contract.Stake{Amount: mustUnits("1")})
	var authErr *tx.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Connect a wallet first", tx.UserMessage(err))
	assert.Equal(t, 0, chain.submits)
}

func TestEventFeedFiltersByConnectedAccount(t *testing.T) {
	d, _ := newTestDesk(t)
	d.Connect(alice)

	other := common.HexToAddress("0x2222222222222222222222222222222222222222")
	d.Events.Deliver(context.Background(), []types.Log{
		contracttest.Staked(alice, big.NewInt(1), 10, common.HexToHash("0x01")),
		contracttest.Staked(other, big.NewInt(1), 10, common.HexToHash("0x02")),
	})

	assert.Len(t, d.EventFeed(""), 2)
	mine := d.MyEvents()
	require.Len(t, mine, 1)
	assert.Equal(t, common.HexToHash("0x01").Hex(), mine[0].TxHash)
}
