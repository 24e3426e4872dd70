// Package desk wires the session, read-state caches, transaction executor
// and event subscription into one operations surface.
package desk

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/events"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/readstate"
	"gicoinDesk/internal/session"
	"gicoinDesk/internal/tx"
)

// Poll intervals per projection.
const (
	DefaultAccountPoll  = 5 * time.Second
	DefaultProposalPoll = 15 * time.Second
	DefaultStatsPoll    = 10 * time.Second
	DefaultMinInterval  = 4 * time.Second
)

// Event names that invalidate each projection.
var (
	accountEvents = []string{
		"Staked", "Unstaked", "RewardClaimed", "RewardCalculated",
		"AirdropRegistered", "AirdropClaimed", "AirdropClaimFailed",
		"TransferTaxApplied", "TransferWithoutTax", "BlacklistStatusChanged",
	}
	proposalEvents = []string{
		"ProposalCreated", "Voted", "VotingClosed", "ProposalExecuted", "QuorumPercentageUpdated",
	}
	statsEvents = []string{
		"Staked", "Unstaked", "RewardClaimed", "TaxRateChanged", "TaxWalletUpdated",
		"PausedStatusChanged", "MaxTransactionLimitUpdated", "QuorumPercentageUpdated",
	}
)

// Config controls the desk.
type Config struct {
	ChainID      uint64
	Deployment   contract.Deployment
	AccountPoll  time.Duration
	ProposalPoll time.Duration
	StatsPoll    time.Duration
	MinInterval  time.Duration
	Executor     tx.Config
	// EventsEnabled activates the event subscription when Run starts.
	EventsEnabled bool
}

// Deps are the external collaborators.
type Deps struct {
	Reader   *contract.Reader
	Backend  tx.Backend
	Events   *events.Subscriber
	Status   readstate.StatusSource
	Notifier tx.Notifier
	Clock    clockwork.Clock
	Logger   *zap.Logger
}

// Desk is the process-wide operations surface.
type Desk struct {
	cfg    Config
	clock  clockwork.Clock
	logger *zap.Logger

	Session   *session.Session
	Account   *readstate.Cache[model.AccountSnapshot]
	Proposals *readstate.Cache[[]model.Proposal]
	Stats     *readstate.Cache[model.ContractStats]
	Executor  *tx.Executor
	Events    *events.Subscriber
	Board     *tx.Board

	reader *contract.Reader
}

// New builds a Desk. Events may be nil when no subscription is wanted.
func New(cfg Config, deps Deps) (*Desk, error) {
	if deps.Reader == nil {
		return nil, fmt.Errorf("contract reader is nil")
	}
	if deps.Backend == nil {
		return nil, fmt.Errorf("transaction backend is nil")
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	setDefaults(&cfg)

	d := &Desk{
		cfg:     cfg,
		clock:   deps.Clock,
		logger:  deps.Logger,
		Session: session.New(),
		Events:  deps.Events,
		Board:   tx.NewBoard(),
		reader:  deps.Reader,
	}

	notifier := tx.Fanout(d.Board, tx.LogNotifier{Logger: deps.Logger})
	if deps.Notifier != nil {
		notifier = tx.Fanout(d.Board, tx.LogNotifier{Logger: deps.Logger}, deps.Notifier)
	}
	execCfg := cfg.Executor
	execCfg.ChainID = cfg.ChainID
	d.Executor = tx.NewExecutor(execCfg, deps.Backend, notifier, deps.Logger)

	fetcher := readstate.AccountFetcher{
		Reader:     deps.Reader,
		Status:     deps.Status,
		RewardPool: cfg.Deployment.RewardPool,
		Staking:    cfg.Deployment.Staking,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	d.Account = readstate.New(readstate.Options{
		Name: "account", PollInterval: cfg.AccountPoll, MinInterval: cfg.MinInterval,
		Clock: deps.Clock, Logger: deps.Logger,
	}, model.EmptyAccountSnapshot, fetcher.Fetch)
	d.Proposals = readstate.New(readstate.Options{
		Name: "proposals", PollInterval: cfg.ProposalPoll, MinInterval: cfg.MinInterval,
		Global: true, Clock: deps.Clock, Logger: deps.Logger,
	}, readstate.EmptyProposals, readstate.FetchProposals(deps.Reader))
	d.Stats = readstate.New(readstate.Options{
		Name: "stats", PollInterval: cfg.StatsPoll, MinInterval: cfg.MinInterval,
		Global: true, Clock: deps.Clock, Logger: deps.Logger,
	}, model.EmptyContractStats, readstate.FetchStats(deps.Reader))

	d.Account.Observe(d.Session)
	d.Proposals.Observe(d.Session)
	d.Stats.Observe(d.Session)

	if d.Events != nil {
		d.Events.OnEvent(d.Account.Trigger, accountEvents...)
		d.Events.OnEvent(d.Proposals.Trigger, proposalEvents...)
		d.Events.OnEvent(d.Stats.Trigger, statsEvents...)
	}
	return d, nil
}

func setDefaults(cfg *Config) {
	if cfg.AccountPoll <= 0 {
		cfg.AccountPoll = DefaultAccountPoll
	}
	if cfg.ProposalPoll <= 0 {
		cfg.ProposalPoll = DefaultProposalPoll
	}
	if cfg.StatsPoll <= 0 {
		cfg.StatsPoll = DefaultStatsPoll
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = DefaultMinInterval
	}
}

// Connect establishes the wallet session on the configured chain.
func (d *Desk) Connect(account common.Address) {
	d.Session.Connect(account, d.cfg.ChainID)
	d.logger.Info("session connected", zap.String("account", account.Hex()), zap.Uint64("chain_id", d.cfg.ChainID))
}

// Disconnect tears the wallet session down. Account-bound projections reset.
func (d *Desk) Disconnect() {
	d.Session.Disconnect()
	d.logger.Info("session disconnected")
}

// Run drives the caches and, when enabled, the event subscription until ctx
// is done.
func (d *Desk) Run(ctx context.Context) error {
	// The subscription is activated before any cache starts so a failure
	// leaves nothing running.
	var watchEvents func(ctx context.Context) error
	if d.Events != nil && d.cfg.EventsEnabled {
		sub, err := d.Events.Activate(ctx)
		if err != nil {
			return fmt.Errorf("activate events: %w", err)
		}
		watchEvents = func(ctx context.Context) error {
			defer d.Events.Deactivate()
			select {
			case <-ctx.Done():
				return nil
			case err := <-sub.Err():
				return err
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { d.Account.Run(gctx); return nil })
	g.Go(func() error { d.Proposals.Run(gctx); return nil })
	g.Go(func() error { d.Stats.Run(gctx); return nil })
	if watchEvents != nil {
		g.Go(func() error { return watchEvents(gctx) })
	}
	return g.Wait()
}

// Execute runs op through the executor. Owner-only operations require the
// connected account to be the contract owner; the rest require a connected
// account. Projections touched by op are refreshed once on success.
func (d *Desk) Execute(ctx context.Context, op contract.Operation) (*model.TxOutcome, error) {
	authority := tx.Connected(d.Session)
	if op.Privileged() {
		authority = tx.OwnerOnly(d.reader, d.Session)
	}
	return d.Executor.Execute(ctx, op,
		tx.RequireAuthority(authority),
		tx.WithRefresh(func() { d.refreshAfter(ctx, op) }),
	)
}

// refreshAfter bypasses the minimum interval so a confirmed write is visible
// as soon as Execute returns.
func (d *Desk) refreshAfter(ctx context.Context, op contract.Operation) {
	d.Account.ForceRefresh(ctx)
	switch op.(type) {
	case contract.CreateProposal, contract.Vote, contract.CloseVoting, contract.ExecuteProposal,
		contract.SetQuorumPercentage, contract.SetProposalTimes:
		d.Proposals.ForceRefresh(ctx)
		if _, ok := op.(contract.SetQuorumPercentage); ok {
			d.Stats.ForceRefresh(ctx)
		}
	default:
		d.Stats.ForceRefresh(ctx)
	}
}

// AccountView returns the account projection for display.
func (d *Desk) AccountView() AccountView {
	return newAccountView(d.Account.Get(), d.Session.Current().Connected, d.Account.UpdatedAt())
}

// StatsView returns the admin statistics for display.
func (d *Desk) StatsView() StatsView {
	return newStatsView(d.Stats.Get(), d.Stats.UpdatedAt())
}

// ProposalViews returns all proposals, newest first.
func (d *Desk) ProposalViews() []ProposalView {
	return newProposalViews(d.Proposals.Get(), d.clock.Now())
}

// EventFeed returns the global feed, or the records involving account when
// account is non-empty.
func (d *Desk) EventFeed(account string) []model.EventRecord {
	if d.Events == nil {
		return []model.EventRecord{}
	}
	if account == "" {
		return d.Events.Records()
	}
	return d.Events.ForAccount(account)
}

// MyEvents returns the feed for the connected account.
func (d *Desk) MyEvents() []model.EventRecord {
	st := d.Session.Current()
	if !st.Connected {
		return []model.EventRecord{}
	}
	return d.EventFeed(st.Account.Hex())
}

// Notifications returns recent executor notifications in first-seen order.
func (d *Desk) Notifications() []tx.Notification {
	return d.Board.List()
}
