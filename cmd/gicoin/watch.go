package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gicoinDesk/internal/backfill"
	"gicoinDesk/internal/chain"
	"gicoinDesk/internal/config"
	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/desk"
	"gicoinDesk/internal/events"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/readstate"
	"gicoinDesk/internal/server"
	"gicoinDesk/internal/storage"
	"gicoinDesk/internal/storage/postgres"
	"gicoinDesk/internal/tx"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep account, proposal and stats projections fresh and serve them over HTTP",
		RunE:  runWatch,
	}
	addChainFlags(cmd)
	addKeyFlags(cmd)
	cmd.Flags().String("account", "", "account to watch when no signing key is given")
	cmd.Flags().String("backend-url", "", "airdrop status service base URL")
	cmd.Flags().Duration("status-timeout", 5*time.Second, "status service request timeout")
	cmd.Flags().Duration("poll-interval", desk.DefaultAccountPoll, "account projection poll interval")
	cmd.Flags().Duration("proposal-poll", desk.DefaultProposalPoll, "proposal projection poll interval")
	cmd.Flags().Duration("stats-poll", desk.DefaultStatsPoll, "stats projection poll interval")
	cmd.Flags().Duration("min-fetch-interval", desk.DefaultMinInterval, "minimum time between polled fetches")
	cmd.Flags().Bool("events", true, "subscribe to contract events")
	cmd.Flags().Duration("event-poll", events.DefaultPollInterval, "event polling interval")
	cmd.Flags().Uint64("event-start-block", 0, "first block to poll, 0 means the block after head")
	cmd.Flags().Uint64("history-span", backfill.DefaultSpan, "blocks of history loaded into the feed at startup, 0 disables")
	cmd.Flags().String("listen", ":8080", "status server listen address")
	cmd.Flags().StringSlice("trusted-proxies", nil, "proxy IPs or CIDRs whose X-Real-IP and X-Forwarded-For headers are honored")
	cmd.Flags().String("out", "", "optional JSONL export of observed events")
	cmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the event archive")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWatch(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := dial(ctx, cfg.Common)
	if err != nil {
		return err
	}
	defer sess.Close()

	var archive []storage.Storage
	if cfg.Out != "" {
		archive = append(archive, storage.NewJsonlStorage(cfg.Out))
	}
	var pg *postgres.Store
	if cfg.PGDSN != "" {
		pg, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		archive = append(archive, pg)
	}

	var backend tx.Backend = readOnly{}
	account := common.Address{}
	if cfg.Account != "" {
		if !common.IsHexAddress(cfg.Account) {
			return fmt.Errorf("invalid account %q", cfg.Account)
		}
		account = common.HexToAddress(cfg.Account)
	}
	if key, ok, err := optionalKey(cfg.Key); err != nil {
		return err
	} else if ok {
		wallet, err := chain.NewWallet(sess.client, sess.reader, key, cfg.ChainID)
		if err != nil {
			return err
		}
		backend = wallet
		account = wallet.Address()
	}

	var subscriber *events.Subscriber
	if cfg.Events {
		subscriber, err = newSubscriber(ctx, cfg, sess, archive, logger)
		if err != nil {
			return err
		}
	}

	d, err := desk.New(desk.Config{
		ChainID:       cfg.ChainID,
		Deployment:    sess.deployment,
		AccountPoll:   cfg.PollInterval,
		ProposalPoll:  cfg.ProposalPoll,
		StatsPoll:     cfg.StatsPoll,
		MinInterval:   cfg.MinFetchInterval,
		Executor:      tx.Config{PollInterval: cfg.ReceiptPollInterval, Timeout: cfg.TxTimeout},
		EventsEnabled: cfg.Events,
	}, desk.Deps{
		Reader:  sess.reader,
		Backend: backend,
		Events:  subscriber,
		Status:  statusSource(cfg.BackendURL, cfg.StatusTimeout),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if account != (common.Address{}) {
		d.Connect(account)
	}

	logger.Info("watch start",
		zap.String("network", sess.info.Name),
		zap.Uint64("chain_id", cfg.ChainID),
		zap.String("contract", sess.deployment.Token.Hex()),
		zap.String("account", account.Hex()),
		zap.Bool("events", cfg.Events),
		zap.String("listen", cfg.Listen),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	handler := server.NewHandler(d, logger)
	if err := handler.Limiter.TrustProxies(cfg.TrustedProxies...); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Run(gctx) })
	g.Go(func() error {
		return server.NewServer(cfg.Listen, handler, logger).Run(gctx)
	})
	if subscriber != nil {
		g.Go(func() error { return reportActivity(gctx, subscriber, d, logger) })
	}
	return g.Wait()
}

// newSubscriber builds the event subscription and seeds its feed with recent
// history, so polling starts right after the loaded range.
func newSubscriber(ctx context.Context, cfg config.WatchConfig, sess *session, archive []storage.Storage, logger *zap.Logger) (*events.Subscriber, error) {
	start := cfg.EventStartBlock
	var head uint64
	if start == 0 {
		latest, err := sess.client.LatestBlockNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("get latest block: %w", err)
		}
		head = latest
		start = latest + 1
	}

	subscriber, err := events.NewSubscriber(events.Config{
		ChainID:      cfg.ChainID,
		Contract:     sess.deployment.Token,
		PollInterval: cfg.EventPoll,
		StartBlock:   start,
		Sink:         storage.Multi(archive),
	}, sess.client, logger)
	if err != nil {
		return nil, err
	}

	if head == 0 || cfg.HistorySpan == 0 {
		return subscriber, nil
	}
	// The JSONL export only receives live records; replaying history into it
	// on every start would duplicate lines.
	sinks := storage.Multi{subscriber.Log()}
	for _, s := range archive {
		if _, ok := s.(*postgres.Store); ok {
			sinks = append(sinks, s)
		}
	}
	runner, err := backfill.NewRunner(backfill.RunConfig{
		Contract:  sess.deployment.Token,
		ToBlock:   head,
		Span:      cfg.HistorySpan,
		BatchSize: events.DefaultMaxRange,
	}, sess.client, sinks, logger)
	if err != nil {
		return nil, err
	}
	sum, err := runner.Run(ctx)
	if err != nil {
		// History is cosmetic; live polling still works.
		logger.Warn("load event history failed", zap.Error(err))
		return subscriber, nil
	}
	logger.Info("event history loaded", zap.Uint64("from", sum.From), zap.Uint64("to", sum.To), zap.Int("records", sum.Records))
	return subscriber, nil
}

// reportActivity logs records that involve the connected account.
func reportActivity(ctx context.Context, subscriber *events.Subscriber, d *desk.Desk, logger *zap.Logger) error {
	ch := make(chan model.EventRecord, 64)
	sub := subscriber.SubscribeRecords(ch)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Err():
			return err
		case rec := <-ch:
			st := d.Session.Current()
			if st.Connected && rec.Involves(st.Account.Hex()) {
				logger.Info("account activity",
					zap.String("event", rec.Name),
					zap.String("tx_hash", rec.TxHash),
					zap.Uint64("block_number", rec.BlockNumber),
				)
			}
		}
	}
}

func optionalKey(k config.Key) (*ecdsa.PrivateKey, bool, error) {
	if k.PrivateKey == "" && k.Keystore == "" {
		return nil, false, nil
	}
	key, err := chain.LoadKey(chain.KeyConfig{
		PrivateKey:       k.PrivateKey,
		Keystore:         k.Keystore,
		KeystorePassword: k.KeystorePassword,
	})
	if err != nil {
		return nil, false, err
	}
	return key, true, nil
}

// statusSource avoids handing the desk a typed nil when no service is set.
func statusSource(baseURL string, timeout time.Duration) readstate.StatusSource {
	client := readstate.NewStatusClient(baseURL, timeout)
	if client == nil {
		return nil
	}
	return client
}

// readOnly rejects writes when no signing key is configured.
type readOnly struct{}

func (readOnly) Submit(context.Context, contract.Operation) (common.Hash, error) {
	return common.Hash{}, fmt.Errorf("no signing key configured")
}

func (readOnly) Receipt(context.Context, common.Hash) (*types.Receipt, error) {
	return nil, fmt.Errorf("no signing key configured")
}

func (readOnly) RevertReason(context.Context, contract.Operation, *types.Receipt) (string, error) {
	return "", nil
}
