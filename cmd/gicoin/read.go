package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"gicoinDesk/internal/config"
	"gicoinDesk/internal/desk"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the account snapshot and contract statistics",
		RunE:  runStatus,
	}
	addChainFlags(cmd)
	cmd.Flags().String("account", "", "account to inspect")
	cmd.Flags().String("backend-url", "", "airdrop status service base URL")
	cmd.Flags().Duration("status-timeout", 5*time.Second, "status service request timeout")
	return cmd
}

func newProposalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "Print governance proposals, newest first",
		RunE:  runProposals,
	}
	addChainFlags(cmd)
	return cmd
}

type statusResult struct {
	Network string            `json:"network"`
	Account *desk.AccountView `json:"account,omitempty"`
	Stats   desk.StatsView    `json:"stats"`
}

// openReadDesk builds a desk with no signing key. Caches are refreshed on
// demand instead of running.
func openReadDesk(ctx context.Context, cfg config.ReadConfig) (*desk.Desk, *session, error) {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	sess, err := dial(ctx, cfg.Common)
	if err != nil {
		return nil, nil, err
	}
	d, err := desk.New(desk.Config{ChainID: cfg.ChainID, Deployment: sess.deployment}, desk.Deps{
		Reader:  sess.reader,
		Backend: readOnly{},
		Status:  statusSource(cfg.BackendURL, cfg.StatusTimeout),
		Logger:  logger,
	})
	if err != nil {
		sess.Close()
		return nil, nil, err
	}
	return d, sess, nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadRead(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.Account != "" && !common.IsHexAddress(cfg.Account) {
		return fmt.Errorf("invalid account %q", cfg.Account)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, sess, err := openReadDesk(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	res := statusResult{Network: sess.info.Name}
	if cfg.Account != "" {
		d.Connect(common.HexToAddress(cfg.Account))
		if !d.Account.ForceRefresh(ctx) {
			return fmt.Errorf("read account snapshot failed")
		}
		view := d.AccountView()
		res.Account = &view
	}
	if !d.Stats.ForceRefresh(ctx) {
		return fmt.Errorf("read contract stats failed")
	}
	res.Stats = d.StatsView()
	return printJSON(cmd.OutOrStdout(), res)
}

func runProposals(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadRead(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, sess, err := openReadDesk(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	if !d.Proposals.ForceRefresh(ctx) {
		return fmt.Errorf("read proposals failed")
	}
	return printJSON(cmd.OutOrStdout(), d.ProposalViews())
}
