package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gicoinDesk/internal/chain"
	"gicoinDesk/internal/config"
	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/desk"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/tx"
)

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx <operation> [args...]",
		Short: "Submit one contract operation and wait for its outcome",
		Long:  "Submit one contract operation and wait for its outcome.\n\nOperations:\n" + operationList(),
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTx,
	}
	addChainFlags(cmd)
	addKeyFlags(cmd)
	cmd.Flags().String("backend-url", "", "airdrop status service base URL")
	cmd.Flags().Duration("status-timeout", 5*time.Second, "status service request timeout")
	return cmd
}

func operationList() string {
	var b strings.Builder
	for _, name := range contract.OperationNames() {
		usage, _ := contract.OperationUsage(name)
		fmt.Fprintf(&b, "  %s %s\n", name, usage)
	}
	return b.String()
}

type txResult struct {
	Outcome *model.TxOutcome `json:"outcome"`
	Account desk.AccountView `json:"account"`
}

func runTx(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadTx(configFile(cmd), cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	op, err := contract.ParseOperation(args[0], args[1:])
	if err != nil {
		return err
	}

	key, ok, err := optionalKey(cfg.Key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("a private key or keystore is required to submit transactions")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := dial(ctx, cfg.Common)
	if err != nil {
		return err
	}
	defer sess.Close()

	wallet, err := chain.NewWallet(sess.client, sess.reader, key, cfg.ChainID)
	if err != nil {
		return err
	}

	d, err := desk.New(desk.Config{
		ChainID:    cfg.ChainID,
		Deployment: sess.deployment,
		Executor:   tx.Config{PollInterval: cfg.ReceiptPollInterval, Timeout: cfg.TxTimeout},
	}, desk.Deps{
		Reader:  sess.reader,
		Backend: wallet,
		Status:  statusSource(cfg.BackendURL, cfg.StatusTimeout),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	d.Connect(wallet.Address())

	logger.Info("submit operation",
		zap.String("operation", op.Method()),
		zap.String("account", wallet.Address().Hex()),
		zap.String("network", sess.info.Name),
	)

	outcome, err := d.Execute(ctx, op)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), tx.UserMessage(err))
		return err
	}
	return printJSON(cmd.OutOrStdout(), txResult{Outcome: outcome, Account: d.AccountView()})
}
