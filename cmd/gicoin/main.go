package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gicoinDesk/internal/chain"
	"gicoinDesk/internal/config"
	"gicoinDesk/internal/contract"
)

func main() {
	root := &cobra.Command{
		Use:          "gicoin",
		Short:        "GIC token, staking, governance and airdrop desk",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(newWatchCmd(), newTxCmd(), newStatusCmd(), newProposalsCmd(), newBackfillCmd(), newStatsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// addChainFlags registers the flags every on-chain command takes.
func addChainFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "RPC URL")
	cmd.Flags().Uint64("chain-id", contract.DefaultChainID, "chain id (56 BSC, 97 BSC testnet)")
	cmd.Flags().String("contract", "", "override the GIC contract address")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().String("private-key", "", "hex private key of the signing account")
	cmd.Flags().String("keystore", "", "keystore file of the signing account")
	cmd.Flags().String("keystore-password", "", "keystore password")
	cmd.Flags().Duration("tx-timeout", 15*time.Second, "confirmation budget per transaction")
	cmd.Flags().Duration("receipt-poll-interval", 1500*time.Millisecond, "receipt polling interval")
}

func configFile(cmd *cobra.Command) string {
	cfgFile, _ := cmd.Flags().GetString("config")
	return cfgFile
}

// session is a dialed RPC client bound to the resolved deployment.
type session struct {
	client     *chain.Client
	reader     *contract.Reader
	deployment contract.Deployment
	info       contract.ChainInfo
}

// dial connects to the RPC and refuses to continue when it serves a chain
// other than the configured one.
func dial(ctx context.Context, cfg config.Common) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dep, info, err := cfg.Deployment()
	if err != nil {
		return nil, err
	}

	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	if err := client.EnsureChainID(ctx, cfg.ChainID); err != nil {
		client.Close()
		return nil, err
	}
	reader, err := contract.NewReader(client, dep.Token)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &session{client: client, reader: reader, deployment: dep, info: info}, nil
}

func (s *session) Close() {
	s.client.Close()
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
