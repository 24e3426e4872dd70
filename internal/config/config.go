package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gicoinDesk/internal/contract"
)

// EnvPrefix namespaces environment overrides, e.g. GICOIN_RPC.
const EnvPrefix = "GICOIN"

// Common holds the settings every command shares.
type Common struct {
	RPCURL   string
	ChainID  uint64
	Contract string
	LogLevel string
}

// Key selects the signing key for write commands.
type Key struct {
	PrivateKey       string
	Keystore         string
	KeystorePassword string
}

// Executor holds transaction confirmation settings.
type Executor struct {
	TxTimeout           time.Duration
	ReceiptPollInterval time.Duration
}

// newViper merges config file, environment variables, and flags. Flags that
// were set explicitly win over env, env wins over the file.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", contract.DefaultChainID)
	v.SetDefault("log-level", "info")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func loadCommon(v *viper.Viper) Common {
	return Common{
		RPCURL:   strings.TrimSpace(v.GetString("rpc")),
		ChainID:  v.GetUint64("chain-id"),
		Contract: strings.TrimSpace(v.GetString("contract")),
		LogLevel: v.GetString("log-level"),
	}
}

func loadKey(v *viper.Viper) Key {
	return Key{
		PrivateKey:       v.GetString("private-key"),
		Keystore:         v.GetString("keystore"),
		KeystorePassword: v.GetString("keystore-password"),
	}
}

func loadExecutor(v *viper.Viper) Executor {
	return Executor{
		TxTimeout:           v.GetDuration("tx-timeout"),
		ReceiptPollInterval: v.GetDuration("receipt-poll-interval"),
	}
}

// Validate checks the settings needed to reach the chain.
func (c Common) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if c.ChainID == 0 {
		return fmt.Errorf("chain id is required")
	}
	return nil
}

// Deployment resolves the contract addresses for the configured chain. A
// contract override replaces the token and staking address on chains
// without a table deployment too.
func (c Common) Deployment() (contract.Deployment, contract.ChainInfo, error) {
	dep, info, err := contract.Lookup(c.ChainID)
	if c.Contract == "" || info.Name == "" {
		return dep, info, err
	}
	if !common.IsHexAddress(c.Contract) {
		return contract.Deployment{}, info, fmt.Errorf("invalid contract address %q", c.Contract)
	}
	addr := common.HexToAddress(c.Contract)
	dep.Token = addr
	dep.Staking = addr
	return dep, info, nil
}
