package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWatchLayering(t *testing.T) {
	path := writeConfig(t, "rpc: https://file.example\nchain-id: 97\nlisten: \":9000\"\n")
	t.Setenv("GICOIN_RPC", "https://env.example")

	flags := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	flags.String("listen", ":8080", "")
	flags.Duration("poll-interval", 5*time.Second, "")
	require.NoError(t, flags.Parse([]string{"--poll-interval=7s"}))

	cfg, err := LoadWatch(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.RPCURL)
	assert.Equal(t, uint64(97), cfg.ChainID)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 7*time.Second, cfg.PollInterval)
	assert.Equal(t, 15*time.Second, cfg.TxTimeout)
	assert.True(t, cfg.Events)
}

func TestLoadBackfillDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadBackfill("", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(56), cfg.ChainID)
	assert.Equal(t, uint64(50_000), cfg.Span)
	assert.Equal(t, uint64(2000), cfg.BatchSize)
	assert.True(t, cfg.CheckpointEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := LoadStats(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestDeployment(t *testing.T) {
	dep, info, err := Common{ChainID: 97}.Deployment()
	require.NoError(t, err)
	assert.Equal(t, "BSC Testnet", info.Name)
	assert.Equal(t, dep.Token, dep.Staking)

	_, _, err = Common{ChainID: 1}.Deployment()
	assert.Error(t, err, "no deployment on mainnet ethereum")

	dep, _, err = Common{ChainID: 1, Contract: "0x1111111111111111111111111111111111111111"}.Deployment()
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", dep.Token.Hex())

	_, _, err = Common{ChainID: 1234, Contract: "0x1111111111111111111111111111111111111111"}.Deployment()
	assert.Error(t, err)

	_, _, err = Common{ChainID: 97, Contract: "nope"}.Deployment()
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("1700000000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), ts)

	ts, err = ParseTimestamp("2023-11-14T22:13:20Z")
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), ts)

	ts, err = ParseTimestamp("")
	require.NoError(t, err)
	assert.Zero(t, ts)

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestParseWindow(t *testing.T) {
	secs, err := ParseWindow("24h")
	require.NoError(t, err)
	assert.Equal(t, uint64(86400), secs)

	_, err = ParseWindow("500ms")
	assert.Error(t, err)
	_, err = ParseWindow("-1h")
	assert.Error(t, err)
}
