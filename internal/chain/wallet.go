package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"gicoinDesk/internal/contract"
)

// KeyConfig selects the signing key. PrivateKey wins over Keystore.
type KeyConfig struct {
	PrivateKey       string
	Keystore         string
	KeystorePassword string
}

// LoadKey resolves the signing key from a hex string or keystore file.
func LoadKey(cfg KeyConfig) (*ecdsa.PrivateKey, error) {
	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		return key, nil
	}
	if cfg.Keystore != "" {
		data, err := os.ReadFile(cfg.Keystore)
		if err != nil {
			return nil, fmt.Errorf("read keystore: %w", err)
		}
		key, err := keystore.DecryptKey(data, cfg.KeystorePassword)
		if err != nil {
			return nil, fmt.Errorf("decrypt keystore: %w", err)
		}
		return key.PrivateKey, nil
	}
	return nil, fmt.Errorf("no signing key configured")
}

// Wallet signs and sends contract operations from a single key.
type Wallet struct {
	client   *Client
	reader   *contract.Reader
	contract *bind.BoundContract
	auth     *bind.TransactOpts
}

// NewWallet binds key to the contract behind reader.
func NewWallet(client *Client, reader *contract.Reader, key *ecdsa.PrivateKey, chainID uint64) (*Wallet, error) {
	if client == nil || reader == nil {
		return nil, fmt.Errorf("client and reader are required")
	}
	parsed, err := contract.ABI()
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	eth := client.Eth()
	bound := bind.NewBoundContract(reader.Address(), parsed, eth, eth, eth)
	return &Wallet{client: client, reader: reader, contract: bound, auth: auth}, nil
}

// Address returns the signing account.
func (w *Wallet) Address() common.Address {
	return w.auth.From
}

// Submit signs and broadcasts op, returning the pending transaction hash.
func (w *Wallet) Submit(ctx context.Context, op contract.Operation) (common.Hash, error) {
	data, err := contract.Pack(op)
	if err != nil {
		return common.Hash{}, err
	}
	opts := *w.auth
	opts.Context = ctx
	tx, err := w.contract.RawTransact(&opts, data)
	if err != nil {
		return common.Hash{}, err
	}
	return tx.Hash(), nil
}

// Receipt returns the receipt for hash, nil while pending.
func (w *Wallet) Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return w.client.TransactionReceipt(ctx, hash)
}

// RevertReason replays op at the receipt's block to recover the revert string.
func (w *Wallet) RevertReason(ctx context.Context, op contract.Operation, receipt *types.Receipt) (string, error) {
	data, err := contract.Pack(op)
	if err != nil {
		return "", err
	}
	var block *big.Int
	if receipt != nil && receipt.BlockNumber != nil {
		block = receipt.BlockNumber
	}
	return w.reader.Replay(ctx, w.Address(), data, block)
}
