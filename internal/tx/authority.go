package tx

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"gicoinDesk/internal/session"
)

// OwnerReader reads the contract owner.
type OwnerReader interface {
	Owner(ctx context.Context) (common.Address, error)
}

// OwnerOnly allows the call when the connected account is the contract owner.
// A failed owner read denies.
func OwnerOnly(reader OwnerReader, sess *session.Session) Authority {
	return func(ctx context.Context) (bool, error) {
		account, err := sess.Account()
		if err != nil {
			return false, err
		}
		owner, err := reader.Owner(ctx)
		if err != nil {
			return false, fmt.Errorf("read owner: %w", err)
		}
		return strings.EqualFold(owner.Hex(), account.Hex()), nil
	}
}

// Connected allows the call when any account is connected.
func Connected(sess *session.Session) Authority {
	return func(context.Context) (bool, error) {
		if _, err := sess.Account(); err != nil {
			return false, err
		}
		return true, nil
	}
}
