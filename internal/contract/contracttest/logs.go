// Package contracttest builds synthetic contract logs for tests.
package contracttest

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"gicoinDesk/internal/contract"
)

// Address is the contract address used in synthetic logs.
var Address = common.HexToAddress("0xe4a9a0a40468efc73c5ab64fc4e86c765efab4dd")

// Log builds a log for the named event. indexed holds the topic values after
// topic0; data holds the non-indexed arguments in ABI order.
func Log(name string, block uint64, txHash common.Hash, index uint, indexed []common.Hash, data ...interface{}) (types.Log, error) {
	parsed, err := contract.ABI()
	if err != nil {
		return types.Log{}, err
	}
	ev, ok := parsed.Events[name]
	if !ok {
		return types.Log{}, fmt.Errorf("unknown event %s", name)
	}
	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return types.Log{}, fmt.Errorf("pack %s: %w", name, err)
	}
	topics := append([]common.Hash{ev.ID}, indexed...)
	return types.Log{
		Address:     Address,
		Topics:      topics,
		Data:        packed,
		BlockNumber: block,
		TxHash:      txHash,
		Index:       index,
	}, nil
}

// MustLog is Log that panics on error.
func MustLog(name string, block uint64, txHash common.Hash, index uint, indexed []common.Hash, data ...interface{}) types.Log {
	log, err := Log(name, block, txHash, index, indexed, data...)
	if err != nil {
		panic(err)
	}
	return log
}

// TopicFromAddress left-pads an address into a topic.
func TopicFromAddress(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

// TopicFromUint encodes an unsigned integer topic.
func TopicFromUint(v uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(v))
}

// Staked builds a Staked(user, amount) log.
func Staked(user common.Address, amount *big.Int, block uint64, txHash common.Hash) types.Log {
	return MustLog("Staked", block, txHash, 0, []common.Hash{TopicFromAddress(user)}, amount)
}
