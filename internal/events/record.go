package events

import (
	"time"

	"github.com/ethereum/go-ethereum/core/types"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/model"
)

// NewRecord normalizes a decoded log. blockTime may be nil when the block
// header could not be resolved.
func NewRecord(chainID uint64, ev *contract.DecodedEvent, log types.Log, blockTime *time.Time, observedAt time.Time) model.EventRecord {
	args := make(map[string]string, len(ev.Args))
	for k, v := range ev.Args {
		args[k] = v
	}
	var accounts []string
	if len(ev.Accounts) > 0 {
		accounts = append(accounts, ev.Accounts...)
	}
	return model.EventRecord{
		ChainID:     chainID,
		Name:        ev.Name,
		Args:        args,
		Accounts:    accounts,
		BlockNumber: log.BlockNumber,
		BlockTime:   blockTime,
		TxHash:      log.TxHash.Hex(),
		LogIndex:    uint64(log.Index),
		ObservedAt:  observedAt.UTC(),
	}
}

func unixTime(ts uint64) *time.Time {
	t := time.Unix(int64(ts), 0).UTC()
	return &t
}

// NewDecodeError describes a log that failed to decode.
func NewDecodeError(chainID uint64, log types.Log, err error) model.DecodeError {
	de := model.DecodeError{
		ChainID:     chainID,
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash.Hex(),
		LogIndex:    uint64(log.Index),
	}
	if len(log.Topics) > 0 {
		de.Topic0 = log.Topics[0].Hex()
	}
	if err != nil {
		de.Reason = err.Error()
	}
	return de
}
