package model

import "go.uber.org/zap/zapcore"

// DecodeError describes a contract log whose topic matched a known event but
// whose payload could not be decoded.
type DecodeError struct {
	ChainID     uint64 `json:"chain_id"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	LogIndex    uint64 `json:"log_index"`
	Topic0      string `json:"topic0"`
	Reason      string `json:"reason"`
}

// MarshalLogObject lets a DecodeError be logged as a single zap field.
func (e DecodeError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("chain_id", e.ChainID)
	enc.AddUint64("block_number", e.BlockNumber)
	enc.AddString("tx_hash", e.TxHash)
	enc.AddUint64("log_index", e.LogIndex)
	enc.AddString("topic0", e.Topic0)
	enc.AddString("reason", e.Reason)
	return nil
}
