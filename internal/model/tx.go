package model

// TxStatus is the classified result of a submitted transaction.
type TxStatus string

const (
	TxPending  TxStatus = "pending"
	TxSuccess  TxStatus = "success"
	TxReverted TxStatus = "reverted"
	TxTimeout  TxStatus = "timeout"
	TxCanceled TxStatus = "canceled"
)

// TxOutcome describes a confirmed or abandoned transaction. Not persisted.
type TxOutcome struct {
	Operation   string   `json:"operation"`
	Hash        string   `json:"hash"`
	Status      TxStatus `json:"status"`
	BlockNumber uint64   `json:"block_number,omitempty"`
	GasUsed     uint64   `json:"gas_used,omitempty"`
	ExplorerURL string   `json:"explorer_url,omitempty"`
	Message     string   `json:"message,omitempty"`
}
