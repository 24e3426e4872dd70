package backfill

import (
	"strings"
	"time"

	"gicoinDesk/internal/storage"
)

// Checkpoint tracks the last block whose events were written.
type Checkpoint struct {
	ChainID            uint64 `json:"chain_id"`
	Contract           string `json:"contract"`
	LastProcessedBlock uint64 `json:"last_processed_block"`
	UpdatedAt          string `json:"updated_at"`
}

// Matches reports whether the checkpoint was written for the same deployment.
func (c Checkpoint) Matches(chainID uint64, contract string) bool {
	return c.ChainID == chainID && strings.EqualFold(c.Contract, contract)
}

// CheckpointStore persists one checkpoint file. An empty path disables it.
type CheckpointStore struct {
	path    string
	enabled bool
}

func NewCheckpointStore(path string, enabled bool) *CheckpointStore {
	return &CheckpointStore{path: path, enabled: enabled && path != ""}
}

func (c *CheckpointStore) Load() (Checkpoint, bool, error) {
	var cp Checkpoint
	if !c.enabled {
		return cp, false, nil
	}
	ok, err := storage.ReadJSONFile(c.path, &cp)
	return cp, ok, err
}

func (c *CheckpointStore) Save(cp Checkpoint) error {
	if !c.enabled {
		return nil
	}
	cp.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	return storage.WriteJSONFile(c.path, cp)
}
