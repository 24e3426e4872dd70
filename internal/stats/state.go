package stats

import (
	"context"
	"sync"
	"time"

	"gicoinDesk/internal/storage"
)

// StateStore persists the last processed timestamp.
type StateStore interface {
	Load(ctx context.Context) (uint64, bool, error)
	Save(ctx context.Context, ts uint64) error
}

// FileStateStore keeps cursors for several aggregations in one JSON file,
// keyed by Name.
type FileStateStore struct {
	Path string
	Name string

	mu sync.Mutex
}

type stateEntry struct {
	LastProcessed uint64 `json:"last_processed_ts"`
	UpdatedAt     string `json:"updated_at"`
}

func (s *FileStateStore) read() (map[string]stateEntry, error) {
	entries := make(map[string]stateEntry)
	if _, err := storage.ReadJSONFile(s.Path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FileStateStore) Load(_ context.Context) (uint64, bool, error) {
	if s == nil || s.Path == "" {
		return 0, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return 0, false, err
	}
	entry, ok := entries[s.Name]
	return entry.LastProcessed, ok, nil
}

func (s *FileStateStore) Save(_ context.Context, ts uint64) error {
	if s == nil || s.Path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[s.Name] = stateEntry{LastProcessed: ts, UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano)}

	return storage.WriteJSONFile(s.Path, entries)
}
