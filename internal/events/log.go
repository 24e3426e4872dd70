package events

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"gicoinDesk/internal/model"
)

const (
	DefaultCapacity = 100
	DefaultCooldown = 3 * time.Second
)

// Log is a bounded, newest-first list of event records. A record whose
// transaction hash and name were accepted less than the cooldown ago is
// dropped as a redelivery.
type Log struct {
	capacity int
	cooldown time.Duration
	clock    clockwork.Clock

	mu      sync.RWMutex
	records []model.EventRecord
	seen    map[string]time.Time
}

func NewLog(capacity int, cooldown time.Duration, clock clockwork.Clock) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if cooldown < 0 {
		cooldown = 0
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Log{
		capacity: capacity,
		cooldown: cooldown,
		clock:    clock,
		records:  make([]model.EventRecord, 0, capacity),
		seen:     make(map[string]time.Time),
	}
}

// Add prepends r unless it is a duplicate. It reports whether r was kept.
func (l *Log) Add(r model.EventRecord) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(now)
	if r.TxHash != "" {
		key := dedupKey(r)
		if at, ok := l.seen[key]; ok && now.Sub(at) < l.cooldown {
			return false
		}
		l.seen[key] = now
	}

	if len(l.records) < l.capacity {
		l.records = append(l.records, model.EventRecord{})
	}
	copy(l.records[1:], l.records[:len(l.records)-1])
	l.records[0] = r
	return true
}

func (l *Log) prune(now time.Time) {
	for k, at := range l.seen {
		if now.Sub(at) >= l.cooldown {
			delete(l.seen, k)
		}
	}
}

func dedupKey(r model.EventRecord) string {
	return strings.ToLower(r.TxHash) + "/" + r.Name
}

// Records returns a copy of the log, newest first.
func (l *Log) Records() []model.EventRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.EventRecord, len(l.records))
	copy(out, l.records)
	return out
}

// ForAccount returns the records that involve account, newest first.
func (l *Log) ForAccount(account string) []model.EventRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.EventRecord, 0)
	for _, r := range l.records {
		if r.Involves(account) {
			out = append(out, r)
		}
	}
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Clear drops all records and dedup state.
func (l *Log) Clear() {
	l.mu.Lock()
	l.records = l.records[:0]
	l.seen = make(map[string]time.Time)
	l.mu.Unlock()
}

// PutEventBatch adds records in order, so the last one ends up newest. It
// lets historical loads seed the log through the storage.Storage interface.
func (l *Log) PutEventBatch(_ context.Context, records []model.EventRecord) error {
	for _, r := range records {
		l.Add(r)
	}
	return nil
}
