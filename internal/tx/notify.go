package tx

import (
	"sync"

	"go.uber.org/zap"
)

// Kind is the lifecycle stage of a notification.
type Kind string

const (
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a user-facing status update. Updates sharing an ID replace
// each other.
type Notification struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Message     string `json:"message,omitempty"`
	TxHash      string `json:"tx_hash,omitempty"`
	ExplorerURL string `json:"explorer_url,omitempty"`
}

// Notifier receives executor notifications.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	Logger *zap.Logger
}

func (l LogNotifier) Notify(n Notification) {
	fields := []zap.Field{zap.String("id", n.ID), zap.String("kind", string(n.Kind))}
	if n.Message != "" {
		fields = append(fields, zap.String("message", n.Message))
	}
	if n.TxHash != "" {
		fields = append(fields, zap.String("tx_hash", n.TxHash))
	}
	if n.ExplorerURL != "" {
		fields = append(fields, zap.String("explorer", n.ExplorerURL))
	}
	switch n.Kind {
	case KindError:
		l.Logger.Warn(n.Title, fields...)
	default:
		l.Logger.Info(n.Title, fields...)
	}
}

// boardSize bounds how many notification IDs a Board remembers.
const boardSize = 50

// Board keeps the latest notification per ID, in first-seen order.
type Board struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Notification
}

func NewBoard() *Board {
	return &Board{byID: make(map[string]Notification)}
}

func (b *Board) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byID[n.ID]; !ok {
		b.order = append(b.order, n.ID)
		if len(b.order) > boardSize {
			delete(b.byID, b.order[0])
			b.order = b.order[1:]
		}
	}
	b.byID[n.ID] = n
}

// List returns the current notifications.
func (b *Board) List() []Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Notification, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return out
}

// Get returns the notification with id.
func (b *Board) Get(id string) (Notification, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n, ok := b.byID[id]
	return n, ok
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(n Notification) {
	for _, x := range m {
		x.Notify(n)
	}
}

// Fanout sends every notification to each of notifiers.
func Fanout(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}
