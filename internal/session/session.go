// Package session holds the process-wide wallet session: which account is
// connected and on which chain.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotConnected is returned by operations that need a connected account.
var ErrNotConnected = errors.New("wallet not connected")

// State is an immutable view of the session.
type State struct {
	Account   common.Address
	ChainID   uint64
	Connected bool
}

// Is reports whether the session is connected as account (case-insensitive).
func (s State) Is(account string) bool {
	return s.Connected && strings.EqualFold(s.Account.Hex(), account)
}

// Observer is notified after every transition with the previous and new state.
type Observer func(prev, next State)

// Session tracks connect and disconnect transitions.
type Session struct {
	mu        sync.RWMutex
	state     State
	observers []Observer
}

// New returns a disconnected session.
func New() *Session {
	return &Session{}
}

// Connect establishes the session. Reconnecting as the same account on the
// same chain is a no-op.
func (s *Session) Connect(account common.Address, chainID uint64) {
	s.transition(State{Account: account, ChainID: chainID, Connected: true})
}

// Disconnect tears the session down.
func (s *Session) Disconnect() {
	s.transition(State{})
}

// Current returns the current state.
func (s *Session) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Account returns the connected account or ErrNotConnected.
func (s *Session) Account() (common.Address, error) {
	st := s.Current()
	if !st.Connected {
		return common.Address{}, ErrNotConnected
	}
	return st.Account, nil
}

// OnChange registers an observer. Observers run synchronously, in
// registration order, outside the session lock.
func (s *Session) OnChange(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Session) transition(next State) {
	s.mu.Lock()
	prev := s.state
	if prev == next {
		s.mu.Unlock()
		return
	}
	s.state = next
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(prev, next)
	}
}
