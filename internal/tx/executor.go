// Package tx submits contract operations and follows them to a classified
// outcome.
package tx

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/metrics"
	"gicoinDesk/internal/model"
	"gicoinDesk/internal/session"
)

const (
	DefaultPollInterval = 1500 * time.Millisecond
	DefaultTimeout      = 15 * time.Second
)

const (
	timeoutMessage  = "Confirmation not observed in time; check the explorer"
	canceledMessage = "Stopped waiting for confirmation; check the explorer"
)

// Backend is the wallet/RPC collaborator.
type Backend interface {
	// Submit signs and sends op, returning the pending transaction hash.
	Submit(ctx context.Context, op contract.Operation) (common.Hash, error)
	// Receipt returns nil, nil while the transaction is pending.
	Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	// RevertReason recovers the revert string of a failed transaction.
	RevertReason(ctx context.Context, op contract.Operation, receipt *types.Receipt) (string, error)
}

// Authority decides whether the caller may run a privileged operation.
type Authority func(ctx context.Context) (bool, error)

// Config holds executor settings.
type Config struct {
	ChainID      uint64
	PollInterval time.Duration
	Timeout      time.Duration
}

// Executor runs contract writes. Calls are independent and may overlap.
type Executor struct {
	backend  Backend
	notifier Notifier
	cfg      Config
	logger   *zap.Logger

	seq      atomic.Uint64
	inFlight atomic.Int64
}

// NewExecutor builds an Executor. A nil notifier discards notifications.
func NewExecutor(cfg Config, backend Backend, notifier Notifier, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Executor{backend: backend, notifier: notifier, cfg: cfg, logger: logger}
}

type options struct {
	authority Authority
	timeout   time.Duration
	refresh   func()
}

// Option customizes a single Execute call.
type Option func(*options)

// RequireAuthority checks pred before submitting anything.
func RequireAuthority(pred Authority) Option {
	return func(o *options) { o.authority = pred }
}

// WithTimeout overrides the confirmation budget. Non-positive values keep
// the configured timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRefresh runs fn once after a successful receipt.
func WithRefresh(fn func()) Option {
	return func(o *options) { o.refresh = fn }
}

// Loading reports whether any call is in flight.
func (e *Executor) Loading() bool {
	return e.inFlight.Load() > 0
}

// Execute submits op, waits for its receipt and classifies the result.
// Every failure is returned as one of *AuthorizationError, *SubmissionError,
// *TimeoutError, *CanceledError or *RevertedError after a matching
// notification is emitted.
func (e *Executor) Execute(ctx context.Context, op contract.Operation, opts ...Option) (*model.TxOutcome, error) {
	o := options{timeout: e.cfg.Timeout}
	for _, opt := range opts {
		opt(&o)
	}

	method := op.Method()
	id := fmt.Sprintf("%s:%d", method, e.seq.Add(1))
	log := e.logger.With(zap.String("operation", method), zap.String("notification_id", id))

	e.inFlight.Add(1)
	metrics.TxInFlight.Inc()
	defer func() {
		e.inFlight.Add(-1)
		metrics.TxInFlight.Dec()
	}()

	if o.authority != nil {
		ok, err := o.authority(ctx)
		if err != nil || !ok {
			authErr := &AuthorizationError{Operation: method, Err: err}
			e.fail(log, id, op, authErr, authMessage(authErr), "")
			return nil, authErr
		}
	}

	e.notifier.Notify(Notification{ID: id, Kind: KindLoading, Title: op.Label(), Message: "Sending transaction"})

	hash, err := e.backend.Submit(ctx, op)
	if err != nil {
		subErr := &SubmissionError{Operation: method, Message: contract.RevertMessage(contract.RevertReason(err)), Err: err}
		e.fail(log, id, op, subErr, subErr.Message, "")
		return nil, subErr
	}
	log = log.With(zap.String("tx_hash", hash.Hex()))
	log.Info("transaction submitted")
	e.notifier.Notify(Notification{
		ID:          id,
		Kind:        KindLoading,
		Title:       op.Label(),
		Message:     "Waiting for confirmation",
		TxHash:      hash.Hex(),
		ExplorerURL: contract.TxURL(e.cfg.ChainID, hash.Hex()),
	})

	started := time.Now()
	receipt, err := e.waitReceipt(ctx, hash, o.timeout, log)
	if errors.Is(err, context.Canceled) {
		cancelErr := &CanceledError{Operation: method, Hash: hash, Err: err}
		e.fail(log, id, op, cancelErr, canceledMessage, hash.Hex())
		return nil, cancelErr
	}
	if err != nil {
		toErr := &TimeoutError{Operation: method, Hash: hash, Err: err}
		e.fail(log, id, op, toErr, timeoutMessage, hash.Hex())
		return nil, toErr
	}
	metrics.TxConfirmDuration.Observe(time.Since(started).Seconds())

	outcome := &model.TxOutcome{
		Operation:   method,
		Hash:        hash.Hex(),
		ExplorerURL: contract.TxURL(e.cfg.ChainID, hash.Hex()),
	}
	if receipt.BlockNumber != nil {
		outcome.BlockNumber = receipt.BlockNumber.Uint64()
	}
	outcome.GasUsed = receipt.GasUsed

	if receipt.Status != types.ReceiptStatusSuccessful {
		reason, rerr := e.backend.RevertReason(ctx, op, receipt)
		if rerr != nil {
			log.Debug("revert reason unavailable", zap.Error(rerr))
		}
		if reason == "" {
			reason = "execution reverted"
		}
		revErr := &RevertedError{
			Operation: method,
			Hash:      hash,
			Code:      contract.RevertCode(reason),
			Reason:    reason,
			Message:   contract.RevertMessage(reason),
		}
		e.fail(log, id, op, revErr, revErr.Message, hash.Hex())
		return nil, revErr
	}

	outcome.Status = model.TxSuccess
	outcome.Message = op.Label() + " confirmed"
	metrics.TxTotal.WithLabelValues(method, string(model.TxSuccess)).Inc()
	log.Info("transaction confirmed", zap.Uint64("block", outcome.BlockNumber), zap.Uint64("gas_used", outcome.GasUsed))
	e.notifier.Notify(Notification{
		ID:          id,
		Kind:        KindSuccess,
		Title:       op.Label(),
		Message:     outcome.Message,
		TxHash:      outcome.Hash,
		ExplorerURL: outcome.ExplorerURL,
	})

	if o.refresh != nil {
		o.refresh()
	}
	return outcome, nil
}

func (e *Executor) waitReceipt(ctx context.Context, hash common.Hash, timeout time.Duration, log *zap.Logger) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := e.backend.Receipt(waitCtx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			log.Warn("receipt poll failed", zap.Error(err))
		}

		select {
		case <-waitCtx.Done():
			return nil, waitCtx.Err()
		case <-ticker.C:
		}
	}
}

func (e *Executor) fail(log *zap.Logger, id string, op contract.Operation, err error, message, hash string) {
	outcome := outcomeLabel(err)
	metrics.TxTotal.WithLabelValues(op.Method(), outcome).Inc()
	log.Warn("transaction failed", zap.String("outcome", outcome), zap.Error(err))

	n := Notification{ID: id, Kind: KindError, Title: op.Label(), Message: message, TxHash: hash}
	if hash != "" {
		n.ExplorerURL = contract.TxURL(e.cfg.ChainID, hash)
	}
	e.notifier.Notify(n)
}

func outcomeLabel(err error) string {
	var (
		authErr *AuthorizationError
		subErr  *SubmissionError
		toErr   *TimeoutError
		canErr  *CanceledError
		revErr  *RevertedError
	)
	switch {
	case errors.As(err, &authErr):
		return "unauthorized"
	case errors.As(err, &subErr):
		return "submit_failed"
	case errors.As(err, &toErr):
		return string(model.TxTimeout)
	case errors.As(err, &canErr):
		return string(model.TxCanceled)
	case errors.As(err, &revErr):
		return string(model.TxReverted)
	default:
		return "error"
	}
}

// UserMessage returns the user-facing text for an Execute error.
func UserMessage(err error) string {
	var (
		authErr *AuthorizationError
		subErr  *SubmissionError
		toErr   *TimeoutError
		canErr  *CanceledError
		revErr  *RevertedError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return authMessage(authErr)
	case errors.As(err, &subErr):
		return subErr.Message
	case errors.As(err, &toErr):
		return timeoutMessage
	case errors.As(err, &canErr):
		return canceledMessage
	case errors.As(err, &revErr):
		return revErr.Message
	default:
		return err.Error()
	}
}

func authMessage(err *AuthorizationError) string {
	if errors.Is(err.Err, session.ErrNotConnected) {
		return "Connect a wallet first"
	}
	return "Only the contract owner can do this"
}
