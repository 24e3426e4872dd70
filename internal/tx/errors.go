package tx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// AuthorizationError means the local privilege check failed; nothing was sent.
type AuthorizationError struct {
	Operation string
	Err       error
}

func (e *AuthorizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: not authorized: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s: not authorized", e.Operation)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// SubmissionError means the wallet failed to sign or send.
type SubmissionError struct {
	Operation string
	Message   string
	Err       error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: submit: %s", e.Operation, e.Message)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// TimeoutError means no receipt was observed in time. The transaction may
// still be mined; callers reconcile on the next read refresh.
type TimeoutError struct {
	Operation string
	Hash      common.Hash
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no receipt for %s: %v", e.Operation, e.Hash.Hex(), e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// CanceledError means the caller gave up waiting for the receipt. The
// transaction was sent and may still be mined.
type CanceledError struct {
	Operation string
	Hash      common.Hash
	Err       error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("%s: stopped waiting for %s: %v", e.Operation, e.Hash.Hex(), e.Err)
}

func (e *CanceledError) Unwrap() error { return e.Err }

// RevertedError means the transaction was mined and rejected by the contract.
type RevertedError struct {
	Operation string
	Hash      common.Hash
	Code      string
	Reason    string
	Message   string
}

func (e *RevertedError) Error() string {
	return fmt.Sprintf("%s: reverted in %s: %s", e.Operation, e.Hash.Hex(), e.Message)
}
