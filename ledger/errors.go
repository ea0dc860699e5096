package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured     = errors.New("ledger client is not configured")
	ErrAlreadyExists     = errors.New("course is already registered on chain")
	ErrCourseNotFound    = errors.New("course is not registered on chain")
	ErrInvalidPrice      = errors.New("course price must be greater than zero")
	ErrConfirmTimeout    = errors.New("timed out waiting for transaction confirmation")
	ErrNotPurchased      = errors.New("student has not purchased this course")
	ErrCertificateExists = errors.New("certificate already minted for this course")
	ErrBadgeExists       = errors.New("teacher badge already minted for this course")
)

// RevertError reports a transaction that was mined but reverted by the
// contract. Reason carries the revert string when the node returns one.
type RevertError struct {
	Hash   string
	Reason string
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("transaction %s reverted: %s", e.Hash, e.Reason)
}

// PublishFailedError is returned by CreateCourseWithStatus when the course
// was registered but the follow-up publish transaction failed. Create holds
// the result of the successful registration.
type PublishFailedError struct {
	Create *TxResult
	Err    error
}

func (e *PublishFailedError) Error() string {
	return fmt.Sprintf("course registered but publish failed: %v", e.Err)
}

func (e *PublishFailedError) Unwrap() error { return e.Err }
