package services

import "errors"

// Domain errors surfaced to the HTTP layer. Ledger-side failures are wrapped
// around the ledger package's own taxonomy so callers can tell which step of
// a saga failed.
var (
	ErrValidation             = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("caller does not own this resource")
	ErrCourseNotFound         = errors.New("course not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrReviewNotFound         = errors.New("review not found")
	ErrLearningRecordNotFound = errors.New("learning record not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrPurchaseRequired       = errors.New("course must be purchased first")
	ErrAlreadyReviewed        = errors.New("course already reviewed by this user")
	ErrAlreadyPurchased       = errors.New("course already purchased by this user")
	ErrStatusConflict         = errors.New("course status changed concurrently")
)
