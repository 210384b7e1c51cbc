package domain

import "errors"

var (
	// ErrNotFound signals that a referenced account or transaction does not
	// exist, or is not visible within the caller's owner scope.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation signals a request that violates a domain rule,
	// such as moving a transaction to a different account.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrOperationFailed wraps unexpected persistence or infrastructure
	// failures after the unit of work has been rolled back.
	ErrOperationFailed = errors.New("operation failed")
)
