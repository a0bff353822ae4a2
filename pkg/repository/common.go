package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// ErrNotFound is returned when the requested record doesn't exist
var ErrNotFound = errors.New("not found")

// errCritical stops the retrier, matched by criticalError
var errCritical = errors.New("critical database error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

func (e *criticalError) Is(target error) bool { return target == errCritical }

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// retryOnLock runs fn with backoff as long as it fails with a lock error.
// Any other failure has to be returned as criticalError and stops the retries.
func retryOnLock(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, fn, errCritical)
	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return err
}

// classify marks everything except lock errors as critical
func classify(err error) error {
	if err == nil || isLockError(err) {
		return err
	}
	return &criticalError{err: err}
}
