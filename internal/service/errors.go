package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrReadOnlyCredential      = errors.New("credential is read-only")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrEmergencyNotConfigured = errors.New("emergency access is not configured")
	ErrRotationInProgress     = errors.New("another key rotation is in progress")

	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrNotUnlocked      = errors.New("emergency vault is not unlocked")
	ErrNoEmergencyWrap  = errors.New("file has no emergency key wrap")
	ErrSequenceConsumed = errors.New("rotation sequence already consumed")
	ErrNotStarted       = errors.New("rotation sequence was not ranged over")
	ErrTooManyRequests  = errors.New("too many requests, try again later")

	// ErrRotationInterrupted is returned when a rotation stops before every
	// file was visited, either because the context was cancelled or because
	// the caller stopped ranging over the progress sequence. Files already
	// visited stay committed.
	ErrRotationInterrupted = errors.New("rotation interrupted")
)

// RotationPartialFailure reports the files whose emergency wrap could not be
// replaced. Every other file of the rotation is committed.
type RotationPartialFailure struct {
	// RotationID identifies the rotation in the local journal.
	RotationID string

	// FailedFileIDs lists the failed files in processing order.
	FailedFileIDs []string

	// Causes holds the per-file error keyed by file id.
	Causes map[string]error
}

func (e *RotationPartialFailure) Error() string {
	ids := e.FailedFileIDs
	if len(ids) > 5 {
		ids = append(slices.Clone(ids[:5]), "...")
	}
	return fmt.Sprintf("key rotation failed for %d file(s): %s", len(e.FailedFileIDs), strings.Join(ids, ", "))
}

// Unwrap exposes the per-file causes to errors.Is and errors.As.
func (e *RotationPartialFailure) Unwrap() []error {
	errs := make([]error, 0, len(e.FailedFileIDs))
	for _, id := range e.FailedFileIDs {
		if cause := e.Causes[id]; cause != nil {
			errs = append(errs, cause)
		}
	}
	return errs
}
