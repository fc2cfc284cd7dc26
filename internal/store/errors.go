package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrFileAlreadyExists is returned when a file id is reused.
	ErrFileAlreadyExists = errors.New("file already exists")

	// ErrFileNotFound is returned when a file does not exist, belongs to
	// another user or was deleted.
	ErrFileNotFound = errors.New("file was not found")

	// ErrLeaseNotHeld is returned when an emergency access commit or a
	// rewrap is attempted without holding the user's rotation lease.
	ErrLeaseNotHeld = errors.New("rotation lease is not held")

	// ErrBlobNotFound is returned by [BlobStore.Get] for unknown ids.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrNoRotation is returned by the journal when the user never started
	// a rotation on this device.
	ErrNoRotation = errors.New("no rotation recorded")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
