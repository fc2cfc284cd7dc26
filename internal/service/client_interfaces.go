package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"
	"iter"

	"github.com/MKhiriev/legacy-shield/models"
)

// ClientAuthService defines the client-side contract for registration and
// login. Every derivation happens locally; the server receives only the
// auth hash and the public salt.
type ClientAuthService interface {
	// Register generates a master key salt, derives the auth hash, creates
	// the account and leaves the session logged in.
	Register(ctx context.Context, login, password string) error

	// Login fetches the salt, authenticates, installs the master key in the
	// session and, when emergency access is configured, the unwrapped
	// emergency key as well.
	Login(ctx context.Context, login, password string) error

	// Logout destroys every session key and forgets the token.
	Logout()

	// UserID returns the id of the logged-in owner.
	UserID() (int64, error)
}

// ClientFileService encrypts files before upload and decrypts them after
// download with the owner wrap.
type ClientFileService interface {
	// Upload encrypts plaintext under a fresh content key wrapped for the
	// owner and, when the session has one, the emergency key.
	Upload(ctx context.Context, name string, plaintext []byte) (models.File, error)

	// List returns one page of file metadata.
	List(ctx context.Context, cursor string, limit int) (models.FilePage, error)

	// All pages through every file of the owner.
	All(ctx context.Context) iter.Seq2[models.File, error]

	// Download fetches and decrypts one file. Any authentication failure is
	// crypto.ErrDecryptionFailed and no plaintext is returned.
	Download(ctx context.Context, fileID string) (models.File, []byte, error)

	Delete(ctx context.Context, fileID string) error
}

// RotationCoordinator re-wraps every file's content key under a new
// emergency key. Nothing happens until the returned sequence is ranged
// over; the returned function reports the final error afterwards: nil,
// a *RotationPartialFailure, an ErrRotationInterrupted chain, or the error
// that stopped the rotation before any file was touched.
type RotationCoordinator interface {
	// Rotate sets phrase as the new unlock phrase and rewraps every file.
	Rotate(ctx context.Context, phrase string) (iter.Seq[models.RotationProgress], func() error)

	// Retry reruns the per-file step for exactly fileIDs under the current
	// emergency key. Empty fileIDs retries every file the journal did not
	// mark done.
	Retry(ctx context.Context, fileIDs []string) (iter.Seq[models.RotationProgress], func() error)

	// Resume reruns the per-file step for every file the journal has not
	// marked done for the latest rotation.
	Resume(ctx context.Context) (iter.Seq[models.RotationProgress], func() error)
}

// EmergencyPortal is the emergency contact's read-only view of a vault.
type EmergencyPortal interface {
	// Unlock exchanges login and phrase for a read-only credential and
	// derives the emergency key locally.
	Unlock(ctx context.Context, login, phrase string) (models.UnlockGrant, error)

	List(ctx context.Context, cursor string, limit int) (models.FilePage, error)

	// Download decrypts one file with its emergency wrap. Files without one
	// report ErrNoEmergencyWrap.
	Download(ctx context.Context, fileID string) (models.File, []byte, error)

	// Close destroys the emergency key and forgets the credential.
	Close()
}
