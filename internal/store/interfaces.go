package store

import (
	"context"

	"github.com/MKhiriev/legacy-shield/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts, emergency access material and the
// per-user rotation lease.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateEmergencyAccess replaces verifier, salt and wrapped emergency
	// key in one transaction. The caller must hold the rotation lease.
	UpdateEmergencyAccess(ctx context.Context, access models.EmergencyAccess) error
	// UpgradeVerifier swaps the stored verifier only if it still equals
	// oldVerifier.
	UpgradeVerifier(ctx context.Context, userID int64, oldVerifier, newVerifier string) (bool, error)

	TryAcquireRotationLease(ctx context.Context, lease models.RotationLease) (bool, error)
	ReleaseRotationLease(ctx context.Context, userID int64, leaseID string) error
	SweepExpiredLeases(ctx context.Context) (int64, error)
}

// FileRepository persists encrypted file metadata and wrapped keys.
type FileRepository interface {
	SaveFile(ctx context.Context, file models.File) (models.File, error)
	GetFile(ctx context.Context, userID int64, fileID string) (models.File, error)
	ListFiles(ctx context.Context, page models.PageRequest) ([]models.File, error)
	CountFiles(ctx context.Context, userID int64) (int, error)
	// UpdateEmergencyWrap replaces the emergency wrap of one file. The
	// owner wrap is never touched. The caller must hold the rotation lease.
	UpdateEmergencyWrap(ctx context.Context, update models.EmergencyWrapUpdate) error
	DeleteFile(ctx context.Context, userID int64, fileID string) error
}

// BlobStore keeps opaque ciphertext bodies keyed by file id.
type BlobStore interface {
	Put(ctx context.Context, id string, data []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

