package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/legacy-shield/models"
)

// AuthService registers owners, authenticates them and issues scoped
// credentials. The server only ever sees the client-derived auth hash.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Params returns the public master key salt for login. Unknown logins
	// get a stable fake salt so the answer does not reveal account existence.
	Params(ctx context.Context, login string) (models.AuthParams, error)

	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User, scope models.TokenScope) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// FileService stores encrypted file metadata and bodies. It never sees a
// plaintext or an unwrapped key.
type FileService interface {
	Upload(ctx context.Context, upload models.FileUpload) (models.File, error)
	List(ctx context.Context, page models.PageRequest) (models.FilePage, error)
	Get(ctx context.Context, userID int64, fileID string) (models.File, error)
	Blob(ctx context.Context, userID int64, fileID string) ([]byte, error)
	Delete(ctx context.Context, userID int64, fileID string) error

	// UpdateEmergencyWrap replaces the emergency wrap of one file. The owner
	// wrap is never touched. Requires the caller to hold the rotation lease.
	UpdateEmergencyWrap(ctx context.Context, update models.EmergencyWrapUpdate) error
}

// EmergencyService manages the unlock phrase material and serves the
// emergency portal.
type EmergencyService interface {
	// SetEmergencyAccess commits verifier, salt and wrapped emergency key in
	// one update under the caller's rotation lease.
	SetEmergencyAccess(ctx context.Context, access models.EmergencyAccess) error

	// GetEmergencyAccess returns the salt and wrapped emergency key of the
	// owner. The verifier is never returned.
	GetEmergencyAccess(ctx context.Context, userID int64) (models.EmergencyAccess, error)

	// Unlock verifies the phrase for login and returns a read-only grant.
	// Every failure is crypto.ErrVerificationFailed.
	Unlock(ctx context.Context, req models.UnlockRequest) (models.UnlockGrant, error)

	AcquireRotationLease(ctx context.Context, userID int64, leaseID string) (models.RotationLease, error)
	ReleaseRotationLease(ctx context.Context, userID int64, leaseID string) error
	SweepExpiredLeases(ctx context.Context) (int64, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
