// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's view of the LegacyShield server API.
//
// Every payload it sends is already encrypted or derived on the client; the
// adapter only moves base64 strings and opaque bodies. Non-2xx answers are
// returned as transport sentinels (ErrBadRequest, ErrConflict, ...) wrapped
// with the server's message so the service layer can map them.
package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/legacy-shield/models"
)

// ServerAdapter talks to the vault server on behalf of one session.
type ServerAdapter interface {
	// SetToken stores the bearer token used by authenticated calls.
	SetToken(token string)

	// Token returns the current bearer token, empty when logged out.
	Token() string

	// Register creates the account and stores the returned owner token.
	Register(ctx context.Context, user models.User) error

	// RequestParams fetches the public master key salt of login.
	RequestParams(ctx context.Context, login string) (models.AuthParams, error)

	// Login sends the auth hash and stores the returned owner token.
	Login(ctx context.Context, user models.User) error

	GetEmergencyAccess(ctx context.Context) (models.EmergencyAccess, error)
	SetEmergencyAccess(ctx context.Context, leaseID string, access models.EmergencyAccess) error
	AcquireRotationLease(ctx context.Context, leaseID string) (models.RotationLease, error)
	ReleaseRotationLease(ctx context.Context, leaseID string) error

	// Unlock exchanges login and phrase for a read-only grant. It does not
	// store the grant token; the caller decides which adapter carries it.
	Unlock(ctx context.Context, req models.UnlockRequest) (models.UnlockGrant, error)

	UploadFile(ctx context.Context, upload models.FileUpload) (models.File, error)
	ListFiles(ctx context.Context, cursor string, limit int) (models.FilePage, error)
	GetFile(ctx context.Context, fileID string) (models.File, error)
	DownloadBlob(ctx context.Context, fileID string) ([]byte, error)
	DeleteFile(ctx context.Context, fileID string) error
	UpdateEmergencyWrap(ctx context.Context, leaseID string, update models.EmergencyWrapUpdate) error

	GetServerVersion(ctx context.Context) (string, error)
}
