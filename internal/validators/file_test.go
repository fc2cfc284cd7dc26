// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testFileID = "0192f0c4-5b7e-7c3a-8e1d-2f4a6b8c9d0e"

func b64(n int) string { return base64.StdEncoding.EncodeToString(make([]byte, n)) }

func strPtr(s string) *string { return &s }

func validFile() models.File {
	return models.File{
		FileID:            testFileID,
		UserID:            1,
		Name:              "will.pdf",
		Size:              4,
		IV:                b64(crypto.NonceSize),
		AuthTag:           b64(crypto.TagSize),
		OwnerEncryptedKey: b64(wrappedKeySize),
		OwnerIV:           b64(crypto.NonceSize),
	}
}

func validUpload() models.FileUpload {
	return models.FileUpload{File: validFile(), Body: base64.StdEncoding.EncodeToString([]byte("abcd"))}
}

func currentVerifier() string {
	return crypto.ScryptVerifier{
		N: crypto.ScryptN, R: crypto.ScryptR, P: crypto.ScryptP,
		Salt: make([]byte, crypto.SaltSize),
		Key:  make([]byte, crypto.ScryptKeyLen),
	}.String()
}

func validAccess() models.EmergencyAccess {
	return models.EmergencyAccess{
		UserID:           1,
		LeaseID:          "lease-1",
		Verifier:         currentVerifier(),
		EmergencyKeySalt: b64(crypto.SaltSize),
		EncryptedEmergencyKey: crypto.EncodeKeyRecord(crypto.WrappedKey{
			Ciphertext: make([]byte, wrappedKeySize),
			Nonce:      make([]byte, crypto.NonceSize),
		}),
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewEnvelopeValidator()
	ctx := context.Background()

	upload := validUpload()
	file := validFile()
	access := validAccess()
	page := models.PageRequest{UserID: 1}
	user := models.User{Login: "alice", AuthHash: "hash", MasterKeySalt: b64(crypto.SaltSize)}
	update := models.EmergencyWrapUpdate{
		FileID: testFileID, UserID: 1, LeaseID: "lease-1",
		EmergencyEncryptedKey: b64(wrappedKeySize), EmergencyIV: b64(crypto.NonceSize),
	}

	tests := []struct {
		name string
		obj  any
	}{
		{"upload value", upload},
		{"upload pointer", &upload},
		{"file value", file},
		{"file pointer", &file},
		{"access value", access},
		{"access pointer", &access},
		{"page value", page},
		{"page pointer", &page},
		{"user value", user},
		{"user pointer", &user},
		{"update value", update},
		{"update pointer", &update},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(ctx, tt.obj))
		})
	}

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// TestValidate_File
// ---------------------------------------------------------------------------

func TestValidate_File(t *testing.T) {
	v := NewEnvelopeValidator()

	tests := []struct {
		name    string
		mutate  func(f *models.File)
		wantErr error
	}{
		{"bad id", func(f *models.File) { f.FileID = "nope" }, ErrInvalidFileID},
		{"zero user", func(f *models.File) { f.UserID = 0 }, ErrInvalidUserID},
		{"blank name", func(f *models.File) { f.Name = "  " }, ErrInvalidName},
		{"long name", func(f *models.File) { f.Name = strings.Repeat("a", MaxNameLength+1) }, ErrInvalidName},
		{"negative size", func(f *models.File) { f.Size = -1 }, ErrInvalidSize},
		{"short iv", func(f *models.File) { f.IV = b64(8) }, ErrInvalidIV},
		{"iv not base64", func(f *models.File) { f.IV = "!!!" }, ErrInvalidIV},
		{"short tag", func(f *models.File) { f.AuthTag = b64(12) }, ErrInvalidAuthTag},
		{"owner key wrong size", func(f *models.File) { f.OwnerEncryptedKey = b64(32) }, ErrInvalidOwnerWrap},
		{"owner iv missing", func(f *models.File) { f.OwnerIV = "" }, ErrInvalidOwnerWrap},
		{"emergency key without iv", func(f *models.File) {
			f.EmergencyEncryptedKey = strPtr(b64(wrappedKeySize))
		}, ErrInvalidEmergencyWrap},
		{"emergency iv without key", func(f *models.File) {
			f.EmergencyIV = strPtr(b64(crypto.NonceSize))
		}, ErrInvalidEmergencyWrap},
		{"emergency wrong size", func(f *models.File) {
			f.EmergencyEncryptedKey = strPtr(b64(10))
			f.EmergencyIV = strPtr(b64(crypto.NonceSize))
		}, ErrInvalidEmergencyWrap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.mutate(&f)
			assert.ErrorIs(t, v.Validate(context.Background(), f), tt.wantErr)
		})
	}

	t.Run("both emergency halves", func(t *testing.T) {
		f := validFile()
		f.EmergencyEncryptedKey = strPtr(b64(wrappedKeySize))
		f.EmergencyIV = strPtr(b64(crypto.NonceSize))
		assert.NoError(t, v.Validate(context.Background(), f))
	})

	t.Run("empty emergency halves count as absent", func(t *testing.T) {
		f := validFile()
		f.EmergencyEncryptedKey = strPtr("")
		f.EmergencyIV = strPtr("")
		assert.NoError(t, v.Validate(context.Background(), f))
	})

	t.Run("field scoping", func(t *testing.T) {
		f := validFile()
		f.Name = ""
		assert.NoError(t, v.Validate(context.Background(), f, FieldFileID, FieldIV))
	})

	t.Run("unknown field", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(context.Background(), validFile(), "nope"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// TestValidate_Upload
// ---------------------------------------------------------------------------

func TestValidate_Upload(t *testing.T) {
	v := NewEnvelopeValidator()

	t.Run("size mismatch", func(t *testing.T) {
		u := validUpload()
		u.Size = 5
		assert.ErrorIs(t, v.Validate(context.Background(), u), ErrBodySizeMismatch)
	})

	t.Run("body not base64", func(t *testing.T) {
		u := validUpload()
		u.Body = "%%%"
		assert.ErrorIs(t, v.Validate(context.Background(), u), ErrBodySizeMismatch)
	})

	t.Run("empty body with zero size", func(t *testing.T) {
		u := validUpload()
		u.Size = 0
		u.Body = ""
		assert.NoError(t, v.Validate(context.Background(), u))
	})

	t.Run("metadata checked before body", func(t *testing.T) {
		u := validUpload()
		u.FileID = ""
		u.Body = "%%%"
		assert.ErrorIs(t, v.Validate(context.Background(), u), ErrInvalidFileID)
	})

	t.Run("body only", func(t *testing.T) {
		u := validUpload()
		u.FileID = ""
		assert.NoError(t, v.Validate(context.Background(), u, FieldBody))
	})
}

// ---------------------------------------------------------------------------
// TestValidate_EmergencyAccess
// ---------------------------------------------------------------------------

func TestValidate_EmergencyAccess(t *testing.T) {
	v := NewEnvelopeValidator()

	weak := crypto.ScryptVerifier{
		N: 1 << 10, R: crypto.ScryptR, P: crypto.ScryptP,
		Salt: make([]byte, crypto.SaltSize), Key: make([]byte, crypto.ScryptKeyLen),
	}.String()

	tests := []struct {
		name    string
		mutate  func(a *models.EmergencyAccess)
		wantErr error
	}{
		{"no lease", func(a *models.EmergencyAccess) { a.LeaseID = "" }, ErrMissingLease},
		{"no user", func(a *models.EmergencyAccess) { a.UserID = 0 }, ErrInvalidUserID},
		{"legacy digest verifier", func(a *models.EmergencyAccess) { a.Verifier = "c2hhMjU2" }, ErrInvalidVerifier},
		{"weak scrypt verifier", func(a *models.EmergencyAccess) { a.Verifier = weak }, ErrInvalidVerifier},
		{"short salt", func(a *models.EmergencyAccess) { a.EmergencyKeySalt = b64(16) }, ErrInvalidSalt},
		{"malformed record", func(a *models.EmergencyAccess) { a.EncryptedEmergencyKey = "abc" }, ErrInvalidKeyRecord},
		{"record wrong size", func(a *models.EmergencyAccess) {
			a.EncryptedEmergencyKey = b64(10) + ":" + b64(crypto.NonceSize)
		}, ErrInvalidKeyRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAccess()
			tt.mutate(&a)
			assert.ErrorIs(t, v.Validate(context.Background(), a), tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_WrapUpdate
// ---------------------------------------------------------------------------

func TestValidate_WrapUpdate(t *testing.T) {
	v := NewEnvelopeValidator()

	update := models.EmergencyWrapUpdate{FileID: testFileID, UserID: 1, LeaseID: "l"}
	err := v.Validate(context.Background(), update)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEmergencyWrap)

	update.LeaseID = ""
	assert.ErrorIs(t, v.Validate(context.Background(), update), ErrMissingLease)
}

// ---------------------------------------------------------------------------
// TestValidate_UserAndPage
// ---------------------------------------------------------------------------

func TestValidate_UserAndPage(t *testing.T) {
	v := NewEnvelopeValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.User{AuthHash: "h", MasterKeySalt: b64(32)}), ErrInvalidLogin)
	assert.ErrorIs(t, v.Validate(ctx, models.User{Login: "a", MasterKeySalt: b64(32)}), ErrInvalidAuthHash)
	assert.ErrorIs(t, v.Validate(ctx, models.User{Login: "a", AuthHash: "h"}), ErrInvalidSalt)
	assert.NoError(t, v.Validate(ctx, models.User{Login: "a", AuthHash: "h"}, FieldLogin, FieldAuthHash))

	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{UserID: 1, Cursor: "x"}), ErrInvalidCursor)
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{UserID: 1, Limit: MaxPageLimit + 1}), ErrInvalidLimit)
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{UserID: 1, Limit: -1}), ErrInvalidLimit)
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{}), ErrInvalidUserID)
	assert.NoError(t, v.Validate(ctx, models.PageRequest{UserID: 1, Cursor: testFileID, Limit: 10}))
}
