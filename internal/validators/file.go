package validators

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
)

// Field name constants restrict validation to a subset of fields.
const (
	// FieldFileID targets the client-generated file UUID.
	FieldFileID = "file_id"

	// FieldUserID targets the owner identifier.
	FieldUserID = "user_id"

	// FieldName targets the display name.
	FieldName = "name"

	// FieldSize targets the declared ciphertext size.
	FieldSize = "size"

	// FieldIV targets the body nonce.
	FieldIV = "iv"

	// FieldAuthTag targets the detached GCM tag.
	FieldAuthTag = "auth_tag"

	// FieldOwnerWrap targets the owner wrapped key and its nonce.
	FieldOwnerWrap = "owner_wrap"

	// FieldEmergencyWrap targets the optional emergency wrap. Both halves
	// must be present or both absent.
	FieldEmergencyWrap = "emergency_wrap"

	// FieldRequiredEmergencyWrap is FieldEmergencyWrap with presence
	// enforced, used by rewrap updates.
	FieldRequiredEmergencyWrap = "required_emergency_wrap"

	// FieldBody targets the base64 ciphertext of an upload.
	FieldBody = "body"

	// FieldLogin targets the account login.
	FieldLogin = "login"

	// FieldAuthHash targets the client-derived login credential.
	FieldAuthHash = "auth_hash"

	// FieldMasterKeySalt targets the public master key salt.
	FieldMasterKeySalt = "master_key_salt"

	// FieldVerifier targets the emergency phrase verifier.
	FieldVerifier = "verifier"

	// FieldEmergencyKeySalt targets the public emergency key salt.
	FieldEmergencyKeySalt = "emergency_key_salt"

	// FieldEncryptedEmergencyKey targets the emergency key record wrapped
	// under the master key.
	FieldEncryptedEmergencyKey = "encrypted_emergency_key"

	// FieldLeaseID targets the rotation lease a write is made under.
	FieldLeaseID = "lease_id"

	// FieldCursor targets the pagination cursor.
	FieldCursor = "cursor"

	// FieldLimit targets the page size.
	FieldLimit = "limit"
)

const (
	// MaxNameLength is the longest accepted display name, in runes.
	MaxNameLength = 255

	// MaxPageLimit is the largest page a listing may request.
	MaxPageLimit = 1000

	wrappedKeySize = crypto.KeySize + crypto.TagSize
)

// EnvelopeValidator validates every request model that carries envelope
// material: uploads, emergency wrap updates, emergency access commits,
// registrations and page requests. Value and pointer forms are accepted.
type EnvelopeValidator struct {
}

// NewEnvelopeValidator returns an [EnvelopeValidator] as a [Validator].
func NewEnvelopeValidator() Validator {
	return &EnvelopeValidator{}
}

// Validate dispatches on the dynamic type of obj. Without fields a default
// set per type is checked. Returns the first failure, ErrUnsupportedType for
// unknown models and ErrUnknownField for a field the type does not carry.
func (v *EnvelopeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FileUpload:
		return v.validateUpload(ctx, value, fields...)
	case *models.FileUpload:
		return v.validateUpload(ctx, *value, fields...)

	case models.File:
		return v.validateFile(ctx, value, fields...)
	case *models.File:
		return v.validateFile(ctx, *value, fields...)

	case models.EmergencyWrapUpdate:
		return v.validateWrapUpdate(ctx, value, fields...)
	case *models.EmergencyWrapUpdate:
		return v.validateWrapUpdate(ctx, *value, fields...)

	case models.EmergencyAccess:
		return v.validateEmergencyAccess(ctx, value, fields...)
	case *models.EmergencyAccess:
		return v.validateEmergencyAccess(ctx, *value, fields...)

	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.PageRequest:
		return v.validatePage(ctx, value, fields...)
	case *models.PageRequest:
		return v.validatePage(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateFile checks file metadata.
//
// Default fields: FileID, UserID, Name, Size, IV, AuthTag, OwnerWrap,
// EmergencyWrap.
func (v *EnvelopeValidator) validateFile(_ context.Context, file models.File, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFileID, FieldUserID, FieldName, FieldSize, FieldIV, FieldAuthTag, FieldOwnerWrap, FieldEmergencyWrap}
	}

	for _, f := range fields {
		switch f {
		case FieldFileID:
			if !utils.IsUUID(file.FileID) {
				return ErrInvalidFileID
			}
		case FieldUserID:
			if file.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldName:
			if !validName(file.Name) {
				return ErrInvalidName
			}
		case FieldSize:
			if file.Size < 0 {
				return ErrInvalidSize
			}
		case FieldIV:
			if !hasDecodedLen(file.IV, crypto.NonceSize) {
				return ErrInvalidIV
			}
		case FieldAuthTag:
			if !hasDecodedLen(file.AuthTag, crypto.TagSize) {
				return ErrInvalidAuthTag
			}
		case FieldOwnerWrap:
			if !validWrap(file.OwnerEncryptedKey, file.OwnerIV) {
				return ErrInvalidOwnerWrap
			}
		case FieldEmergencyWrap:
			if err := validateOptionalWrap(file.EmergencyEncryptedKey, file.EmergencyIV); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUpload checks the metadata of an upload and that the body decodes
// to exactly Size bytes.
func (v *EnvelopeValidator) validateUpload(ctx context.Context, upload models.FileUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFileID, FieldUserID, FieldName, FieldSize, FieldIV, FieldAuthTag, FieldOwnerWrap, FieldEmergencyWrap, FieldBody}
	}

	fileFields := make([]string, 0, len(fields))
	checkBody := false
	for _, f := range fields {
		if f == FieldBody {
			checkBody = true
			continue
		}
		fileFields = append(fileFields, f)
	}

	if len(fileFields) > 0 {
		if err := v.validateFile(ctx, upload.File, fileFields...); err != nil {
			return err
		}
	}

	if checkBody {
		body, err := base64.StdEncoding.DecodeString(upload.Body)
		if err != nil || int64(len(body)) != upload.Size {
			return ErrBodySizeMismatch
		}
	}

	return nil
}

// validateWrapUpdate checks a rewrap of one file's emergency key.
//
// Default fields: FileID, UserID, LeaseID, RequiredEmergencyWrap.
func (v *EnvelopeValidator) validateWrapUpdate(_ context.Context, update models.EmergencyWrapUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFileID, FieldUserID, FieldLeaseID, FieldRequiredEmergencyWrap}
	}

	for _, f := range fields {
		switch f {
		case FieldFileID:
			if !utils.IsUUID(update.FileID) {
				return ErrInvalidFileID
			}
		case FieldUserID:
			if update.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldLeaseID:
			if update.LeaseID == "" {
				return ErrMissingLease
			}
		case FieldRequiredEmergencyWrap:
			if !validWrap(update.EmergencyEncryptedKey, update.EmergencyIV) {
				return ErrInvalidEmergencyWrap
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateEmergencyAccess checks an emergency access commit. The verifier
// must already be a current-parameter scrypt record: clients never send the
// legacy forms.
//
// Default fields: UserID, LeaseID, Verifier, EmergencyKeySalt,
// EncryptedEmergencyKey.
func (v *EnvelopeValidator) validateEmergencyAccess(_ context.Context, access models.EmergencyAccess, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldLeaseID, FieldVerifier, FieldEmergencyKeySalt, FieldEncryptedEmergencyKey}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if access.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldLeaseID:
			if access.LeaseID == "" {
				return ErrMissingLease
			}
		case FieldVerifier:
			parsed, ok := crypto.ParseVerifier(access.Verifier).(crypto.ScryptVerifier)
			if !ok || parsed.NeedsUpgrade() {
				return ErrInvalidVerifier
			}
		case FieldEmergencyKeySalt:
			if !hasDecodedLen(access.EmergencyKeySalt, crypto.SaltSize) {
				return ErrInvalidSalt
			}
		case FieldEncryptedEmergencyKey:
			record, err := crypto.ParseKeyRecord(access.EncryptedEmergencyKey)
			if err != nil || len(record.Ciphertext) != wrappedKeySize || len(record.Nonce) != crypto.NonceSize {
				return ErrInvalidKeyRecord
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUser checks registration and login input.
//
// Default fields: Login, AuthHash, MasterKeySalt.
func (v *EnvelopeValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldAuthHash, FieldMasterKeySalt}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if strings.TrimSpace(user.Login) == "" || !utf8.ValidString(user.Login) {
				return ErrInvalidLogin
			}
		case FieldAuthHash:
			if user.AuthHash == "" {
				return ErrInvalidAuthHash
			}
		case FieldMasterKeySalt:
			if !hasDecodedLen(user.MasterKeySalt, crypto.SaltSize) {
				return ErrInvalidSalt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePage checks a listing request. An empty cursor starts from the
// first file; a zero limit means the server default.
//
// Default fields: UserID, Cursor, Limit.
func (v *EnvelopeValidator) validatePage(_ context.Context, page models.PageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldCursor, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if page.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldCursor:
			if page.Cursor != "" && !utils.IsUUID(page.Cursor) {
				return ErrInvalidCursor
			}
		case FieldLimit:
			if page.Limit < 0 || page.Limit > MaxPageLimit {
				return ErrInvalidLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validName(name string) bool {
	if strings.TrimSpace(name) == "" || !utf8.ValidString(name) {
		return false
	}
	return utf8.RuneCountInString(name) <= MaxNameLength
}

func validWrap(key, iv string) bool {
	return hasDecodedLen(key, wrappedKeySize) && hasDecodedLen(iv, crypto.NonceSize)
}

func validateOptionalWrap(key, iv *string) error {
	hasKey := key != nil && *key != ""
	hasIV := iv != nil && *iv != ""

	switch {
	case !hasKey && !hasIV:
		return nil
	case hasKey && hasIV && validWrap(*key, *iv):
		return nil
	default:
		return ErrInvalidEmergencyWrap
	}
}

func hasDecodedLen(s string, n int) bool {
	raw, err := base64.StdEncoding.DecodeString(s)
	return err == nil && len(raw) == n
}
