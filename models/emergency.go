package models

import "time"

// EmergencyAccess is the per-user emergency material committed in one
// atomic update when the unlock phrase is created or changed.
type EmergencyAccess struct {
	UserID int64 `json:"-"`

	// LeaseID is the rotation lease the commit is made under.
	LeaseID string `json:"-"`

	// Verifier is the scrypt verifier of the new phrase.
	Verifier string `json:"verifier,omitempty"`

	// EmergencyKeySalt is the salt the emergency key is derived with.
	EmergencyKeySalt string `json:"emergencyKeySalt"`

	// EncryptedEmergencyKey is the new emergency key wrapped under the
	// master key ("<b64 ciphertext>:<b64 nonce>").
	EncryptedEmergencyKey string `json:"encryptedEmergencyKey"`
}

// UnlockRequest is the emergency portal login.
type UnlockRequest struct {
	Login  string `json:"login"`
	Phrase string `json:"phrase"`
}

// UnlockGrant is returned on a successful unlock: a read-only credential
// and the salt needed to re-derive the emergency key client-side.
type UnlockGrant struct {
	Token            string    `json:"token"`
	ExpiresAt        time.Time `json:"expiresAt"`
	EmergencyKeySalt string    `json:"emergencyKeySalt"`
}

// RotationLease is the per-user rotation lock held on the server.
type RotationLease struct {
	UserID     int64     `json:"-"`
	LeaseID    string    `json:"leaseId"`
	LeaseUntil time.Time `json:"leaseUntil"`
}
