package models

import "time"

// User represents a vault owner. Only public derivation parameters and
// server-side verifiers are stored; the password, the unlock phrase and
// every key stay on the client.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id,omitempty"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// AuthHash is the client-derived login credential. The server stores
	// only its HMAC and never returns it.
	AuthHash string `json:"auth_hash,omitempty"`

	// MasterKeySalt is the public PBKDF2 salt of the owner master key.
	MasterKeySalt string `json:"master_key_salt,omitempty"`

	// EmergencyVerifier is the stored phrase verifier. Never exposed via JSON.
	EmergencyVerifier string `json:"-"`

	// EmergencyKeySalt is the public salt of the emergency key.
	EmergencyKeySalt string `json:"emergency_key_salt,omitempty"`

	// EncryptedEmergencyKey is the emergency key wrapped under the master
	// key, formatted as "<b64 ciphertext>:<b64 nonce>".
	EncryptedEmergencyKey string `json:"encrypted_emergency_key,omitempty"`

	// RotationLeaseUntil is set while a key rotation holds the user lease.
	RotationLeaseUntil *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasEmergencyAccess reports whether an unlock phrase was ever set up.
func (u User) HasEmergencyAccess() bool {
	return u.EmergencyVerifier != "" && u.EmergencyKeySalt != ""
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// AuthParams are the public derivation parameters a client needs before it
// can compute its login credential.
type AuthParams struct {
	Login         string `json:"login"`
	MasterKeySalt string `json:"master_key_salt"`
}
