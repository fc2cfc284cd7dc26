// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// File is the metadata of one encrypted file. The body lives in the blob
// store as opaque ciphertext; every binary field here is standard base64.
type File struct {
	// FileID is the client-visible UUID of the file.
	FileID string `json:"file_id"`

	// UserID is the owner of the file.
	UserID int64 `json:"user_id,omitempty"`

	// Name is the display name supplied by the owner.
	Name string `json:"name"`

	// Size is the ciphertext size in bytes, equal to the plaintext size.
	Size int64 `json:"size"`

	// IV is the file body nonce.
	IV string `json:"iv"`

	// AuthTag is the detached AES-GCM tag of the body.
	AuthTag string `json:"authTag"`

	// OwnerEncryptedKey and OwnerIV hold the content key wrapped under the
	// master key. Never modified by rotation.
	OwnerEncryptedKey string `json:"ownerEncryptedKey"`
	OwnerIV           string `json:"ownerIV"`

	// EmergencyEncryptedKey and EmergencyIV hold the content key wrapped
	// under the emergency key, if any.
	EmergencyEncryptedKey *string `json:"emergencyEncryptedKey"`
	EmergencyIV           *string `json:"emergencyIV"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasEmergencyWrap reports whether the file can be opened with the
// emergency key.
func (f File) HasEmergencyWrap() bool {
	return f.EmergencyEncryptedKey != nil && *f.EmergencyEncryptedKey != "" &&
		f.EmergencyIV != nil && *f.EmergencyIV != ""
}

// TableName returns the name of the database table
// associated with the File model.
func (f File) TableName() string {
	return "files"
}

// FileUpload is the upload request: metadata plus the base64 ciphertext.
type FileUpload struct {
	File

	// Body is the base64 ciphertext. Its decoded length must equal Size.
	Body string `json:"body"`
}

// FilePage is one page of a cursor-paginated file listing.
type FilePage struct {
	Files []File `json:"files"`

	// NextCursor is the FileID to pass as cursor for the next page. Empty
	// on the last page.
	NextCursor string `json:"next_cursor,omitempty"`

	// Total is the number of live files the user owns.
	Total int `json:"total"`
}

// PageRequest selects a page of files ordered by FileID.
type PageRequest struct {
	UserID int64
	Cursor string
	Limit  int
}

// EmergencyWrapUpdate replaces the emergency wrap of one file.
type EmergencyWrapUpdate struct {
	FileID                string `json:"-"`
	UserID                int64  `json:"-"`
	LeaseID               string `json:"-"`
	EmergencyEncryptedKey string `json:"emergencyEncryptedKey"`
	EmergencyIV           string `json:"emergencyIV"`
}
