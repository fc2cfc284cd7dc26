package models

import "time"

// RotationStatus is the per-file state recorded in the client journal.
type RotationStatus string

const (
	RotationPending RotationStatus = "pending"
	RotationDone    RotationStatus = "done"
	RotationFailed  RotationStatus = "failed"
)

// JournalRotation is one rotation registered in the client journal.
type JournalRotation struct {
	RotationID string
	// KeySalt is the salt of the emergency key the rotation rewraps to.
	// Journal rows are trusted only while it matches the committed salt.
	KeySalt string
}

// JournalEntry is one file's row in the client rotation journal.
type JournalEntry struct {
	RotationID string
	FileID     string
	Status     RotationStatus
	Error      string
	UpdatedAt  time.Time
}

// RotationProgress is reported after each file of a rotation.
type RotationProgress struct {
	// Done counts files processed so far, successful or not.
	Done int
	// Total is the number of files the rotation covers.
	Total int
	// FileID is the file just processed.
	FileID string
	// Err is the file's failure, nil on success.
	Err error
}
