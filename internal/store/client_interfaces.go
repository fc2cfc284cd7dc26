package store

import (
	"context"

	"github.com/MKhiriev/legacy-shield/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// RotationJournal records per-file rotation progress on the client so an
// interrupted rotation can be resumed.
type RotationJournal interface {
	StartRotation(ctx context.Context, rotation models.JournalRotation, userID int64) error
	LatestRotation(ctx context.Context, userID int64) (models.JournalRotation, error)
	Record(ctx context.Context, entry models.JournalEntry) error
	Entries(ctx context.Context, rotationID string) ([]models.JournalEntry, error)
	Unfinished(ctx context.Context, rotationID string) ([]string, error)
}
