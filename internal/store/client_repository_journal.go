package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/models"
)

// rotationJournal is the SQLite implementation of [RotationJournal].
type rotationJournal struct {
	*DB
	logger *logger.Logger
}

// NewRotationJournal constructs a [RotationJournal] over a migrated SQLite
// database.
func NewRotationJournal(db *DB, logger *logger.Logger) RotationJournal {
	return &rotationJournal{DB: db, logger: logger}
}

// StartRotation registers a new rotation for the user. Registering the same
// id twice is a no-op.
func (j *rotationJournal) StartRotation(ctx context.Context, rotation models.JournalRotation, userID int64) error {
	if _, err := j.DB.ExecContext(ctx, startRotation, rotation.RotationID, userID, rotation.KeySalt); err != nil {
		j.logger.Err(err).Str("func", "rotationJournal.StartRotation").Str("rotation_id", rotation.RotationID).Msg("failed to start rotation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// LatestRotation returns the user's most recent rotation or [ErrNoRotation].
func (j *rotationJournal) LatestRotation(ctx context.Context, userID int64) (models.JournalRotation, error) {
	var rotation models.JournalRotation
	err := j.DB.QueryRowContext(ctx, latestRotation, userID).Scan(&rotation.RotationID, &rotation.KeySalt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalRotation{}, ErrNoRotation
	}
	if err != nil {
		return models.JournalRotation{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return rotation, nil
}

// Record upserts the status of one file.
func (j *rotationJournal) Record(ctx context.Context, entry models.JournalEntry) error {
	if _, err := j.DB.ExecContext(ctx, recordJournalEntry, entry.RotationID, entry.FileID, string(entry.Status), entry.Error); err != nil {
		j.logger.Err(err).
			Str("func", "rotationJournal.Record").
			Str("rotation_id", entry.RotationID).
			Str("file_id", entry.FileID).
			Msg("failed to record journal entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Entries returns every recorded file of a rotation ordered by file id.
func (j *rotationJournal) Entries(ctx context.Context, rotationID string) ([]models.JournalEntry, error) {
	rows, err := j.DB.QueryContext(ctx, getJournalEntries, rotationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, 16)
	for rows.Next() {
		var (
			entry  models.JournalEntry
			status string
		)
		if err = rows.Scan(&entry.RotationID, &entry.FileID, &status, &entry.Error, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entry.Status = models.RotationStatus(status)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// Unfinished returns the ids of files not yet marked done.
func (j *rotationJournal) Unfinished(ctx context.Context, rotationID string) ([]string, error) {
	rows, err := j.DB.QueryContext(ctx, getUnfinishedEntries, rotationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}
