package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
)

// ClientStorages groups the CLI's local storage.
type ClientStorages struct {
	// Journal records rotation progress per file.
	Journal RotationJournal

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite file at
// cfg.DB.DSN, migrates it and wires the journal.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateJournal(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Journal: NewRotationJournal(db, logger),
		db:      db,
	}, nil
}

// Close releases the SQLite connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
