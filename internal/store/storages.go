package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
)

// Storages groups the server's repositories and blob store.
type Storages struct {
	UserRepository UserRepository
	FileRepository FileRepository
	BlobStore      BlobStore

	db *DB
}

// NewStorages connects to Postgres, applies migrations and creates the
// blob directory.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := NewFileBlobStore(cfg.Files.BinaryDataDir, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		FileRepository: NewFileRepository(db, logger),
		BlobStore:      blobs,
		db:             db,
	}, nil
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
