package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/google/uuid"
)

// ErrInvalidBlobID is returned for ids that are not UUIDs, which keeps
// callers from escaping the blob directory.
var ErrInvalidBlobID = errors.New("invalid blob id")

// FileBlobStore keeps ciphertext bodies as files named <id>.blob in one
// directory. Writes go to a temp file first and are renamed into place.
type FileBlobStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStore creates dir when missing.
func NewFileBlobStore(dir string, logger *logger.Logger) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("creating file blob store")
	return &FileBlobStore{dir: dir, logger: logger}, nil
}

// Put writes data under id, replacing any previous body.
func (f *FileBlobStore) Put(ctx context.Context, id string, data []byte) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing blob: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing blob: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing blob: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "FileBlobStore.Put").Str("file_id", id).Msg("failed to store blob")
		return fmt.Errorf("error storing blob: %w", err)
	}

	return nil
}

// Get returns the body stored under id or [ErrBlobNotFound].
func (f *FileBlobStore) Get(ctx context.Context, id string) ([]byte, error) {
	path, err := f.path(id)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}

	return b, err
}

// Delete removes the body stored under id. Unknown ids are not an error.
func (f *FileBlobStore) Delete(_ context.Context, id string) error {
	path, err := f.path(id)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

func (f *FileBlobStore) path(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidBlobID
	}

	return filepath.Join(f.dir, parsed.String()+".blob"), nil
}
