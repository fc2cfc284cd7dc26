package service

import (
	"context"
	"fmt"
	"iter"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
)

type clientFileService struct {
	adapter adapter.ServerAdapter
	cipher  crypto.EnvelopeCipher
	session *crypto.KeySession
	ids     *utils.UUIDGenerator

	pageSize int
	logger   *logger.Logger
}

// NewClientFileService returns a ClientFileService using the owner keys of
// session. pageSize bounds each listing request made by All.
func NewClientFileService(serverAdapter adapter.ServerAdapter, cipher crypto.EnvelopeCipher, session *crypto.KeySession,
	pageSize int, logger *logger.Logger) ClientFileService {
	return &clientFileService{
		adapter:  serverAdapter,
		cipher:   cipher,
		session:  session,
		ids:      utils.NewUUIDGenerator(),
		pageSize: pageSize,
		logger:   logger,
	}
}

func (s *clientFileService) Upload(ctx context.Context, name string, plaintext []byte) (models.File, error) {
	master, err := s.session.MasterKey()
	if err != nil {
		return models.File{}, err
	}

	var emergency *crypto.Key
	if s.session.HasEmergencyKey() {
		if emergency, err = s.session.EmergencyKey(); err != nil {
			return models.File{}, err
		}
	}

	enc, err := s.cipher.EncryptFile(plaintext, master, emergency)
	if err != nil {
		return models.File{}, fmt.Errorf("encrypting file: %w", err)
	}

	saved, err := s.adapter.UploadFile(ctx, uploadFromEncrypted(s.ids.Generate(), name, enc))
	if err != nil {
		return models.File{}, fmt.Errorf("uploading file: %w", mapAdapterError(err))
	}

	s.logger.Info().Str("file_id", saved.FileID).Int64("size", saved.Size).Msg("file uploaded")
	return saved, nil
}

func (s *clientFileService) List(ctx context.Context, cursor string, limit int) (models.FilePage, error) {
	page, err := s.adapter.ListFiles(ctx, cursor, limit)
	if err != nil {
		return models.FilePage{}, fmt.Errorf("listing files: %w", mapAdapterError(err))
	}
	return page, nil
}

func (s *clientFileService) All(ctx context.Context) iter.Seq2[models.File, error] {
	return allFiles(ctx, s.adapter, s.pageSize)
}

func (s *clientFileService) Download(ctx context.Context, fileID string) (models.File, []byte, error) {
	master, err := s.session.MasterKey()
	if err != nil {
		return models.File{}, nil, err
	}

	file, body, err := fetchFile(ctx, s.adapter, fileID)
	if err != nil {
		return models.File{}, nil, err
	}

	wrapped, err := ownerWrap(file)
	if err != nil {
		return models.File{}, nil, err
	}
	enc, err := encryptedFromWire(file, body)
	if err != nil {
		return models.File{}, nil, err
	}

	plaintext, err := s.cipher.DecryptFile(enc, wrapped, master)
	if err != nil {
		return models.File{}, nil, err
	}

	return file, plaintext, nil
}

func (s *clientFileService) Delete(ctx context.Context, fileID string) error {
	if err := s.adapter.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("deleting file: %w", mapAdapterError(err))
	}
	return nil
}

func fetchFile(ctx context.Context, serverAdapter adapter.ServerAdapter, fileID string) (models.File, []byte, error) {
	file, err := serverAdapter.GetFile(ctx, fileID)
	if err != nil {
		return models.File{}, nil, fmt.Errorf("getting file: %w", mapAdapterError(err))
	}

	body, err := serverAdapter.DownloadBlob(ctx, fileID)
	if err != nil {
		return models.File{}, nil, fmt.Errorf("downloading file body: %w", mapAdapterError(err))
	}

	return file, body, nil
}

// allFiles pages through the listing. A listing error is yielded once and
// ends the sequence.
func allFiles(ctx context.Context, serverAdapter adapter.ServerAdapter, pageSize int) iter.Seq2[models.File, error] {
	return func(yield func(models.File, error) bool) {
		cursor := ""
		for {
			page, err := serverAdapter.ListFiles(ctx, cursor, pageSize)
			if err != nil {
				yield(models.File{}, fmt.Errorf("listing files: %w", mapAdapterError(err)))
				return
			}

			for _, file := range page.Files {
				if !yield(file, nil) {
					return
				}
			}

			if page.NextCursor == "" {
				return
			}
			cursor = page.NextCursor
		}
	}
}
