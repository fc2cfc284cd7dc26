package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/internal/validators"
	"github.com/MKhiriev/legacy-shield/models"
)

// DefaultPageLimit is the page size used when a listing asks for none.
const DefaultPageLimit = 100

type fileService struct {
	fileRepository store.FileRepository
	blobs          store.BlobStore
	validator      validators.Validator

	logger *logger.Logger
}

// NewFileService returns a FileService keeping metadata in fileRepository
// and ciphertext bodies in blobs.
func NewFileService(fileRepository store.FileRepository, blobs store.BlobStore, validator validators.Validator, logger *logger.Logger) FileService {
	return &fileService{
		fileRepository: fileRepository,
		blobs:          blobs,
		validator:      validator,
		logger:         logger,
	}
}

// Upload validates the envelope metadata, records it and stores the body.
// The metadata row is written first so an id collision can never overwrite
// another file's body; a failed body write removes the row again.
func (s *fileService) Upload(ctx context.Context, upload models.FileUpload) (models.File, error) {
	log := logger.FromContext(ctx).With().Str("func", "*fileService.Upload").Int64("user_id", upload.UserID).Str("file_id", upload.FileID).Logger()

	if err := s.validator.Validate(ctx, upload); err != nil {
		log.Warn().Err(err).Msg("upload rejected")
		return models.File{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	body, err := base64.StdEncoding.DecodeString(upload.Body)
	if err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	saved, err := s.fileRepository.SaveFile(ctx, upload.File)
	if err != nil {
		log.Err(err).Msg("saving file metadata failed")
		return models.File{}, fmt.Errorf("saving file metadata failed: %w", err)
	}

	if err = s.blobs.Put(ctx, saved.FileID, body); err != nil {
		log.Err(err).Msg("storing file body failed")
		if delErr := s.fileRepository.DeleteFile(context.WithoutCancel(ctx), saved.UserID, saved.FileID); delErr != nil {
			log.Err(delErr).Msg("removing orphan metadata failed")
		}
		return models.File{}, fmt.Errorf("storing file body failed: %w", err)
	}

	log.Info().Int64("size", saved.Size).Bool("emergency_wrap", saved.HasEmergencyWrap()).Msg("file uploaded")
	return saved, nil
}

// List returns one page of the user's files ordered by id, with the total
// count and the cursor of the next page.
func (s *fileService) List(ctx context.Context, page models.PageRequest) (models.FilePage, error) {
	if err := s.validator.Validate(ctx, page); err != nil {
		return models.FilePage{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if page.Limit == 0 {
		page.Limit = DefaultPageLimit
	}

	limit := page.Limit
	page.Limit++
	files, err := s.fileRepository.ListFiles(ctx, page)
	if err != nil {
		return models.FilePage{}, fmt.Errorf("listing files failed: %w", err)
	}

	total, err := s.fileRepository.CountFiles(ctx, page.UserID)
	if err != nil {
		return models.FilePage{}, fmt.Errorf("counting files failed: %w", err)
	}

	result := models.FilePage{Files: files, Total: total}
	if len(files) > limit {
		result.Files = files[:limit]
		result.NextCursor = result.Files[limit-1].FileID
	}
	if result.Files == nil {
		result.Files = []models.File{}
	}

	return result, nil
}

// Get returns the metadata of one file of the user.
func (s *fileService) Get(ctx context.Context, userID int64, fileID string) (models.File, error) {
	if !utils.IsUUID(fileID) {
		return models.File{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidFileID)
	}

	file, err := s.fileRepository.GetFile(ctx, userID, fileID)
	if err != nil {
		return models.File{}, fmt.Errorf("getting file failed: %w", err)
	}

	return file, nil
}

// Blob returns the ciphertext body of one file of the user. Ownership is
// checked against the metadata before the body is read.
func (s *fileService) Blob(ctx context.Context, userID int64, fileID string) ([]byte, error) {
	file, err := s.Get(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	body, err := s.blobs.Get(ctx, file.FileID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("file_id", fileID).Msg("reading file body failed")
		return nil, fmt.Errorf("reading file body failed: %w", err)
	}

	return body, nil
}

// Delete hides the file and removes its body. A body that cannot be removed
// is logged and left behind.
func (s *fileService) Delete(ctx context.Context, userID int64, fileID string) error {
	if !utils.IsUUID(fileID) {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidFileID)
	}

	if err := s.fileRepository.DeleteFile(ctx, userID, fileID); err != nil {
		return fmt.Errorf("deleting file failed: %w", err)
	}

	if err := s.blobs.Delete(ctx, fileID); err != nil {
		logger.FromContext(ctx).Err(err).Str("file_id", fileID).Msg("removing file body failed")
	}

	return nil
}

// UpdateEmergencyWrap replaces one file's emergency wrap under the caller's
// rotation lease.
func (s *fileService) UpdateEmergencyWrap(ctx context.Context, update models.EmergencyWrapUpdate) error {
	if err := s.validator.Validate(ctx, update); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.fileRepository.UpdateEmergencyWrap(ctx, update); err != nil {
		return fmt.Errorf("updating emergency wrap failed: %w", err)
	}

	return nil
}
