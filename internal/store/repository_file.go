package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// fileRepository is the PostgreSQL-backed implementation of
// [FileRepository] over the "files" table. Statements are built with
// squirrel; deleted rows keep their deleted_at timestamp and are invisible
// to every read.
type fileRepository struct {
	*DB
	logger *logger.Logger
}

// NewFileRepository constructs a [FileRepository].
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveFile inserts the metadata of a newly uploaded file.
func (r *fileRepository) SaveFile(ctx context.Context, file models.File) (models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert("files").
		Columns(
			"file_id", "user_id", "name", "size", "iv", "auth_tag",
			"owner_encrypted_key", "owner_iv", "emergency_encrypted_key", "emergency_iv",
		).
		Values(
			file.FileID, file.UserID, file.Name, file.Size, file.IV, file.AuthTag,
			file.OwnerEncryptedKey, file.OwnerIV, file.EmergencyEncryptedKey, file.EmergencyIV,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&file.CreatedAt, &file.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "fileRepository.SaveFile").
			Int64("user_id", file.UserID).
			Str("file_id", file.FileID).
			Msg("failed to save file")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.File{}, ErrFileAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.File{}, ErrUserNotFound
		default:
			return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return file, nil
}

// GetFile returns one live file of the user or [ErrFileNotFound].
func (r *fileRepository) GetFile(ctx context.Context, userID int64, fileID string) (models.File, error) {
	query, args, err := psql.Select(fileColumns...).
		From("files").
		Where(sq.Eq{"file_id": fileID}).
		Where(sq.Eq{"user_id": userID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	file, err := scanFile(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, ErrFileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "fileRepository.GetFile").
			Int64("user_id", userID).
			Str("file_id", fileID).
			Msg("failed to get file")
		return models.File{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return file, nil
}

// ListFiles returns up to page.Limit live files ordered by file id,
// starting after page.Cursor.
func (r *fileRepository) ListFiles(ctx context.Context, page models.PageRequest) ([]models.File, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select(fileColumns...).
		From("files").
		Where(sq.Eq{"user_id": page.UserID}).
		Where("deleted_at IS NULL")
	if page.Cursor != "" {
		builder = builder.Where(sq.Gt{"file_id": page.Cursor})
	}

	query, args, err := builder.OrderBy("file_id").Limit(uint64(page.Limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "fileRepository.ListFiles").
			Int64("user_id", page.UserID).
			Msg("failed to list files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make([]models.File, 0, page.Limit)
	for rows.Next() {
		file, scanErr := scanFile(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "fileRepository.ListFiles").
				Int64("user_id", page.UserID).
				Msg("failed to scan file row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// CountFiles returns the number of live files the user owns.
func (r *fileRepository) CountFiles(ctx context.Context, userID int64) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("files").
		Where(sq.Eq{"user_id": userID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// UpdateEmergencyWrap replaces the emergency wrap of one file under the
// user's rotation lease.
func (r *fileRepository) UpdateEmergencyWrap(ctx context.Context, update models.EmergencyWrapUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Update("files").
		Set("emergency_encrypted_key", update.EmergencyEncryptedKey).
		Set("emergency_iv", update.EmergencyIV).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"file_id": update.FileID}).
		Where(sq.Eq{"user_id": update.UserID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.DB.withRetry(ctx, func() error {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}
		defer tx.Rollback()

		if err = checkLease(ctx, tx, update.UserID, update.LeaseID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "fileRepository.UpdateEmergencyWrap").
				Str("file_id", update.FileID).
				Msg("failed to update emergency wrap")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected == 0 {
			return ErrFileNotFound
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}

		return nil
	})
}

// DeleteFile marks a file deleted. Its blob is removed by the caller.
func (r *fileRepository) DeleteFile(ctx context.Context, userID int64, fileID string) error {
	query, args, err := psql.Update("files").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"file_id": fileID}).
		Where(sq.Eq{"user_id": userID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "fileRepository.DeleteFile").
			Str("file_id", fileID).
			Msg("failed to delete file")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (models.File, error) {
	var (
		file         models.File
		emergencyKey sql.NullString
		emergencyIV  sql.NullString
	)

	err := row.Scan(
		&file.FileID,
		&file.UserID,
		&file.Name,
		&file.Size,
		&file.IV,
		&file.AuthTag,
		&file.OwnerEncryptedKey,
		&file.OwnerIV,
		&emergencyKey,
		&emergencyIV,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return models.File{}, err
	}

	if emergencyKey.Valid && emergencyIV.Valid {
		file.EmergencyEncryptedKey = &emergencyKey.String
		file.EmergencyIV = &emergencyIV.String
	}

	return file, nil
}
