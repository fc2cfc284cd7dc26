package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions. Verifiers and
// auth hashes are never logged.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns it with UserID and
// timestamps filled in.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) -> [ErrLoginAlreadyExists].
//   - Any other driver-level error -> wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.AuthHash, user.MasterKeySalt)
	if err := row.Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("login", user.Login).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// FindUserByLogin returns the account with the given login or
// [ErrUserNotFound].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByLogin, login))
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error finding user")
		}
		return models.User{}, err
	}

	return user, nil
}

// GetUserByID returns the account with the given id or [ErrUserNotFound].
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, getUserByID, userID))
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*userRepository.GetUserByID").Int64("user_id", userID).Msg("error getting user")
		}
		return models.User{}, err
	}

	return user, nil
}

// UpdateEmergencyAccess commits the new verifier, emergency key salt and
// wrapped emergency key together. The user row is locked and the lease is
// checked inside the same transaction, so a commit can never interleave
// with another device's rotation.
func (r *userRepository) UpdateEmergencyAccess(ctx context.Context, access models.EmergencyAccess) error {
	log := logger.FromContext(ctx).With().Str("func", "*userRepository.UpdateEmergencyAccess").Int64("user_id", access.UserID).Logger()

	return r.db.withRetry(ctx, func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			log.Err(err).Msg("failed to begin transaction")
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}
		defer tx.Rollback()

		if err = checkLease(ctx, tx, access.UserID, access.LeaseID); err != nil {
			log.Warn().Err(err).Msg("emergency access commit refused")
			return err
		}

		if _, err = tx.ExecContext(ctx, updateEmergencyAccess,
			access.UserID, access.Verifier, access.EmergencyKeySalt, access.EncryptedEmergencyKey); err != nil {
			log.Err(err).Msg("failed to update emergency access")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if err = tx.Commit(); err != nil {
			log.Err(err).Msg("failed to commit emergency access")
			return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}

		log.Info().Msg("emergency access committed")
		return nil
	})
}

// UpgradeVerifier replaces the stored verifier with newVerifier if it still
// equals oldVerifier. It reports false when a concurrent commit changed it.
func (r *userRepository) UpgradeVerifier(ctx context.Context, userID int64, oldVerifier, newVerifier string) (bool, error) {
	res, err := r.db.ExecContext(ctx, upgradeVerifier, userID, oldVerifier, newVerifier)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.UpgradeVerifier").Int64("user_id", userID).Msg("failed to upgrade verifier")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

// TryAcquireRotationLease takes the user's rotation lease if it is free or
// expired, or renews it for the same lease id. It reports false when
// another holder owns an unexpired lease.
func (r *userRepository) TryAcquireRotationLease(ctx context.Context, lease models.RotationLease) (bool, error) {
	var acquired bool

	err := r.db.withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, acquireLease, lease.UserID, lease.LeaseID, lease.LeaseUntil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		acquired = affected == 1
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.TryAcquireRotationLease").Int64("user_id", lease.UserID).Msg("failed to acquire lease")
		return false, err
	}

	return acquired, nil
}

// ReleaseRotationLease drops the lease if leaseID still holds it.
func (r *userRepository) ReleaseRotationLease(ctx context.Context, userID int64, leaseID string) error {
	if _, err := r.db.ExecContext(ctx, releaseLease, userID, leaseID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.ReleaseRotationLease").Int64("user_id", userID).Msg("failed to release lease")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// SweepExpiredLeases clears every expired lease and returns how many were
// cleared.
func (r *userRepository) SweepExpiredLeases(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, sweepExpiredLeases)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

// checkLease locks the user row and returns [ErrLeaseNotHeld] unless
// leaseID holds an unexpired lease.
func checkLease(ctx context.Context, tx *sql.Tx, userID int64, leaseID string) error {
	var held sql.NullBool
	err := tx.QueryRowContext(ctx, lockLease, userID, leaseID).Scan(&held)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrUserNotFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case !held.Valid || !held.Bool:
		return ErrLeaseNotHeld
	}

	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user       models.User
		leaseUntil sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Login,
		&user.AuthHash,
		&user.MasterKeySalt,
		&user.EmergencyVerifier,
		&user.EmergencyKeySalt,
		&user.EncryptedEmergencyKey,
		&leaseUntil,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if leaseUntil.Valid {
		user.RotationLeaseUntil = &leaseUntil.Time
	}

	return user, nil
}
