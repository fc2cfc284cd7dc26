package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/internal/validators"
	"github.com/MKhiriev/legacy-shield/models"
	"golang.org/x/sync/semaphore"
)

// emergencyService verifies unlock phrases on a bounded pool so that a burst
// of unlock attempts cannot run more memory-hard derivations at once than
// the pool allows.
type emergencyService struct {
	userRepository store.UserRepository
	authService    AuthService
	kdf            crypto.KeyDerivation
	validator      validators.Validator

	pool     *semaphore.Weighted
	leaseTTL time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewEmergencyService returns an EmergencyService. security.KDFConcurrency
// bounds concurrent verifications; workers.RotationLeaseTTL is the lifetime
// of a rotation lease.
func NewEmergencyService(userRepository store.UserRepository, authService AuthService, kdf crypto.KeyDerivation,
	validator validators.Validator, security config.Security, workers config.Workers, logger *logger.Logger) EmergencyService {
	concurrency := int64(security.KDFConcurrency)
	if concurrency < 1 {
		concurrency = 1
	}

	return &emergencyService{
		userRepository: userRepository,
		authService:    authService,
		kdf:            kdf,
		validator:      validator,
		pool:           semaphore.NewWeighted(concurrency),
		leaseTTL:       workers.RotationLeaseTTL,
		now:            time.Now,
		logger:         logger,
	}
}

// SetEmergencyAccess validates and commits new emergency material. The
// verifier must be a current scrypt record.
func (s *emergencyService) SetEmergencyAccess(ctx context.Context, access models.EmergencyAccess) error {
	log := logger.FromContext(ctx).With().Str("func", "*emergencyService.SetEmergencyAccess").Int64("user_id", access.UserID).Logger()

	if err := s.validator.Validate(ctx, access); err != nil {
		log.Warn().Err(err).Msg("emergency access rejected")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.userRepository.UpdateEmergencyAccess(ctx, access); err != nil {
		return fmt.Errorf("committing emergency access failed: %w", err)
	}

	return nil
}

// GetEmergencyAccess returns the wrapped emergency key and its salt.
func (s *emergencyService) GetEmergencyAccess(ctx context.Context, userID int64) (models.EmergencyAccess, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.EmergencyAccess{}, fmt.Errorf("getting user failed: %w", err)
	}
	if !user.HasEmergencyAccess() {
		return models.EmergencyAccess{}, ErrEmergencyNotConfigured
	}

	return models.EmergencyAccess{
		UserID:                user.UserID,
		EmergencyKeySalt:      user.EmergencyKeySalt,
		EncryptedEmergencyKey: user.EncryptedEmergencyKey,
	}, nil
}

// Unlock checks phrase against the stored verifier of login.
//
// An unknown login, or an account without emergency access, is verified
// against a decoy at full cost and fails exactly like a wrong phrase. A
// successful match on a legacy or weak verifier replaces it with a current
// scrypt record; a failed upgrade is logged and does not fail the unlock.
func (s *emergencyService) Unlock(ctx context.Context, req models.UnlockRequest) (models.UnlockGrant, error) {
	log := logger.FromContext(ctx).With().Str("func", "*emergencyService.Unlock").Logger()

	if req.Login == "" || req.Phrase == "" {
		return models.UnlockGrant{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByLogin(ctx, req.Login)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Msg("user search by login failed")
		return models.UnlockGrant{}, fmt.Errorf("user search by login failed: %w", err)
	}

	known := err == nil && user.HasEmergencyAccess()
	verifier := crypto.DecoyVerifier()
	if known {
		verifier = crypto.ParseVerifier(user.EmergencyVerifier)
	}

	if err = s.pool.Acquire(ctx, 1); err != nil {
		return models.UnlockGrant{}, err
	}
	matched := crypto.VerifyAtCurrentCost(verifier, req.Phrase)
	if known && matched && verifier.NeedsUpgrade() {
		s.upgradeVerifier(ctx, user, req.Phrase)
	}
	s.pool.Release(1)

	if !known || !matched {
		log.Info().Msg("unlock attempt failed")
		return models.UnlockGrant{}, crypto.ErrVerificationFailed
	}

	token, err := s.authService.CreateToken(ctx, user, models.ScopeEmergency)
	if err != nil {
		return models.UnlockGrant{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("emergency vault unlocked")
	grant := models.UnlockGrant{
		Token:            token.SignedString,
		EmergencyKeySalt: user.EmergencyKeySalt,
	}
	if token.ExpiresAt != nil {
		grant.ExpiresAt = token.ExpiresAt.Time
	}

	return grant, nil
}

// upgradeVerifier runs inside the pool slot of the unlock that matched.
func (s *emergencyService) upgradeVerifier(ctx context.Context, user models.User, phrase string) {
	log := logger.FromContext(ctx).With().Int64("user_id", user.UserID).Logger()

	upgraded, err := s.kdf.DeriveVerifier(phrase)
	if err != nil {
		log.Err(err).Msg("deriving upgraded verifier failed")
		return
	}

	ok, err := s.userRepository.UpgradeVerifier(context.WithoutCancel(ctx), user.UserID, user.EmergencyVerifier, upgraded)
	switch {
	case err != nil:
		log.Err(err).Msg("storing upgraded verifier failed")
	case !ok:
		log.Info().Msg("verifier changed concurrently, upgrade skipped")
	default:
		log.Info().Msg("verifier upgraded to scrypt")
	}
}

// AcquireRotationLease takes or renews the user's rotation lease for
// leaseID. Returns ErrRotationInProgress while another lease is live.
func (s *emergencyService) AcquireRotationLease(ctx context.Context, userID int64, leaseID string) (models.RotationLease, error) {
	if !utils.IsUUID(leaseID) {
		return models.RotationLease{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrMissingLease)
	}

	lease := models.RotationLease{
		UserID:     userID,
		LeaseID:    leaseID,
		LeaseUntil: s.now().Add(s.leaseTTL).UTC(),
	}

	acquired, err := s.userRepository.TryAcquireRotationLease(ctx, lease)
	if err != nil {
		return models.RotationLease{}, fmt.Errorf("acquiring rotation lease failed: %w", err)
	}
	if !acquired {
		return models.RotationLease{}, ErrRotationInProgress
	}

	logger.FromContext(ctx).Debug().Int64("user_id", userID).Time("lease_until", lease.LeaseUntil).Msg("rotation lease held")
	return lease, nil
}

// ReleaseRotationLease drops the lease if leaseID still holds it.
func (s *emergencyService) ReleaseRotationLease(ctx context.Context, userID int64, leaseID string) error {
	if leaseID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrMissingLease)
	}

	return s.userRepository.ReleaseRotationLease(ctx, userID, leaseID)
}

// SweepExpiredLeases clears every expired lease.
func (s *emergencyService) SweepExpiredLeases(ctx context.Context) (int64, error) {
	return s.userRepository.SweepExpiredLeases(ctx)
}
