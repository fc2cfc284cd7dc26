package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/internal/validators"
	"github.com/MKhiriev/legacy-shield/models"
)

const fakeSaltContext = "params:"

// authService is the concrete implementation of AuthService.
// It handles owner registration, auth hash verification and JWT issuance
// using a UserRepository for persistence and HMAC-SHA256 for auth hashes.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator

	// hashKey is the HMAC secret applied to client auth hashes before storage
	// or comparison. It also keys the fake salts of unknown logins.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration is the lifetime of owner credentials.
	tokenDuration time.Duration

	// emergencyTokenDuration is the lifetime of read-only credentials.
	emergencyTokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:         userRepository,
		validator:              validator,
		hashKey:                cfg.PasswordHashKey,
		tokenSignKey:           cfg.TokenSignKey,
		tokenIssuer:            cfg.TokenIssuer,
		tokenDuration:          cfg.TokenDuration,
		emergencyTokenDuration: cfg.EmergencyTokenDuration,
		logger:                 logger,
	}
}

// RegisterUser creates a new owner account.
//
// Login, AuthHash and a 256-bit MasterKeySalt are required. The auth hash is
// stored as its HMAC under the configured key.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if validation fails.
//   - a wrapped store.ErrLoginAlreadyExists if the login is taken.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Err(err).Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user.AuthHash = utils.HashString(user.AuthHash, a.hashKey)
	user.EmergencyVerifier = ""
	user.EmergencyKeySalt = ""
	user.EncryptedEmergencyKey = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", registeredUser.UserID).Msg("user registered")
	return registeredUser, nil
}

// Params returns the master key salt of login. An unknown login gets a
// deterministic salt derived from the hash key, indistinguishable from a
// real one.
func (a *authService) Params(ctx context.Context, login string) (models.AuthParams, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.User{Login: login}, validators.FieldLogin); err != nil {
		return models.AuthParams{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, login)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return models.AuthParams{Login: login, MasterKeySalt: a.fakeSalt(login)}, nil
	case err != nil:
		log.Err(err).Msg("user search by login failed")
		return models.AuthParams{}, fmt.Errorf("user search by login failed: %w", err)
	}

	return models.AuthParams{Login: foundUser.Login, MasterKeySalt: foundUser.MasterKeySalt}, nil
}

// Login authenticates an owner by auth hash.
//
// Returns the user record or:
//   - ErrInvalidDataProvided if Login or AuthHash is empty.
//   - ErrWrongPassword if the login is unknown or the hash does not match.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user, validators.FieldLogin, validators.FieldAuthHash); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		log.Info().Str("login", user.Login).Msg("login for unknown user")
		return models.User{}, ErrWrongPassword
	case err != nil:
		log.Err(err).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !utils.EqualHashes(utils.HashString(user.AuthHash, a.hashKey), foundUser.AuthHash) {
		log.Info().Int64("user_id", foundUser.UserID).Msg("wrong auth hash")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for user with the given scope. Emergency
// credentials use the shorter emergency lifetime.
func (a *authService) CreateToken(ctx context.Context, user models.User, scope models.TokenScope) (models.Token, error) {
	duration := a.tokenDuration
	if scope == models.ScopeEmergency {
		duration = a.emergencyTokenDuration
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, scope, duration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Every validation failure is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) fakeSalt(login string) string {
	return utils.HashBase64(fakeSaltContext+login, a.hashKey)
}
