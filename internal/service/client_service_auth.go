package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/utils"
	"github.com/MKhiriev/legacy-shield/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter
	kdf     crypto.KeyDerivation
	cipher  crypto.EnvelopeCipher
	session *crypto.KeySession

	logger *logger.Logger
}

// NewClientAuthService returns a ClientAuthService that installs derived
// keys into session.
func NewClientAuthService(serverAdapter adapter.ServerAdapter, kdf crypto.KeyDerivation, cipher crypto.EnvelopeCipher,
	session *crypto.KeySession, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, kdf: kdf, cipher: cipher, session: session, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return ErrInvalidDataProvided
	}

	salt, err := a.kdf.GenerateSalt()
	if err != nil {
		return fmt.Errorf("error generating salt: %w", err)
	}

	authHash, err := a.kdf.DeriveAuthHash(password, salt)
	if err != nil {
		return fmt.Errorf("error deriving auth hash: %w", err)
	}

	user := models.User{Login: login, AuthHash: authHash, MasterKeySalt: salt}
	if err = a.adapter.Register(ctx, user); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	master, err := a.kdf.DeriveKey(password, salt, false)
	if err != nil {
		return fmt.Errorf("error deriving master key: %w", err)
	}
	a.session.SetMasterKey(master)

	a.logger.Info().Str("login", login).Msg("registered")
	return nil
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return ErrInvalidDataProvided
	}

	params, err := a.adapter.RequestParams(ctx, login)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	authHash, err := a.kdf.DeriveAuthHash(password, params.MasterKeySalt)
	if err != nil {
		return fmt.Errorf("error deriving auth hash: %w", err)
	}

	if err = a.adapter.Login(ctx, models.User{Login: login, AuthHash: authHash}); err != nil {
		return fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	master, err := a.kdf.DeriveKey(password, params.MasterKeySalt, false)
	if err != nil {
		a.Logout()
		return fmt.Errorf("error deriving master key: %w", err)
	}
	a.session.SetMasterKey(master)

	if err = a.loadEmergencyKey(ctx, master); err != nil {
		a.Logout()
		return err
	}

	a.logger.Info().Str("login", login).Bool("emergency_key", a.session.HasEmergencyKey()).Msg("logged in")
	return nil
}

// loadEmergencyKey unwraps the stored emergency key record with the master
// key. An account without emergency access is not an error.
func (a *clientAuthService) loadEmergencyKey(ctx context.Context, master *crypto.Key) error {
	access, err := a.adapter.GetEmergencyAccess(ctx)
	if err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrEmergencyNotConfigured) {
			return nil
		}
		return fmt.Errorf("fetching emergency access: %w", mapped)
	}

	emergency, err := a.cipher.UnwrapKey(access.EncryptedEmergencyKey, master, true)
	if err != nil {
		return fmt.Errorf("unwrapping emergency key: %w", err)
	}
	a.session.SetEmergencyKey(emergency)

	return nil
}

func (a *clientAuthService) Logout() {
	a.session.Clear()
	a.adapter.SetToken("")
}

func (a *clientAuthService) UserID() (int64, error) {
	return tokenUserID(a.adapter)
}

// tokenUserID reads the subject of the adapter's token without verifying
// it; the server verifies every request.
func tokenUserID(serverAdapter adapter.ServerAdapter) (int64, error) {
	token := serverAdapter.Token()
	if token == "" {
		return 0, ErrNotLoggedIn
	}

	userID, _, err := utils.ParseUnverifiedClaims(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}

	return userID, nil
}
