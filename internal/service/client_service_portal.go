package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/models"
)

type emergencyPortal struct {
	adapter adapter.ServerAdapter
	kdf     crypto.KeyDerivation
	cipher  crypto.EnvelopeCipher
	session *crypto.KeySession

	logger *logger.Logger
}

// NewEmergencyPortal returns an EmergencyPortal. serverAdapter and session
// must not be shared with the owner's services: the portal installs its own
// read-only credential and emergency key into them.
func NewEmergencyPortal(serverAdapter adapter.ServerAdapter, kdf crypto.KeyDerivation, cipher crypto.EnvelopeCipher,
	session *crypto.KeySession, logger *logger.Logger) EmergencyPortal {
	return &emergencyPortal{adapter: serverAdapter, kdf: kdf, cipher: cipher, session: session, logger: logger}
}

func (p *emergencyPortal) Unlock(ctx context.Context, login, phrase string) (models.UnlockGrant, error) {
	if login == "" || phrase == "" {
		return models.UnlockGrant{}, ErrInvalidDataProvided
	}

	grant, err := p.adapter.Unlock(ctx, models.UnlockRequest{Login: login, Phrase: phrase})
	if err != nil {
		return models.UnlockGrant{}, mapAdapterError(err)
	}

	emergency, err := p.kdf.DeriveKey(phrase, grant.EmergencyKeySalt, false)
	if err != nil {
		p.adapter.SetToken("")
		return models.UnlockGrant{}, fmt.Errorf("deriving emergency key: %w", err)
	}

	p.adapter.SetToken(grant.Token)
	p.session.SetEmergencyKey(emergency)

	p.logger.Info().Str("login", login).Time("expires_at", grant.ExpiresAt).Msg("emergency vault unlocked")
	return grant, nil
}

func (p *emergencyPortal) List(ctx context.Context, cursor string, limit int) (models.FilePage, error) {
	if p.adapter.Token() == "" {
		return models.FilePage{}, ErrNotUnlocked
	}

	page, err := p.adapter.ListFiles(ctx, cursor, limit)
	if err != nil {
		return models.FilePage{}, fmt.Errorf("listing files: %w", mapAdapterError(err))
	}
	return page, nil
}

func (p *emergencyPortal) Download(ctx context.Context, fileID string) (models.File, []byte, error) {
	emergency, err := p.session.EmergencyKey()
	if err != nil {
		return models.File{}, nil, fmt.Errorf("%w: %w", ErrNotUnlocked, err)
	}

	file, body, err := fetchFile(ctx, p.adapter, fileID)
	if err != nil {
		return models.File{}, nil, err
	}

	wrapped, err := emergencyWrap(file)
	if err != nil {
		return models.File{}, nil, err
	}
	enc, err := encryptedFromWire(file, body)
	if err != nil {
		return models.File{}, nil, err
	}

	plaintext, err := p.cipher.DecryptFile(enc, wrapped, emergency)
	if err != nil {
		return models.File{}, nil, err
	}

	return file, plaintext, nil
}

func (p *emergencyPortal) Close() {
	p.session.Clear()
	p.adapter.SetToken("")
}
