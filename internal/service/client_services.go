package service

import (
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/adapter"
	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/store"
)

// ClientServices groups the CLI services. The owner services share Session;
// the emergency portal has its own adapter and PortalSession.
type ClientServices struct {
	AuthService         ClientAuthService
	FileService         ClientFileService
	RotationCoordinator RotationCoordinator
	EmergencyPortal     EmergencyPortal

	Session       *crypto.KeySession
	PortalSession *crypto.KeySession
}

func NewClientServices(storages *store.ClientStorages, cfg config.ClientConfig, logger *logger.Logger) (*ClientServices, error) {
	ownerAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating server adapter: %w", err)
	}
	portalAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating portal adapter: %w", err)
	}

	kdf := crypto.NewKeyDerivation()
	cipher := crypto.NewEnvelopeCipher()
	session := crypto.NewKeySession(cfg.App.SessionIdleTimeout)
	portalSession := crypto.NewKeySession(cfg.App.SessionIdleTimeout)

	return &ClientServices{
		AuthService:         NewClientAuthService(ownerAdapter, kdf, cipher, session, logger),
		FileService:         NewClientFileService(ownerAdapter, cipher, session, cfg.Workers.RotationPageSize, logger),
		RotationCoordinator: NewRotationCoordinator(ownerAdapter, storages.Journal, kdf, cipher, session, cfg.Workers.RotationPageSize, logger),
		EmergencyPortal:     NewEmergencyPortal(portalAdapter, kdf, cipher, portalSession, logger),
		Session:             session,
		PortalSession:       portalSession,
	}, nil
}

// Close destroys every key held by the client.
func (s *ClientServices) Close() {
	s.Session.Clear()
	s.PortalSession.Clear()
}
