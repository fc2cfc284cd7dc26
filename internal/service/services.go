package service

import (
	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/internal/validators"
	"github.com/MKhiriev/legacy-shield/models"
)

type Services struct {
	AuthService      AuthService
	FileService      FileService
	EmergencyService EmergencyService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewEnvelopeValidator()

	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(storages.UserRepository, validator, cfg.App, logger)

	return &Services{
		AuthService:      authService,
		FileService:      NewFileService(storages.FileRepository, storages.BlobStore, validator, logger),
		EmergencyService: NewEmergencyService(storages.UserRepository, authService, crypto.NewKeyDerivation(), validator, cfg.Security, cfg.Workers, logger),
		AppInfoService:   appInfo,
	}, nil
}
