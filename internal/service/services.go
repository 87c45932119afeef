package service

import (
	"fmt"

	"github.com/MKhiriev/go-home-inventory/internal/adapter"
	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/crypto"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/store"
)

type Services struct {
	TokenService     TokenService
	IdentityResolver IdentityResolver
	AccountService   AccountService
	ItemService      ItemService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, blobStore adapter.BlobStore, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	tokenService, err := NewTokenService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	accountService := NewAccountService(storages.AccountRepository, crypto.NewPasswordHasher(), logger)

	return &Services{
		TokenService:     tokenService,
		IdentityResolver: NewIdentityResolver(tokenService, accountService, logger),
		AccountService:   accountService,
		ItemService:      NewItemService(storages.ItemRepository, blobStore, cfg.Storage.Files, logger),
		AppInfoService:   appInfoService,
	}, nil
}
