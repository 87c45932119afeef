package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-home-inventory/internal/adapter"
	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/handler"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/server"
	"github.com/MKhiriev/go-home-inventory/internal/service"
	"github.com/MKhiriev/go-home-inventory/internal/store"
	"github.com/MKhiriev/go-home-inventory/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := newBuildInfo()
	printBuildInfo(buildInfo)

	log := logger.NewLogger("inventory-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}
	if cfg.App.UsesDefaultSignKey() {
		log.Warn().Msg("token sign key is the built-in placeholder, set APP_TOKEN_SIGN_KEY in production")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Bool("s3", cfg.Storage.S3.Enabled()).
		Bool("supabase", cfg.Storage.Supabase.Enabled()).
		Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	blobStore, err := adapter.NewBlobStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store")
	}

	services, err := service.NewServices(store.NewStorages(db, log), blobStore, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func newBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
