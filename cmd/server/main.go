package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/handler"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/server"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/internal/workers"
	"github.com/MKhiriev/legacy-shield/models"
	"golang.org/x/sync/errgroup"
)

// healthCheckInterval is how often the gRPC health status re-checks the
// database.
const healthCheckInterval = 15 * time.Second

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("legacyshield-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.RunServer(gCtx)
	})
	g.Go(func() error {
		workers.NewWorkers(services, cfg.Workers, log).Run(gCtx)
		return nil
	})
	if handlers.GRPC != nil {
		g.Go(func() error {
			handlers.GRPC.Watch(gCtx, healthCheckInterval)
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}

	log.Info().Msg("server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
