package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/legacy-shield/internal/client"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/awnumar/memguard"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

// run keeps deferred cleanup ahead of os.Exit. A first interrupt cancels
// the command so a rotation can record its progress; the key buffers are
// purged on every exit path.
func run() int {
	defer memguard.Purge()

	log := logger.NewClientLogger("legacyshield-client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app := client.NewApp(buildInfo, log)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}
