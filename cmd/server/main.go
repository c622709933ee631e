package main

import (
	"context"
	"fmt"

	"github.com/freelancy/marketplace-api/internal/config"
	httphandler "github.com/freelancy/marketplace-api/internal/handler/http"
	"github.com/freelancy/marketplace-api/internal/identity"
	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/server"
	"github.com/freelancy/marketplace-api/internal/service"
	"github.com/freelancy/marketplace-api/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("marketplace-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	account, err := identity.ParseServiceKey(cfg.Identity.ServiceKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing identity service key")
	}
	verifier := identity.NewCertVerifier(account, cfg.Identity.CertsURL, log)

	storages, cleanup, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer cleanup()

	services := service.NewServices(storages, log)
	handler := httphandler.NewHandler(services, verifier, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
