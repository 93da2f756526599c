// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package main

import (
	"context"
	"fmt"

	"github.com/aleasistemi/botmanager/internal/adapter"
	"github.com/aleasistemi/botmanager/internal/config"
	myHTTP "github.com/aleasistemi/botmanager/internal/handler/http"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/server"
	"github.com/aleasistemi/botmanager/internal/service"
	"github.com/aleasistemi/botmanager/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("botmanager-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	botAdapter := adapter.NewHTTPBotServerAdapter(adapter.HTTPClientConfig{Timeout: cfg.Deploy.RequestTimeout})
	prober := adapter.NewGeminiProber()

	services := service.NewServices(storages, botAdapter, prober, cfg, log)

	services.SyncJob.Start(ctx, cfg.Workers.RetryInterval)
	defer services.SyncJob.Stop()

	handler := myHTTP.NewHandler(services, log)

	srv := server.NewServer(handler, cfg.Server, log)
	srv.RunServer()

	// drain in-flight background persists before the process exits
	services.AccountService.Flush()
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
