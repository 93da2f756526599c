package service

import (
	"github.com/aleasistemi/botmanager/internal/adapter"
	"github.com/aleasistemi/botmanager/internal/config"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/store"
)

type Services struct {
	SessionService SessionService
	AccountService AccountService
	DeployService  DeployService
	SyncJob        SyncJob
}

func NewServices(storages *store.Storages, botAdapter adapter.BotServerAdapter, prober adapter.ConfigProber, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	accountService := NewAccountService(storages.Accounts, cfg.Accounts, logger)

	return &Services{
		SessionService: NewSessionService(storages.Users, storages.Sessions, cfg.Auth, logger),
		AccountService: accountService,
		DeployService:  NewDeployService(accountService, botAdapter, prober, logger),
		SyncJob:        NewSyncJob(accountService, logger),
	}
}
