package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aleasistemi/botmanager/internal/adapter"
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/models"
)

// deployService pushes an account's bot configuration to its deployed bot
// process. Unlike account mutations, a deploy is synchronous: the caller
// waits for the push and gets the real outcome, because a config push that
// silently fails leaves the deployed bot running stale instructions.
type deployService struct {
	accounts AccountService
	adapter  adapter.BotServerAdapter
	prober   adapter.ConfigProber
	logger   *logger.Logger
}

// NewDeployService constructs a DeployService pushing through the given
// adapter and probing configurations with the given prober.
func NewDeployService(accounts AccountService, botAdapter adapter.BotServerAdapter, prober adapter.ConfigProber, logger *logger.Logger) DeployService {
	return &deployService{
		accounts: accounts,
		adapter:  botAdapter,
		prober:   prober,
		logger:   logger,
	}
}

// Deploy pushes the account's current configuration to the bot process at
// serverURL.
//
// Returns ErrAccountNotFound for an unknown account, ErrInvalidDataProvided
// for an empty server URL, or the adapter's push error unchanged so callers
// can distinguish transport failures from rejections.
func (d *deployService) Deploy(ctx context.Context, tenantKey, accountID, serverURL string) error {
	log := logger.FromContext(ctx)

	serverURL = strings.TrimSpace(serverURL)
	if serverURL == "" {
		return ErrInvalidDataProvided
	}

	account, ok := d.accounts.Account(ctx, tenantKey, accountID)
	if !ok {
		return ErrAccountNotFound
	}

	if err := d.adapter.PushConfig(ctx, serverURL, account.Config); err != nil {
		log.Err(err).Str("account_id", accountID).Str("server_url", serverURL).Msg("config push failed")
		return fmt.Errorf("config push for account %s: %w", accountID, err)
	}

	log.Info().Str("account_id", accountID).Str("server_url", serverURL).Msg("config pushed")

	return nil
}

// CheckConfig probes whether the configuration is usable against the AI
// provider. The prober's sentinel errors pass through unchanged.
func (d *deployService) CheckConfig(ctx context.Context, cfg models.BotConfig) error {
	return d.prober.CheckConfig(ctx, cfg)
}
