package service

import (
	"github.com/averin/budgetwatch/internal/adapter"
	"github.com/averin/budgetwatch/internal/config"
	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/notify"
	"github.com/averin/budgetwatch/internal/store"
)

type Services struct {
	Tokens    TokenService
	Resources ResourceService
	Settings  SettingsService
	Cycle     CycleService
}

func NewServices(
	kv store.KeyValue,
	api adapter.BudgetAPI,
	notifier notify.Notifier,
	indicator notify.Indicator,
	cfg config.WatcherConfig,
	log *logger.Logger,
) *Services {
	tokens := NewTokenCoordinator(kv, api, cfg.App.RenewalWindow, log.GetChildLogger())
	resources := NewResourceService(kv, api, cfg.Cache.BudgetListTTL, cfg.Cache.ResourceTTL, log.GetChildLogger())
	settings := NewSettingsService(kv)

	return &Services{
		Tokens:    tokens,
		Resources: resources,
		Settings:  settings,
		Cycle:     NewSyncCycle(kv, tokens, resources, settings, notifier, indicator, cfg.Workers.SyncInterval, log.GetChildLogger()),
	}
}
