package watcher

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/averin/budgetwatch/internal/config"
	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/service"
	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/internal/workers"
)

type App struct {
	services *service.Services
	syncJob  *workers.SyncJob
	workers  *workers.Workers
	log      *logger.Logger
}

func NewApp(services *service.Services, kv store.KeyValue, cfg config.WatcherWorkers, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, fmt.Errorf("nil services")
	}

	syncJob := workers.NewSyncJob(services.Cycle, kv, cfg.SyncInterval, log.GetChildLogger())

	return &App{
		services: services,
		syncJob:  syncJob,
		workers:  workers.NewWorkers(syncJob),
		log:      log,
	}, nil
}

// Run starts the background workers and blocks until the process
// receives an interrupt or termination signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	a.workers.Run()
	defer a.syncJob.Stop()

	a.log.Info().Msg("watcher started")
	<-ctx.Done()
	a.log.Info().Msg("shutdown signal received")

	return nil
}
