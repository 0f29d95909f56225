package main

import (
	"fmt"
	"os"

	"github.com/averin/budgetwatch/internal/adapter"
	"github.com/averin/budgetwatch/internal/config"
	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/notify"
	"github.com/averin/budgetwatch/internal/service"
	"github.com/averin/budgetwatch/internal/store"
	"github.com/averin/budgetwatch/internal/watcher"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("budgetwatch")
	if os.Getenv("BUDGETWATCH_FILE_LOG") != "" {
		// headless runs (launch agents, services) capture no stdout
		log = logger.NewFileLogger("budgetwatch")
	}

	cfg, err := config.GetWatcherConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	kv, err := store.NewBadgerStore(cfg.Storage.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open durable store")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Error().Err(err).Msg("close durable store")
		}
	}()

	api := adapter.NewHTTPBudgetAdapter(adapter.HTTPClientConfig{
		APIBaseURL:   cfg.Adapter.APIBaseURL,
		AuthBaseURL:  cfg.Adapter.AuthBaseURL,
		ClientID:     cfg.App.ClientID,
		ClientSecret: cfg.App.ClientSecret,
		Timeout:      cfg.Adapter.RequestTimeout,
	})

	services := service.NewServices(
		kv,
		api,
		notify.NewLogNotifier(log.GetChildLogger()),
		notify.NewLogIndicator(log.GetChildLogger()),
		*cfg,
		log,
	)

	app, err := watcher.NewApp(services, kv, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init watcher app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("watcher run error")
	}
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
