package config

import (
	"fmt"
	"time"
)

// Default durations applied when the merged configuration leaves them
// unset. The renewal window must comfortably exceed the time one sync
// cycle needs, so a cycle never starts with a token about to expire.
const (
	DefaultRenewalWindow  = 5 * time.Minute
	DefaultRequestTimeout = 15 * time.Second
	DefaultSyncInterval   = 15 * time.Minute
	DefaultBudgetListTTL  = 14 * 24 * time.Hour
	DefaultResourceTTL    = 5 * time.Minute
)

// WatcherApp holds credential settings for the watcher runtime.
type WatcherApp struct {
	// ClientID identifies this application to the credential endpoint.
	ClientID string
	// ClientSecret is the secret paired with ClientID.
	ClientSecret string
	// RenewalWindow is the proactive token refresh lead time.
	RenewalWindow time.Duration
}

// WatcherAdapter holds network settings used by the transport layer.
type WatcherAdapter struct {
	// APIBaseURL is the budgeting API base URL.
	APIBaseURL string
	// AuthBaseURL is the credential endpoint base URL.
	AuthBaseURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// WatcherDB contains durable store location settings.
type WatcherDB struct {
	// Path is the badger database directory.
	Path string
}

// WatcherStorage groups storage backend settings.
type WatcherStorage struct {
	DB WatcherDB
}

// WatcherWorkers contains background worker settings.
type WatcherWorkers struct {
	// SyncInterval defines how often the background sync cycle runs.
	SyncInterval time.Duration
}

// WatcherCache contains per-kind cache staleness settings.
type WatcherCache struct {
	// BudgetListTTL is the staleness duration for the budget list.
	BudgetListTTL time.Duration
	// ResourceTTL is the staleness duration for per-budget resources.
	ResourceTTL time.Duration
}

// WatcherConfig is the validated watcher-runtime configuration assembled
// from [StructuredConfig].
type WatcherConfig struct {
	App     WatcherApp
	Adapter WatcherAdapter
	Storage WatcherStorage
	Workers WatcherWorkers
	Cache   WatcherCache
}

// GetWatcherConfig builds and validates the watcher config view from the
// merged structured configuration, applying defaults for unset durations
// and falling back to the API base URL for the credential endpoint.
func GetWatcherConfig() (*WatcherConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	watcherCfg := &WatcherConfig{
		App: WatcherApp{
			ClientID:      cfg.App.ClientID,
			ClientSecret:  cfg.App.ClientSecret,
			RenewalWindow: cfg.App.RenewalWindow,
		},
		Adapter: WatcherAdapter{
			APIBaseURL:     cfg.Adapter.APIBaseURL,
			AuthBaseURL:    cfg.Adapter.AuthBaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: WatcherStorage{
			DB: WatcherDB{Path: cfg.Storage.DB.Path},
		},
		Workers: WatcherWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Cache: WatcherCache{
			BudgetListTTL: cfg.Cache.BudgetListTTL,
			ResourceTTL:   cfg.Cache.ResourceTTL,
		},
	}

	if watcherCfg.App.RenewalWindow == 0 {
		watcherCfg.App.RenewalWindow = DefaultRenewalWindow
	}
	if watcherCfg.Adapter.AuthBaseURL == "" {
		watcherCfg.Adapter.AuthBaseURL = watcherCfg.Adapter.APIBaseURL
	}
	if watcherCfg.Adapter.RequestTimeout == 0 {
		watcherCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if watcherCfg.Workers.SyncInterval == 0 {
		watcherCfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if watcherCfg.Cache.BudgetListTTL == 0 {
		watcherCfg.Cache.BudgetListTTL = DefaultBudgetListTTL
	}
	if watcherCfg.Cache.ResourceTTL == 0 {
		watcherCfg.Cache.ResourceTTL = DefaultResourceTTL
	}

	return watcherCfg, watcherCfg.validate()
}
