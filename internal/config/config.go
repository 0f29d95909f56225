// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for
// budgetwatch. It is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds credential and alerting settings.
	App App `envPrefix:"APP_"`

	// Adapter holds network settings for the remote budgeting API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds settings for the durable key-value store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background sync job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Cache holds per-resource-kind staleness durations.
	Cache Cache `envPrefix:"CACHE_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of environment and flag values when non-empty.
	// Populated via the CONFIG environment variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds credential-related application settings.
type App struct {
	// ClientID identifies this application to the budgeting service's
	// credential endpoint.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// ClientSecret is the secret paired with ClientID. Confidential.
	// Env: APP_CLIENT_SECRET
	ClientSecret string `env:"CLIENT_SECRET"`

	// RenewalWindow is the lead time before access-token expiry during
	// which a proactive credential refresh is triggered (e.g. "5m").
	// Env: APP_RENEWAL_WINDOW
	RenewalWindow time.Duration `env:"RENEWAL_WINDOW"`
}

// Adapter holds outbound transport settings.
type Adapter struct {
	// APIBaseURL is the base URL of the budgeting service API.
	// Env: ADAPTER_API_URL
	APIBaseURL string `env:"API_URL"`

	// AuthBaseURL is the base URL of the credential (OAuth) endpoint.
	// Defaults to APIBaseURL when empty.
	// Env: ADAPTER_AUTH_URL
	AuthBaseURL string `env:"AUTH_URL"`

	// RequestTimeout bounds every outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds durable key-value store settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the badger database location.
type DB struct {
	// Path is the directory holding the badger database files. The value
	// "memory" opens an in-memory database (used by tests).
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval defines how often the background sync cycle runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Cache holds staleness durations per resource kind.
type Cache struct {
	// BudgetListTTL is how long the cached budget list stays fresh.
	// Budgets change rarely; the default is measured in weeks.
	// Env: CACHE_BUDGET_LIST_TTL
	BudgetListTTL time.Duration `env:"BUDGET_LIST_TTL"`

	// ResourceTTL is how long cached per-budget resources (accounts,
	// categories, payees) stay fresh. Refreshed opportunistically on
	// read and unconditionally by the scheduler.
	// Env: CACHE_RESOURCE_TTL
	ResourceTTL time.Duration `env:"RESOURCE_TTL"`
}

// GetStructuredConfig assembles the merged configuration from environment
// variables, command-line flags, and an optional JSON file, in that
// priority order (earlier sources win on conflicting non-zero fields).
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
