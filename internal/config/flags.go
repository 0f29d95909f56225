package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-api-url remote budgeting API base URL
//	-auth-url credential endpoint base URL (defaults to -api-url)
//	-db badger database directory
//	-c/-config json file path with configs
//	-client-id OAuth client id
//	-client-secret OAuth client secret
//	-renewal-window token renewal lead time (e.g., "5m")
//	-request-timeout outbound request timeout (e.g., "15s")
//	-sync-interval background sync interval (e.g., "15m")
func ParseFlags() *StructuredConfig {
	var apiURL string
	var authURL string
	var dbPath string
	var jsonConfigPath string
	var clientID string
	var clientSecret string
	var renewalWindow time.Duration
	var requestTimeout time.Duration
	var syncInterval time.Duration

	flag.StringVar(&apiURL, "api-url", "", "Budgeting API base URL")
	flag.StringVar(&authURL, "auth-url", "", "Credential endpoint base URL")
	flag.StringVar(&dbPath, "db", "", "Badger database directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&clientID, "client-id", "", "OAuth client id")
	flag.StringVar(&clientSecret, "client-secret", "", "OAuth client secret")
	flag.DurationVar(&renewalWindow, "renewal-window", 0, "Token renewal lead time (e.g., 5m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 15m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			ClientID:      clientID,
			ClientSecret:  clientSecret,
			RenewalWindow: renewalWindow,
		},
		Adapter: Adapter{
			APIBaseURL:     apiURL,
			AuthBaseURL:    authURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{Path: dbPath},
		},
		Workers:      Workers{SyncInterval: syncInterval},
		JSONFilePath: jsonConfigPath,
	}
}
