// Package config provides configuration loading, merging, and validation
// facilities for budgetwatch.
//
// Configuration is assembled from multiple sources in the following
// priority order (earlier sources win on conflicting non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetWatcherConfig], which returns the validated
// watcher-runtime view with defaults applied.
package config
