// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Zero durations are allowed
// here; they are defaulted in the watcher view ([GetWatcherConfig]).
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *WatcherConfig) validate() error {
	if cfg.Adapter.APIBaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
