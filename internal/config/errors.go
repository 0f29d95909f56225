package config

import "errors"

var (
	// ErrInvalidAdapterConfigs indicates missing or inconsistent remote
	// API transport settings.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configs")

	// ErrInvalidStorageConfigs indicates a missing badger database path.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")

	// ErrInvalidWorkerConfigs indicates a missing sync interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configs")
)
