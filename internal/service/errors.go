package service

import "errors"

var (
	// ErrNoToken indicates no credential is stored; the user has never
	// authenticated on this device.
	ErrNoToken = errors.New("no stored token")

	// ErrReauthRequired indicates the stored credential was rejected by
	// the service and has been cleared; the user must authenticate again.
	ErrReauthRequired = errors.New("reauthentication required")

	// ErrNoTrackedBudgets indicates the user tracks no budgets, so a sync
	// cycle has nothing to do.
	ErrNoTrackedBudgets = errors.New("no tracked budgets")

	// ErrCycleInProgress indicates another sync cycle is already running;
	// overlapping cycles are skipped, never queued.
	ErrCycleInProgress = errors.New("sync cycle already in progress")
)
