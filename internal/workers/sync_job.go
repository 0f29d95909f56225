package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/averin/budgetwatch/internal/logger"
	"github.com/averin/budgetwatch/internal/service"
	"github.com/averin/budgetwatch/internal/store"
)

// SyncJob runs the background sync cycle on a ticker and additionally
// wakes up immediately when a sync request is written to the durable
// store (the UI path of "refresh now"). Overlapping triggers are
// absorbed by the cycle's own guard; the job just fires it.
type SyncJob struct {
	cycle    service.CycleService
	kv       store.KeyValue
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob. The job is idle until Start (or Run) is
// called. If interval is zero or negative it defaults to 15 minutes.
func NewSyncJob(cycle service.CycleService, kv store.KeyValue, interval time.Duration, log *logger.Logger) *SyncJob {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &SyncJob{
		cycle:    cycle,
		kv:       kv,
		interval: interval,
		log:      log,
	}
}

// Run implements [Worker]: it starts the job under a background context.
func (j *SyncJob) Run() {
	j.Start(context.Background())
}

// Start stops any previously running job, then launches the ticker loop
// and the sync-request watcher. The goroutines exit when ctx is cancelled
// or Stop is called.
func (j *SyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(2)
	j.mu.Unlock()

	// capacity 1: a wake arriving mid-cycle coalesces into one extra run
	wake := make(chan struct{}, 1)

	go func() {
		defer j.wg.Done()
		err := j.kv.Watch(jobCtx, store.KeySyncRequest, func(string) {
			select {
			case wake <- struct{}{}:
			default:
			}
		})
		if err != nil {
			j.log.Error().Err(err).Msg("sync request watcher stopped")
		}
	}()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		j.fire(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.fire(jobCtx)
			case <-wake:
				j.fire(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutines and blocks until they have
// fully exited. Safe to call when the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *SyncJob) fire(ctx context.Context) {
	err := j.cycle.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrCycleInProgress), errors.Is(err, service.ErrNoTrackedBudgets):
		j.log.Debug().Err(err).Msg("sync cycle skipped")
	default:
		j.log.Error().Err(err).Msg("sync cycle failed")
	}
}
