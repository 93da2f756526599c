package service

import (
	"context"
	"sync"
	"time"

	"github.com/aleasistemi/botmanager/internal/logger"
)

type syncJob struct {
	accounts AccountService
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob that re-drives failed account persists on a
// ticker. The job is idle until Start is called.
func NewSyncJob(accounts AccountService, logger *logger.Logger) SyncJob {
	return &syncJob{accounts: accounts, logger: logger}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that calls RetryFailed every interval. If
// interval is zero or negative it defaults to 1 minute. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.accounts.RetryFailed(jobCtx)
			}
		}
	}()
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
