package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aleasistemi/botmanager/internal/logger"
)

// retryRecorder stubs AccountService for the sync job; only RetryFailed is
// ever called by the job, the embedded interface stays nil.
type retryRecorder struct {
	AccountService
	calls atomic.Int32
}

func (r *retryRecorder) RetryFailed(ctx context.Context) {
	r.calls.Add(1)
}

func TestSyncJob_RetriesOnInterval(t *testing.T) {
	recorder := &retryRecorder{}
	job := NewSyncJob(recorder, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, recorder.calls.Load(), int32(1))
}

func TestSyncJob_StopWithoutStartIsNoop(t *testing.T) {
	job := NewSyncJob(&retryRecorder{}, logger.Nop())
	job.Stop()
}

func TestSyncJob_RestartReplacesPreviousRun(t *testing.T) {
	recorder := &retryRecorder{}
	job := NewSyncJob(recorder, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	job.Stop()

	// no further ticks after Stop
	settled := recorder.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, recorder.calls.Load())
}

func TestSyncJob_CancelledContextStopsJob(t *testing.T) {
	recorder := &retryRecorder{}
	job := NewSyncJob(recorder, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	settled := recorder.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, recorder.calls.Load())

	job.Stop()
}
