package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/queue"
)

// ─── Job types ────────────────────────────────────────────────────────────────

// receiptJob stands in for delivery work a bill dispatches after commit.
type receiptJob struct {
	BillNumber string
	handled    *atomic.Int32
}

func (j *receiptJob) Handle() error {
	if j.handled != nil {
		j.handled.Add(1)
	}
	return nil
}

// bounceJob always fails, to drive the retry and failed-job paths.
type bounceJob struct {
	attempts *atomic.Int32
}

func (j *bounceJob) Handle() error {
	if j.attempts != nil {
		j.attempts.Add(1)
	}
	return errors.New("smtp unreachable")
}

func init() {
	// Start workers so jobs actually get processed in tests.
	ctx, cancel := context.WithCancel(context.Background())
	_ = cancel
	queue.StartWorkers(ctx, 2)

	queue.Register("*queue_test.receiptJob", func() queue.Job { return &receiptJob{handled: &atomic.Int32{}} })
	queue.Register("*queue_test.bounceJob", func() queue.Job { return &bounceJob{attempts: &atomic.Int32{}} })
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestDispatchAndProcess(t *testing.T) {
	err := queue.Dispatch(&receiptJob{BillNumber: "BILL-20260831-QUEUE1", handled: &atomic.Int32{}})
	require.NoError(t, err)
	time.Sleep(200 * time.Millisecond)
}

func TestFailedJobRetry(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	require.NoError(t, queue.Dispatch(&bounceJob{attempts: &atomic.Int32{}}))

	// 1 attempt + 1s backoff + slack.
	time.Sleep(2500 * time.Millisecond)

	assert.NotEmpty(t, queue.FailedJobs(), "expected the bounced job to be recorded")
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&receiptJob{BillNumber: "BILL-20260831-FLOOD1", handled: &atomic.Int32{}}) //nolint:errcheck
		}()
	}
	wg.Wait()
}
