package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProcessor struct {
	mu   sync.Mutex
	seen []Job
	done chan struct{}
}

func newCountingProcessor(expected int) *countingProcessor {
	return &countingProcessor{done: make(chan struct{}, expected)}
}

// ProcessCV implements ProcessorService.
func (p *countingProcessor) ProcessCV(ctx context.Context, job Job) error {
	p.mu.Lock()
	p.seen = append(p.seen, job)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *countingProcessor) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-p.done:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for job %d of %d", i+1, n)
		}
	}
}

func TestWorkerProcessesEachJobOnce(t *testing.T) {
	processor := newCountingProcessor(5)
	w := NewWorker(processor, 3, 10)
	w.Start(context.Background())
	defer w.Stop()

	jobs := make(map[uuid.UUID]bool)
	for i := 0; i < 5; i++ {
		job := Job{ID: uuid.New(), MediaID: "media", From: "923001234567", Position: "AI Engineer"}
		jobs[job.ID] = true
		require.True(t, w.Enqueue(job))
	}

	processor.waitFor(t, 5)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	require.Len(t, processor.seen, 5)
	for _, job := range processor.seen {
		assert.True(t, jobs[job.ID], "unexpected job %s", job.ID)
		delete(jobs, job.ID)
	}
	assert.Empty(t, jobs)
}

// Every job accepted before shutdown was acknowledged to a candidate, so
// Stop must finish the whole queue instead of dropping what workers haven't
// picked up yet.
func TestWorkerStopDrainsQueuedJobs(t *testing.T) {
	const n = 20
	processor := newCountingProcessor(n)
	w := NewWorker(processor, 3, n)

	for i := 0; i < n; i++ {
		require.True(t, w.Enqueue(Job{ID: uuid.New(), MediaID: "media", From: "923001234567", Position: "AI Engineer"}))
	}

	w.Start(context.Background())
	w.Stop()

	processor.mu.Lock()
	defer processor.mu.Unlock()
	assert.Len(t, processor.seen, n)
}

func TestWorkerEnqueueRejectsWhenQueueFull(t *testing.T) {
	processor := newCountingProcessor(1)
	// Never started: jobs stay in the queue
	w := NewWorker(processor, 1, 1)

	assert.True(t, w.Enqueue(Job{ID: uuid.New()}))
	assert.False(t, w.Enqueue(Job{ID: uuid.New()}))
}

func TestWorkerEnqueueRejectsAfterStop(t *testing.T) {
	processor := newCountingProcessor(1)
	w := NewWorker(processor, 1, 10)
	w.Start(context.Background())
	w.Stop()

	assert.False(t, w.Enqueue(Job{ID: uuid.New()}))
}
