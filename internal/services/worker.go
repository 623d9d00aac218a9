package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Job is one accepted CV upload waiting to be scored.
type Job struct {
	ID       uuid.UUID
	MediaID  string
	From     string
	Position string
}

// Worker runs scoring jobs on a fixed pool of goroutines behind a bounded
// queue, so a flood of uploads applies backpressure instead of spawning
// unboundedly.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job Job) bool
}

type worker struct {
	processor   ProcessorService
	jobQueue    chan Job
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(processor ProcessorService, concurrency, queueSize int) Worker {
	return &worker{
		processor:   processor,
		jobQueue:    make(chan Job, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. It blocks until the pool has drained every job
// already accepted into the queue; each of those candidates was told their
// CV is being logged, so none may be dropped on shutdown.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// Enqueue implements Worker. It never blocks the caller: a full queue or a
// stopped worker reports false so the dispatcher can tell the candidate to
// retry instead of hanging the webhook acknowledgment.
func (w *worker) Enqueue(job Job) bool {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", job.ID)
		return false
	default:
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Job %s enqueued for %s (%s)\n", job.ID, job.Position, job.From)
		return true
	default:
		log.Printf("⚠️  Job queue full, rejecting job %s\n", job.ID)
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.drainJobs(ctx, workerID)
			return
		case job := <-w.jobQueue:
			w.runJob(ctx, workerID, job)
		}
	}
}

// drainJobs empties the queue after the stop signal. Enqueue rejects new jobs
// once stopChan is closed, so this terminates.
func (w *worker) drainJobs(ctx context.Context, workerID int) {
	for {
		select {
		case job := <-w.jobQueue:
			w.runJob(ctx, workerID, job)
		default:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		}
	}
}

func (w *worker) runJob(ctx context.Context, workerID int, job Job) {
	log.Printf("👷 Worker #%d processing job %s\n", workerID, job.ID)
	if err := w.processor.ProcessCV(ctx, job); err != nil {
		log.Printf("❌ Worker #%d failed job %s: %v\n", workerID, job.ID, err)
	} else {
		log.Printf("✅ Worker #%d completed job %s\n", workerID, job.ID)
	}
}
