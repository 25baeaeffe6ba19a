package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	jobTracer          = otel.Tracer("finmirror/scheduler")
	jobMeter           = otel.Meter("finmirror/scheduler")
	jobDuration, _     = jobMeter.Float64Histogram("scheduler.job.duration", metric.WithDescription("Job execution duration in seconds"), metric.WithUnit("s"))
	jobTotal, _        = jobMeter.Int64Counter("scheduler.job.total", metric.WithDescription("Total jobs executed by status"))
	jobQueueDropped, _ = jobMeter.Int64Counter("scheduler.job.queue_dropped", metric.WithDescription("Jobs dropped due to full queue"))
)

// WorkerPool manages a pool of concurrent workers that process jobs.
type WorkerPool struct {
	workerCount int
	jobDelay    time.Duration
	jobs        chan Job
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool creates a new worker pool.
// workerCount: number of concurrent workers
// jobDelay: delay between processing jobs (for rate limiting)
// queueSize: buffer size for the job channel
func NewWorkerPool(workerCount int, jobDelay time.Duration, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workerCount: workerCount,
		jobDelay:    jobDelay,
		jobs:        make(chan Job, queueSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	log.Printf("Starting worker pool with %d workers", wp.workerCount)

	for i := 1; i <= wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// worker processes jobs from the channel until shutdown.
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	log.Printf("Worker %d started", id)

	for {
		select {
		case <-wp.ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return

		case job, ok := <-wp.jobs:
			if !ok {
				log.Printf("Worker %d: job channel closed", id)
				return
			}

			wp.processJob(id, job)

			if wp.jobDelay > 0 {
				select {
				case <-time.After(wp.jobDelay):
				case <-wp.ctx.Done():
					log.Printf("Worker %d shutting down during delay", id)
					return
				}
			}
		}
	}
}

// processJob executes a single job with error handling, logging, and telemetry.
func (wp *WorkerPool) processJob(workerID int, job Job) {
	log.Printf("Worker %d: Processing %s", workerID, job.Description())

	// Full mirror passes can take a while against a slow provider
	ctx, cancel := context.WithTimeout(wp.ctx, 10*time.Minute)
	defer cancel()

	ctx, span := jobTracer.Start(ctx, "job.execute",
		trace.WithAttributes(
			attribute.Int("worker.id", workerID),
			attribute.String("job.key", job.Key()),
			attribute.String("job.description", job.Description()),
		),
	)
	defer span.End()

	start := time.Now()

	if err := job.Execute(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		jobTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		jobDuration.Record(ctx, time.Since(start).Seconds())
		log.Printf("Worker %d: Error processing %s: %v", workerID, job.Description(), err)
		return
	}

	jobTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "success")))
	jobDuration.Record(ctx, time.Since(start).Seconds())
	log.Printf("Worker %d: Successfully completed %s", workerID, job.Description())
}

// Submit adds a job to the queue for processing.
// Returns an error if the context is cancelled or the queue is full.
func (wp *WorkerPool) Submit(job Job) error {
	select {
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	case wp.jobs <- job:
		return nil
	default:
		jobQueueDropped.Add(context.Background(), 1)
		log.Printf("Warning: Job queue full, dropping %s", job.Description())
		return fmt.Errorf("job queue full, dropping %s", job.Key())
	}
}

// SubmitBatch adds multiple jobs to the queue.
func (wp *WorkerPool) SubmitBatch(jobs []Job) {
	submitted := 0
	for _, job := range jobs {
		if err := wp.Submit(job); err != nil {
			log.Printf("Failed to submit %s: %v", job.Description(), err)
			continue
		}
		submitted++
	}
	log.Printf("Submitted %d/%d jobs to worker pool", submitted, len(jobs))
}

// ShutdownWithTimeout shuts down the worker pool with a timeout.
// If workers don't finish within the timeout, it forces shutdown by cancelling context.
func (wp *WorkerPool) ShutdownWithTimeout(timeout time.Duration) {
	log.Printf("Worker pool: Initiating graceful shutdown with %v timeout", timeout)

	close(wp.jobs)

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Worker pool: All workers finished gracefully")
	case <-time.After(timeout):
		log.Println("Worker pool: Timeout reached, forcing shutdown")
		wp.cancel()
	}

	log.Println("Worker pool: Shutdown complete")
}
