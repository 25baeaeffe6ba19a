package scheduler

import "context"

// Job is a unit of work processed by the worker pool.
type Job interface {
	// Execute runs the job. The context carries the pool's lifetime and a
	// per-job timeout.
	Execute(ctx context.Context) error

	// Key identifies the job in logs and metrics.
	Key() string

	// Description returns a human-readable description of the job.
	Description() string
}
