package scheduler

import (
	"context"
	"fmt"
	"log"

	"finmirror/internal/domain/sync"
)

// MirrorSyncJob runs one full mirror pass through the sync orchestrator.
type MirrorSyncJob struct {
	orchestrator *sync.Orchestrator
}

// NewMirrorSyncJob creates a new mirror sync job
func NewMirrorSyncJob(orchestrator *sync.Orchestrator) *MirrorSyncJob {
	return &MirrorSyncJob{orchestrator: orchestrator}
}

// Execute runs the mirror pass. A skipped pass (another trigger got there
// first) is not an error; a degraded report is surfaced as one so the pool
// marks the job failed.
func (j *MirrorSyncJob) Execute(ctx context.Context) error {
	report, err := j.orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("mirror pass failed: %w", err)
	}

	if report.Skipped {
		log.Println("Mirror pass skipped: another pass in flight")
		return nil
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("mirror pass %s completed with %d errors", report.RunID, len(report.Errors))
	}

	return nil
}

// Key identifies the job in logs and metrics.
func (j *MirrorSyncJob) Key() string {
	return "mirror-sync"
}

// Description returns a human-readable description of the job.
func (j *MirrorSyncJob) Description() string {
	return "full provider mirror pass"
}
