package jobs

import (
	"context"
	"time"

	"chartline/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// ReconcileTalliesJob rebuilds the canonical chart for the current day so
// any mapping changes made since the last run are reflected.
type ReconcileTalliesJob struct {
	reconciler *services.TallyReconcilerService
	log        logger.Logger
	schedule   services.Schedule
}

func NewReconcileTalliesJob(
	reconciler *services.TallyReconcilerService,
	schedule services.Schedule,
) *ReconcileTalliesJob {
	return &ReconcileTalliesJob{
		reconciler: reconciler,
		log:        logger.New("reconcileTalliesJob"),
		schedule:   schedule,
	}
}

func (j *ReconcileTalliesJob) Name() string {
	return "ReconcileCanonicalTallies"
}

func (j *ReconcileTalliesJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	updated, err := j.reconciler.Recompute(ctx, time.Now().UTC())
	if err != nil {
		return log.Err("scheduled reconciliation failed", err)
	}

	log.Info("Scheduled reconciliation completed", "songs", updated)
	return nil
}

func (j *ReconcileTalliesJob) Schedule() services.Schedule {
	return j.schedule
}
