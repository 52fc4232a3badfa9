package jobs

import (
	"context"
	"time"

	"chartline/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// ReprocessUnmatchedJob periodically resolves raw tallies that are still
// waiting for a canonical mapping. Votes arriving faster than the inline
// resolver can keep up with are caught here.
type ReprocessUnmatchedJob struct {
	matcher  *services.CatalogMatcherService
	log      logger.Logger
	schedule services.Schedule
}

func NewReprocessUnmatchedJob(
	matcher *services.CatalogMatcherService,
	schedule services.Schedule,
) *ReprocessUnmatchedJob {
	return &ReprocessUnmatchedJob{
		matcher:  matcher,
		log:      logger.New("reprocessUnmatchedJob"),
		schedule: schedule,
	}
}

func (j *ReprocessUnmatchedJob) Name() string {
	return "ReprocessUnmatchedTallies"
}

func (j *ReprocessUnmatchedJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	stats, err := j.matcher.ProcessUnmatched(ctx, time.Now().UTC(), 200)
	if err != nil {
		return log.Err("scheduled reprocessing failed", err)
	}

	log.Info(
		"Scheduled reprocessing completed",
		"processed", stats.Processed,
		"fuzzy", stats.FuzzyLinked,
		"semantic", stats.SemanticLinked,
		"pending", stats.NewPending,
	)
	return nil
}

func (j *ReprocessUnmatchedJob) Schedule() services.Schedule {
	return j.schedule
}
