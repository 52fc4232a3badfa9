package jobs

import (
	"context"

	"chartline/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// ReviewPendingJob runs the semantic reviewer over pending catalog
// entries once a day, off-peak.
type ReviewPendingJob struct {
	matcher  *services.CatalogMatcherService
	semantic *services.SemanticMatcherService
	log      logger.Logger
	schedule services.Schedule
}

func NewReviewPendingJob(
	matcher *services.CatalogMatcherService,
	semantic *services.SemanticMatcherService,
	schedule services.Schedule,
) *ReviewPendingJob {
	return &ReviewPendingJob{
		matcher:  matcher,
		semantic: semantic,
		log:      logger.New("reviewPendingJob"),
		schedule: schedule,
	}
}

func (j *ReviewPendingJob) Name() string {
	return "ReviewPendingSongs"
}

func (j *ReviewPendingJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if !j.semantic.Enabled() {
		log.Info("Semantic matching disabled, skipping pending review")
		return nil
	}

	stats, err := j.matcher.ReviewPending(ctx, 100)
	if err != nil {
		return log.Err("scheduled pending review failed", err)
	}

	log.Info(
		"Scheduled pending review completed",
		"processed", stats.Processed,
		"merged", stats.Merged,
		"rejected", stats.Rejected,
		"verified", stats.Verified,
	)
	return nil
}

func (j *ReviewPendingJob) Schedule() services.Schedule {
	return j.schedule
}
