package jobs

import (
	"chartline/config"
	"chartline/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	Daily  = services.Daily
	Hourly = services.Hourly
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	reprocessJob := NewReprocessUnmatchedJob(services.CatalogMatcher, Hourly)
	if err := schedulerService.AddJob(reprocessJob); err != nil {
		return log.Err("failed to register reprocess job", err)
	}

	reconcileJob := NewReconcileTalliesJob(services.TallyReconciler, Hourly)
	if err := schedulerService.AddJob(reconcileJob); err != nil {
		return log.Err("failed to register reconcile job", err)
	}

	reviewJob := NewReviewPendingJob(services.CatalogMatcher, services.SemanticMatcher, Daily)
	if err := schedulerService.AddJob(reviewJob); err != nil {
		return log.Err("failed to register pending review job", err)
	}

	return nil
}
