package services

import (
	"chartline/config"
	"chartline/internal/database"
	"chartline/internal/repositories"
)

type Service struct {
	Transaction     *TransactionService
	Scheduler       *SchedulerService
	Normalizer      *NormalizerService
	CatalogCache    *CatalogCacheService
	SemanticMatcher *SemanticMatcherService
	CatalogSearch   *CatalogSearchService
	TallyReconciler *TallyReconcilerService
	CatalogMatcher  *CatalogMatcherService
	VoteIngestion   *VoteIngestionService
}

func New(db database.DB, config config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)

	schedulerService := NewSchedulerService()
	normalizerService := NewNormalizerService()
	catalogCacheService := NewCatalogCacheService(db, repos)
	semanticMatcherService := NewSemanticMatcherService(config)
	catalogSearchService := NewCatalogSearchService(config)
	tallyReconcilerService := NewTallyReconcilerService(repos, transactionService, catalogCacheService)
	catalogMatcherService := NewCatalogMatcherService(
		config,
		repos,
		normalizerService,
		catalogCacheService,
		semanticMatcherService,
		catalogSearchService,
		tallyReconcilerService,
	)
	voteIngestionService := NewVoteIngestionService(
		config,
		db,
		repos,
		transactionService,
		normalizerService,
		catalogMatcherService,
	)

	return Service{
		Transaction:     transactionService,
		Scheduler:       schedulerService,
		Normalizer:      normalizerService,
		CatalogCache:    catalogCacheService,
		SemanticMatcher: semanticMatcherService,
		CatalogSearch:   catalogSearchService,
		TallyReconciler: tallyReconcilerService,
		CatalogMatcher:  catalogMatcherService,
		VoteIngestion:   voteIngestionService,
	}, nil
}
