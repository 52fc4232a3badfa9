package app

import (
	"context"

	"chartline/config"
	"chartline/internal/database"
	"chartline/internal/handlers/middleware"
	"chartline/internal/jobs"
	"chartline/internal/repositories"
	"chartline/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config
	Services   services.Service
	Repos      repositories.Repository
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	appServices, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	middleware := middleware.New(db, config)

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(appServices.Scheduler, config, appServices); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
		if err := appServices.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:   db,
		Middleware: middleware,
		Config:     config,
		Services:   appServices,
		Repos:      repos,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Normalizer,
		a.Services.CatalogCache,
		a.Services.SemanticMatcher,
		a.Services.CatalogSearch,
		a.Services.TallyReconciler,
		a.Services.CatalogMatcher,
		a.Services.VoteIngestion,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
