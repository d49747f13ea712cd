package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/maalberto-engineer/IoT-Data-Generator/config"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/application"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/infrastructure/api"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/infrastructure/excel"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/infrastructure/fakegen"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/infrastructure/plot"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/infrastructure/scheduler"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/infrastructure/storage"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

type App struct {
	config         *config.Config
	logger         logger.Logger
	datasetService *application.DatasetService
	exportService  *application.ExportService
	plotRenderer   ports.PlotRenderer
	objectStorage  ports.ObjectStorage
	scheduler      ports.Scheduler
	apiServer      *api.APIServer
}

func Bootstrap() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.App.LogLevel, cfg.App.Env).WithField("service", cfg.App.Name)
	appLogger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	app := &App{
		config: cfg,
		logger: appLogger,
	}

	if err := app.initComponents(); err != nil {
		appLogger.Fatalf("Failed to initialize components: %v", err)
	}

	if err := app.start(); err != nil {
		appLogger.Fatalf("Failed to start application: %v", err)
	}

	app.waitForShutdown()
}

func (a *App) initComponents() error {
	a.logger.Info("Initializing components...")

	a.logger.Info("Initializing data generator...")
	generator, err := fakegen.NewFakeGenerator(a.config.Generator)
	if err != nil {
		return fmt.Errorf("failed to create data generator: %w", err)
	}
	a.datasetService = application.NewDatasetService(generator, a.config.Generator)

	if a.config.Storage.Enabled {
		a.logger.Info("Initializing Minio archive...")
		archive, err := storage.NewMinioArchive(a.config.Storage)
		if err != nil {
			return fmt.Errorf("failed to create object storage: %w", err)
		}
		a.objectStorage = archive
	}

	a.logger.Info("Initializing export service...")
	excelGen := excel.NewDatasetReportGenerator()
	a.exportService = application.NewExportService(excelGen, a.objectStorage, a.config.Export.CSVMaxRows)

	a.logger.Info("Initializing plot renderer...")
	renderer, err := plot.NewChartRenderer(a.config.Plots)
	if err != nil {
		return fmt.Errorf("failed to create plot renderer: %w", err)
	}
	a.plotRenderer = renderer

	if a.config.Scheduler.RegenerationInterval > 0 {
		a.logger.Info("Initializing scheduler...")
		a.scheduler = scheduler.NewCronScheduler(a.config.Scheduler.Timeout)
	}

	a.logger.Info("Initializing API server...")
	handler := api.NewAPIHandler(
		a.datasetService,
		a.exportService,
		a.plotRenderer,
		a.objectStorage,
		a.config.Export.PreviewRows,
	)
	middleware := api.NewMiddleware(a.config.API.RateLimit, a.config.API.RateLimitWindow)
	a.apiServer = api.NewAPIServer(handler, middleware, a.config)

	a.logger.Info("All components initialized successfully")
	return nil
}

func (a *App) start() error {
	a.logger.Info("Starting application...")

	ctx := context.Background()

	if a.scheduler != nil {
		a.logger.Info("Setting up scheduler...")
		if err := a.setupScheduler(ctx); err != nil {
			return fmt.Errorf("failed to setup scheduler: %w", err)
		}
	}

	a.logger.Info("Starting API server...")
	if err := a.apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	a.logger.Info("Application started successfully")
	return nil
}

func (a *App) setupScheduler(ctx context.Context) error {
	err := a.scheduler.Schedule(ctx, "dataset_regeneration",
		a.config.Scheduler.RegenerationInterval,
		func(ctx context.Context) error {
			a.logger.Info("Running scheduled dataset regeneration")

			if err := a.datasetService.Regenerate(ctx); err != nil {
				if errors.Is(err, application.ErrGenerationInProgress) {
					a.logger.Warn("Skipping scheduled regeneration, a run is already active")
					return nil
				}
				return err
			}

			a.logger.Info("Scheduled dataset regeneration completed")
			return nil
		})
	if err != nil {
		return fmt.Errorf("failed to schedule dataset regeneration: %w", err)
	}

	return nil
}

func (a *App) waitForShutdown() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	sig := <-signalChan
	a.logger.Infof("Received signal: %v. Shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), a.config.App.ShutdownTimeout)
	defer cancel()

	a.shutdownComponents(ctx)

	a.logger.Info("Application shutdown completed")
}

func (a *App) shutdownComponents(ctx context.Context) {
	if a.apiServer != nil {
		a.logger.Info("Stopping API server...")
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Errorf("Failed to stop API server: %v", err)
		}
	}

	if a.scheduler != nil {
		a.logger.Info("Stopping scheduler...")
		a.scheduler.Stop()
	}
}
