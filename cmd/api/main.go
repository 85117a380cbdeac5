package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/api/http/handlers"
	"github.com/spec-kit/rma-portal/internal/auth"
	"github.com/spec-kit/rma-portal/internal/config"
	"github.com/spec-kit/rma-portal/internal/events"
	"github.com/spec-kit/rma-portal/internal/observability"
	"github.com/spec-kit/rma-portal/internal/persistence"
	"github.com/spec-kit/rma-portal/internal/repository"
	"github.com/spec-kit/rma-portal/internal/service"
	"github.com/spec-kit/rma-portal/internal/wizard"
	"github.com/spec-kit/rma-portal/internal/worker"

	httptransport "github.com/spec-kit/rma-portal/internal/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	errorTypeRepo := repository.NewErrorTypeRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)

	catalogService := service.NewCatalogService(errorTypeRepo, redis, cfg.Catalog.CacheTTL(), logger)
	customerService := service.NewCustomerService(customerRepo)
	rmaService := service.NewRMAService(ticketRepo)
	documentService := service.NewDocumentService(nil)
	activityService := service.NewActivityService(dispatcher, activityRepo, logger)
	archiverService := service.NewArchiverService(service.ArchiverDependencies{
		TicketRepo:   ticketRepo,
		ActivityRepo: activityRepo,
		Metrics:      metrics,
		MaxAge:       cfg.Archive.MaxAge(),
		Logger:       logger,
	})

	sessions := wizard.NewStore(cfg.Wizard.SessionTTL())
	wizardService := service.NewWizardService(service.WizardDependencies{
		Sessions:   sessions,
		Catalog:    catalogService,
		Customers:  customerService,
		RMA:        rmaService,
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	worker.StartActivityWorker(activityService)

	scheduler := startScheduler(ctx, cfg.Archive, archiverService, sessions, logger)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Customers:     handlers.NewCustomersHandler(customerService),
		RMA:           handlers.NewRMAHandler(rmaService),
		Wizard:        handlers.NewWizardHandler(wizardService),
		Documents:     handlers.NewDocumentsHandler(ticketRepo, customerService, documentService),
		Admin:         handlers.NewAdminHandler(ticketRepo, activityService, metrics),
		Cron:          handlers.NewCronHandler(archiverService, logger),
		SchedulerAuth: auth.NewSchedulerAuth(cfg.Archive.CronSecret),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// startScheduler runs the daily archive sweep and an hourly session sweep
// in-process. An empty schedule disables it; the external scheduler can
// still drive the cron endpoint either way.
func startScheduler(ctx context.Context, cfg config.ArchiveConfig, archiver *service.ArchiverService, sessions *wizard.Store, logger *zap.Logger) *cron.Cron {
	if cfg.Schedule == "" {
		logger.Info("internal archive schedule disabled")
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.Schedule, func() {
		if _, err := archiver.ArchiveOldTickets(ctx); err != nil {
			logger.Error("scheduled archive run failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("invalid ARCHIVE_SCHEDULE", zap.Error(err))
	}

	if _, err := scheduler.AddFunc("@hourly", func() {
		if removed := sessions.Sweep(); removed > 0 {
			logger.Info("expired wizard sessions removed", zap.Int("count", removed))
		}
	}); err != nil {
		logger.Fatal("register session sweep", zap.Error(err))
	}

	scheduler.Start()
	logger.Info("internal scheduler started", zap.String("archive_schedule", cfg.Schedule))
	return scheduler
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
