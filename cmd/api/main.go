package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/revops-api/internal/application/analytics"
	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/documents"
	"github.com/jhoicas/revops-api/internal/application/jobs"
	"github.com/jhoicas/revops-api/internal/application/payments"
	"github.com/jhoicas/revops-api/internal/application/usecase"
	"github.com/jhoicas/revops-api/internal/domain/job"
	"github.com/jhoicas/revops-api/internal/infrastructure/cache"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/revops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/revops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/revops-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/revops-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/revops-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/revops-api/internal/interfaces/http"
	"github.com/jhoicas/revops-api/pkg/config"
	"github.com/jhoicas/revops-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is empty, tokens cannot be issued")
	}

	ctx := context.Background()
	health := map[string]httpRouter.HealthChecker{}

	var repos repositories
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to PostgreSQL")
		}
		defer pool.Close()
		repos = postgresRepositories(pool)
		health["postgres"] = pool
	} else {
		log.Warn().Msg("no database configured, using the in-memory store")
		repos = memoryRepositories(memory.NewStore())
	}

	// Dashboard cache (optional)
	var dashboardCache analytics.DashboardCache
	if cfg.Redis.Enabled() {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		rc := cache.NewRedisDashboardCache(client, cfg.Redis.DashboardTTL)
		dashboardCache = rc
		health["redis"] = rc
	}

	// Document archive (optional)
	var archive documents.Archive
	if cfg.Storage.Enabled() {
		a, err := storage.NewMinioArchive(ctx, cfg.Storage.Endpoint, cfg.Storage.AccessKey,
			cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.UseSSL)
		if err != nil {
			log.Error().Err(err).Msg("object storage unavailable, documents will not be archived")
		} else {
			archive = a
		}
	}

	policy := job.PolicyFor(cfg.Jobs.StrictTransitions)
	log.Info().Str("policy", policy.Name()).Msg("job transition policy")

	dashboardUC := analytics.NewDashboardUseCase(repos.analytics, repos.workshops, dashboardCache, log.Component("dashboard"))
	jobUC := jobs.NewJobUseCase(repos.jobs, repos.payments, repos.tx, policy, dashboardUC)
	paymentUC := payments.NewPaymentUseCase(payments.Deps{
		Jobs:        jobUC,
		JobRepo:     repos.jobs,
		Payments:    repos.payments,
		Settlements: repos.settlements,
		Workshops:   repos.workshops,
		Tx:          repos.tx,
		Invalidator: dashboardUC,
		Locale:      cfg.Currency.Locale,
	})
	authUC := auth.NewAuthUseCase(repos.users, repos.workshops, repos.managers, repos.tx, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	documentUC := documents.NewDocumentUseCase(jobUC, repos.payments, repos.workshops,
		infrapdf.NewMarotoPDFGenerator(), archive, cfg.Currency.Locale, log.Component("documents"))

	refresh, err := scheduler.New(dashboardUC, cfg.Jobs.DashboardRefreshEvery, log)
	if err != nil {
		log.Fatal().Err(err).Msg("dashboard refresh scheduler")
	}
	if refresh != nil {
		refresh.Start()
		defer refresh.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "RevOps API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		WorkshopUC:  usecase.NewWorkshopUseCase(repos.workshops, repos.managers, dashboardUC),
		ManagerUC:   usecase.NewManagerUseCase(repos.workshops, repos.invites, repos.managers),
		JobUC:       jobUC,
		PaymentUC:   paymentUC,
		DashboardUC: dashboardUC,
		ExportUC:    analytics.NewExportUseCase(repos.jobs, repos.payments, spreadsheet.NewExcelExporter()),
		DocumentUC:  documentUC,
		Health:      health,
		JWTSecret:   cfg.JWT.Secret,
		Timeout:     cfg.HTTP.RequestTimeout,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
