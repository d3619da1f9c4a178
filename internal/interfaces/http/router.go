package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/analytics"
	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/documents"
	"github.com/jhoicas/revops-api/internal/application/jobs"
	"github.com/jhoicas/revops-api/internal/application/payments"
	"github.com/jhoicas/revops-api/internal/application/usecase"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/pkg/logger"
)

// RouterDeps dependencies of the router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WorkshopUC  *usecase.WorkshopUseCase
	ManagerUC   *usecase.ManagerUseCase
	JobUC       *jobs.JobUseCase
	PaymentUC   *payments.PaymentUseCase
	DashboardUC *analytics.DashboardUseCase
	ExportUC    *analytics.ExportUseCase
	DocumentUC  *documents.DocumentUseCase
	Health      map[string]HealthChecker
	JWTSecret   string
	Timeout     time.Duration
	Logger      *logger.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Logger), Timeout(deps.Timeout))

	meta := NewMetaHandler(deps.Health)
	app.Get("/health", meta.Health)

	var resolver SessionResolver
	if deps.AuthUC != nil {
		resolver = deps.AuthUC
	}

	api := app.Group("/api")

	// Public
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	api.Get("/currencies", meta.Currencies)
	api.Get("/navigation/resolve", OptionalAuth(deps.JWTSecret, resolver), meta.ResolveNavigation)

	// Bearer token required from here on
	protected := api.Group("", AuthMiddleware(deps.JWTSecret, resolver))
	owner := RequireRole(entity.RoleOwner)
	manager := RequireRole(entity.RoleManager)
	anyRole := RequireRole(entity.RoleOwner, entity.RoleManager)
	workshop := RequireWorkshop()

	protected.Get("/auth/me", anyRole, authHandler.Me)
	protected.Get("/navigation", anyRole, meta.Navigation)

	workshopHandler := NewWorkshopHandler(deps.WorkshopUC, deps.ManagerUC)
	workshops := protected.Group("/workshops")
	workshops.Post("/", owner, workshopHandler.Create)
	workshops.Get("/me", anyRole, workshopHandler.GetMine)
	workshops.Put("/:id", owner, workshopHandler.Update)
	workshops.Post("/:id/invite-codes", owner, workshopHandler.CreateInviteCode)
	workshops.Get("/:id/invite-codes", owner, workshopHandler.ListInviteCodes)

	managers := protected.Group("/managers", owner, workshop)
	managers.Get("/", workshopHandler.ListManagers)
	managers.Delete("/:id", workshopHandler.RemoveManager)

	jobHandler := NewJobHandler(deps.JobUC)
	jobsGroup := protected.Group("/jobs", anyRole, workshop)
	jobsGroup.Post("/", manager, jobHandler.Create)
	jobsGroup.Get("/", jobHandler.List)
	jobsGroup.Get("/:id", jobHandler.Get)
	jobsGroup.Put("/:id", jobHandler.Update)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	paymentsGroup := protected.Group("/payments", anyRole, workshop)
	paymentsGroup.Post("/", manager, paymentHandler.Record)
	paymentsGroup.Get("/", paymentHandler.List)
	paymentsGroup.Put("/:id/confirm", owner, paymentHandler.Confirm)

	settlements := protected.Group("/settlements", anyRole, workshop)
	settlements.Post("/", manager, paymentHandler.Submit)
	settlements.Get("/", paymentHandler.ListSettlements)
	settlements.Put("/:id/confirm", owner, paymentHandler.ConfirmSettlement)

	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.ExportUC)
	analyticsGroup := protected.Group("/analytics", owner, workshop)
	analyticsGroup.Get("/dashboard", analyticsHandler.Dashboard)
	analyticsGroup.Get("/export", analyticsHandler.Export)

	documentHandler := NewDocumentHandler(deps.DocumentUC)
	docs := protected.Group("/documents", anyRole, workshop)
	docs.Get("/job-card/:jobId", documentHandler.JobCard)
	docs.Get("/invoice/:jobId", documentHandler.Invoice)
}
