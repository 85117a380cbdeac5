package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rma-portal/internal/api/http/handlers"
	"github.com/spec-kit/rma-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Catalog       *handlers.CatalogHandler
	Customers     *handlers.CustomersHandler
	RMA           *handlers.RMAHandler
	Wizard        *handlers.WizardHandler
	Documents     *handlers.DocumentsHandler
	Admin         *handlers.AdminHandler
	Cron          *handlers.CronHandler
	SchedulerAuth *auth.SchedulerAuth
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/error-types", cfg.Catalog.ListErrorTypes)
	api.Get("/customers/:number/validate", cfg.Customers.Validate)
	api.Post("/rma-numbers", cfg.RMA.Generate)

	sessions := api.Group("/wizard/sessions")
	sessions.Post("/", cfg.Wizard.StartSession)
	sessions.Get("/:id", cfg.Wizard.GetSession)
	sessions.Patch("/:id/form", cfg.Wizard.UpdateForm)
	sessions.Post("/:id/category", cfg.Wizard.SelectCategory)
	sessions.Post("/:id/advance", cfg.Wizard.Advance)
	sessions.Post("/:id/back", cfg.Wizard.Back)
	sessions.Post("/:id/validate-customer", cfg.Wizard.ValidateCustomer)
	sessions.Post("/:id/submit", cfg.Wizard.Submit)
	sessions.Delete("/:id", cfg.Wizard.Abandon)

	api.Get("/tickets/:rma/document", cfg.Documents.Download)

	api.Post("/cron/archive-tickets", cfg.SchedulerAuth.Handle, cfg.Cron.ArchiveTickets)

	admin := app.Group("/admin")
	admin.Get("/tickets", cfg.Admin.ListActiveTickets)
	admin.Get("/tickets/archive", cfg.Admin.ListArchivedTickets)
	admin.Get("/tickets/:rma", cfg.Admin.GetTicket)
	admin.Get("/activity", cfg.Admin.ListActivity)
	admin.Get("/stats", cfg.Admin.Stats)
}
