package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Site   *handlers.SiteHandler
	Jobs   *handlers.JobsHandler
	Themes *handlers.ThemesHandler
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
}

// Register wires all HTTP routes onto given Fiber app. requireAuth guards the
// job history; optionalAuth attaches an owner to generation when a token is sent.
func Register(app *fiber.App, h Handlers, requireAuth, optionalAuth fiber.Handler) {
	app.Get("/", h.Site.Index)
	app.Post("/generate", optionalAuth, h.Site.Generate)
	app.Get("/preview/:job_id/style.css", h.Site.PreviewStyle)
	app.Get("/preview/:job_id", h.Site.Preview)
	app.Get("/download/:job_id", h.Site.Download)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	v1.Get("/themes", h.Themes.List)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	jobs := v1.Group("/jobs", requireAuth)
	jobs.Get("/", h.Jobs.List)
	jobs.Get("/:job_id", h.Jobs.Get)
	jobs.Delete("/:job_id", h.Jobs.Delete)
}
