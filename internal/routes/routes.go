package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Legal    *handlers.LegalHandler
	Catalog  *handlers.CatalogHandler
	Profile  *handlers.ProfileHandler
	Report   *handlers.ReportHandler
	Evidence *handlers.EvidenceHandler
}

func perIP(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// 60 req/min per IP across the API
	api.Use(perIP(60))

	api.Get("/health", h.Health.Check)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	// Credential endpoints: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Post("/register", perIP(10), h.Auth.Register)
	auth.Post("/login", perIP(10), h.Auth.Login)
	auth.Post("/refresh", perIP(10), h.Auth.Refresh)

	jwt := middleware.JWTProtected(cfg)
	auth.Post("/logout", jwt, h.Auth.Logout)
	auth.Delete("/account", jwt, h.Auth.DeleteAccount)

	api.Get("/violation-types", h.Catalog.ListViolationTypes)
	api.Get("/violation-types/:id", h.Catalog.GetViolationType)

	api.Get("/profile", jwt, h.Profile.GetProfile)
	api.Patch("/profile", jwt, h.Profile.UpdateProfile)

	reports := api.Group("/reports", jwt)
	reports.Post("/", h.Report.Submit)
	reports.Get("/", h.Report.List)
	// Fixed paths before /:id
	reports.Get("/summary", h.Report.Summary)
	reports.Post("/duplicate-check", h.Report.CheckDuplicate)
	reports.Get("/:id", h.Report.Get)
	reports.Patch("/:id", h.Report.Update)

	evidence := api.Group("/evidence", jwt)
	evidence.Post("/", h.Evidence.Upload)
	evidence.Get("/:owner/:name", h.Evidence.Download)
}
