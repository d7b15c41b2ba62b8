// Package http wires the Fiber handlers: public auth endpoints plus the
// JWT-protected merchant API.
package http

import (
	"github.com/gofiber/fiber/v2"
)

// Router groups every handler of the API.
type Router struct {
	auth      *AuthHandler
	products  *ProductHandler
	settings  *SettingsHandler
	analytics *AnalyticsHandler
	jwtSecret string
}

// NewRouter builds the router.
func NewRouter(
	auth *AuthHandler,
	products *ProductHandler,
	settings *SettingsHandler,
	analytics *AnalyticsHandler,
	jwtSecret string,
) *Router {
	return &Router{
		auth:      auth,
		products:  products,
		settings:  settings,
		analytics: analytics,
		jwtSecret: jwtSecret,
	}
}

// Setup registers all routes on the app.
func (r *Router) Setup(app *fiber.App) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", r.auth.Register)
	authGroup.Post("/login", r.auth.Login)

	protected := api.Group("", AuthMiddleware(r.jwtSecret))

	products := protected.Group("/products")
	products.Get("/", r.products.List)
	products.Patch("/:sku", r.products.UpdateCosts)

	settings := protected.Group("/settings")
	settings.Get("/", r.settings.Get)
	settings.Put("/", r.settings.Update)

	analytics := protected.Group("/analytics")
	analytics.Post("/sync", r.analytics.Sync)
	analytics.Get("/dashboard", r.analytics.Dashboard)
	analytics.Get("/report", r.analytics.Report)
}
