package routes

import (
	"net/http"

	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Handlers struct {
	Health        *handler.HealthHandler
	Intake        *handler.EventIntakeHandler
	Match         *handler.MatchHandler
	Notifications *handler.NotificationHandler
	WS            *ws.Handler
	Metrics       http.Handler
}

type Registry struct {
	h      Handlers
	auth   *middleware.AuthMiddleware
	apiKey *middleware.APIKeyMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware, apiKey *middleware.APIKeyMiddleware) *Registry {
	return &Registry{h: h, auth: auth, apiKey: apiKey}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerFunctions(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.h.Metrics))
	}
}

// registerFunctions mounts the notification intake. CORS runs first so
// preflight requests never reach the api key check.
func (r *Registry) registerFunctions(app *fiber.App) {
	if r.h.Intake == nil {
		return
	}
	fn := app.Group("/functions/v1", middleware.CORS(), r.apiKeyHandler())
	r.h.Intake.RegisterRoutes(fn)
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api/v1")

	if r.h.Match != nil {
		r.h.Match.RegisterRoutes(v1.Group("/jobs", r.apiKeyHandler()))
	}
	if r.h.Notifications != nil && r.auth != nil {
		r.h.Notifications.RegisterRoutes(v1.Group("/notifications", r.auth.Middleware()))
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.h.WS != nil {
		r.h.WS.RegisterRoutes(app)
	}
}

func (r *Registry) apiKeyHandler() fiber.Handler {
	if r.apiKey == nil {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return r.apiKey.Middleware()
}
