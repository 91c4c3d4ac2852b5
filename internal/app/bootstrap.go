package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	Fiber     *fiber.App
	container *Container
	relay     *ws.Relay
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	checks := map[string]handler.Pinger{"database": c.DB}
	if c.Redis.Available() {
		checks["redis"] = c.Redis
	}

	registry := routes.NewRegistry(routes.Handlers{
		Health:        handler.NewHealthHandler(checks),
		Intake:        handler.NewEventIntakeHandler(c.Notifier, c.Logger.Named("intake")),
		Match:         handler.NewMatchHandler(c.Matcher),
		Notifications: handler.NewNotificationHandler(c.Notifications),
		WS:            ws.NewHandler(c.Hub, c.JWT, c.Logger.Named("ws")),
		Metrics:       promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}),
	},
		middleware.NewAuthMiddleware(c.JWT),
		middleware.NewAPIKeyMiddleware(c.Config.Notifier.APIKeyHash),
	)
	registry.Register(f)

	return &App{
		Fiber:     f,
		container: c,
		relay:     ws.NewRelay(c.Redis, c.Hub, c.Logger.Named("ws")),
	}
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger.Named("http"))
	errMw := middleware.NewErrorMiddleware(logger.Named("http"))
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

// Serve runs the HTTP server, the websocket hub and the live relay until ctx
// is cancelled, then shuts the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	addr, err := ListenAddr(a.container.Config.App.HTTPPort)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.container.Hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return a.relay.Run(gctx)
	})
	g.Go(func() error {
		a.container.Logger.Info("http server listening", zap.String("addr", addr))
		if err := a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
