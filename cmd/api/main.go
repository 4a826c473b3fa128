package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/database"
	"go-dashboard/internal/events"
	"go-dashboard/internal/features/dashboard"
	"go-dashboard/internal/features/settings"
	"go-dashboard/internal/features/stream"
	"go-dashboard/internal/logger"
	"go-dashboard/internal/middleware"
	"go-dashboard/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a constructor so fx adds its result to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)

			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	fx.New(
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),

		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			logger.NewLogger,

			fx.Annotate(events.NewLocalBus, fx.As(new(events.Bus))),

			settings.NewConfigRepository,
			settings.NewSettingsService,
			settings.NewSettingsController,

			dashboard.NewDashboardRepository,
			dashboard.NewDashboardService,
			dashboard.NewDashboardController,

			stream.NewHub,

			NewFiberServer,

			AsRoute(dashboard.NewDashboardApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(stream.NewStreamApi),
		),

		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
		),
	).Run()
}
