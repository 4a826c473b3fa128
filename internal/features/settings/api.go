package settings

import (
	"go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	SettingsController *SettingsController
	Config             *config.Config
}

func NewSettingsApi(settingsController *SettingsController, cfg *config.Config) api.Route {
	return &SettingsApi{
		SettingsController: settingsController,
		Config:             cfg,
	}
}

func (a *SettingsApi) Setup(app *fiber.App) {
	group := app.Group("/api/settings", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.SettingsController.GetSettings)
}
