package settings

import (
	"go-dashboard/internal/common/apperrors"
	"go-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsController struct {
	SettingsService SettingsService
	Log             *zap.Logger
}

func NewSettingsController(settingsService SettingsService, log *zap.Logger) *SettingsController {
	return &SettingsController{
		SettingsService: settingsService,
		Log:             log,
	}
}

// GetSettings godoc
// @Summary Get dashboard settings
// @Description Resolved widget type defaults and dashboard preferences for the current user
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/settings [get]
func (ctrl *SettingsController) GetSettings(ctx *fiber.Ctx) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	widgets, err := ctrl.SettingsService.GetWidgetSettings(ctx.UserContext(), userID, false)
	if err != nil {
		ctrl.Log.Error("Can not get settings", zap.Error(err))
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	dashboards, err := ctrl.SettingsService.GetDashboardSettings(ctx.UserContext(), userID)
	if err != nil {
		ctrl.Log.Error("Can not get settings", zap.Error(err))
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"widgets":    fiber.Map{"settings": widgets},
		"dashboards": fiber.Map{"settings": dashboards},
	})
}
