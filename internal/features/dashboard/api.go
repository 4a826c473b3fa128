package dashboard

import (
	"go-dashboard/internal/common/api"
	"go-dashboard/internal/config"
	"go-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardApi struct {
	DashboardController *DashboardController
	DashboardService    DashboardService
	Config              *config.Config
	Log                 *zap.Logger
}

func NewDashboardApi(dashboardController *DashboardController, dashboardService DashboardService, cfg *config.Config, log *zap.Logger) api.Route {
	return &DashboardApi{
		DashboardController: dashboardController,
		DashboardService:    dashboardService,
		Config:              cfg,
		Log:                 log,
	}
}

func (a *DashboardApi) Setup(app *fiber.App) {
	group := app.Group("/api/boards",
		middleware.AuthMiddleware(a.Config.SkipAuth),
		a.ensureDefaultDashboard)

	// registered before "/:id" so "order" is not taken for an id
	group.Patch("/order", a.DashboardController.ReorderDashboards)

	group.Get("/", a.DashboardController.ListDashboards)
	group.Put("/", a.DashboardController.CreateDashboard)
	group.Get("/:id", a.DashboardController.GetDashboard)
	group.Delete("/:id", a.DashboardController.DeleteDashboard)
	group.Patch("/:id", a.DashboardController.RenameDashboard)

	group.Put("/:id/widgets", a.DashboardController.AddWidget)
	group.Get("/:id/widgets", a.DashboardController.ListWidgets)
	group.Patch("/:id/widgets/order", a.DashboardController.ReorderWidgets)
	group.Delete("/:id/widgets/:wid", a.DashboardController.RemoveWidget)
	group.Post("/:id/widgets/:wid/settings", a.DashboardController.UpdateWidgetSettings)
	group.Post("/:id/widgets/:wid/columns", a.DashboardController.UpdateWidgetColumns)
}

// ensureDefaultDashboard provisions the caller's default dashboard before
// any board route runs, so a fresh user always sees at least one board.
func (a *DashboardApi) ensureDefaultDashboard(ctx *fiber.Ctx) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if _, err := a.DashboardService.CreateDefaultDashboard(ctx.UserContext(), userID); err != nil {
		details := "Can not create default dashboard"
		a.Log.Error(details, zap.Error(err))

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    fiber.StatusInternalServerError,
				"message": "Server error",
				"details": details,
			},
		})
	}

	return ctx.Next()
}
