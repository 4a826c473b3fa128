package dashboard

import (
	"go-dashboard/internal/common/apperrors"
	"go-dashboard/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardController struct {
	DashboardService DashboardService
	Validate         *validator.Validate
	Log              *zap.Logger
}

func NewDashboardController(dashboardService DashboardService, log *zap.Logger) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		Validate:         validator.New(),
		Log:              log,
	}
}

type createDashboardRequest struct {
	Name    string           `json:"name" validate:"required"`
	Widgets WidgetCollection `json:"widgets"`
}

type renameDashboardRequest struct {
	Name string `json:"name"`
}

type updateColumnsRequest struct {
	Columns interface{} `json:"columns"`
}

// ListDashboards godoc
// @Summary List dashboards
// @Description List the current user's dashboards, ordered and denormalized
// @Tags boards
// @Produce json
// @Success 200 {array} Dashboard
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/boards [get]
func (ctrl *DashboardController) ListDashboards(ctx *fiber.Ctx) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	offset := int64(ctx.QueryInt("offset", DefaultOffset))
	limit := int64(ctx.QueryInt("limit", DefaultLimit))

	dashboards, err := ctrl.DashboardService.ListForUser(ctx.UserContext(), userID, offset, limit)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while listing dashboards")
	}

	return ctx.JSON(dashboards)
}

// CreateDashboard godoc
// @Summary Create dashboard
// @Description Create a dashboard for the current user
// @Tags boards
// @Accept json
// @Produce json
// @Param dashboard body createDashboardRequest true "Dashboard"
// @Success 201 {object} Dashboard
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/boards [put]
func (ctrl *DashboardController) CreateDashboard(ctx *fiber.Ctx) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body createDashboardRequest
	if err := ctx.BodyParser(&body); err != nil {
		return badRequest(ctx, "Request body is malformed")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return badRequest(ctx, "Request body is malformed")
	}

	creator, err := parseID(userID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
	}

	created, err := ctrl.DashboardService.Create(ctx.UserContext(), &Dashboard{
		Name:    body.Name,
		Creator: creator,
		Widgets: body.Widgets,
	})
	if err != nil {
		return ctrl.fail(ctx, err, "Error while creating dashboard")
	}

	return ctx.Status(fiber.StatusCreated).JSON(created)
}

// GetDashboard godoc
// @Summary Get dashboard
// @Description Get one of the current user's dashboards, denormalized
// @Tags boards
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {object} Dashboard
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id} [get]
func (ctrl *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	dashboard, err := ctrl.DashboardService.GetForUser(ctx.UserContext(), ctx.Params("id"), userID)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while getting dashboard")
	}

	return ctx.JSON(dashboard)
}

// DeleteDashboard godoc
// @Summary Delete dashboard
// @Tags boards
// @Param id path string true "Dashboard ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id} [delete]
func (ctrl *DashboardController) DeleteDashboard(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while removing dashboard")
	}

	if _, err := ctrl.DashboardService.Remove(ctx.UserContext(), d.ID.Hex()); err != nil {
		return ctrl.fail(ctx, err, "Error while removing dashboard")
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// RenameDashboard godoc
// @Summary Rename dashboard
// @Tags boards
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param dashboard body renameDashboardRequest true "New name"
// @Success 200 {object} Dashboard
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id} [patch]
func (ctrl *DashboardController) RenameDashboard(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while updating dashboard")
	}

	if len(ctx.Body()) == 0 {
		return badRequest(ctx, "Request body is required")
	}

	var body renameDashboardRequest
	if err := ctx.BodyParser(&body); err != nil {
		return badRequest(ctx, "Request body is malformed")
	}

	updated, err := ctrl.DashboardService.Rename(ctx.UserContext(), d.ID.Hex(), body.Name)
	if err != nil {
		if apperrors.IsValidation(err) {
			return badRequest(ctx, "Request body is malformed")
		}
		return ctrl.fail(ctx, err, "Error while updating dashboard")
	}

	return ctx.JSON(updated)
}

// ReorderDashboards godoc
// @Summary Reorder dashboards
// @Description Persist the current user's preferred dashboard order
// @Tags boards
// @Accept json
// @Param order body []string true "Dashboard IDs in display order"
// @Success 200
// @Failure 400 {object} map[string]interface{}
// @Router /api/boards/order [patch]
func (ctrl *DashboardController) ReorderDashboards(ctx *fiber.Ctx) error {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if len(ctx.Body()) == 0 {
		return badRequest(ctx, "Request body is required")
	}

	var order []string
	if err := ctx.BodyParser(&order); err != nil {
		return badRequest(ctx, "Request body is malformed")
	}

	if err := ctrl.DashboardService.ReorderDashboards(ctx.UserContext(), userID, order); err != nil {
		return ctrl.fail(ctx, err, "Error while ordering dashboards")
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// AddWidget godoc
// @Summary Add widget
// @Description Append a widget instance to the dashboard
// @Tags boards
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param widget body WidgetInstance true "Widget"
// @Success 200
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id}/widgets [put]
func (ctrl *DashboardController) AddWidget(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while adding widgets")
	}

	var widget WidgetInstance
	if err := ctx.BodyParser(&widget); err != nil {
		return badRequest(ctx, "Widget data is malformed")
	}
	if err := ctrl.Validate.Struct(widget); err != nil {
		return badRequest(ctx, "Widget data is malformed")
	}

	if _, err := ctrl.DashboardService.AddWidget(ctx.UserContext(), d.ID.Hex(), &widget); err != nil {
		return ctrl.fail(ctx, err, "Error while adding widgets")
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// ListWidgets godoc
// @Summary List widgets
// @Tags boards
// @Produce json
// @Param id path string true "Dashboard ID"
// @Success 200 {array} WidgetInstance
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id}/widgets [get]
func (ctrl *DashboardController) ListWidgets(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while listing widgets")
	}

	widgets, err := ctrl.DashboardService.ListWidgets(ctx.UserContext(), d.ID.Hex())
	if err != nil {
		return ctrl.fail(ctx, err, "Error while listing widgets")
	}

	return ctx.JSON(widgets)
}

// ReorderWidgets godoc
// @Summary Reorder widgets
// @Description Replace the dashboard's widget order list
// @Tags boards
// @Accept json
// @Param id path string true "Dashboard ID"
// @Param order body []string true "Widget IDs in display order"
// @Success 200
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id}/widgets/order [patch]
func (ctrl *DashboardController) ReorderWidgets(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while ordering widgets")
	}

	if len(ctx.Body()) == 0 {
		return badRequest(ctx, "Request body is required")
	}

	var order []string
	if err := ctx.BodyParser(&order); err != nil {
		return badRequest(ctx, "Request body is malformed")
	}

	if _, err := ctrl.DashboardService.ReorderWidgets(ctx.UserContext(), d.ID.Hex(), order); err != nil {
		return ctrl.fail(ctx, err, "Error while ordering widgets")
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// RemoveWidget godoc
// @Summary Remove widget
// @Description Remove a widget instance and prune it from the order list
// @Tags boards
// @Param id path string true "Dashboard ID"
// @Param wid path string true "Widget ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id}/widgets/{wid} [delete]
func (ctrl *DashboardController) RemoveWidget(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while removing widgets")
	}

	if _, err := ctrl.DashboardService.RemoveWidget(ctx.UserContext(), d.ID.Hex(), ctx.Params("wid")); err != nil {
		return ctrl.fail(ctx, err, "Error while removing widgets")
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// UpdateWidgetSettings godoc
// @Summary Update widget settings
// @Description Replace a widget instance's settings
// @Tags boards
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param wid path string true "Widget ID"
// @Param settings body map[string]interface{} true "Settings"
// @Success 200 {object} WidgetInstance
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id}/widgets/{wid}/settings [post]
func (ctrl *DashboardController) UpdateWidgetSettings(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while updating widget")
	}

	var value map[string]interface{}
	if err := ctx.BodyParser(&value); err != nil {
		return badRequest(ctx, "Request body is malformed")
	}

	wid := ctx.Params("wid")
	updated, err := ctrl.DashboardService.UpdateWidgetSettings(ctx.UserContext(), d.ID.Hex(), wid, value)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while updating widget")
	}

	return ctx.JSON(updated.Widgets.Find(wid))
}

// UpdateWidgetColumns godoc
// @Summary Update widget columns
// @Description Merge the columns value into a widget instance's settings
// @Tags boards
// @Accept json
// @Produce json
// @Param id path string true "Dashboard ID"
// @Param wid path string true "Widget ID"
// @Param columns body updateColumnsRequest true "Columns"
// @Success 200 {object} WidgetInstance
// @Failure 404 {object} map[string]interface{}
// @Router /api/boards/{id}/widgets/{wid}/columns [post]
func (ctrl *DashboardController) UpdateWidgetColumns(ctx *fiber.Ctx) error {
	d, err := ctrl.loadDashboard(ctx)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while updating widget")
	}

	var body updateColumnsRequest
	if err := ctx.BodyParser(&body); err != nil {
		return badRequest(ctx, "Request body is malformed")
	}

	wid := ctx.Params("wid")
	updated, err := ctrl.DashboardService.UpdateWidgetColumns(ctx.UserContext(), d.ID.Hex(), wid, body.Columns)
	if err != nil {
		return ctrl.fail(ctx, err, "Error while updating widget")
	}

	return ctx.JSON(updated.Widgets.Find(wid))
}

// loadDashboard resolves the :id route param against the caller's own
// dashboards. Foreign and missing dashboards are the same 404.
func (ctrl *DashboardController) loadDashboard(ctx *fiber.Ctx) (*Dashboard, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, apperrors.NotFound("dashboard not found")
	}
	return ctrl.DashboardService.GetOwned(ctx.UserContext(), ctx.Params("id"), userID)
}

func (ctrl *DashboardController) fail(ctx *fiber.Ctx, err error, details string) error {
	status := apperrors.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		ctrl.Log.Error(details, zap.Error(err))
	}

	return ctx.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    status,
			"message": err.Error(),
			"details": details,
		},
	})
}

func badRequest(ctx *fiber.Ctx, details string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    fiber.StatusBadRequest,
			"message": "Bad request",
			"details": details,
		},
	})
}
