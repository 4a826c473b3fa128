package dashboard

import (
	"context"

	"go-dashboard/internal/common/apperrors"
	"go-dashboard/internal/events"
	"go-dashboard/internal/features/settings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DashboardService owns validation, event publication and the read-time
// denormalization of dashboards. Every successful mutation publishes a
// Created/Updated/Deleted event carrying the resulting entity.
type DashboardService interface {
	ListForUser(ctx context.Context, userID string, offset, limit int64) ([]Dashboard, error)
	GetForUser(ctx context.Context, id, userID string) (*Dashboard, error)
	GetOwned(ctx context.Context, id, userID string) (*Dashboard, error)
	Create(ctx context.Context, d *Dashboard) (*Dashboard, error)
	Remove(ctx context.Context, id string) (*Dashboard, error)
	Rename(ctx context.Context, id, name string) (*Dashboard, error)
	ListWidgets(ctx context.Context, id string) ([]WidgetInstance, error)
	ReorderWidgets(ctx context.Context, id string, order []string) (*Dashboard, error)
	AddWidget(ctx context.Context, id string, widget *WidgetInstance) (*Dashboard, error)
	RemoveWidget(ctx context.Context, id, widgetID string) (*Dashboard, error)
	UpdateWidgetSettings(ctx context.Context, id, widgetID string, value map[string]interface{}) (*Dashboard, error)
	UpdateWidgetColumns(ctx context.Context, id, widgetID string, columns interface{}) (*Dashboard, error)
	ReorderDashboards(ctx context.Context, userID string, order []string) error
	CreateDefaultDashboard(ctx context.Context, userID string) (*Dashboard, error)
	CheckDefaultDashboardExists(ctx context.Context, userID string) (bool, error)
}

type DashboardServiceImpl struct {
	Repo     DashboardRepository
	Settings settings.SettingsService
	Bus      events.Bus
	Log      *zap.Logger
}

func NewDashboardService(
	repo DashboardRepository,
	settingsService settings.SettingsService,
	bus events.Bus,
	log *zap.Logger,
) DashboardService {
	return &DashboardServiceImpl{
		Repo:     repo,
		Settings: settingsService,
		Bus:      bus,
		Log:      log,
	}
}

// ListForUser returns the caller's dashboards in preferred order, each one
// denormalized against the caller's widget type defaults.
func (s *DashboardServiceImpl) ListForUser(ctx context.Context, userID string, offset, limit int64) ([]Dashboard, error) {
	creator, err := parseID(userID)
	if err != nil {
		return nil, apperrors.Validation("userId is malformed")
	}

	dashboards, err := s.Repo.List(ctx, ListOptions{Creator: &creator, Offset: offset, Limit: limit})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	order, err := s.Settings.GetDashboardOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	defaults, err := s.Settings.GetWidgetSettings(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	return DenormalizeDashboards(dashboards, order, defaults), nil
}

// GetForUser returns the denormalized dashboard, or NotFound when it does
// not exist or belongs to somebody else. The two cases are deliberately
// indistinguishable.
func (s *DashboardServiceImpl) GetForUser(ctx context.Context, id, userID string) (*Dashboard, error) {
	d, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	defaults, err := s.Settings.GetWidgetSettings(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	return DenormalizeDashboard(d, defaults), nil
}

// GetOwned is the raw ownership-checked lookup, without denormalization.
func (s *DashboardServiceImpl) GetOwned(ctx context.Context, id, userID string) (*Dashboard, error) {
	if id == "" {
		return nil, apperrors.Validation("dashboardId is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}
	creator, err := parseID(userID)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	d, err := s.Repo.GetForUser(ctx, oid, creator)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if d == nil {
		return nil, apperrors.NotFound("dashboard not found")
	}
	return d, nil
}

func (s *DashboardServiceImpl) Create(ctx context.Context, d *Dashboard) (*Dashboard, error) {
	if d == nil {
		return nil, apperrors.Validation("dashboard is required")
	}
	if d.Name == "" {
		return nil, apperrors.Validation("name is required")
	}

	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, apperrors.Persistence(err)
	}

	s.Bus.Publish(EventCreated, d)
	return d, nil
}

// Remove deletes the dashboard if it exists. A miss is not an error; the
// result is simply nil and no event fires.
func (s *DashboardServiceImpl) Remove(ctx context.Context, id string) (*Dashboard, error) {
	if id == "" {
		return nil, apperrors.Validation("dashboardId is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, nil
	}

	removed, err := s.Repo.Remove(ctx, oid)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if removed != nil {
		s.Bus.Publish(EventDeleted, removed)
	}
	return removed, nil
}

func (s *DashboardServiceImpl) Rename(ctx context.Context, id, name string) (*Dashboard, error) {
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	updated, err := s.Repo.Rename(ctx, oid, name)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	s.Bus.Publish(EventUpdated, updated)
	return updated, nil
}

func (s *DashboardServiceImpl) ListWidgets(ctx context.Context, id string) ([]WidgetInstance, error) {
	if id == "" {
		return nil, apperrors.Validation("dashboardId is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	d, err := s.Repo.Get(ctx, oid)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if d == nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	if d.Widgets.Instances == nil {
		return []WidgetInstance{}, nil
	}
	return d.Widgets.Instances, nil
}

// ReorderWidgets replaces the order list wholesale. A nil list stores an
// empty order.
func (s *DashboardServiceImpl) ReorderWidgets(ctx context.Context, id string, order []string) (*Dashboard, error) {
	if order == nil {
		order = []string{}
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	updated, err := s.Repo.ReplaceWidgetOrder(ctx, oid, order)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	s.Bus.Publish(EventUpdated, updated)
	return updated, nil
}

// AddWidget appends the widget to the instance list. No uniqueness check:
// duplicate ids are allowed here and must be tolerated by readers.
func (s *DashboardServiceImpl) AddWidget(ctx context.Context, id string, widget *WidgetInstance) (*Dashboard, error) {
	if id == "" {
		return nil, apperrors.Validation("dashboardId is required")
	}
	if widget == nil {
		return nil, apperrors.Validation("widget is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	updated, err := s.Repo.PushWidget(ctx, oid, *widget)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	s.Bus.Publish(EventUpdated, updated)
	return updated, nil
}

// RemoveWidget drops the matching instance and prunes the order entry in a
// single persistence call.
func (s *DashboardServiceImpl) RemoveWidget(ctx context.Context, id, widgetID string) (*Dashboard, error) {
	if widgetID == "" {
		return nil, apperrors.Validation("widgetId is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	updated, err := s.Repo.PullWidget(ctx, oid, widgetID)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	s.Bus.Publish(EventUpdated, updated)
	return updated, nil
}

// UpdateWidgetSettings replaces the instance's settings wholesale.
func (s *DashboardServiceImpl) UpdateWidgetSettings(ctx context.Context, id, widgetID string, value map[string]interface{}) (*Dashboard, error) {
	if id == "" {
		return nil, apperrors.Validation("dashboardId is required")
	}
	if widgetID == "" {
		return nil, apperrors.Validation("widgetId is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	updated, err := s.Repo.SetWidgetSettings(ctx, oid, widgetID, value)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if updated == nil {
		return nil, s.widgetMissError(ctx, oid)
	}

	s.Bus.Publish(EventUpdated, updated)
	return updated, nil
}

// UpdateWidgetColumns merges {columns} into the instance's settings,
// leaving every other key untouched.
func (s *DashboardServiceImpl) UpdateWidgetColumns(ctx context.Context, id, widgetID string, columns interface{}) (*Dashboard, error) {
	if id == "" {
		return nil, apperrors.Validation("dashboardId is required")
	}
	if widgetID == "" {
		return nil, apperrors.Validation("widgetId is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, apperrors.NotFound("dashboard not found")
	}

	updated, err := s.Repo.SetWidgetColumns(ctx, oid, widgetID, columns)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if updated == nil {
		return nil, s.widgetMissError(ctx, oid)
	}

	s.Bus.Publish(EventUpdated, updated)
	return updated, nil
}

// widgetMissError tells the dashboard-missing case apart from the
// widget-missing one after a combined filter came back empty.
func (s *DashboardServiceImpl) widgetMissError(ctx context.Context, id primitive.ObjectID) error {
	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return apperrors.Persistence(err)
	}
	if d == nil {
		return apperrors.NotFound("dashboard not found")
	}
	return apperrors.NotFound("Widget has not been found")
}

// ReorderDashboards persists the id list as the user's dashboard order
// preference in the configuration store.
func (s *DashboardServiceImpl) ReorderDashboards(ctx context.Context, userID string, order []string) error {
	return s.Settings.SetDashboardOrder(ctx, userID, order)
}

// CreateDefaultDashboard provisions the user's "default" dashboard, keyed
// by the user's own id so the operation is idempotent, seeded from the
// widget types flagged default in the user's configuration.
func (s *DashboardServiceImpl) CreateDefaultDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	creator, err := parseID(userID)
	if err != nil {
		return nil, apperrors.Validation("userId is malformed")
	}

	existing, err := s.Repo.Get(ctx, creator)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if existing != nil {
		return existing, nil
	}

	defaults, err := s.Settings.GetDefaultWidgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	instances := make([]WidgetInstance, 0, len(defaults))
	for _, w := range defaults {
		instances = append(instances, WidgetInstance{
			ID:       uuid.NewString(),
			Type:     w.Type,
			Settings: w.Settings,
		})
	}

	return s.Create(ctx, &Dashboard{
		ID:      creator,
		Name:    DefaultName,
		Creator: creator,
		Widgets: WidgetCollection{Instances: instances},
	})
}

func (s *DashboardServiceImpl) CheckDefaultDashboardExists(ctx context.Context, userID string) (bool, error) {
	creator, err := parseID(userID)
	if err != nil {
		return false, apperrors.Validation("userId is malformed")
	}

	d, err := s.Repo.GetForUser(ctx, creator, creator)
	if err != nil {
		return false, apperrors.Persistence(err)
	}
	return d != nil, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}
