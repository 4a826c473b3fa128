package settings

import (
	"context"

	"go-dashboard/internal/common/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SettingsService resolves the per-user configuration the dashboard
// denormalization depends on: widget type defaults and the preferred
// dashboard order.
type SettingsService interface {
	GetWidgetSettings(ctx context.Context, userID string, inherited bool) ([]WidgetTypeDefault, error)
	GetDashboardSettings(ctx context.Context, userID string) (map[string]interface{}, error)
	GetDefaultWidgets(ctx context.Context, userID string) ([]WidgetTypeDefault, error)
	GetDashboardOrder(ctx context.Context, userID string) ([]string, error)
	SetDashboardOrder(ctx context.Context, userID string, order []string) error
}

type SettingsServiceImpl struct {
	Repo ConfigRepository
	Log  *zap.Logger
}

func NewSettingsService(repo ConfigRepository, log *zap.Logger) SettingsService {
	return &SettingsServiceImpl{
		Repo: repo,
		Log:  log,
	}
}

func (s *SettingsServiceImpl) GetWidgetSettings(ctx context.Context, userID string, inherited bool) ([]WidgetTypeDefault, error) {
	value, err := s.get(ctx, userID, KeyWidgets, inherited)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []WidgetTypeDefault{}, nil
	}

	var decoded struct {
		V []WidgetTypeDefault `bson:"v"`
	}
	if err := decodeValue(value, &decoded); err != nil {
		return nil, apperrors.Persistence(err)
	}
	if decoded.V == nil {
		return []WidgetTypeDefault{}, nil
	}
	return decoded.V, nil
}

// GetDashboardSettings has no stored counterpart yet. It exists so the
// settings endpoint answers a complete document.
func (s *SettingsServiceImpl) GetDashboardSettings(ctx context.Context, userID string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

// GetDefaultWidgets returns the widget type defaults flagged for
// pre-population of the default dashboard. Resolution failures degrade to
// an empty list so provisioning never blocks login.
func (s *SettingsServiceImpl) GetDefaultWidgets(ctx context.Context, userID string) ([]WidgetTypeDefault, error) {
	widgets, err := s.GetWidgetSettings(ctx, userID, true)
	if err != nil {
		s.Log.Warn("falling back to empty default widgets", zap.Error(err))
		return []WidgetTypeDefault{}, nil
	}

	defaults := make([]WidgetTypeDefault, 0, len(widgets))
	for _, widget := range widgets {
		if widget.Default {
			defaults = append(defaults, widget)
		}
	}
	return defaults, nil
}

func (s *SettingsServiceImpl) GetDashboardOrder(ctx context.Context, userID string) ([]string, error) {
	value, err := s.get(ctx, userID, KeyDashboards, true)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var decoded struct {
		V DashboardPreferences `bson:"v"`
	}
	if err := decodeValue(value, &decoded); err != nil {
		return nil, apperrors.Persistence(err)
	}
	return decoded.V.Order, nil
}

func (s *SettingsServiceImpl) SetDashboardOrder(ctx context.Context, userID string, order []string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.Validation("userId is malformed")
	}
	if order == nil {
		order = []string{}
	}

	if err := s.Repo.SetKey(ctx, &oid, ModuleName, KeyDashboards, "order", order); err != nil {
		return apperrors.Persistence(err)
	}
	return nil
}

// get reads the user-scoped value, falling through to the platform-wide
// one when inherited is set and the user has no override.
func (s *SettingsServiceImpl) get(ctx context.Context, userID, name string, inherited bool) (interface{}, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validation("userId is malformed")
	}

	value, err := s.Repo.Get(ctx, &oid, ModuleName, name)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	if value != nil || !inherited {
		return value, nil
	}

	value, err = s.Repo.Get(ctx, nil, ModuleName, name)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return value, nil
}

// decodeValue converts a raw configuration value (a bson tree once it has
// been round-tripped through Mongo) into a typed struct. The value is
// wrapped in a document because bson cannot marshal a bare array.
func decodeValue(value interface{}, out interface{}) error {
	raw, err := bson.Marshal(bson.M{"v": value})
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
