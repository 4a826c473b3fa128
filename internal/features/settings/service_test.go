package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type storedValue struct {
	module string
	name   string
	user   string // empty for platform scope
}

type fakeConfigRepo struct {
	values map[storedValue]interface{}
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{values: make(map[storedValue]interface{})}
}

func key(userID *primitive.ObjectID, module, name string) storedValue {
	k := storedValue{module: module, name: name}
	if userID != nil {
		k.user = userID.Hex()
	}
	return k
}

func (r *fakeConfigRepo) Get(ctx context.Context, userID *primitive.ObjectID, module, name string) (interface{}, error) {
	return r.values[key(userID, module, name)], nil
}

func (r *fakeConfigRepo) Set(ctx context.Context, userID *primitive.ObjectID, module, name string, value interface{}) error {
	r.values[key(userID, module, name)] = value
	return nil
}

func (r *fakeConfigRepo) SetKey(ctx context.Context, userID *primitive.ObjectID, module, name, k string, value interface{}) error {
	existing, _ := r.values[key(userID, module, name)].(map[string]interface{})
	if existing == nil {
		existing = map[string]interface{}{}
	}
	existing[k] = value
	r.values[key(userID, module, name)] = existing
	return nil
}

func TestGetWidgetSettings(t *testing.T) {
	repo := newFakeConfigRepo()
	service := NewSettingsService(repo, zap.NewNop())
	user := primitive.NewObjectID()

	t.Run("missing config yields empty list", func(t *testing.T) {
		widgets, err := service.GetWidgetSettings(context.Background(), user.Hex(), false)
		require.NoError(t, err)
		assert.Empty(t, widgets)
	})

	t.Run("user scoped value decodes", func(t *testing.T) {
		require.NoError(t, repo.Set(context.Background(), &user, ModuleName, KeyWidgets, []WidgetTypeDefault{
			{Type: "rss", Settings: map[string]interface{}{"url": "http://feed"}},
		}))

		widgets, err := service.GetWidgetSettings(context.Background(), user.Hex(), false)
		require.NoError(t, err)
		require.Len(t, widgets, 1)
		assert.Equal(t, "rss", widgets[0].Type)
		assert.Equal(t, map[string]interface{}{"url": "http://feed"}, widgets[0].Settings)
	})

	t.Run("malformed user id rejects", func(t *testing.T) {
		_, err := service.GetWidgetSettings(context.Background(), "not-an-id", false)
		assert.Error(t, err)
	})
}

func TestGetWidgetSettingsInheritsPlatformValue(t *testing.T) {
	repo := newFakeConfigRepo()
	service := NewSettingsService(repo, zap.NewNop())
	user := primitive.NewObjectID()

	require.NoError(t, repo.Set(context.Background(), nil, ModuleName, KeyWidgets, []WidgetTypeDefault{
		{Type: "calendar", Default: true},
	}))

	t.Run("non-inherited read misses", func(t *testing.T) {
		widgets, err := service.GetWidgetSettings(context.Background(), user.Hex(), false)
		require.NoError(t, err)
		assert.Empty(t, widgets)
	})

	t.Run("inherited read falls through", func(t *testing.T) {
		widgets, err := service.GetWidgetSettings(context.Background(), user.Hex(), true)
		require.NoError(t, err)
		require.Len(t, widgets, 1)
		assert.Equal(t, "calendar", widgets[0].Type)
	})

	t.Run("user override shadows platform value", func(t *testing.T) {
		require.NoError(t, repo.Set(context.Background(), &user, ModuleName, KeyWidgets, []WidgetTypeDefault{
			{Type: "rss"},
		}))

		widgets, err := service.GetWidgetSettings(context.Background(), user.Hex(), true)
		require.NoError(t, err)
		require.Len(t, widgets, 1)
		assert.Equal(t, "rss", widgets[0].Type)
	})
}

func TestGetDefaultWidgetsFiltersDefaultFlag(t *testing.T) {
	repo := newFakeConfigRepo()
	service := NewSettingsService(repo, zap.NewNop())
	user := primitive.NewObjectID()

	require.NoError(t, repo.Set(context.Background(), &user, ModuleName, KeyWidgets, []WidgetTypeDefault{
		{Type: "rss", Default: true},
		{Type: "email"},
		{Type: "calendar", Default: true},
	}))

	defaults, err := service.GetDefaultWidgets(context.Background(), user.Hex())
	require.NoError(t, err)

	types := []string{}
	for _, w := range defaults {
		types = append(types, w.Type)
	}
	assert.Equal(t, []string{"rss", "calendar"}, types)
}

func TestDashboardOrderRoundTrip(t *testing.T) {
	repo := newFakeConfigRepo()
	service := NewSettingsService(repo, zap.NewNop())
	user := primitive.NewObjectID()

	order, err := service.GetDashboardOrder(context.Background(), user.Hex())
	require.NoError(t, err)
	assert.Nil(t, order)

	require.NoError(t, service.SetDashboardOrder(context.Background(), user.Hex(), []string{"b", "a"}))

	order, err = service.GetDashboardOrder(context.Background(), user.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestWidgetTypeDefaultFlags(t *testing.T) {
	enabled := false

	assert.True(t, WidgetTypeDefault{}.IsEnabled())
	assert.True(t, WidgetTypeDefault{}.IsConfigurable())
	assert.False(t, WidgetTypeDefault{Enabled: &enabled}.IsEnabled())
	assert.False(t, WidgetTypeDefault{Configurable: &enabled}.IsConfigurable())
}
