package dashboard

import (
	"testing"

	"go-dashboard/internal/features/settings"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func widgets(ids ...string) []WidgetInstance {
	result := make([]WidgetInstance, 0, len(ids))
	for _, id := range ids {
		result = append(result, WidgetInstance{ID: id, Type: "rss"})
	}
	return result
}

func widgetIDs(instances []WidgetInstance) []string {
	ids := make([]string, 0, len(instances))
	for _, w := range instances {
		ids = append(ids, w.ID)
	}
	return ids
}

func TestOrderWidgets(t *testing.T) {
	tests := []struct {
		name      string
		instances []WidgetInstance
		order     []string
		want      []string
	}{
		{
			name:      "explicit order is applied",
			instances: widgets("2", "3", "1"),
			order:     []string{"3", "2", "1"},
			want:      []string{"3", "2", "1"},
		},
		{
			name:      "unordered instances surface first",
			instances: widgets("4", "2", "3", "1"),
			order:     []string{"3", "2", "1"},
			want:      []string{"4", "3", "2", "1"},
		},
		{
			name:      "empty order keeps stored sequence",
			instances: widgets("b", "a", "c"),
			order:     nil,
			want:      []string{"b", "a", "c"},
		},
		{
			name:      "order entries without instances are inert",
			instances: widgets("1", "2"),
			order:     []string{"lost", "2", "gone", "1"},
			want:      []string{"2", "1"},
		},
		{
			name:      "multiple unordered keep relative sequence",
			instances: widgets("x", "1", "y", "2"),
			order:     []string{"2", "1"},
			want:      []string{"x", "y", "2", "1"},
		},
		{
			name:      "no instances",
			instances: nil,
			order:     []string{"1"},
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderWidgets(WidgetCollection{Instances: tt.instances, Order: tt.order})
			assert.Equal(t, tt.want, widgetIDs(got))
		})
	}
}

func TestOrderWidgetsRespectsAllOrderedPairs(t *testing.T) {
	instances := widgets("5", "3", "1", "4", "2")
	order := []string{"2", "4", "1", "3", "5"}

	got := widgetIDs(OrderWidgets(WidgetCollection{Instances: instances, Order: order}))

	position := map[string]int{}
	for i, id := range got {
		position[id] = i
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			assert.Less(t, position[order[i]], position[order[j]],
				"%s should precede %s", order[i], order[j])
		}
	}
}

func TestOrderDashboards(t *testing.T) {
	a := Dashboard{ID: primitive.NewObjectID(), Name: "a"}
	b := Dashboard{ID: primitive.NewObjectID(), Name: "b"}
	c := Dashboard{ID: primitive.NewObjectID(), Name: "c"}

	t.Run("empty order short-circuits", func(t *testing.T) {
		input := []Dashboard{b, a, c}
		got := OrderDashboards(input, nil)
		assert.Equal(t, input, got)
	})

	t.Run("preference is applied", func(t *testing.T) {
		got := OrderDashboards([]Dashboard{a, b, c}, []string{c.ID.Hex(), a.ID.Hex(), b.ID.Hex()})
		assert.Equal(t, []Dashboard{c, a, b}, got)
	})

	t.Run("unlisted dashboards come first", func(t *testing.T) {
		got := OrderDashboards([]Dashboard{a, b, c}, []string{c.ID.Hex(), b.ID.Hex()})
		assert.Equal(t, []Dashboard{a, c, b}, got)
	})
}

func TestMergeSettings(t *testing.T) {
	tests := []struct {
		name     string
		instance map[string]interface{}
		defaults map[string]interface{}
		want     map[string]interface{}
	}{
		{
			name:     "instance wins on conflict",
			instance: map[string]interface{}{"a": 1, "b": 2},
			defaults: map[string]interface{}{"b": 9, "c": 3},
			want:     map[string]interface{}{"a": 1, "b": 2, "c": 3},
		},
		{
			name:     "nil instance keeps defaults",
			instance: nil,
			defaults: map[string]interface{}{"url": "http://feed"},
			want:     map[string]interface{}{"url": "http://feed"},
		},
		{
			name:     "nil defaults keeps instance",
			instance: map[string]interface{}{"limit": 5},
			defaults: nil,
			want:     map[string]interface{}{"limit": 5},
		},
		{
			name:     "nested values replaced wholesale",
			instance: map[string]interface{}{"filter": map[string]interface{}{"unread": true}},
			defaults: map[string]interface{}{"filter": map[string]interface{}{"unread": false, "starred": true}},
			want:     map[string]interface{}{"filter": map[string]interface{}{"unread": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeSettings(tt.instance, tt.defaults))
		})
	}
}

func TestDenormalizeDashboard(t *testing.T) {
	d := &Dashboard{
		ID:   primitive.NewObjectID(),
		Name: "home",
		Widgets: WidgetCollection{
			Instances: []WidgetInstance{
				{ID: "w2", Type: "rss", Settings: map[string]interface{}{"url": "http://mine"}},
				{ID: "w1", Type: "email"},
			},
			Order: []string{"w1", "w2"},
		},
	}

	defaults := []settings.WidgetTypeDefault{
		{Type: "rss", Settings: map[string]interface{}{"url": "http://default", "limit": 10}},
	}

	got := DenormalizeDashboard(d, defaults)

	assert.Equal(t, []string{"w1", "w2"}, widgetIDs(got.Widgets.Instances))
	// email has no defaults bucket
	assert.Equal(t, map[string]interface{}{}, got.Widgets.Instances[0].Settings)
	// stored url wins, default limit fills in
	assert.Equal(t, map[string]interface{}{"url": "http://mine", "limit": 10}, got.Widgets.Instances[1].Settings)
}

func TestDenormalizeDashboards(t *testing.T) {
	first := Dashboard{ID: primitive.NewObjectID(), Name: "first", Widgets: WidgetCollection{
		Instances: widgets("b", "a"),
		Order:     []string{"a", "b"},
	}}
	second := Dashboard{ID: primitive.NewObjectID(), Name: "second"}

	got := DenormalizeDashboards([]Dashboard{first, second}, []string{second.ID.Hex(), first.ID.Hex()}, nil)

	assert.Equal(t, "second", got[0].Name)
	assert.Equal(t, "first", got[1].Name)
	assert.Equal(t, []string{"a", "b"}, widgetIDs(got[1].Widgets.Instances))
}
