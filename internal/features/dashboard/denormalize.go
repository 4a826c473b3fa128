package dashboard

import (
	"sort"

	"go-dashboard/internal/features/settings"
)

// OrderWidgets returns the instances permuted for display: instances the
// order list does not mention come first, keeping their stored relative
// sequence, followed by the mentioned ones in order-list sequence. Order
// entries without a matching instance are inert.
func OrderWidgets(collection WidgetCollection) []WidgetInstance {
	position := orderIndex(collection.Order)

	result := make([]WidgetInstance, 0, len(collection.Instances))
	var listed []WidgetInstance

	for _, widget := range collection.Instances {
		if _, ok := position[widget.ID]; ok {
			listed = append(listed, widget)
		} else {
			result = append(result, widget)
		}
	}

	sort.SliceStable(listed, func(i, j int) bool {
		return position[listed[i].ID] < position[listed[j].ID]
	})

	return append(result, listed...)
}

// OrderDashboards applies the same ordering to dashboards by id. An empty
// order short-circuits to the input untouched.
func OrderDashboards(dashboards []Dashboard, order []string) []Dashboard {
	if len(order) == 0 {
		return dashboards
	}

	position := orderIndex(order)

	result := make([]Dashboard, 0, len(dashboards))
	var listed []Dashboard

	for _, d := range dashboards {
		if _, ok := position[d.ID.Hex()]; ok {
			listed = append(listed, d)
		} else {
			result = append(result, d)
		}
	}

	sort.SliceStable(listed, func(i, j int) bool {
		return position[listed[i].ID.Hex()] < position[listed[j].ID.Hex()]
	})

	return append(result, listed...)
}

func orderIndex(order []string) map[string]int {
	position := make(map[string]int, len(order))
	for i, id := range order {
		// first occurrence wins on duplicates
		if _, ok := position[id]; !ok {
			position[id] = i
		}
	}
	return position
}

// MergeSettings lays the type defaults down first and the instance's own
// settings on top, key by key. One level only: nested objects are replaced
// wholesale.
func MergeSettings(instanceSettings, typeDefaults map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(instanceSettings)+len(typeDefaults))
	for key, value := range typeDefaults {
		merged[key] = value
	}
	for key, value := range instanceSettings {
		merged[key] = value
	}
	return merged
}

// DenormalizeDashboard rewrites the dashboard's widget list into its display
// form: ordered, with type defaults merged under the stored settings. This
// is a read-time view; nothing is persisted.
func DenormalizeDashboard(d *Dashboard, widgetDefaults []settings.WidgetTypeDefault) *Dashboard {
	widgets := OrderWidgets(d.Widgets)

	for i := range widgets {
		widgets[i].Settings = MergeSettings(widgets[i].Settings, settingsForType(widgetDefaults, widgets[i].Type))
	}

	d.Widgets.Instances = widgets
	return d
}

// DenormalizeDashboards orders the dashboards by the user's preference and
// denormalizes each one.
func DenormalizeDashboards(dashboards []Dashboard, order []string, widgetDefaults []settings.WidgetTypeDefault) []Dashboard {
	ordered := OrderDashboards(dashboards, order)
	for i := range ordered {
		DenormalizeDashboard(&ordered[i], widgetDefaults)
	}
	return ordered
}

func settingsForType(widgetDefaults []settings.WidgetTypeDefault, widgetType string) map[string]interface{} {
	for _, d := range widgetDefaults {
		if d.Type == widgetType {
			return d.Settings
		}
	}
	return nil
}
