package settings

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModuleName scopes every configuration document this service owns.
const ModuleName = "dashboard"

const (
	KeyWidgets    = "widgets"
	KeyDashboards = "dashboards"
)

// WidgetTypeDefault is one entry of the per-user "widgets" configuration:
// defaults applied to every widget instance of the matching type.
// Enabled and Configurable default to true when absent from the stored
// document, hence the pointers.
type WidgetTypeDefault struct {
	Type         string                 `json:"type" bson:"type"`
	Enabled      *bool                  `json:"enabled,omitempty" bson:"enabled,omitempty"`
	Configurable *bool                  `json:"configurable,omitempty" bson:"configurable,omitempty"`
	Default      bool                   `json:"default,omitempty" bson:"default,omitempty"`
	Settings     map[string]interface{} `json:"settings,omitempty" bson:"settings,omitempty"`
}

func (w WidgetTypeDefault) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

func (w WidgetTypeDefault) IsConfigurable() bool {
	return w.Configurable == nil || *w.Configurable
}

// DashboardPreferences is the per-user "dashboards" configuration value.
type DashboardPreferences struct {
	Order []string `json:"order,omitempty" bson:"order,omitempty"`
}

// Configuration is one stored setting. UserID nil means the value is
// platform wide and acts as the fallback for inherited reads.
type Configuration struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID    *primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Module    string              `json:"module" bson:"module"`
	Name      string              `json:"name" bson:"name"`
	Value     interface{}         `json:"value" bson:"value"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}
