package dashboard

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain events published on successful mutations.
const (
	EventCreated = "dashboard:created"
	EventUpdated = "dashboard:updated"
	EventDeleted = "dashboard:deleted"
)

const (
	DefaultName   = "default"
	DefaultOffset = 0
	DefaultLimit  = 20
)

// WidgetInstance is one configured panel on a dashboard. The id is chosen
// by the caller and is only unique within the dashboard. Settings carry
// whatever the widget type needs; there is no fixed schema.
type WidgetInstance struct {
	ID       string                 `json:"id" bson:"id" validate:"required"`
	Type     string                 `json:"type" bson:"type" validate:"required"`
	Settings map[string]interface{} `json:"settings,omitempty" bson:"settings,omitempty"`
}

// WidgetCollection holds the widget instances in arrival order plus the
// advisory display order. The order list may reference ids that no longer
// exist and may miss ids that do; both are tolerated everywhere.
type WidgetCollection struct {
	Instances []WidgetInstance `json:"instances" bson:"instances"`
	Order     []string         `json:"order,omitempty" bson:"order,omitempty"`
}

// Append adds a widget at the end of the instance list. Duplicate ids are
// not rejected at this level.
func (c *WidgetCollection) Append(widget WidgetInstance) {
	c.Instances = append(c.Instances, widget)
}

// Find returns a pointer into the instance list, or nil.
func (c *WidgetCollection) Find(widgetID string) *WidgetInstance {
	for i := range c.Instances {
		if c.Instances[i].ID == widgetID {
			return &c.Instances[i]
		}
	}
	return nil
}

// Remove drops every instance with the given id and prunes the id from the
// order list in the same step, so the two never show a split state.
func (c *WidgetCollection) Remove(widgetID string) bool {
	removed := false

	instances := c.Instances[:0]
	for _, widget := range c.Instances {
		if widget.ID == widgetID {
			removed = true
			continue
		}
		instances = append(instances, widget)
	}
	c.Instances = instances

	order := c.Order[:0]
	for _, id := range c.Order {
		if id == widgetID {
			continue
		}
		order = append(order, id)
	}
	c.Order = order

	return removed
}

// ReplaceOrder swaps the order list wholesale; it is never merged.
func (c *WidgetCollection) ReplaceOrder(order []string) {
	if order == nil {
		order = []string{}
	}
	c.Order = order
}

// Dashboard is the root aggregate: it owns its widget collection, no
// widget is shared across dashboards.
type Dashboard struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Creator   primitive.ObjectID `json:"creator" bson:"creator"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	Widgets   WidgetCollection   `json:"widgets" bson:"widgets"`
}
