package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidgetCollectionRemove(t *testing.T) {
	tests := []struct {
		name          string
		collection    WidgetCollection
		remove        string
		wantRemoved   bool
		wantInstances []string
		wantOrder     []string
	}{
		{
			name: "removal prunes the order entry too",
			collection: WidgetCollection{
				Instances: widgets("1", "2"),
				Order:     []string{"1", "2", "lost"},
			},
			remove:        "1",
			wantRemoved:   true,
			wantInstances: []string{"2"},
			wantOrder:     []string{"2", "lost"},
		},
		{
			name: "unknown id removes nothing",
			collection: WidgetCollection{
				Instances: widgets("1"),
				Order:     []string{"1"},
			},
			remove:        "nope",
			wantRemoved:   false,
			wantInstances: []string{"1"},
			wantOrder:     []string{"1"},
		},
		{
			name: "duplicate instances all go",
			collection: WidgetCollection{
				Instances: widgets("1", "2", "1"),
				Order:     []string{"1", "2"},
			},
			remove:        "1",
			wantRemoved:   true,
			wantInstances: []string{"2"},
			wantOrder:     []string{"2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			removed := tt.collection.Remove(tt.remove)
			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, tt.wantInstances, widgetIDs(tt.collection.Instances))
			assert.Equal(t, tt.wantOrder, tt.collection.Order)
		})
	}
}

func TestWidgetCollectionAppendAllowsDuplicates(t *testing.T) {
	var c WidgetCollection
	c.Append(WidgetInstance{ID: "w", Type: "rss"})
	c.Append(WidgetInstance{ID: "w", Type: "email"})

	assert.Len(t, c.Instances, 2)
}

func TestWidgetCollectionFind(t *testing.T) {
	c := WidgetCollection{Instances: widgets("a", "b")}

	found := c.Find("b")
	assert.NotNil(t, found)
	assert.Equal(t, "b", found.ID)

	assert.Nil(t, c.Find("missing"))
}

func TestWidgetCollectionReplaceOrder(t *testing.T) {
	c := WidgetCollection{Order: []string{"1", "2"}}

	c.ReplaceOrder([]string{"9"})
	assert.Equal(t, []string{"9"}, c.Order)

	c.ReplaceOrder(nil)
	assert.Equal(t, []string{}, c.Order)
}
