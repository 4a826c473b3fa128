package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name       string
		offset     int64
		limit      int64
		wantOffset int64
		wantLimit  int64
	}{
		{name: "zero values take defaults", offset: 0, limit: 0, wantOffset: 0, wantLimit: 20},
		{name: "negative offset resets", offset: -5, limit: 10, wantOffset: 0, wantLimit: 10},
		{name: "explicit paging kept", offset: 40, limit: 5, wantOffset: 40, wantLimit: 5},
		{name: "negative limit resets", offset: 2, limit: -1, wantOffset: 2, wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := normalizePaging(tt.offset, tt.limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
