package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		want          Page
	}{
		{"defaults", 0, 0, Page{Limit: 20, Offset: 0}},
		{"explicit", 5, 10, Page{Limit: 5, Offset: 10}},
		{"clamped to max", 1000, 0, Page{Limit: 100, Offset: 0}},
		{"negative values", -1, -7, Page{Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPage(tt.limit, tt.offset, 20, 100))
		})
	}
}
