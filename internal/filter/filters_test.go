package filter

import (
	"testing"

	"github.com/siahsang/news/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		limit int64
		page  int64
		want  int64
	}{
		{10, 1, 0},
		{10, 2, 10},
		{5, 3, 10},
		{25, 4, 75},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewFilter(tt.limit, tt.page).Offset())
	}
}

func TestDefault(t *testing.T) {
	f := Default()

	assert.Equal(t, int64(DefaultLimit), f.Limit)
	assert.Equal(t, int64(DefaultPage), f.Page)
	assert.Equal(t, int64(0), f.Offset())
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		page    int64
		isValid bool
	}{
		{"defaults", DefaultLimit, DefaultPage, true},
		{"upper bounds", 100, 10_000_000, true},
		{"zero limit", 0, 1, false},
		{"negative limit", -5, 1, false},
		{"limit too large", 101, 1, false},
		{"zero page", 10, 0, false},
		{"negative page", 10, -1, false},
		{"page too large", 10, 10_000_001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateFilters(NewFilter(tt.limit, tt.page), v)
			assert.Equal(t, tt.isValid, v.IsValid())
		})
	}
}
