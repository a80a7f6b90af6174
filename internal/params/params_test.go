package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantPage   int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 12, wantPage: 1, wantOffset: 0},
		{name: "explicit values", query: "limit=24&page=3", wantLimit: 24, wantPage: 3, wantOffset: 48},
		{name: "limit capped", query: "limit=500", wantLimit: 96, wantPage: 1, wantOffset: 0},
		{name: "non positive limit falls back", query: "limit=-5", wantLimit: 12, wantPage: 1, wantOffset: 0},
		{name: "non numeric input ignored", query: "limit=abc&page=xyz", wantLimit: 12, wantPage: 1, wantOffset: 0},
		{name: "zero page falls back", query: "page=0", wantLimit: 12, wantPage: 1, wantOffset: 0},
		{name: "whitespace trimmed", query: "limit=+20+&page=+2+", wantLimit: 20, wantPage: 2, wantOffset: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			p := ParsePagination(q)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 12, Page: 2, Offset: 12}
	p.ComputeMeta(30)

	assert.Equal(t, 30, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = Pagination{Limit: 12, Page: 3, Offset: 24}
	p.ComputeMeta(30)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = Pagination{Limit: 12, Page: 1}
	p.ComputeMeta(0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
