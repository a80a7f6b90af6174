package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbered(n int) []Product {
	out := make([]Product, n)
	for i := range out {
		out[i] = Product{ID: fmt.Sprintf("%d", i+1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := numbered(7)

	tests := []struct {
		name string
		page int
		size int
		want []string
	}{
		{"first page", 1, 3, []string{"1", "2", "3"}},
		{"middle page", 2, 3, []string{"4", "5", "6"}},
		{"last page remainder", 3, 3, []string{"7"}},
		{"page past the end", 4, 3, []string{}},
		{"page zero clamps to first", 0, 3, []string{"1", "2", "3"}},
		{"size covers everything", 1, 100, []string{"1", "2", "3", "4", "5", "6", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Paginate(items, tt.page, tt.size)))
		})
	}
}

func TestPaginateDefaultsSize(t *testing.T) {
	items := numbered(DefaultPageSize + 1)
	got := Paginate(items, 1, 0)
	assert.Len(t, got, DefaultPageSize)
}

func TestPaginateEmptyInput(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Empty(t, Paginate(nil, 1, 10))
		assert.Empty(t, Paginate([]Product{}, 5, 10))
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 3, TotalPages(25, 12))
}
