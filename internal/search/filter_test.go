package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func float(v float64) *float64 { return &v }

func TestFilterNoCriteriaKeepsEverything(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "أ", Price: 10},
		{ID: "2", Name: "ب"},
	}

	got := Filter(products, Criteria{})
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestFilterPriceRange(t *testing.T) {
	products := []Product{
		{ID: "cheap", Price: 10},
		{ID: "mid", Price: 50},
		{ID: "dear", Price: 500},
		{ID: "unpriced"}, // missing price behaves like 0
	}

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"min only", Criteria{MinPrice: float(20)}, []string{"mid", "dear"}},
		{"max only", Criteria{MaxPrice: float(50)}, []string{"cheap", "mid", "unpriced"}},
		{"inclusive bounds", Criteria{MinPrice: float(10), MaxPrice: float(500)}, []string{"cheap", "mid", "dear"}},
		{"unpriced passes zero min", Criteria{MinPrice: float(0), MaxPrice: float(5)}, []string{"unpriced"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(products, tt.c)))
		})
	}
}

func TestFilterCategorySelection(t *testing.T) {
	products := []Product{
		{ID: "1", CategoryID: "c1"},
		{ID: "2", CategoryID: "c2"},
		{ID: "3"},
	}

	got := Filter(products, Criteria{CategoryIDs: []string{"c1", "c2"}})
	assert.Equal(t, []string{"1", "2"}, ids(got))

	got = Filter(products, Criteria{ActiveCategory: "c2"})
	assert.Equal(t, []string{"2"}, ids(got))

	// Both constraints must hold at once.
	got = Filter(products, Criteria{CategoryIDs: []string{"c1"}, ActiveCategory: "c2"})
	assert.Empty(t, got)
}

func TestFilterCombinesWithRank(t *testing.T) {
	categories := []Category{{ID: "c1", Name: "أطفال"}}
	products := []Product{
		{ID: "1", Name: "زيت أطفال", Price: 80, CategoryID: "c1"},
		{ID: "2", Name: "زيت الزيتون", Price: 300, CategoryID: "c2"},
	}

	filtered := Filter(products, Criteria{MaxPrice: float(100)})
	got := Rank("زيت", filtered, categories)
	assert.Equal(t, []string{"1"}, ids(got))
}
