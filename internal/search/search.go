// Package search implements the storefront product search: Arabic-aware text
// normalization, tiered relevance ranking, autocomplete suggestions and the
// structural filter/pagination pipeline, all as pure functions over in-memory
// catalog snapshots. Callers re-run the pipeline whenever the query or the
// underlying collections change.
package search

// Category is the slice of a catalog category the engine needs.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is the searchable view of a catalog product. Absent optional
// fields are represented by their zero values: the engine treats a missing
// description as "no description tier" and a missing price as 0.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// SuggestionKind tags a Suggestion as either a concrete product or a bare
// search term the user may want to complete to.
type SuggestionKind string

const (
	KindProduct SuggestionKind = "product"
	KindTerm    SuggestionKind = "term"
)

// Suggestion is one autocomplete entry. Product is set when Kind is
// KindProduct, Term when Kind is KindTerm.
type Suggestion struct {
	Kind    SuggestionKind `json:"kind"`
	Product *Product       `json:"product,omitempty"`
	Term    string         `json:"text,omitempty"`
}
