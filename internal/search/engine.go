package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Per-term scores, grouped by tier. A product is scored by the first tier it
// qualifies for and is never reconsidered by a later tier.
const (
	// Exact tier: a query term equals the whole product name.
	scoreExactName = 200

	// Name tier: best applicable case per term.
	scoreNameEquals   = 150
	scoreNamePrefix   = 120
	scoreNameContains = 100
	scoreWordPrefix   = 80

	// Category tier.
	scoreCategoryEquals   = 90
	scoreCategoryPrefix   = 70
	scoreCategoryContains = 50

	// Description tier.
	scoreDescriptionWordStart = 30
	scoreDescriptionContains  = 15

	// Tier dampening, applied before the threshold so a category or
	// description hit can never outrank a direct name hit.
	categoryWeight    = 0.9
	descriptionWeight = 0.7

	minScore           = 30
	maxTopProducts     = 5
	maxSuggestions     = 8
	maxTermSuggestions = 3

	// Terms this short are ignored when collecting term suggestions.
	minSuggestTermRunes = 3
)

type candidate struct {
	index int // position in the input slice; keeps ties deterministic
	score float64
}

// Rank scores every product against the query and returns the full ranked
// order: final score >= minScore, descending, with ties preserving input
// order. An empty or whitespace-only query returns the input unchanged so
// the caller's structural filtering stays authoritative.
func Rank(query string, products []Product, categories []Category) []Product {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return products
	}

	categoryNames := indexCategoryNames(categories)
	matchers := boundaryMatchers(terms)

	ranked := make([]candidate, 0, len(products))
	for i := range products {
		score := scoreProduct(&products[i], terms, categoryNames, matchers)
		if score >= minScore {
			ranked = append(ranked, candidate{index: i, score: score})
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	out := make([]Product, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, products[c.index])
	}
	return out
}

// Suggest returns the autocomplete entries for a query: the top ranked
// products first, then up to maxTermSuggestions bare search terms drawn from
// product names, category names and the query itself. The combined list is
// capped at maxSuggestions. Empty queries and queries matching no product or
// category yield nothing.
func Suggest(query string, products []Product, categories []Category) []Suggestion {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	top := Rank(query, products, categories)
	if len(top) > maxTopProducts {
		top = top[:maxTopProducts]
	}

	suggestions := make([]Suggestion, 0, maxSuggestions)
	for i := range top {
		p := top[i]
		suggestions = append(suggestions, Suggestion{Kind: KindProduct, Product: &p})
	}

	categoryNames := indexCategoryNames(categories)
	for _, term := range collectTerms(terms, products, categories, top, categoryNames) {
		suggestions = append(suggestions, Suggestion{Kind: KindTerm, Term: term})
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// indexCategoryNames builds the id -> normalized name lookup used by the
// category tier. Products referencing a missing id simply find no entry.
func indexCategoryNames(categories []Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = Normalize(c.Name)
	}
	return names
}

func scoreProduct(p *Product, terms []string, categoryNames map[string]string, matchers []*regexp.Regexp) float64 {
	name := Normalize(p.Name)

	for _, term := range terms {
		if name == term {
			return scoreExactName
		}
	}

	if s := scoreName(name, terms); s > 0 {
		return s
	}

	if catName, ok := categoryNames[p.CategoryID]; ok && p.CategoryID != "" {
		if s := scoreCategory(catName, terms); s > 0 {
			return s * categoryWeight
		}
	}

	if p.Description != "" {
		if s := scoreDescription(Normalize(p.Description), terms, matchers); s > 0 {
			return s * descriptionWeight
		}
	}

	return 0
}

func scoreName(name string, terms []string) float64 {
	words := strings.Fields(name)

	var total float64
	for _, term := range terms {
		switch {
		case name == term:
			total += scoreNameEquals
		case strings.HasPrefix(name, term):
			total += scoreNamePrefix
		case strings.Contains(name, term):
			total += scoreNameContains
		case anyWordHasPrefix(words, term):
			total += scoreWordPrefix
		}
	}
	return total
}

func scoreCategory(name string, terms []string) float64 {
	var total float64
	for _, term := range terms {
		switch {
		case name == term:
			total += scoreCategoryEquals
		case strings.HasPrefix(name, term):
			total += scoreCategoryPrefix
		case strings.Contains(name, term):
			total += scoreCategoryContains
		}
	}
	return total
}

func scoreDescription(desc string, terms []string, matchers []*regexp.Regexp) float64 {
	var total float64
	for i, term := range terms {
		if matchers[i] == nil {
			// Term could not be turned into a safe pattern; it
			// contributes nothing rather than aborting the pass.
			continue
		}
		switch {
		case matchers[i].MatchString(desc):
			total += scoreDescriptionWordStart
		case strings.Contains(desc, term):
			total += scoreDescriptionContains
		}
	}
	return total
}

func anyWordHasPrefix(words []string, term string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, term) {
			return true
		}
	}
	return false
}

// boundaryMatchers compiles one word-boundary pattern per term for the
// description tier. A boundary is the start of the string or any rune that
// is not a letter, digit or underscore, so Arabic words count as words.
// Terms are escaped first; user input never reaches the pattern verbatim.
func boundaryMatchers(terms []string) []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		re, err := regexp.Compile(`(?:\A|[^\p{L}\p{N}_])` + regexp.QuoteMeta(term))
		if err != nil {
			continue
		}
		matchers[i] = re
	}
	return matchers
}

// collectTerms gathers candidate term suggestions in discovery order:
// matching product names, then matching category names, then the query terms
// themselves. Entries already contained in a top product's name or resolved
// category name are dropped as redundant.
func collectTerms(terms []string, products []Product, categories []Category, top []Product, categoryNames map[string]string) []string {
	longTerms := make([]string, 0, len(terms))
	for _, t := range terms {
		if utf8.RuneCountInString(t) >= minSuggestTermRunes {
			longTerms = append(longTerms, t)
		}
	}
	if len(longTerms) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var pool []string
	add := func(raw string) {
		if !seen[raw] {
			seen[raw] = true
			pool = append(pool, raw)
		}
	}

	for i := range products {
		if containsAny(Normalize(products[i].Name), longTerms) {
			add(products[i].Name)
		}
	}
	for _, c := range categories {
		if containsAny(Normalize(c.Name), longTerms) {
			add(c.Name)
		}
	}
	// The bare query terms are offered only alongside product or category
	// hits; a query matching nothing yields no suggestions at all.
	if len(pool) > 0 || len(top) > 0 {
		for _, t := range longTerms {
			add(t)
		}
	}

	kept := make([]string, 0, maxTermSuggestions)
	for _, entry := range pool {
		if coveredByTop(Normalize(entry), top, categoryNames) {
			continue
		}
		kept = append(kept, entry)
		if len(kept) == maxTermSuggestions {
			break
		}
	}
	return kept
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// coveredByTop reports whether the normalized term is already visible in one
// of the top products, either in its name or in its category's name.
func coveredByTop(term string, top []Product, categoryNames map[string]string) bool {
	for i := range top {
		if strings.Contains(Normalize(top[i].Name), term) {
			return true
		}
		if catName, ok := categoryNames[top[i].CategoryID]; ok && strings.Contains(catName, term) {
			return true
		}
	}
	return false
}
