package search

// DefaultPageSize matches the storefront grid's smallest page option.
const DefaultPageSize = 12

// Paginate returns page n (1-indexed) of items: the slice [(n-1)*size,
// n*size) clamped to the available range. Pages past the end yield an empty
// slice, never an error; non-positive sizes fall back to DefaultPageSize.
func Paginate(items []Product, page, size int) []Product {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []Product{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages reports how many pages of the given size items spans.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (total + size - 1) / size
}
