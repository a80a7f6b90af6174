package main

import (
	"net/http"
	"strconv"
	"strings"

	"alomda/internal/search"
	"alomda/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// searchDocs flattens stored products into the engine's value shape. Absent
// optional fields collapse to zero values, which the engine tolerates.
func searchDocs(products []store.Product) []search.Product {
	docs := make([]search.Product, 0, len(products))
	for _, p := range products {
		doc := search.Product{
			ID:    p.ID.String(),
			Name:  p.Name,
			Price: 0,
		}
		if p.Description != nil {
			doc.Description = *p.Description
		}
		if p.Price != nil {
			doc.Price = *p.Price
		}
		if p.Image != nil {
			doc.Image = *p.Image
		}
		if p.CategoryID != nil {
			doc.CategoryID = p.CategoryID.String()
		}
		docs = append(docs, doc)
	}
	return docs
}

func searchCategories(categories []store.Category) []search.Category {
	out := make([]search.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, search.Category{ID: c.ID.String(), Name: c.Name})
	}
	return out
}

func parsePriceBound(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listProductsHandler serves the storefront grid. Every request recomputes
// the full pipeline over the published snapshot: structural filters first,
// then text ranking, then pagination. The page the client sends is
// authoritative; out-of-range pages come back empty rather than erroring.
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := parsePriceBound(q.Get("min_price"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	maxPrice, err := parsePriceBound(q.Get("max_price"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var categoryIDs []string
	if raw := strings.TrimSpace(q.Get("categories")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				categoryIDs = append(categoryIDs, id)
			}
		}
	}

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	perPage := search.DefaultPageSize
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 && v <= 96 {
		perPage = v
	}

	ctx := r.Context()

	products, err := app.store.Products.ListPublished(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	categories, err := app.store.Categories.List(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	docs := searchDocs(products)
	docs = search.Filter(docs, search.Criteria{
		ActiveCategory: strings.TrimSpace(q.Get("category")),
		CategoryIDs:    categoryIDs,
		MinPrice:       minPrice,
		MaxPrice:       maxPrice,
	})
	ranked := search.Rank(q.Get("q"), docs, searchCategories(categories))

	total := len(ranked)
	pageItems := search.Paginate(ranked, page, perPage)

	response := map[string]any{
		"products": pageItems,
		"pagination": map[string]any{
			"page":        page,
			"per_page":    perPage,
			"total":       total,
			"total_pages": search.TotalPages(total, perPage),
		},
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.store.Products.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Drafts stay invisible to the storefront.
	if !product.Published {
		app.notFoundResponse(w, r, store.ErrNotFound)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	ctx := r.Context()

	products, err := app.store.Products.ListPublished(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	categories, err := app.store.Categories.List(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	suggestions := search.Suggest(query, searchDocs(products), searchCategories(categories))

	if err := app.jsonResponse(w, http.StatusOK, suggestions); err != nil {
		app.internalServerError(w, r, err)
	}
}
