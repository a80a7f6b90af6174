package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alomda/internal/ratelimiter"
	"alomda/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestApplication(t *testing.T, storage store.Storage) *application {
	t.Helper()

	return &application{
		config: config{
			env: "test",
			rateLimiter: ratelimiter.Config{
				Enabled: false,
			},
		},
		store:  storage,
		logger: zap.NewNop().Sugar(),
	}
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// stubProductStore serves a fixed snapshot.
type stubProductStore struct {
	products []store.Product
}

func (s *stubProductStore) Create(context.Context, *store.Product) error { return nil }

func (s *stubProductStore) GetByID(_ context.Context, id uuid.UUID) (*store.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *stubProductStore) Update(_ context.Context, p *store.Product) (*store.Product, error) {
	return p, nil
}

func (s *stubProductStore) SetPublished(context.Context, uuid.UUID, bool) error { return nil }

func (s *stubProductStore) Delete(context.Context, uuid.UUID) error { return nil }

func (s *stubProductStore) ListPublished(context.Context) ([]store.Product, error) {
	var published []store.Product
	for _, p := range s.products {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

func (s *stubProductStore) List(context.Context, int, int) ([]store.Product, int, error) {
	return s.products, len(s.products), nil
}

// stubCategoryStore serves a fixed category list.
type stubCategoryStore struct {
	categories []store.Category
}

func (s *stubCategoryStore) Create(context.Context, *store.Category) error { return nil }

func (s *stubCategoryStore) GetByID(_ context.Context, id uuid.UUID) (*store.Category, error) {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *stubCategoryStore) List(context.Context) ([]store.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryStore) Update(_ context.Context, c *store.Category) (*store.Category, error) {
	return c, nil
}

func (s *stubCategoryStore) Delete(context.Context, uuid.UUID) error { return nil }

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }

func testProduct(id uuid.UUID, name string, price float64, categoryID *uuid.UUID, published bool) store.Product {
	return store.Product{
		ID:         id,
		Name:       name,
		Price:      floatPtr(price),
		CategoryID: categoryID,
		Published:  published,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}
