package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alomda/internal/search"
	"alomda/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productListResponse struct {
	Data struct {
		Products   []search.Product `json:"products"`
		Pagination struct {
			Page       int `json:"page"`
			PerPage    int `json:"per_page"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	} `json:"data"`
}

type suggestionsResponse struct {
	Data []search.Suggestion `json:"data"`
}

func newCatalogFixture(t *testing.T) (*application, http.Handler, map[string]uuid.UUID) {
	t.Helper()

	oilsID := uuid.New()
	honeyID := uuid.New()

	oliveOil := uuid.New()
	sesameOil := uuid.New()
	sidrHoney := uuid.New()
	toothpaste := uuid.New()
	draft := uuid.New()

	sesame := testProduct(sesameOil, "زيت السمسم", 80, &oilsID, true)
	sesame.Description = strPtr("زيت سمسم معصور على البارد")

	storage := store.Storage{
		Products: &stubProductStore{products: []store.Product{
			testProduct(oliveOil, "زيت الزيتون", 50, &oilsID, true),
			sesame,
			testProduct(sidrHoney, "عسل السدر", 250, &honeyID, true),
			testProduct(toothpaste, "معجون أسنان", 15, nil, true),
			testProduct(draft, "منتج قيد التجهيز", 10, nil, false),
		}},
		Categories: &stubCategoryStore{categories: []store.Category{
			{ID: oilsID, Name: "زيوت طبيعية"},
			{ID: honeyID, Name: "عسل"},
		}},
		Inquiries: &stubInquiryStore{},
	}

	app := newTestApplication(t, storage)
	app.inquiryCodec = newTestInquiryCodec(t)
	app.config.whatsapp.number = "201234567890"
	mux := app.mount()

	ids := map[string]uuid.UUID{
		"oils":       oilsID,
		"honey":      honeyID,
		"oliveOil":   oliveOil,
		"sesameOil":  sesameOil,
		"sidrHoney":  sidrHoney,
		"toothpaste": toothpaste,
		"draft":      draft,
	}
	return app, mux, ids
}

func TestListProductsRanksByQuery(t *testing.T) {
	_, mux, ids := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/products?q=زيت", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp productListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Products, 2)
	assert.Equal(t, ids["oliveOil"].String(), resp.Data.Products[0].ID)
	assert.Equal(t, ids["sesameOil"].String(), resp.Data.Products[1].ID)
	assert.Equal(t, 2, resp.Data.Pagination.Total)
}

func TestListProductsNormalizesArabicQuery(t *testing.T) {
	_, mux, _ := newCatalogFixture(t)

	// Query typed with plain alef must match the name stored with hamza.
	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/products?q=اسنان", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp productListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "معجون أسنان", resp.Data.Products[0].Name)
}

func TestListProductsExcludesDrafts(t *testing.T) {
	_, mux, ids := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/products", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp productListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Len(t, resp.Data.Products, 4)
	for _, p := range resp.Data.Products {
		assert.NotEqual(t, ids["draft"].String(), p.ID)
	}
}

func TestListProductsFiltersByCategoryAndPrice(t *testing.T) {
	_, mux, ids := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/catalog/products?category="+ids["oils"].String()+"&max_price=60", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp productListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, ids["oliveOil"].String(), resp.Data.Products[0].ID)
}

func TestListProductsRejectsBadPriceBound(t *testing.T) {
	_, mux, _ := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/products?min_price=abc", nil)
	rr := executeRequest(req, mux)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListProductsPaginates(t *testing.T) {
	_, mux, _ := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/products?per_page=2&page=2", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp productListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Len(t, resp.Data.Products, 2)
	assert.Equal(t, 4, resp.Data.Pagination.Total)
	assert.Equal(t, 2, resp.Data.Pagination.TotalPages)

	// Past the end is empty, never an error.
	req = httptest.NewRequest(http.MethodGet, "/v1/catalog/products?per_page=2&page=9", nil)
	rr = executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Products)
}

func TestGetProduct(t *testing.T) {
	_, mux, ids := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/products/"+ids["oliveOil"].String(), nil)
	rr := executeRequest(req, mux)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Drafts are invisible to the storefront.
	req = httptest.NewRequest(http.MethodGet, "/v1/catalog/products/"+ids["draft"].String(), nil)
	rr = executeRequest(req, mux)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/catalog/products/not-a-uuid", nil)
	rr = executeRequest(req, mux)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetSuggestions(t *testing.T) {
	_, mux, _ := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/suggestions?q=زيت", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp suggestionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.Data)
	assert.Equal(t, search.KindProduct, resp.Data[0].Kind)
	assert.LessOrEqual(t, len(resp.Data), 8)
}

func TestGetSuggestionsEmptyQuery(t *testing.T) {
	_, mux, _ := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/suggestions", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp suggestionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestListCategories(t *testing.T) {
	_, mux, _ := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog/categories", nil)
	rr := executeRequest(req, mux)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data []store.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}
