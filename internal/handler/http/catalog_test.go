package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/storefront/internal/domain"
)

type productPageEnvelope struct {
	Data ProductPage `json:"data"`
}

func decodeProductPage(t *testing.T, body []byte) ProductPage {
	t.Helper()
	var env productPageEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Data
}

func TestCatalogAPI_ListProducts_Defaults(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeProductPage(t, rec.Body.Bytes())
	assert.Equal(t, domain.GenreAll, page.Genre)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 8, page.PerPage)
	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, []int{1}, page.Window)
}

func TestCatalogAPI_ListProducts_GenreFilter(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products?genre=Science+Fiction", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeProductPage(t, rec.Body.Bytes())
	assert.Equal(t, "Science Fiction", page.Genre)
	assert.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Data, 2)
	// Catalog order is preserved within a genre.
	assert.Equal(t, "book-002", page.Data[0].ID)
	assert.Equal(t, "book-005", page.Data[1].ID)
}

func TestCatalogAPI_ListProducts_UnknownGenre(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products?genre=Horror", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeProductPage(t, rec.Body.Bytes())
	assert.Zero(t, page.TotalCount)
	assert.Empty(t, page.Data)
	assert.Empty(t, page.Window)
}

func TestCatalogAPI_ListProducts_Pagination(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products?page=2&per_page=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeProductPage(t, rec.Body.Bytes())
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.PerPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, []int{1, 2}, page.Window)
}

func TestCatalogAPI_ListProducts_PageBeyondEnd(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products?page=9", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeProductPage(t, rec.Body.Bytes())
	assert.Empty(t, page.Data)
	assert.Equal(t, 5, page.TotalCount)
}

func TestCatalogAPI_GetProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products/book-003", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "The Thursday Murder Club", env.Data.Title)
}

func TestCatalogAPI_GetProduct_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/products/missing", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestCatalogAPI_ListGenres(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/catalog/genres", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, []string{"All", "Fiction", "Mystery", "Science Fiction", "Travel"}, env.Data)
}
