package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookhaven/storefront/pkg/httputil"
	"github.com/bookhaven/storefront/pkg/pagination"

	"github.com/bookhaven/storefront/internal/domain"
	"github.com/bookhaven/storefront/internal/service"
)

// CatalogHandler handles HTTP requests for catalog browsing endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ProductPage is the response body for a filtered catalog page. Window holds
// the compact page-number display; -1 entries are ellipsis markers.
type ProductPage struct {
	Data       []domain.Product `json:"data"`
	Genre      string           `json:"genre"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
	Window     []int            `json:"window"`
}

// ListProducts handles GET /api/v1/catalog/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	genre := r.URL.Query().Get("genre")
	if genre == "" {
		genre = domain.GenreAll
	}

	items, total := h.catalog.Page(genre, params)
	totalPages := pagination.PageCount(total, params.PerPage)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ProductPage{
		Data:       items,
		Genre:      genre,
		TotalCount: total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		Window:     pagination.Window(params.Page, totalPages),
	}})
}

// GetProduct handles GET /api/v1/catalog/products/{productId}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListGenres handles GET /api/v1/catalog/genres
func (h *CatalogHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.catalog.Genres()})
}
