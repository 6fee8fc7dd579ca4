package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shopscout/backend/internal/domain"
)

// ProductSearcher aggregates search results across sources
type ProductSearcher interface {
	Search(ctx context.Context, query string) []domain.Product
}

// DetailResolver resolves a product id to a full record
type DetailResolver interface {
	GetDetails(ctx context.Context, id string) (*domain.Product, error)
}

// SearchResponse is the body returned by the search endpoint
type SearchResponse struct {
	Query    string           `json:"query"`
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search  ProductSearcher
	details DetailResolver
	version string
	log     zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(search ProductSearcher, details DetailResolver, version string, log zerolog.Logger) *Handler {
	return &Handler{
		search:  search,
		details: details,
		version: version,
		log:     log.With().Str("component", "http").Logger(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopscout-backend",
		"version": h.version,
	})
}

// SearchProducts handles GET /api/v1/products/search?q=
func (h *Handler) SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	products := h.search.Search(c.Request.Context(), query)
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, SearchResponse{
		Query:    query,
		Count:    len(products),
		Products: products,
	})
}

// GetProductDetails handles GET /api/v1/products/:id
func (h *Handler) GetProductDetails(c *gin.Context) {
	id := c.Param("id")

	product, err := h.details.GetDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
			return
		}
		h.log.Error().Err(err).Str("id", id).Str("request_id", RequestIDFrom(c)).Msg("product details failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product details"})
		return
	}

	c.JSON(http.StatusOK, product)
}
