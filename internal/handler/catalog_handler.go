package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superstudio/showcase-api/internal/models"
	"github.com/superstudio/showcase-api/pkg/response"
)

type catalogService interface {
	Projects(ctx context.Context) ([]models.Project, error)
	Studios(ctx context.Context) ([]models.Studio, error)
	Filters(ctx context.Context) (*models.Filters, error)
}

// CatalogHandler wires the public read endpoints.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Projects godoc
// @Summary List projects
// @Description Return all published projects with resolved studios and image URLs
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} response.ErrorBody
// @Router /projects [get]
func (h *CatalogHandler) Projects(c *gin.Context) {
	projects, err := h.service.Projects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects)
}

// Studios godoc
// @Summary List studios
// @Description Return all studios with resolved institutions and demands
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Studio
// @Failure 500 {object} response.ErrorBody
// @Router /studios [get]
func (h *CatalogHandler) Studios(c *gin.Context) {
	studios, err := h.service.Studios(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, studios)
}

// Filters godoc
// @Summary List filter options
// @Description Return the deduplicated tags plus institutions and demands
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Filters
// @Failure 500 {object} response.ErrorBody
// @Router /filters [get]
func (h *CatalogHandler) Filters(c *gin.Context) {
	filters, err := h.service.Filters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, filters)
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *CatalogHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
