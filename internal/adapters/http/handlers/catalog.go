package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// CatalogHandler serves the user's product and service catalog.
type CatalogHandler struct {
	service *app.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List handles GET /api/v1/catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), currentUser(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCatalogResponse(entries))
}

// Replace handles PUT /api/v1/catalog. The body becomes the whole catalog.
func (h *CatalogHandler) Replace(c *gin.Context) {
	var req dto.CatalogReplaceRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	entries := req.ToDomain(newID)
	if err := h.service.Replace(c.Request.Context(), currentUser(c), entries); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCatalogResponse(entries))
}

// Upsert handles POST /api/v1/catalog/items. A matching entry (same code, or
// same description ignoring case) takes the new price; otherwise the item is
// appended.
func (h *CatalogHandler) Upsert(c *gin.Context) {
	var req dto.LineItemRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	entry, err := h.service.Upsert(c.Request.Context(), currentUser(c), req.ToDomain(nil))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CatalogUpsertResponse{Entry: entry})
}

// Lookup handles GET /api/v1/catalog/lookup?description=.
func (h *CatalogHandler) Lookup(c *gin.Context) {
	var req dto.CatalogLookupRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	entry, found, err := h.service.Lookup(c.Request.Context(), currentUser(c), req.Description)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if !found {
		dto.HandleError(c, domain.NewNotFoundError(domain.EntityCatalog, req.Description))
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /api/v1/catalog/items/:id. Deleting an unknown id
// succeeds.
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the catalog routes on rg.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	catalog.GET("", h.List)
	catalog.PUT("", h.Replace)
	catalog.GET("/lookup", h.Lookup)
	catalog.POST("/items", h.Upsert)
	catalog.DELETE("/items/:id", h.Delete)
}
