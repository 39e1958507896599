package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// QuoteHandler serves the saved quote history.
type QuoteHandler struct {
	service *app.QuoteHistoryService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteHistoryService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// List handles GET /api/v1/quotes. History is newest first and paginated
// with an opaque cursor.
func (h *QuoteHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, err := h.service.List(c.Request.Context(), currentUser(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp, err := dto.Paginate(quotes, page, func(q domain.SavedQuote) string { return q.ID })
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	items := make([]dto.SavedQuoteResponse, len(resp.Items))
	for i, q := range resp.Items {
		items[i] = dto.NewSavedQuoteResponse(q)
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse[dto.SavedQuoteResponse]{
		Items:      items,
		NextCursor: resp.NextCursor,
		HasMore:    resp.HasMore,
	})
}

// Save handles POST /api/v1/quotes. Every save creates a new history record.
func (h *QuoteHandler) Save(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	saved, err := h.service.Save(c.Request.Context(), currentUser(c), req.ToDomain(newID))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", c.FullPath()+"/"+saved.ID)
	c.JSON(http.StatusCreated, dto.NewSavedQuoteResponse(saved))
}

// Get handles GET /api/v1/quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	saved, err := h.service.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSavedQuoteResponse(saved))
}

// Delete handles DELETE /api/v1/quotes/:id. Deleting an unknown id succeeds.
func (h *QuoteHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the quote routes on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.List)
	quotes.POST("", h.Save)
	quotes.GET("/:id", h.Get)
	quotes.DELETE("/:id", h.Delete)
}
