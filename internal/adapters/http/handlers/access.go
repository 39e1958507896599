package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/app"
)

// AccessHandler serves the activation gate. Its routes stay open so a
// locked installation can still be unlocked.
type AccessHandler struct {
	gate *app.AccessGate
}

// NewAccessHandler creates a new access handler.
func NewAccessHandler(gate *app.AccessGate) *AccessHandler {
	return &AccessHandler{gate: gate}
}

// GetStatus handles GET /api/v1/access.
func (h *AccessHandler) GetStatus(c *gin.Context) {
	status, err := h.gate.CheckStatus(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccessStatusResponse(status))
}

// Activate handles POST /api/v1/access/activate. An unknown code is a 403.
func (h *AccessHandler) Activate(c *gin.Context) {
	var req dto.ActivateRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()

	if _, err := h.gate.Activate(ctx, req.Code); err != nil {
		dto.HandleError(c, err)
		return
	}

	status, err := h.gate.CheckStatus(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccessStatusResponse(status))
}

// RegisterRoutes registers the access routes on rg.
func (h *AccessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	access := rg.Group("/access")
	access.GET("", h.GetStatus)
	access.POST("/activate", h.Activate)
}
