package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// AddressHandler exposes postal code lookups for the client form.
type AddressHandler struct {
	service *app.AddressService
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(service *app.AddressService) *AddressHandler {
	return &AddressHandler{service: service}
}

// Lookup handles GET /api/v1/address/:postalCode. Unknown codes are 404 and
// an unreachable lookup service is 503.
func (h *AddressHandler) Lookup(c *gin.Context) {
	postalCode := domain.NormalizePostalCode(c.Param("postalCode"))

	addr, err := h.service.Lookup(c.Request.Context(), postalCode)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AddressResponse{PostalCode: postalCode, Address: addr})
}

// Prefill handles POST /api/v1/address/prefill. It never fails on lookup
// errors: the client comes back with only the postal code changed.
func (h *AddressHandler) Prefill(c *gin.Context) {
	var req dto.PrefillRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	client := h.service.Prefill(c.Request.Context(), req.Client.ToDomain(), req.PostalCode)

	c.JSON(http.StatusOK, client)
}

// RegisterRoutes registers the address routes on rg.
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/address/:postalCode", h.Lookup)
	rg.POST("/address/prefill", h.Prefill)
}
