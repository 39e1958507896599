package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// CompanyHandler serves the issuing company profile.
type CompanyHandler struct {
	service *app.CompanyService
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(service *app.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Get handles GET /api/v1/company. A user who never saved a profile gets 404.
func (h *CompanyHandler) Get(c *gin.Context) {
	profile, found, err := h.service.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if !found {
		dto.HandleError(c, domain.NewNotFoundError(domain.EntityCompany, currentUser(c)))
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Put handles PUT /api/v1/company. The profile is replaced wholesale.
func (h *CompanyHandler) Put(c *gin.Context) {
	var req dto.CompanyRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	profile := req.ToDomain()
	if err := h.service.Set(c.Request.Context(), currentUser(c), profile); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RegisterRoutes registers the company routes on rg.
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/company", h.Get)
	rg.PUT("/company", h.Put)
}
