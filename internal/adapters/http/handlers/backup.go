package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// BackupHandler serves whole-account export and import.
type BackupHandler struct {
	service *app.BackupService
	now     func() time.Time
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(service *app.BackupService) *BackupHandler {
	return &BackupHandler{service: service, now: time.Now}
}

// Export handles GET /api/v1/backup. The document is offered as a download.
func (h *BackupHandler) Export(c *gin.Context) {
	data, err := h.service.ExportJSON(c.Request.Context(), currentUser(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.BackupFilename(h.now())))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Import handles POST /api/v1/backup. The raw body is a previously exported
// document. Sections present in it replace the user's data; absent ones are
// kept. A document that cannot be parsed changes nothing and gets 400.
func (h *BackupHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		dto.HandleError(c, fmt.Errorf("%w: %w", dto.ErrBinding, err))
		return
	}

	if !h.service.Import(c.Request.Context(), currentUser(c), data) {
		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, "backup document could not be imported")
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{Imported: true})
}

// RegisterRoutes registers the backup routes on rg.
func (h *BackupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/backup", h.Export)
	rg.POST("/backup", h.Import)
}
