// Package handlers provides the HTTP handlers behind /api/v1 and the /-/
// probe routes. Handlers translate between DTOs and the app services and
// leave every business rule to the services.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
)

// currentUser returns the namespace owner resolved by middleware.ResolveUser.
// Routes mounted without that middleware act on the default owner.
func currentUser(c *gin.Context) string {
	if user := middleware.GetUser(c); user != "" {
		return user
	}

	return config.DefaultUser
}

func newID() string {
	return uuid.NewString()
}
