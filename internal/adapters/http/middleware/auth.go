package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
)

const (
	// ContextKeyUser is the gin context key for the resolved user.
	ContextKeyUser = "user"

	defaultSubjectHeader = "X-User-ID"
)

// userPattern keeps user ids safe to embed in a storage namespace.
var userPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.@-]{0,127}$`)

// ResolveUser returns middleware that decides whose records a request touches.
//
// A gateway in front of the service authenticates the caller and passes the
// subject in cfg.SubjectHeader. With auth enabled the header is mandatory.
// With auth disabled a missing header falls back to cfg.DefaultUser, the
// single local owner.
func ResolveUser(cfg *config.AuthConfig) gin.HandlerFunc {
	header := defaultSubjectHeader
	if cfg.SubjectHeader != "" {
		header = cfg.SubjectHeader
	}

	fallback := cfg.DefaultUser
	if fallback == "" {
		fallback = config.DefaultUser
	}

	return func(c *gin.Context) {
		user := c.GetHeader(header)

		switch {
		case user == "" && cfg.Enabled:
			dto.AbortWithCode(c, dto.ErrorCodeUnauthorized, "authentication required")
			return
		case user == "":
			user = fallback
		case !userPattern.MatchString(user):
			dto.AbortWithCode(c, dto.ErrorCodeBadRequest, "invalid "+header+" header")
			return
		}

		c.Set(ContextKeyUser, user)

		ctx := ContextWithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(logging.WithUser(ctx, user))

		c.Next()
	}
}

// GetUser returns the user resolved by ResolveUser.
func GetUser(c *gin.Context) string {
	return contextString(c, ContextKeyUser)
}
