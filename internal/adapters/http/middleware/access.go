package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// AccessChecker reports the installation's activation status.
type AccessChecker interface {
	CheckStatus(ctx context.Context) (domain.AccessStatus, error)
}

// RequireAccess returns middleware that only lets requests through while the
// activation grant is valid. Everything else gets 403.
func RequireAccess(checker AccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := checker.CheckStatus(c.Request.Context())
		if err != nil {
			dto.AbortWithError(c, err)
			return
		}

		if !status.Allowed() {
			dto.AbortWithCode(c, dto.ErrorCodeForbidden, accessMessage(status.State))
			return
		}

		c.Next()
	}
}

func accessMessage(state domain.AccessState) string {
	if state == domain.AccessExpired {
		return "access expired: activate a new code"
	}

	return "access not activated: activate a code first"
}
