package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/app/store"
	"storefront-gateway/internal/errors"
	"storefront-gateway/pkg/util"
)

type SessionMiddleware struct {
	session *store.SessionStore
}

func NewSessionMiddleware(session *store.SessionStore) *SessionMiddleware {
	return &SessionMiddleware{
		session: session,
	}
}

// RequireSession gates routes that need an authenticated session. The
// backend is the token authority; this check only rejects requests the
// upstream would refuse anyway, before a round trip is spent on them.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		if !m.session.IsAuthenticated() {
			log.Warn("Request to protected route without session", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		token := m.session.Token()
		if util.IsTokenExpired(token) {
			log.Warn("Session token expired", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session expired")
			c.Abort()
			return
		}

		c.Next()
	}
}
