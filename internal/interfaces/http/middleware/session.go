package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/interfaces/http/dto"
)

// SessionContextKey is the gin context key for the resolved tenant context.
const SessionContextKey = "session_context"

// Session resolves the tenant context from the signed session cookies once
// per request. Handlers and actions receive it explicitly; nothing below
// this middleware reads cookies.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(SessionContextKey, manager.Resolve(c))
		c.Next()
	}
}

// GetSession returns the tenant context resolved by Session. The zero
// value means no session.
func GetSession(c *gin.Context) session.Context {
	if v, ok := c.Get(SessionContextKey); ok {
		if sc, ok := v.(session.Context); ok {
			return sc
		}
	}
	return session.Context{}
}

// RequireAuth aborts unauthenticated requests with an error envelope
// pointing the browser at the login route.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).Authenticated() {
			resp := dto.NewErrorResponse("Please log in to continue", &dto.ErrorInfo{
				Code:      dto.ErrCodeUnauthorized,
				RequestID: GetRequestID(c),
			})
			resp.NavigateTo = "/login"
			c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeUnauthorized), resp)
			return
		}
		c.Next()
	}
}
