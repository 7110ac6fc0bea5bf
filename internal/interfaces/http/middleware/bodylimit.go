package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posadmin/backoffice/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeRequestTooLarge),
				dto.NewErrorResponse("The uploaded file is too large", &dto.ErrorInfo{
					Code:      dto.ErrCodeRequestTooLarge,
					RequestID: GetRequestID(c),
				}))
			return
		}

		// Guard streaming requests that omit Content-Length.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
