// Package handler translates HTTP requests into action calls and action
// results into the wire shapes the browser forms expect. Mutations always
// answer 200 with a form envelope; reads answer with the upstream status
// and either the entity or a normalized error body.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posadmin/backoffice/internal/application/actions"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
	"github.com/posadmin/backoffice/internal/interfaces/http/dto"
	"github.com/posadmin/backoffice/internal/interfaces/http/middleware"
)

// writeOutcome renders a mutation outcome as the form envelope. The HTTP
// status stays 200 either way; forms key off responseType.
func writeOutcome[T any](c *gin.Context, o actions.Outcome[T]) {
	if o.IsSuccess() {
		middleware.MarkSubmissionCommitted(c)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(o.Data, o.Message, o.NavigateTo))
		return
	}

	info := &dto.ErrorInfo{RequestID: middleware.GetRequestID(c)}
	var upErr *upstream.Error
	if errors.As(o.Err, &upErr) {
		info.Code = upErr.Code
		info.CorrelationID = upErr.CorrelationID
	}
	c.JSON(http.StatusOK, dto.NewErrorResponse(o.Message, info))
}

// writeReadError renders a failed read. Upstream responses keep their HTTP
// status; gateway-origin failures map through the dto status table.
func writeReadError(c *gin.Context, err error) {
	resp := dto.ErrorResponse{
		Code:      dto.ErrCodeInternal,
		Message:   actions.MsgSomethingWrong,
		RequestID: middleware.GetRequestID(c),
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		resp.Message = upErr.Message
		resp.CorrelationID = upErr.CorrelationID
		if upErr.Status > 0 {
			resp.Code = upErr.Code
			c.JSON(upErr.Status, resp)
			return
		}
		// Transport failure: the request never produced an upstream status
		resp.Code = dto.ErrCodeUpstreamUnreachable
	}

	c.JSON(dto.GetHTTPStatus(resp.Code), resp)
}

// writeBadRequest rejects a request the gateway could not even parse.
func writeBadRequest(c *gin.Context, message string) {
	c.JSON(dto.GetHTTPStatus(dto.ErrCodeBadRequest), dto.NewErrorResponse(message, &dto.ErrorInfo{
		Code:      dto.ErrCodeBadRequest,
		RequestID: middleware.GetRequestID(c),
	}))
}
