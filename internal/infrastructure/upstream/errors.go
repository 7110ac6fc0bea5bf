package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the normalized shape of any upstream failure, transport or HTTP.
// Message is always safe to show to an end user.
type Error struct {
	Status        int            `json:"status"`
	Code          string         `json:"code"`
	Message       string         `json:"message"`
	CorrelationID string         `json:"correlationId,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// Error codes for failures that never reach the remote API.
const (
	CodeUnreachable = "ERR_UPSTREAM_UNREACHABLE"
	CodeBadResponse = "ERR_UPSTREAM_BAD_RESPONSE"
)

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("upstream error (%s): %s", e.Code, e.Message)
}

// IsNotFound reports whether the upstream answered 404.
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsUnauthorized reports whether the upstream rejected the bearer token.
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// remoteErrorBody covers the error shapes the remote API is known to emit.
type remoteErrorBody struct {
	Message        string         `json:"message"`
	Error          string         `json:"error"`
	Code           string         `json:"code"`
	CorrelationID  string         `json:"correlationId"`
	CorrelationIDs string         `json:"correlation_id"`
	Details        map[string]any `json:"details"`
}

// normalizeHTTPError translates a non-2xx upstream response into an Error.
// The remote message is preferred over the generic fallback so that
// user-facing text (subscription limits included) passes through verbatim.
func normalizeHTTPError(status int, body []byte) *Error {
	e := &Error{
		Status:  status,
		Code:    codeForStatus(status),
		Message: messageForStatus(status),
	}

	if len(body) == 0 {
		return e
	}

	var remote remoteErrorBody
	if err := json.Unmarshal(body, &remote); err != nil {
		return e
	}

	if remote.Message != "" {
		e.Message = remote.Message
	} else if remote.Error != "" {
		e.Message = remote.Error
	}
	if remote.Code != "" {
		e.Code = remote.Code
	}
	if remote.CorrelationID != "" {
		e.CorrelationID = remote.CorrelationID
	} else if remote.CorrelationIDs != "" {
		e.CorrelationID = remote.CorrelationIDs
	}
	if len(remote.Details) > 0 {
		e.Details = remote.Details
	}
	return e
}

// normalizeTransportError translates a failure that never produced a
// response (DNS, refused connection, timeout, canceled context).
func normalizeTransportError(err error) *Error {
	return &Error{
		Code:    CodeUnreachable,
		Message: "The service is temporarily unavailable. Please try again.",
		Details: map[string]any{"cause": err.Error()},
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "ERR_BAD_REQUEST"
	case http.StatusUnauthorized:
		return "ERR_UNAUTHORIZED"
	case http.StatusForbidden:
		return "ERR_FORBIDDEN"
	case http.StatusNotFound:
		return "ERR_NOT_FOUND"
	case http.StatusConflict:
		return "ERR_CONFLICT"
	case http.StatusUnprocessableEntity:
		return "ERR_UNPROCESSABLE"
	case http.StatusTooManyRequests:
		return "ERR_RATE_LIMITED"
	default:
		if status >= 500 {
			return "ERR_UPSTREAM_INTERNAL"
		}
		return "ERR_UPSTREAM"
	}
}

func messageForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case http.StatusForbidden:
		return "You do not have permission to perform this action."
	case http.StatusNotFound:
		return "The requested record was not found."
	case http.StatusTooManyRequests:
		return "Too many requests. Please slow down."
	default:
		return "Something went wrong. Please try again."
	}
}
