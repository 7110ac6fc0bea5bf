package dto

import "net/http"

// Gateway error codes. Upstream error codes pass through unchanged; these
// cover failures that originate in the gateway itself.
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeDuplicateSubmit     = "DUPLICATE_SUBMISSION"
	ErrCodeRequestTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeValidation          = "VALIDATION_FAILED"
	ErrCodeUpstreamUnreachable = "UPSTREAM_UNREACHABLE"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeDuplicateSubmit:     http.StatusConflict,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeUpstreamUnreachable: http.StatusBadGateway,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus maps an error code to its HTTP status. Unknown codes map
// to 500.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
