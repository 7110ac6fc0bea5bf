// Package dto defines the wire shapes the browser forms consume.
package dto

// Response types.
const (
	ResponseTypeSuccess = "success"
	ResponseTypeError   = "error"
)

// FormResponse is the uniform envelope returned by every mutation
// endpoint. responseType "error" implies message is safe to show to the
// user; "success" implies the remote mutation has already been committed.
type FormResponse struct {
	ResponseType string     `json:"responseType"`
	Message      string     `json:"message"`
	Data         any        `json:"data,omitempty"`
	NavigateTo   string     `json:"navigateTo,omitempty"`
	Error        *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries machine-readable error details alongside the display
// message.
type ErrorInfo struct {
	Code          string `json:"code,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(data any, message, navigateTo string) FormResponse {
	return FormResponse{
		ResponseType: ResponseTypeSuccess,
		Message:      message,
		Data:         data,
		NavigateTo:   navigateTo,
	}
}

// NewErrorResponse creates an error envelope.
func NewErrorResponse(message string, info *ErrorInfo) FormResponse {
	return FormResponse{
		ResponseType: ResponseTypeError,
		Message:      message,
		Error:        info,
	}
}

// ErrorResponse is the body of failed read endpoints, which do not use the
// form envelope: they carry the upstream HTTP status and this shape.
type ErrorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
}

// ListRequest is the gateway-surface list query: one-based page, optional
// filters and sorts forwarded to the remote search endpoint. Filter and
// sort vocab matches the remote API so clauses pass through unchanged.
type ListRequest struct {
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	Filters []FilterRequest `json:"filters"`
	Sorts   []SortRequest   `json:"sorts"`
}

// FilterRequest is one filter clause.
type FilterRequest struct {
	Key       string `json:"key" binding:"required"`
	Operator  string `json:"operator" binding:"required,oneof=EQUAL LIKE IN BETWEEN"`
	FieldType string `json:"field_type" binding:"required,oneof=STRING NUMBER BOOLEAN DATE"`
	Value     any    `json:"value"`
}

// SortRequest is one sort clause.
type SortRequest struct {
	Key       string `json:"key" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=ASC DESC"`
}
