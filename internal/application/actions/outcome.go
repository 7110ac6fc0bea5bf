// Package actions implements the per-entity operations behind the gateway's
// form endpoints. Every mutation returns an Outcome; reads return the value
// plus a typed error. Actions never read ambient state: tenant context comes
// in as an explicit argument.
package actions

import (
	"errors"

	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// Outcome types.
const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// MsgSomethingWrong is the generic display message for failures with no
// user-safe upstream message.
const MsgSomethingWrong = "Something went wrong. Please try again."

// Outcome is the uniform result of a mutation. Success carries the data and
// an optional navigation target; failure carries a message safe to show to
// the user plus the underlying error for logging.
type Outcome[T any] struct {
	Type       string
	Message    string
	Data       T
	NavigateTo string
	Err        error
}

// Success builds a success outcome.
func Success[T any](data T, message string) Outcome[T] {
	return Outcome[T]{Type: TypeSuccess, Message: message, Data: data}
}

// WithNavigation sets the route the caller should navigate to.
func (o Outcome[T]) WithNavigation(route string) Outcome[T] {
	o.NavigateTo = route
	return o
}

// Failure builds an error outcome with an explicit display message.
func Failure[T any](message string, err error) Outcome[T] {
	return Outcome[T]{Type: TypeError, Message: message, Err: err}
}

// FailureFrom builds an error outcome from an error, picking the best
// display message: validation failures get the required-fields message,
// upstream errors surface their own message, everything else falls back to
// a generic one.
func FailureFrom[T any](err error) Outcome[T] {
	return Failure[T](displayMessage(err), err)
}

// IsSuccess reports whether the outcome is a success.
func (o Outcome[T]) IsSuccess() bool {
	return o.Type == TypeSuccess
}

func displayMessage(err error) string {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return schema.MsgRequiredFields
	}
	var upErr *upstream.Error
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return MsgSomethingWrong
}
