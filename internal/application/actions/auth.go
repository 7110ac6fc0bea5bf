package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// LoginResult is the remote API's login response: the bearer token plus the
// tenant catalog the session cookies get seeded from.
type LoginResult struct {
	Token      string             `json:"token"`
	Businesses []session.Business `json:"businesses"`
	Countries  []session.Country  `json:"countries,omitempty"`
}

// Auth implements login and tenant catalog lookups. Login goes through a
// plain client: there is no bearer token yet.
type Auth struct {
	plain  *upstream.Client
	authed *upstream.Client
	logger *zap.Logger
}

// NewAuth builds the auth operations. plain must be a client constructed
// with upstream.Plain().
func NewAuth(plain, authed *upstream.Client, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{plain: plain, authed: authed, logger: logger}
}

// Login validates credentials and exchanges them for a bearer token.
func (a *Auth) Login(ctx context.Context, payload schema.LoginPayload) Outcome[LoginResult] {
	if err := schema.Validate(payload); err != nil {
		return FailureFrom[LoginResult](err)
	}

	result, err := upstream.Post[LoginResult](ctx, a.plain, "", "/auth/login", payload)
	if err != nil {
		a.logger.Info("Login failed", zap.String("email", payload.Email), zap.Error(err))
		return FailureFrom[LoginResult](err)
	}

	return Success(result, "Logged in successfully").WithNavigation("/")
}

// Locations lists the locations of a business, used when switching tenants.
func (a *Auth) Locations(ctx context.Context, sc session.Context, businessID string) ([]session.Location, error) {
	return upstream.Get[[]session.Location](ctx, a.authed, sc.AuthToken, fmt.Sprintf("/businesses/%s/locations", businessID))
}
