package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// Resource implements the standard operation set for one entity against the
// remote API: POST {base}/{location}/create, PUT {base}/{id},
// DELETE {base}/{id}, GET {base}/{id}, POST {base}/search.
//
// P is the validated form payload, E the entity shape the remote API
// returns. Entities with extra semantics (stock, recipe) wrap a Resource
// and override the operation that differs.
type Resource[P any, E any] struct {
	client    *upstream.Client
	logger    *zap.Logger
	base      string // upstream path prefix, e.g. "/brands"
	singular  string // display name, e.g. "Brand"
	listRoute string // browser route to navigate to after a mutation
}

// NewResource builds a Resource for one entity.
func NewResource[P any, E any](client *upstream.Client, logger *zap.Logger, base, singular, listRoute string) *Resource[P, E] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resource[P, E]{
		client:    client,
		logger:    logger,
		base:      base,
		singular:  singular,
		listRoute: listRoute,
	}
}

// Create validates the payload and posts it to the entity's create endpoint
// with the resolved location merged in.
func (r *Resource[P, E]) Create(ctx context.Context, sc session.Context, payload P) Outcome[E] {
	if err := schema.Validate(payload); err != nil {
		return FailureFrom[E](err)
	}
	if !sc.TenantResolved() {
		r.logger.Warn("Create called without tenant context", zap.String("entity", r.singular))
		return Failure[E](MsgSomethingWrong, errMissingTenant)
	}

	body, err := withLocation(payload, sc.LocationID)
	if err != nil {
		return Failure[E](MsgSomethingWrong, err)
	}

	created, err := upstream.Post[E](ctx, r.client, sc.AuthToken, fmt.Sprintf("%s/%s/create", r.base, sc.LocationID), body)
	if err != nil {
		r.logger.Warn("Create failed", zap.String("entity", r.singular), zap.Error(err))
		return FailureFrom[E](err)
	}

	return Success(created, r.singular+" created successfully").WithNavigation(r.listRoute)
}

// Update validates the payload and puts it to the entity endpoint.
func (r *Resource[P, E]) Update(ctx context.Context, sc session.Context, id string, payload P) Outcome[E] {
	if err := schema.Validate(payload); err != nil {
		return FailureFrom[E](err)
	}
	if !sc.Authenticated() {
		r.logger.Warn("Update called without auth context", zap.String("entity", r.singular))
		return Failure[E](MsgSomethingWrong, errMissingTenant)
	}

	updated, err := upstream.Put[E](ctx, r.client, sc.AuthToken, fmt.Sprintf("%s/%s", r.base, id), payload)
	if err != nil {
		r.logger.Warn("Update failed", zap.String("entity", r.singular), zap.String("id", id), zap.Error(err))
		return FailureFrom[E](err)
	}

	return Success(updated, r.singular+" updated successfully").WithNavigation(r.listRoute)
}

// Delete removes the entity.
func (r *Resource[P, E]) Delete(ctx context.Context, sc session.Context, id string) Outcome[struct{}] {
	if !sc.Authenticated() {
		return Failure[struct{}](MsgSomethingWrong, errMissingTenant)
	}

	_, err := upstream.Delete[json.RawMessage](ctx, r.client, sc.AuthToken, fmt.Sprintf("%s/%s", r.base, id))
	if err != nil {
		r.logger.Warn("Delete failed", zap.String("entity", r.singular), zap.String("id", id), zap.Error(err))
		return FailureFrom[struct{}](err)
	}

	return Success(struct{}{}, r.singular+" deleted successfully").WithNavigation(r.listRoute)
}

// Get fetches one entity by id.
func (r *Resource[P, E]) Get(ctx context.Context, sc session.Context, id string) (E, error) {
	return upstream.Get[E](ctx, r.client, sc.AuthToken, fmt.Sprintf("%s/%s", r.base, id))
}

// Search runs a paged list query.
func (r *Resource[P, E]) Search(ctx context.Context, sc session.Context, query upstream.ListQuery) (upstream.PagedResult[E], error) {
	return upstream.Post[upstream.PagedResult[E]](ctx, r.client, sc.AuthToken, r.base+"/search", query)
}

// withLocation merges the location id into the payload without disturbing
// its other fields. The remote create endpoints expect the payload shape
// verbatim plus a "location" key.
func withLocation(payload any, locationID string) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	body := make(map[string]any)
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	body["location"] = locationID
	return body, nil
}
