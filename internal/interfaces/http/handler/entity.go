package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posadmin/backoffice/internal/application/actions"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
	"github.com/posadmin/backoffice/internal/interfaces/http/dto"
	"github.com/posadmin/backoffice/internal/interfaces/http/middleware"
)

// entityActions is the operation set every entity exposes. *actions.Resource
// satisfies it directly; stock and recipe satisfy it through their wrappers.
type entityActions[P any, E any] interface {
	Create(ctx context.Context, sc session.Context, payload P) actions.Outcome[E]
	Update(ctx context.Context, sc session.Context, id string, payload P) actions.Outcome[E]
	Delete(ctx context.Context, sc session.Context, id string) actions.Outcome[struct{}]
	Get(ctx context.Context, sc session.Context, id string) (E, error)
	Search(ctx context.Context, sc session.Context, query upstream.ListQuery) (upstream.PagedResult[E], error)
}

// EntityHandler wires one entity's routes to its actions.
type EntityHandler[P any, E any] struct {
	ops entityActions[P, E]
}

// NewEntityHandler builds a handler around an entity's operations.
func NewEntityHandler[P any, E any](ops entityActions[P, E]) *EntityHandler[P, E] {
	return &EntityHandler[P, E]{ops: ops}
}

// Create handles POST /{entity}.
func (h *EntityHandler[P, E]) Create(c *gin.Context) {
	var payload P
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBadRequest(c, "The submitted form could not be read")
		return
	}
	writeOutcome(c, h.ops.Create(c.Request.Context(), middleware.GetSession(c), payload))
}

// Update handles PUT /{entity}/:id.
func (h *EntityHandler[P, E]) Update(c *gin.Context) {
	var payload P
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBadRequest(c, "The submitted form could not be read")
		return
	}
	writeOutcome(c, h.ops.Update(c.Request.Context(), middleware.GetSession(c), c.Param("id"), payload))
}

// Delete handles DELETE /{entity}/:id.
func (h *EntityHandler[P, E]) Delete(c *gin.Context) {
	writeOutcome(c, h.ops.Delete(c.Request.Context(), middleware.GetSession(c), c.Param("id")))
}

// Get handles GET /{entity}/:id. Read path: entity or normalized error.
func (h *EntityHandler[P, E]) Get(c *gin.Context) {
	entity, err := h.ops.Get(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Search handles POST /{entity}/search. The body is optional; an empty one
// lists the first page. Page numbers are one-based here and shifted to the
// remote API's zero-based convention.
func (h *EntityHandler[P, E]) Search(c *gin.Context) {
	// Bind regardless of Content-Length: chunked requests report -1.
	// An empty body (io.EOF) just means "first page, no filters".
	var req dto.ListRequest
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			writeBadRequest(c, "The list query could not be read")
			return
		}
	}

	query := upstream.NewListQuery(req.Page, req.Size)
	for _, f := range req.Filters {
		query = query.WithFilter(f.Key, f.Operator, f.FieldType, f.Value)
	}
	for _, s := range req.Sorts {
		query = query.WithSort(s.Key, s.Direction)
	}

	page, err := h.ops.Search(c.Request.Context(), middleware.GetSession(c), query)
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
