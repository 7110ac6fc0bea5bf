package actions

import (
	"context"

	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// MsgStockNotFound is returned when an update targets a stock entry the
// remote API no longer knows about.
const MsgStockNotFound = "Stock not found"

// Stocks wraps the standard stock operations. Update differs from the
// generic pattern: the remote stock row may have been deleted since the
// form was opened, so the row is looked up first and a zero-hit search
// fails fast without issuing the PUT.
type Stocks struct {
	*Resource[schema.StockPayload, Stock]
	client *upstream.Client
	logger *zap.Logger
}

// NewStocks builds the stock operations.
func NewStocks(client *upstream.Client, logger *zap.Logger) *Stocks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stocks{
		Resource: NewResource[schema.StockPayload, Stock](client, logger, "/stocks", "Stock", "/stocks"),
		client:   client,
		logger:   logger,
	}
}

// Update verifies the stock row still exists, then delegates to the
// standard update. Zero search hits means the row is gone: no PUT.
func (s *Stocks) Update(ctx context.Context, sc session.Context, id string, payload schema.StockPayload) Outcome[Stock] {
	if err := schema.Validate(payload); err != nil {
		return FailureFrom[Stock](err)
	}
	if !sc.Authenticated() {
		return Failure[Stock](MsgSomethingWrong, errMissingTenant)
	}

	query := upstream.NewListQuery(1, 1).WithFilter("id", upstream.OpEqual, upstream.FieldString, id)
	page, err := s.Search(ctx, sc, query)
	if err != nil {
		s.logger.Warn("Stock lookup failed", zap.String("id", id), zap.Error(err))
		return FailureFrom[Stock](err)
	}
	if page.TotalElements == 0 {
		return Failure[Stock](MsgStockNotFound, nil)
	}

	return s.Resource.Update(ctx, sc, id, payload)
}
