package actions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/infrastructure/bulk"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// Required CSV columns per import kind, matching the remote importer.
var (
	stockImportColumns   = []string{"sku", "quantity"}
	productImportColumns = []string{"name", "sku", "price"}
)

// ImportTask identifies an asynchronous import job started upstream.
type ImportTask struct {
	TaskID string `json:"taskId"`
}

// TaskStatus is the progress of an asynchronous import job. The browser
// polls this until Status reaches a terminal value.
type TaskStatus struct {
	TaskID    string   `json:"taskId"`
	Status    string   `json:"status"` // pending, processing, completed, failed
	Processed int      `json:"processed"`
	Total     int      `json:"total"`
	Errors    []string `json:"errors,omitempty"`
}

// Importer forwards CSV bulk uploads to the remote import endpoints after a
// local header pre-check, and polls task progress.
type Importer struct {
	client *upstream.Client
	logger *zap.Logger
}

// NewImporter builds the bulk import operations.
func NewImporter(client *upstream.Client, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{client: client, logger: logger}
}

// ImportStocks pre-checks and forwards a stock CSV.
func (i *Importer) ImportStocks(ctx context.Context, sc session.Context, data []byte) Outcome[ImportTask] {
	return i.forward(ctx, sc, "/stocks", stockImportColumns, data)
}

// ImportProducts pre-checks and forwards a product CSV.
func (i *Importer) ImportProducts(ctx context.Context, sc session.Context, data []byte) Outcome[ImportTask] {
	return i.forward(ctx, sc, "/products", productImportColumns, data)
}

func (i *Importer) forward(ctx context.Context, sc session.Context, base string, columns []string, data []byte) Outcome[ImportTask] {
	if !sc.TenantResolved() {
		return Failure[ImportTask](MsgSomethingWrong, errMissingTenant)
	}

	if err := bulk.Precheck(data, columns); err != nil {
		return Failure[ImportTask](precheckMessage(err), err)
	}

	task, err := upstream.PostRaw[ImportTask](ctx, i.client, sc.AuthToken,
		fmt.Sprintf("%s/%s/import", base, sc.LocationID), data, upstream.ContentTypeCSV)
	if err != nil {
		// Subscription-limit 403s carry the upstream message; FailureFrom
		// surfaces it verbatim.
		i.logger.Warn("Bulk import failed", zap.String("base", base), zap.Error(err))
		return FailureFrom[ImportTask](err)
	}

	return Success(task, "Import started successfully")
}

// TaskStatus polls the progress of a previously started import job.
func (i *Importer) TaskStatus(ctx context.Context, sc session.Context, taskID string) (TaskStatus, error) {
	return upstream.Get[TaskStatus](ctx, i.client, sc.AuthToken, fmt.Sprintf("/tasks/%s/status", taskID))
}

// precheckMessage maps pre-check failures to display-safe messages.
func precheckMessage(err error) string {
	var headerErr *bulk.HeaderError
	switch {
	case errors.Is(err, bulk.ErrEmptyFile):
		return "The uploaded file is empty"
	case errors.Is(err, bulk.ErrInvalidEncoding):
		return "The uploaded file must be UTF-8 encoded"
	case errors.Is(err, bulk.ErrMissingHeader), errors.Is(err, bulk.ErrNoDataRows):
		return "The uploaded file has no data rows"
	case errors.As(err, &headerErr):
		return headerErr.Error()
	default:
		return "The uploaded file is not a valid CSV"
	}
}
