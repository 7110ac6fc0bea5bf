package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posadmin/backoffice/internal/application/actions"
	"github.com/posadmin/backoffice/internal/interfaces/http/middleware"
)

// BulkHandler accepts CSV bulk imports and exposes task-status polling.
type BulkHandler struct {
	importer *actions.Importer
}

// NewBulkHandler builds the bulk import handler.
func NewBulkHandler(importer *actions.Importer) *BulkHandler {
	return &BulkHandler{importer: importer}
}

// ImportStocks handles POST /imports/stocks with a text/csv body.
func (h *BulkHandler) ImportStocks(c *gin.Context) {
	data, ok := h.readCSV(c)
	if !ok {
		return
	}
	writeOutcome(c, h.importer.ImportStocks(c.Request.Context(), middleware.GetSession(c), data))
}

// ImportProducts handles POST /imports/products with a text/csv body.
func (h *BulkHandler) ImportProducts(c *gin.Context) {
	data, ok := h.readCSV(c)
	if !ok {
		return
	}
	writeOutcome(c, h.importer.ImportProducts(c.Request.Context(), middleware.GetSession(c), data))
}

// TaskStatus handles GET /imports/tasks/:id, the polling endpoint the
// browser hits until the import job completes.
func (h *BulkHandler) TaskStatus(c *gin.Context) {
	status, err := h.importer.TaskStatus(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *BulkHandler) readCSV(c *gin.Context) ([]byte, bool) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeBadRequest(c, "The uploaded file could not be read")
		return nil, false
	}
	return data, true
}
