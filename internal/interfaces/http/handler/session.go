package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posadmin/backoffice/internal/application/actions"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
)

// SessionHandler exposes the tenant-switch operations. These are the only
// routes that rewrite the business/location/warehouse cookies.
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler builds the session handler.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// sessionInfo is the current tenant selection as the browser sees it.
type sessionInfo struct {
	Business  *session.Business  `json:"business,omitempty"`
	Location  *session.Location  `json:"location,omitempty"`
	Warehouse *session.Warehouse `json:"warehouse,omitempty"`
	Countries []session.Country  `json:"countries,omitempty"`
}

// Current handles GET /session.
func (h *SessionHandler) Current(c *gin.Context) {
	info := sessionInfo{}
	if business, ok := h.manager.CurrentBusiness(c); ok {
		info.Business = &business
	}
	if location, ok := h.manager.CurrentLocation(c); ok {
		info.Location = &location
	}
	if warehouse, ok := h.manager.CurrentWarehouse(c); ok {
		info.Warehouse = &warehouse
	}
	if countries, ok := h.manager.Countries(c); ok {
		info.Countries = countries
	}
	c.JSON(http.StatusOK, info)
}

type switchBusinessRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// SwitchBusiness handles POST /session/business. Changing business drops
// the location and warehouse selection; they belong to the old tenant.
func (h *SessionHandler) SwitchBusiness(c *gin.Context) {
	var req switchBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "The business selection could not be read")
		return
	}

	if err := h.manager.SetBusiness(c, session.Business{ID: req.ID, Name: req.Name, Currency: req.Currency}); err != nil {
		writeOutcome(c, actions.Failure[struct{}](actions.MsgSomethingWrong, err))
		return
	}
	_ = h.manager.SetLocation(c, session.Location{})
	_ = h.manager.SetWarehouse(c, session.Warehouse{})

	writeOutcome(c, actions.Success(struct{}{}, "Business switched successfully").WithNavigation("/"))
}

type switchLocationRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

// SwitchLocation handles POST /session/location.
func (h *SessionHandler) SwitchLocation(c *gin.Context) {
	var req switchLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "The location selection could not be read")
		return
	}

	if err := h.manager.SetLocation(c, session.Location{ID: req.ID, Name: req.Name}); err != nil {
		writeOutcome(c, actions.Failure[struct{}](actions.MsgSomethingWrong, err))
		return
	}
	writeOutcome(c, actions.Success(struct{}{}, "Location switched successfully"))
}

// SwitchWarehouse handles POST /session/warehouse.
func (h *SessionHandler) SwitchWarehouse(c *gin.Context) {
	var req switchLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "The warehouse selection could not be read")
		return
	}

	if err := h.manager.SetWarehouse(c, session.Warehouse{ID: req.ID, Name: req.Name}); err != nil {
		writeOutcome(c, actions.Failure[struct{}](actions.MsgSomethingWrong, err))
		return
	}
	writeOutcome(c, actions.Success(struct{}{}, "Warehouse switched successfully"))
}
