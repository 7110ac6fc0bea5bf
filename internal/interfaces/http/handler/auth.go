package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/actions"
	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/interfaces/http/middleware"
)

// AuthHandler handles login and logout. Login is the one route that writes
// the auth cookie; logout clears every session cookie.
type AuthHandler struct {
	auth    *actions.Auth
	manager *session.Manager
	logger  *zap.Logger
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(auth *actions.Auth, manager *session.Manager, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, manager: manager, logger: logger}
}

// loginData is the login success payload: the tenant catalog the browser
// renders its business picker from. The token never leaves the cookie.
type loginData struct {
	Businesses []session.Business `json:"businesses"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload schema.LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBadRequest(c, "The submitted form could not be read")
		return
	}

	outcome := h.auth.Login(c.Request.Context(), payload)
	if !outcome.IsSuccess() {
		writeOutcome(c, outcome)
		return
	}

	if err := h.manager.SetAuthToken(c, outcome.Data.Token); err != nil {
		h.logger.Error("Failed to write auth cookie", zap.Error(err))
		writeOutcome(c, actions.Failure[loginData](actions.MsgSomethingWrong, err))
		return
	}
	if len(outcome.Data.Countries) > 0 {
		if err := h.manager.SetCountries(c, outcome.Data.Countries); err != nil {
			h.logger.Warn("Failed to write countries cookie", zap.Error(err))
		}
	}
	// A single-business account can skip the picker entirely.
	if len(outcome.Data.Businesses) == 1 {
		if err := h.manager.SetBusiness(c, outcome.Data.Businesses[0]); err != nil {
			h.logger.Warn("Failed to write business cookie", zap.Error(err))
		}
	}

	writeOutcome(c, actions.
		Success(loginData{Businesses: outcome.Data.Businesses}, outcome.Message).
		WithNavigation(outcome.NavigateTo))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.manager.Clear(c)
	writeOutcome(c, actions.Success(struct{}{}, "Logged out successfully").WithNavigation("/login"))
}

// Locations handles GET /session/businesses/:id/locations, the picker data
// for switching tenants.
func (h *AuthHandler) Locations(c *gin.Context) {
	locations, err := h.auth.Locations(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}
