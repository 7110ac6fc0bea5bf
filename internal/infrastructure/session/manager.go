package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/infrastructure/config"
)

// Manager reads and writes the signed session cookies. Reads never fail:
// an absent or malformed entry resolves to the zero value, and malformed
// entries are logged and dropped.
type Manager struct {
	codec  *Codec
	cookie config.CookieConfig
	maxAge int
	logger *zap.Logger
}

// NewManager creates a session manager.
func NewManager(codec *Codec, cookieCfg config.CookieConfig, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		codec:  codec,
		cookie: cookieCfg,
		maxAge: int(ttl.Seconds()),
		logger: logger,
	}
}

// Resolve builds the request-scoped tenant context from the session cookies.
func (m *Manager) Resolve(c *gin.Context) Context {
	sc := Context{}
	if token, ok := m.AuthToken(c); ok {
		sc.AuthToken = token
	}
	if business, ok := m.CurrentBusiness(c); ok {
		sc.BusinessID = business.ID
	}
	if location, ok := m.CurrentLocation(c); ok {
		sc.LocationID = location.ID
	}
	if warehouse, ok := m.CurrentWarehouse(c); ok {
		sc.WarehouseID = warehouse.ID
	}
	return sc
}

// AuthToken returns the upstream bearer token, if present.
func (m *Manager) AuthToken(c *gin.Context) (string, bool) {
	var token string
	if !m.read(c, CookieAuthToken, &token) || token == "" {
		return "", false
	}
	return token, true
}

// CurrentBusiness returns the active business, if one is selected.
func (m *Manager) CurrentBusiness(c *gin.Context) (Business, bool) {
	var business Business
	if !m.read(c, CookieCurrentBusiness, &business) || business.ID == "" {
		return Business{}, false
	}
	return business, true
}

// CurrentLocation returns the active location, if one is selected.
func (m *Manager) CurrentLocation(c *gin.Context) (Location, bool) {
	var location Location
	if !m.read(c, CookieCurrentLocation, &location) || location.ID == "" {
		return Location{}, false
	}
	return location, true
}

// CurrentWarehouse returns the active warehouse, if one is selected.
func (m *Manager) CurrentWarehouse(c *gin.Context) (Warehouse, bool) {
	var warehouse Warehouse
	if !m.read(c, CookieWarehouse, &warehouse) || warehouse.ID == "" {
		return Warehouse{}, false
	}
	return warehouse, true
}

// ActiveBusiness returns the full business record cached at login.
func (m *Manager) ActiveBusiness(c *gin.Context) (Business, bool) {
	var business Business
	if !m.read(c, CookieActiveBusiness, &business) || business.ID == "" {
		return Business{}, false
	}
	return business, true
}

// Countries returns the cached country list.
func (m *Manager) Countries(c *gin.Context) ([]Country, bool) {
	var countries []Country
	if !m.read(c, CookieCountries, &countries) || len(countries) == 0 {
		return nil, false
	}
	return countries, true
}

// SetAuthToken persists the upstream bearer token at login.
func (m *Manager) SetAuthToken(c *gin.Context, token string) error {
	return m.write(c, CookieAuthToken, token)
}

// SetBusiness overwrites the active business (tenant switch / refresh).
func (m *Manager) SetBusiness(c *gin.Context, business Business) error {
	if err := m.write(c, CookieCurrentBusiness, business); err != nil {
		return err
	}
	return m.write(c, CookieActiveBusiness, business)
}

// SetLocation overwrites the active location.
func (m *Manager) SetLocation(c *gin.Context, location Location) error {
	return m.write(c, CookieCurrentLocation, location)
}

// SetWarehouse overwrites the active warehouse.
func (m *Manager) SetWarehouse(c *gin.Context, warehouse Warehouse) error {
	return m.write(c, CookieWarehouse, warehouse)
}

// SetCountries caches the country list at login.
func (m *Manager) SetCountries(c *gin.Context, countries []Country) error {
	return m.write(c, CookieCountries, countries)
}

// Clear removes all session cookies (logout).
func (m *Manager) Clear(c *gin.Context) {
	names := []string{
		CookieAuthToken,
		CookieCurrentBusiness,
		CookieCurrentLocation,
		CookieWarehouse,
		CookieActiveBusiness,
		CookieCountries,
	}
	m.applySameSite(c)
	for _, name := range names {
		c.SetCookie(name, "", -1, m.cookie.Path, m.cookie.Domain, m.cookie.Secure, true)
	}
}

func (m *Manager) read(c *gin.Context, name string, out any) bool {
	raw, err := c.Cookie(name)
	if err != nil || raw == "" {
		// Absent cookie means "not selected", not an error
		return false
	}
	if err := m.codec.Decode(name, raw, out); err != nil {
		if !errors.Is(err, ErrExpiredEntry) {
			m.logger.Warn("Dropping malformed session cookie",
				zap.String("cookie", name),
				zap.Error(err))
		}
		return false
	}
	return true
}

func (m *Manager) write(c *gin.Context, name string, value any) error {
	signed, err := m.codec.Encode(name, value)
	if err != nil {
		return err
	}
	m.applySameSite(c)
	c.SetCookie(name, signed, m.maxAge, m.cookie.Path, m.cookie.Domain, m.cookie.Secure, true)
	return nil
}

func (m *Manager) applySameSite(c *gin.Context) {
	switch m.cookie.SameSite {
	case "strict":
		c.SetSameSite(http.SameSiteStrictMode)
	case "none":
		c.SetSameSite(http.SameSiteNoneMode)
	default:
		c.SetSameSite(http.SameSiteLaxMode)
	}
}
