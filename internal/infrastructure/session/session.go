// Package session resolves and persists the tenant context carried in signed
// session cookies. The gateway holds no authoritative state; these cookies are
// the only session storage.
package session

// Cookie names used by the gateway. The browser never reads them directly
// (httpOnly); they exist so the tenant scope survives across requests.
const (
	CookieAuthToken       = "authToken"
	CookieCurrentBusiness = "currentBusiness"
	CookieCurrentLocation = "currentLocation"
	CookieWarehouse       = "currentWarehouse"
	CookieActiveBusiness  = "activeBusiness"
	CookieCountries       = "countries"
)

// Business is the business entry persisted in the session
type Business struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
}

// Location is the active location/branch entry persisted in the session
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Warehouse is the active warehouse entry persisted in the session
type Warehouse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Country is one entry of the cached country list
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Context is the request-scoped tenant context threaded explicitly into every
// action call. It replaces ad hoc cookie reads: middleware resolves it once
// per request and handlers pass it down.
type Context struct {
	BusinessID  string
	LocationID  string
	WarehouseID string
	AuthToken   string
}

// Authenticated reports whether the session carries an auth token.
func (c Context) Authenticated() bool {
	return c.AuthToken != ""
}

// TenantResolved reports whether a business and location have been selected.
// Callers treat false as "no tenant selected" and redirect to the selection flow.
func (c Context) TenantResolved() bool {
	return c.BusinessID != "" && c.LocationID != ""
}
