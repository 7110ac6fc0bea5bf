package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/infrastructure/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	codec, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)
	return NewManager(codec, config.CookieConfig{Path: "/", SameSite: "lax"}, time.Hour, zap.NewNop())
}

func ginContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)

	signed, err := codec.Encode(CookieCurrentBusiness, Business{ID: "biz-1", Name: "Acme Diner"})
	require.NoError(t, err)

	var got Business
	require.NoError(t, codec.Decode(CookieCurrentBusiness, signed, &got))
	assert.Equal(t, "biz-1", got.ID)
	assert.Equal(t, "Acme Diner", got.Name)
}

func TestCodecRejectsWrongCookieName(t *testing.T) {
	codec, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)

	signed, err := codec.Encode(CookieCurrentBusiness, Business{ID: "biz-1"})
	require.NoError(t, err)

	var got Business
	err = codec.Decode(CookieCurrentLocation, signed, &got)
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestCodecRejectsTamperedValue(t *testing.T) {
	codec, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)

	signed, err := codec.Encode(CookieAuthToken, "token-123")
	require.NoError(t, err)

	var got string
	err = codec.Decode(CookieAuthToken, signed+"x", &got)
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestCodecRejectsExpiredEntry(t *testing.T) {
	codec, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)
	codec.ttl = -time.Minute

	signed, err := codec.Encode(CookieAuthToken, "token-123")
	require.NoError(t, err)

	var got string
	assert.ErrorIs(t, codec.Decode(CookieAuthToken, signed, &got), ErrExpiredEntry)
}

func TestCodecRequiresSecret(t *testing.T) {
	_, err := NewCodec("", time.Hour)
	assert.Error(t, err)
}

func TestManagerResolve(t *testing.T) {
	m := newTestManager(t)

	// Write cookies through one context, then replay them on a request
	wc, w := ginContext(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, m.SetAuthToken(wc, "token-123"))
	require.NoError(t, m.SetBusiness(wc, Business{ID: "biz-1", Name: "Acme"}))
	require.NoError(t, m.SetLocation(wc, Location{ID: "loc-1", Name: "Downtown"}))
	require.NoError(t, m.SetWarehouse(wc, Warehouse{ID: "wh-1", Name: "Main"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range w.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rc, _ := ginContext(req)

	sc := m.Resolve(rc)
	assert.Equal(t, "token-123", sc.AuthToken)
	assert.Equal(t, "biz-1", sc.BusinessID)
	assert.Equal(t, "loc-1", sc.LocationID)
	assert.Equal(t, "wh-1", sc.WarehouseID)
	assert.True(t, sc.Authenticated())
	assert.True(t, sc.TenantResolved())
}

func TestManagerAbsentCookiesResolveEmpty(t *testing.T) {
	m := newTestManager(t)
	c, _ := ginContext(httptest.NewRequest(http.MethodGet, "/", nil))

	sc := m.Resolve(c)
	assert.Empty(t, sc.AuthToken)
	assert.False(t, sc.Authenticated())
	assert.False(t, sc.TenantResolved())

	_, ok := m.CurrentBusiness(c)
	assert.False(t, ok)
}

func TestManagerMalformedCookieDropped(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieCurrentBusiness, Value: "not-a-token"})
	c, _ := ginContext(req)

	_, ok := m.CurrentBusiness(c)
	assert.False(t, ok, "malformed cookie must resolve as absent, not error")
}

func TestManagerClear(t *testing.T) {
	m := newTestManager(t)
	c, w := ginContext(httptest.NewRequest(http.MethodGet, "/", nil))
	m.Clear(c)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, cookie := range cookies {
		assert.Equal(t, -1, cookie.MaxAge, "cookie %s should be expired", cookie.Name)
	}
}

func TestManagerCountriesRoundTrip(t *testing.T) {
	m := newTestManager(t)
	wc, w := ginContext(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, m.SetCountries(wc, []Country{{Code: "US", Name: "United States"}, {Code: "GB", Name: "United Kingdom"}}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range w.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rc, _ := ginContext(req)

	countries, ok := m.Countries(rc)
	require.True(t, ok)
	assert.Len(t, countries, 2)
	assert.Equal(t, "US", countries[0].Code)
}
