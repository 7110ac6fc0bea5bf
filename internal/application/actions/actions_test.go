package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// remoteDouble is a scriptable stand-in for the remote business API.
type remoteDouble struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
	server   *httptest.Server
}

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

func newRemoteDouble(t *testing.T) *remoteDouble {
	t.Helper()
	d := &remoteDouble{routes: make(map[string]func(http.ResponseWriter, *http.Request))}
	d.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0)
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		d.mu.Lock()
		d.requests = append(d.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		handler := d.routes[r.Method+" "+r.URL.Path]
		d.mu.Unlock()
		if handler == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(d.server.Close)
	return d
}

func (d *remoteDouble) on(method, path string, handler func(w http.ResponseWriter, r *http.Request)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[method+" "+path] = handler
}

func (d *remoteDouble) onJSON(method, path string, status int, body any) {
	d.on(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (d *remoteDouble) calls() []recordedRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]recordedRequest, len(d.requests))
	copy(out, d.requests)
	return out
}

func (d *remoteDouble) client(t *testing.T) *upstream.Client {
	t.Helper()
	client, err := upstream.NewClient(d.server.URL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func testSession() session.Context {
	return session.Context{
		BusinessID:  "biz-1",
		LocationID:  "loc-1",
		WarehouseID: "wh-1",
		AuthToken:   "tok-1",
	}
}

func TestBrandCreateSuccess(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/brands/loc-1/create", http.StatusOK,
		Brand{ID: "b-1", Name: "Acme", Location: "loc-1"})

	brands := NewBrands(double.client(t), nil)
	outcome := brands.Create(context.Background(), testSession(), schema.BrandPayload{Name: "Acme"})

	require.Equal(t, TypeSuccess, outcome.Type)
	assert.Equal(t, "Brand created successfully", outcome.Message)
	assert.Equal(t, "/brands", outcome.NavigateTo)
	assert.Equal(t, "b-1", outcome.Data.ID)

	calls := double.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok-1", calls[0].Auth)

	var body map[string]any
	require.NoError(t, json.Unmarshal(calls[0].Body, &body))
	assert.Equal(t, "Acme", body["name"])
	assert.Equal(t, "loc-1", body["location"], "create body carries the resolved location")
}

func TestProductCreateOmitsUnsetOptionals(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/products/loc-1/create", http.StatusOK,
		Product{ID: "p-1", Name: "Widget"})

	products := NewProducts(double.client(t), nil)
	outcome := products.Create(context.Background(), testSession(),
		schema.ProductPayload{Name: "Widget", SKU: "W-1"})
	require.Equal(t, TypeSuccess, outcome.Type)

	calls := double.calls()
	require.Len(t, calls, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal(calls[0].Body, &body))
	assert.NotContains(t, body, "price", "unset optionals must be omitted, not sent as null")
	assert.NotContains(t, body, "cost")
	assert.Equal(t, "Widget", body["name"])
}

func TestBrandCreateEmptyPayloadSkipsNetwork(t *testing.T) {
	double := newRemoteDouble(t)

	brands := NewBrands(double.client(t), nil)
	outcome := brands.Create(context.Background(), testSession(), schema.BrandPayload{})

	assert.Equal(t, TypeError, outcome.Type)
	assert.Equal(t, schema.MsgRequiredFields, outcome.Message)
	assert.Empty(t, double.calls(), "validation failure must not reach the network")
}

func TestBrandCreateWithoutTenantFails(t *testing.T) {
	double := newRemoteDouble(t)

	brands := NewBrands(double.client(t), nil)
	outcome := brands.Create(context.Background(), session.Context{AuthToken: "tok"}, schema.BrandPayload{Name: "Acme"})

	assert.Equal(t, TypeError, outcome.Type)
	assert.Equal(t, MsgSomethingWrong, outcome.Message)
	assert.Empty(t, double.calls())
}

func TestBrandCreateSurfacesUpstreamMessage(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/brands/loc-1/create", http.StatusConflict,
		map[string]string{"message": "Brand already exists", "code": "DUPLICATE"})

	brands := NewBrands(double.client(t), nil)
	outcome := brands.Create(context.Background(), testSession(), schema.BrandPayload{Name: "Acme"})

	assert.Equal(t, TypeError, outcome.Type)
	assert.Equal(t, "Brand already exists", outcome.Message)
}

func TestStockUpdateZeroHitsSkipsPut(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/stocks/search", http.StatusOK,
		upstream.PagedResult[Stock]{Content: []Stock{}, TotalElements: 0})

	stocks := NewStocks(double.client(t), nil)
	outcome := stocks.Update(context.Background(), testSession(), "st-1",
		schema.StockPayload{ProductID: "p-1", Quantity: schema.NewOptionalInt(4)})

	assert.Equal(t, TypeError, outcome.Type)
	assert.Equal(t, MsgStockNotFound, outcome.Message)

	for _, call := range double.calls() {
		assert.NotEqual(t, http.MethodPut, call.Method, "no PUT may be issued when the stock row is gone")
	}
}

func TestStockUpdateFoundIssuesPut(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/stocks/search", http.StatusOK,
		upstream.PagedResult[Stock]{Content: []Stock{{ID: "st-1"}}, TotalElements: 1})
	double.onJSON(http.MethodPut, "/stocks/st-1", http.StatusOK,
		Stock{ID: "st-1", ProductID: "p-1", Quantity: 4})

	stocks := NewStocks(double.client(t), nil)
	outcome := stocks.Update(context.Background(), testSession(), "st-1",
		schema.StockPayload{ProductID: "p-1", Quantity: schema.NewOptionalInt(4)})

	require.Equal(t, TypeSuccess, outcome.Type)
	assert.Equal(t, "Stock updated successfully", outcome.Message)
	assert.Equal(t, int64(4), outcome.Data.Quantity)
}

func TestRecipeUpdateReconcilesVariants(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodGet, "/recipes/r-1", http.StatusOK, Recipe{
		ID:   "r-1",
		Name: "Margherita",
		Variants: []RecipeVariant{
			{ID: "v-1", Name: "Small"},
			{ID: "v-2", Name: "Large"},
		},
	})
	double.onJSON(http.MethodPut, "/recipes/r-1", http.StatusOK, Recipe{ID: "r-1", Name: "Margherita"})

	recipes := NewRecipes(double.client(t), nil)
	outcome := recipes.Update(context.Background(), testSession(), "r-1", schema.RecipePayload{
		Name: "Margherita",
		Variants: []schema.RecipeVariantPayload{
			{ID: "v-1", Name: "Small"},
			{Name: "Family"}, // new variant, no id yet
		},
	})
	require.Equal(t, TypeSuccess, outcome.Type)

	calls := double.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodGet, calls[0].Method)

	var body struct {
		RemovedVariants []string `json:"removedVariants"`
	}
	require.NoError(t, json.Unmarshal(calls[1].Body, &body))
	assert.Equal(t, []string{"v-2"}, body.RemovedVariants, "variants dropped from the form are reported as removed")
}

func TestUpdateGetRoundTrip(t *testing.T) {
	double := newRemoteDouble(t)
	stored := Customer{ID: "c-1", Name: "Old Name"}
	double.on(http.MethodPut, "/customers/c-1", func(w http.ResponseWriter, r *http.Request) {
		var payload schema.CustomerPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		stored.Name = payload.Name
		stored.Email = payload.Email
		_ = json.NewEncoder(w).Encode(stored)
	})
	double.on(http.MethodGet, "/customers/c-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(stored)
	})

	customers := NewCustomers(double.client(t), nil)
	outcome := customers.Update(context.Background(), testSession(), "c-1",
		schema.CustomerPayload{Name: "New Name", Email: "new@example.com"})
	require.Equal(t, TypeSuccess, outcome.Type)

	got, err := customers.Get(context.Background(), testSession(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "new@example.com", got.Email)
}

func TestDeleteSuccess(t *testing.T) {
	double := newRemoteDouble(t)
	double.on(http.MethodDelete, "/warehouses/w-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	warehouses := NewWarehouses(double.client(t), nil)
	outcome := warehouses.Delete(context.Background(), testSession(), "w-1")

	require.Equal(t, TypeSuccess, outcome.Type)
	assert.Equal(t, "Warehouse deleted successfully", outcome.Message)
}

func TestSearchReturnsPage(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/products/search", http.StatusOK, upstream.PagedResult[Product]{
		Content:       []Product{{ID: "p-1", Name: "Widget"}},
		TotalElements: 1,
		TotalPages:    1,
		Size:          20,
		Last:          true,
	})

	products := NewProducts(double.client(t), nil)
	page, err := products.Search(context.Background(), testSession(), upstream.NewListQuery(1, 20))
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Widget", page.Content[0].Name)
}

func TestImportStocksPrecheckFailureSkipsNetwork(t *testing.T) {
	double := newRemoteDouble(t)

	importer := NewImporter(double.client(t), nil)
	outcome := importer.ImportStocks(context.Background(), testSession(), []byte("name\nWidget\n"))

	assert.Equal(t, TypeError, outcome.Type)
	assert.Contains(t, outcome.Message, "missing required columns")
	assert.Empty(t, double.calls())
}

func TestImportStocksSubscriptionLimitVerbatim(t *testing.T) {
	const limitMsg = "Your upload is beyond the limit of the current subscription package."
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/stocks/loc-1/import", http.StatusForbidden,
		map[string]string{"message": limitMsg})

	importer := NewImporter(double.client(t), nil)
	outcome := importer.ImportStocks(context.Background(), testSession(), []byte("sku,quantity\nW-1,5\n"))

	assert.Equal(t, TypeError, outcome.Type)
	assert.Equal(t, limitMsg, outcome.Message)
}

func TestImportStocksStartsTask(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/stocks/loc-1/import", http.StatusOK, ImportTask{TaskID: "task-7"})

	importer := NewImporter(double.client(t), nil)
	outcome := importer.ImportStocks(context.Background(), testSession(), []byte("sku,quantity\nW-1,5\n"))

	require.Equal(t, TypeSuccess, outcome.Type)
	assert.Equal(t, "task-7", outcome.Data.TaskID)
}

func TestTaskStatusPolling(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodGet, "/tasks/task-7/status", http.StatusOK,
		TaskStatus{TaskID: "task-7", Status: "processing", Processed: 40, Total: 100})

	importer := NewImporter(double.client(t), nil)
	status, err := importer.TaskStatus(context.Background(), testSession(), "task-7")
	require.NoError(t, err)
	assert.Equal(t, "processing", status.Status)
	assert.Equal(t, 40, status.Processed)
}

func TestLoginSuccess(t *testing.T) {
	double := newRemoteDouble(t)
	double.onJSON(http.MethodPost, "/auth/login", http.StatusOK, LoginResult{
		Token:      "tok-new",
		Businesses: []session.Business{{ID: "biz-1", Name: "Acme Cafe"}},
	})

	plain, err := upstream.NewClient(double.server.URL, 5*time.Second, upstream.Plain())
	require.NoError(t, err)

	auth := NewAuth(plain, double.client(t), nil)
	outcome := auth.Login(context.Background(), schema.LoginPayload{Email: "a@b.com", Password: "pw"})

	require.Equal(t, TypeSuccess, outcome.Type)
	assert.Equal(t, "tok-new", outcome.Data.Token)

	calls := double.calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Auth, "login must not carry a bearer header")
}

func TestLoginValidationFailure(t *testing.T) {
	double := newRemoteDouble(t)
	plain, err := upstream.NewClient(double.server.URL, 5*time.Second, upstream.Plain())
	require.NoError(t, err)

	auth := NewAuth(plain, double.client(t), nil)
	outcome := auth.Login(context.Background(), schema.LoginPayload{Email: "not-an-email"})

	assert.Equal(t, TypeError, outcome.Type)
	assert.Equal(t, schema.MsgRequiredFields, outcome.Message)
	assert.Empty(t, double.calls())
}
