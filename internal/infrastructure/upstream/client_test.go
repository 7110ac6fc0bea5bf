package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, 5*time.Second, opts...)
	require.NoError(t, err)
	return client, server
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	_, err := Get[map[string]any](context.Background(), client, "token-123", "/brands/1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestBearerOmittedWhenTokenEmpty(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	_, err := Get[map[string]any](context.Background(), client, "", "/brands/1")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestBearerOmittedOnPlainClient(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, Plain())

	_, err := Post[map[string]any](context.Background(), client, "token-123", "/auth/login", echoPayload{Name: "x"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody echoPayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"name":"created"}`))
	})

	result, err := Post[echoPayload](context.Background(), client, "t", "/brands/loc-1/create", echoPayload{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, gotContentType)
	assert.Equal(t, "Acme", gotBody.Name)
	assert.Equal(t, "created", result.Name)
}

func TestPostRawCSVDisablesJSONHandling(t *testing.T) {
	var gotContentType, gotBody string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"taskId":"task-1"}`))
	})

	result, err := PostRaw[map[string]string](context.Background(), client, "t", "/stocks/bulk", []byte("sku,qty\nA,1\n"), ContentTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeCSV, gotContentType)
	assert.Equal(t, "sku,qty\nA,1\n", gotBody)
	assert.Equal(t, "task-1", result["taskId"])
}

func TestNon2xxIsNormalized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Brand already exists","code":"DUPLICATE","correlationId":"corr-9"}`))
	})

	_, err := Post[echoPayload](context.Background(), client, "t", "/brands/loc-1/create", echoPayload{Name: "Acme"})
	require.Error(t, err)

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusConflict, upErr.Status)
	assert.Equal(t, "DUPLICATE", upErr.Code)
	assert.Equal(t, "Brand already exists", upErr.Message)
	assert.Equal(t, "corr-9", upErr.CorrelationID)
}

func TestSubscriptionLimitMessagePassesVerbatim(t *testing.T) {
	const limitMsg = "Your upload is beyond the limit of the current subscription package. Upgrade to import more than 500 items."
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": limitMsg})
	})

	_, err := PostRaw[map[string]string](context.Background(), client, "t", "/stocks/bulk", []byte("sku\n"), ContentTypeCSV)
	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, limitMsg, upErr.Message, "upstream limit message must not be replaced by a generic string")
}

func TestNon2xxWithoutBodyGetsFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := Get[echoPayload](context.Background(), client, "t", "/brands/missing")
	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.True(t, upErr.IsNotFound())
	assert.NotEmpty(t, upErr.Message)
	assert.NotContains(t, upErr.Message, "404", "fallback message must be display-safe")
}

func TestTransportFailureIsNormalized(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1", time.Second)
	require.NoError(t, err)

	_, err = Get[echoPayload](context.Background(), client, "t", "/brands/1")
	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, CodeUnreachable, upErr.Code)
	assert.Zero(t, upErr.Status)
}

func TestContextCancellationAborts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := Get[echoPayload](ctx, client, "t", "/brands/1")
	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, CodeUnreachable, upErr.Code)
}

func TestQueryParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("status")
		w.Write([]byte(`{}`))
	})

	_, err := Get[map[string]any](context.Background(), client, "t", "/brands", WithQueryParam("status", "active"))
	require.NoError(t, err)
	assert.Equal(t, "active", gotQuery)
}

func TestBuildURLAbsolutePassthrough(t *testing.T) {
	client, err := NewClient("http://base.example.com/api", time.Second)
	require.NoError(t, err)

	u, err := client.buildURL("https://other.example.com/v2/ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/v2/ping", u)

	u, err = client.buildURL("brands/1", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://base.example.com/api/brands/1", u)
}

func TestNewListQueryZeroBasedOnWire(t *testing.T) {
	q := NewListQuery(1, 25)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 25, q.Size)

	q = NewListQuery(3, 10).
		WithFilter("name", OpLike, FieldString, "acme").
		WithSort("createdAt", SortDesc)
	assert.Equal(t, 2, q.Page)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, Filter{Key: "name", Operator: OpLike, FieldType: FieldString, Value: "acme"}, q.Filters[0])
	require.Len(t, q.Sorts, 1)
	assert.Equal(t, SortDesc, q.Sorts[0].Direction)

	raw, err := json.Marshal(NewListQuery(0, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"filters":[],"sorts":[],"page":0,"size":20}`, string(raw))
}

func TestPagedResultDecode(t *testing.T) {
	raw := `{"content":[{"name":"a"},{"name":"b"}],"totalElements":12,"totalPages":6,"page":0,"size":2,"last":false}`
	var page PagedResult[echoPayload]
	require.NoError(t, json.Unmarshal([]byte(raw), &page))
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(12), page.TotalElements)
}
