package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	c := New(domain.ConnectionProfile{
		Host:        server.URL,
		Token:       "secret",
		SalonID:     "42",
		AccountCode: "ACC-1",
		RetailCode:  "RTL-9",
	})
	return c, server
}

func TestClient_FetchReport(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1}]}`))
	})
	defer server.Close()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	payload, err := c.FetchReport(context.Background(), "customer-visit", from, to)
	require.NoError(t, err)
	require.NotNil(t, payload)

	assert.Equal(t, "/reports/customer-visit", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []string{"42"}, gotQuery["salon_id"])
	assert.Equal(t, []string{"2024-01-01"}, gotQuery["from_date"])
	assert.Equal(t, []string{"2024-01-31"}, gotQuery["to_date"])
}

func TestClient_ReadTables(t *testing.T) {
	var gotBody map[string]any

	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success":true,"data":{"inventory":[]}}`))
	})
	defer server.Close()

	_, err := c.ReadTables(context.Background(), "inventory", "tax_master")
	require.NoError(t, err)

	assert.Equal(t, []any{"inventory", "tax_master"}, gotBody["tables"])
	assert.Equal(t, "ACC-1", gotBody["account_code"])
	assert.Equal(t, "RTL-9", gotBody["retail_code"])
}

func TestClient_EnvelopeFailure(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"salon not found"}`))
	})
	defer server.Close()

	_, err := c.FetchReport(context.Background(), "cash-flow", time.Time{}, time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salon not found")
}

func TestClient_BareArrayPayload(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	})
	defer server.Close()

	payload, err := c.FetchReport(context.Background(), "stock-out", time.Time{}, time.Time{})
	require.NoError(t, err)

	arr, ok := payload.([]any)
	require.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestClient_HTTPErrorStatus(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	defer server.Close()

	_, err := c.FetchReport(context.Background(), "cash-flow", time.Time{}, time.Time{})
	require.Error(t, err)
}

func TestClient_UndecodablePayloadDegrades(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	})
	defer server.Close()

	payload, err := c.FetchReport(context.Background(), "cash-flow", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Nil(t, payload)
}
