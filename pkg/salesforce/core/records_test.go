package sfcore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/natserract/sfcli/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuth hands out a fixed session pointing at the test server.
type stubAuth struct {
	session *Session
}

func (a *stubAuth) Authenticate(ctx context.Context) (*Session, error) {
	return a.session, nil
}

func newTestSalesforce(t *testing.T, handler http.HandlerFunc) *Salesforce {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		InstanceURL:  server.URL,
		AuthMode:     config.AuthModeClientCredentials,
		ClientID:     "k",
		ClientSecret: "s",
		APIVersion:   "v59.0",
	}

	client := NewSalesforceWithLogger(cfg, &stubAuth{session: &Session{
		AccessToken: "test-token",
		InstanceURL: server.URL,
	}}, zap.NewNop())

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	return client
}

func TestQuery(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/query", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "SELECT Id, FirstName, LastName, Email, Phone, AccountId FROM Contact LIMIT 5", r.URL.Query().Get("q"))
		w.Write([]byte(`{
			"totalSize": 2,
			"done": true,
			"records": [
				{"attributes":{"type":"Contact","url":"/x"},"Id":"003A","FirstName":"Ada","LastName":"Lovelace","Email":null,"Phone":"555","AccountId":"001A"},
				{"attributes":{"type":"Contact","url":"/y"},"Id":"003B","FirstName":"Alan","LastName":"Turing","Email":"alan@example.com","Phone":null,"AccountId":"001B"}
			]
		}`))
	})

	records, err := client.Query(context.Background(), ObjectContact, ObjectContact.QueryFields(), 5)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// The attributes envelope is stripped; requested fields survive.
	_, hasAttributes := records[0]["attributes"]
	assert.False(t, hasAttributes)
	assert.Equal(t, "003A", records[0]["Id"])
	assert.Equal(t, "Lovelace", records[0]["LastName"])
	assert.Nil(t, records[0]["Email"])
	assert.Equal(t, "alan@example.com", records[1]["Email"])
}

func TestQueryEmptyResult(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalSize":0,"done":true,"records":[]}`))
	})

	records, err := client.Query(context.Background(), ObjectLead, nil, 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestQueryMalformedSOQL(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`[{"message":"unexpected token","errorCode":"MALFORMED_QUERY"}]`))
	})

	_, err := client.Query(context.Background(), ObjectAccount, nil, 10)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "MALFORMED_QUERY", apiErr.Code)
}

func TestCreate(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/data/v59.0/sobjects/Account", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var fields map[string]string
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.Equal(t, "Acme", fields["Name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"001NEW","success":true,"errors":[]}`))
	})

	id, err := client.Create(context.Background(), ObjectAccount, map[string]string{"Name": "Acme", "Industry": "Software"})
	require.NoError(t, err)
	assert.Equal(t, "001NEW", id)
}

func TestCreateValidationError(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`[{"message":"Required fields are missing: [LastName]","errorCode":"REQUIRED_FIELD_MISSING"}]`))
	})

	_, err := client.Create(context.Background(), ObjectContact, map[string]string{"FirstName": "Ada"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "REQUIRED_FIELD_MISSING", apiErr.Code)
	assert.Contains(t, apiErr.Message, "LastName")
}

func TestUpdate(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/services/data/v59.0/sobjects/Lead/00QX", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Update(context.Background(), ObjectLead, "00QX", map[string]string{"Status": "Working"})
	require.NoError(t, err)
}

func TestUpdateRequiresID(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	err := client.Update(context.Background(), ObjectLead, "", map[string]string{"Status": "Working"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
}

func TestDeleteIdempotentNotFound(t *testing.T) {
	deleted := false
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if !deleted {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`[{"message":"entity is deleted","errorCode":"ENTITY_IS_DELETED"}]`))
	})

	require.NoError(t, client.Delete(context.Background(), ObjectOpportunity, "006X"))

	// Second delete of the same record reports NotFound instead of crashing.
	err := client.Delete(context.Background(), ObjectOpportunity, "006X")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNotFound, apiErr.Kind)
	assert.Equal(t, "ENTITY_IS_DELETED", apiErr.Code)
}

func TestRateLimited(t *testing.T) {
	client := newTestSalesforce(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`[{"message":"TotalRequests Limit exceeded","errorCode":"REQUEST_LIMIT_EXCEEDED"}]`))
	})

	_, err := client.Query(context.Background(), ObjectAccount, nil, 10)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRateLimited, apiErr.Kind)
}

func TestRequireSession(t *testing.T) {
	cfg := &config.Config{
		InstanceURL:  "https://example.my.salesforce.com",
		AuthMode:     config.AuthModeClientCredentials,
		ClientID:     "k",
		ClientSecret: "s",
		APIVersion:   "v59.0",
	}
	client := NewSalesforceWithLogger(cfg, &stubAuth{}, zap.NewNop())

	_, err := client.Query(context.Background(), ObjectAccount, nil, 10)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "not authenticated")
}
