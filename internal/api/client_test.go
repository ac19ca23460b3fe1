package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "jti_testtoken")
	return srv, client
}

func jsonResponse(data any) []byte {
	b, _ := json.Marshal(map[string]any{"data": data})
	return b
}

func TestClientSendsBearerToken(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jti_testtoken", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write(jsonResponse([]map[string]any{}))
	})

	_, err := client.ListKeywords()
	require.NoError(t, err)
}

func TestDecodeAcceptsWrappedResponse(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(jsonResponse([]map[string]any{
			{"id": "kw-1", "keyword": "APT29", "category": "APT Group", "is_active": true},
		}))
	})

	items, err := client.ListKeywords()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kw-1", items[0].ID)
	assert.Equal(t, "APT Group", items[0].Category)
}

func TestDecodeAcceptsBareResponse(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "kw-1", "keyword": "APT29", "is_active": true},
		})
	})

	items, err := client.ListKeywords()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "APT29", items[0].Keyword)
	assert.Empty(t, items[0].Category)
}

func TestErrorExtractionFromStringField(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": "keyword already exists"})
	})

	_, err := client.AddKeyword(AddKeywordInput{Keyword: "APT29"})
	require.Error(t, err)
	assert.Equal(t, "keyword already exists", err.Error())
}

func TestErrorExtractionFromDetailField(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"detail": "keyword must not be empty"})
	})

	_, err := client.AddKeyword(AddKeywordInput{Keyword: ""})
	require.Error(t, err)
	assert.Equal(t, "keyword must not be empty", err.Error())
}

func TestErrorExtractionFromNestedObject(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "FORBIDDEN", "message": "admin only"},
		})
	})

	err := client.DeleteKeyword("kw-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN: admin only", err.Error())
}

func TestErrorFallsBackToStatusAndBody(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.ListKeywords()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestWithTimeoutClonesClient(t *testing.T) {
	client := NewClient("http://localhost:1", "tok")
	clone := client.WithTimeout(5 * time.Second)
	assert.NotSame(t, client, clone)
	assert.Equal(t, client.baseURL, clone.baseURL)
	assert.Equal(t, client.token, clone.token)
	assert.Equal(t, 5*time.Second, clone.httpClient.Timeout)
}

func TestSetTokenAppliesToNextRequest(t *testing.T) {
	var got string
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write(jsonResponse([]map[string]any{}))
	})

	client.SetToken("jti_rotated")
	_, err := client.ListKeywords()
	require.NoError(t, err)
	assert.Equal(t, "Bearer jti_rotated", got)
}
