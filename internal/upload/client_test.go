package upload

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload_SendsManifestAndAPIKeyHeaders(t *testing.T) {
	var gotAPIKey, gotManifest string
	var gotPayload Payload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-API-Key")
		gotManifest = r.Header.Get("X-Lead-Manifest")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"ok","stats":{"inserted":1}}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "api-key-123", "manifest-secret")
	payload := Payload{Location: "marketing-discovery", Leads: []Lead{{CompanyName: "Acme"}}}

	result, err := client.Upload(context.Background(), payload, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Message)
	assert.Equal(t, "api-key-123", gotAPIKey)
	assert.NotEmpty(t, gotManifest)
	assert.Equal(t, "marketing-discovery", gotPayload.Location)

	claims, err := VerifyManifest("manifest-secret", gotManifest)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.LeadsCount)
	assert.Equal(t, "run-1", claims.RunID)
}

func TestClient_Upload_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid api key"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "bad-key", "")
	_, err := client.Upload(context.Background(), Payload{}, "run-1")
	assert.Error(t, err)
}
