package atsclients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreezyHRClient_FetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"b1","name":"Sales Rep","department":{"name":"Sales"},"city":"Chicago","state":"IL","country":"","description":"desc","url":"https://acme.breezy.hr/p/b1","published_date":"2026-04-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	client := &BreezyHRClient{HTTPClient: srv.Client(), Token: "acme"}
	jobs, err := client.fetchFrom(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "b1", jobs[0].ExternalID)
	assert.Equal(t, "Chicago, IL", jobs[0].Location)
}

func TestValidateBreezyHRResponse(t *testing.T) {
	assert.True(t, ValidateBreezyHRResponse([]byte(`[{"id":"b1"}]`)))
	assert.False(t, ValidateBreezyHRResponse([]byte(`[]`)))
}
