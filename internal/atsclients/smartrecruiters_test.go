package atsclients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartRecruitersClient_FetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"id":"s1","name":"IT Manager","ref":"https://jobs.smartrecruiters.com/acme/s1","department":{"label":"IT"},"location":{"city":"Denver","country":"US"},"releasedDate":"2026-01-15T00:00:00Z"}]}`))
	}))
	defer srv.Close()

	client := &SmartRecruitersClient{HTTPClient: srv.Client(), Token: "acme"}
	jobs, err := client.fetchFrom(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "s1", jobs[0].ExternalID)
	assert.Equal(t, "Denver, US", jobs[0].Location)
}

func TestValidateSmartRecruitersResponse(t *testing.T) {
	assert.True(t, ValidateSmartRecruitersResponse([]byte(`{"content":[{"id":"s1"}]}`)))
	assert.False(t, ValidateSmartRecruitersResponse([]byte(`{"content":[]}`)))
}
