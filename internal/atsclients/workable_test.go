package atsclients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkableClient_FetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs":[{"shortcode":"ABC123","title":"Growth Marketer","department":"Marketing","description":"desc","published_on":"2026-03-01","city":"Austin","state":"TX","country":"USA"}]}`))
	}))
	defer srv.Close()

	client := &WorkableClient{HTTPClient: srv.Client(), Token: "acme"}
	jobs, err := client.fetchFrom(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "ABC123", jobs[0].ExternalID)
	assert.Equal(t, "Austin, TX, USA", jobs[0].Location)
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, filterEmpty("a", "", "b"))
}

func TestValidateWorkableResponse(t *testing.T) {
	assert.True(t, ValidateWorkableResponse([]byte(`{"jobs":[{"shortcode":"x"}]}`)))
	assert.False(t, ValidateWorkableResponse([]byte(`{"jobs":[]}`)))
}
