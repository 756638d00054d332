package atsclients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mpetrova/hirescout/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreenhouseClient_FetchJobs(t *testing.T) {
	t.Run("normalizes a 200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"jobs":[{"id":1,"title":"Marketing Manager","absolute_url":"https://boards.greenhouse.io/acme/jobs/1","updated_at":"2026-01-01T00:00:00Z","content":"desc","location":{"name":"Remote"},"departments":[{"name":"Marketing"}]}]}`))
		}))
		defer srv.Close()

		client := &GreenhouseClient{HTTPClient: srv.Client(), Token: "acme"}
		jobs, err := client.fetchFrom(context.Background(), srv.URL)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "1", jobs[0].ExternalID)
		assert.Equal(t, "Marketing", jobs[0].Department)
	})

	t.Run("404 is a normal empty result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := &GreenhouseClient{HTTPClient: srv.Client(), Token: "nonexistent"}
		jobs, err := client.fetchFrom(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Nil(t, jobs)
	})

	t.Run("5xx is transient", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := &GreenhouseClient{HTTPClient: srv.Client(), Token: "acme"}
		_, err := client.fetchFrom(context.Background(), srv.URL)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.Transient))
	})
}

func TestValidateGreenhouseResponse(t *testing.T) {
	assert.True(t, ValidateGreenhouseResponse([]byte(`{"jobs":[{"id":1}]}`)))
	assert.False(t, ValidateGreenhouseResponse([]byte(`{"jobs":[]}`)))
	assert.False(t, ValidateGreenhouseResponse([]byte(`not json`)))
}
