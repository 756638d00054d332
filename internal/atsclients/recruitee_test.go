package atsclients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecruiteeClient_FetchJobs(t *testing.T) {
	t.Run("uses careers_url when present", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"offers":[{"id":42,"title":"Marketing Lead","department":"Marketing","location":"Berlin","description":"desc","careers_url":"https://acme.recruitee.com/o/42","created_at":"2026-02-10T00:00:00Z"}]}`))
		}))
		defer srv.Close()

		client := &RecruiteeClient{HTTPClient: srv.Client(), Token: "acme"}
		jobs, err := client.fetchFrom(context.Background(), srv.URL)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "42", jobs[0].ExternalID)
		assert.Equal(t, "https://acme.recruitee.com/o/42", jobs[0].JobURL)
	})

	t.Run("falls back to constructed URL when careers_url is empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"offers":[{"id":7,"title":"X"}]}`))
		}))
		defer srv.Close()

		client := &RecruiteeClient{HTTPClient: srv.Client(), Token: "acme"}
		jobs, err := client.fetchFrom(context.Background(), srv.URL)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "https://acme.recruitee.com/o/7", jobs[0].JobURL)
	})
}

func TestValidateRecruiteeResponse(t *testing.T) {
	assert.True(t, ValidateRecruiteeResponse([]byte(`{"offers":[{"id":1}]}`)))
	assert.False(t, ValidateRecruiteeResponse([]byte(`{"offers":[]}`)))
}
