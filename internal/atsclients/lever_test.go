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

func TestLeverClient_FetchJobs(t *testing.T) {
	t.Run("paginates until a short page", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.Write([]byte(`[{"id":"a","text":"SDR"},{"id":"b","text":"AE"}]`))
				return
			}
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := &LeverClient{HTTPClient: srv.Client(), Token: "acme"}
		jobs, err := client.fetchFrom(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Len(t, jobs, 2)
		assert.Equal(t, 2, calls)
	})

	t.Run("404 returns empty, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := &LeverClient{HTTPClient: srv.Client(), Token: "acme"}
		jobs, err := client.fetchFrom(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Nil(t, jobs)
	})

	t.Run("429 is transient", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := &LeverClient{HTTPClient: srv.Client(), Token: "acme"}
		_, err := client.fetchFrom(context.Background(), srv.URL)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.Transient))
	})
}

func TestValidateLeverResponse(t *testing.T) {
	assert.True(t, ValidateLeverResponse([]byte(`[{"id":"a"}]`)))
	assert.False(t, ValidateLeverResponse([]byte(`[]`)))
	assert.False(t, ValidateLeverResponse([]byte(`not json`)))
}
