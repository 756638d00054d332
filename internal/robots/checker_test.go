package robots

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChecker_CanFetch_CachesAfterFirstFetch(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("User-agent: *\nDisallow: /admin\n"))
	}))
	defer srv.Close()

	checker := NewChecker(srv.Client(), zap.NewNop())
	host := srv.Listener.Addr().String()

	allowed := checker.CanFetch(t.Context(), "http://"+host+"/careers")
	assert.True(t, allowed)
	blocked := checker.CanFetch(t.Context(), "http://"+host+"/admin")
	assert.False(t, blocked)
	assert.Equal(t, 1, requests, "second check for the same domain should hit the cache")
}

func TestChecker_CanFetch_FetchFailureAllowsByDefault(t *testing.T) {
	checker := NewChecker(http.DefaultClient, zap.NewNop())
	allowed := checker.CanFetch(t.Context(), "http://127.0.0.1.invalid.example/careers")
	assert.True(t, allowed)
}

func TestChecker_ClearCache(t *testing.T) {
	checker := NewChecker(http.DefaultClient, zap.NewNop())
	checker.cache["acme.com"] = cacheEntry{}
	checker.ClearCache()
	require.Empty(t, checker.cache)
}
